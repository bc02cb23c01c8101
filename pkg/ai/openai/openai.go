package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"

	"github.com/purekb/purekb/pkg/ai"
)

const (
	NAME = "openai"

	DEFAULT_CHAT_MODEL   = "deepseek-ai/DeepSeek-V3"
	DEFAULT_VISION_MODEL = "deepseek-ai/deepseek-vl2"
)

type Driver struct {
	client *openai.Client
	model  string
}

// New token 必填，proxy 用于指向 SiliconFlow 等 OpenAI 兼容网关
func New(token, proxy, model string) *Driver {
	cfg := openai.DefaultConfig(token)
	if proxy != "" {
		cfg.BaseURL = proxy
	}

	if model == "" {
		model = DEFAULT_CHAT_MODEL
	}

	return &Driver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *Driver) Generate(ctx context.Context, messages []ai.Message, opts ai.GenerateOptions) (ai.GenerateResult, error) {
	model := s.model
	if opts.Model != "" {
		model = opts.Model
	}
	slog.Debug("Generate", slog.String("driver", NAME), slog.String("model", model))

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: lo.Map(messages, func(item ai.Message, _ int) openai.ChatCompletionMessage {
			if item.ImageURL != "" {
				return openai.ChatCompletionMessage{
					Role: item.Role,
					MultiContent: []openai.ChatMessagePart{
						{
							Type:     openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{URL: item.ImageURL},
						},
						{
							Type: openai.ChatMessagePartTypeText,
							Text: item.Content,
						},
					},
				}
			}
			return openai.ChatCompletionMessage{
				Role:    item.Role,
				Content: item.Content,
			}
		}),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return ai.GenerateResult{}, fmt.Errorf("failed to create chat completion, %w", err)
	}

	if len(resp.Choices) == 0 {
		return ai.GenerateResult{}, fmt.Errorf("chat completion returned no choices")
	}

	return ai.GenerateResult{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage:   &resp.Usage,
	}, nil
}
