package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

const (
	USER_ROLE_SYSTEM = "system"
	USER_ROLE_USER   = "user"
)

type Message struct {
	Role    string
	Content string
	// ImageURL 非空时该消息按多模态发送，取值为 data URI 或 http 地址
	ImageURL string
}

type GenerateOptions struct {
	// Model 覆盖驱动默认模型，视觉请求用
	Model       string
	Temperature float32
	MaxTokens   int
}

type GenerateResult struct {
	Content string
	Model   string
	Usage   *openai.Usage
}

// Gateway 对话模型网关，所有上游错误原样抛出，由上层决定如何兜底
type Gateway interface {
	Generate(ctx context.Context, messages []Message, opts GenerateOptions) (GenerateResult, error)
}
