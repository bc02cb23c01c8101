package v1

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/purekb/purekb/app/core"
	"github.com/purekb/purekb/app/store"
	"github.com/purekb/purekb/pkg/ai"
	"github.com/purekb/purekb/pkg/errors"
	"github.com/purekb/purekb/pkg/i18n"
	"github.com/purekb/purekb/pkg/rag"
	"github.com/purekb/purekb/pkg/types"
)

type ChatLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewChatLogic(ctx context.Context, core *core.Core) *ChatLogic {
	return &ChatLogic{
		ctx:  ctx,
		core: core,
	}
}

type AskArgs struct {
	Question     string
	SystemPrompt string
	Language     string
}

// Ask 检索知识库并将命中内容注入提示词后请求模型作答。
// 检索或模型任一环节失败则整体失败，不做降级回答。
func (l *ChatLogic) Ask(args AskArgs) (*types.RagChatResponse, error) {
	start := time.Now()

	question := strings.TrimSpace(args.Question)
	if question == "" {
		return nil, errors.New("ChatLogic.Ask.Question", i18n.ERROR_INVALIDARGUMENT, fmt.Errorf("question is empty")).Code(http.StatusBadRequest)
	}
	if l.core.Cfg().AI.Token == "" {
		return nil, errors.New("ChatLogic.Ask.AIConfig", i18n.ERROR_CONFIG_MISSING, fmt.Errorf("ai token is not configured"))
	}

	// 语言只判定一次，后续分词、上下文、提示词共用
	language := rag.ResolveLanguage(args.Language, question)

	searchTimer := l.core.Metrics().SearchTimer()
	retrieval, err := rag.NewRetriever(l.core.Store()).Retrieve(l.ctx, question, l.core.Cfg().Chat.SearchLimit, language)
	searchTimer.ObserveDuration()
	if err != nil {
		l.core.Metrics().RecordStoreErrorInc("list")
		// 检索失败时部分统计仍有值，记进日志便于排查
		slog.Error("knowledge retrieval failed",
			slog.String("error", err.Error()),
			slog.Int64("search_time", retrieval.SearchTime),
			slog.Any("keywords_used", retrieval.KeywordsUsed))
		if stderrors.Is(err, store.ErrNotConfigured) {
			return nil, errors.New("ChatLogic.Ask.Retrieve", i18n.ERROR_CONFIG_MISSING, err)
		}
		return nil, errors.New("ChatLogic.Ask.Retrieve", i18n.ERROR_UPSTREAM_UNAVAILABLE, err).Code(http.StatusBadGateway)
	}

	knowledgeContext := rag.BuildKnowledgeContext(retrieval.Results, language)

	template := strings.TrimSpace(args.SystemPrompt)
	if template == "" {
		template = l.core.ChatPrompt(language)
	}
	prompt := rag.FillPromptTemplate(template, knowledgeContext, question)

	aiStart := time.Now()
	llmTimer := l.core.Metrics().LLMResponseTimer("chat")
	result, err := l.core.AI().Generate(l.ctx, []ai.Message{
		{Role: ai.USER_ROLE_SYSTEM, Content: prompt},
		{Role: ai.USER_ROLE_USER, Content: question},
	}, ai.GenerateOptions{
		Temperature: l.core.Cfg().AI.Temperature,
		MaxTokens:   l.core.Cfg().AI.MaxTokens,
	})
	llmTimer.ObserveDuration()
	if err != nil {
		l.core.Metrics().LLMErrorInc("chat")
		return nil, errors.New("ChatLogic.Ask.Generate", i18n.ERROR_UPSTREAM_UNAVAILABLE, err).Code(http.StatusBadGateway)
	}
	if strings.TrimSpace(result.Content) == "" {
		l.core.Metrics().LLMErrorInc("chat")
		return nil, errors.New("ChatLogic.Ask.Generate", i18n.ERROR_UPSTREAM_MALFORMED, fmt.Errorf("chat completion content is empty")).Code(http.StatusBadGateway)
	}

	sources := lo.Map(retrieval.Results, func(item types.ScoredResult, _ int) types.ChatSource {
		return types.ChatSource{
			Content:  item.Content,
			Summary:  item.Summary,
			Category: item.Category,
			Keywords: item.Keywords,
		}
	})

	return &types.RagChatResponse{
		Success: true,
		Answer:  result.Content,
		Sources: sources,
		Stats: types.ChatStats{
			SearchTime:   retrieval.SearchTime,
			AITime:       time.Since(aiStart).Milliseconds(),
			TotalTime:    time.Since(start).Milliseconds(),
			TotalMatches: retrieval.TotalMatches,
			SourcesUsed:  len(sources),
			KeywordsUsed: retrieval.KeywordsUsed,
		},
	}, nil
}
