package v1

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/purekb/purekb/app/core"
	"github.com/purekb/purekb/app/store"
	"github.com/purekb/purekb/pkg/ai"
	"github.com/purekb/purekb/pkg/errors"
	"github.com/purekb/purekb/pkg/i18n"
	"github.com/purekb/purekb/pkg/rag"
	"github.com/purekb/purekb/pkg/types"
)

// 数据清洗固定用低温度、足量 token，保证输出 JSON 稳定
const (
	cleanTemperature    = 0.1
	cleanMaxTokens      = 4000
	cleanImageMaxTokens = 1500
)

type CleanerLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewCleanerLogic(ctx context.Context, core *core.Core) *CleanerLogic {
	return &CleanerLogic{
		ctx:  ctx,
		core: core,
	}
}

type CleanResult struct {
	Success     bool           `json:"success"`
	CleanedData types.ChunkSet `json:"cleaned_data"`
	Usage       *openai.Usage  `json:"usage,omitempty"`
	Model       string         `json:"model,omitempty"`
}

// Clean 将原始文本交给模型切分清洗，要求返回合法的 chunks JSON
func (l *CleanerLogic) Clean(text, systemPrompt string) (*CleanResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("CleanerLogic.Clean.Text", i18n.ERROR_INVALIDARGUMENT, fmt.Errorf("text is empty")).Code(http.StatusBadRequest)
	}
	if l.core.Cfg().AI.Token == "" {
		return nil, errors.New("CleanerLogic.Clean.AIConfig", i18n.ERROR_CONFIG_MISSING, fmt.Errorf("ai token is not configured"))
	}

	prompt := strings.TrimSpace(systemPrompt)
	if prompt == "" {
		prompt = l.core.CleanPrompt(rag.DetectLanguage(text))
	}

	llmTimer := l.core.Metrics().LLMResponseTimer("clean")
	result, err := l.core.AI().Generate(l.ctx, []ai.Message{
		{Role: ai.USER_ROLE_SYSTEM, Content: prompt},
		{Role: ai.USER_ROLE_USER, Content: "请对以下文本进行清洗和结构化处理：\n\n" + text},
	}, ai.GenerateOptions{
		Temperature: cleanTemperature,
		MaxTokens:   cleanMaxTokens,
	})
	llmTimer.ObserveDuration()
	if err != nil {
		l.core.Metrics().LLMErrorInc("clean")
		return nil, errors.New("CleanerLogic.Clean.Generate", i18n.ERROR_UPSTREAM_UNAVAILABLE, err).Code(http.StatusBadGateway)
	}

	var cleaned types.ChunkSet
	if err = json.Unmarshal([]byte(stripCodeFences(result.Content)), &cleaned); err != nil {
		l.core.Metrics().LLMErrorInc("clean")
		return nil, errors.New("CleanerLogic.Clean.Unmarshal", i18n.ERROR_UPSTREAM_MALFORMED, err).Code(http.StatusBadGateway)
	}

	return &CleanResult{
		Success:     true,
		CleanedData: cleaned,
		Usage:       result.Usage,
		Model:       result.Model,
	}, nil
}

// CleanImage 让视觉模型识别图片内容，输出与文本清洗相同的 chunks JSON
func (l *CleanerLogic) CleanImage(image, systemPrompt string) (*CleanResult, error) {
	if strings.TrimSpace(image) == "" {
		return nil, errors.New("CleanerLogic.CleanImage.Image", i18n.ERROR_INVALIDARGUMENT, fmt.Errorf("image is empty")).Code(http.StatusBadRequest)
	}
	if l.core.Cfg().AI.Token == "" {
		return nil, errors.New("CleanerLogic.CleanImage.AIConfig", i18n.ERROR_CONFIG_MISSING, fmt.Errorf("ai token is not configured"))
	}

	prompt := strings.TrimSpace(systemPrompt)
	if prompt == "" {
		prompt = l.core.CleanPrompt(types.LANGUAGE_CN_KEY)
	}

	// 裸 base64 默认按 jpeg 补全成 data URI
	imageURL := image
	if !strings.HasPrefix(imageURL, "data:image/") {
		imageURL = "data:image/jpeg;base64," + imageURL
	}

	llmTimer := l.core.Metrics().LLMResponseTimer("clean_image")
	result, err := l.core.AI().Generate(l.ctx, []ai.Message{
		{Role: ai.USER_ROLE_SYSTEM, Content: prompt},
		{Role: ai.USER_ROLE_USER, Content: "请分析这张图片的内容，并按照system prompt的要求进行结构化处理。", ImageURL: imageURL},
	}, ai.GenerateOptions{
		Model:       l.core.VisionModel(),
		Temperature: cleanTemperature,
		MaxTokens:   cleanImageMaxTokens,
	})
	llmTimer.ObserveDuration()
	if err != nil {
		l.core.Metrics().LLMErrorInc("clean_image")
		return nil, errors.New("CleanerLogic.CleanImage.Generate", i18n.ERROR_UPSTREAM_UNAVAILABLE, err).Code(http.StatusBadGateway)
	}

	var cleaned types.ChunkSet
	if err = json.Unmarshal([]byte(stripCodeFences(result.Content)), &cleaned); err != nil {
		l.core.Metrics().LLMErrorInc("clean_image")
		return nil, errors.New("CleanerLogic.CleanImage.Unmarshal", i18n.ERROR_UPSTREAM_MALFORMED, err).Code(http.StatusBadGateway)
	}

	return &CleanResult{
		Success:     true,
		CleanedData: cleaned,
		Usage:       result.Usage,
		Model:       result.Model,
	}, nil
}

// 模型偶尔会把 JSON 包在 markdown 代码块里
func stripCodeFences(content string) string {
	replacer := strings.NewReplacer("```json\n", "", "```json", "", "```\n", "", "```", "")
	return strings.TrimSpace(replacer.Replace(content))
}

type SaveResult struct {
	Success     bool   `json:"success"`
	RecordID    int64  `json:"record_id"`
	StorageType string `json:"storage_type"`
}

func (l *CleanerLogic) Save(originalText string, cleaned types.ChunkSet) (*SaveResult, error) {
	if strings.TrimSpace(originalText) == "" {
		return nil, errors.New("CleanerLogic.Save.OriginalText", i18n.ERROR_INVALIDARGUMENT, fmt.Errorf("original_text is empty")).Code(http.StatusBadRequest)
	}

	id, err := l.core.Store().CreateRecord(l.ctx, originalText, cleaned)
	if err != nil {
		return nil, l.storeError("CleanerLogic.Save.CreateRecord", "create", err)
	}

	return &SaveResult{
		Success:     true,
		RecordID:    id,
		StorageType: "database",
	}, nil
}

type Statistics struct {
	TotalRecords  int64 `json:"total_records"`
	RecentRecords int   `json:"recent_records"`
	AvgTextLength int   `json:"avg_text_length"`
	FileSize      int64 `json:"file_size"`
}

type ListResult struct {
	Success    bool                    `json:"success"`
	Data       []types.KnowledgeRecord `json:"data"`
	Statistics Statistics              `json:"statistics"`
}

func (l *CleanerLogic) List(limit, offset int) (*ListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	records, err := l.core.Store().ListRecords(l.ctx, limit, offset)
	if err != nil {
		return nil, l.storeError("CleanerLogic.List.ListRecords", "list", err)
	}

	total, err := l.core.Store().CountRecords(l.ctx)
	if err != nil {
		return nil, l.storeError("CleanerLogic.List.CountRecords", "count", err)
	}

	return &ListResult{
		Success:    true,
		Data:       records,
		Statistics: buildStatistics(records, total),
	}, nil
}

// buildStatistics 统计口径与页内数据相关：近7天条数与平均长度按当前页计算
func buildStatistics(records []types.KnowledgeRecord, total int64) Statistics {
	weekAgo := time.Now().Add(-7 * 24 * time.Hour)

	var recent, textLength int
	for _, record := range records {
		if record.CreatedAt.After(weekAgo) {
			recent++
		}
		textLength += len([]rune(record.OriginalText))
	}

	avg := 0
	if len(records) > 0 {
		avg = int(float64(textLength)/float64(len(records)) + 0.5)
	}

	return Statistics{
		TotalRecords:  total,
		RecentRecords: recent,
		AvgTextLength: avg,
		FileSize:      total * 2 / 1024, // 粗略估算 KB
	}
}

type GetResult struct {
	Success bool                  `json:"success"`
	Data    types.KnowledgeRecord `json:"data"`
}

func (l *CleanerLogic) Get(id int64) (*GetResult, error) {
	record, err := l.core.Store().GetRecord(l.ctx, id)
	if err != nil {
		return nil, l.storeError("CleanerLogic.Get.GetRecord", "get", err)
	}

	return &GetResult{
		Success: true,
		Data:    *record,
	}, nil
}

type ModifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (l *CleanerLogic) Update(id int64, cleaned types.ChunkSet) (*ModifyResult, error) {
	if err := l.core.Store().UpdateRecord(l.ctx, id, cleaned); err != nil {
		return nil, l.storeError("CleanerLogic.Update.UpdateRecord", "update", err)
	}
	return &ModifyResult{Success: true, Message: "updated"}, nil
}

func (l *CleanerLogic) Delete(id int64) (*ModifyResult, error) {
	if err := l.core.Store().DeleteRecord(l.ctx, id); err != nil {
		return nil, l.storeError("CleanerLogic.Delete.DeleteRecord", "delete", err)
	}
	return &ModifyResult{Success: true, Message: "deleted"}, nil
}

type PromptResult struct {
	Success bool   `json:"success"`
	Prompt  string `json:"prompt"`
}

const (
	PROMPT_TYPE_CLEAN = "clean"
	PROMPT_TYPE_CHAT  = "chat"
)

func (l *CleanerLogic) DefaultPrompt(language, promptType string) *PromptResult {
	var prompt string
	switch promptType {
	case PROMPT_TYPE_CHAT:
		prompt = l.core.ChatPrompt(language)
	default:
		prompt = l.core.CleanPrompt(language)
	}
	return &PromptResult{
		Success: true,
		Prompt:  prompt,
	}
}

func (l *CleanerLogic) storeError(trace, op string, err error) error {
	switch {
	case stderrors.Is(err, store.ErrNotConfigured):
		return errors.New(trace, i18n.ERROR_CONFIG_MISSING, err)
	case stderrors.Is(err, store.ErrNotFound):
		return errors.New(trace, i18n.ERROR_NOT_FOUND, err).Code(http.StatusNotFound)
	default:
		l.core.Metrics().RecordStoreErrorInc(op)
		return errors.New(trace, i18n.ERROR_UPSTREAM_UNAVAILABLE, err).Code(http.StatusBadGateway)
	}
}
