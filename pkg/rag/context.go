package rag

import (
	"fmt"
	"strings"

	"github.com/purekb/purekb/pkg/types"
)

const (
	PlaceholderKnowledgeContext = "{KNOWLEDGE_CONTEXT}"
	PlaceholderUserQuestion     = "{USER_QUESTION}"
)

// BuildKnowledgeContext 将命中片段渲染为注入提示词的知识上下文
func BuildKnowledgeContext(results []types.ScoredResult, language string) string {
	if len(results) == 0 {
		if language == types.LANGUAGE_CN_KEY {
			return "知识库中没有找到相关内容。"
		}
		return "No relevant content was found in the knowledge base."
	}

	var b strings.Builder
	for i, result := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		if language == types.LANGUAGE_CN_KEY {
			fmt.Fprintf(&b, "【知识片段 %d】\n", i+1)
			fmt.Fprintf(&b, "分类：%s\n", result.Category)
			fmt.Fprintf(&b, "摘要：%s\n", result.Summary)
			fmt.Fprintf(&b, "内容：%s\n", result.Content)
			fmt.Fprintf(&b, "关键词：%s\n", strings.Join(result.Keywords, ", "))
		} else {
			fmt.Fprintf(&b, "[Knowledge Fragment %d]\n", i+1)
			fmt.Fprintf(&b, "Category: %s\n", result.Category)
			fmt.Fprintf(&b, "Summary: %s\n", result.Summary)
			fmt.Fprintf(&b, "Content: %s\n", result.Content)
			fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(result.Keywords, ", "))
		}
	}
	return b.String()
}

// FillPromptTemplate 只替换每个占位符的第一次出现，
// 避免知识内容里恰好包含占位符时被二次展开。
func FillPromptTemplate(template, knowledgeContext, question string) string {
	out := strings.Replace(template, PlaceholderKnowledgeContext, knowledgeContext, 1)
	out = strings.Replace(out, PlaceholderUserQuestion, question, 1)
	return out
}
