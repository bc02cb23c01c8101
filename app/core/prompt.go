package core

import "github.com/purekb/purekb/pkg/types"

const defaultCleanPromptZH = `你是一个专业的数据清洗和结构化专家，专门负责将原始文本数据清洗并转换为结构化的RAG知识库格式。

## 任务目标
将输入的原始文本按语义段落进行智能切分和清洗，生成高质量的结构化数据用于RAG检索系统。

## 处理要求
1. **语义切分**：根据内容逻辑和语义完整性，将文本切分成独立的段落块
2. **内容清洗**：去除无意义字符、修正格式问题、统一标点符号
3. **信息提取**：为每个段落生成摘要、关键词、分类和搜索向量文本

## 输出格式
必须严格按照以下JSON格式返回，不要包含任何其他文字说明：

{
  "chunks": [
    {
      "summary": "该段落的核心内容摘要，15-30字",
      "keywords": ["关键词1", "关键词2", "关键词3"],
      "category": "内容分类（如：技术概念、操作步骤、理论知识等）",
      "search_vector": "优化后的搜索文本，包含原文关键信息和同义词"
    }
  ]
}

请严格按照上述要求处理输入文本，确保输出的JSON格式正确且内容质量高。`

const defaultCleanPromptEN = `You are a data cleaning and structuring expert. Your job is to turn raw text into structured chunks for a RAG knowledge base.

## Requirements
1. Split the input into self-contained semantic paragraphs.
2. Remove noise, fix formatting, normalize punctuation.
3. For each paragraph produce a summary, keywords, a category and an optimized search text.

## Output format
Return strictly the following JSON, with no extra commentary:

{
  "chunks": [
    {
      "summary": "short summary of the paragraph",
      "keywords": ["keyword1", "keyword2", "keyword3"],
      "category": "content category",
      "search_vector": "optimized search text with key terms and synonyms"
    }
  ]
}`

const defaultChatPromptZH = `你是一个专业的知识问答助手，请基于下面的知识库内容回答用户的问题。

## 知识库内容
{KNOWLEDGE_CONTEXT}

## 用户问题
{USER_QUESTION}

## 回答要求
1. 优先使用知识库中的内容回答问题
2. 如果知识库中没有相关信息，请明确说明
3. 回答要准确、简洁、有条理`

const defaultChatPromptEN = `You are a knowledge assistant. Answer the user's question based on the knowledge base content below.

## Knowledge base
{KNOWLEDGE_CONTEXT}

## Question
{USER_QUESTION}

## Guidelines
1. Prefer the knowledge base content when answering.
2. If the knowledge base has no relevant information, say so explicitly.
3. Keep the answer accurate and concise.`

// ChatPrompt 对话提示词模板，配置优先
func (s *Core) ChatPrompt(language string) string {
	if s.cfg.Prompt.Chat != "" {
		return s.cfg.Prompt.Chat
	}
	if language == types.LANGUAGE_CN_KEY {
		return defaultChatPromptZH
	}
	return defaultChatPromptEN
}

// CleanPrompt 数据清洗提示词，配置优先
func (s *Core) CleanPrompt(language string) string {
	if s.cfg.Prompt.Clean != "" {
		return s.cfg.Prompt.Clean
	}
	if language == types.LANGUAGE_EN_KEY {
		return defaultCleanPromptEN
	}
	return defaultCleanPromptZH
}
