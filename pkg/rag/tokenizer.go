package rag

import (
	"strings"
	"unicode"

	"github.com/purekb/purekb/pkg/types"
)

const (
	minSubstringLen = 2
	maxSubstringLen = 4
)

// 中文分词需要剔除的全角/半角标点
const zhPunctuations = "，。！？；：“”‘’（）【】《》、·～｜…—" + ",.!?;:\"'()[]{}<>/\\|`~@#$%^&*-_=+"

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "can": true, "this": true, "that": true,
	"these": true, "those": true, "i": true, "you": true, "he": true, "she": true,
	"it": true, "we": true, "they": true, "what": true, "which": true, "who": true,
	"when": true, "where": true, "why": true, "how": true,
}

// Tokenize 将文本切分为检索词集合，返回去重后的确定性有序结果。
// 任何输入都不会报错，无法切分时返回空集。
func Tokenize(text, language string) []string {
	if language != types.LANGUAGE_CN_KEY && language != types.LANGUAGE_EN_KEY {
		language = DetectLanguage(text)
	}

	if language == types.LANGUAGE_CN_KEY {
		return tokenizeZH(text)
	}
	return tokenizeEN(text)
}

func tokenizeZH(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(zhPunctuations, r) {
			return ' '
		}
		return r
	}, text)

	seen := make(map[string]bool)
	var terms []string
	appendTerm := func(term string) {
		if !keepZHTerm(term) || seen[term] {
			return
		}
		seen[term] = true
		terms = append(terms, term)
	}

	for _, fragment := range strings.Fields(cleaned) {
		runes := []rune(fragment)
		maxLen := maxSubstringLen
		if len(runes) < maxLen {
			maxLen = len(runes)
		}
		for size := minSubstringLen; size <= maxLen; size++ {
			for i := 0; i+size <= len(runes); i++ {
				sub := runes[i : i+size]
				if containsCJK(sub) {
					appendTerm(string(sub))
				}
			}
		}
		appendTerm(fragment)
	}
	return terms
}

func keepZHTerm(term string) bool {
	if term == "" {
		return false
	}
	for _, r := range term {
		if isCJK(r) || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func containsCJK(runes []rune) bool {
	for _, r := range runes {
		if isCJK(r) {
			return true
		}
	}
	return false
}

func tokenizeEN(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) < 2 || stopWords[w] {
			continue
		}
		words = append(words, w)
	}

	seen := make(map[string]bool)
	var terms []string
	appendTerm := func(term string) {
		if !keepENTerm(term) || seen[term] {
			return
		}
		seen[term] = true
		terms = append(terms, term)
	}

	for _, w := range words {
		appendTerm(w)
	}
	for i := 0; i+2 <= len(words); i++ {
		appendTerm(strings.Join(words[i:i+2], " "))
	}
	for i := 0; i+3 <= len(words); i++ {
		appendTerm(strings.Join(words[i:i+3], " "))
	}
	return terms
}

func keepENTerm(term string) bool {
	if len(term) < 2 {
		return false
	}
	for _, r := range term {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}
