package rag

import (
	"github.com/purekb/purekb/pkg/types"
)

// cjkRatioThreshold 中文字符占比超过该值则判定为中文
const cjkRatioThreshold = 0.3

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF)
}

// DetectLanguage 根据 CJK 字符占比判断文本语言
func DetectLanguage(text string) string {
	var total, cjk int
	for _, r := range text {
		total++
		if isCJK(r) {
			cjk++
		}
	}
	if total == 0 {
		return types.LANGUAGE_EN_KEY
	}
	if float64(cjk)/float64(total) > cjkRatioThreshold {
		return types.LANGUAGE_CN_KEY
	}
	return types.LANGUAGE_EN_KEY
}

// ResolveLanguage auto 时按文本内容判定，否则原样返回
func ResolveLanguage(language, text string) string {
	switch language {
	case types.LANGUAGE_CN_KEY, types.LANGUAGE_EN_KEY:
		return language
	default:
		return DetectLanguage(text)
	}
}
