package rag

import "strings"

// Similarity 计算 query 与 text 的词面重合度，取值 [0,1]。
// 词项双向包含即视为命中，结果为命中数 / query 词项数，
// 因此该度量是不对称的：Similarity(a,b) 与 Similarity(b,a) 可能不同。
func Similarity(query, text, language string) float64 {
	queryTerms := Tokenize(strings.ToLower(query), language)
	if len(queryTerms) == 0 {
		return 0
	}
	textTerms := Tokenize(strings.ToLower(text), language)

	matched := 0
	for _, q := range queryTerms {
		for _, t := range textTerms {
			if strings.Contains(t, q) || strings.Contains(q, t) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(queryTerms))
}
