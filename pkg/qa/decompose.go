package qa

import (
	"strings"
)

// answerToken labels the answer text in a model completion.
const answerToken = "Answer:"

// sourceToken delimits the verbatim excerpt block in a model completion.
const sourceToken = "Source:"

// noAnswerFallback stands in for an empty model completion.
const noAnswerFallback = "No answer found"

// Decomposition is the structured form of one free-text model completion.
type Decomposition struct {
	Answer    string
	Source    string
	HasSource bool
}

// Decompose splits a raw model completion into an answer and an optional
// verbatim source excerpt. The split is anchored on the LAST case-insensitive
// "Source:" occurrence, so an answer that itself mentions "Source:" keeps
// that text intact and only the trailing block is treated as the excerpt.
// A leading "Answer:" label, when present, is stripped from the answer.
//
// Decompose never fails: a completion that ignores the requested format
// becomes an answer-only result, and an empty completion becomes the
// "No answer found" fallback.
func Decompose(raw string) Decomposition {
	if raw == "" {
		return Decomposition{Answer: noAnswerFallback}
	}

	idx := lastSourceIndex(raw)
	if idx < 0 {
		return Decomposition{Answer: trimAnswerLabel(raw)}
	}

	return Decomposition{
		Answer:    trimAnswerLabel(raw[:idx]),
		Source:    strings.TrimSpace(raw[idx+len(sourceToken):]),
		HasSource: true,
	}
}

func trimAnswerLabel(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(answerToken) && strings.EqualFold(s[:len(answerToken)], answerToken) {
		s = strings.TrimSpace(s[len(answerToken):])
	}
	return s
}

// lastSourceIndex finds the byte offset of the last case-insensitive
// "Source:" token, or -1. A byte-window scan keeps offsets exact even for
// multi-byte input, which strings.ToLower would not guarantee.
func lastSourceIndex(s string) int {
	n := len(sourceToken)
	for i := len(s) - n; i >= 0; i-- {
		if strings.EqualFold(s[i:i+n], sourceToken) {
			return i
		}
	}
	return -1
}
