package qa

import (
	"context"
	"fmt"

	"doc-qna-be/pkg/llm"
	"doc-qna-be/pkg/qa/prompt"
)

// answerMaxTokens bounds the completion length for one answer.
const answerMaxTokens = 500

// Protocol turns one question against one document into a decomposed
// {answer, source} pair through a single LLM completion. It is stateless and
// reentrant: concurrent calls do not interfere.
type Protocol struct {
	provider llm.LLMProvider
}

func NewProtocol(provider llm.LLMProvider) *Protocol {
	return &Protocol{provider: provider}
}

// Ask issues exactly one completion request and leniently decomposes the
// returned text. Only a collaborator failure (unreachable service or an
// upstream error) produces an error; a malformed completion degrades into an
// answer-only result.
func (p *Protocol) Ask(ctx context.Context, question, documentText string) (*Decomposition, error) {
	builder := prompt.NewBuilder(question, documentText)

	raw, err := p.provider.Chat(ctx, builder.Messages(), llm.WithMaxTokens(answerMaxTokens))
	if err != nil {
		return nil, fmt.Errorf("llm completion: %w", err)
	}

	result := Decompose(raw)
	return &result, nil
}
