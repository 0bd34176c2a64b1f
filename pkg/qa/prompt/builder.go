package prompt

import (
	"strings"

	"doc-qna-be/pkg/llm"
)

// Builder assembles the document-grounded Q&A prompt. The instruction
// mandates a two-field completion (an Answer block followed by a Source
// block holding a verbatim excerpt) so the caller can decompose the reply.
type Builder struct {
	question     string
	documentText string
}

// NewBuilder creates a prompt builder for one question against one document.
func NewBuilder(question, documentText string) *Builder {
	return &Builder{
		question:     question,
		documentText: documentText,
	}
}

// Messages renders the chat history for the completion call: a fixed system
// instruction plus one user message embedding the question and the full
// extracted document text. No chunking or truncation is applied.
func (b *Builder) Messages() []llm.Message {
	return []llm.Message{
		{Role: "system", Content: b.systemInstruction()},
		{Role: "user", Content: b.userMessage()},
	}
}

func (b *Builder) systemInstruction() string {
	var prompt strings.Builder

	prompt.WriteString("You are a helpful research assistant. Answer the question based on the PDF, IMAGE, CSV content.\n")
	prompt.WriteString("Provide your answer in this exact format:\n\n")
	prompt.WriteString("Answer: <your answer>\n")
	prompt.WriteString("Source: <copy the exact snippet(s) from the document that support your answer, do NOT just give line numbers>")

	return prompt.String()
}

func (b *Builder) userMessage() string {
	var prompt strings.Builder

	prompt.WriteString("Question: ")
	prompt.WriteString(b.question)
	prompt.WriteString("\n\nPDF Content:\n")
	prompt.WriteString(b.documentText)

	return prompt.String()
}
