package factory

import (
	"fmt"

	"doc-qna-be/pkg/llm"
	"doc-qna-be/pkg/llm/ollama"
	"doc-qna-be/pkg/llm/openai"
)

// NewLLMProvider builds the configured LLM backend.
func NewLLMProvider(providerType, modelName, ollamaBaseURL, openAIKey, openAIBaseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewOpenAIProvider(openAIKey, modelName, openAIBaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
