package factory

import (
	"fmt"

	"medisos-be/internal/config"
	"medisos-be/pkg/llm"
	"medisos-be/pkg/llm/ollama"
	"medisos-be/pkg/llm/openrouter"
)

func NewLLMProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openrouter":
		return openrouter.NewOpenRouterProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
