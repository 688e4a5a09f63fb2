package ai

import (
	"github.com/useadvisor/advisor/internal/profile"
)

// LLMConfig holds the generation backend configuration.
type LLMConfig struct {
	Provider    string // openai, ollama or googleai
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// classifierTemperature biases the intent check toward deterministic answers.
const classifierTemperature = 0.1

// NewLLMConfigFromProfile builds the config for the conversational model.
func NewLLMConfigFromProfile(p *profile.Profile) *LLMConfig {
	maxTokens := p.LLMMaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	temperature := p.LLMTemperature
	if temperature <= 0 {
		temperature = 0.7
	}
	return &LLMConfig{
		Provider:    p.LLMProvider,
		APIKey:      p.LLMAPIKey,
		BaseURL:     p.LLMBaseURL,
		Model:       p.LLMModel,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// NewClassifierConfigFromProfile builds the config for the intent-check model.
// It shares the provider credentials but pins a low temperature and a small
// output budget, since the classifier only ever answers YES or NO.
func NewClassifierConfigFromProfile(p *profile.Profile) *LLMConfig {
	return &LLMConfig{
		Provider:    p.LLMProvider,
		APIKey:      p.LLMAPIKey,
		BaseURL:     p.LLMBaseURL,
		Model:       p.LLMClassifierModel,
		MaxTokens:   8,
		Temperature: classifierTemperature,
	}
}
