package config

import "time"

// ProviderKind selects which wire shape an upstream speaks.
type ProviderKind string

const (
	// KindGemini is the Google multimodal envelope (contents/parts/inline_data).
	KindGemini ProviderKind = "gemini"
	// KindChatCompletions is the OpenAI-compatible /chat/completions shape,
	// shared by OpenAI, DeepSeek and xAI.
	KindChatCompletions ProviderKind = "chat_completions"
)

// Provider describes one upstream AI backend. The table is assembled once at
// startup and never mutated.
type Provider struct {
	ID       string
	Kind     ProviderKind
	Endpoint string
	APIKey   string
	Model    string
}

type ProviderConfig interface {
	GetProviders() []Provider
	GetProviderTimeout() time.Duration
}

var _ ProviderConfig = mainConfig{}

// GetProviders returns the descriptors for every upstream that has an API key
// configured. A provider without a key is simply absent from the table, which
// the gateway reports as an unknown provider id.
func (c mainConfig) GetProviders() []Provider {
	var table []Provider
	if c.env.GeminiAPIKey != "" {
		table = append(table, Provider{
			ID:       "gemini",
			Kind:     KindGemini,
			Endpoint: c.env.GeminiEndpoint,
			APIKey:   c.env.GeminiAPIKey,
			Model:    c.env.GeminiModel,
		})
	}
	if c.env.OpenAIAPIKey != "" {
		table = append(table, Provider{
			ID:       "chatgpt",
			Kind:     KindChatCompletions,
			Endpoint: c.env.OpenAIEndpoint,
			APIKey:   c.env.OpenAIAPIKey,
			Model:    c.env.OpenAIModel,
		})
	}
	if c.env.DeepSeekAPIKey != "" {
		table = append(table, Provider{
			ID:       "deepseek",
			Kind:     KindChatCompletions,
			Endpoint: c.env.DeepSeekEndpoint,
			APIKey:   c.env.DeepSeekAPIKey,
			Model:    c.env.DeepSeekModel,
		})
	}
	if c.env.GrokAPIKey != "" {
		table = append(table, Provider{
			ID:       "grok",
			Kind:     KindChatCompletions,
			Endpoint: c.env.GrokEndpoint,
			APIKey:   c.env.GrokAPIKey,
			Model:    c.env.GrokModel,
		})
	}
	return table
}

func (c mainConfig) GetProviderTimeout() time.Duration {
	return c.env.ProviderTimeout
}
