package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for chart interpretation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// RateLimitSettings bounds how often one subject may request charts.
type RateLimitSettings struct {
	// RequestsPerSecond is the sustained rate. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the maximum burst size.
	Burst int
}

// Enabled returns true if limiting is active.
func (r RateLimitSettings) Enabled() bool {
	return r.RequestsPerSecond > 0 && r.Burst > 0
}

// CacheSettings sizes the in-process chart cache.
type CacheSettings struct {
	// Size is the number of charts kept. Zero disables caching.
	Size int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Subject is the default requester name recorded on saved charts.
	Subject string

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// RateLimit holds per-subject limiter settings.
	RateLimit RateLimitSettings

	// Cache holds chart cache settings.
	Cache CacheSettings
}

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "local"

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; users set it up via 'sizhu settings llm'.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Subject: DefaultSubject,
		LLM:     LLMSettings{},
		RateLimit: RateLimitSettings{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Cache: CacheSettings{
			Size: 256,
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
