package driving

import "github.com/custodia-labs/sizhu-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetRateLimit configures the per-subject limiter.
	SetRateLimit(requestsPerSecond float64, burst int) error

	// SetSubject sets the default subject recorded on saved charts.
	SetSubject(subject string) error

	// Validate checks if current settings are consistent.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
