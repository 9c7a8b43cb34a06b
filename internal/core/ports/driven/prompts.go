package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptReadingSystem is the system prompt for chart readings.
	// This prompt has no placeholders.
	PromptReadingSystem = "reading_system"

	// PromptReading is the user prompt for a chart reading.
	// It is a text/template executed with a services.ReadingData value.
	PromptReading = "reading"
)
