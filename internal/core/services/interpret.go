package services

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sizhu-cli/internal/logger"
)

// Ensure InterpretService implements the interface.
var _ driving.InterpretService = (*InterpretService)(nil)

// Built-in prompts, used when no PromptStore is set or it fails.
const (
	defaultReadingSystemPrompt = `You are an experienced practitioner of Four Pillars (BaZi) astrology.
Read charts carefully, explain your reasoning in plain language and avoid fatalistic claims.`

	defaultReadingPrompt = `Four Pillars chart for a {{.Gender}} born {{.Date}} at {{printf "%02d" .Hour}}:00 ({{.ShiChen}}).

Year:  {{.Year}}
Month: {{.Month}}
Day:   {{.Day}} (day master {{.DayMaster}})
Hour:  {{.Hour24}}
{{- if .RolledOver}}
The birth hour falls after 23:00, so the day pillar is taken from {{.DayPillarDate}}.
{{- end}}

{{if .Question}}Question: {{.Question}}{{else}}Give a general reading of this chart.{{end}}`
)

// DefaultPrompts returns the built-in prompt templates keyed by prompt name.
// Prompt stores seed user-editable files from these.
func DefaultPrompts() map[string]string {
	return map[string]string{
		driven.PromptReadingSystem: defaultReadingSystemPrompt,
		driven.PromptReading:       defaultReadingPrompt,
	}
}

// ReadingData is the value the reading prompt template is executed with.
type ReadingData struct {
	Gender        string
	Date          string
	Hour          int
	ShiChen       string
	Year          string
	Month         string
	Day           string
	Hour24        string
	DayMaster     string
	RolledOver    bool
	DayPillarDate string
	FullBaZi      string
	Question      string
}

// newReadingData flattens a chart for template rendering.
func newReadingData(chart domain.FourPillars, question string) ReadingData {
	return ReadingData{
		Gender:        chart.Gender.String(),
		Date:          chart.Birth.Input.Date.String(),
		Hour:          chart.Birth.Input.Hour,
		ShiChen:       chart.Birth.ShiChen,
		Year:          chart.Year.String(),
		Month:         chart.Month.String(),
		Day:           chart.Day.String(),
		Hour24:        chart.Hour.String(),
		DayMaster:     chart.Day.Stem.Name(),
		RolledOver:    chart.Birth.DayRolledOver,
		DayPillarDate: chart.Birth.DayPillarDate.String(),
		FullBaZi:      chart.FullBaZi(),
		Question:      strings.TrimSpace(question),
	}
}

// InterpretService renders reading prompts and sends them to an LLM.
type InterpretService struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
	maxTokens   int
}

// NewInterpretService creates a new interpretation service.
// llm may be nil, in which case Interpret returns domain.ErrLLMUnavailable.
func NewInterpretService(llm driven.LLMService, promptStore driven.PromptStore) *InterpretService {
	return &InterpretService{
		llm:         llm,
		promptStore: promptStore,
		maxTokens:   1024,
	}
}

// Available reports whether an LLM is configured.
func (s *InterpretService) Available() bool {
	return s.llm != nil
}

// Interpret asks the configured LLM to read the chart.
func (s *InterpretService) Interpret(ctx context.Context, chart domain.FourPillars, question string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	prompt, err := s.RenderPrompt(chart, question)
	if err != nil {
		return "", err
	}
	logger.Debug("Reading prompt:\n%s", prompt)
	logger.Info("Requesting reading from %s", s.llm.ModelName())

	messages := []driven.ChatMessage{
		{Role: "system", Content: s.loadPrompt(driven.PromptReadingSystem, defaultReadingSystemPrompt)},
		{Role: "user", Content: prompt},
	}
	reply, err := s.llm.Chat(ctx, messages, driven.ChatOptions{MaxTokens: s.maxTokens})
	if err != nil {
		return "", fmt.Errorf("llm reading: %w", err)
	}

	return strings.TrimSpace(reply), nil
}

// RenderPrompt executes the reading template for chart and question.
func (s *InterpretService) RenderPrompt(chart domain.FourPillars, question string) (string, error) {
	text := s.loadPrompt(driven.PromptReading, defaultReadingPrompt)

	tmpl, err := template.New(driven.PromptReading).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse reading prompt: %w", err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, newReadingData(chart, question)); err != nil {
		return "", fmt.Errorf("render reading prompt: %w", err)
	}
	return b.String(), nil
}

func (s *InterpretService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil || strings.TrimSpace(prompt) == "" {
		logger.Warn("Using built-in %s prompt: %v", name, err)
		return fallback
	}
	return prompt
}
