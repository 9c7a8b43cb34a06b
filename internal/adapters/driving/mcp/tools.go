package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sizhu-cli/internal/logger"
)

// defaultHistoryLimit caps chart_history when no limit is given.
const defaultHistoryLimit = 20

// CalculateInput is the input schema for the calculate_bazi tool.
type CalculateInput struct {
	Gender  string `json:"gender" jsonschema:"male or female (also accepts m, f, 男, 女)"`
	Date    string `json:"date" jsonschema:"Gregorian birth date as YYYY-MM-DD"`
	Hour    int    `json:"hour" jsonschema:"hour of birth, 0 to 23"`
	Subject string `json:"subject,omitempty" jsonschema:"who the chart is computed for (defaults to the configured subject)"`
	Save    bool   `json:"save,omitempty" jsonschema:"save the chart to history"`
	Label   string `json:"label,omitempty" jsonschema:"name to save the chart under"`
}

// PillarOutput is one pillar of a chart.
type PillarOutput struct {
	Name   string `json:"name"`
	Stem   string `json:"stem"`
	Branch string `json:"branch"`
	Pinyin string `json:"pinyin"`
}

// ChartOutput is the output schema for the calculate_bazi tool.
type ChartOutput struct {
	ID            string       `json:"id,omitempty"`
	Gender        string       `json:"gender"`
	Year          PillarOutput `json:"year_pillar"`
	Month         PillarOutput `json:"month_pillar"`
	Day           PillarOutput `json:"day_pillar"`
	Hour          PillarOutput `json:"hour_pillar"`
	FullBaZi      string       `json:"full_bazi"`
	ShiChen       string       `json:"shi_chen"`
	DayRolledOver bool         `json:"day_rolled_over"`
	DayPillarDate string       `json:"day_pillar_date"`
}

// CurrentInput is the input schema for the current_pillars tool.
type CurrentInput struct {
	Time string `json:"time,omitempty" jsonschema:"RFC 3339 instant to evaluate (defaults to now)"`
}

// CurrentOutput is the output schema for the current_pillars tool.
type CurrentOutput struct {
	Time    string       `json:"time"`
	Year    PillarOutput `json:"year_pillar"`
	Month   PillarOutput `json:"month_pillar"`
	Day     PillarOutput `json:"day_pillar"`
	Hour    PillarOutput `json:"hour_pillar"`
	Summary string       `json:"summary"`
}

// HistoryInput is the input schema for the chart_history tool.
type HistoryInput struct {
	Subject string `json:"subject,omitempty" jsonschema:"only list charts for this subject"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of charts to return (default 20)"`
}

// HistoryOutput is the output schema for the chart_history tool.
type HistoryOutput struct {
	Charts []ChartSummary `json:"charts"`
	Count  int            `json:"count"`
}

// ChartSummary describes one saved chart.
type ChartSummary struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Label     string `json:"label,omitempty"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"`
	BirthHour int    `json:"birth_hour"`
	FullBaZi  string `json:"full_bazi"`
	CreatedAt string `json:"created_at"`
}

// InterpretInput is the input schema for the interpret_chart tool.
type InterpretInput struct {
	Gender   string `json:"gender" jsonschema:"male or female (also accepts m, f, 男, 女)"`
	Date     string `json:"date" jsonschema:"Gregorian birth date as YYYY-MM-DD"`
	Hour     int    `json:"hour" jsonschema:"hour of birth, 0 to 23"`
	Subject  string `json:"subject,omitempty" jsonschema:"who the chart is computed for"`
	Question string `json:"question,omitempty" jsonschema:"what to ask about the chart"`
}

// InterpretOutput is the output schema for the interpret_chart tool.
type InterpretOutput struct {
	FullBaZi string `json:"full_bazi"`
	Reading  string `json:"reading"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calculate_bazi",
		Description: "Compute the Four Pillars (八字) chart for a birth date, hour and gender",
	}, s.handleCalculate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "current_pillars",
		Description: "Return the year, month, day and hour pillars of the current moment",
	}, s.handleCurrent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "chart_history",
		Description: "List saved charts, newest first",
	}, s.handleHistory)

	if s.ports.canInterpret() {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "interpret_chart",
			Description: "Compute a chart and ask the configured LLM for a reading",
		}, s.handleInterpret)
	}
}

// handleCalculate handles the calculate_bazi tool invocation.
func (s *Server) handleCalculate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CalculateInput,
) (*mcp.CallToolResult, ChartOutput, error) {
	req, err := chartRequest(input.Gender, input.Date, input.Hour, input.Subject)
	if err != nil {
		return nil, ChartOutput{}, inputError(err)
	}
	req.Save = input.Save
	req.Label = input.Label

	record, err := s.ports.Chart.Calculate(ctx, req)
	if err != nil {
		logger.L().Debug("calculate_bazi failed", zap.Error(err))
		return nil, ChartOutput{}, inputError(err)
	}
	logger.L().Debug("calculate_bazi",
		zap.String("full_bazi", record.Chart.FullBaZi()),
		zap.Bool("saved", record.ID != ""))

	out := toChartOutput(record.Chart)
	out.ID = record.ID
	return nil, out, nil
}

// handleCurrent handles the current_pillars tool invocation.
func (s *Server) handleCurrent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CurrentInput,
) (*mcp.CallToolResult, CurrentOutput, error) {
	t := s.now()
	if input.Time != "" {
		parsed, err := time.Parse(time.RFC3339, input.Time)
		if err != nil {
			return nil, CurrentOutput{}, fmt.Errorf("%w: time must be RFC 3339: %q", domain.ErrInvalidInput, input.Time)
		}
		t = parsed
	}

	m := s.ports.Chart.Now(ctx, t)
	return nil, CurrentOutput{
		Time:    m.Time.Format(time.RFC3339),
		Year:    toPillarOutput(m.Year),
		Month:   toPillarOutput(m.Month),
		Day:     toPillarOutput(m.Day),
		Hour:    toPillarOutput(m.Hour),
		Summary: m.String(),
	}, nil
}

// handleHistory handles the chart_history tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.ports.Chart.History(ctx, input.Subject, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Charts: make([]ChartSummary, len(records)),
		Count:  len(records),
	}
	for i := range records {
		output.Charts[i] = toChartSummary(records[i])
	}

	return nil, output, nil
}

// handleInterpret handles the interpret_chart tool invocation.
func (s *Server) handleInterpret(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InterpretInput,
) (*mcp.CallToolResult, InterpretOutput, error) {
	if !s.ports.canInterpret() {
		return nil, InterpretOutput{}, domain.ErrLLMUnavailable
	}

	req, err := chartRequest(input.Gender, input.Date, input.Hour, input.Subject)
	if err != nil {
		return nil, InterpretOutput{}, inputError(err)
	}
	record, err := s.ports.Chart.Calculate(ctx, req)
	if err != nil {
		return nil, InterpretOutput{}, inputError(err)
	}

	reading, err := s.ports.Interpret.Interpret(ctx, record.Chart, input.Question)
	if err != nil {
		return nil, InterpretOutput{}, err
	}

	return nil, InterpretOutput{
		FullBaZi: record.Chart.FullBaZi(),
		Reading:  reading,
	}, nil
}

// chartRequest converts tool input into a service request.
// Gender is checked before the date so errors surface in the same order as the service.
func chartRequest(gender, date string, hour int, subject string) (driving.ChartRequest, error) {
	if _, err := domain.ParseGender(gender); err != nil {
		return driving.ChartRequest{}, err
	}
	d, err := domain.ParseCivilDate(date)
	if err != nil {
		return driving.ChartRequest{}, err
	}
	return driving.ChartRequest{
		Gender:  gender,
		Year:    d.Year,
		Month:   d.Month,
		Day:     d.Day,
		Hour:    hour,
		Subject: subject,
	}, nil
}

// inputError prefixes birth input validation errors so assistants can tell
// a bad request from a server failure. Other errors pass through unchanged.
func inputError(err error) error {
	if domain.IsBirthInputError(err) {
		return fmt.Errorf("invalid birth input: %w", err)
	}
	return err
}

func toPillarOutput(p domain.Pillar) PillarOutput {
	return PillarOutput{
		Name:   p.String(),
		Stem:   p.Stem.Name(),
		Branch: p.Branch.Name(),
		Pinyin: p.Pinyin(),
	}
}

func toChartOutput(c domain.FourPillars) ChartOutput {
	return ChartOutput{
		Gender:        c.Gender.String(),
		Year:          toPillarOutput(c.Year),
		Month:         toPillarOutput(c.Month),
		Day:           toPillarOutput(c.Day),
		Hour:          toPillarOutput(c.Hour),
		FullBaZi:      c.FullBaZi(),
		ShiChen:       c.Birth.ShiChen,
		DayRolledOver: c.Birth.DayRolledOver,
		DayPillarDate: c.Birth.DayPillarDate.String(),
	}
}

func toChartSummary(r domain.ChartRecord) ChartSummary {
	return ChartSummary{
		ID:        r.ID,
		Subject:   r.Subject,
		Label:     r.Label,
		Gender:    r.Chart.Gender.String(),
		BirthDate: r.Chart.Birth.Input.Date.String(),
		BirthHour: r.Chart.Birth.Input.Hour,
		FullBaZi:  r.Chart.FullBaZi(),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
