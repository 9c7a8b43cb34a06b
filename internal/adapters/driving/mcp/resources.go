package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for sizhu resources.
	uriScheme = "sizhu://"

	chartsURI = uriScheme + "charts"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         chartsURI,
		Name:        "charts",
		Description: "Saved Four Pillars charts, newest first",
		MIMEType:    "application/json",
	}, s.handleChartsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: chartsURI + "/{chartId}",
		Name:        "chart",
		Description: "A single saved chart with its birth metadata",
		MIMEType:    "application/json",
	}, s.handleChartResource)
}

// handleChartsResource returns all saved charts.
func (s *Server) handleChartsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Chart.History(ctx, "", 0)
	if err != nil {
		return nil, fmt.Errorf("listing charts: %w", err)
	}

	summaries := make([]ChartSummary, len(records))
	for i := range records {
		summaries[i] = toChartSummary(records[i])
	}

	return jsonResource(req.Params.URI, summaries)
}

// handleChartResource returns one saved chart.
func (s *Server) handleChartResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractChartID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Chart.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting chart: %w", err)
	}

	return jsonResource(req.Params.URI, record)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractChartID extracts the chart ID from a URI like sizhu://charts/{chartId}.
func extractChartID(uri string) string {
	const prefix = chartsURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
