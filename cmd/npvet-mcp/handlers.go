package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/interfaces"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/services/propublica"
)

// handleVetNonprofit implements the vet_nonprofit tool
func handleVetNonprofit(provider interfaces.OrganizationProvider, vetting interfaces.VettingService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ein, err := request.RequireString("ein")
		if err != nil || ein == "" {
			return textResult("Error: ein parameter is required"), nil
		}

		org, filings, err := provider.GetOrganization(ctx, ein)
		if err != nil {
			return lookupErrorResult(logger, ein, err), nil
		}

		result := vetting.EvaluateTier1(org, filings, time.Now())
		return textResult(formatEvaluation(result)), nil
	}
}

// handleCheckRedFlags implements the check_red_flags tool
func handleCheckRedFlags(provider interfaces.OrganizationProvider, vetting interfaces.VettingService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ein, err := request.RequireString("ein")
		if err != nil || ein == "" {
			return textResult("Error: ein parameter is required"), nil
		}

		org, filings, err := provider.GetOrganization(ctx, ein)
		if err != nil {
			return lookupErrorResult(logger, ein, err), nil
		}

		result := vetting.EvaluateRedFlagsOnly(org, filings, time.Now())
		return textResult(formatRedFlags(result)), nil
	}
}

// handleSearchNonprofits implements the search_nonprofits tool
func handleSearchNonprofits(provider interfaces.OrganizationProvider, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return textResult("Error: query parameter is required"), nil
		}

		limit := request.GetInt("limit", 10)
		if limit > 25 {
			limit = 25
		}
		if limit < 1 {
			limit = 1
		}

		results, err := provider.SearchOrganizations(ctx, query)
		if err != nil {
			logger.Error().Err(err).Str("query", query).Msg("Search failed")
			return textResult(fmt.Sprintf("Search error: %v", err)), nil
		}

		if len(results) > limit {
			results = results[:limit]
		}

		return textResult(formatSearchResults(query, results)), nil
	}
}

func lookupErrorResult(logger arbor.ILogger, ein string, err error) *mcp.CallToolResult {
	if errors.Is(err, propublica.ErrNotFound) {
		return textResult(fmt.Sprintf("No organization found for EIN %s", ein))
	}
	logger.Error().Err(err).Str("ein", ein).Msg("Organization lookup failed")
	return textResult(fmt.Sprintf("Lookup error: %v", err))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}
