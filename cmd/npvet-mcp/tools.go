package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createVetNonprofitTool returns the vet_nonprofit tool definition
func createVetNonprofitTool() mcp.Tool {
	return mcp.NewTool("vet_nonprofit",
		mcp.WithDescription("Run a full Tier 1 screening of a nonprofit by EIN: weighted checks, red flags, score, and recommendation"),
		mcp.WithString("ein",
			mcp.Required(),
			mcp.Description("Employer Identification Number (format: 13-1234567 or 131234567)"),
		),
	)
}

// createCheckRedFlagsTool returns the check_red_flags tool definition
func createCheckRedFlagsTool() mcp.Tool {
	return mcp.NewTool("check_red_flags",
		mcp.WithDescription("Scan a nonprofit's public filing data for red flags only, without producing a score"),
		mcp.WithString("ein",
			mcp.Required(),
			mcp.Description("Employer Identification Number (format: 13-1234567 or 131234567)"),
		),
	)
}

// createSearchNonprofitsTool returns the search_nonprofits tool definition
func createSearchNonprofitsTool() mcp.Tool {
	return mcp.NewTool("search_nonprofits",
		mcp.WithDescription("Search registered nonprofits by name and return matching EINs"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Organization name or keywords"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 10, max: 25)"),
		),
	)
}
