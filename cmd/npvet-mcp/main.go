package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/common"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/interfaces"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/services/propublica"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/services/vetting"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/storage/badger"
)

func main() {
	// Load configuration. NPVET_CONFIG points at an explicit file;
	// otherwise npvet.toml is picked up when present, defaults apply when not.
	configPath := os.Getenv("NPVET_CONFIG")
	if configPath == "" {
		if _, err := os.Stat("npvet.toml"); err == nil {
			configPath = "npvet.toml"
		}
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal console logger so log output does not clutter MCP stdio.
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	// Payload cache is optional for the MCP server.
	var payloadCache interfaces.PayloadCache
	if config.Cache.Enabled {
		db, err := badger.NewBadgerDB(logger, &config.Cache.Badger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to open payload cache, continuing without it")
		} else {
			defer db.Close()
			payloadCache = badger.NewPayloadStorage(db, logger)
		}
	}

	provider := propublica.NewService(config.Provider, config.Cache, payloadCache, logger)

	vettingService, err := vetting.NewService(config.Vetting, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid screening configuration")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"npvet",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Register screening tools
	mcpServer.AddTool(createVetNonprofitTool(), handleVetNonprofit(provider, vettingService, logger))
	mcpServer.AddTool(createCheckRedFlagsTool(), handleCheckRedFlags(provider, vettingService, logger))
	mcpServer.AddTool(createSearchNonprofitsTool(), handleSearchNonprofits(provider, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
