// Command sizhu computes Four Pillars charts from the command line, a TUI or an MCP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sizhu-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/sizhu-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sizhu-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sizhu-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sizhu-cli/internal/core/services"
	"github.com/custodia-labs/sizhu-cli/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	// envConfigDir overrides the default configuration directory.
	envConfigDir = "SIZHU_CONFIG_DIR"

	// memoryDir as the config directory keeps settings and history in memory.
	memoryDir = ":memory:"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load() //nolint:errcheck // optional file

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	err := cli.Execute(ctx)
	logger.Sync()
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires adapters and services for one command run.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	dir, err := resolveConfigDir(opts.ConfigDir)
	if err != nil {
		return nil, err
	}

	if dir == memoryDir {
		return memoryServices()
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("config store: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return nil, fmt.Errorf("chart store: %w", err)
	}

	var cache driven.ChartCache
	if settings.Cache.Size > 0 {
		lru, err := memory.NewChartCache(settings.Cache.Size)
		if err != nil {
			_ = store.Close() //nolint:errcheck // already failing
			return nil, fmt.Errorf("chart cache: %w", err)
		}
		cache = lru
	}
	chartService := services.NewChartService(store.ChartStore(), cache, *settings)

	promptDir := filepath.Join(dir, "prompts")
	promptStore, err := file.NewPromptStore(promptDir, services.DefaultPrompts())
	if err != nil {
		_ = store.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("prompt store: %w", err)
	}

	// An unreachable or misconfigured provider must not block chart commands.
	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM provider unavailable: %v", err)
		llm = nil
	}

	return &cli.Services{
		Chart:         chartService,
		Interpret:     services.NewInterpretService(llm, promptStore),
		Settings:      settingsService,
		ValidateLLM:   ai.ValidateLLMConfig,
		PromptWatcher: file.NewPromptWatcher(promptStore, promptDir, nil),
		Close: func() error {
			var errs []error
			if llm != nil {
				errs = append(errs, llm.Close())
			}
			errs = append(errs, store.Close())
			return errors.Join(errs...)
		},
	}, nil
}

// memoryServices wires everything over in-memory adapters. Nothing touches disk.
func memoryServices() (*cli.Services, error) {
	settingsService := services.NewSettingsService(memory.NewConfigStore())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	cache, err := memory.NewChartCache(settings.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("chart cache: %w", err)
	}

	return &cli.Services{
		Chart:       services.NewChartService(memory.NewChartStore(), cache, *settings),
		Interpret:   services.NewInterpretService(nil, nil),
		Settings:    settingsService,
		ValidateLLM: ai.ValidateLLMConfig,
	}, nil
}

// resolveConfigDir picks the flag value, then SIZHU_CONFIG_DIR, then ~/.sizhu.
func resolveConfigDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if dir := os.Getenv(envConfigDir); dir != "" {
		return dir, nil
	}
	return file.DefaultDir()
}
