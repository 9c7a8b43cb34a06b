// Package cli provides the cobra command tree for sizhu.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sizhu-cli/internal/logger"
)

// version is set at build time or by SetVersion.
var version = "dev"

// Global flag values.
var (
	verbose   bool
	configDir string
	subject   string
)

// Services wired by the bootstrap function.
var (
	chartService     driving.ChartService
	interpretService driving.InterpretService
	settingsService  driving.SettingsService
	validateLLM      func(ctx context.Context, settings *domain.LLMSettings) error
	promptWatcher    Runner
	closeServices    func() error
)

// Runner is a long-running background task such as a file watcher.
type Runner interface {
	Run(ctx context.Context) error
}

// Options carries global flag values to the bootstrap function.
type Options struct {
	// ConfigDir overrides the configuration directory. Empty uses the default.
	ConfigDir string

	// Verbose enables debug logging.
	Verbose bool
}

// Services holds everything a command run may need.
type Services struct {
	Chart     driving.ChartService
	Interpret driving.InterpretService
	Settings  driving.SettingsService

	// ValidateLLM pings the configured provider. Optional.
	ValidateLLM func(ctx context.Context, settings *domain.LLMSettings) error

	// PromptWatcher reloads prompt templates while the MCP server runs. Optional.
	PromptWatcher Runner

	// Close releases resources such as the database. Optional.
	Close func() error
}

// BootstrapFunc builds services once global flags are parsed.
type BootstrapFunc func(opts Options) (*Services, error)

var bootstrap BootstrapFunc

// annotationSkipBootstrap marks commands that run without services.
const annotationSkipBootstrap = "sizhu.skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "sizhu",
	Short: "Four Pillars (八字) calendar engine",
	Long: `sizhu converts a Gregorian birth date, hour and gender into the four
sexagenary pillars (year, month, day, hour) of Chinese metaphysics.

Charts can be saved to a local history, served to AI assistants over MCP,
and read back through a configured LLM provider.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sizhu)")
	rootCmd.PersistentFlags().StringVar(&subject, "subject", "", "subject recorded on saved charts")
}

// SetVersion sets the version reported by 'sizhu version'.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that wires services for each run.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly, bypassing the bootstrap function.
func SetServices(svc *Services) {
	if svc == nil {
		return
	}
	chartService = svc.Chart
	interpretService = svc.Interpret
	settingsService = svc.Settings
	validateLLM = svc.ValidateLLM
	promptWatcher = svc.PromptWatcher
	closeServices = svc.Close
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("Closing services: %v", cerr)
		}
		closeServices = nil
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if bootstrap == nil || cmd.Annotations[annotationSkipBootstrap] == "true" {
		return nil
	}

	svc, err := bootstrap(Options{ConfigDir: configDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(svc)
	return nil
}

// requireChartService returns the chart service or a configuration error.
func requireChartService() (driving.ChartService, error) {
	if chartService == nil {
		return nil, errors.New("chart service not configured")
	}
	return chartService, nil
}
