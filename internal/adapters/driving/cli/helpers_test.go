package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sizhu-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sizhu-cli/internal/core/services"
	"github.com/custodia-labs/sizhu-cli/internal/logger"
)

// stubLLM is a driven.LLMService returning a canned reply.
type stubLLM struct {
	reply    string
	err      error
	messages []driven.ChatMessage
}

func (s *stubLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	s.messages = messages
	return s.reply, s.err
}

func (s *stubLLM) ModelName() string          { return "stub" }
func (s *stubLLM) Ping(context.Context) error { return nil }
func (s *stubLLM) Close() error               { return nil }

// testEnv holds the services installed for a test.
type testEnv struct {
	chart    *services.ChartService
	settings *services.SettingsService
	llm      *stubLLM
}

// setupTestServices installs real services over in-memory adapters.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	settingsSvc := services.NewSettingsService(memory.NewConfigStore())
	settings, err := settingsSvc.Get()
	require.NoError(t, err)

	cache, err := memory.NewChartCache(16)
	require.NoError(t, err)

	env := &testEnv{
		chart:    services.NewChartService(memory.NewChartStore(), cache, *settings),
		settings: settingsSvc,
		llm:      &stubLLM{reply: "A yang water day master in winter."},
	}

	SetServices(&Services{
		Chart:     env.chart,
		Interpret: services.NewInterpretService(env.llm, nil),
		Settings:  env.settings,
	})

	t.Cleanup(func() {
		SetServices(&Services{})
		resetCommand()
	})
	return env
}

// executeCommand runs the root command with args and returns combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandContext(t, context.Background(), args...)
}

// executeCommandContext is executeCommand with a caller-supplied context.
func executeCommandContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer resetCommand()

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

// resetCommand restores flags and streams changed by a previous run.
func resetCommand() {
	resetFlags(rootCmd)
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	rootCmd.SetIn(nil)
	logger.SetVerbose(false)
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue) //nolint:errcheck // defaults always parse
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
