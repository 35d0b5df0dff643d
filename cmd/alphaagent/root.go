package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configPath string
	forceMock  bool
	langFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "alphaagent",
	Short: "Multi-agent stock analysis pipeline",
	Long: `AlphaAgent runs a staged pipeline of analysis agents over a stock and
synthesizes their reports into a single recommendation.

Stages:
- Signals: industry, news and quant agents
- Perspectives: competitor, hedging and debate agents (optional inputs)
- Backtest: a model-risk review of the quant signal
- Synthesis: the judge, gated on the critical signals

With no arguments, launches an interactive TUI where you can enter tickers
and watch each run live. Without an API key, agents run in mock mode.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		rt, err := newRuntime(nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		return runTUI(ctx, rt, nil)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user config plus .alphaagent.yaml)")
	rootCmd.PersistentFlags().BoolVar(&forceMock, "mock", false, "Use mock agents even when an API key is configured")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Output language: EN or CN (default from config)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
