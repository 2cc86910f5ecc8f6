package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// options holds the command line flags.
type options struct {
	ConfigPath  string
	Debug       bool
	ScriptPath  string
	MetricsAddr string
	BaseMonitor bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "frameloop",
		Short: "Frame scheduler demo: a crossfading jukebox",
		Long: `Runs the frame loop with an ebiten window and a scripted jukebox.

Overworld songs crossfade on change; battle music pauses the overworld song
and fades back into it when the battle ends.

Example:
  frameloop --config frameloop.yaml
  frameloop --script my_jukebox.tengo --debug`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "debug logging and HUD")
	cmd.Flags().StringVar(&opts.ScriptPath, "script", "", "tengo behaviour script (overrides config)")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVarP(&opts.BaseMonitor, "base-monitor", "m", false, "use the first monitor instead of the primary one")

	return cmd
}
