package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/townpaint/internal/server"
)

func main() {
	var (
		verbose  bool
		settings string
	)

	rootCmd := &cobra.Command{
		Use:          "townpaint",
		Short:        "Paint zones and roads, watch a town settle",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&settings, "config", "c", "", "settings file replacing the project's settings")

	rootCmd.AddCommand(runCmd(&settings))
	rootCmd.AddCommand(validateCmd(&settings))
	rootCmd.AddCommand(serveCmd(&settings))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd(settings *string) *cobra.Command {
	var (
		asJSON bool
		ticks  int
	)

	cmd := &cobra.Command{
		Use:   "run [project-path]",
		Short: "Replay a scenario and run the simulation headless",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRun(args[0], *settings, ticks, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the final snapshot and statistics as JSON")
	cmd.Flags().IntVarP(&ticks, "ticks", "n", 0, "ticks to run (default: the project's ticks)")
	return cmd
}

func validateCmd(settings *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Check a scenario's settings and replay it briefly",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], *settings)
		},
	}
}

func serveCmd(settings *string) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server with a live simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadSim(args[0], *settings)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(s.sim, port, slog.Default()).Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
