package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ainest/cairocodec/internal/config"
)

const (
	programName = "cairocodec"
)

var (
	globalFlags = struct {
		debug bool
	}{}
	configFile string
)

func commonRun() *slog.Logger {
	// Configure logger
	logLevel := slog.LevelInfo
	addSource := false
	if globalFlags.debug {
		logLevel = slog.LevelDebug
		addSource = true
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     logLevel,
		}),
	)
	slog.SetDefault(logger)
	return logger
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Encode and decode Cairo ByteArray and u256 values",
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "path to config file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		commonRun()
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	}

	// Subcommands
	rootCmd.AddCommand(encodeCommand())
	rootCmd.AddCommand(decodeCommand())
	rootCmd.AddCommand(splitCommand())
	rootCmd.AddCommand(combineCommand())
	rootCmd.AddCommand(datasetsCommand())
	rootCmd.AddCommand(datasetCommand())
	return rootCmd
}

func main() {
	// Execute cobra command
	if err := newRootCommand().Execute(); err != nil {
		// NOTE: we purposely don't display the error, since cobra will have already displayed it
		os.Exit(1)
	}
}
