package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "mojibox",
		Short:         "Flexible Unicode string manipulation and analysis",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			return ctx.startInvocation(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level for stderr diagnostics (debug, info, warn, error)")

	for _, cmd := range newUnitCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newDumpCommand(ctx))
	rootCmd.AddCommand(newScrubCommand(ctx))
	rootCmd.AddCommand(newBin2HexCommand(ctx))
	rootCmd.AddCommand(newHex2BinCommand(ctx))
	rootCmd.AddCommand(newEscapeCommand(ctx))
	rootCmd.AddCommand(newUnescapeCommand(ctx))
	rootCmd.AddCommand(newOrdCommand(ctx))
	rootCmd.AddCommand(newChrCommand(ctx))
	rootCmd.AddCommand(newEnginesCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"
