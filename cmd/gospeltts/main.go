package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/gospeltts/internal"
	"codeberg.org/snonux/gospeltts/internal/cli"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	serveCmd := cli.CreateServeCommand(flags)
	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), cli.LoadConfig())
	}

	convertCmd := cli.CreateConvertCommand(flags)
	convertCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd.Context(), cli.LoadConfig(), flags, args, cmd.OutOrStdout())
	}

	sweepCmd := cli.CreateSweepCommand()
	sweepCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runSweep(cli.LoadConfig(), cmd.OutOrStdout())
	}

	verseCmd := cli.CreateVerseCommand()
	verseCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runVerse(cmd.Context(), cli.LoadConfig(), args, cmd.OutOrStdout())
	}

	modelsCmd := cli.CreateModelsCommand()
	modelsCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runModels(cmd.Context(), cmd.OutOrStdout())
	}

	archiveCmd := cli.CreateArchiveCommand()
	archiveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runArchive(cli.LoadConfig(), cmd.OutOrStdout())
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gospeltts %s\n", internal.Version)
		},
	}

	rootCmd.AddCommand(serveCmd, convertCmd, sweepCmd, verseCmd, modelsCmd, archiveCmd, versionCmd)

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
