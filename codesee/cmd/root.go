// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/codesee-io/codesee-action/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	envFile string

	// inputs holds action inputs, flags and the config file for `run`
	inputs = config.NewViper()
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables (INPUT_*, GITHUB_*) from a dotenv file")

	rootCmd.AddCommand(run())
	rootCmd.AddCommand(Configuration())
	rootCmd.AddCommand(versionCmd())
}

var rootCmd = &cobra.Command{
	Use:   "codesee",
	Short: "CodeSee Map action",
	Long:  "Generate, upload and enrich CodeSee maps from a CI workflow",
	// main reports the error as a workflow failure
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
		}

		level := slog.LevelInfo
		if verbose || os.Getenv("RUNNER_DEBUG") == "1" {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := inputs.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", key, err))
	}
}
