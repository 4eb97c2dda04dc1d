// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codesee-io/codesee-action/pkg/config"
	"github.com/codesee-io/codesee-action/pkg/constants"
	"github.com/codesee-io/codesee-action/pkg/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFile string

func init() {
	flags := runcmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", fmt.Sprintf("Config file (default <workdir>/%s)", constants.ConfigFilename))
	flags.StringP("step", "s", "", "Step to run: map, mapUpload, insights or legacy")
	flags.String("webpack-config-path", "", "Webpack config used to resolve aliases")
	flags.Bool("support-typescript", false, "Pass --typescript to the map command")
	flags.Bool("skip-upload", false, "Generate artifacts without uploading them")
	flags.String("languages", "", `Languages to analyze as a JSON object, e.g. '{"python": true}'`)
	flags.String("github-ref", "", "Head ref reported with uploads")
	flags.String("event-name", "", "Event name, overrides GITHUB_EVENT_NAME")
	flags.String("event-data", "", "Event payload path, overrides GITHUB_EVENT_PATH")
	flags.String("insights-service-url", "", "Insight upload endpoint")
	flags.String("checkout-ref", "", "Ref to check out before generating the map")
	flags.StringP("workdir", "d", "", "Repository directory (default GITHUB_WORKSPACE or .)")

	// Bind flags to viper
	mustBindPFlag(config.KeyStep, flags.Lookup("step"))
	mustBindPFlag(config.KeyWebpackConfigPath, flags.Lookup("webpack-config-path"))
	mustBindPFlag(config.KeySupportTypescript, flags.Lookup("support-typescript"))
	mustBindPFlag(config.KeySkipUpload, flags.Lookup("skip-upload"))
	mustBindPFlag(config.KeyLanguages, flags.Lookup("languages"))
	mustBindPFlag(config.KeyGitHubRef, flags.Lookup("github-ref"))
	mustBindPFlag(config.KeyWithEventName, flags.Lookup("event-name"))
	mustBindPFlag(config.KeyWithEventData, flags.Lookup("event-data"))
	mustBindPFlag(config.KeyInsightsServiceURL, flags.Lookup("insights-service-url"))
	mustBindPFlag(config.KeyCheckoutRef, flags.Lookup("checkout-ref"))
	mustBindPFlag(config.KeyWorkDir, flags.Lookup("workdir"))
}

func run() *cobra.Command {
	runcmd.RunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if err := readConfigFile(inputs); err != nil {
			return err
		}

		return runner.Run(cmd.Context(), inputs, cmd.OutOrStdout())
	}

	return runcmd
}

// readConfigFile layers the config file under flags and inputs. The default file
// is optional; one named with --config is not.
func readConfigFile(v *viper.Viper) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		return nil
	}

	dir := v.GetString(config.KeyWorkDir)
	if dir == "" {
		dir = os.Getenv("GITHUB_WORKSPACE")
	}
	if dir == "" {
		dir = "."
	}

	v.SetConfigFile(filepath.Join(dir, constants.ConfigFilename))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

var runcmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured CodeSee step",
	Long: `Run one step of the CodeSee action.

Inputs are read from INPUT_* environment variables the way GitHub Actions
passes them, from flags, and from an optional config file:
    map        generate codesee.map.json
    mapUpload  upload the map generated earlier
    insights   collect and upload insights unless they already exist
    legacy     all of the above in one run (default)`,
	Args: cobra.NoArgs,
}
