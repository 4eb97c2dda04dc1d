// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/codesee-io/codesee-action/pkg/configuration"
	"github.com/codesee-io/codesee-action/pkg/constants"
	"github.com/spf13/cobra"
)

var (
	forceWrite bool
)

func init() {
	generatecmd.Flags().BoolVarP(&forceWrite, "force", "f", false, "Force creation when file exists")
}

func generateConfig() *cobra.Command {
	generatecmd.RunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return configuration.GenerateConfig(configDir, forceWrite)
	}

	return generatecmd
}

var generatecmd = &cobra.Command{
	Use:   "generate",
	Short: fmt.Sprintf("Generate %s config file", constants.ConfigFilename),
	Long: fmt.Sprintf("Generate a %s config file for the CodeSee action "+
		"with default values.", constants.ConfigFilename),
}
