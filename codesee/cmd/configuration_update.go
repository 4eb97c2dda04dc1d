// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/codesee-io/codesee-action/pkg/configuration"
	"github.com/codesee-io/codesee-action/pkg/constants"
	"github.com/spf13/cobra"
)

func updateConfig() *cobra.Command {
	updatecmd.RunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return configuration.UpdateConfig(configDir)
	}

	return updatecmd
}

var updatecmd = &cobra.Command{
	Use:   "update",
	Short: fmt.Sprintf("Update %s config file", constants.ConfigFilename),
	Long: fmt.Sprintf("Add settings missing from a %s config file, "+
		"keeping the values already set.", constants.ConfigFilename),
}
