// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package cmd

import "github.com/spf13/cobra"

var configDir string

func Configuration() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration actions",
		Long:  "Generate or update the action config file",
	}

	cmd.PersistentFlags().StringVarP(&configDir, "dir", "d", ".", "Directory holding the config file")

	cmd.AddCommand(generateConfig())
	cmd.AddCommand(updateConfig())

	return cmd
}
