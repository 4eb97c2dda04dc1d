// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/codesee-io/codesee-action/pkg/constants"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X .../codesee/cmd.version=..."
var version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "codesee-action %s (runs %s %s)\n", version, constants.ToolLauncher, constants.ToolPackage)
			return err
		},
	}
}
