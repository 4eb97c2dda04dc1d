// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/codesee-io/codesee-action/codesee/cmd"
	"github.com/codesee-io/codesee-action/pkg/actions"
)

func main() {
	if err := cmd.Execute(); err != nil {
		actions.New(os.Stdout).SetFailed(fmt.Sprintf("CodeSee Map failed: %v", err))
		os.Exit(1)
	}
}
