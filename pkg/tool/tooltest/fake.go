// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

// Package tooltest provides a scripted tool.Runner for tests.
package tooltest

import (
	"context"
	"slices"
)

// Fake records every argument vector it is given. Handler, when set, decides the
// exit code and may write artifacts the real CLI would produce.
type Fake struct {
	Calls   [][]string
	Handler func(args []string) (int, error)
}

func (f *Fake) Run(_ context.Context, args []string) (int, error) {
	f.Calls = append(f.Calls, slices.Clone(args))
	if f.Handler == nil {
		return 0, nil
	}
	return f.Handler(args)
}

// Subcommands returns the first argument of each recorded call, in order
func (f *Fake) Subcommands() []string {
	subs := make([]string, 0, len(f.Calls))
	for _, call := range f.Calls {
		if len(call) > 0 {
			subs = append(subs, call[0])
		}
	}
	return subs
}
