// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package api

// Metadata is written by `codesee metadata` to codesee.metadata.json
type Metadata struct {
	Insights []string `json:"insights"`
}
