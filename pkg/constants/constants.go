// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package constants

const (
	// ToolPackage is the npm package spec handed to npx
	ToolPackage = "codesee@latest"

	// ToolLauncher runs ToolPackage without a prior install step
	ToolLauncher = "npx"

	// GitHubURL prefixes owner/repo to form the repository URL sent on upload
	GitHubURL = "https://github.com/"

	MapFile      = "codesee.map.json"
	MetadataFile = "codesee.metadata.json"

	// NullInput is what the action metadata passes for an unset optional path input
	NullInput = "__NULL__"

	DefaultStep = "legacy"

	// ConfigFilename is the optional config file read from the working directory
	ConfigFilename = ".codesee-action.yaml"
)

// InsightTypes are collected in this order by the insights stage
var InsightTypes = []string{
	"commitCountLast30Days",
	"lastCommitDate",
	"createDate",
	"linesOfCode",
}

// InsightFile returns the artifact path written by `codesee insight` for insightType
func InsightFile(insightType string) string {
	return "codesee." + insightType + ".json"
}
