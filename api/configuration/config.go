// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package configuration

// Config mirrors the action inputs that may be pinned in .codesee-action.yaml.
// Keys match the input names so viper resolves both sources with one key.
type Config struct {
	Step               string          `yaml:"step"`                           // map, mapUpload, insights or legacy
	SupportTypescript  bool            `yaml:"support_typescript"`             // Pass --typescript to the map step
	SkipUpload         bool            `yaml:"skip_upload"`                    // Generate artifacts without uploading them
	WebpackConfigPath  string          `yaml:"webpack_config_path,omitempty"`  // Webpack config used to resolve aliases
	Languages          map[string]bool `yaml:"languages"`                      // Language analyzers to enable
	InsightsServiceURL string          `yaml:"insights_service_url,omitempty"` // Override the insight upload endpoint
}
