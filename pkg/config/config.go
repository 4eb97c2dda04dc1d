// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/codesee-io/codesee-action/pkg/actionerr"
	"github.com/codesee-io/codesee-action/pkg/constants"
	"github.com/spf13/viper"
)

// Input keys. Action inputs arrive as INPUT_<KEY> environment variables and the
// same keys are used for command flags and the config file.
const (
	KeyAPIToken           = "api_token"
	KeyWebpackConfigPath  = "webpack_config_path"
	KeySupportTypescript  = "support_typescript"
	KeySkipUpload         = "skip_upload"
	KeyStep               = "step"
	KeyLanguages          = "languages"
	KeyGitHubRef          = "github_ref"
	KeyWithEventData      = "with_event_data"
	KeyWithEventName      = "with_event_name"
	KeyInsightsServiceURL = "insights_service_url"
	KeyCheckoutRef        = "checkout_ref"
	KeyWorkDir            = "workdir"

	keyEnvEventName  = "github_event_name"
	keyEnvEventPath  = "github_event_path"
	keyEnvRepository = "github_repository"
	keyEnvHeadRef    = "github_head_ref"
	keyEnvBaseRef    = "github_base_ref"
	keyEnvWorkspace  = "github_workspace"
)

// RunConfig is the resolved configuration of one action run. It is built once by
// Resolve and only read afterwards; the language map is private so it cannot be
// changed through a copy.
type RunConfig struct {
	APIToken           string
	WebpackConfigPath  string
	SupportTypescript  bool
	SkipUpload         bool
	Step               string
	Origin             string
	BaseRef            string
	HeadRef            string
	InsightsServiceURL string
	CheckoutRef        string
	EventName          string
	EventPath          string
	WorkDir            string

	languages map[string]bool
}

// WithLanguages returns a copy of c using langs as the language map
func (c RunConfig) WithLanguages(langs map[string]bool) RunConfig {
	c.languages = maps.Clone(langs)
	return c
}

// LanguageEnabled reports whether the language analyzer name is switched on
func (c RunConfig) LanguageEnabled(name string) bool {
	return c.languages[name]
}

// EnabledLanguages returns the enabled language names, sorted
func (c RunConfig) EnabledLanguages() []string {
	var langs []string
	for name, on := range c.languages {
		if on {
			langs = append(langs, name)
		}
	}
	slices.Sort(langs)
	return langs
}

// RequireCredential fails when the API token needed for upload and insight steps is absent.
func (c RunConfig) RequireCredential() error {
	if strings.TrimSpace(c.APIToken) == "" {
		return actionerr.Newf(actionerr.MissingRequiredConfig, "input %q is required for step %q", KeyAPIToken, c.Step)
	}
	return nil
}

// LogValue keeps the token out of structured logs.
func (c RunConfig) LogValue() slog.Value {
	token := ""
	if c.APIToken != "" {
		token = "***"
	}
	return slog.GroupValue(
		slog.String("api_token", token),
		slog.String("webpack_config_path", c.WebpackConfigPath),
		slog.Bool("support_typescript", c.SupportTypescript),
		slog.Bool("skip_upload", c.SkipUpload),
		slog.String("step", c.Step),
		slog.String("origin", c.Origin),
		slog.String("base_ref", c.BaseRef),
		slog.String("head_ref", c.HeadRef),
		slog.Any("languages", c.EnabledLanguages()),
		slog.String("event_name", c.EventName),
		slog.String("workdir", c.WorkDir),
	)
}

// NewViper returns a viper instance with defaults and environment bindings for
// every key Resolve reads. Flags and a config file may be layered on top by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("INPUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyStep, constants.DefaultStep)

	mustBindEnv(v, keyEnvEventName, "GITHUB_EVENT_NAME")
	mustBindEnv(v, keyEnvEventPath, "GITHUB_EVENT_PATH")
	mustBindEnv(v, keyEnvRepository, "GITHUB_REPOSITORY")
	mustBindEnv(v, keyEnvHeadRef, "GITHUB_HEAD_REF")
	mustBindEnv(v, keyEnvBaseRef, "GITHUB_BASE_REF")
	mustBindEnv(v, keyEnvWorkspace, "GITHUB_WORKSPACE")

	return v
}

func mustBindEnv(v *viper.Viper, key string, env string) {
	if err := v.BindEnv(key, env); err != nil {
		panic(fmt.Sprintf("failed to bind %s to %s: %v", key, env, err))
	}
}

// OriginLookup resolves owner/repo when GITHUB_REPOSITORY is not set
type OriginLookup func(workDir string) (string, error)

// Resolve builds the RunConfig from v. The head ref from GITHUB_HEAD_REF wins over
// the github_ref input: on pull request events it is always the PR branch, while a
// configured ref may be stale. Origin is only taken from GITHUB_REPOSITORY here;
// see WithOrigin.
func Resolve(v *viper.Viper) (RunConfig, error) {
	cfg := RunConfig{
		APIToken:           strings.TrimSpace(v.GetString(KeyAPIToken)),
		WebpackConfigPath:  optionalPath(v.GetString(KeyWebpackConfigPath)),
		Step:               strings.TrimSpace(v.GetString(KeyStep)),
		BaseRef:            strings.TrimSpace(v.GetString(keyEnvBaseRef)),
		InsightsServiceURL: strings.TrimSpace(v.GetString(KeyInsightsServiceURL)),
		CheckoutRef:        strings.TrimSpace(v.GetString(KeyCheckoutRef)),
	}
	if cfg.Step == "" {
		cfg.Step = constants.DefaultStep
	}

	var err error
	if cfg.SupportTypescript, err = parseBool(v, KeySupportTypescript); err != nil {
		return RunConfig{}, err
	}
	if cfg.SkipUpload, err = parseBool(v, KeySkipUpload); err != nil {
		return RunConfig{}, err
	}
	if cfg.languages, err = parseLanguages(v.Get(KeyLanguages)); err != nil {
		return RunConfig{}, err
	}

	cfg.HeadRef = strings.TrimSpace(v.GetString(keyEnvHeadRef))
	if cfg.HeadRef == "" {
		cfg.HeadRef = strings.TrimSpace(v.GetString(KeyGitHubRef))
	}

	cfg.EventName = firstNonEmpty(v.GetString(KeyWithEventName), v.GetString(keyEnvEventName))
	cfg.EventPath = firstNonEmpty(v.GetString(KeyWithEventData), v.GetString(keyEnvEventPath))
	cfg.WorkDir = firstNonEmpty(v.GetString(KeyWorkDir), v.GetString(keyEnvWorkspace), ".")

	cfg.Origin = strings.TrimSpace(v.GetString(keyEnvRepository))

	return cfg, nil
}

// WithOrigin returns a copy of c with Origin filled in by lookup when it is not
// already set. Only steps that talk to the server need it.
func (c RunConfig) WithOrigin(lookup OriginLookup) (RunConfig, error) {
	if c.Origin != "" || lookup == nil {
		return c, nil
	}

	origin, err := lookup(c.WorkDir)
	if err != nil {
		return RunConfig{}, err
	}
	c.Origin = origin
	return c, nil
}

func optionalPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == constants.NullInput {
		return ""
	}
	return raw
}

// parseBool follows the YAML 1.2 core schema used by the Actions toolkit. An
// absent input is false.
func parseBool(v *viper.Viper, key string) (bool, error) {
	raw := strings.TrimSpace(v.GetString(key))
	switch raw {
	case "", "false", "False", "FALSE":
		return false, nil
	case "true", "True", "TRUE":
		return true, nil
	}
	return false, actionerr.Newf(actionerr.InvalidConfig,
		"input %q does not meet YAML 1.2 \"Core Schema\" specification: %q (support true | True | TRUE | false | False | FALSE)", key, raw)
}

// parseLanguages accepts a JSON object string (action input or flag) or a map
// (config file).
func parseLanguages(raw any) (map[string]bool, error) {
	langs := map[string]bool{}

	switch val := raw.(type) {
	case nil:
		return langs, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return langs, nil
		}
		if err := json.Unmarshal([]byte(val), &langs); err != nil {
			return nil, actionerr.Wrap(actionerr.InvalidConfig, fmt.Sprintf("input %q must be a JSON object of language to boolean", KeyLanguages), err)
		}
		return langs, nil
	case map[string]any:
		for name, on := range val {
			switch b := on.(type) {
			case bool:
				langs[name] = b
			case string:
				parsed, ok := map[string]bool{"true": true, "false": false}[strings.ToLower(strings.TrimSpace(b))]
				if !ok {
					return nil, actionerr.Newf(actionerr.InvalidConfig, "language %q has non-boolean value %q", name, b)
				}
				langs[name] = parsed
			default:
				return nil, actionerr.Newf(actionerr.InvalidConfig, "language %q has non-boolean value %v", name, on)
			}
		}
		return langs, nil
	case map[string]bool:
		return maps.Clone(val), nil
	default:
		return nil, actionerr.Newf(actionerr.InvalidConfig, "input %q has unsupported type %T", KeyLanguages, raw)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
