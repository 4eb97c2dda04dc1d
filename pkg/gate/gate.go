// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package gate

import (
	"slices"

	"github.com/codesee-io/codesee-action/pkg/config"
	"github.com/codesee-io/codesee-action/pkg/event"
)

// RepoCodeLanguages are analyzers that execute code from the repository being mapped
// (for python, the project's own modules are imported to resolve dependencies).
var RepoCodeLanguages = []string{"python"}

const (
	NoteAllAllowed     = "all languages allowed"
	NoteNoCredential   = "forked pull request without API token, all languages allowed"
	NoteForkDisabled   = "forked pull request with API token, disabling languages that execute repository code"
	NoteUnknownPayload = "pull request payload does not say whether head is a fork, assuming it is"
)

// Decision lists the capabilities to switch off for this run
type Decision struct {
	Disabled []string
	Note     string
}

// IsDisabled reports whether name was switched off
func (d Decision) IsDisabled(name string) bool {
	return slices.Contains(d.Disabled, name)
}

// Decide applies the fork policy. A forked pull request that carries the API token
// must not run analyzers that execute repository code. When the payload cannot tell
// whether a pull request is forked it is treated as forked.
func Decide(cfg config.RunConfig, ev event.Context) Decision {
	forked, err := event.IsForkedPullRequestEvent(ev.Name, ev.Payload)
	note := NoteForkDisabled
	if err != nil {
		forked = true
		note = NoteUnknownPayload
	}

	if !forked {
		return Decision{Note: NoteAllAllowed}
	}
	if cfg.APIToken == "" {
		return Decision{Note: NoteNoCredential}
	}

	var disabled []string
	for _, lang := range RepoCodeLanguages {
		if cfg.LanguageEnabled(lang) {
			disabled = append(disabled, lang)
		}
	}
	if len(disabled) == 0 {
		return Decision{Note: NoteAllAllowed}
	}
	slices.Sort(disabled)

	return Decision{Disabled: slices.Compact(disabled), Note: note}
}
