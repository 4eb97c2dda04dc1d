// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package api

// EventPayload is the subset of a GitHub webhook event payload read by the action.
// Every nested record is optional so that partial payloads decode without error.
type EventPayload struct {
	PullRequest *PullRequest `json:"pull_request,omitempty"`
}

type PullRequest struct {
	Number int     `json:"number,omitempty"`
	Head   *PRHead `json:"head,omitempty"`
	Base   *PRBase `json:"base,omitempty"`
}

type PRHead struct {
	Ref  string      `json:"ref,omitempty"`
	SHA  string      `json:"sha,omitempty"`
	Repo *Repository `json:"repo,omitempty"`
}

type PRBase struct {
	Ref  string      `json:"ref,omitempty"`
	SHA  string      `json:"sha,omitempty"`
	Repo *Repository `json:"repo,omitempty"`
}

type Repository struct {
	FullName string `json:"full_name,omitempty"`
	// Fork is nil when the payload does not say, which is not the same as false
	Fork *bool `json:"fork,omitempty"`
}
