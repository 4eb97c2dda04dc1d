// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package gitrepo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/codesee-io/codesee-action/pkg/actionerr"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const originName = "origin"

// Remote is one configured git remote
type Remote struct {
	Name  string
	Fetch string
	Push  string
}

// Remotes lists the remotes of the repository containing dir
func Remotes(dir string) ([]Remote, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}

	list, err := repo.Remotes()
	if err != nil {
		return nil, actionerr.Wrap(actionerr.RemoteResolutionFailure, "failed to list git remotes", err)
	}

	remotes := make([]Remote, 0, len(list))
	for _, r := range list {
		cfg := r.Config()
		if len(cfg.URLs) == 0 {
			continue
		}
		// git uses the first url for fetch and the last for push
		remotes = append(remotes, Remote{
			Name:  cfg.Name,
			Fetch: cfg.URLs[0],
			Push:  cfg.URLs[len(cfg.URLs)-1],
		})
	}
	return remotes, nil
}

// Origin returns owner/repo for the origin remote of the repository containing dir
func Origin(dir string) (string, error) {
	remotes, err := Remotes(dir)
	if err != nil {
		return "", err
	}
	return OriginFromRemotes(remotes)
}

// OriginFromRemotes picks the single origin remote and returns its owner/repo
func OriginFromRemotes(remotes []Remote) (string, error) {
	var origins []Remote
	for _, r := range remotes {
		if r.Name == originName {
			origins = append(origins, r)
		}
	}

	switch len(origins) {
	case 0:
		return "", actionerr.New(actionerr.RemoteResolutionFailure, "no origin remote configured")
	case 1:
	default:
		return "", actionerr.Newf(actionerr.RemoteResolutionFailure, "expected one origin remote, found %d", len(origins))
	}

	return ParseOwnerRepo(origins[0].Fetch)
}

// ParseOwnerRepo extracts owner/repo from an https, ssh or scp-style remote url
func ParseOwnerRepo(remote string) (string, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return "", actionerr.New(actionerr.RemoteResolutionFailure, "origin remote has no url")
	}

	var path string
	if strings.Contains(remote, "://") {
		u, err := url.Parse(remote)
		if err != nil {
			return "", actionerr.Wrap(actionerr.RemoteResolutionFailure, "invalid origin url", err)
		}
		path = u.Path
	} else if i := strings.Index(remote, ":"); i > 0 {
		// git@github.com:owner/repo.git
		path = remote[i+1:]
	} else {
		return "", actionerr.Newf(actionerr.RemoteResolutionFailure, "unsupported origin url %q", remote)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", actionerr.Newf(actionerr.RemoteResolutionFailure, "cannot find owner/repo in origin url %q", remote)
	}

	return parts[len(parts)-2] + "/" + parts[len(parts)-1], nil
}

// Checkout switches the worktree at dir to ref. Branches are tried before tags,
// then ref is treated as a revision.
func Checkout(dir, ref string) error {
	repo, err := open(dir)
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	candidates := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(ref),
		plumbing.NewRemoteReferenceName(originName, ref),
		plumbing.NewTagReferenceName(ref),
	}
	for _, name := range candidates {
		if _, err := repo.Reference(name, true); err == nil {
			if err := wt.Checkout(&git.CheckoutOptions{Branch: name}); err != nil {
				return fmt.Errorf("failed to checkout %s: %w", name, err)
			}
			return nil
		}
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return fmt.Errorf("unknown ref %q: %w", ref, err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash}); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", hash, err)
	}
	return nil
}

func open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, actionerr.Newf(actionerr.RemoteResolutionFailure, "%s is not inside a git repository", dir)
		}
		return nil, actionerr.Wrap(actionerr.RemoteResolutionFailure, "failed to open git repository", err)
	}
	return repo, nil
}
