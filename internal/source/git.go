// Copyright 2026 The Authors (see AUTHORS file)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	farm "github.com/dgryski/go-farm"

	"github.com/archetect-dev/archetect/internal/errs"
)

// defaultBranchCandidates is the order default-branch resolution tries when
// no ref is pinned, grounded in the original implementation's
// find_default_branch.
var defaultBranchCandidates = []string{"develop", "main", "master"}

// gitRunner shells out to the system git binary.
type gitRunner struct{}

func (g *gitRunner) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var out strings.Builder
	var stderr strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		exitCode := -1
		if ee, ok := err.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		}
		return "", &errs.SourceError{
			Kind:     errs.RemoteSourceError,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return out.String(), nil
}

func (g *gitRunner) showRefExists(ctx context.Context, dir, ref string) bool {
	_, err := g.run(ctx, dir, "show-ref", "-q", "--verify", "refs/remotes/origin/"+ref)
	return err == nil
}

// resolveGit materializes a remote git Source: the cache directory is keyed
// by a 64-bit fingerprint of the repo URL (spec.md §6 "Cache layout"), and
// within a single Resolver a given URL is cloned/fetched at most once even
// if referenced by multiple nested archetypes. Separate Resolvers in the
// same process do not share this record.
func (r *Resolver) resolveGit(ctx context.Context, location, url, ref string) (*Source, error) {
	cacheKey := fmt.Sprintf("%016x", farm.Fingerprint64([]byte(url)))
	cacheDir := filepath.Join(r.Layout.GitCacheDir(), cacheKey)

	alreadyTouched := r.markTouched(url)
	cloned := dirExists(cacheDir)

	switch {
	case !cloned && r.Offline:
		return nil, &errs.SourceError{Kind: errs.OfflineAndNotCached, Location: location}
	case !cloned:
		if err := os.MkdirAll(filepath.Dir(cacheDir), 0o700); err != nil {
			return nil, &errs.SourceError{Kind: errs.IoError, Location: location, Err: err}
		}
		if _, err := r.git.run(ctx, "", "clone", "--no-checkout", url, cacheDir); err != nil {
			return nil, err
		}
	case !alreadyTouched && !r.Offline:
		if _, err := r.git.run(ctx, cacheDir, "fetch", "--all", "--tags"); err != nil {
			return nil, err
		}
	}

	resolvedRef := ref
	if resolvedRef == "" {
		var err error
		resolvedRef, err = r.defaultBranch(ctx, cacheDir, location)
		if err != nil {
			return nil, err
		}
	}

	// A branch and a tag can share a name, which makes a bare `git checkout
	// <ref>` ambiguous; checking out a known remote branch as
	// "origin/<ref>" disambiguates, matching the original implementation's
	// cache_git_repo.
	checkoutRef := resolvedRef
	if r.git.showRefExists(ctx, cacheDir, resolvedRef) {
		checkoutRef = "origin/" + resolvedRef
	}
	if _, err := r.git.run(ctx, cacheDir, "checkout", checkoutRef); err != nil {
		return nil, err
	}

	if hash, err := hashLatest(cacheDir); err != nil {
		r.Logger.Debug("dirhash failed after checkout", "location", location, "err", err)
	} else {
		r.Logger.Debug("checked out source", "location", location, "ref", resolvedRef, "dirhash", hash)
	}

	return &Source{Kind: RemoteGit, Location: location, LocalPath: cacheDir, Ref: resolvedRef}, nil
}

// defaultBranch probes defaultBranchCandidates in order, returning the
// first that exists as a remote-tracking branch.
func (r *Resolver) defaultBranch(ctx context.Context, cacheDir, location string) (string, error) {
	for _, candidate := range defaultBranchCandidates {
		if r.git.showRefExists(ctx, cacheDir, candidate) {
			return candidate, nil
		}
	}
	return "", &errs.SourceError{Kind: errs.NoDefaultBranch, Location: location}
}

// markTouched records url as cloned/fetched by this Resolver, returning
// whether it had already been recorded. Keyed by URL rather than cache
// directory so that two sources that differ only by ref still share a
// single fetch.
func (r *Resolver) markTouched(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, already := r.touched[url]
	r.touched[url] = struct{}{}
	return already
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
