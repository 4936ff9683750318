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
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/archetect-dev/archetect/internal/errs"
)

// sshShortRE matches the scp-like short form git accepts on the command
// line, e.g. "git@github.com:org/repo.git#branch". This is checked before
// general URL parsing because net/url.Parse happily accepts it as an
// opaque relative reference, which would misclassify it as a local path.
var sshShortRE = regexp.MustCompile(`^[^@\s/]+@[^:\s/]+:[^\s]+$`)

// classify implements the Source Resolver's location-string dispatch
// (spec.md §4.1 "Source classification"), tried in this order:
//
//  1. scp-like short git form ("user@host:path")
//  2. a URL whose path looks like a git repository (".git" suffix, or a
//     known git-hosting host) -- RemoteGit
//  3. a "file://" URL -- local path
//  4. a shell-expanded local path, absolute or relative to parent's
//     directory
func (r *Resolver) classify(ctx context.Context, location string, parent *Source) (*Source, error) {
	loc, ref := splitRef(location)

	if sshShortRE.MatchString(loc) {
		return r.resolveGit(ctx, location, loc, ref)
	}

	if u, err := url.Parse(loc); err == nil && u.Scheme != "" {
		switch u.Scheme {
		case "file":
			return r.resolveLocal(u.Path, parent)
		case "http", "https":
			if looksLikeGit(u) {
				return r.resolveGit(ctx, location, loc, ref)
			}
			return nil, &errs.SourceError{
				Kind:     errs.SourceUnsupported,
				Location: location,
				Err:      errors.New("non-git http(s) sources are not supported"),
			}
		case "git", "ssh":
			return r.resolveGit(ctx, location, loc, ref)
		default:
			return nil, &errs.SourceError{
				Kind:     errs.SourceUnsupported,
				Location: location,
				Err:      errors.New("unrecognized URL scheme " + u.Scheme),
			}
		}
	}

	return r.resolveLocal(loc, parent)
}

// looksLikeGit heuristically classifies an http(s) URL as a git remote:
// a ".git" suffix, or one of the common git-hosting hosts.
func looksLikeGit(u *url.URL) bool {
	if strings.HasSuffix(u.Path, ".git") {
		return true
	}
	switch u.Host {
	case "github.com", "gitlab.com", "bitbucket.org":
		return true
	}
	return false
}

// splitRef splits a trailing "#ref" fragment off of every location string
// before classification, without relying on net/url's query/fragment
// parsing (which mishandles the scp form entirely). The ref pins the
// checkout of git sources; local sources ignore it.
func splitRef(location string) (loc, ref string) {
	i := strings.LastIndex(location, "#")
	if i < 0 {
		return location, ""
	}
	return location[:i], location[i+1:]
}

func (r *Resolver) resolveLocal(p string, parent *Source) (*Source, error) {
	expanded, err := expandPath(p)
	if err != nil {
		return nil, &errs.SourceError{Kind: errs.SourceInvalidPath, Location: p, Err: err}
	}

	if !filepath.IsAbs(expanded) && parent != nil {
		expanded = filepath.Join(parent.Dir(), expanded)
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errs.SourceError{Kind: errs.SourceNotFound, Location: p, Err: err}
		}
		return nil, &errs.SourceError{Kind: errs.IoError, Location: p, Err: err}
	}

	kind := LocalDirectory
	if !info.IsDir() {
		kind = LocalFile
	}
	return &Source{Kind: kind, Location: p, LocalPath: expanded}, nil
}

// expandPath expands a leading "~" to the user's home directory and any
// "$VAR"/"${VAR}" environment references, mirroring the original
// implementation's use of shell expansion on local path sources.
func expandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return os.ExpandEnv(p), nil
}
