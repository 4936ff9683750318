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

// Package layout resolves the on-disk directories the engine uses for
// caching and configuration (spec.md §4's "Layout Provider", out-of-core
// collaborator "on-disk layout discovery"). It is read-only after
// construction and shared across an Engine's lifetime.
package layout

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/archetect-dev/archetect/internal/errs"
)

// Provider resolves the directories the engine needs on disk.
type Provider interface {
	// GitCacheDir is where resolved remote-git archetypes are cloned to,
	// keyed by cache fingerprint (spec.md §6 "Cache layout").
	GitCacheDir() string
	// ConfigDir is where user-level engine configuration lives.
	ConfigDir() string
}

// Native resolves directories using the platform's XDG base directory
// conventions (or its Windows/macOS equivalents), via github.com/adrg/xdg.
type Native struct {
	gitCacheDir string
	configDir   string
}

var _ Provider = (*Native)(nil)

// NewNative builds a Provider rooted at the user's XDG cache/config
// directories, under an "archetect" subdirectory.
func NewNative() (*Native, error) {
	gitCacheDir, err := xdg.CacheFile(filepath.Join("archetect", "git"))
	if err != nil {
		return nil, &errs.SystemError{Err: err}
	}
	configDir, err := xdg.ConfigFile("archetect")
	if err != nil {
		return nil, &errs.SystemError{Err: err}
	}
	return &Native{gitCacheDir: gitCacheDir, configDir: configDir}, nil
}

func (n *Native) GitCacheDir() string { return n.gitCacheDir }
func (n *Native) ConfigDir() string   { return n.configDir }

// Rooted resolves directories underneath a single fixed root directory.
// This mirrors the original implementation's "dot home" layout
// (`~/.archetect/`), and is what tests use for a hermetic, predictable
// cache location.
type Rooted struct {
	root string
}

var _ Provider = (*Rooted)(nil)

// NewRooted builds a Provider rooted at the given directory, creating it if
// necessary.
func NewRooted(root string) (*Rooted, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, &errs.SystemError{Err: err}
		}
		root = filepath.Join(home, ".archetect")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &errs.SystemError{Err: err}
	}
	return &Rooted{root: root}, nil
}

func (r *Rooted) GitCacheDir() string { return filepath.Join(r.root, "git") }
func (r *Rooted) ConfigDir() string   { return filepath.Join(r.root, "config") }
