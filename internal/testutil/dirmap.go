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

// Package testutil holds directory-tree comparison helpers shared by this
// module's _test.go files, for asserting on a render pass's output without
// each test reimplementing a recursive walk.
package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// LoadDirContents reads every regular file under dir recursively, keyed by
// its path relative to dir with forward slashes. Returns nil if dir doesn't
// exist, so a test can assert "nothing was written" without creating the
// directory first.
func LoadDirContents(t *testing.T, dir string) map[string]string {
	t.Helper()

	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		t.Fatal(err)
	}

	out := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(contents)
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir(%q): %v", dir, err)
	}
	return out
}

// WriteTree creates files under root from a map of relative path to
// contents, creating intermediate directories as needed.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, contents := range files {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o700); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(contents), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}
