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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeAnswerFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAnswerFilesMergesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeAnswerFile(t, dir, "a.yaml", "name: widget\n")
	b := writeAnswerFile(t, dir, "b.yaml", "owner: team-foo\n")

	got, err := loadAnswerFiles([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"name": "widget", "owner": "team-foo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadAnswerFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAnswerFilesRejectsOverlappingKeys(t *testing.T) {
	dir := t.TempDir()
	a := writeAnswerFile(t, dir, "a.yaml", "name: widget\n")
	b := writeAnswerFile(t, dir, "b.yaml", "name: gadget\n")

	if _, err := loadAnswerFiles([]string{a, b}); err == nil {
		t.Error("expected an error for an answer key present in two files")
	}
}

func TestLoadAnswerFilesEmptyListReturnsEmptyMap(t *testing.T) {
	got, err := loadAnswerFiles(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("len(got) = %d, want 0", len(got))
	}
}
