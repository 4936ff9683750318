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

package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/archetect-dev/archetect/internal/common"
	"github.com/archetect-dev/archetect/internal/model"
	"github.com/archetect-dev/archetect/internal/rules"
	"github.com/archetect-dev/archetect/internal/testutil"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestDirectoryRendersTemplatedFilesAndNames(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "{{.name}}.txt", "hello {{.name}}\n")

	scope := common.NewScope(map[string]any{"name": "world"})
	rc, err := rules.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := Directory(context.Background(), nil, &model.ConfigPos{}, src, dst, scope, rc, Options{}); err != nil {
		t.Fatalf("Directory: %v", err)
	}

	got := readFile(t, dst, "world.txt")
	want := "hello world\n"
	if got != want {
		t.Errorf("rendered contents = %q, want %q", got, want)
	}
}

func TestDirectorySkipDisposition(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "secret.txt", "top secret\n")
	writeFile(t, src, "public.txt", "hello\n")

	scope := common.NewScope(nil)
	rc, err := rules.New([]*model.Rule{
		{Pattern: model.String{Val: "secret.txt"}, Action: model.String{Val: "skip"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := Directory(context.Background(), nil, &model.ConfigPos{}, src, dst, scope, rc, Options{}); err != nil {
		t.Fatalf("Directory: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "secret.txt")); !os.IsNotExist(err) {
		t.Error("secret.txt should have been skipped")
	}
	if _, err := os.Stat(filepath.Join(dst, "public.txt")); err != nil {
		t.Error("public.txt should have been rendered")
	}
}

func TestDirectoryCopyDispositionIsNotTemplated(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "literal.txt", "{{.name}} stays literal\n")

	scope := common.NewScope(map[string]any{"name": "world"})
	rc, err := rules.New([]*model.Rule{
		{Pattern: model.String{Val: "literal.txt"}, Action: model.String{Val: "copy"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := Directory(context.Background(), nil, &model.ConfigPos{}, src, dst, scope, rc, Options{}); err != nil {
		t.Fatalf("Directory: %v", err)
	}

	got := readFile(t, dst, "literal.txt")
	want := "{{.name}} stays literal\n"
	if got != want {
		t.Errorf("copied contents = %q, want %q (unrendered)", got, want)
	}
}

func TestDirectoryPreservesExistingFileByDefault(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "file.txt", "new contents\n")
	writeFile(t, dst, "file.txt", "existing contents\n")

	scope := common.NewScope(nil)
	rc, err := rules.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := Directory(context.Background(), nil, &model.ConfigPos{}, src, dst, scope, rc, Options{}); err != nil {
		t.Fatalf("Directory: %v", err)
	}

	got := readFile(t, dst, "file.txt")
	if got != "existing contents\n" {
		t.Errorf("existing file was overwritten, got %q", got)
	}
}

func TestDirectoryOverwriteFlag(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "file.txt", "new contents\n")
	writeFile(t, dst, "file.txt", "existing contents\n")

	scope := common.NewScope(nil)
	rc, err := rules.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	rc.SetOverwrite(true)

	if err := Directory(context.Background(), nil, &model.ConfigPos{}, src, dst, scope, rc, Options{}); err != nil {
		t.Fatalf("Directory: %v", err)
	}

	got := readFile(t, dst, "file.txt")
	if got != "new contents\n" {
		t.Errorf("overwrite=true should have replaced existing file, got %q", got)
	}
}

func TestDirectoryDryRunWritesNothing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "file.txt", "new {{.name}} contents\n")
	writeFile(t, dst, "file.txt", "existing contents\n")

	scope := common.NewScope(map[string]any{"name": "world"})
	rc, err := rules.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	rc.SetOverwrite(true)

	if err := Directory(context.Background(), nil, &model.ConfigPos{}, src, dst, scope, rc, Options{DryRun: true}); err != nil {
		t.Fatalf("Directory: %v", err)
	}

	got := readFile(t, dst, "file.txt")
	if got != "existing contents\n" {
		t.Errorf("dry-run must not modify the destination, got %q", got)
	}
}

func TestDirectoryDryRunCreatesNoNewDirectoriesOrFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "sub/file.txt", "hello {{.name}}\n")

	scope := common.NewScope(map[string]any{"name": "world"})
	rc, err := rules.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := Directory(context.Background(), nil, &model.ConfigPos{}, src, dst, scope, rc, Options{DryRun: true}); err != nil {
		t.Fatalf("Directory: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "sub")); !os.IsNotExist(err) {
		t.Error("dry-run must not create destination directories")
	}
	if got := testutil.LoadDirContents(t, dst); len(got) != 0 {
		t.Errorf("LoadDirContents(dst) = %v, want empty (dry-run wrote nothing)", got)
	}
}

func TestDirectoryRendersWholeTree(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{
		"README.md":     "# {{.name}}\n",
		"src/main.go":   "package main // {{.name}}\n",
		"vendor/lib.go": "package lib\n",
	})

	scope := common.NewScope(map[string]any{"name": "widget"})
	rc, err := rules.New([]*model.Rule{
		{Pattern: model.String{Val: "vendor"}, Recursive: model.Bool{Val: true}, Action: model.String{Val: "copy"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := Directory(context.Background(), nil, &model.ConfigPos{}, src, dst, scope, rc, Options{}); err != nil {
		t.Fatalf("Directory: %v", err)
	}

	got := testutil.LoadDirContents(t, dst)
	want := map[string]string{
		"README.md":     "# widget\n",
		"src/main.go":   "package main // widget\n",
		"vendor/lib.go": "package lib\n",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered tree mismatch (-want +got):\n%s", diff)
	}
}
