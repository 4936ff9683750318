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

package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/archetect-dev/archetect/internal/layout"
	"github.com/archetect-dev/archetect/internal/source"
)

func writeArchetype(t *testing.T, root, manifest string) {
	t.Helper()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path := filepath.Join(root, source.ManifestFileName)
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	lp, err := layout.NewRooted(t.TempDir())
	if err != nil {
		t.Fatalf("layout.NewRooted: %v", err)
	}
	eng, err := NewBuilder().
		WithLayout(lp).
		WithHeadless(true).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return eng
}

func TestRenderLocalDirectoryWithTemplatedFilename(t *testing.T) {
	t.Parallel()

	archRoot := t.TempDir()
	writeArchetype(t, archRoot, `
api-version: archetect.dev/v1
variables:
  - name: project
    default: widgets
actions:
  - rules:
      - pattern: "*.tmp"
        action: SKIP
  - render:
      directory:
        source: template
`)

	tmplDir := filepath.Join(archRoot, "template")
	if err := os.MkdirAll(tmplDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmplDir, "{{ .project }}.txt"), []byte("hello {{ .project }}"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmplDir, "scratch.tmp"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	eng := newTestEngine(t)
	dest := t.TempDir()

	err := eng.Render(context.Background(), &RenderParams{
		Location:    archRoot,
		Destination: dest,
		Answers:     map[string]any{"project": "widgets"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "widgets.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello widgets" {
		t.Errorf("rendered file contents = %q, want %q", got, "hello widgets")
	}

	if _, err := os.Stat(filepath.Join(dest, "scratch.tmp")); !os.IsNotExist(err) {
		t.Errorf("scratch.tmp should have been skipped by the SKIP rule, got err=%v", err)
	}
}

func TestRenderNestedArchetypeInheritsAnswer(t *testing.T) {
	t.Parallel()

	childRoot := t.TempDir()
	writeArchetype(t, childRoot, `
api-version: archetect.dev/v1
actions:
  - render:
      directory:
        source: template
`)
	childTmplDir := filepath.Join(childRoot, "template")
	if err := os.MkdirAll(childTmplDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(childTmplDir, "README.md"), []byte("project: {{ .project }}"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	parentRoot := t.TempDir()
	writeArchetype(t, parentRoot, `
api-version: archetect.dev/v1
actions:
  - render:
      archetype:
        source: "`+childRoot+`"
        inherit-answers: ["project"]
        destination: child
`)

	eng := newTestEngine(t)
	dest := t.TempDir()

	err := eng.Render(context.Background(), &RenderParams{
		Location:    parentRoot,
		Destination: dest,
		Answers:     map[string]any{"project": "widgets"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "child", "README.md"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "project: widgets" {
		t.Errorf("rendered file contents = %q, want %q", got, "project: widgets")
	}
}

func TestRenderForceOverwriteReplacesExistingFile(t *testing.T) {
	t.Parallel()

	archRoot := t.TempDir()
	writeArchetype(t, archRoot, `
api-version: archetect.dev/v1
actions:
  - render:
      directory:
        source: template
`)
	tmplDir := filepath.Join(archRoot, "template")
	if err := os.MkdirAll(tmplDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmplDir, "file.txt"), []byte("new contents"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	eng := newTestEngine(t)
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "file.txt"), []byte("existing contents"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := eng.Render(context.Background(), &RenderParams{
		Location:       archRoot,
		Destination:    dest,
		ForceOverwrite: true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "file.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "new contents" {
		t.Errorf("file.txt = %q, want %q", got, "new contents")
	}
}

func TestRenderDryRunLeavesDestinationUntouched(t *testing.T) {
	t.Parallel()

	archRoot := t.TempDir()
	writeArchetype(t, archRoot, `
api-version: archetect.dev/v1
actions:
  - render:
      directory:
        source: template
`)
	tmplDir := filepath.Join(archRoot, "template")
	if err := os.MkdirAll(tmplDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmplDir, "file.txt"), []byte("new contents"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	eng := newTestEngine(t)
	dest := t.TempDir()

	err := eng.Render(context.Background(), &RenderParams{
		Location:    archRoot,
		Destination: dest,
		DryRun:      true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "file.txt")); !os.IsNotExist(err) {
		t.Errorf("dry-run must not create file.txt, stat err = %v", err)
	}
}

func TestRenderOfflineMissingGitCacheFails(t *testing.T) {
	t.Parallel()

	lp, err := layout.NewRooted(t.TempDir())
	if err != nil {
		t.Fatalf("layout.NewRooted: %v", err)
	}
	eng, err := NewBuilder().
		WithLayout(lp).
		WithHeadless(true).
		WithOffline(true).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	err = eng.Render(context.Background(), &RenderParams{
		Location:    "git@github.com:example/not-cached.git",
		Destination: t.TempDir(),
	})
	if err == nil {
		t.Fatal("Render: expected an error resolving an uncached source in offline mode, got nil")
	}
}
