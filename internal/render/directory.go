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

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/archetect-dev/archetect/internal/common"
	"github.com/archetect-dev/archetect/internal/errs"
	"github.com/archetect-dev/archetect/internal/model"
	"github.com/archetect-dev/archetect/internal/rules"
)

// Logger is the subset of logging behavior the directory renderer needs,
// satisfied by the slog-backed logger the engine attaches to context.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}

// Options controls the behavior of a Directory render pass beyond the
// base source/destination/scope/rules it's always given.
type Options struct {
	// DryRun disables all filesystem writes to the destination. A RENDER
	// disposition still evaluates the template, but instead of writing it
	// logs an inline diff against the existing file (if a file already
	// exists at the destination and differs) or a "would create" note (if
	// it doesn't exist).
	DryRun bool
}

// Directory walks sourceRoot recursively, rendering each entry's path
// against scope and applying rc's disposition to each file, writing the
// result under destRoot. It mirrors the original implementation's
// render_directory: directories are always created and recursed into;
// files are dispatched on rules.Render/Copy/Skip. Dispositions are
// resolved against each file's path relative to sourceRoot, so a rule
// pattern written in the manifest matches regardless of recursion depth.
func Directory(ctx context.Context, log Logger, pos *model.ConfigPos, sourceRoot, destRoot string, scope *common.Scope, rc *rules.Context, opts Options) error {
	if log == nil {
		log = noopLogger{}
	}
	if !opts.DryRun {
		if err := os.MkdirAll(destRoot, common.OwnerRWXPerms); err != nil {
			return &errs.RenderError{Path: destRoot, Err: err}
		}
	}
	return renderDir(ctx, log, pos, sourceRoot, sourceRoot, destRoot, scope, rc, opts)
}

func renderDir(ctx context.Context, log Logger, pos *model.ConfigPos, sourceRoot, source, destination string, scope *common.Scope, rc *rules.Context, opts Options) error {
	entries, err := os.ReadDir(source)
	if err != nil {
		return &errs.RenderError{Path: source, Err: err}
	}

	for _, entry := range entries {
		srcPath := filepath.Join(source, entry.Name())

		destName, err := PathComponent(pos, entry.Name(), scope)
		if err != nil {
			return err
		}
		destPath := filepath.Join(destination, destName)

		if entry.IsDir() {
			log.Debug("rendering directory", "dest", destPath)
			if !opts.DryRun {
				if err := os.MkdirAll(destPath, common.OwnerRWXPerms); err != nil {
					return &errs.RenderError{Path: destPath, Err: err}
				}
			}
			if err := renderDir(ctx, log, pos, sourceRoot, srcPath, destPath, scope, rc, opts); err != nil {
				return err
			}
			continue
		}

		relPath, err := filepath.Rel(sourceRoot, srcPath)
		if err != nil {
			relPath = entry.Name()
		}
		disposition := rc.Resolve(relPath)

		switch disposition {
		case rules.Render:
			if err := renderFile(srcPath, destPath, scope, rc.Overwrite(), log, opts); err != nil {
				return err
			}
		case rules.Copy:
			log.Debug("copying file", "dest", destPath)
			if !opts.DryRun {
				if err := common.CopyFile(ctx, pos, &common.RealFS{}, srcPath, destPath); err != nil {
					return err
				}
			}
		case rules.Skip:
			log.Debug("skipping file", "dest", destPath)
		}
	}
	return nil
}

func renderFile(srcPath, destPath string, scope *common.Scope, overwrite bool, log Logger, opts Options) error {
	exists, err := common.Exists(destPath)
	if err != nil {
		return &errs.RenderError{Path: destPath, Err: err}
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return &errs.RenderError{Path: srcPath, Err: err}
	}
	contents, err := Contents(srcPath, string(raw), scope)
	if err != nil {
		return err
	}

	if opts.DryRun {
		return reportDryRun(destPath, contents, exists, log)
	}

	if exists && !overwrite {
		log.Debug("preserving existing file", "dest", destPath)
		return nil
	}

	log.Debug("rendering file", "dest", destPath)
	if err := os.WriteFile(destPath, []byte(contents), common.OwnerRWPerms); err != nil {
		return &errs.RenderError{Path: destPath, Err: err}
	}
	return nil
}

// reportDryRun logs what a real render would do to destPath without
// touching the filesystem: an inline diff against the existing file's
// content when it differs, or a plain "would create" note for a path that doesn't exist
// yet.
func reportDryRun(destPath, rendered string, exists bool, log Logger) error {
	if !exists {
		log.Info("dry-run: would create", "dest", destPath)
		return nil
	}

	current, err := os.ReadFile(destPath)
	if err != nil {
		return &errs.RenderError{Path: destPath, Err: err}
	}
	if string(current) == rendered {
		log.Debug("dry-run: unchanged", "dest", destPath)
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(current), rendered, false)
	log.Info("dry-run: would overwrite", "dest", destPath, "diff", dmp.DiffPrettyText(diffs))
	return nil
}
