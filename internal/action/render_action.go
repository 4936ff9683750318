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

package action

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/archetect-dev/archetect/internal/archetype"
	"github.com/archetect-dev/archetect/internal/common"
	"github.com/archetect-dev/archetect/internal/model"
	"github.com/archetect-dev/archetect/internal/render"
	"github.com/archetect-dev/archetect/internal/rules"
)

// execRender implements `render(RenderAction)` (spec.md §4.5): renders
// either an inline directory relative to the archetype root, or a nested
// archetype resolved by location string.
func execRender(ctx context.Context, fr *Frame, a *model.Action) error {
	switch {
	case a.Render.Directory != nil:
		return renderDirectory(ctx, fr, a.Render.Directory)
	case a.Render.Archetype != nil:
		return renderNestedArchetype(ctx, fr, a.Render.Archetype)
	default:
		return a.Pos.Errorf("render action declares neither a directory nor an archetype")
	}
}

// asRenderLogger adapts fr.Logger, which may be a nil *slog.Logger, to the
// render package's Logger interface -- nil *slog.Logger satisfies the
// interface but panics when called, so a nil pointer must become a true
// nil interface value.
func asRenderLogger(l *slog.Logger) render.Logger {
	if l == nil {
		return nil
	}
	return l
}

func renderDirectory(ctx context.Context, fr *Frame, d *model.DirectoryRender) error {
	sourceDir := filepath.Join(fr.Archetype.Root, d.Source.Val)
	return render.Directory(ctx, asRenderLogger(fr.Logger), &d.Pos, sourceDir, fr.Destination, fr.Scope, fr.Rules, render.Options{DryRun: fr.DryRun})
}

func renderNestedArchetype(ctx context.Context, fr *Frame, ar *model.ArchetypeRender) error {
	location, err := render.String(&ar.Source.Pos, ar.Source.Val, fr.Scope)
	if err != nil {
		return err
	}

	src, err := fr.Resolver.Resolve(ctx, location, fr.Archetype.Source)
	if err != nil {
		return err
	}
	nested, err := archetype.Load(src)
	if err != nil {
		return err
	}

	inheritNames := make([]string, 0, len(ar.InheritAnswers))
	for _, n := range ar.InheritAnswers {
		inheritNames = append(inheritNames, n.Val)
	}

	explicit := make(map[string]any, len(ar.Answers))
	for k, v := range ar.Answers {
		rendered, err := render.String(&v.Pos, v.Val, fr.Scope)
		if err != nil {
			return err
		}
		explicit[k] = rendered
	}

	childAnswers, err := archetype.Inherit(fr.Answers, inheritNames, explicit)
	if err != nil {
		return err
	}

	destination := fr.Destination
	if ar.DestinationSub.Val != "" {
		sub, err := render.String(&ar.DestinationSub.Pos, ar.DestinationSub.Val, fr.Scope)
		if err != nil {
			return err
		}
		destination = filepath.Join(destination, sub)
	}

	childScope := common.NewScope(childAnswers.Values)
	// A nested archetype's file-disposition rules come only from its own
	// "rules" actions as its program runs; the manifest itself carries no
	// separate rules list.
	childRules, err := rules.New(nil)
	if err != nil {
		return err
	}

	childFrame := &Frame{
		Archetype:   nested,
		Destination: destination,
		Rules:       childRules,
		Scope:       childScope,
		Answers:     childAnswers,
		Resolver:    fr.Resolver,
		Prompter:    fr.Prompter,
		Headless:    fr.Headless,
		Switches:    fr.Switches,
		DryRun:      fr.DryRun,
		Logger:      fr.Logger,
		Stdout:      fr.Stdout,
		Stderr:      fr.Stderr,
	}
	return Execute(ctx, childFrame, nested.Manifest.Actions)
}
