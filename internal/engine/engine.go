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

// Package engine implements the Engine/Builder described by the original
// implementation's Archetect/ArchetectBuilder: the long-lived object that
// owns a Layout Provider, an offline/headless mode, the Source Resolver,
// and the set of switches visible to rendered templates, and exposes the
// single entrypoint that drives a full archetype render.
package engine

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/benbjohnson/clock"

	"github.com/archetect-dev/archetect/internal/action"
	"github.com/archetect-dev/archetect/internal/archetype"
	"github.com/archetect-dev/archetect/internal/common"
	"github.com/archetect-dev/archetect/internal/layout"
	"github.com/archetect-dev/archetect/internal/rules"
	"github.com/archetect-dev/archetect/internal/source"
)

// Engine is the top-level object a render is driven through. It is
// read-only after Build returns (spec.md §9 "Shared layout via counted
// ownership").
type Engine struct {
	layout   layout.Provider
	offline  bool
	headless bool
	switches map[string]bool

	resolver *source.Resolver
	prompter action.Prompter

	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// Builder assembles an Engine, mirroring the original implementation's
// ArchetectBuilder: each With* method returns the builder so calls chain.
type Builder struct {
	e   *Engine
	err error
}

// NewBuilder starts a Builder with the engine's defaults: online,
// interactive, no switches, the native OS layout, a terminal prompter over
// stdin/stdout, and a no-op logger.
func NewBuilder() *Builder {
	return &Builder{
		e: &Engine{
			switches: map[string]bool{},
			logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
			stdout:   os.Stdout,
			stderr:   os.Stderr,
		},
	}
}

func (b *Builder) WithLayout(lp layout.Provider) *Builder {
	b.e.layout = lp
	return b
}

func (b *Builder) WithOffline(offline bool) *Builder {
	b.e.offline = offline
	return b
}

func (b *Builder) WithHeadless(headless bool) *Builder {
	b.e.headless = headless
	return b
}

func (b *Builder) WithSwitch(name string) *Builder {
	b.e.switches[name] = true
	return b
}

func (b *Builder) WithPrompter(p action.Prompter) *Builder {
	b.e.prompter = p
	return b
}

func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.e.logger = l
	return b
}

func (b *Builder) WithStdio(stdout, stderr io.Writer) *Builder {
	b.e.stdout = stdout
	b.e.stderr = stderr
	return b
}

// Build finalizes the Engine. If no layout was supplied, the native
// XDG-based layout is resolved.
func (b *Builder) Build() (*Engine, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.e.layout == nil {
		native, err := layout.NewNative()
		if err != nil {
			return nil, err
		}
		b.e.layout = native
	}
	if b.e.prompter == nil && !b.e.headless {
		b.e.prompter = action.NewTerminalPrompter(os.Stdin, b.e.stdout)
	}
	b.e.resolver = source.NewResolver(b.e.layout, b.e.offline, clock.New(), b.e.logger)
	return b.e, nil
}

// Offline reports whether the engine refuses all network access.
func (e *Engine) Offline() bool { return e.offline }

// Headless reports whether the engine disallows interactive prompting.
func (e *Engine) Headless() bool { return e.headless }

// Switch reports whether the named switch was set on the engine.
func (e *Engine) Switch(name string) bool { return e.switches[name] }

// RenderParams are the parameters to a top-level Render call.
type RenderParams struct {
	// Location is the archetype's location string, per spec.md §6.
	Location string
	// Destination is the directory the rendered output is written to.
	Destination string
	// Answers seeds the top-level render context, e.g. from --answer
	// flags or an answers file.
	Answers map[string]any
	// ForceOverwrite allows RENDER to replace files that already exist at
	// the destination; by default such files are preserved.
	ForceOverwrite bool
	// DryRun suppresses all filesystem writes to Destination; RENDER
	// dispositions report what they would do instead of doing it.
	DryRun bool
}

// Render resolves Location, loads its manifest, and executes its root
// action program against Destination. This is the engine's single public
// entrypoint, equivalent to the original implementation's render_directory
// driven from Archetect::render.
func (e *Engine) Render(ctx context.Context, p *RenderParams) error {
	if !p.DryRun {
		if err := os.MkdirAll(p.Destination, common.OwnerRWXPerms); err != nil {
			return err
		}
	}

	src, err := e.resolver.Resolve(ctx, p.Location, nil)
	if err != nil {
		return err
	}
	arch, err := archetype.Load(src)
	if err != nil {
		return err
	}

	answers := archetype.NewAnswerSet(p.Answers)
	scope := common.NewScope(answers.Values)
	rc, err := rules.New(nil)
	if err != nil {
		return err
	}
	if p.ForceOverwrite {
		rc.SetOverwrite(true)
	}

	switches := make(map[string]any, len(e.switches))
	for name, on := range e.switches {
		switches[name] = on
	}
	scope.Set("switches", switches)

	destination, err := filepath.Abs(p.Destination)
	if err != nil {
		return err
	}

	frame := &action.Frame{
		Archetype:   arch,
		Destination: destination,
		Rules:       rc,
		Scope:       scope,
		Answers:     answers,
		Resolver:    e.resolver,
		Prompter:    e.prompter,
		Headless:    e.headless,
		Switches:    e.switches,
		DryRun:      p.DryRun,
		Logger:      e.logger,
		Stdout:      e.stdout,
		Stderr:      e.stderr,
	}
	return action.Execute(ctx, frame, arch.Manifest.Actions)
}
