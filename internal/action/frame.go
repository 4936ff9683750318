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
	"io"
	"log/slog"

	"github.com/archetect-dev/archetect/internal/archetype"
	"github.com/archetect-dev/archetect/internal/common"
	"github.com/archetect-dev/archetect/internal/rules"
	"github.com/archetect-dev/archetect/internal/source"
)

// LevelTrace is a custom slog level below Debug, used by the `trace` action.
// slog's built-in levels bottom out at Debug (-4); Trace sits one notch
// below it, the same spacing slog uses between its own levels.
const LevelTrace = slog.Level(-8)

// Prompter asks the user for a value interactively. In headless mode it is
// never consulted: an unresolved variable fails immediately instead.
type Prompter interface {
	Prompt(ctx context.Context, msg string) (string, error)
}

// Frame is the full execution context an action node runs with (spec.md
// §4.5: "the full frame (engine, archetype, destination, rules_ctx,
// answers, render_ctx)").
type Frame struct {
	Archetype   *archetype.Archetype
	Destination string
	Rules       *rules.Context
	Scope       *common.Scope
	Answers     *archetype.AnswerSet

	Resolver *source.Resolver
	Prompter Prompter
	Headless bool
	Switches map[string]bool

	// DryRun suppresses all filesystem writes to Destination; a `render`
	// action reports what it would do instead of doing it.
	DryRun bool

	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// WithScopeAndRules returns a shallow copy of fr using the given scope and
// rules context, for actions that need to run children against cloned
// contexts (`scope`, `loop`, `for-each`, `for`).
func (fr *Frame) WithScopeAndRules(scope *common.Scope, rc *rules.Context) *Frame {
	clone := *fr
	clone.Scope = scope
	clone.Rules = rc
	return &clone
}
