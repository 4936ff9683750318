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

	"github.com/archetect-dev/archetect/internal/model"
)

// execForEach implements `for-each{name, in, body}`: evaluates `in` as a
// sequence-valued expression and executes body once per element, with
// name bound to the element in a scope cloned for that iteration.
func execForEach(ctx context.Context, fr *Frame, a *model.Action) error {
	seq, err := evalSequence(&a.ForEach.In.Pos, a.ForEach.In.Val, fr.Scope)
	if err != nil {
		return err
	}
	for _, elem := range seq {
		iterScope := fr.Scope.Clone()
		iterScope.Set(a.ForEach.Name.Val, elem)
		inner := fr.WithScopeAndRules(iterScope, fr.Rules)
		if err := Execute(ctx, inner, a.ForEach.Body); err != nil {
			return err
		}
		if fr.Rules.BreakTriggered() {
			return nil
		}
	}
	return nil
}

// execFor implements `for{name, from, to, body}`: inclusive integer range
// iteration, with name bound to the current integer in a scope cloned for
// that iteration.
func execFor(ctx context.Context, fr *Frame, a *model.Action) error {
	from, to := a.For.From.Val, a.For.To.Val
	for i := from; i <= to; i++ {
		iterScope := fr.Scope.Clone()
		iterScope.Set(a.For.Name.Val, i)
		inner := fr.WithScopeAndRules(iterScope, fr.Rules)
		if err := Execute(ctx, inner, a.For.Body); err != nil {
			return err
		}
		if fr.Rules.BreakTriggered() {
			return nil
		}
	}
	return nil
}

// loopIndexVars builds the `loop` variable described in spec.md §4.5:
// `{index, index0}`, 1-based and 0-based iteration counters respectively.
func loopIndexVars(index0 int) map[string]any {
	return map[string]any{
		"index":  index0 + 1,
		"index0": index0,
	}
}

// execLoop implements `loop[list]`: unbounded iteration over a cloned
// render and rules context, terminated only by `break`. The break flag is
// cleared once on entry, and each iteration re-inserts the `loop.index`/
// `loop.index0` variable before running body.
func execLoop(ctx context.Context, fr *Frame, a *model.Action) error {
	loopScope := fr.Scope.Clone()
	loopRules := fr.Rules.Clone()
	loopRules.ResetBreak()

	for index0 := 0; ; index0++ {
		loopScope.Set("loop", loopIndexVars(index0))
		inner := fr.WithScopeAndRules(loopScope, loopRules)
		if err := Execute(ctx, inner, a.Loop); err != nil {
			return err
		}
		if loopRules.BreakTriggered() {
			return nil
		}
	}
}
