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

// Package action implements the Action Engine (spec.md §4.5): the
// interpreter for a manifest's tagged action tree.
package action

import (
	"context"
	"fmt"
	"io"

	"github.com/archetect-dev/archetect/internal/errs"
	"github.com/archetect-dev/archetect/internal/model"
	"github.com/archetect-dev/archetect/internal/render"
)

// Execute runs a list of action nodes in order against fr, stopping early
// if fr.Rules.BreakTriggered() becomes true (spec.md §4.5 "actions[list]").
func Execute(ctx context.Context, fr *Frame, actionsList []*model.Action) error {
	for _, a := range actionsList {
		if fr.Rules.BreakTriggered() {
			return nil
		}
		if err := executeOne(ctx, fr, a); err != nil {
			return err
		}
	}
	return nil
}

func executeOne(ctx context.Context, fr *Frame, a *model.Action) error {
	switch a.Kind {
	case model.ActionSet:
		return execSet(ctx, fr, a)
	case model.ActionActions:
		return Execute(ctx, fr, a.Actions)
	case model.ActionScope:
		return execScope(ctx, fr, a)
	case model.ActionRender:
		return execRender(ctx, fr, a)
	case model.ActionForEach:
		return execForEach(ctx, fr, a)
	case model.ActionFor:
		return execFor(ctx, fr, a)
	case model.ActionLoop:
		return execLoop(ctx, fr, a)
	case model.ActionBreak:
		fr.Rules.Break()
		return nil
	case model.ActionIf:
		return execIf(ctx, fr, a)
	case model.ActionRules:
		return execRules(fr, a)
	case model.ActionExec:
		return execExec(ctx, fr, a)
	case model.ActionTrace, model.ActionDebug, model.ActionInfo, model.ActionWarn, model.ActionError:
		return execLog(fr, a)
	case model.ActionPrint:
		return execPrint(fr, a, fr.Stdout)
	case model.ActionDisplay:
		return execPrint(fr, a, fr.Stderr)
	default:
		return a.Pos.Errorf("unrecognized action kind %v", a.Kind)
	}
}

// execScope implements `scope[list]`: children run against cloned render
// and rules contexts, so mutations (variable sets, rule changes) are
// invisible once the scope returns -- except a break, which must still
// reach the nearest enclosing loop (spec.md §8 "break inside a scope
// terminates the enclosing loop, not just the scope").
func execScope(ctx context.Context, fr *Frame, a *model.Action) error {
	childScope := fr.Scope.Clone()
	childRules := fr.Rules.Clone()
	inner := fr.WithScopeAndRules(childScope, childRules)

	if err := Execute(ctx, inner, a.Scope); err != nil {
		return err
	}
	if childRules.BreakTriggered() {
		fr.Rules.Break()
	}
	return nil
}

func execIf(ctx context.Context, fr *Frame, a *model.Action) error {
	cond, err := evalBool(&a.If.Condition.Pos, a.If.Condition.Val, fr.Scope)
	if err != nil {
		return err
	}
	if cond {
		return Execute(ctx, fr, a.If.Then)
	}
	return Execute(ctx, fr, a.If.Else)
}

func execRules(fr *Frame, a *model.Action) error {
	for _, decl := range a.Rules {
		if err := fr.Rules.ApplyOne(decl); err != nil {
			return err
		}
	}
	return nil
}

func execLog(fr *Frame, a *model.Action) error {
	msg, err := render.String(&a.Message.Pos, a.Message.Val, fr.Scope)
	if err != nil {
		return err
	}
	logger := fr.Logger
	if logger == nil {
		return nil
	}
	switch a.Kind {
	case model.ActionTrace:
		logger.Log(context.Background(), LevelTrace, msg)
	case model.ActionDebug:
		logger.Debug(msg)
	case model.ActionInfo:
		logger.Info(msg)
	case model.ActionWarn:
		logger.Warn(msg)
	case model.ActionError:
		logger.Error(msg)
	}
	return nil
}

func execPrint(fr *Frame, a *model.Action, w io.Writer) error {
	msg, err := render.String(&a.Message.Pos, a.Message.Val, fr.Scope)
	if err != nil {
		return err
	}
	if w == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, msg); err != nil {
		return &errs.ArchetectError{Err: err}
	}
	return nil
}
