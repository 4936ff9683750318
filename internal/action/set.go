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
	"fmt"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/archetect-dev/archetect/internal/errs"
	"github.com/archetect-dev/archetect/internal/model"
	"github.com/archetect-dev/archetect/internal/render"
)

// execSet implements `set{map<name, VariableInfo>}` (spec.md §4.5): for
// each declared variable, in declaration order, resolve a value and bind
// it into the render context so later variables in the same `set` can
// reference earlier ones.
func execSet(ctx context.Context, fr *Frame, a *model.Action) error {
	for _, name := range a.SetOrder {
		v := a.Set[name]
		val, err := resolveVar(ctx, fr, name, v)
		if err != nil {
			return err
		}
		fr.Scope.Set(name, val)
	}
	return nil
}

// resolveVar implements the set action's per-variable resolution order
// (spec.md §4.5): explicit matching answer, then an ambient value already
// bound in scope, then an interactive prompt (unless headless), then the
// declared default expression. Failing all of those, the variable is
// unresolved and an error is returned: an UnknownVarError listing the bound
// names in headless mode, a positioned error otherwise.
func resolveVar(ctx context.Context, fr *Frame, name string, v *model.Variable) (any, error) {
	if fr.Answers != nil {
		if val, ok := fr.Answers.Values[name]; ok {
			return val, nil
		}
	}

	if val, ok := fr.Scope.Lookup(name); ok {
		return val, nil
	}

	if !fr.Headless && fr.Prompter != nil {
		prompt := v.Prompt.Val
		if prompt == "" {
			prompt = fmt.Sprintf("Enter value for %s: ", name)
		}
		raw, err := fr.Prompter.Prompt(ctx, prompt)
		if err != nil {
			return nil, v.Pos.Errorf("prompting for %q: %w", name, err)
		}
		if raw != "" || v.Default == nil {
			return convertVar(v, raw)
		}
		// An empty response with a default available falls through to the
		// default below, same as leaving the prompt blank.
	}

	if v.Default != nil {
		rendered, err := render.String(&v.Default.Pos, v.Default.Val, fr.Scope)
		if err != nil {
			return nil, err
		}
		return convertVar(v, rendered)
	}

	if fr.Headless {
		names := maps.Keys(fr.Scope.All())
		slices.Sort(names)
		return nil, &errs.UnknownVarError{VarName: name, AvailableVars: names}
	}

	return nil, v.Pos.Errorf("no value available for variable %q", name)
}

// convertVar coerces a raw string value to the type v declares. An empty
// type means string, the manifest's most common case; an unrecognized type
// is an error.
func convertVar(v *model.Variable, raw string) (any, error) {
	switch v.Type.Val {
	case "", "string":
		return raw, nil
	case "bool", "boolean":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, v.Pos.Errorf("variable %q declared as bool but value %q is not: %w", v.Name.Val, raw, err)
		}
		return b, nil
	case "int", "integer":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, v.Pos.Errorf("variable %q declared as int but value %q is not: %w", v.Name.Val, raw, err)
		}
		return n, nil
	default:
		return nil, v.Pos.Errorf("variable %q declares unrecognized type %q", v.Name.Val, v.Type.Val)
	}
}
