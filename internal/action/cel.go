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
	"reflect"

	"github.com/google/cel-go/cel"

	"github.com/archetect-dev/archetect/internal/common"
	"github.com/archetect-dev/archetect/internal/model"
)

// celEnv builds a CEL environment declaring every currently-bound variable
// as a dynamically-typed CEL variable. A fresh environment is built per
// evaluation because the set of bound variable names changes as the
// action program runs (each `set`, `for-each`, or `loop` iteration can
// introduce new names).
func celEnv(vars map[string]any) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(vars))
	for name := range vars {
		opts = append(opts, cel.Variable(name, cel.DynType))
	}
	return cel.NewEnv(opts...)
}

// evalBool evaluates expr as a CEL boolean expression against scope, for
// the `if` action's condition.
func evalBool(pos *model.ConfigPos, expr string, scope *common.Scope) (bool, error) {
	vars := scope.All()
	env, err := celEnv(vars)
	if err != nil {
		return false, pos.Errorf("building expression environment: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return false, pos.Errorf("compiling expression %q: %w", expr, iss.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return false, pos.Errorf("preparing expression %q: %w", expr, err)
	}
	out, _, err := prg.Eval(vars)
	if err != nil {
		return false, pos.Errorf("evaluating expression %q: %w", expr, err)
	}
	native, err := out.ConvertToNative(reflect.TypeOf(false))
	if err != nil {
		return false, pos.Errorf("expression %q did not evaluate to a boolean: %w", expr, err)
	}
	b, ok := native.(bool)
	if !ok {
		return false, pos.Errorf("expression %q did not evaluate to a boolean", expr)
	}
	return b, nil
}

// evalSequence evaluates expr as a CEL expression yielding a sequence, for
// the `for-each` action's `in` clause.
func evalSequence(pos *model.ConfigPos, expr string, scope *common.Scope) ([]any, error) {
	vars := scope.All()
	env, err := celEnv(vars)
	if err != nil {
		return nil, pos.Errorf("building expression environment: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, pos.Errorf("compiling expression %q: %w", expr, iss.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, pos.Errorf("preparing expression %q: %w", expr, err)
	}
	out, _, err := prg.Eval(vars)
	if err != nil {
		return nil, pos.Errorf("evaluating expression %q: %w", expr, err)
	}
	native, err := out.ConvertToNative(reflect.TypeOf([]any{}))
	if err != nil {
		return nil, pos.Errorf("expression %q did not evaluate to a sequence: %w", expr, err)
	}
	seq, ok := native.([]any)
	if !ok {
		return nil, pos.Errorf("expression %q did not evaluate to a sequence", expr)
	}
	return seq, nil
}
