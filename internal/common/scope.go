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

package common

import (
	"golang.org/x/exp/maps"
)

// Scope binds variable names to values and has a stack-like structure that
// lets inner scopes inherit values from outer scopes. Variable names are
// looked up innermost-to-outermost.
//
// Unlike a simple string-keyed map, values may be any of the structured
// types the Rendering Context supports (string, number, boolean, ordered
// list, nested map -- spec.md §3), so cloning at scope/loop boundaries walks
// maps and slices recursively rather than doing a shallow map clone.
type Scope struct {
	vars    map[string]any // never nil
	inherit *Scope         // nil if this is the outermost scope
}

// NewScope builds a fresh outermost scope from the given variable bindings.
func NewScope(vars map[string]any) *Scope {
	return &Scope{vars: cloneVars(vars)}
}

// Lookup returns the current value of a given variable name, or false if
// it's not bound in this scope or any enclosing scope.
func (s *Scope) Lookup(name string) (any, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}
	if s.inherit == nil {
		return nil, false
	}
	return s.inherit.Lookup(name)
}

// With returns a new scope containing the given bindings, shadowing any
// identically-named variable in the parent. Lookups that miss fall through
// to the receiver.
func (s *Scope) With(m map[string]any) *Scope {
	return &Scope{vars: cloneVars(m), inherit: s}
}

// Clone returns an independent copy of this scope whose innermost level can
// be mutated (e.g. by a "set" action) without affecting the original. This
// is what backs the "scope" and "loop" actions' isolation guarantee (spec
// §4.5, §8 "scope isolation").
func (s *Scope) Clone() *Scope {
	return &Scope{vars: cloneVars(s.vars), inherit: s.inherit}
}

// Set mutates the innermost level of the scope in place. Used by the "set"
// action, which must see its own earlier assignments within the same
// action-declaration order (spec §4.5 evaluation order invariant).
func (s *Scope) Set(name string, val any) {
	s.vars[name] = val
}

// All returns every variable binding currently in scope, innermost bindings
// taking priority over outer ones of the same name. The returned map is
// owned by the caller.
func (s *Scope) All() map[string]any {
	if s.inherit == nil {
		return cloneVars(s.vars)
	}
	out := s.inherit.All()
	maps.Copy(out, s.vars)
	return out
}

// cloneVars deep-copies a value map so that neither side can observe the
// other's later mutations.
func cloneVars(m map[string]any) map[string]any {
	if len(m) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

// deepCopyValue clones a single Rendering Context value. Scalars are
// returned as-is (copying a string or bool is already a value copy in Go);
// maps and slices are walked recursively so that mutating a cloned
// list/map never leaks back into the original scope.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = deepCopyValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = deepCopyValue(vv)
		}
		return out
	default:
		return t
	}
}
