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

package archetype

import (
	"github.com/jinzhu/copier"

	"github.com/archetect-dev/archetect/internal/errs"
)

// AnswerSet is the set of answer values a nested archetype render (the
// `render: archetype:` action, spec.md §4.4) is invoked with: a subset of
// the parent render's answers carried forward via `inherit-answers`, with
// the action's own literal `answers` block layered on top.
type AnswerSet struct {
	Values map[string]any
}

// NewAnswerSet wraps an existing value map as an AnswerSet. The map is not
// copied; callers that need isolation should call Clone.
func NewAnswerSet(values map[string]any) *AnswerSet {
	if values == nil {
		values = map[string]any{}
	}
	return &AnswerSet{Values: values}
}

// Clone returns a deep, independent copy of a through copier, rather than a
// hand-rolled field-by-field walk, since AnswerSet is a plain struct and
// copier's whole job is struct-to-struct copying.
func (a *AnswerSet) Clone() (*AnswerSet, error) {
	var out AnswerSet
	if err := copier.CopyWithOption(&out, a, copier.Option{DeepCopy: true}); err != nil {
		return nil, &errs.ArchetectError{Err: err}
	}
	if out.Values == nil {
		out.Values = map[string]any{}
	}
	return &out, nil
}

// Inherit builds the answer set a nested archetype render sees: the named
// variables in names are copied forward from parent (spec.md's
// `inherit-answers` list), then overridden is layered on top, matching the
// action's own `answers:` block taking precedence over anything inherited.
func Inherit(parent *AnswerSet, names []string, overridden map[string]any) (*AnswerSet, error) {
	carried := map[string]any{}
	if parent != nil {
		for _, name := range names {
			if v, ok := parent.Values[name]; ok {
				carried[name] = v
			}
		}
	}
	base, err := NewAnswerSet(carried).Clone()
	if err != nil {
		return nil, err
	}
	for k, v := range overridden {
		base.Values[k] = v
	}
	return base, nil
}
