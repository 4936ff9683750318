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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInheritCarriesOnlyNamedVars(t *testing.T) {
	parent := NewAnswerSet(map[string]any{"a": "1", "b": "2", "c": "3"})

	child, err := Inherit(parent, []string{"a", "c"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": "1", "c": "3"}
	if diff := cmp.Diff(want, child.Values); diff != "" {
		t.Errorf("child.Values mismatch (-want +got):\n%s", diff)
	}
}

func TestInheritOverrideTakesPrecedence(t *testing.T) {
	parent := NewAnswerSet(map[string]any{"a": "parent-value"})

	child, err := Inherit(parent, []string{"a"}, map[string]any{"a": "override-value"})
	if err != nil {
		t.Fatal(err)
	}
	if child.Values["a"] != "override-value" {
		t.Errorf("child.Values[a] = %v, want override-value", child.Values["a"])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := NewAnswerSet(map[string]any{"a": "1"})
	clone, err := orig.Clone()
	if err != nil {
		t.Fatal(err)
	}
	clone.Values["a"] = "2"
	if orig.Values["a"] != "1" {
		t.Errorf("cloning mutated original: %v", orig.Values["a"])
	}
}
