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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScopeLookupFallsThroughToParent(t *testing.T) {
	outer := NewScope(map[string]any{"a": "outer-a", "b": "outer-b"})
	inner := outer.With(map[string]any{"a": "inner-a"})

	if v, ok := inner.Lookup("a"); !ok || v != "inner-a" {
		t.Errorf("Lookup(a) = %v, %v, want inner-a, true", v, ok)
	}
	if v, ok := inner.Lookup("b"); !ok || v != "outer-b" {
		t.Errorf("Lookup(b) = %v, %v, want outer-b, true", v, ok)
	}
	if _, ok := inner.Lookup("c"); ok {
		t.Error("Lookup(c) should miss")
	}
}

func TestScopeCloneIsIndependent(t *testing.T) {
	s := NewScope(map[string]any{"x": "1"})
	clone := s.Clone()
	clone.Set("x", "2")

	if v, _ := s.Lookup("x"); v != "1" {
		t.Errorf("original scope mutated: x = %v, want 1", v)
	}
	if v, _ := clone.Lookup("x"); v != "2" {
		t.Errorf("clone.Lookup(x) = %v, want 2", v)
	}
}

func TestScopeDeepCopyIsolatesNestedValues(t *testing.T) {
	nested := map[string]any{"inner": "a"}
	s := NewScope(map[string]any{"m": nested})

	nested["inner"] = "mutated"

	v, _ := s.Lookup("m")
	got := v.(map[string]any)["inner"]
	if got != "a" {
		t.Errorf("scope observed external mutation of source map: got %v, want a", got)
	}
}

func TestScopeAllMergesInheritedAndLocal(t *testing.T) {
	outer := NewScope(map[string]any{"a": "1", "b": "2"})
	inner := outer.With(map[string]any{"b": "override"})

	all := inner.All()
	want := map[string]any{"a": "1", "b": "override"}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestScopeSetMutatesInnermostLevel(t *testing.T) {
	s := NewScope(nil)
	s.Set("x", "1")
	s.Set("x", "2")

	v, ok := s.Lookup("x")
	if !ok || v != "2" {
		t.Errorf("Lookup(x) = %v, %v, want 2, true", v, ok)
	}
}
