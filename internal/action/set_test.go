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
	"testing"

	"github.com/archetect-dev/archetect/internal/archetype"
	"github.com/archetect-dev/archetect/internal/common"
	"github.com/archetect-dev/archetect/internal/model"
)

func TestResolveVarPrefersExplicitAnswerOverDefault(t *testing.T) {
	t.Parallel()

	fr := &Frame{
		Scope:    common.NewScope(nil),
		Headless: true,
		Answers:  &archetype.AnswerSet{Values: map[string]any{"name": "from-answer"}},
	}
	def := model.String{Val: "from-default"}
	v := &model.Variable{Name: model.String{Val: "name"}, Default: &def}

	got, err := resolveVar(context.Background(), fr, "name", v)
	if err != nil {
		t.Fatalf("resolveVar: %v", err)
	}
	if got != "from-answer" {
		t.Errorf("resolveVar = %v, want %q", got, "from-answer")
	}
}

func TestResolveVarFallsThroughToAmbientScopeValue(t *testing.T) {
	t.Parallel()

	scope := common.NewScope(map[string]any{"name": "ambient"})
	fr := &Frame{Scope: scope, Headless: true}
	v := &model.Variable{Name: model.String{Val: "name"}}

	got, err := resolveVar(context.Background(), fr, "name", v)
	if err != nil {
		t.Fatalf("resolveVar: %v", err)
	}
	if got != "ambient" {
		t.Errorf("resolveVar = %v, want %q", got, "ambient")
	}
}

func TestResolveVarHeadlessWithoutDefaultErrors(t *testing.T) {
	t.Parallel()

	fr := &Frame{Scope: common.NewScope(nil), Headless: true}
	v := &model.Variable{Name: model.String{Val: "name"}}

	if _, err := resolveVar(context.Background(), fr, "name", v); err == nil {
		t.Fatal("resolveVar: expected an UnknownVarError, got nil")
	}
}

func TestResolveVarRendersDefaultAgainstScope(t *testing.T) {
	t.Parallel()

	scope := common.NewScope(map[string]any{"project": "widgets"})
	fr := &Frame{Scope: scope, Headless: true}
	def := model.String{Val: "{{ .project }}-service"}
	v := &model.Variable{Name: model.String{Val: "service_name"}, Default: &def}

	got, err := resolveVar(context.Background(), fr, "service_name", v)
	if err != nil {
		t.Fatalf("resolveVar: %v", err)
	}
	if got != "widgets-service" {
		t.Errorf("resolveVar = %v, want %q", got, "widgets-service")
	}
}

func TestConvertVarCoercesDeclaredType(t *testing.T) {
	t.Parallel()

	v := &model.Variable{Name: model.String{Val: "count"}, Type: model.String{Val: "int"}}
	got, err := convertVar(v, "3")
	if err != nil {
		t.Fatalf("convertVar: %v", err)
	}
	if got != 3 {
		t.Errorf("convertVar = %v (%T), want 3", got, got)
	}
}

func TestConvertVarRejectsBadBool(t *testing.T) {
	t.Parallel()

	v := &model.Variable{Name: model.String{Val: "flag"}, Type: model.String{Val: "bool"}}
	if _, err := convertVar(v, "not-a-bool"); err == nil {
		t.Fatal("convertVar: expected an error for an invalid bool literal")
	}
}
