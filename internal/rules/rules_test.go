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

package rules

import (
	"testing"

	"github.com/archetect-dev/archetect/internal/model"
)

func rule(pattern, action string, recursive bool) *model.Rule {
	return &model.Rule{
		Pattern:   model.String{Val: pattern},
		Action:    model.String{Val: action},
		Recursive: model.Bool{Val: recursive},
	}
}

func TestResolveDefaultIsRender(t *testing.T) {
	c, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Resolve("any/path.txt"); got != Render {
		t.Errorf("Resolve = %v, want Render", got)
	}
}

func TestResolveLastMatchWins(t *testing.T) {
	c, err := New([]*model.Rule{
		rule("*.txt", "render", false),
		rule("secret.txt", "skip", false),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Resolve("secret.txt"); got != Skip {
		t.Errorf("Resolve(secret.txt) = %v, want Skip", got)
	}
	if got := c.Resolve("readme.txt"); got != Render {
		t.Errorf("Resolve(readme.txt) = %v, want Render", got)
	}
}

func TestResolveRecursiveDirectory(t *testing.T) {
	c, err := New([]*model.Rule{
		rule("vendor", "copy", true),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Resolve("vendor/pkg/file.go"); got != Copy {
		t.Errorf("Resolve(vendor/pkg/file.go) = %v, want Copy", got)
	}
	if got := c.Resolve("src/file.go"); got != Render {
		t.Errorf("Resolve(src/file.go) = %v, want Render", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c, err := New([]*model.Rule{rule("*.txt", "skip", false)})
	if err != nil {
		t.Fatal(err)
	}
	c.SetOverwrite(true)
	c.Break()

	clone := c.Clone()
	if !clone.Overwrite() {
		t.Error("clone should inherit overwrite setting")
	}
	if clone.BreakTriggered() {
		t.Error("clone should start with break cleared")
	}

	clone.SetOverwrite(false)
	if !c.Overwrite() {
		t.Error("mutating clone must not affect original")
	}
}

func TestBreakResetAndTrigger(t *testing.T) {
	c, _ := New(nil)
	if c.BreakTriggered() {
		t.Fatal("new Context must not start with break triggered")
	}
	c.Break()
	if !c.BreakTriggered() {
		t.Fatal("Break() must set BreakTriggered")
	}
	c.ResetBreak()
	if c.BreakTriggered() {
		t.Fatal("ResetBreak() must clear BreakTriggered")
	}
}

func TestUnrecognizedActionErrors(t *testing.T) {
	_, err := New([]*model.Rule{rule("*.txt", "frobnicate", false)})
	if err == nil {
		t.Fatal("expected error for unrecognized rule action")
	}
}
