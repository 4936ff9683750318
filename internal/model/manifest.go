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

package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the parsed form of an archetype's on-disk manifest
// (archetect.yml at the root of a resolved Source). It names the declared
// variable schema, default answers (carried on Variable.Default), the root
// action program, and the engine version requirements.
type Manifest struct {
	// APIVersion lets future manifest schema changes be introduced without
	// breaking existing archetypes parsed under an older schema.
	APIVersion String `yaml:"api-version"`

	// Requires is a semver constraint (e.g. ">=0.5.0") that the running
	// engine's version must satisfy, or empty if the archetype declares no
	// requirement.
	Requires String `yaml:"requires"`

	// Description is a human-readable summary, surfaced by tooling but not
	// consulted by the Action Engine itself.
	Description String `yaml:"description"`

	// Variables is the declared variable schema, in declaration order.
	Variables []*Variable `yaml:"variables"`

	// Actions is the root action program.
	Actions []*Action `yaml:"actions"`

	Pos ConfigPos `yaml:"-"`
}

// UnmarshalYAML implements yaml.Unmarshaler, so we can capture the position
// of the manifest document root.
func (m *Manifest) UnmarshalYAML(n *yaml.Node) error {
	type rawManifest Manifest // avoid infinite recursion into UnmarshalYAML
	var raw rawManifest
	if err := n.Decode(&raw); err != nil {
		return err //nolint:wrapcheck
	}
	*m = Manifest(raw)
	m.Pos = yamlPos(n)
	return nil
}

// Variable declares one entry of an archetype's input schema.
type Variable struct {
	Name    String  `yaml:"name"`
	Prompt  String  `yaml:"prompt"`
	Type    String  `yaml:"type"` // "string" (the default), "bool"/"boolean", or "int"/"integer"; any other type, including "list" and "map", is rejected
	Default *String `yaml:"default"`

	Pos ConfigPos `yaml:"-"`
}

// Rule is one entry of a "rules" action: a glob pattern paired with a
// file disposition.
type Rule struct {
	Pattern   String `yaml:"pattern"`
	Action    String `yaml:"action"` // "RENDER", "COPY", or "SKIP"
	Recursive Bool   `yaml:"recursive"`

	Pos ConfigPos `yaml:"-"`
}

// DirectoryRender renders an inline directory relative to the archetype
// root.
type DirectoryRender struct {
	Source String `yaml:"source"`

	Pos ConfigPos `yaml:"-"`
}

// ArchetypeRender renders a nested archetype resolved from a location
// string, optionally forwarding answers from the parent's ambient answer
// map.
type ArchetypeRender struct {
	Source          String            `yaml:"source"`
	InheritAnswers  []String          `yaml:"inherit-answers"`
	Answers         map[string]String `yaml:"answers"`
	DestinationSub  String            `yaml:"destination"`

	Pos ConfigPos `yaml:"-"`
}

// RenderAction is the payload of a "render" action node: exactly one of
// Directory or Archetype must be set.
type RenderAction struct {
	Directory *DirectoryRender `yaml:"directory"`
	Archetype *ArchetypeRender `yaml:"archetype"`

	Pos ConfigPos `yaml:"-"`
}

// IfAction is the payload of an "if" action node.
type IfAction struct {
	Condition String    `yaml:"condition"`
	Then      []*Action `yaml:"then"`
	Else      []*Action `yaml:"else"`

	Pos ConfigPos `yaml:"-"`
}

// ForEachAction is the payload of a "for-each" action node: iterate the
// sequence produced by evaluating In, binding each element to Name.
type ForEachAction struct {
	Name String    `yaml:"name"`
	In   String    `yaml:"in"`
	Body []*Action `yaml:"actions"`

	Pos ConfigPos `yaml:"-"`
}

// ForAction is the payload of a "for" action node: inclusive integer range
// iteration.
type ForAction struct {
	Name String    `yaml:"name"`
	From Int       `yaml:"from"`
	To   Int       `yaml:"to"`
	Body []*Action `yaml:"actions"`

	Pos ConfigPos `yaml:"-"`
}

// ExecAction is the payload of an "exec" action node.
type ExecAction struct {
	Command String   `yaml:"command"`
	Args    []String `yaml:"args"`
	Dir     String   `yaml:"dir"`

	// AllowNonzeroExit opts out of the default "nonzero exit is fatal"
	// behavior (see spec §9 Open Questions).
	AllowNonzeroExit Bool `yaml:"allow-nonzero-exit"`

	Pos ConfigPos `yaml:"-"`
}

// ActionKind discriminates the tagged union of action nodes.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionSet
	ActionScope
	ActionActions
	ActionRender
	ActionForEach
	ActionFor
	ActionLoop
	ActionBreak
	ActionIf
	ActionRules
	ActionExec
	ActionTrace
	ActionDebug
	ActionInfo
	ActionWarn
	ActionError
	ActionPrint
	ActionDisplay
)

// Action is one node of the action tree. Exactly one of the typed fields
// corresponding to Kind is populated; this mirrors the Rust original's
// `enum ActionId`, expressed in Go as a discriminated struct because Go has
// no sum types.
type Action struct {
	Kind ActionKind
	Pos  ConfigPos

	Set     map[string]*Variable // preserves declaration order via SetOrder
	SetOrder []string

	Scope   []*Action
	Actions []*Action
	Render  *RenderAction
	ForEach *ForEachAction
	For     *ForAction
	Loop    []*Action
	If      *IfAction
	Rules   []*Rule
	Exec    *ExecAction

	// Message is the rendered-template payload for trace/debug/info/warn/
	// error/print/display.
	Message String
}

// UnmarshalYAML implements yaml.Unmarshaler for the tagged union of action
// kinds. The manifest format names fields after the action tag, e.g.
// "set", "render", "for-each", matching spec.md §6.
func (a *Action) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return (&ConfigPos{Line: n.Line, Column: n.Column}).Errorf("an action must be a YAML mapping with exactly one key naming the action type")
	}
	if len(n.Content) != 2 {
		return (&ConfigPos{Line: n.Line, Column: n.Column}).Errorf("an action mapping must have exactly one key, got %d", len(n.Content)/2)
	}
	a.Pos = yamlPos(n)
	key := n.Content[0].Value
	val := n.Content[1]

	switch key {
	case "set":
		a.Kind = ActionSet
		// Decode as an ordered mapping so later variables in the same "set"
		// block may reference earlier ones (spec §4.5 evaluation order).
		if val.Kind != yaml.MappingNode {
			return a.Pos.Errorf("set: expected a mapping of variable name to definition")
		}
		a.Set = make(map[string]*Variable, len(val.Content)/2)
		for i := 0; i+1 < len(val.Content); i += 2 {
			name := val.Content[i].Value
			v := &Variable{}
			if err := val.Content[i+1].Decode(v); err != nil {
				return fmt.Errorf("set.%s: %w", name, err)
			}
			v.Name = String{Val: name, Pos: yamlPos(val.Content[i])}
			a.Set[name] = v
			a.SetOrder = append(a.SetOrder, name)
		}
	case "scope":
		a.Kind = ActionScope
		if err := val.Decode(&a.Scope); err != nil {
			return fmt.Errorf("scope: %w", err)
		}
	case "actions":
		a.Kind = ActionActions
		if err := val.Decode(&a.Actions); err != nil {
			return fmt.Errorf("actions: %w", err)
		}
	case "render":
		a.Kind = ActionRender
		a.Render = &RenderAction{Pos: yamlPos(val)}
		if err := val.Decode(a.Render); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	case "for-each":
		a.Kind = ActionForEach
		a.ForEach = &ForEachAction{Pos: yamlPos(val)}
		if err := val.Decode(a.ForEach); err != nil {
			return fmt.Errorf("for-each: %w", err)
		}
	case "for":
		a.Kind = ActionFor
		a.For = &ForAction{Pos: yamlPos(val)}
		if err := val.Decode(a.For); err != nil {
			return fmt.Errorf("for: %w", err)
		}
	case "loop":
		a.Kind = ActionLoop
		if err := val.Decode(&a.Loop); err != nil {
			return fmt.Errorf("loop: %w", err)
		}
	case "break":
		a.Kind = ActionBreak
	case "if":
		a.Kind = ActionIf
		a.If = &IfAction{Pos: yamlPos(val)}
		if err := val.Decode(a.If); err != nil {
			return fmt.Errorf("if: %w", err)
		}
	case "rules":
		a.Kind = ActionRules
		if err := val.Decode(&a.Rules); err != nil {
			return fmt.Errorf("rules: %w", err)
		}
	case "exec":
		a.Kind = ActionExec
		a.Exec = &ExecAction{Pos: yamlPos(val)}
		if err := val.Decode(a.Exec); err != nil {
			return fmt.Errorf("exec: %w", err)
		}
	case "trace":
		a.Kind = ActionTrace
		return a.decodeMessage(val)
	case "debug":
		a.Kind = ActionDebug
		return a.decodeMessage(val)
	case "info":
		a.Kind = ActionInfo
		return a.decodeMessage(val)
	case "warn":
		a.Kind = ActionWarn
		return a.decodeMessage(val)
	case "error":
		a.Kind = ActionError
		return a.decodeMessage(val)
	case "print":
		a.Kind = ActionPrint
		return a.decodeMessage(val)
	case "display":
		a.Kind = ActionDisplay
		return a.decodeMessage(val)
	default:
		return a.Pos.Errorf("unrecognized action type %q", key)
	}
	return nil
}

func (a *Action) decodeMessage(val *yaml.Node) error {
	var s string
	if err := val.Decode(&s); err != nil {
		return fmt.Errorf("%s: %w", a.kindName(), err)
	}
	a.Message = String{Val: s, Pos: yamlPos(val)}
	return nil
}

func (a *Action) kindName() string {
	switch a.Kind {
	case ActionTrace:
		return "trace"
	case ActionDebug:
		return "debug"
	case ActionInfo:
		return "info"
	case ActionWarn:
		return "warn"
	case ActionError:
		return "error"
	case ActionPrint:
		return "print"
	case ActionDisplay:
		return "display"
	default:
		return "action"
	}
}
