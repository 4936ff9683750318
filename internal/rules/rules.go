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

// Package rules implements the Rules Context (spec.md §4.3 "File
// disposition"): an ordered set of glob patterns that decide whether a
// given source file is rendered through the template engine, copied
// bytewise, or skipped, plus the overwrite and break-propagation flags a
// render pass threads through nested scopes and loops.
package rules

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/archetect-dev/archetect/internal/model"
)

// Disposition is the action taken for a file matched by a Rule.
type Disposition int

const (
	// Render expands the file through the template engine.
	Render Disposition = iota
	// Copy transfers the file's bytes unconditionally, without template
	// expansion.
	Copy
	// Skip omits the file from the rendered output entirely.
	Skip
)

func (d Disposition) String() string {
	switch d {
	case Render:
		return "render"
	case Copy:
		return "copy"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

func parseDisposition(pos *model.ConfigPos, action string) (Disposition, error) {
	switch strings.ToLower(action) {
	case "render", "":
		return Render, nil
	case "copy":
		return Copy, nil
	case "skip":
		return Skip, nil
	default:
		return Render, pos.Errorf("unrecognized rule action %q", action)
	}
}

// entry is a compiled Rule: a glob pattern paired with the disposition it
// assigns to matching paths.
type entry struct {
	pattern     string
	recursive   bool
	disposition Disposition
}

// Context is the mutable rule state threaded through a render pass. The
// zero value is a valid Context whose only rule is the spec's default:
// render everything.
//
// Context is NOT safe for concurrent use; spec.md §5 keeps rendering
// single-threaded per render pass.
type Context struct {
	entries   []entry
	overwrite bool

	// breakTriggered is set by a `break` action and checked by enclosing
	// `actions` lists and `loop` actions (spec.md §4.4 "Loop and break
	// semantics").
	breakTriggered bool
}

// New builds a Context from a manifest's declared rules, applied in
// listed order so that later rules take precedence over earlier ones for
// any path they both match (last-match-wins).
func New(decls []*model.Rule) (*Context, error) {
	c := &Context{}
	for _, d := range decls {
		disp, err := parseDisposition(&d.Pos, d.Action.Val)
		if err != nil {
			return nil, err
		}
		c.entries = append(c.entries, entry{
			pattern:     d.Pattern.Val,
			recursive:   d.Recursive.Val,
			disposition: disp,
		})
	}
	return c, nil
}

// ApplyOne appends a single rule declaration to c, for the `rules[list]`
// action, which mutates the rules context incrementally for the remainder
// of the enclosing scope (spec.md §4.5).
func (c *Context) ApplyOne(d *model.Rule) error {
	disp, err := parseDisposition(&d.Pos, d.Action.Val)
	if err != nil {
		return err
	}
	c.entries = append(c.entries, entry{
		pattern:     d.Pattern.Val,
		recursive:   d.Recursive.Val,
		disposition: disp,
	})
	return nil
}

// Resolve returns the disposition assigned to relPath: the disposition of
// the last rule whose pattern matches, or Render if no rule matches.
func (c *Context) Resolve(relPath string) Disposition {
	disp := Render
	slashed := filepath.ToSlash(relPath)
	for _, e := range c.entries {
		if matches(e, slashed) {
			disp = e.disposition
		}
	}
	return disp
}

func matches(e entry, slashed string) bool {
	if e.recursive {
		// A recursive rule matches the pattern against the path itself and
		// every ancestor directory component, so "vendor" recursively
		// matches "vendor/pkg/file.go".
		parts := strings.Split(slashed, "/")
		for i := range parts {
			candidate := strings.Join(parts[:i+1], "/")
			if ok, _ := path.Match(e.pattern, candidate); ok {
				return true
			}
			if ok, _ := path.Match(e.pattern, parts[i]); ok {
				return true
			}
		}
		return false
	}
	if ok, _ := path.Match(e.pattern, slashed); ok {
		return true
	}
	if ok, _ := path.Match(e.pattern, path.Base(slashed)); ok {
		return true
	}
	return false
}

// SetOverwrite sets whether RENDER is allowed to replace an existing
// destination file. The default (false) makes RENDER skip a file that
// already exists at the destination, per spec.md §4.3.
func (c *Context) SetOverwrite(v bool) { c.overwrite = v }

// Overwrite reports the current overwrite setting.
func (c *Context) Overwrite() bool { return c.overwrite }

// Break sets the break flag, signaling the enclosing `actions` list or
// `loop` action to stop processing further entries.
func (c *Context) Break() { c.breakTriggered = true }

// BreakTriggered reports whether Break has been called since the last
// ResetBreak.
func (c *Context) BreakTriggered() bool { return c.breakTriggered }

// ResetBreak clears the break flag; called when a `loop` action begins a
// fresh iteration.
func (c *Context) ResetBreak() { c.breakTriggered = false }

// Clone returns an independent copy of c, for the scope-isolation boundary
// a `scope` or `loop` action creates (spec.md §4.5). Mutations to the rule
// list or overwrite flag inside the clone never propagate back to c, but
// clones start with breakTriggered cleared so a stale break from an outer
// scope can't short-circuit a freshly entered one.
func (c *Context) Clone() *Context {
	clone := &Context{
		entries:   append([]entry(nil), c.entries...),
		overwrite: c.overwrite,
	}
	return clone
}
