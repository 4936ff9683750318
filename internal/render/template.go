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

// Package render implements the Template Engine Façade and the Path/File
// Renderer described in spec.md §4.2 and §4.3: rendering a string through
// text/template against the current Scope, and walking a source directory
// applying the Rules Context's dispositions to produce the destination
// tree.
//
// Variable references use text/template's field-access syntax, e.g.
// "Hi {{ .name }}" rather than spec.md's illustrative "Hi {{ name }}": the
// Scope's variables are rendered as fields of the template's root data
// value, not as bare identifiers, matching how the teacher's own manifests
// are written. See DESIGN.md for the Open Question decision.
package render

import (
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/archetect-dev/archetect/internal/common"
	"github.com/archetect-dev/archetect/internal/errs"
	"github.com/archetect-dev/archetect/internal/model"
)

// missingKeyRE detects text/template's generic "map has no entry for key"
// error so it can be rewritten into the richer errs.UnknownVarError, which
// lists the variables that _were_ available.
var missingKeyRE = regexp.MustCompile(`map has no entry for key "([^"]*)"`)

// String renders tmpl as a Go template against scope. pos is used to
// annotate compile errors with the manifest location that produced the
// template text; it may be nil for template text that didn't come from the
// manifest (e.g. a path component already split out).
func String(pos *model.ConfigPos, tmpl string, scope *common.Scope) (string, error) {
	parsed, err := template.New("").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", wrapCompileErr(pos, tmpl, err)
	}

	var sb strings.Builder
	vars := scope.All()
	if err := parsed.Execute(&sb, vars); err != nil {
		if m := missingKeyRE.FindStringSubmatch(err.Error()); m != nil {
			names := maps.Keys(vars)
			slices.Sort(names)
			err = &errs.UnknownVarError{VarName: m[1], AvailableVars: names, Wrapped: err}
		}
		return "", &errs.RenderError{Template: tmpl, Err: err}
	}
	return sb.String(), nil
}

// PathComponent renders a single path segment of a source tree (a file or
// directory name containing "{{ ... }}" placeholders) against scope.
func PathComponent(pos *model.ConfigPos, component string, scope *common.Scope) (string, error) {
	rendered, err := String(pos, component, scope)
	if err != nil {
		return "", err
	}
	if rendered == "" {
		return "", pos.Errorf("path component %q rendered to an empty string", component)
	}
	return rendered, nil
}

// Contents renders the full text contents of a source file against scope.
// It's the same operation as String, kept as a distinct name because
// spec.md §4.2 distinguishes "render_contents" (whole-file) from
// "render_string" (inline expression) as separate Template Engine Façade
// operations, and callers read more clearly naming the one they mean.
func Contents(path string, contents string, scope *common.Scope) (string, error) {
	out, err := String(nil, contents, scope)
	if err != nil {
		if re, ok := err.(*errs.RenderError); ok {
			re.Path = path
			return "", re
		}
		return "", err
	}
	return out, nil
}

func wrapCompileErr(pos *model.ConfigPos, tmpl string, err error) error {
	if pos != nil {
		return pos.Errorf("error compiling %q as a template: %w", tmpl, err)
	}
	return &errs.RenderError{Template: tmpl, Err: err}
}
