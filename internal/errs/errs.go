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

// Package errs defines the error taxonomy described in spec.md §7: each
// kind carries enough context for a single-line message at the CLI
// entrypoint, and none of them are retryable at the layer that produces
// them -- the first error aborts execution and unwinds to the caller.
package errs

import "fmt"

// ArchetectError wraps a failure surfaced from running the engine that has
// no more specific error kind (e.g. a failed exec command or a failed write
// to an output stream).
type ArchetectError struct {
	Err error
}

func (e *ArchetectError) Error() string { return e.Err.Error() }
func (e *ArchetectError) Unwrap() error { return e.Err }

// ArchetypeError reports a manifest parse or structural failure.
type ArchetypeError struct {
	Source string // the location string the archetype was loaded from
	Err    error
}

func (e *ArchetypeError) Error() string {
	return fmt.Sprintf("archetype error loading %q: %v", e.Source, e.Err)
}
func (e *ArchetypeError) Unwrap() error { return e.Err }

// SourceErrorKind enumerates the failure modes of the Source Resolver
// (spec.md §4.1).
type SourceErrorKind int

const (
	SourceUnsupported SourceErrorKind = iota
	SourceNotFound
	SourceInvalidPath
	SourceInvalidEncoding
	RemoteSourceError
	OfflineAndNotCached
	NoDefaultBranch
	IoError
)

func (k SourceErrorKind) String() string {
	switch k {
	case SourceUnsupported:
		return "SourceUnsupported"
	case SourceNotFound:
		return "SourceNotFound"
	case SourceInvalidPath:
		return "SourceInvalidPath"
	case SourceInvalidEncoding:
		return "SourceInvalidEncoding"
	case RemoteSourceError:
		return "RemoteSourceError"
	case OfflineAndNotCached:
		return "OfflineAndNotCached"
	case NoDefaultBranch:
		return "NoDefaultBranch"
	case IoError:
		return "IoError"
	default:
		return "SourceError"
	}
}

// SourceError reports a Source Resolver failure.
type SourceError struct {
	Kind SourceErrorKind
	// Location is the location string that failed to resolve.
	Location string
	// ExitCode and Stderr are populated for RemoteSourceError, which
	// originates from a failed git subprocess invocation.
	ExitCode int
	Stderr   string
	Err      error
}

func (e *SourceError) Error() string {
	switch e.Kind {
	case RemoteSourceError:
		return fmt.Sprintf("%s: git command for %q failed with exit code %d: %s", e.Kind, e.Location, e.ExitCode, e.Stderr)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %q: %v", e.Kind, e.Location, e.Err)
		}
		return fmt.Sprintf("%s: %q", e.Kind, e.Location)
	}
}

func (e *SourceError) Unwrap() error { return e.Err }

// RenderError reports a template compilation or evaluation failure. It
// carries the offending path or literal template text (spec.md §4.2).
type RenderError struct {
	// Path is set when the failure occurred while rendering a file or path
	// component; empty when rendering an ad-hoc string template.
	Path string
	// Template is the literal template text that failed to render, when
	// available.
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("render error at %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("render error in template %q: %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// SystemError reports a Layout Provider failure (e.g. unable to determine
// the user's home or cache directory).
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string { return fmt.Sprintf("system error: %v", e.Err) }
func (e *SystemError) Unwrap() error { return e.Err }

// RequirementsError reports that the running engine's version doesn't
// satisfy an archetype's declared requirement.
type RequirementsError struct {
	Source     string // the location string that declared the requirement
	Constraint string
	EngineVer  string
	Err        error
}

func (e *RequirementsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("requirements error in %q: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("archetype %q requires engine version %q, but this engine is %q", e.Source, e.Constraint, e.EngineVer)
}

func (e *RequirementsError) Unwrap() error { return e.Err }

// UnknownVarError is returned when a template references a variable that
// isn't bound in the current Rendering Context.
type UnknownVarError struct {
	VarName       string
	AvailableVars []string
	Wrapped       error
}

func (e *UnknownVarError) Error() string {
	return fmt.Sprintf("template referenced unknown variable %q; available variables: %v", e.VarName, e.AvailableVars)
}

func (e *UnknownVarError) Unwrap() error { return e.Wrapped }
