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

// Package version holds the engine's own version, consulted by the
// Requirements Gate (spec.md §4.1 "Requirements verification") when an
// archetype declares a minimum engine version.
package version

import "fmt"

var (
	// Name is the program name reported by --version and used as the CLI
	// root command name.
	Name = "archetect"

	// Version is set at build time via -ldflags; it defaults to "0.0.0-dev"
	// so that requirement checks against in-development builds don't spew
	// misleading output.
	Version = "0.0.0-dev"

	// Commit is the VCS commit this binary was built from, if known.
	Commit = ""
)

// HumanVersion is a one-line human-readable version string.
func HumanVersion() string {
	if Commit == "" {
		return fmt.Sprintf("%s %s", Name, Version)
	}
	return fmt.Sprintf("%s %s (%s)", Name, Version, Commit)
}
