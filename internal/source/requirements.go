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

package source

import (
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/archetect-dev/archetect/internal/errs"
	"github.com/archetect-dev/archetect/internal/model"
	"github.com/archetect-dev/archetect/internal/version"
)

// ManifestFileName is the fixed filename the Archetype Loader looks for at
// the root of a resolved Source.
const ManifestFileName = "archetect.yml"

// devVersion is internal/version.Version's default value for an unreleased
// build. It's valid semver on its own, so it can't be used to detect a dev
// build by parse failure; it's compared against directly instead.
const devVersion = "0.0.0-dev"

// verifyRequirements implements the Requirements Gate (spec.md §4.1
// "Requirements verification"): if the archetype's manifest declares a
// `requires` constraint, the running engine's version must satisfy it.
// LocalFile sources are not checked. This peeks at the manifest directly rather than going through the
// Archetype Loader so a version mismatch is reported before any template
// evaluation begins.
func verifyRequirements(src *Source) error {
	if src.Kind == LocalFile {
		return nil
	}

	manifestPath := filepath.Join(src.LocalPath, ManifestFileName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &errs.SourceError{Kind: errs.IoError, Location: src.Location, Err: err}
	}

	var m model.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return &errs.ArchetypeError{Source: src.Location, Err: err}
	}
	if m.Requires.Val == "" {
		return nil
	}

	if version.Version == devVersion {
		// An unreleased dev build has no meaningful version to check a
		// constraint against; skip rather than fail every archetype that
		// declares any requirement at all.
		return nil
	}

	constraint, err := semver.NewConstraint(m.Requires.Val)
	if err != nil {
		return &errs.RequirementsError{Source: src.Location, Constraint: m.Requires.Val, Err: err}
	}

	engineVer, err := semver.NewVersion(version.Version)
	if err != nil {
		return &errs.RequirementsError{Source: src.Location, Constraint: m.Requires.Val, Err: err}
	}

	if !constraint.Check(engineVer) {
		return &errs.RequirementsError{Source: src.Location, Constraint: m.Requires.Val, EngineVer: version.Version}
	}
	return nil
}
