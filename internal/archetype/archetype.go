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

// Package archetype implements the Archetype Loader (spec.md §4.1): turning
// a resolved Source directory into a parsed model.Manifest, and the answer
// map an archetype is rendered with (spec.md §3 "AnswerInfo").
package archetype

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/archetect-dev/archetect/internal/errs"
	"github.com/archetect-dev/archetect/internal/model"
	"github.com/archetect-dev/archetect/internal/source"
)

// Archetype is a loaded manifest together with the directory it was loaded
// from, which is also the root that render operations walk.
type Archetype struct {
	Manifest *model.Manifest
	Root     string
	Source   *source.Source
}

// Load parses the manifest at the root of src and returns the loaded
// Archetype. A LocalFile source is treated as pointing directly at the
// manifest file rather than a directory containing one.
func Load(src *source.Source) (*Archetype, error) {
	manifestPath := src.LocalPath
	if src.Kind != source.LocalFile {
		manifestPath = filepath.Join(src.LocalPath, source.ManifestFileName)
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, &errs.ArchetypeError{Source: src.Location, Err: err}
	}

	var m model.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &errs.ArchetypeError{Source: src.Location, Err: err}
	}

	return &Archetype{Manifest: &m, Root: src.Dir(), Source: src}, nil
}
