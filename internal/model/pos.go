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

// Package model contains the data types that make up an archetype manifest
// as parsed from YAML, together with the line/column tracking that lets
// error messages point back at the offending part of the manifest.
package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ConfigPos stores the position of a config value so error messages can
// point to problems in the manifest. The zero value means "position unknown
// or there is no position," which happens for values that didn't come
// directly from YAML (e.g. ad-hoc strings built at runtime).
type ConfigPos struct {
	Line   int
	Column int
}

// yamlPos constructs a position from a YAML parse cursor.
func yamlPos(n *yaml.Node) ConfigPos {
	return ConfigPos{
		Line:   n.Line,
		Column: n.Column,
	}
}

// Errorf returns an error prepended with manifest position information, if
// available.
func (c *ConfigPos) Errorf(fmtStr string, args ...any) error {
	err := fmt.Errorf(fmtStr, args...)
	if c == nil || *c == (ConfigPos{}) {
		return err
	}
	return fmt.Errorf("at line %d column %d: %w", c.Line, c.Column, err)
}
