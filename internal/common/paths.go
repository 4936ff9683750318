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

package common

import (
	"path/filepath"
	"strings"

	"github.com/archetect-dev/archetect/internal/model"
)

// SafeRelPath returns an error if p contains a ".." traversal component, and
// strips any leading path separator so the result is safe to filepath.Join
// under a destination root.
func SafeRelPath(pos *model.ConfigPos, p string) (string, error) {
	for _, part := range strings.Split(filepath.ToSlash(p), "/") {
		if part == ".." {
			return "", pos.Errorf("path %q must not contain %q", p, "..")
		}
	}
	return strings.TrimLeft(p, string(filepath.Separator)), nil
}

// JoinIfRelative returns path unchanged if absolute, else joins it onto base.
func JoinIfRelative(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
