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

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadAnswerFiles reads each --input-file path as a flat YAML map of
// key: val answers and combines them. A key present in more than one file
// is an error, since there's no principled way to pick a winner between
// two files the user listed with no stated precedence.
func loadAnswerFiles(paths []string) (map[string]string, error) {
	out := make(map[string]string)
	sourceFile := make(map[string]string)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading answer file %q: %w", path, err)
		}

		var fileAnswers map[string]string
		if err := yaml.Unmarshal(data, &fileAnswers); err != nil {
			return nil, fmt.Errorf("parsing answer file %q: %w", path, err)
		}

		for k, v := range fileAnswers {
			if existing, ok := sourceFile[k]; ok {
				return nil, fmt.Errorf("answer key %q appears in both %q and %q", k, existing, path)
			}
			out[k] = v
			sourceFile[k] = path
		}
	}
	return out, nil
}
