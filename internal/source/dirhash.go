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
	"fmt"

	"golang.org/x/mod/sumdb/dirhash"
)

// hashLatest computes a content hash of dir using the latest/best dirhash
// algorithm, for diagnostic logging after a checkout. Not used for cache
// invalidation -- the cache key is the URL fingerprint computed in git.go.
func hashLatest(dir string) (string, error) {
	out, err := dirhash.HashDir(dir, "", dirhash.Hash1)
	if err != nil {
		return "", fmt.Errorf("dirhash.HashDir: %w", err)
	}
	return out, nil
}
