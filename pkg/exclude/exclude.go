// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package exclude decides which paths of a staged tree are left out of a
// deployment.
package exclude

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🚫 Set is an ordered list of glob patterns relative to the tree root
type Set []string

// 🏭 New builds a Set, dropping empty patterns
func New(patterns ...string) Set {
	s := make(Set, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		s = append(s, filepath.ToSlash(p))
	}
	return s
}

// 🔍 Empty reports whether the set excludes nothing
func (s Set) Empty() bool {
	return len(s) == 0
}

// ✅ Validate rejects patterns that are not valid globs
func (s Set) Validate() error {
	for _, pattern := range s {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// 🔍 Match reports whether rel matches any pattern in the set.
// Patterns use shell glob semantics; '*' and '?' never cross a '/'.
func (s Set) Match(ctx context.Context, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range s {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Trace().Str("path", rel).Str("pattern", pattern).Msg("path excluded by pattern")
			return true
		}
	}
	return false
}

// 🧹 Remove recursively deletes every path under root matching any pattern
// and returns the relative paths it removed. Invalid patterns match nothing,
// as in Match.
func (s Set) Remove(ctx context.Context, root string) ([]string, error) {
	var removed []string
	for _, pattern := range s {
		if !doublestar.ValidatePattern(pattern) {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Msg("skipping invalid pattern")
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(root), pattern)
		if err != nil {
			return removed, errors.Errorf("globbing %q under %s: %w", pattern, root, err)
		}
		for _, rel := range matches {
			if err := os.RemoveAll(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
				return removed, errors.Errorf("removing excluded path %s: %w", rel, err)
			}
			zerolog.Ctx(ctx).Debug().Str("path", rel).Str("pattern", pattern).Msg("removed excluded path")
			removed = append(removed, rel)
		}
	}
	return removed, nil
}
