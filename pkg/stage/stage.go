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

// Package stage materializes the tree that gets deployed.
//
// Two modes exist. Without a cache, the configured strategy checks out or
// exports the revision straight into the staging directory and exclusions are
// deleted afterwards. With a cache, a long-lived working copy is synced (or
// checked out on first use) and then mirrored into the staging directory with
// hard links, pruning excluded entries during the walk so they are never
// materialized.
package stage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/danjacques/gofslock/fslock"
	"github.com/rs/zerolog"
	"github.com/walteh/copyship/pkg/exclude"
	"github.com/walteh/copyship/pkg/shell"
	"github.com/walteh/copyship/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// 🧭 Strategy selects how the revision is acquired when no cache is used
type Strategy int

const (
	Checkout Strategy = iota + 1
	Export
)

// ⚠️ UnknownStrategyError reports an unrecognized copy_strategy
type UnknownStrategyError struct {
	Value string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown copy_strategy %q (expected checkout or export)", e.Value)
}

// 🔍 ParseStrategy resolves a configured copy_strategy; empty means checkout
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "checkout":
		return Checkout, nil
	case "export":
		return Export, nil
	}
	return 0, errors.WithStack(&UnknownStrategyError{Value: s})
}

func (s Strategy) String() string {
	switch s {
	case Checkout:
		return "checkout"
	case Export:
		return "export"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func (s Strategy) validate() error {
	switch s {
	case Checkout, Export:
		return nil
	}
	return errors.WithStack(&UnknownStrategyError{Value: s.String()})
}

// Command returns the acquisition command for this strategy
func (s Strategy) Command(src source.Source, revision, destination string) (string, error) {
	switch s {
	case Checkout:
		return src.Checkout(revision, destination)
	case Export:
		return src.Export(revision, destination)
	}
	return "", s.validate()
}

// 🔗 LinkError is returned when a cached file cannot be hard linked into the
// staging directory, typically because both live on different filesystems
type LinkError struct {
	Source string
	Target string
	Err    error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("linking %s to %s: %v", e.Source, e.Target, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// 🔧 Options configures a Stager
type Options struct {
	// Source builds the checkout/export/sync commands
	Source source.Source
	// Runner executes those commands locally
	Runner shell.Runner
	// Strategy is used when CachePath is empty
	Strategy Strategy
	// CachePath enables cache mode when non-empty
	CachePath string
	// Exclude lists the patterns left out of the staged tree
	Exclude exclude.Set
	// LockPoll is the delay between attempts on a held cache lock
	LockPoll time.Duration
}

// 📦 Stager produces the local tree for a revision
type Stager struct {
	source   source.Source
	runner   shell.Runner
	strategy Strategy
	cache    string
	exclude  exclude.Set
	lockPoll time.Duration
}

// 🏭 New creates a Stager
func New(opts Options) (*Stager, error) {
	if opts.Source == nil {
		return nil, errors.Errorf("source is required")
	}
	if opts.Runner == nil {
		return nil, errors.Errorf("runner is required")
	}
	if err := opts.Exclude.Validate(); err != nil {
		return nil, err
	}
	if opts.CachePath == "" {
		if err := opts.Strategy.validate(); err != nil {
			return nil, err
		}
	}
	poll := opts.LockPoll
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	return &Stager{
		source:   opts.Source,
		runner:   opts.Runner,
		strategy: opts.Strategy,
		cache:    opts.CachePath,
		exclude:  opts.Exclude,
		lockPoll: poll,
	}, nil
}

// 🗂️ CacheMode reports whether staging goes through the cache
func (s *Stager) CacheMode() bool {
	return s.cache != ""
}

// 🏃 Stage populates destination with revision
func (s *Stager) Stage(ctx context.Context, revision, destination string) error {
	if s.CacheMode() {
		return s.stageFromCache(ctx, revision, destination)
	}
	return s.stageDirect(ctx, revision, destination)
}

func (s *Stager) stageDirect(ctx context.Context, revision, destination string) error {
	logger := zerolog.Ctx(ctx)

	cmd, err := s.strategy.Command(s.source, revision, destination)
	if err != nil {
		return err
	}

	logger.Debug().Str("strategy", s.strategy.String()).Str("destination", destination).Msg("acquiring revision")
	if err := s.runner.Run(ctx, "", cmd); err != nil {
		return errors.Errorf("running %s: %w", s.strategy, err)
	}

	if s.exclude.Empty() {
		return nil
	}

	removed, err := s.exclude.Remove(ctx, destination)
	if err != nil {
		return errors.Errorf("removing excluded paths: %w", err)
	}
	logger.Debug().Int("removed", len(removed)).Msg("applied exclusions")
	return nil
}

func (s *Stager) stageFromCache(ctx context.Context, revision, destination string) error {
	if err := os.MkdirAll(filepath.Dir(s.cache), 0o755); err != nil {
		return errors.Errorf("creating cache parent: %w", err)
	}

	lockPath := s.LockPath()
	blocker := func() error {
		zerolog.Ctx(ctx).Debug().Str("lock", lockPath).Msg("waiting for cache lock")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.lockPoll):
			return nil
		}
	}

	err := fslock.WithBlocking(lockPath, blocker, func() error {
		if err := s.refreshCache(ctx, revision); err != nil {
			return err
		}
		return s.linkTree(ctx, destination)
	})
	if err != nil {
		return errors.Errorf("staging from cache %s: %w", s.cache, err)
	}
	return nil
}

// 🔒 LockPath is the lock file guarding the cache
func (s *Stager) LockPath() string {
	return filepath.Clean(s.cache) + ".lock"
}

// refreshCache syncs an existing cache or checks it out on first use
func (s *Stager) refreshCache(ctx context.Context, revision string) error {
	logger := zerolog.Ctx(ctx)

	var (
		cmd string
		err error
		op  string
	)
	if _, statErr := os.Stat(s.cache); statErr == nil {
		op = "sync"
		cmd, err = s.source.Sync(revision, s.cache)
	} else if os.IsNotExist(statErr) {
		op = "checkout"
		cmd, err = s.source.Checkout(revision, s.cache)
	} else {
		return errors.Errorf("inspecting cache: %w", statErr)
	}
	if err != nil {
		return errors.Errorf("building %s command: %w", op, err)
	}

	logger.Debug().Str("cache", s.cache).Str("op", op).Msg("refreshing cache")
	if err := s.runner.Run(ctx, "", cmd); err != nil {
		return errors.Errorf("running cache %s: %w", op, err)
	}
	return nil
}

// linkTree mirrors the cache into destination breadth first. Excluded entries
// are dropped before they are expanded, so nothing below them is visited.
func (s *Stager) linkTree(ctx context.Context, destination string) error {
	logger := zerolog.Ctx(ctx)

	if err := os.MkdirAll(destination, 0o755); err != nil {
		return errors.Errorf("creating destination: %w", err)
	}

	queue, err := children(s.cache, "")
	if err != nil {
		return err
	}

	var dirs, links, skipped int
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := queue[0]
		queue = queue[1:]

		if s.exclude.Match(ctx, rel) {
			skipped++
			continue
		}

		src := filepath.Join(s.cache, rel)
		dst := filepath.Join(destination, rel)

		info, err := os.Lstat(src)
		if err != nil {
			return errors.Errorf("reading cache entry: %w", err)
		}

		switch {
		case info.IsDir():
			if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
				return errors.Errorf("creating directory %s: %w", rel, err)
			}
			kids, err := children(s.cache, rel)
			if err != nil {
				return err
			}
			queue = append(queue, kids...)
			dirs++
		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(src)
			if err != nil {
				return errors.Errorf("reading symlink %s: %w", rel, err)
			}
			if err := os.Symlink(target, dst); err != nil {
				return errors.WithStack(&LinkError{Source: src, Target: dst, Err: err})
			}
			links++
		default:
			if err := os.Link(src, dst); err != nil {
				return errors.WithStack(&LinkError{Source: src, Target: dst, Err: err})
			}
			links++
		}
	}

	logger.Debug().
		Int("directories", dirs).
		Int("links", links).
		Int("excluded", skipped).
		Msg("linked cache into destination")
	return nil
}

// children lists the entries of dir rel under root as paths relative to root
func children(root, rel string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, rel))
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", filepath.Join(root, rel), err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, filepath.Join(rel, e.Name()))
	}
	return out, nil
}
