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

// Package source describes how a revision is materialized on the local
// machine. Implementations only build command lines; running them is left to
// a shell.Runner.
package source

import (
	"path/filepath"

	"github.com/walteh/copyship/pkg/shell"
	"gitlab.com/tozd/go/errors"
)

// 📦 Source builds the command lines that acquire a revision into a directory
type Source interface {
	// Checkout returns a command producing a working copy of revision at destination
	Checkout(revision, destination string) (string, error)
	// Export returns a command producing a pristine tree (no VCS metadata) at destination
	Export(revision, destination string) (string, error)
	// Sync returns a command refreshing an existing working copy at destination to revision
	Sync(revision, destination string) (string, error)
	// LocalCommand names the local executable these commands depend on, or ""
	LocalCommand() string
}

// 🌳 Git drives the git command line
type Git struct {
	// Repository is the clone URL
	Repository string
	// Command is the git executable, "git" when empty
	Command string
	// Remote is the remote name used when syncing, "origin" when empty
	Remote string
}

var _ Source = (*Git)(nil)

// 🏭 NewGit creates a git source for repository
func NewGit(repository, command string) *Git {
	return &Git{Repository: repository, Command: command}
}

func (g *Git) command() string {
	if g.Command == "" {
		return "git"
	}
	return g.Command
}

func (g *Git) remote() string {
	if g.Remote == "" {
		return "origin"
	}
	return g.Remote
}

// LocalCommand implements Source
func (g *Git) LocalCommand() string {
	return g.command()
}

// Checkout implements Source
func (g *Git) Checkout(revision, destination string) (string, error) {
	if g.Repository == "" {
		return "", errors.New("git repository is not configured")
	}
	git := g.command()
	return chain(
		[]string{git, "clone", "-q", g.Repository, destination},
		[]string{"cd", destination},
		[]string{git, "checkout", "-q", "-b", "deploy", revision},
	)
}

// Export implements Source
func (g *Git) Export(revision, destination string) (string, error) {
	checkout, err := g.Checkout(revision, destination)
	if err != nil {
		return "", err
	}
	rm, err := shell.Join([]string{"rm", "-Rf", filepath.Join(destination, ".git")})
	if err != nil {
		return "", err
	}
	return checkout + " && " + rm, nil
}

// Sync implements Source. Commit ids are reset to directly; branch, tag and
// HEAD names are fetched from the remote first so the cache never resets to
// a stale local ref.
func (g *Git) Sync(revision, destination string) (string, error) {
	git := g.command()
	remote := g.remote()
	cmds := [][]string{
		{"cd", destination},
		{git, "fetch", "-q", remote},
		{git, "fetch", "--tags", "-q", remote},
	}
	if commitID.MatchString(revision) {
		cmds = append(cmds, []string{git, "reset", "-q", "--hard", revision})
	} else {
		cmds = append(cmds,
			[]string{git, "fetch", "-q", remote, revision},
			[]string{git, "reset", "-q", "--hard", "FETCH_HEAD"},
		)
	}
	cmds = append(cmds, []string{git, "clean", "-q", "-d", "-x", "-f"})
	return chain(cmds...)
}

// chain quotes each command and joins them with &&
func chain(cmds ...[]string) (string, error) {
	var out string
	for i, argv := range cmds {
		line, err := shell.Join(argv)
		if err != nil {
			return "", err
		}
		if i > 0 {
			out += " && "
		}
		out += line
	}
	return out, nil
}
