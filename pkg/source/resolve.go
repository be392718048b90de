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

package source

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	fullHash = regexp.MustCompile(`^[0-9a-f]{40}$`)
	// commitID also accepts abbreviated hashes, which cannot be fetched by name
	commitID = regexp.MustCompile(`^[0-9a-f]{7,40}$`)
)

// 🔎 Resolve turns a branch, tag or HEAD into the commit hash it currently
// points at on repository. Full commit hashes are returned unchanged.
func Resolve(ctx context.Context, repository, ref string) (string, error) {
	if fullHash.MatchString(ref) {
		return ref, nil
	}

	rem := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{repository},
	})

	refs, err := rem.ListContext(ctx, &git.ListOptions{PeelingOption: git.AppendPeeled})
	if err != nil {
		return "", errors.Errorf("listing references of %s: %w", repository, err)
	}

	hash, err := resolveRef(refs, ref)
	if err != nil {
		return "", errors.Errorf("resolving %s on %s: %w", ref, repository, err)
	}

	zerolog.Ctx(ctx).Debug().Str("ref", ref).Str("revision", hash).Msg("resolved revision")
	return hash, nil
}

// resolveRef picks the commit a ref name points at among advertised references.
// Peeled tag entries win over the tag object itself.
func resolveRef(refs []*plumbing.Reference, ref string) (string, error) {
	byName := make(map[string]*plumbing.Reference, len(refs))
	for _, r := range refs {
		byName[r.Name().String()] = r
	}

	if ref == "" || ref == "HEAD" {
		head, ok := byName["HEAD"]
		if !ok {
			return "", errors.New("remote does not advertise HEAD")
		}
		if head.Type() == plumbing.SymbolicReference {
			target, ok := byName[head.Target().String()]
			if !ok {
				return "", errors.Errorf("HEAD points at unknown reference %s", head.Target())
			}
			return target.Hash().String(), nil
		}
		return head.Hash().String(), nil
	}

	candidates := []string{
		"refs/tags/" + ref + "^{}",
		"refs/tags/" + ref,
		"refs/heads/" + ref,
		ref,
	}
	if strings.HasPrefix(ref, "refs/") {
		candidates = []string{ref + "^{}", ref}
	}
	for _, name := range candidates {
		if r, ok := byName[name]; ok && r.Type() == plumbing.HashReference {
			return r.Hash().String(), nil
		}
	}
	return "", errors.Errorf("reference %q not found", ref)
}
