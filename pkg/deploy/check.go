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

package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copyship/pkg/archive"
	"github.com/walteh/copyship/pkg/config"
	"github.com/walteh/copyship/pkg/remote"
	"github.com/walteh/copyship/pkg/shell"
	"github.com/walteh/copyship/pkg/source"
)

// 📍 Kind says where a dependency has to be present
type Kind string

const (
	Local  Kind = "local"
	Remote Kind = "remote"
)

// 🔎 Dependency is one command a deployment needs
type Dependency struct {
	Kind    Kind
	Command string
	Message string
	Ok      bool
	Err     error
}

// 📋 Report collects the outcome of a capability check
type Report struct {
	Dependencies []Dependency
}

// OK reports whether every dependency is satisfied
func (r *Report) OK() bool {
	for _, d := range r.Dependencies {
		if !d.Ok {
			return false
		}
	}
	return true
}

// Failed returns the unsatisfied dependencies
func (r *Report) Failed() []Dependency {
	var out []Dependency
	for _, d := range r.Dependencies {
		if !d.Ok {
			out = append(out, d)
		}
	}
	return out
}

// 🔧 CheckOptions configures Check
type CheckOptions struct {
	Config  *config.Config
	Source  source.Source
	Runner  shell.Runner
	Channel remote.Channel
}

// 🩺 Check verifies that the commands a deployment relies on exist, locally and
// on every host. Nothing is staged or uploaded. The returned error is reserved
// for misconfiguration; missing commands are reported in the Report.
func Check(ctx context.Context, opts CheckOptions) (*Report, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Runner == nil {
		return nil, errors.New("runner is required")
	}

	compression, err := archive.Parse(opts.Config.CopyCompression)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	if opts.Source != nil {
		if cmd := opts.Source.LocalCommand(); cmd != "" {
			report.Dependencies = append(report.Dependencies, checkLocal(ctx, opts.Runner, cmd))
		}
	}

	report.Dependencies = append(report.Dependencies, checkLocal(ctx, opts.Runner, compression.Compress("", "")[0]))

	if opts.Channel != nil {
		dep, err := checkRemote(ctx, opts.Channel, compression.Decompress("")[0])
		if err != nil {
			return nil, err
		}
		report.Dependencies = append(report.Dependencies, dep)
	}

	return report, nil
}

func checkLocal(ctx context.Context, runner shell.Runner, command string) Dependency {
	dep := Dependency{Kind: Local, Command: command}

	p, err := runner.LookPath(command)
	if err != nil {
		dep.Err = err
		dep.Message = fmt.Sprintf("`%s` could not be found in the local PATH", command)
	} else {
		dep.Ok = true
		dep.Message = fmt.Sprintf("`%s` found at %s", command, p)
	}

	zerolog.Ctx(ctx).Debug().Str("command", command).Bool("ok", dep.Ok).Msg("checked local dependency")
	return dep
}

func checkRemote(ctx context.Context, channel remote.Channel, command string) (Dependency, error) {
	dep := Dependency{Kind: Remote, Command: command}

	lookup, err := shell.Join([]string{"command", "-v", command})
	if err != nil {
		return dep, err
	}

	hosts := strings.Join(channel.Hosts(), ", ")
	if err := channel.Run(ctx, lookup); err != nil {
		dep.Err = err
		var hostErr *remote.HostError
		if errors.As(err, &hostErr) {
			dep.Message = fmt.Sprintf("`%s` could not be found on %s", command, hostErr.Host)
		} else {
			dep.Message = fmt.Sprintf("`%s` could not be checked on %s", command, hosts)
		}
	} else {
		dep.Ok = true
		dep.Message = fmt.Sprintf("`%s` found on %s", command, hosts)
	}

	zerolog.Ctx(ctx).Debug().Str("command", command).Bool("ok", dep.Ok).Msg("checked remote dependency")
	return dep, nil
}
