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

package opts

import (
	"context"
	"io"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copyship/pkg/config"
	"github.com/walteh/copyship/pkg/log"
	"github.com/walteh/copyship/pkg/remote"
	"github.com/walteh/copyship/pkg/shell"
	"github.com/walteh/copyship/pkg/source"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
	Hosts      []string

	Config     *config.Config
	Runner     shell.Runner
	UserLogger *log.Logger
}

// 📥 Load reads the config file once and applies flag overrides
func (o *RootOpts) Load(ctx context.Context) error {
	if o.Config != nil {
		return nil
	}

	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if len(o.Hosts) > 0 {
		cfg.Hosts = o.Hosts
	}

	o.Config = cfg
	if o.Runner == nil {
		o.Runner = shell.NewInterpreter()
	}
	return nil
}

// Source returns the revision source described by the config
func (o *RootOpts) Source() source.Source {
	return source.NewGit(o.Config.Repository, o.Config.SCMCommand)
}

// 🌐 Channel opens the channel to the configured hosts. A single "localhost"
// host deploys on this machine without ssh. The returned closer must be called.
func (o *RootOpts) Channel() (remote.Channel, io.Closer, error) {
	cfg := o.Config
	if len(cfg.Hosts) == 1 && cfg.Hosts[0] == remote.LocalHost {
		return remote.NewLocal(o.Runner), nopCloser{}, nil
	}

	ch, err := remote.NewSSH(remote.SSHOptions{
		Hosts:                 cfg.Hosts,
		User:                  cfg.User,
		Port:                  cfg.Port,
		KeyFile:               cfg.SSHKey,
		KnownHosts:            cfg.KnownHosts,
		InsecureIgnoreHostKey: cfg.InsecureIgnoreHostKey,
		Timeout:               time.Duration(cfg.SSHTimeout) * time.Second,
	})
	if err != nil {
		return nil, nil, errors.Errorf("creating ssh channel: %w", err)
	}
	return ch, ch, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
