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

package remote

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copyship/pkg/shell"
)

// LocalHost is the host name reported by a Local channel
const LocalHost = "localhost"

// 🏠 Local treats the machine running the deployment as its only host
type Local struct {
	Runner shell.Runner
}

// 🏭 NewLocal creates a Local channel running commands through runner
func NewLocal(runner shell.Runner) *Local {
	return &Local{Runner: runner}
}

var _ Channel = (*Local)(nil)

// Hosts implements Channel
func (l *Local) Hosts() []string {
	return []string{LocalHost}
}

// Run implements Channel
func (l *Local) Run(ctx context.Context, command string) error {
	if err := l.Runner.Run(ctx, "", command); err != nil {
		return errors.WithStack(&HostError{Host: LocalHost, Err: err})
	}
	return nil
}

// Put implements Channel
func (l *Local) Put(ctx context.Context, data []byte, remotePath string) error {
	zerolog.Ctx(ctx).Debug().Str("path", remotePath).Int("bytes", len(data)).Msg("writing file locally")

	if err := os.MkdirAll(filepath.Dir(remotePath), 0o755); err != nil {
		return errors.WithStack(&HostError{Host: LocalHost, Err: err})
	}
	if err := os.WriteFile(remotePath, data, 0o644); err != nil {
		return errors.WithStack(&HostError{Host: LocalHost, Err: err})
	}
	return nil
}
