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
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"

	"github.com/walteh/copyship/pkg/config"
	"github.com/walteh/copyship/pkg/remote"
	"github.com/walteh/copyship/pkg/shell"
)

func writeKey(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := gossh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path
}

func TestChannel(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	key := writeKey(t)

	tests := []struct {
		name            string
		hosts           []string
		sshTimeout      int
		expectLocal     bool
		expectedTimeout time.Duration
	}{
		{name: "localhost", hosts: []string{remote.LocalHost}, expectLocal: true},
		{name: "ssh_configured_timeout", hosts: []string{"app1"}, sshTimeout: 7, expectedTimeout: 7 * time.Second},
		{name: "ssh_default_timeout", hosts: []string{"app1", "app2"}, expectedTimeout: remote.DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &RootOpts{
				Runner: shell.NewInterpreter(),
				Config: &config.Config{
					Hosts:                 tt.hosts,
					User:                  "deploy",
					SSHKey:                key,
					InsecureIgnoreHostKey: true,
					SSHTimeout:            tt.sshTimeout,
				},
			}
			ch, closer, err := o.Channel()
			require.NoError(t, err)
			defer closer.Close()

			assert.Equal(t, tt.hosts, ch.Hosts())
			if tt.expectLocal {
				assert.IsType(t, &remote.Local{}, ch)
				return
			}
			sshCh, ok := ch.(*remote.SSH)
			require.True(t, ok)
			assert.Equal(t, tt.expectedTimeout, sshCh.Timeout())
		})
	}
}
