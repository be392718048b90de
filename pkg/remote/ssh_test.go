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
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/walteh/copyship/pkg/shell"
)

// 🧪 testServer is an in-process ssh host whose commands run in root
type testServer struct {
	addr    string
	root    string
	hostKey gossh.PublicKey
}

type keyPair struct {
	pem    []byte
	public gossh.PublicKey
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func generateKey(t *testing.T) keyPair {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := gossh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)
	sshPub, err := gossh.NewPublicKey(pub)
	require.NoError(t, err)
	return keyPair{pem: pem.EncodeToMemory(block), public: sshPub}
}

// shellHandler interprets the requested command line with session stdio
func shellHandler(root string) wish.Middleware {
	return func(ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			prog, err := syntax.NewParser().Parse(strings.NewReader(s.RawCommand()), "")
			if err != nil {
				fmt.Fprintln(s.Stderr(), err)
				_ = s.Exit(2)
				return
			}
			runner, err := interp.New(interp.StdIO(s, s, s.Stderr()), interp.Dir(root))
			if err != nil {
				fmt.Fprintln(s.Stderr(), err)
				_ = s.Exit(1)
				return
			}
			code := 0
			if err := runner.Run(s.Context(), prog); err != nil {
				if status, ok := interp.IsExitStatus(err); ok {
					code = int(status)
				} else {
					fmt.Fprintln(s.Stderr(), err)
					code = 1
				}
			}
			_ = s.Exit(code)
		}
	}
}

func startServer(t *testing.T, client keyPair) *testServer {
	t.Helper()

	host := generateKey(t)
	root := t.TempDir()

	srv, err := wish.NewServer(
		wish.WithHostKeyPEM(host.pem),
		wish.WithPublicKeyAuth(func(_ ssh.Context, key ssh.PublicKey) bool {
			return ssh.KeysEqual(key, client.public)
		}),
		wish.WithMiddleware(shellHandler(root)),
	)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Close() })

	return &testServer{addr: ln.Addr().String(), root: root, hostKey: host.public}
}

func writeKeyFile(t *testing.T, key keyPair) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, key.pem, 0o600))
	return path
}

func newTestChannel(t *testing.T, key keyPair, servers ...*testServer) *SSH {
	t.Helper()
	hosts := make([]string, len(servers))
	for i, s := range servers {
		hosts[i] = s.addr
	}
	ch, err := NewSSH(SSHOptions{
		Hosts:                 hosts,
		User:                  "deploy",
		KeyFile:               writeKeyFile(t, key),
		InsecureIgnoreHostKey: true,
		AgentSocket:           "-",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })
	return ch
}

func TestSSHRunAcrossHosts(t *testing.T) {
	ctx := testContext(t)
	key := generateKey(t)
	a := startServer(t, key)
	b := startServer(t, key)

	ch := newTestChannel(t, key, a, b)
	assert.Equal(t, []string{a.addr, b.addr}, ch.Hosts())

	require.NoError(t, ch.Run(ctx, "mkdir -p releases && printf done > releases/marker"))

	for _, s := range []*testServer{a, b} {
		got, err := os.ReadFile(filepath.Join(s.root, "releases", "marker"))
		require.NoError(t, err, "host %s", s.addr)
		assert.Equal(t, "done", string(got))
	}

	// connections are reused between calls
	require.NoError(t, ch.Run(ctx, "true"))
	assert.Len(t, ch.conns, 2)
	for _, hc := range ch.conns {
		assert.NotNil(t, hc.client)
	}
}

// silentListener accepts tcp connections and never speaks ssh
func silentListener(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})
	return ln.Addr().String()
}

func TestSSHStalledHostTimesOut(t *testing.T) {
	ctx := testContext(t)
	key := generateKey(t)
	good := startServer(t, key)
	stalled := silentListener(t)

	ch, err := NewSSH(SSHOptions{
		Hosts:                 []string{stalled, good.addr},
		User:                  "deploy",
		KeyFile:               writeKeyFile(t, key),
		InsecureIgnoreHostKey: true,
		AgentSocket:           "-",
		Timeout:               500 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	start := time.Now()
	err = ch.Run(ctx, "printf ok > marker")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)

	var he *HostError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, stalled, he.Host)
	assert.Contains(t, err.Error(), "ssh handshake with")

	// the healthy host is not queued behind the stalled one
	got, err := os.ReadFile(filepath.Join(good.root, "marker"))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}

func TestSSHHandshakeHonoursCancellation(t *testing.T) {
	key := generateKey(t)
	stalled := silentListener(t)

	ch, err := NewSSH(SSHOptions{
		Hosts:                 []string{stalled},
		User:                  "deploy",
		KeyFile:               writeKeyFile(t, key),
		InsecureIgnoreHostKey: true,
		AgentSocket:           "-",
		Timeout:               time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	ctx, cancel := context.WithTimeout(testContext(t), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = ch.Run(ctx, "true")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestSSHDefaultTimeout(t *testing.T) {
	key := generateKey(t)
	ch, err := NewSSH(SSHOptions{
		Hosts:                 []string{"app1"},
		User:                  "deploy",
		KeyFile:               writeKeyFile(t, key),
		InsecureIgnoreHostKey: true,
		AgentSocket:           "-",
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, ch.Timeout())
}

func TestSSHPut(t *testing.T) {
	ctx := testContext(t)
	key := generateKey(t)
	a := startServer(t, key)
	b := startServer(t, key)

	ch := newTestChannel(t, key, a, b)
	data := []byte("archive bytes\x00\x01\x02")

	for _, s := range []*testServer{a, b} {
		target := filepath.Join(s.root, "my release.tar.gz")
		single := newTestChannel(t, key, s)
		require.NoError(t, single.Put(ctx, data, target))

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}

	// a relative path lands under each host's working directory
	require.NoError(t, ch.Put(ctx, data, "shared.zip"))
	for _, s := range []*testServer{a, b} {
		got, err := os.ReadFile(filepath.Join(s.root, "shared.zip"))
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}

func TestSSHCommandFailure(t *testing.T) {
	ctx := testContext(t)
	key := generateKey(t)
	srv := startServer(t, key)
	ch := newTestChannel(t, key, srv)

	err := ch.Run(ctx, "echo boom >&2; exit 3")
	require.Error(t, err)

	var hostErr *HostError
	require.True(t, errors.As(err, &hostErr))
	assert.Equal(t, srv.addr, hostErr.Host)

	var cmdErr *shell.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "boom", cmdErr.Stderr)
	assert.Equal(t, "echo boom >&2; exit 3", cmdErr.Command)
}

func TestSSHKnownHosts(t *testing.T) {
	ctx := testContext(t)
	key := generateKey(t)
	srv := startServer(t, key)

	tests := []struct {
		name          string
		hostKey       gossh.PublicKey
		expectedError bool
	}{
		{
			name:    "matching_key",
			hostKey: srv.hostKey,
		},
		{
			name:          "mismatched_key",
			hostKey:       generateKey(t).public,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			known := filepath.Join(t.TempDir(), "known_hosts")
			line := knownhosts.Line([]string{knownhosts.Normalize(srv.addr)}, tt.hostKey)
			require.NoError(t, os.WriteFile(known, []byte(line+"\n"), 0o600))

			ch, err := NewSSH(SSHOptions{
				Hosts:       []string{srv.addr},
				User:        "deploy",
				KeyFile:     writeKeyFile(t, key),
				KnownHosts:  known,
				AgentSocket: "-",
			})
			require.NoError(t, err)
			defer ch.Close()

			err = ch.Run(ctx, "true")
			if tt.expectedError {
				var hostErr *HostError
				require.True(t, errors.As(err, &hostErr), "expected host error, got %v", err)
				assert.Equal(t, srv.addr, hostErr.Host)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSSHRejectedKey(t *testing.T) {
	ctx := testContext(t)
	srv := startServer(t, generateKey(t))
	ch := newTestChannel(t, generateKey(t), srv)

	err := ch.Run(ctx, "true")
	var hostErr *HostError
	require.True(t, errors.As(err, &hostErr), "expected host error, got %v", err)
	assert.Contains(t, hostErr.Error(), "handshake")
}

func TestNewSSHValidation(t *testing.T) {
	key := generateKey(t)
	keyFile := writeKeyFile(t, key)

	tests := []struct {
		name          string
		opts          SSHOptions
		expectedError string
	}{
		{
			name:          "no_hosts",
			opts:          SSHOptions{User: "deploy", KeyFile: keyFile, InsecureIgnoreHostKey: true},
			expectedError: "no hosts configured",
		},
		{
			name:          "no_auth",
			opts:          SSHOptions{Hosts: []string{"a"}, User: "deploy", InsecureIgnoreHostKey: true, AgentSocket: "-"},
			expectedError: "no ssh authentication method available",
		},
		{
			name:          "missing_key_file",
			opts:          SSHOptions{Hosts: []string{"a"}, User: "deploy", KeyFile: filepath.Join(t.TempDir(), "nope"), InsecureIgnoreHostKey: true},
			expectedError: "reading ssh key",
		},
		{
			name:          "missing_known_hosts",
			opts:          SSHOptions{Hosts: []string{"a"}, User: "deploy", KeyFile: keyFile, KnownHosts: filepath.Join(t.TempDir(), "nope")},
			expectedError: "loading known_hosts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSSH(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestSSHAddress(t *testing.T) {
	key := generateKey(t)
	ch, err := NewSSH(SSHOptions{
		Hosts:                 []string{"app1"},
		User:                  "deploy",
		Port:                  2222,
		KeyFile:               writeKeyFile(t, key),
		InsecureIgnoreHostKey: true,
		AgentSocket:           "-",
	})
	require.NoError(t, err)

	assert.Equal(t, "app1:2222", ch.address("app1"))
	assert.Equal(t, "app2:22", ch.address("app2:22"))
	assert.Equal(t, "[::1]:2222", ch.address("::1"))
}
