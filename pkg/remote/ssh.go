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
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/copyship/pkg/shell"
)

const (
	// DefaultPort is used for hosts that do not name a port
	DefaultPort = 22
	// DefaultTimeout bounds connecting to one host when SSHOptions.Timeout is zero
	DefaultTimeout = 30 * time.Second
)

// 🔑 SSHOptions configures an SSH channel
type SSHOptions struct {
	// Hosts are "host" or "host:port" entries
	Hosts []string
	// User defaults to $USER
	User string
	// Port applies to hosts without an explicit port
	Port int
	// KeyFile is a private key used for public key authentication
	KeyFile string
	// KnownHosts defaults to ~/.ssh/known_hosts
	KnownHosts string
	// InsecureIgnoreHostKey disables host key verification
	InsecureIgnoreHostKey bool
	// AgentSocket defaults to $SSH_AUTH_SOCK; set to "-" to disable the agent
	AgentSocket string
	// Timeout bounds the TCP connect and handshake, DefaultTimeout when zero
	Timeout time.Duration
}

// 📡 SSH is a Channel that fans operations out to every host over SSH
type SSH struct {
	hosts  []string
	port   int
	config *ssh.ClientConfig
	agent  io.Closer

	mu    sync.Mutex
	conns map[string]*hostConn
}

// hostConn serializes connecting to one host without blocking the others
type hostConn struct {
	mu     sync.Mutex
	client *ssh.Client
}

var _ Channel = (*SSH)(nil)

// 🏭 NewSSH validates opts and prepares client configuration.
// Connections are opened lazily, once per host.
func NewSSH(opts SSHOptions) (*SSH, error) {
	if len(opts.Hosts) == 0 {
		return nil, errors.New("no hosts configured")
	}

	user := opts.User
	if user == "" {
		user = os.Getenv("USER")
	}
	if user == "" {
		return nil, errors.New("no ssh user configured")
	}

	port := opts.Port
	if port == 0 {
		port = DefaultPort
	}

	hostKeyCallback, err := hostKeyCallback(opts)
	if err != nil {
		return nil, err
	}

	s := &SSH{
		hosts:   append([]string(nil), opts.Hosts...),
		port:    port,
		conns:   map[string]*hostConn{},
	}

	var auth []ssh.AuthMethod
	if opts.KeyFile != "" {
		signer, err := loadKey(opts.KeyFile)
		if err != nil {
			return nil, err
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}

	sock := opts.AgentSocket
	if sock == "" {
		sock = os.Getenv("SSH_AUTH_SOCK")
	}
	if sock != "" && sock != "-" {
		conn, err := net.Dial("unix", sock)
		if err != nil {
			return nil, errors.Errorf("connecting to ssh agent at %s: %w", sock, err)
		}
		s.agent = conn
		auth = append(auth, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
	}

	if len(auth) == 0 {
		return nil, errors.New("no ssh authentication method available: configure a key file or an ssh agent")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	s.config = &ssh.ClientConfig{
		User:            user,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         timeout,
	}
	return s, nil
}

func loadKey(path string) (ssh.Signer, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading ssh key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(pem)
	if err != nil {
		return nil, errors.Errorf("parsing ssh key %s: %w", path, err)
	}
	return signer, nil
}

func hostKeyCallback(opts SSHOptions) (ssh.HostKeyCallback, error) {
	if opts.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	path := opts.KnownHosts
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Errorf("locating known_hosts: %w", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}
	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, errors.Errorf("loading known_hosts %s: %w", path, err)
	}
	return cb, nil
}

// Hosts implements Channel
func (s *SSH) Hosts() []string {
	return append([]string(nil), s.hosts...)
}

// Run implements Channel
func (s *SSH) Run(ctx context.Context, command string) error {
	return s.each(ctx, func(ctx context.Context, host string) error {
		return s.exec(ctx, host, command, nil)
	})
}

// Timeout is the per-host bound on connecting and handshaking
func (s *SSH) Timeout() time.Duration {
	return s.config.Timeout
}

// Put implements Channel
func (s *SSH) Put(ctx context.Context, data []byte, remotePath string) error {
	target, err := shell.Quote(remotePath)
	if err != nil {
		return err
	}
	command := "cat > " + target
	return s.each(ctx, func(ctx context.Context, host string) error {
		return s.exec(ctx, host, command, bytes.NewReader(data))
	})
}

// Close closes every open connection and the agent socket
func (s *SSH) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var first error
	for host, hc := range s.conns {
		hc.mu.Lock()
		if hc.client != nil {
			if err := hc.client.Close(); err != nil && first == nil {
				first = errors.Errorf("closing connection to %s: %w", host, err)
			}
			hc.client = nil
		}
		hc.mu.Unlock()
		delete(s.conns, host)
	}
	if s.agent != nil {
		if err := s.agent.Close(); err != nil && first == nil {
			first = errors.Errorf("closing ssh agent: %w", err)
		}
		s.agent = nil
	}
	return first
}

func (s *SSH) each(ctx context.Context, fn func(ctx context.Context, host string) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, host := range s.hosts {
		host := host
		g.Go(func() error {
			if err := fn(ctx, host); err != nil {
				return errors.WithStack(&HostError{Host: host, Err: err})
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *SSH) address(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(s.port))
}

func (s *SSH) conn(host string) *hostConn {
	s.mu.Lock()
	defer s.mu.Unlock()

	hc, ok := s.conns[host]
	if !ok {
		hc = &hostConn{}
		s.conns[host] = hc
	}
	return hc
}

func (s *SSH) client(ctx context.Context, host string) (*ssh.Client, error) {
	hc := s.conn(host)
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if hc.client != nil {
		return hc.client, nil
	}

	addr := s.address(host)
	zerolog.Ctx(ctx).Debug().Str("host", host).Str("addr", addr).Str("user", s.config.User).Msg("opening ssh connection")

	dialer := net.Dialer{Timeout: s.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Errorf("dialing %s: %w", addr, err)
	}

	// the handshake ignores ctx: bound it with a deadline and close on cancel
	if err := conn.SetDeadline(time.Now().Add(s.config.Timeout)); err != nil {
		conn.Close()
		return nil, errors.Errorf("setting deadline on %s: %w", addr, err)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, s.config)
	if !stop() {
		if err == nil {
			c.Close()
		}
		return nil, errors.Errorf("ssh handshake with %s: %w", addr, ctx.Err())
	}
	if err != nil {
		conn.Close()
		return nil, errors.Errorf("ssh handshake with %s: %w", addr, err)
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		c.Close()
		return nil, errors.Errorf("clearing deadline on %s: %w", addr, err)
	}

	hc.client = ssh.NewClient(c, chans, reqs)
	return hc.client, nil
}

func (s *SSH) exec(ctx context.Context, host, command string, stdin io.Reader) error {
	logger := zerolog.Ctx(ctx)

	client, err := s.client(ctx, host)
	if err != nil {
		return err
	}

	session, err := client.NewSession()
	if err != nil {
		return errors.Errorf("opening session: %w", err)
	}
	defer session.Close()

	var stderr bytes.Buffer
	session.Stdin = stdin
	session.Stderr = &stderr

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			session.Close()
		case <-done:
		}
	}()

	logger.Debug().Str("host", host).Str("command", command).Msg("running remote command")

	err = session.Run(command)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return errors.Errorf("running %q: %w", command, ctx.Err())
	}

	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		return errors.WithStack(&shell.CommandError{
			Command:  command,
			ExitCode: exitErr.ExitStatus(),
			Stderr:   strings.TrimSpace(stderr.String()),
		})
	}
	return errors.Errorf("running %q: %w", command, err)
}
