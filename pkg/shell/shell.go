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

// Package shell runs local command lines through an embedded POSIX shell
// interpreter so command descriptions can be composed as plain strings.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// 🐚 Runner executes local commands
type Runner interface {
	// Run interprets script as a shell command line with dir as working directory.
	// An empty dir means the current working directory.
	Run(ctx context.Context, dir, script string) error
	// RunArgs runs a single command given as an argv slice
	RunArgs(ctx context.Context, dir string, argv []string) error
	// LookPath resolves a command name the same way Run would
	LookPath(name string) (string, error)
}

// ❌ CommandError is returned when a command exits non-zero
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// 🔧 Interpreter is the default Runner, backed by mvdan.cc/sh
type Interpreter struct {
	// Env overrides the process environment when non-nil
	Env []string
}

// 🏭 NewInterpreter creates an Interpreter inheriting the process environment
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

var _ Runner = (*Interpreter)(nil)

func (r *Interpreter) environ() expand.Environ {
	if r.Env != nil {
		return expand.ListEnviron(r.Env...)
	}
	return expand.ListEnviron(os.Environ()...)
}

// 🏃 Run implements Runner
func (r *Interpreter) Run(ctx context.Context, dir, script string) error {
	logger := zerolog.Ctx(ctx)

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "")
	if err != nil {
		return errors.Errorf("parsing command %q: %w", script, err)
	}

	var stdout, stderr bytes.Buffer
	opts := []interp.RunnerOption{
		interp.Env(r.environ()),
		interp.StdIO(nil, &stdout, &stderr),
	}
	if dir != "" {
		opts = append(opts, interp.Dir(dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return errors.Errorf("creating interpreter: %w", err)
	}

	logger.Debug().Str("dir", dir).Str("command", script).Msg("running local command")

	err = runner.Run(ctx, prog)
	if out := strings.TrimSpace(stdout.String()); out != "" {
		logger.Trace().Str("command", script).Str("stdout", out).Msg("command output")
	}
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return errors.WithStack(&CommandError{
				Command:  script,
				ExitCode: int(status),
				Stderr:   strings.TrimSpace(stderr.String()),
			})
		}
		return errors.Errorf("running command %q: %w", script, err)
	}
	return nil
}

// 🏃 RunArgs implements Runner
func (r *Interpreter) RunArgs(ctx context.Context, dir string, argv []string) error {
	script, err := Join(argv)
	if err != nil {
		return err
	}
	return r.Run(ctx, dir, script)
}

// 🔍 LookPath implements Runner
func (r *Interpreter) LookPath(name string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Errorf("getting working directory: %w", err)
	}
	p, err := interp.LookPathDir(cwd, r.environ(), name)
	if err != nil {
		return "", errors.Errorf("looking up %s: %w", name, err)
	}
	return p, nil
}

// 🔤 Quote quotes s so a POSIX shell reads it back as one word
func Quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return "", errors.Errorf("quoting %q: %w", s, err)
	}
	return q, nil
}

// 🔤 Join quotes every word of argv and joins them into one command line
func Join(argv []string) (string, error) {
	if len(argv) == 0 {
		return "", errors.New("empty command")
	}
	words := make([]string, len(argv))
	for i, a := range argv {
		q, err := Quote(a)
		if err != nil {
			return "", err
		}
		words[i] = q
	}
	return strings.Join(words, " "), nil
}
