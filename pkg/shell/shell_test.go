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

package shell

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.TraceLevel).WithContext(context.Background())
}

func TestRun(t *testing.T) {
	tests := []struct {
		name          string
		script        string
		expectedCode  int
		expectedError string
	}{
		{name: "success", script: "true"},
		{name: "builtin_exit", script: "exit 3", expectedCode: 3, expectedError: "exited with status 3"},
		{name: "composed_failure", script: "true && exit 7", expectedCode: 7, expectedError: "exited with status 7"},
		{name: "stderr_captured", script: "echo boom >&2; exit 1", expectedCode: 1, expectedError: "boom"},
		{name: "parse_error", script: "if then", expectedError: "parsing command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInterpreter().Run(testContext(t), t.TempDir(), tt.script)
			if tt.expectedError == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)

			if tt.expectedCode != 0 {
				var cmdErr *CommandError
				require.True(t, errors.As(err, &cmdErr))
				assert.Equal(t, tt.expectedCode, cmdErr.ExitCode)
			}
		})
	}
}

func TestRunWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewInterpreter().Run(testContext(t), dir, "echo staged > marker"))

	data, err := os.ReadFile(filepath.Join(dir, "marker"))
	require.NoError(t, err)
	assert.Equal(t, "staged\n", string(data))
}

func TestRunArgsQuotesWords(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewInterpreter().RunArgs(testContext(t), dir, []string{"mkdir", "with space", "semi;colon"}))

	assert.DirExists(t, filepath.Join(dir, "with space"))
	assert.DirExists(t, filepath.Join(dir, "semi;colon"))
}

func TestRunEnvOverride(t *testing.T) {
	dir := t.TempDir()
	r := &Interpreter{Env: []string{"STAGE_NAME=release-1"}}
	require.NoError(t, r.Run(testContext(t), dir, `echo "$STAGE_NAME" > out`))

	data, err := os.ReadFile(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Equal(t, "release-1\n", string(data))
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name          string
		argv          []string
		want          string
		expectedError string
	}{
		{name: "plain", argv: []string{"tar", "xzf", "/tmp/20250101.tar.gz"}, want: "tar xzf /tmp/20250101.tar.gz"},
		{name: "space", argv: []string{"rm", "/tmp/a b"}, want: "rm '/tmp/a b'"},
		{name: "single_quote", argv: []string{"echo", "it's"}, want: `echo "it's"`},
		{name: "empty_word", argv: []string{"echo", ""}, want: "echo ''"},
		{name: "empty_argv", argv: nil, expectedError: "empty command"},
		{name: "nul_byte", argv: []string{"a\x00b"}, expectedError: "quoting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Join(tt.argv)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookPath(t *testing.T) {
	r := NewInterpreter()

	p, err := r.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, p)

	_, err = r.LookPath("copyship-definitely-missing-binary")
	require.Error(t, err)
}
