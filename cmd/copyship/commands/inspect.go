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

package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copyship/pkg/archive"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "inspect <archive>",
		Short: "List the paths stored in a deployment archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			if mode == "" {
				mode = modeFromName(file)
			}

			entries, err := archive.Entries(mode, file)
			if err != nil {
				return errors.Errorf("inspecting %s: %w", file, err)
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "compression", "", "archive format (gzip, bzip2 or zip); guessed from the file name when empty")

	return cmd
}

func modeFromName(file string) string {
	name := strings.ToLower(filepath.Base(file))
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return "gzip"
	case strings.HasSuffix(name, ".tar.bz2"), strings.HasSuffix(name, ".tbz2"):
		return "bzip2"
	case strings.HasSuffix(name, ".zip"):
		return "zip"
	}
	return filepath.Ext(name)
}
