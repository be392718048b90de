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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/copyship/cmd/copyship/commands"
	"github.com/walteh/copyship/cmd/copyship/opts"
	"github.com/walteh/copyship/pkg/log"
)

// newRootCmd wires the shared flags and every subcommand
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copyship",
		Short: "Ship a source revision to remote hosts as a single archive",
		Long: `copyship prepares a revision on this machine, optionally through a
hard-linked cache, compresses it once and unpacks it on every host, so the
hosts never need access to the repository.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := setupLogging(cmd.Context(), o.Debug)
			o.UserLogger = log.New(cmd.OutOrStdout(), zerolog.GlobalLevel())
			cmd.SetContext(ctx)
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewDeployCmd(o),
		commands.NewCheckCmd(o),
		commands.NewInspectCmd(),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".copyship.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringSliceVar(&o.Hosts, "hosts", nil, "override the configured hosts")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
