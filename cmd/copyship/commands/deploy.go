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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copyship/cmd/copyship/opts"
	"github.com/walteh/copyship/pkg/deploy"
	"github.com/walteh/copyship/pkg/log"
	"github.com/walteh/copyship/pkg/source"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd(o *opts.RootOpts) *cobra.Command {
	var (
		revision  string
		noResolve bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Stage, archive and ship a revision to every host",
		Long: `Deploy stages the revision locally, packs it into one archive,
uploads the archive to every host and unpacks it into the releases directory.
Local artifacts are removed whether or not the deployment succeeds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx)

			if err := o.Load(ctx); err != nil {
				return err
			}
			cfg := o.Config

			ref := revision
			if ref == "" {
				ref = cfg.Branch
			}
			if !noResolve {
				resolved, err := source.Resolve(ctx, cfg.Repository, ref)
				if err != nil {
					return errors.Errorf("resolving %s: %w", ref, err)
				}
				logger.Debug().Str("ref", ref).Str("revision", resolved).Msg("resolved revision")
				ref = resolved
			}

			stager, err := deploy.NewStager(cfg, o.Source(), o.Runner)
			if err != nil {
				return errors.Errorf("configuring stager: %w", err)
			}

			channel, closer, err := o.Channel()
			if err != nil {
				return err
			}
			defer closer.Close()

			o.UserLogger.Header("deploying " + cfg.Application)
			ctx = log.NewContext(ctx, o.UserLogger)

			err = deploy.Deploy(ctx, deploy.Options{
				Config:   cfg,
				Revision: ref,
				Stager:   stager,
				Runner:   o.Runner,
				Channel:  channel,
			})
			if err != nil {
				return errors.Errorf("deploying %s: %w", cfg.Application, err)
			}

			o.UserLogger.Successf("deployed %s to %s", ref, cfg.ReleasePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&revision, "revision", "", "revision to deploy (defaults to the configured branch)")
	cmd.Flags().BoolVar(&noResolve, "no-resolve", false, "use --revision verbatim instead of resolving it to a commit")

	return cmd
}
