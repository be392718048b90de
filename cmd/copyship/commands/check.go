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
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copyship/cmd/copyship/opts"
	"github.com/walteh/copyship/pkg/deploy"
	"github.com/walteh/copyship/pkg/status"
)

// NewCheckCmd creates the check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the commands a deployment needs are available",
		Long: `Check looks for the source control command and the compressor on this
machine, and for the matching decompressor on every host. Nothing is deployed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := o.Load(ctx); err != nil {
				return err
			}

			channel, closer, err := o.Channel()
			if err != nil {
				return err
			}
			defer closer.Close()

			report, err := deploy.Check(ctx, deploy.CheckOptions{
				Config:  o.Config,
				Source:  o.Source(),
				Runner:  o.Runner,
				Channel: channel,
			})
			if err != nil {
				return errors.Errorf("checking dependencies: %w", err)
			}

			if err := status.New(cmd.OutOrStdout()).PrintReport(ctx, report); err != nil {
				return err
			}
			if !report.OK() {
				return errors.Errorf("%d missing dependencies", len(report.Failed()))
			}
			return nil
		},
	}

	return cmd
}
