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

// Package status renders capability reports for the terminal.
package status

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copyship/pkg/deploy"
)

// 🖨️ Printer writes reports with pterm
type Printer struct {
	writer io.Writer
}

// 🏭 New creates a Printer writing to w, or stdout when w is nil
func New(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{writer: w}
}

// Rows turns a report into table rows, header first
func Rows(report *deploy.Report) [][]string {
	rows := [][]string{{"Where", "Command", "Status", "Detail"}}
	for _, d := range report.Dependencies {
		state := "ok"
		if !d.Ok {
			state = "missing"
		}
		rows = append(rows, []string{string(d.Kind), d.Command, state, d.Message})
	}
	return rows
}

// 📋 PrintReport renders the dependency table followed by a verdict line
func (p *Printer) PrintReport(ctx context.Context, report *deploy.Report) error {
	logger := zerolog.Ctx(ctx)

	table := pterm.DefaultTable.WithHasHeader().WithData(Rows(report)).WithWriter(p.writer)
	if err := table.Render(); err != nil {
		return errors.Errorf("rendering report: %w", err)
	}

	for _, d := range report.Failed() {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(p.writer).Println(d.Message)
		if d.Err != nil {
			logger.Debug().Err(d.Err).Str("command", d.Command).Str("kind", string(d.Kind)).Msg("dependency check failed")
		}
	}

	if report.OK() {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(p.writer).Println("all dependencies are available")
		return nil
	}

	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(p.writer).
		Println(fmt.Sprintf("%d of %d dependencies are missing", len(report.Failed()), len(report.Dependencies)))
	return nil
}
