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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	stepIndent  = 4  // spaces to indent step entries
	stepWidth   = 18 // width for the step name
	detailWidth = 48 // width for the step detail
)

// 🚦 StepStatus is the outcome shown next to a pipeline step
type StepStatus string

const (
	StepDone    StepStatus = "done"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
	StepCleaned StepStatus = "cleaned"
)

// 🎯 StepOperation represents one pipeline step for logging
type StepOperation struct {
	Name   string     // Step name (stage, archive, upload...)
	Detail string     // Path or command the step acted on
	Status StepStatus // Outcome
}

// 🚀 DeployOperation represents a whole deployment for logging
type DeployOperation struct {
	Application string   // Application name
	Revision    string   // Revision being deployed
	Release     string   // Remote release path
	Hosts       []string // Target hosts
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *DeployOperation
	steps     []StepOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🔍 Lookup gets the logger from context, nil when none is attached
func Lookup(ctx context.Context) *Logger {
	logger, _ := ctx.Value(contextKey{}).(*Logger)
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatStep formats a step for display
func (l *Logger) formatStep(op StepOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Status {
	case StepDone:
		symbol = '✓'
		symbolColor = color.FgGreen
	case StepFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case StepCleaned:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", stepIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		color.New(color.Bold).Sprint(fmt.Sprintf("%-*s", stepWidth, op.Name)),
		fmt.Sprintf("%-*s", detailWidth, op.Detail),
		color.New(symbolColor).Sprint(string(op.Status)))
}

// 📝 LogStep logs a pipeline step
func (l *Logger) LogStep(ctx context.Context, op StepOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.steps = append(l.steps, op)

	fmt.Fprintln(l.console, l.formatStep(op))

	event := l.zlog.Info()
	if op.Status == StepFailed {
		event = l.zlog.Error()
	}
	event.
		Str("step", op.Name).
		Str("detail", op.Detail).
		Str("status", string(op.Status)).
		Msg("deploy step")
}

// 📝 StartDeploy starts a new deployment
func (l *Logger) StartDeploy(ctx context.Context, op DeployOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.steps = nil

	fmt.Fprintf(l.console, "[deploying %s]\n",
		color.New(color.FgCyan).Sprint(op.Release))

	fmt.Fprintf(l.console, "%s %s %s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Application),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Revision),
		color.New(color.Faint).Sprint("→"),
		strings.Join(op.Hosts, ", "))

	l.zlog.Info().
		Str("application", op.Application).
		Str("revision", op.Revision).
		Str("release", op.Release).
		Strs("hosts", op.Hosts).
		Msg("starting deployment")
}

// 📝 EndDeploy ends the current deployment
func (l *Logger) EndDeploy(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	failed := 0
	for _, s := range l.steps {
		if s.Status == StepFailed {
			failed++
		}
	}

	l.zlog.Info().
		Str("application", l.currentOp.Application).
		Int("steps", len(l.steps)).
		Int("failed", failed).
		Msg("deployment complete")

	l.currentOp = nil
	l.steps = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("copyship")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

type tone struct {
	prefix string
	color  color.Attribute
	zlevel zerolog.Level
}

var (
	toneSuccess = tone{"✅ ", color.FgGreen, zerolog.InfoLevel}
	toneWarning = tone{"⚠️  ", color.FgYellow, zerolog.WarnLevel}
	toneError   = tone{"❌ ", color.FgRed, zerolog.ErrorLevel}
	toneInfo    = tone{"ℹ️  ", color.FgCyan, zerolog.InfoLevel}
)

func (l *Logger) say(lv tone, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s%s\n", lv.prefix, color.New(lv.color).Sprint(msg))
	l.zlog.WithLevel(lv.zlevel).Msg(msg)
}

// 📝 Success prints a success message
func (l *Logger) Success(msg string) { l.say(toneSuccess, msg) }

// Warning prints a warning
func (l *Logger) Warning(msg string) { l.say(toneWarning, msg) }

// Error prints an error message
func (l *Logger) Error(msg string) { l.say(toneError, msg) }

// Info prints an informational message
func (l *Logger) Info(msg string) { l.say(toneInfo, msg) }

func (l *Logger) Infof(format string, args ...any) { l.say(toneInfo, fmt.Sprintf(format, args...)) }

func (l *Logger) Errorf(format string, args ...any) { l.say(toneError, fmt.Sprintf(format, args...)) }

func (l *Logger) Successf(format string, args ...any) {
	l.say(toneSuccess, fmt.Sprintf(format, args...))
}
