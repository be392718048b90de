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

// Package deploy sequences a copy deployment: stage a revision locally, pack
// it into one archive, push the archive to every host and unpack it into the
// releases directory. Local artifacts are removed on every exit path.
package deploy

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copyship/pkg/archive"
	"github.com/walteh/copyship/pkg/config"
	"github.com/walteh/copyship/pkg/log"
	"github.com/walteh/copyship/pkg/remote"
	"github.com/walteh/copyship/pkg/shell"
	"github.com/walteh/copyship/pkg/source"
	"github.com/walteh/copyship/pkg/stage"
)

// RevisionFile is written at the root of every staged tree
const RevisionFile = "REVISION"

// 📦 Stager populates a directory with a revision
type Stager interface {
	Stage(ctx context.Context, revision, destination string) error
}

var _ Stager = (*stage.Stager)(nil)

// 🔧 Options configures a deployment
type Options struct {
	Config   *config.Config
	Revision string
	Stager   Stager
	Runner   shell.Runner
	Channel  remote.Channel
}

// 🚀 Run holds everything one deployment needs. Paths are fixed when the run
// is created and never recomputed.
type Run struct {
	Revision       string
	TmpRoot        string
	Destination    string
	Filename       string
	RemoteFilename string
	ReleasesPath   string

	application string
	release     string
	compression archive.Compression
	stager      Stager
	runner      shell.Runner
	channel     remote.Channel
}

// 🏭 NewRun validates opts and derives the per-run paths.
// An unknown compression mode fails here, before anything touches disk or network.
func NewRun(opts Options) (*Run, error) {
	cfg := opts.Config
	switch {
	case cfg == nil:
		return nil, errors.New("config is required")
	case opts.Stager == nil:
		return nil, errors.New("stager is required")
	case opts.Runner == nil:
		return nil, errors.New("runner is required")
	case opts.Channel == nil:
		return nil, errors.New("channel is required")
	case opts.Revision == "":
		return nil, errors.New("revision is required")
	case cfg.CopyDir == "":
		return nil, errors.New("copy_dir is required")
	case cfg.ReleasePath == "":
		return nil, errors.New("release_path is required")
	}

	compression, err := archive.Parse(cfg.CopyCompression)
	if err != nil {
		return nil, err
	}

	remoteDir := cfg.CopyRemoteDir
	if remoteDir == "" {
		remoteDir = config.DefaultRemoteDir
	}
	releasesPath := cfg.ReleasesPath
	if releasesPath == "" {
		releasesPath = path.Dir(cfg.ReleasePath)
	}

	destination := filepath.Join(cfg.CopyDir, path.Base(cfg.ReleasePath))
	filename := filepath.Join(cfg.CopyDir, filepath.Base(destination)+"."+compression.Extension())

	return &Run{
		Revision:       opts.Revision,
		TmpRoot:        cfg.CopyDir,
		Destination:    destination,
		Filename:       filename,
		RemoteFilename: path.Join(remoteDir, filepath.Base(filename)),
		ReleasesPath:   releasesPath,
		application:    cfg.Application,
		release:        cfg.ReleasePath,
		compression:    compression,
		stager:         opts.Stager,
		runner:         opts.Runner,
		channel:        opts.Channel,
	}, nil
}

// 🎯 Deploy creates a Run and executes it
func Deploy(ctx context.Context, opts Options) error {
	r, err := NewRun(opts)
	if err != nil {
		return err
	}
	return r.Execute(ctx)
}

// Compression returns the archive format of the run
func (r *Run) Compression() archive.Compression {
	return r.compression
}

// ExtractCommand is the single remote command that unpacks the upload into the
// releases directory and removes it
func (r *Run) ExtractCommand() (string, error) {
	cd, err := shell.Join([]string{"cd", r.ReleasesPath})
	if err != nil {
		return "", err
	}
	decompress, err := shell.Join(r.compression.Decompress(r.RemoteFilename))
	if err != nil {
		return "", err
	}
	rm, err := shell.Join([]string{"rm", r.RemoteFilename})
	if err != nil {
		return "", err
	}
	return strings.Join([]string{cd, decompress, rm}, " && "), nil
}

type step struct {
	name   string
	detail string
	run    func(ctx context.Context) error
}

func (r *Run) steps() []step {
	return []step{
		{name: "stage", detail: r.Destination, run: r.stage},
		{name: "mark revision", detail: filepath.Join(r.Destination, RevisionFile), run: r.markRevision},
		{name: "archive", detail: r.Filename, run: r.archive},
		{name: "upload", detail: r.RemoteFilename, run: r.upload},
		{name: "extract", detail: r.ReleasesPath, run: r.extract},
	}
}

// 🏃 Execute runs every step in order and stops at the first failure.
// The archive and the staging directory are removed however Execute exits.
func (r *Run) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if progress := log.Lookup(ctx); progress != nil {
		progress.StartDeploy(ctx, log.DeployOperation{
			Application: r.application,
			Revision:    r.Revision,
			Release:     r.release,
			Hosts:       r.channel.Hosts(),
		})
		defer progress.EndDeploy(ctx)
	}

	defer r.cleanup(ctx)

	if err := r.prepare(ctx); err != nil {
		return err
	}

	steps := r.steps()
	for i, s := range steps {
		logger.Debug().Str("step", s.name).Str("revision", r.Revision).Msg("entering step")
		if err := s.run(ctx); err != nil {
			r.report(ctx, s.name, s.detail, log.StepFailed)
			for _, rest := range steps[i+1:] {
				r.report(ctx, rest.name, rest.detail, log.StepSkipped)
			}
			return err
		}
		r.report(ctx, s.name, s.detail, log.StepDone)
	}

	logger.Info().
		Str("revision", r.Revision).
		Strs("hosts", r.channel.Hosts()).
		Str("release", r.release).
		Msg("deployment finished")

	return nil
}

func (r *Run) report(ctx context.Context, name, detail string, status log.StepStatus) {
	if progress := log.Lookup(ctx); progress != nil {
		progress.LogStep(ctx, log.StepOperation{Name: name, Detail: detail, Status: status})
	}
}

// prepare makes sure no leftovers of an interrupted run leak into this one
func (r *Run) prepare(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if err := os.MkdirAll(r.TmpRoot, 0o755); err != nil {
		return errors.Errorf("creating tmp root: %w", err)
	}
	for _, stale := range []string{r.Destination, r.Filename} {
		if _, err := os.Lstat(stale); err != nil {
			continue
		}
		logger.Warn().Str("path", stale).Msg("removing leftover from a previous run")
		if err := os.RemoveAll(stale); err != nil {
			return errors.Errorf("removing stale %s: %w", stale, err)
		}
	}
	return nil
}

func (r *Run) stage(ctx context.Context) error {
	if err := r.stager.Stage(ctx, r.Revision, r.Destination); err != nil {
		return errors.Errorf("staging revision %s: %w", r.Revision, err)
	}
	zerolog.Ctx(ctx).Info().Str("revision", r.Revision).Str("destination", r.Destination).Msg("revision staged")
	return nil
}

func (r *Run) markRevision(ctx context.Context) error {
	p := filepath.Join(r.Destination, RevisionFile)
	if err := os.WriteFile(p, []byte(r.Revision+"\n"), 0o644); err != nil {
		return errors.Errorf("writing %s: %w", RevisionFile, err)
	}
	return nil
}

func (r *Run) archive(ctx context.Context) error {
	argv := r.compression.Compress(filepath.Base(r.Filename), filepath.Base(r.Destination))
	if err := r.runner.RunArgs(ctx, r.TmpRoot, argv); err != nil {
		return errors.Errorf("creating archive: %w", err)
	}

	info, err := os.Stat(r.Filename)
	if err != nil {
		return errors.Errorf("creating archive: %w", err)
	}
	zerolog.Ctx(ctx).Info().
		Str("archive", r.Filename).
		Str("size", humanize.Bytes(uint64(info.Size()))).
		Msg("archive created")
	return nil
}

func (r *Run) upload(ctx context.Context) error {
	data, err := os.ReadFile(r.Filename)
	if err != nil {
		return errors.Errorf("reading archive: %w", err)
	}
	if err := r.channel.Put(ctx, data, r.RemoteFilename); err != nil {
		return errors.Errorf("uploading archive: %w", err)
	}
	zerolog.Ctx(ctx).Info().
		Str("remote", r.RemoteFilename).
		Str("size", humanize.Bytes(uint64(len(data)))).
		Strs("hosts", r.channel.Hosts()).
		Msg("archive uploaded")
	return nil
}

func (r *Run) extract(ctx context.Context) error {
	command, err := r.ExtractCommand()
	if err != nil {
		return err
	}
	if err := r.channel.Run(ctx, command); err != nil {
		return errors.Errorf("extracting archive: %w", err)
	}
	return nil
}

// cleanup is best effort: failures are logged and never returned
func (r *Run) cleanup(ctx context.Context) {
	logger := zerolog.Ctx(ctx)

	if err := os.Remove(r.Filename); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("archive", r.Filename).Msg("removing local archive")
	}
	if err := os.RemoveAll(r.Destination); err != nil {
		logger.Warn().Err(err).Str("destination", r.Destination).Msg("removing staging directory")
	}

	logger.Debug().Str("archive", r.Filename).Str("destination", r.Destination).Msg("local artifacts removed")
	r.report(ctx, "cleanup", r.Destination, log.StepCleaned)
}

// 🏗️ NewStager builds the local stager described by cfg
func NewStager(cfg *config.Config, src source.Source, runner shell.Runner) (*stage.Stager, error) {
	opts := stage.Options{
		Source:    src,
		Runner:    runner,
		CachePath: cfg.CacheLocation(),
		Exclude:   cfg.Exclude(),
	}
	if opts.CachePath == "" {
		strategy, err := stage.ParseStrategy(cfg.CopyStrategy)
		if err != nil {
			return nil, err
		}
		opts.Strategy = strategy
	}
	return stage.New(opts)
}
