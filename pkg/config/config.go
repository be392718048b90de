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

// Package config loads deployment settings from YAML, HCL or JSON files.
package config

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copyship/pkg/exclude"
)

// ReleaseNameFormat is the UTC timestamp layout used for default release names
const ReleaseNameFormat = "20060102150405"

// 🔧 defaults applied by Validate
const (
	DefaultBranch      = "HEAD"
	DefaultSCMCommand  = "git"
	DefaultPort        = 22
	DefaultStrategy    = "checkout"
	DefaultCompression = "gzip"
	DefaultRemoteDir   = "/tmp"
	DefaultSSHTimeout  = 30
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 💾 CacheSetting is the copy_cache value: a boolean or a path
type CacheSetting struct {
	Enabled bool
	// Path is used verbatim when set, otherwise the cache lives under the tmp root
	Path string
}

func cacheFromString(s string) CacheSetting {
	if s == "" {
		return CacheSetting{}
	}
	return CacheSetting{Enabled: true, Path: s}
}

// Location resolves the cache directory, "" when caching is disabled
func (c CacheSetting) Location(tmpRoot, application string) string {
	switch {
	case !c.Enabled:
		return ""
	case c.Path != "":
		return c.Path
	default:
		return filepath.Join(tmpRoot, application)
	}
}

// 🚫 Patterns is the copy_exclude value: one glob or a list of globs
type Patterns []string

// 📚 Config represents the complete configuration
type Config struct {
	Application string `json:"application" yaml:"application"`
	Repository  string `json:"repository" yaml:"repository"`
	Branch      string `json:"branch,omitempty" yaml:"branch,omitempty"`
	SCMCommand  string `json:"scm_command,omitempty" yaml:"scm_command,omitempty"`

	DeployTo     string `json:"deploy_to" yaml:"deploy_to"`
	ReleasesPath string `json:"releases_path,omitempty" yaml:"releases_path,omitempty"`
	ReleasePath  string `json:"release_path,omitempty" yaml:"release_path,omitempty"`
	ReleaseName  string `json:"release_name,omitempty" yaml:"release_name,omitempty"`

	Hosts                 []string `json:"hosts" yaml:"hosts"`
	User                  string   `json:"user,omitempty" yaml:"user,omitempty"`
	Port                  int      `json:"port,omitempty" yaml:"port,omitempty"`
	SSHKey                string   `json:"ssh_key,omitempty" yaml:"ssh_key,omitempty"`
	KnownHosts            string   `json:"known_hosts,omitempty" yaml:"known_hosts,omitempty"`
	InsecureIgnoreHostKey bool     `json:"insecure_ignore_host_key,omitempty" yaml:"insecure_ignore_host_key,omitempty"`
	SSHTimeout            int      `json:"ssh_timeout,omitempty" yaml:"ssh_timeout,omitempty"` // seconds

	CopyCache       CacheSetting `json:"copy_cache,omitempty" yaml:"copy_cache,omitempty"`
	CopyExclude     Patterns     `json:"copy_exclude,omitempty" yaml:"copy_exclude,omitempty"`
	CopyStrategy    string       `json:"copy_strategy,omitempty" yaml:"copy_strategy,omitempty"`
	CopyCompression string       `json:"copy_compression,omitempty" yaml:"copy_compression,omitempty"`
	CopyDir         string       `json:"copy_dir,omitempty" yaml:"copy_dir,omitempty"`
	CopyRemoteDir   string       `json:"copy_remote_dir,omitempty" yaml:"copy_remote_dir,omitempty"`

	location string
}

// 🎯 Load loads the configuration from a file.
// The format follows the extension; a bare .copyship file is tried as YAML then HCL.
func Load(ctx context.Context, filename string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", filename).Msg("loading configuration")

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	if filepath.Ext(filename) == "" || filepath.Ext(filename) == ".copyship" {
		cfg, err = parseEither(ctx, data, filename)
	} else {
		p := GetParser(filename)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", filename)
		}
		cfg, err = p.Parse(ctx, data, filename)
	}
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.location = filename
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func parseEither(ctx context.Context, data []byte, filename string) (*Config, error) {
	cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data, filename)
	if yamlErr == nil {
		return cfg, nil
	}
	cfg, hclErr := (&HCLParser{}).Parse(ctx, data, filename)
	if hclErr == nil {
		return cfg, nil
	}
	return nil, errors.Errorf("not valid YAML (%v) or HCL: %w", yamlErr, hclErr)
}

// Location returns the file the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks required fields and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Application == "" {
		return errors.New("application is required")
	}
	if cfg.DeployTo == "" && cfg.ReleasePath == "" {
		return errors.New("deploy_to is required")
	}
	if len(cfg.Hosts) == 0 {
		return errors.New("at least one host is required")
	}
	for i, h := range cfg.Hosts {
		if strings.TrimSpace(h) == "" {
			return errors.Errorf("hosts[%d] is empty", i)
		}
	}

	if err := cfg.Exclude().Validate(); err != nil {
		return errors.Errorf("copy_exclude: %w", err)
	}

	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.SCMCommand == "" {
		cfg.SCMCommand = DefaultSCMCommand
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.SSHTimeout < 0 {
		return errors.Errorf("ssh_timeout must not be negative, got %d", cfg.SSHTimeout)
	}
	if cfg.SSHTimeout == 0 {
		cfg.SSHTimeout = DefaultSSHTimeout
	}
	if cfg.CopyStrategy == "" {
		cfg.CopyStrategy = DefaultStrategy
	}
	if cfg.CopyCompression == "" {
		cfg.CopyCompression = DefaultCompression
	}
	if cfg.CopyDir == "" {
		cfg.CopyDir = os.TempDir()
	}
	if cfg.CopyRemoteDir == "" {
		cfg.CopyRemoteDir = DefaultRemoteDir
	}

	if cfg.ReleasesPath == "" {
		cfg.ReleasesPath = path.Join(cfg.DeployTo, "releases")
	}
	if cfg.ReleaseName == "" {
		cfg.ReleaseName = time.Now().UTC().Format(ReleaseNameFormat)
	}
	if cfg.ReleasePath == "" {
		cfg.ReleasePath = path.Join(cfg.ReleasesPath, cfg.ReleaseName)
	}

	return nil
}

// CacheLocation resolves copy_cache against the tmp root
func (cfg *Config) CacheLocation() string {
	return cfg.CopyCache.Location(cfg.CopyDir, cfg.Application)
}

// Exclude returns copy_exclude as an exclusion set
func (cfg *Config) Exclude() exclude.Set {
	return exclude.New(cfg.CopyExclude...)
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s@%s -> %s:%s", cfg.Application, cfg.Branch, strings.Join(cfg.Hosts, ","), cfg.ReleasePath)
}
