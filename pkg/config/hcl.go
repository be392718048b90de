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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// copy_cache and copy_exclude are unions, so they decode as raw values
	type hclConfig struct {
		Application string `hcl:"application"`
		Repository  string `hcl:"repository,optional"`
		Branch      string `hcl:"branch,optional"`
		SCMCommand  string `hcl:"scm_command,optional"`

		DeployTo     string `hcl:"deploy_to,optional"`
		ReleasesPath string `hcl:"releases_path,optional"`
		ReleasePath  string `hcl:"release_path,optional"`
		ReleaseName  string `hcl:"release_name,optional"`

		Hosts                 []string `hcl:"hosts,optional"`
		User                  string   `hcl:"user,optional"`
		Port                  int      `hcl:"port,optional"`
		SSHKey                string   `hcl:"ssh_key,optional"`
		KnownHosts            string   `hcl:"known_hosts,optional"`
		InsecureIgnoreHostKey bool     `hcl:"insecure_ignore_host_key,optional"`
		SSHTimeout            int      `hcl:"ssh_timeout,optional"`

		CopyCache       cty.Value `hcl:"copy_cache,optional"`
		CopyExclude     cty.Value `hcl:"copy_exclude,optional"`
		CopyStrategy    string    `hcl:"copy_strategy,optional"`
		CopyCompression string    `hcl:"copy_compression,optional"`
		CopyDir         string    `hcl:"copy_dir,optional"`
		CopyRemoteDir   string    `hcl:"copy_remote_dir,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cache, err := cacheFromCty(hclCfg.CopyCache)
	if err != nil {
		return nil, err
	}
	patterns, err := patternsFromCty(hclCfg.CopyExclude)
	if err != nil {
		return nil, err
	}

	return &Config{
		Application:           hclCfg.Application,
		Repository:            hclCfg.Repository,
		Branch:                hclCfg.Branch,
		SCMCommand:            hclCfg.SCMCommand,
		DeployTo:              hclCfg.DeployTo,
		ReleasesPath:          hclCfg.ReleasesPath,
		ReleasePath:           hclCfg.ReleasePath,
		ReleaseName:           hclCfg.ReleaseName,
		Hosts:                 hclCfg.Hosts,
		User:                  hclCfg.User,
		Port:                  hclCfg.Port,
		SSHKey:                hclCfg.SSHKey,
		KnownHosts:            hclCfg.KnownHosts,
		InsecureIgnoreHostKey: hclCfg.InsecureIgnoreHostKey,
		SSHTimeout:            hclCfg.SSHTimeout,
		CopyCache:             cache,
		CopyExclude:           patterns,
		CopyStrategy:          hclCfg.CopyStrategy,
		CopyCompression:       hclCfg.CopyCompression,
		CopyDir:               hclCfg.CopyDir,
		CopyRemoteDir:         hclCfg.CopyRemoteDir,
	}, nil
}

func absent(v cty.Value) bool {
	return v.Type() == cty.NilType || v.IsNull()
}

func cacheFromCty(v cty.Value) (CacheSetting, error) {
	switch {
	case absent(v):
		return CacheSetting{}, nil
	case v.Type() == cty.Bool:
		return CacheSetting{Enabled: v.True()}, nil
	case v.Type() == cty.String:
		return cacheFromString(v.AsString()), nil
	default:
		return CacheSetting{}, errors.Errorf("copy_cache must be a boolean or a path, got %s", v.Type().FriendlyName())
	}
}

func patternsFromCty(v cty.Value) (Patterns, error) {
	if absent(v) {
		return nil, nil
	}
	ty := v.Type()
	if ty == cty.String {
		return Patterns{v.AsString()}, nil
	}
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		return nil, errors.Errorf("copy_exclude must be a glob or a list of globs, got %s", ty.FriendlyName())
	}

	var out Patterns
	for it := v.ElementIterator(); it.Next(); {
		_, el := it.Element()
		if el.Type() != cty.String || el.IsNull() {
			return nil, errors.Errorf("copy_exclude entries must be strings, got %s", el.Type().FriendlyName())
		}
		out = append(out, el.AsString())
	}
	return out, nil
}
