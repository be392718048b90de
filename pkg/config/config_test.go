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
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{
			name:     "yaml",
			filename: ".copyship.yaml",
			content: `
application: shop
repository: git@example.com:shop.git
deploy_to: /srv/shop
hosts: [app1, app2]
ssh_timeout: 12
copy_cache: true
copy_exclude: [".git/*", "*.md"]
copy_compression: bz2
`,
		},
		{
			name:     "hcl",
			filename: ".copyship.hcl",
			content: `
application      = "shop"
repository       = "git@example.com:shop.git"
deploy_to        = "/srv/shop"
hosts            = ["app1", "app2"]
ssh_timeout      = 12
copy_cache       = true
copy_exclude     = [".git/*", "*.md"]
copy_compression = "bz2"
`,
		},
		{
			name:     "json",
			filename: ".copyship.json",
			content: `{
  "application": "shop",
  "repository": "git@example.com:shop.git",
  "deploy_to": "/srv/shop",
  "hosts": ["app1", "app2"],
  "ssh_timeout": 12,
  "copy_cache": true,
  "copy_exclude": [".git/*", "*.md"],
  "copy_compression": "bz2"
}`,
		},
		{
			name:     "bare_yaml",
			filename: ".copyship",
			content: `
application: shop
repository: git@example.com:shop.git
deploy_to: /srv/shop
hosts: [app1, app2]
ssh_timeout: 12
copy_cache: true
copy_exclude: [".git/*", "*.md"]
copy_compression: bz2
`,
		},
		{
			name:     "bare_hcl",
			filename: ".copyship",
			content: `
application      = "shop"
repository       = "git@example.com:shop.git"
deploy_to        = "/srv/shop"
hosts            = ["app1", "app2"]
ssh_timeout      = 12
copy_cache       = true
copy_exclude     = [".git/*", "*.md"]
copy_compression = "bz2"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeConfig(t, tt.filename, tt.content)
			cfg, err := Load(testContext(t), p)
			require.NoError(t, err)

			assert.Equal(t, p, cfg.Location())
			assert.Equal(t, "shop", cfg.Application)
			assert.Equal(t, "git@example.com:shop.git", cfg.Repository)
			assert.Equal(t, []string{"app1", "app2"}, cfg.Hosts)
			assert.Equal(t, 12, cfg.SSHTimeout)
			assert.Equal(t, CacheSetting{Enabled: true}, cfg.CopyCache)
			assert.Equal(t, Patterns{".git/*", "*.md"}, cfg.CopyExclude)
			assert.Equal(t, "bz2", cfg.CopyCompression)
			assert.Equal(t, "/srv/shop/releases", cfg.ReleasesPath)
		})
	}
}

func TestUnionValues(t *testing.T) {
	tests := []struct {
		name            string
		filename        string
		content         string
		expectedCache   CacheSetting
		expectedExclude Patterns
	}{
		{
			name:     "yaml_path_and_single_glob",
			filename: "c.yml",
			content: `
application: shop
deploy_to: /srv/shop
hosts: [app1]
copy_cache: /var/cache/shop
copy_exclude: "*.log"
`,
			expectedCache:   CacheSetting{Enabled: true, Path: "/var/cache/shop"},
			expectedExclude: Patterns{"*.log"},
		},
		{
			name:     "yaml_disabled",
			filename: "c.yaml",
			content: `
application: shop
deploy_to: /srv/shop
hosts: [app1]
copy_cache: false
`,
			expectedCache: CacheSetting{},
		},
		{
			name:     "hcl_path_and_single_glob",
			filename: "c.hcl",
			content: `
application  = "shop"
deploy_to    = "/srv/shop"
hosts        = ["app1"]
copy_cache   = "/var/cache/shop"
copy_exclude = "*.log"
`,
			expectedCache:   CacheSetting{Enabled: true, Path: "/var/cache/shop"},
			expectedExclude: Patterns{"*.log"},
		},
		{
			name:     "json_path_and_single_glob",
			filename: "c.json",
			content: `{"application": "shop", "deploy_to": "/srv/shop", "hosts": ["app1"],
"copy_cache": "/var/cache/shop", "copy_exclude": "*.log"}`,
			expectedCache:   CacheSetting{Enabled: true, Path: "/var/cache/shop"},
			expectedExclude: Patterns{"*.log"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(testContext(t), writeConfig(t, tt.filename, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCache, cfg.CopyCache)
			assert.Equal(t, tt.expectedExclude, cfg.CopyExclude)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name          string
		filename      string
		content       string
		expectedError string
	}{
		{
			name:          "unknown_extension",
			filename:      "c.toml",
			content:       "application = 'x'",
			expectedError: "no parser found",
		},
		{
			name:          "unknown_yaml_field",
			filename:      "c.yaml",
			content:       "application: shop\ndeploy_to: /srv\nhosts: [a]\ncopy_mode: fast\n",
			expectedError: "parsing YAML",
		},
		{
			name:          "unknown_json_field",
			filename:      "c.json",
			content:       `{"application": "shop", "deploy_to": "/srv", "hosts": ["a"], "copy_mode": "fast"}`,
			expectedError: "parsing JSON",
		},
		{
			name:          "bad_cache_type",
			filename:      "c.yaml",
			content:       "application: shop\ndeploy_to: /srv\nhosts: [a]\ncopy_cache: [a]\n",
			expectedError: "copy_cache must be a boolean or a path",
		},
		{
			name:          "bad_hcl_exclude",
			filename:      "c.hcl",
			content:       "application = \"shop\"\ndeploy_to = \"/srv\"\nhosts = [\"a\"]\ncopy_exclude = 3\n",
			expectedError: "copy_exclude must be a glob or a list of globs",
		},
		{
			name:          "missing_application",
			filename:      "c.yaml",
			content:       "deploy_to: /srv\nhosts: [a]\n",
			expectedError: "application is required",
		},
		{
			name:          "missing_hosts",
			filename:      "c.yaml",
			content:       "application: shop\ndeploy_to: /srv\n",
			expectedError: "at least one host is required",
		},
		{
			name:          "missing_deploy_to",
			filename:      "c.yaml",
			content:       "application: shop\nhosts: [a]\n",
			expectedError: "deploy_to is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(testContext(t), writeConfig(t, tt.filename, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{
		Application: "shop",
		DeployTo:    "/srv/shop",
		Hosts:       []string{"app1"},
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultBranch, cfg.Branch)
	assert.Equal(t, DefaultSCMCommand, cfg.SCMCommand)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultSSHTimeout, cfg.SSHTimeout)
	assert.Equal(t, DefaultStrategy, cfg.CopyStrategy)
	assert.Equal(t, DefaultCompression, cfg.CopyCompression)
	assert.Equal(t, os.TempDir(), cfg.CopyDir)
	assert.Equal(t, DefaultRemoteDir, cfg.CopyRemoteDir)
	assert.Equal(t, "/srv/shop/releases", cfg.ReleasesPath)
	assert.Regexp(t, regexp.MustCompile(`^\d{14}$`), cfg.ReleaseName)
	assert.Equal(t, "/srv/shop/releases/"+cfg.ReleaseName, cfg.ReleasePath)
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Application:     "shop",
		DeployTo:        "/srv/shop",
		ReleasePath:     "/srv/shop/releases/20240101000000",
		Hosts:           []string{"app1"},
		CopyStrategy:    "export",
		CopyCompression: "zip",
		CopyDir:         "/scratch",
		CopyRemoteDir:   "/var/tmp",
		Port:            2222,
		SSHTimeout:      5,
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/srv/shop/releases/20240101000000", cfg.ReleasePath)
	assert.Equal(t, "export", cfg.CopyStrategy)
	assert.Equal(t, "zip", cfg.CopyCompression)
	assert.Equal(t, "/scratch", cfg.CopyDir)
	assert.Equal(t, "/var/tmp", cfg.CopyRemoteDir)
	assert.Equal(t, 2222, cfg.Port)
	assert.Equal(t, 5, cfg.SSHTimeout)
}

func TestValidateRejectsInvalidExclude(t *testing.T) {
	cfg := &Config{
		Application: "shop",
		DeployTo:    "/srv/shop",
		Hosts:       []string{"app1"},
		CopyExclude: Patterns{".git/*", "["},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `copy_exclude: invalid exclude pattern "["`)
}

func TestValidateRejectsNegativeSSHTimeout(t *testing.T) {
	cfg := &Config{Application: "shop", DeployTo: "/srv/shop", Hosts: []string{"app1"}, SSHTimeout: -1}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ssh_timeout must not be negative")
}

func TestCacheLocation(t *testing.T) {
	tests := []struct {
		name     string
		setting  CacheSetting
		expected string
	}{
		{name: "disabled", setting: CacheSetting{}, expected: ""},
		{name: "default_path", setting: CacheSetting{Enabled: true}, expected: filepath.Join("/scratch", "shop")},
		{name: "explicit_path", setting: CacheSetting{Enabled: true, Path: "/var/cache/shop"}, expected: "/var/cache/shop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Application: "shop", CopyDir: "/scratch", CopyCache: tt.setting}
			assert.Equal(t, tt.expected, cfg.CacheLocation())
		})
	}
}

func TestExclude(t *testing.T) {
	cfg := &Config{CopyExclude: Patterns{".git/*", "", "*.md"}}
	assert.Equal(t, []string{".git/*", "*.md"}, []string(cfg.Exclude()))
}
