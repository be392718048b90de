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

// Package remote moves archives to deployment hosts and runs commands there.
package remote

import (
	"context"
	"fmt"
)

// 🌐 Channel runs commands on, and writes files to, every host of a deployment
type Channel interface {
	// Hosts lists the hosts the channel addresses
	Hosts() []string
	// Run executes command on every host
	Run(ctx context.Context, command string) error
	// Put writes data to remotePath on every host
	Put(ctx context.Context, data []byte, remotePath string) error
}

// ❌ HostError records which host a remote operation failed on
type HostError struct {
	Host string
	Err  error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("host %s: %v", e.Host, e.Err)
}

func (e *HostError) Unwrap() error {
	return e.Err
}
