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

// Package archive maps a configured compression mode to the commands that
// pack and unpack a staged release.
package archive

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🗜️ Compression is the closed set of supported archive formats
type Compression int

const (
	Gzip Compression = iota + 1
	Bzip2
	Zip
)

// ⚠️ ConfigurationError reports an unrecognized compression mode
type ConfigurationError struct {
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown copy_compression %q (expected gzip, bzip2 or zip)", e.Value)
}

// 🔍 Parse resolves a configured mode, including its short aliases
func Parse(mode string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "gzip", "gz":
		return Gzip, nil
	case "bzip2", "bz2":
		return Bzip2, nil
	case "zip":
		return Zip, nil
	}
	return 0, errors.WithStack(&ConfigurationError{Value: mode})
}

// String returns the canonical mode name
func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Zip:
		return "zip"
	}
	return fmt.Sprintf("compression(%d)", int(c))
}

// 📄 Extension returns the canonical file extension, without a leading dot
func (c Compression) Extension() string {
	switch c {
	case Gzip:
		return "tar.gz"
	case Bzip2:
		return "tar.bz2"
	case Zip:
		return "zip"
	}
	panic(fmt.Sprintf("archive: invalid compression %d", int(c)))
}

// 📦 Compress returns the argv that packs dir into file
func (c Compression) Compress(file, dir string) []string {
	switch c {
	case Gzip:
		return []string{"tar", "czf", file, dir}
	case Bzip2:
		return []string{"tar", "cjf", file, dir}
	case Zip:
		return []string{"zip", "-qr", file, dir}
	}
	panic(fmt.Sprintf("archive: invalid compression %d", int(c)))
}

// 📂 Decompress returns the argv that unpacks file into the working directory
func (c Compression) Decompress(file string) []string {
	switch c {
	case Gzip:
		return []string{"tar", "xzf", file}
	case Bzip2:
		return []string{"tar", "xjf", file}
	case Zip:
		return []string{"unzip", "-q", file}
	}
	panic(fmt.Sprintf("archive: invalid compression %d", int(c)))
}

// Extension validates mode and returns its file extension
func Extension(mode string) (string, error) {
	c, err := Parse(mode)
	if err != nil {
		return "", err
	}
	return c.Extension(), nil
}

// CompressCommand validates mode and returns the argv packing dir into file
func CompressCommand(mode, file, dir string) ([]string, error) {
	c, err := Parse(mode)
	if err != nil {
		return nil, err
	}
	return c.Compress(file, dir), nil
}

// DecompressCommand validates mode and returns the argv unpacking file
func DecompressCommand(mode, file string) ([]string, error) {
	c, err := Parse(mode)
	if err != nil {
		return nil, err
	}
	return c.Decompress(file), nil
}
