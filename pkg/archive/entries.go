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

package archive

import (
	"archive/tar"
	"compress/bzip2"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"gitlab.com/tozd/go/errors"
)

// 📋 Entries lists the slash-separated paths stored in the archive at file.
// Directory entries are returned without a trailing slash; the result is sorted.
func Entries(mode, file string) ([]string, error) {
	c, err := Parse(mode)
	if err != nil {
		return nil, err
	}
	return c.Entries(file)
}

// 📋 Entries lists the paths stored in the archive at file
func (c Compression) Entries(file string) ([]string, error) {
	var (
		names []string
		err   error
	)
	switch c {
	case Gzip, Bzip2:
		names, err = c.tarEntries(file)
	case Zip:
		names, err = zipEntries(file)
	default:
		return nil, errors.Errorf("invalid compression %d", int(c))
	}
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (c Compression) tarEntries(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	var r io.Reader
	if c == Gzip {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Errorf("reading gzip header: %w", err)
		}
		defer gz.Close()
		r = gz
	} else {
		r = bzip2.NewReader(f)
	}

	var names []string
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Errorf("reading tar entry: %w", err)
		}
		names = append(names, cleanEntry(hdr.Name))
	}
	return names, nil
}

func zipEntries(file string) ([]string, error) {
	zr, err := zip.OpenReader(file)
	if err != nil {
		return nil, errors.Errorf("opening zip archive: %w", err)
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, cleanEntry(f.Name))
	}
	return names, nil
}

func cleanEntry(name string) string {
	return path.Clean(strings.TrimPrefix(name, "./"))
}
