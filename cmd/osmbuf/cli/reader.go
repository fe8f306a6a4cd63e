// Copyright 2025-26 the original author or authors.
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

package cli

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// OpenInput opens an OPL input, wrapping a progress bar over regular
// files and transparently decompressing .gz, .zst, .lz4, and .xz by file
// extension.  An empty path, or "-", reads stdin.
func OpenInput(path string, progress bool) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rc := io.ReadCloser(f)

	if progress {
		if rc, err = WrapInputFile(f); err != nil {
			f.Close()

			return nil, err
		}
	}

	return wrapDecompression(rc, path)
}

// unpacked is a decompressing reader that still closes the underlying
// input.
type unpacked struct {
	io.Reader
	delegate io.ReadCloser
}

func (u unpacked) Close() error {
	return u.delegate.Close()
}

func wrapDecompression(rc io.ReadCloser, path string) (io.ReadCloser, error) {
	switch filepath.Ext(path) {
	case ".gz":
		r, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()

			return nil, err
		}

		return unpacked{Reader: r, delegate: rc}, nil
	case ".zst":
		r, err := zstd.NewReader(rc)
		if err != nil {
			rc.Close()

			return nil, err
		}

		return unpacked{Reader: r, delegate: rc}, nil
	case ".lz4":
		return unpacked{Reader: lz4.NewReader(rc), delegate: rc}, nil
	case ".xz":
		r, err := xz.NewReader(rc)
		if err != nil {
			rc.Close()

			return nil, err
		}

		return unpacked{Reader: r, delegate: rc}, nil
	default:
		return rc, nil
	}
}
