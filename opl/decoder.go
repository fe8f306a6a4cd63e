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

package opl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/destel/rill"

	"m4o.io/osmbuf"
)

const (
	// DefaultBatchSize is the default number of lines parsed into one
	// buffer.
	DefaultBatchSize = 8000

	// maxLineSize bounds one OPL line; ways may carry thousands of node
	// references.
	maxLineSize = 16 * 1024 * 1024
)

// Decoder reads OPL text from an input stream and hands out buffers of
// packed entities, in input order.  Parsing runs concurrently in the
// background; each buffer is completed before it is handed over, so the
// caller may treat it as frozen.
type Decoder struct {
	buffers <-chan rill.Try[*osmbuf.Buffer]
}

// decoderOptions provides optional configuration parameters for Decoder
// construction.
type decoderOptions struct {
	batchSize      int
	bufferCapacity int
	nCPU           uint16
}

// DecoderOption configures how we set up the decoder.
type DecoderOption func(*decoderOptions)

// WithBatchSize lets you set the number of lines parsed into one buffer.
func WithBatchSize(n int) DecoderOption {
	return func(o *decoderOptions) {
		o.batchSize = n
	}
}

// WithBufferCapacity lets you set the initial capacity of each buffer.
func WithBufferCapacity(n int) DecoderOption {
	return func(o *decoderOptions) {
		o.bufferCapacity = n
	}
}

// WithNCpus lets you set the number of CPUs to use for background
// parsing.
func WithNCpus(n uint16) DecoderOption {
	return func(o *decoderOptions) {
		o.nCPU = n
	}
}

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// defaultDecoderConfig provides a default configuration for decoders.
var defaultDecoderConfig = decoderOptions{
	batchSize:      DefaultBatchSize,
	bufferCapacity: osmbuf.DefaultBufferCapacity,
	nCPU:           DefaultNCpu(),
}

// NewDecoder returns a new decoder, configured with options, that reads
// from rdr.  Canceling ctx stops the background pipeline.
func NewDecoder(ctx context.Context, rdr io.Reader, opts ...DecoderOption) *Decoder {
	cfg := defaultDecoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	batches := generateLineBatches(ctx, rdr, cfg.batchSize)

	buffers := rill.OrderedMap(batches, int(cfg.nCPU), func(lines []string) (*osmbuf.Buffer, error) {
		return parseBatch(lines, cfg.bufferCapacity)
	})

	return &Decoder{buffers: buffers}
}

// Decode returns the next buffer of entities.  The end of the input
// stream is reported by an io.EOF error.
func (d *Decoder) Decode() (*osmbuf.Buffer, error) {
	t, ok := <-d.buffers
	if !ok {
		return nil, io.EOF
	}

	if t.Error != nil {
		return nil, t.Error
	}

	return t.Value, nil
}

// generateLineBatches reads lines off of rdr and groups them into batches
// for concurrent parsing.
func generateLineBatches(ctx context.Context, rdr io.Reader, size int) <-chan rill.Try[[]string] {
	out := make(chan rill.Try[[]string])

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(rdr)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

		batch := make([]string, 0, size)

		emit := func(t rill.Try[[]string]) bool {
			select {
			case <-ctx.Done():
				return false
			case out <- t:
				return true
			}
		}

		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}

			batch = append(batch, line)

			if len(batch) == size {
				if !emit(rill.Wrap(batch, nil)) {
					return
				}

				batch = make([]string, 0, size)
			}
		}

		if err := scanner.Err(); err != nil {
			slog.Error("unable to read line", "error", err)
			emit(rill.Try[[]string]{Error: err})

			return
		}

		if len(batch) > 0 {
			emit(rill.Wrap(batch, nil))
		}
	}()

	return out
}

// parseBatch parses a batch of OPL lines into one buffer.
func parseBatch(lines []string, capacity int) (*osmbuf.Buffer, error) {
	buf := osmbuf.NewBuffer(osmbuf.WithCapacity(capacity))

	for _, s := range lines {
		l, err := parseLine(s)
		if err != nil {
			slog.Error("unable to parse line", "error", err)

			return nil, err
		}

		if err := l.appendTo(buf); err != nil {
			slog.Error("unable to append entity", "error", err)

			return nil, fmt.Errorf("appending %q: %w", s, err)
		}
	}

	return buf, nil
}
