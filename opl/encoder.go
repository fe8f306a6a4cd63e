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
	"fmt"
	"io"

	"m4o.io/osmbuf"
)

// Encoder writes buffers of packed entities as OPL text.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns a new encoder that writes to w.  Call Close to
// flush buffered output.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes every top-level entity of b, one line each, in append
// order.
func (e *Encoder) Encode(b *osmbuf.Buffer) error {
	for ent := range b.Entities() {
		if _, err := e.w.WriteString(formatEntity(ent)); err != nil {
			return fmt.Errorf("could not write entity: %w", err)
		}

		if err := e.w.WriteByte('\n'); err != nil {
			return fmt.Errorf("could not write entity: %w", err)
		}
	}

	return nil
}

// Close flushes buffered output.  It does not close the underlying
// writer.
func (e *Encoder) Close() error {
	return e.w.Flush()
}
