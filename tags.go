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

package osmbuf

import (
	"encoding/binary"
	"iter"
)

// tagLenSize is the per-element prefix: uint16 key length and uint16
// value length.  Elements are written back-to-back with no padding; the
// list record is padded once at its end.
const tagLenSize = 4

// Tag is one key/value pair.
type Tag struct {
	Key   string
	Value string
}

// TagList is a view of one tag list record.  The zero value is an empty,
// immutable list.
type TagList struct {
	buf *Buffer
	off int
}

// IsEmpty reports whether the list has no tags.
func (l TagList) IsEmpty() bool {
	return l.buf == nil || headerLength(l.buf.data[l.off:]) == 0
}

// Len returns the number of tags.  It walks the elements; prefer All for
// iteration.
func (l TagList) Len() int {
	var n int
	for range l.All() {
		n++
	}

	return n
}

// All iterates the tags in list order.
func (l TagList) All() iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		if l.buf == nil {
			return
		}

		p := l.off + headerSize
		end := p + int(headerLength(l.buf.data[l.off:]))

		for p+tagLenSize <= end {
			kn := int(binary.LittleEndian.Uint16(l.buf.data[p:]))
			vn := int(binary.LittleEndian.Uint16(l.buf.data[p+2:]))
			p += tagLenSize

			if p+kn+vn > end {
				return
			}

			t := Tag{
				Key:   string(l.buf.data[p : p+kn]),
				Value: string(l.buf.data[p+kn : p+kn+vn]),
			}
			p += kn + vn

			if !yield(t) {
				return
			}
		}
	}
}

// Get returns the value of the first tag with the given key.
func (l TagList) Get(key string) (string, bool) {
	for t := range l.All() {
		if t.Key == key {
			return t.Value, true
		}
	}

	return "", false
}
