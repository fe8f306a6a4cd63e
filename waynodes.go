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

// wayNodeSize is the fixed width of one way node element: int64 ref plus
// an optionally cached location.
const wayNodeSize = 16

// WayNode is one node reference of a way, with an optional cached
// position.  Location is undefined until the reference is resolved.
type WayNode struct {
	Ref      int64
	Location Location
}

// NewWayNode creates an unresolved way node reference.
func NewWayNode(ref int64) WayNode {
	return WayNode{Ref: ref, Location: UndefinedLocation()}
}

// WayNodeList is a view of one way node list record.  The zero value is
// an empty, immutable list.
type WayNodeList struct {
	buf *Buffer
	off int
}

// IsEmpty reports whether the list has no node references.
func (l WayNodeList) IsEmpty() bool {
	return l.Len() == 0
}

// Len returns the number of node references.
func (l WayNodeList) Len() int {
	if l.buf == nil {
		return 0
	}

	return int(headerLength(l.buf.data[l.off:])) / wayNodeSize
}

// All iterates the node references in way order.
func (l WayNodeList) All() iter.Seq[WayNode] {
	return func(yield func(WayNode) bool) {
		if l.buf == nil {
			return
		}

		p := l.off + headerSize
		end := p + int(headerLength(l.buf.data[l.off:]))

		for ; p+wayNodeSize <= end; p += wayNodeSize {
			wn := WayNode{
				Ref: int64(binary.LittleEndian.Uint64(l.buf.data[p:])),
				Location: Location{
					lon: int32(binary.LittleEndian.Uint32(l.buf.data[p+8:])),
					lat: int32(binary.LittleEndian.Uint32(l.buf.data[p+12:])),
				},
			}

			if !yield(wn) {
				return
			}
		}
	}
}

// Refs returns the node references as a slice of ids.
func (l WayNodeList) Refs() []int64 {
	refs := make([]int64, 0, l.Len())
	for wn := range l.All() {
		refs = append(refs, wn.Ref)
	}

	return refs
}
