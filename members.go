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
	"fmt"
	"iter"
)

// memberFixedSize is the fixed prefix of one member element: int64 ref,
// int32 resolved offset, target kind byte, uint16 role length, and one
// reserved byte; the role bytes follow with no padding.
const memberFixedSize = 16

// unresolvedMember is the resolved-offset sentinel for a member whose
// target entity is not embedded in the same buffer.
const unresolvedMember int32 = -1

// Member is one member of a relation.  Type is the target kind, one of
// ItemNode, ItemWay, or ItemRelation.
type Member struct {
	Type ItemType
	Ref  int64
	Role string
}

// MemberList is a view of one member list record.  The zero value is an
// empty, immutable list.
type MemberList struct {
	buf *Buffer
	off int
}

// IsEmpty reports whether the list has no members.
func (l MemberList) IsEmpty() bool {
	return l.buf == nil || headerLength(l.buf.data[l.off:]) == 0
}

// Len returns the number of members.  It walks the elements; prefer All
// for iteration.
func (l MemberList) Len() int {
	var n int
	for range l.All() {
		n++
	}

	return n
}

// All iterates the members in list order, keyed by element index.
func (l MemberList) All() iter.Seq2[int, Member] {
	return func(yield func(int, Member) bool) {
		if l.buf == nil {
			return
		}

		var i int

		p := l.off + headerSize
		end := p + int(headerLength(l.buf.data[l.off:]))

		for p+memberFixedSize <= end {
			rn := int(binary.LittleEndian.Uint16(l.buf.data[p+13:]))
			if p+memberFixedSize+rn > end {
				return
			}

			m := Member{
				Type: ItemType(l.buf.data[p+12]),
				Ref:  int64(binary.LittleEndian.Uint64(l.buf.data[p:])),
				Role: string(l.buf.data[p+memberFixedSize : p+memberFixedSize+rn]),
			}

			if !yield(i, m) {
				return
			}

			p += memberFixedSize + rn
			i++
		}
	}
}

// elementOffset walks to the i-th element and returns its offset.
func (l MemberList) elementOffset(i int) (int, bool) {
	if l.buf == nil || i < 0 {
		return 0, false
	}

	p := l.off + headerSize
	end := p + int(headerLength(l.buf.data[l.off:]))

	for p+memberFixedSize <= end {
		if i == 0 {
			return p, true
		}

		p += memberFixedSize + int(binary.LittleEndian.Uint16(l.buf.data[p+13:]))
		i--
	}

	return 0, false
}

// Resolved returns the embedded target entity of member i, when it has
// been resolved within the same buffer.  The result is a weak reference:
// a view of a record elsewhere in the buffer, not an owned copy.
func (l MemberList) Resolved(i int) (Entity, bool) {
	p, ok := l.elementOffset(i)
	if !ok {
		return Entity{}, false
	}

	off := int32(binary.LittleEndian.Uint32(l.buf.data[p+8:]))
	if off == unresolvedMember {
		return Entity{}, false
	}

	e := Entity{buf: l.buf, off: int(off)}
	if int(off)+headerSize > l.buf.Len() || !e.Type().IsEntity() {
		return Entity{}, false
	}

	return e, true
}

// SetResolved records target as the embedded entity of member i.  The
// target must live in the same buffer as the list.
func (l MemberList) SetResolved(i int, target Entity) error {
	if target.buf != l.buf {
		return ErrCrossBuffer
	}

	p, ok := l.elementOffset(i)
	if !ok {
		return fmt.Errorf("%w: no member at index %d", ErrMalformedValue, i)
	}

	binary.LittleEndian.PutUint32(l.buf.data[p+8:], uint32(int32(target.off)))

	return nil
}
