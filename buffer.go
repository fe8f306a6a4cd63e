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
	"math"
	"sort"
)

// DefaultBufferCapacity is the initial capacity of a Buffer unless
// overridden with WithCapacity.
const DefaultBufferCapacity = 1 << 20

// Buffer owns one contiguous, growable block of memory and is the
// exclusive allocator for every packed record.  Records never outlive
// their buffer; Reset invalidates all views at once.
//
// The byte length recorded in an entity's header covers only its fixed
// fields and author name block.  The entity's outer extent, including the
// list records nested after it, is delimited by the buffer's index of
// top-level offsets so that nesting more records never rewrites the
// entity header.
type Buffer struct {
	data []byte // committed records; len(data) is the committed size
	tops []int  // offsets of top-level entity records, ascending
}

// bufferOptions provides optional configuration parameters for Buffer
// construction.
type bufferOptions struct {
	capacity int
}

// BufferOption configures how we set up a buffer.
type BufferOption func(*bufferOptions)

// WithCapacity lets you set the initial capacity, in bytes, of the backing
// memory.  The buffer grows automatically if required.
func WithCapacity(n int) BufferOption {
	return func(o *bufferOptions) {
		o.capacity = n
	}
}

// NewBuffer creates an empty buffer, configured with options.
func NewBuffer(opts ...BufferOption) *Buffer {
	cfg := bufferOptions{capacity: DefaultBufferCapacity}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Buffer{data: make([]byte, 0, cfg.capacity)}
}

// Len returns the committed size, in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the capacity, in bytes, of the backing memory.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Count returns the number of top-level entities.
func (b *Buffer) Count() int {
	return len(b.tops)
}

// Reset truncates the buffer for reuse, keeping the backing memory.
// Every view taken before Reset is invalid afterwards.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.tops = b.tops[:0]
}

// Records returns a cursor over every record in the buffer, entities and
// their nested list records alike, in append order.
func (b *Buffer) Records() *Cursor {
	return newCursor(b, 0, b.Len())
}

// Entities iterates the top-level entities in append order.
func (b *Buffer) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, off := range b.tops {
			if !yield(Entity{buf: b, off: off}) {
				return
			}
		}
	}
}

// At returns the i-th top-level entity.
func (b *Buffer) At(i int) Entity {
	return Entity{buf: b, off: b.tops[i]}
}

// AppendNode appends a node entity with an inline location.
func (b *Buffer) AppendNode(meta Meta, user string, loc Location) Entity {
	return b.appendEntity(ItemNode, meta, user, loc)
}

// AppendWay appends a way entity.  Its node references are nested
// afterwards with AppendWayNodes.
func (b *Buffer) AppendWay(meta Meta, user string) Entity {
	return b.appendEntity(ItemWay, meta, user, Location{})
}

// AppendRelation appends a relation entity.  Its members are nested
// afterwards with AppendMembers.
func (b *Buffer) AppendRelation(meta Meta, user string) Entity {
	return b.appendEntity(ItemRelation, meta, user, Location{})
}

func (b *Buffer) appendEntity(t ItemType, meta Meta, user string, loc Location) Entity {
	fixed := entityFixedSize
	if t == ItemNode {
		fixed = nodeFixedSize
	}

	length := fixed - headerSize + userLenSize + len(user)

	off := b.alloc(headerSize + length)
	data := b.data[off:]

	putHeader(data, t, uint32(length))
	binary.LittleEndian.PutUint64(data[offID:], uint64(meta.ID))
	binary.LittleEndian.PutUint32(data[offVersion:], packVersion(meta.Version, meta.Deleted))
	binary.LittleEndian.PutUint32(data[offTimestamp:], epochSeconds(meta.Timestamp))
	binary.LittleEndian.PutUint32(data[offUID:], meta.UID)
	binary.LittleEndian.PutUint64(data[offChangeset:], uint64(meta.Changeset))

	if t == ItemNode {
		binary.LittleEndian.PutUint32(data[offLocation:], uint32(loc.lon))
		binary.LittleEndian.PutUint32(data[offLocation+4:], uint32(loc.lat))
	}

	binary.LittleEndian.PutUint32(data[fixed:], uint32(len(user)))
	copy(data[fixed+userLenSize:], user)

	b.tops = append(b.tops, off)

	return Entity{buf: b, off: off}
}

// AppendTags nests a tag list record in e.  e must be the buffer's current
// entity and must not already carry a tag list.
func (b *Buffer) AppendTags(e Entity, tags ...Tag) error {
	var n int
	for _, t := range tags {
		if len(t.Key) > math.MaxUint16 || len(t.Value) > math.MaxUint16 {
			return fmt.Errorf("%w: tag %q too long", ErrMalformedValue, t.Key)
		}

		n += tagLenSize + len(t.Key) + len(t.Value)
	}

	off, err := b.appendList(e, ItemTagList, n)
	if err != nil {
		return err
	}

	p := off + headerSize
	for _, t := range tags {
		binary.LittleEndian.PutUint16(b.data[p:], uint16(len(t.Key)))
		binary.LittleEndian.PutUint16(b.data[p+2:], uint16(len(t.Value)))
		p += tagLenSize
		p += copy(b.data[p:], t.Key)
		p += copy(b.data[p:], t.Value)
	}

	return nil
}

// AppendWayNodes nests a way node list record in e.  e must be the
// buffer's current entity and must not already carry a way node list.
func (b *Buffer) AppendWayNodes(e Entity, nodes ...WayNode) error {
	off, err := b.appendList(e, ItemWayNodeList, wayNodeSize*len(nodes))
	if err != nil {
		return err
	}

	p := off + headerSize
	for _, wn := range nodes {
		binary.LittleEndian.PutUint64(b.data[p:], uint64(wn.Ref))
		binary.LittleEndian.PutUint32(b.data[p+8:], uint32(wn.Location.lon))
		binary.LittleEndian.PutUint32(b.data[p+12:], uint32(wn.Location.lat))
		p += wayNodeSize
	}

	return nil
}

// AppendMembers nests a member list record in e.  e must be the buffer's
// current entity and must not already carry a member list.  Members are
// appended unresolved; see MemberList.SetResolved.
func (b *Buffer) AppendMembers(e Entity, members ...Member) error {
	var n int
	for _, m := range members {
		if !m.Type.IsEntity() {
			return fmt.Errorf("%w: member type %s", ErrMalformedValue, m.Type)
		}

		if len(m.Role) > math.MaxUint16 {
			return fmt.Errorf("%w: member role too long", ErrMalformedValue)
		}

		n += memberFixedSize + len(m.Role)
	}

	off, err := b.appendList(e, ItemMemberList, n)
	if err != nil {
		return err
	}

	p := off + headerSize
	unresolved := unresolvedMember
	for _, m := range members {
		binary.LittleEndian.PutUint64(b.data[p:], uint64(m.Ref))
		binary.LittleEndian.PutUint32(b.data[p+8:], uint32(unresolved))
		b.data[p+12] = byte(m.Type)
		binary.LittleEndian.PutUint16(b.data[p+13:], uint16(len(m.Role)))
		b.data[p+15] = 0
		p += memberFixedSize
		p += copy(b.data[p:], m.Role)
	}

	return nil
}

// appendList reserves a list record of kind t with an n byte payload,
// nested in e, and writes its header.
func (b *Buffer) appendList(e Entity, t ItemType, n int) (int, error) {
	if e.buf != b {
		return 0, ErrCrossBuffer
	}

	if len(b.tops) == 0 || e.off != b.tops[len(b.tops)-1] {
		return 0, ErrNotCurrent
	}

	if e.hasList(t) {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateList, t)
	}

	off := b.alloc(headerSize + n)
	putHeader(b.data[off:], t, uint32(n))

	return off, nil
}

// alloc reserves padded(n) zeroed bytes at the committed offset and
// returns the offset.  Growth may move the backing memory; views stay
// valid because they address by offset, not by pointer.
func (b *Buffer) alloc(n int) int {
	off := len(b.data)
	end := off + padded(n)

	if end > cap(b.data) {
		c := cap(b.data)
		if c < DefaultBufferCapacity {
			c = DefaultBufferCapacity
		}

		for end > c {
			c <<= 1
		}

		grown := make([]byte, off, c)
		copy(grown, b.data)
		b.data = grown
	}

	b.data = b.data[:end]
	clear(b.data[off:end])

	return off
}

// outerEnd returns the end offset of the entity starting at top-level
// offset off: the next top-level offset, or the committed size for the
// last entity.
func (b *Buffer) outerEnd(off int) int {
	i := sort.SearchInts(b.tops, off+1)
	if i == len(b.tops) {
		return b.Len()
	}

	return b.tops[i]
}
