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

// Cursor is a forward-only walker over the packed records in one byte
// range of a buffer.  It is range generic: the same type walks a buffer's
// top-level records and the nested records inside one entity.
//
// Use it scanner style:
//
//	for c := buf.Records(); c.Scan(); {
//		r := c.Record()
//		...
//	}
//	if err := c.Err(); err != nil {
//		...
//	}
//
// A walk terminates cleanly only when it lands on the range's end offset
// exactly; stopping short of it, or computing a next offset past it, is a
// corruption error reported by Err.
type Cursor struct {
	buf   *Buffer
	start int
	end   int

	off  int // offset of the current record
	next int // offset the next Scan decodes at
	err  error
}

func newCursor(buf *Buffer, start, end int) *Cursor {
	return &Cursor{buf: buf, start: start, end: end, off: start, next: start}
}

// Scan advances to the next record.  It returns false at the end of the
// range or on corruption; Err distinguishes the two.
func (c *Cursor) Scan() bool {
	if c.err != nil || c.buf == nil {
		return false
	}

	off := c.next
	if off == c.end {
		c.off = c.end

		return false
	}

	if off+headerSize > c.end {
		c.err = corruptf(off, "record header overruns range end %d", c.end)

		return false
	}

	data := c.buf.data[off:]

	t := headerType(data)
	if !t.valid() {
		c.err = corruptf(off, "unknown record discriminant 0x%02x", byte(t))

		return false
	}

	length := int(headerLength(data))
	next := off + padded(headerSize+length)

	if next > c.end || off+headerSize+length > c.end {
		c.err = corruptf(off, "%s record of %d bytes overruns range end %d", t, length, c.end)

		return false
	}

	c.off, c.next = off, next

	return true
}

// Record returns the record Scan stopped on.
func (c *Cursor) Record() Record {
	return Record{buf: c.buf, off: c.off}
}

// Err returns the first corruption error encountered, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Reset restarts the cursor from the start of its range.
func (c *Cursor) Reset() {
	c.off, c.next, c.err = c.start, c.start, nil
}

// Offset returns the cursor's current offset.
func (c *Cursor) Offset() int {
	return c.off
}

// Equal reports whether two cursors over the same buffer sit at the same
// offset.
func (c *Cursor) Equal(o *Cursor) bool {
	return c.buf == o.buf && c.off == o.off
}

// Record is one packed record decoded by a cursor.  Match on Type and
// narrow with the typed accessors.
type Record struct {
	buf *Buffer
	off int
}

// Type returns the record discriminant.
func (r Record) Type() ItemType {
	return headerType(r.buf.data[r.off:])
}

// Len returns the payload length, excluding header and trailing pad.
func (r Record) Len() int {
	return int(headerLength(r.buf.data[r.off:]))
}

// Size returns the reserved footprint: header plus payload, padded.
// The next record starts exactly Size bytes after Offset.
func (r Record) Size() int {
	return padded(headerSize + r.Len())
}

// Offset returns the record's position in its buffer.
func (r Record) Offset() int {
	return r.off
}

// Entity narrows the record to an entity view.
func (r Record) Entity() (Entity, bool) {
	if !r.Type().IsEntity() {
		return Entity{}, false
	}

	return Entity{buf: r.buf, off: r.off}, true
}

// TagList narrows the record to a tag list view.
func (r Record) TagList() (TagList, bool) {
	if r.Type() != ItemTagList {
		return TagList{}, false
	}

	return TagList{buf: r.buf, off: r.off}, true
}

// WayNodeList narrows the record to a way node list view.
func (r Record) WayNodeList() (WayNodeList, bool) {
	if r.Type() != ItemWayNodeList {
		return WayNodeList{}, false
	}

	return WayNodeList{buf: r.buf, off: r.off}, true
}

// MemberList narrows the record to a member list view.
func (r Record) MemberList() (MemberList, bool) {
	if r.Type() != ItemMemberList {
		return MemberList{}, false
	}

	return MemberList{buf: r.buf, off: r.off}, true
}
