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
	"strconv"
	"time"
)

// Entity record layout, relative to the record start.  The fixed fields
// are followed by the length-prefixed author name, padded to Alignment,
// and then by the nested list records.
const (
	offID        = headerSize
	offVersion   = offID + 8
	offTimestamp = offVersion + 4
	offUID       = offTimestamp + 4
	offChangeset = offUID + 4
	offLocation  = offChangeset + 8 // nodes only

	entityFixedSize = offLocation
	nodeFixedSize   = offLocation + 8

	userLenSize = 4
)

// deletedBitMask is the reserved high bit of the version field marking a
// revision as a deletion.  The remaining low bits hold the version.
const deletedBitMask uint32 = 1 << 31

// TimestampLayout is the fixed ISO-8601 form used for textual timestamps.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Meta carries the metadata common to node, way, and relation entities.
type Meta struct {
	ID        int64
	Version   uint32
	Deleted   bool
	Timestamp time.Time
	UID       uint32 // 0 is anonymous
	Changeset int64
}

// Entity is a view of one node, way, or relation record.  The zero value
// is not a valid entity; entities are obtained from a Buffer.
type Entity struct {
	buf *Buffer
	off int
}

// Type returns the entity kind: ItemNode, ItemWay, or ItemRelation.
func (e Entity) Type() ItemType {
	return headerType(e.buf.data[e.off:])
}

// Offset returns the entity's position in its buffer.
func (e Entity) Offset() int {
	return e.off
}

// ID returns the entity id.  Provisional entities carry negative ids.
func (e Entity) ID() int64 {
	return int64(binary.LittleEndian.Uint64(e.buf.data[e.off+offID:]))
}

// SetID sets the entity id.
func (e Entity) SetID(id int64) {
	binary.LittleEndian.PutUint64(e.buf.data[e.off+offID:], uint64(id))
}

func (e Entity) versionField() uint32 {
	return binary.LittleEndian.Uint32(e.buf.data[e.off+offVersion:])
}

func (e Entity) setVersionField(v uint32) {
	binary.LittleEndian.PutUint32(e.buf.data[e.off+offVersion:], v)
}

// Version returns the revision number.
func (e Entity) Version() uint32 {
	return e.versionField() &^ deletedBitMask
}

// SetVersion sets the revision number, preserving the deleted flag.  A
// value with the deleted bit set is silently truncated to the low bits.
func (e Entity) SetVersion(v uint32) {
	e.setVersionField(e.versionField()&deletedBitMask | v&^deletedBitMask)
}

// Deleted reports whether this revision marks a deletion.
func (e Entity) Deleted() bool {
	return e.versionField()&deletedBitMask != 0
}

// SetDeleted sets the deleted flag, preserving the version.
func (e Entity) SetDeleted(deleted bool) {
	f := e.versionField() &^ deletedBitMask
	if deleted {
		f |= deletedBitMask
	}

	e.setVersionField(f)
}

// Visible reports the inverse of Deleted.
func (e Entity) Visible() bool {
	return !e.Deleted()
}

// SetVisible sets the inverse of the deleted flag.
func (e Entity) SetVisible(visible bool) {
	e.SetDeleted(!visible)
}

// Timestamp returns the last-modification time, at second precision.
func (e Entity) Timestamp() time.Time {
	sec := binary.LittleEndian.Uint32(e.buf.data[e.off+offTimestamp:])

	return time.Unix(int64(sec), 0).UTC()
}

// SetTimestamp sets the last-modification time.  Times before the epoch
// are stored as the epoch.
func (e Entity) SetTimestamp(t time.Time) {
	binary.LittleEndian.PutUint32(e.buf.data[e.off+offTimestamp:], epochSeconds(t))
}

// UID returns the author id, 0 for anonymous.
func (e Entity) UID() uint32 {
	return binary.LittleEndian.Uint32(e.buf.data[e.off+offUID:])
}

// SetUID sets the author id.
func (e Entity) SetUID(uid uint32) {
	binary.LittleEndian.PutUint32(e.buf.data[e.off+offUID:], uid)
}

// Anonymous reports whether the author is anonymous.
func (e Entity) Anonymous() bool {
	return e.UID() == 0
}

// Changeset returns the changeset id.
func (e Entity) Changeset() int64 {
	return int64(binary.LittleEndian.Uint64(e.buf.data[e.off+offChangeset:]))
}

// SetChangeset sets the changeset id.
func (e Entity) SetChangeset(id int64) {
	binary.LittleEndian.PutUint64(e.buf.data[e.off+offChangeset:], uint64(id))
}

// Location returns a node's inline position.  For ways and relations it
// returns the undefined location.
func (e Entity) Location() Location {
	if e.Type() != ItemNode {
		return Location{lon: undefinedCoordinate, lat: undefinedCoordinate}
	}

	return Location{
		lon: int32(binary.LittleEndian.Uint32(e.buf.data[e.off+offLocation:])),
		lat: int32(binary.LittleEndian.Uint32(e.buf.data[e.off+offLocation+4:])),
	}
}

// SetLocation sets a node's inline position.  It is a no-op for ways and
// relations.
func (e Entity) SetLocation(loc Location) {
	if e.Type() != ItemNode {
		return
	}

	binary.LittleEndian.PutUint32(e.buf.data[e.off+offLocation:], uint32(loc.lon))
	binary.LittleEndian.PutUint32(e.buf.data[e.off+offLocation+4:], uint32(loc.lat))
}

// fixedSize returns the record-relative offset of the author name block.
func (e Entity) fixedSize() int {
	if e.Type() == ItemNode {
		return nodeFixedSize
	}

	return entityFixedSize
}

// User returns the author name.
func (e Entity) User() string {
	p := e.off + e.fixedSize()
	n := int(binary.LittleEndian.Uint32(e.buf.data[p:]))

	return string(e.buf.data[p+userLenSize : p+userLenSize+n])
}

// subitemsPos returns the offset of the first nested record: the entity's
// own padded footprint ends where its sub-collections start.
func (e Entity) subitemsPos() int {
	return e.off + padded(headerSize+int(headerLength(e.buf.data[e.off:])))
}

// Items returns a cursor over the entity's nested list records.
func (e Entity) Items() *Cursor {
	return newCursor(e.buf, e.subitemsPos(), e.buf.outerEnd(e.off))
}

// Tags returns the entity's nested tag list, or an empty list when none
// is nested.  The empty list is an owned value, never shared storage.
func (e Entity) Tags() TagList {
	for c := e.Items(); c.Scan(); {
		if tl, ok := c.Record().TagList(); ok {
			return tl
		}
	}

	return TagList{}
}

// WayNodes returns a way's nested node reference list, or an empty list
// when none is nested.
func (e Entity) WayNodes() WayNodeList {
	for c := e.Items(); c.Scan(); {
		if wnl, ok := c.Record().WayNodeList(); ok {
			return wnl
		}
	}

	return WayNodeList{}
}

// Members returns a relation's nested member list, or an empty list when
// none is nested.
func (e Entity) Members() MemberList {
	for c := e.Items(); c.Scan(); {
		if ml, ok := c.Record().MemberList(); ok {
			return ml
		}
	}

	return MemberList{}
}

func (e Entity) hasList(t ItemType) bool {
	for c := e.Items(); c.Scan(); {
		if c.Record().Type() == t {
			return true
		}
	}

	return false
}

// attributeSetters is the closed dispatch table for SetAttribute.
var attributeSetters = map[string]func(Entity, string) error{
	"id": func(e Entity, value string) error {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return malformedf("id", value)
		}

		e.SetID(id)

		return nil
	},
	"version": func(e Entity, value string) error {
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return malformedf("version", value)
		}

		e.SetVersion(uint32(v))

		return nil
	},
	"changeset": func(e Entity, value string) error {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return malformedf("changeset", value)
		}

		e.SetChangeset(id)

		return nil
	},
	"timestamp": func(e Entity, value string) error {
		t, err := time.Parse(TimestampLayout, value)
		if err != nil {
			return malformedf("timestamp", value)
		}

		e.SetTimestamp(t)

		return nil
	},
	"uid": func(e Entity, value string) error {
		uid, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return malformedf("uid", value)
		}

		e.SetUID(uint32(uid))

		return nil
	},
	"visible": func(e Entity, value string) error {
		switch value {
		case "true":
			e.SetVisible(true)
		case "false":
			e.SetVisible(false)
		default:
			return malformedf("visible", value)
		}

		return nil
	},
}

// SetAttribute parses value and applies the setter named by attr, one of
// id, version, changeset, timestamp, uid, or visible.  Unrecognized
// attribute names are ignored so readers tolerate format skew.
func (e Entity) SetAttribute(attr, value string) error {
	set, ok := attributeSetters[attr]
	if !ok {
		return nil
	}

	return set(e, value)
}

func packVersion(v uint32, deleted bool) uint32 {
	f := v &^ deletedBitMask
	if deleted {
		f |= deletedBitMask
	}

	return f
}

func epochSeconds(t time.Time) uint32 {
	if t.IsZero() {
		return 0
	}

	sec := t.Unix()
	if sec < 0 {
		return 0
	}

	return uint32(sec)
}
