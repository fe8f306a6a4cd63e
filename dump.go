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
	"fmt"
	"io"
)

// Dump writes a human readable rendering of packed records for
// diagnostics.  It matches on record kinds and recurses into nested
// records with the ordinary cursor; it needs no mutation access.
type Dump struct {
	w        io.Writer
	withSize bool
	prefix   string
}

// DumpOption configures how we set up a dump.
type DumpOption func(*Dump)

// WithRecordSizes controls whether record footprints are printed after
// each title.  The default is on.
func WithRecordSizes(on bool) DumpOption {
	return func(d *Dump) {
		d.withSize = on
	}
}

// WithPrefix lets you set a string printed at the start of every line.
func WithPrefix(prefix string) DumpOption {
	return func(d *Dump) {
		d.prefix = prefix
	}
}

// NewDump creates a dump writing to w, configured with options.
func NewDump(w io.Writer, opts ...DumpOption) *Dump {
	d := &Dump{w: w, withSize: true}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Buffer dumps every top-level entity of b.
func (d *Dump) Buffer(b *Buffer) error {
	for e := range b.Entities() {
		if err := d.Entity(e); err != nil {
			return err
		}
	}

	return nil
}

// Entity dumps one entity, its metadata, and its nested records.
func (d *Dump) Entity(e Entity) error {
	var title string

	switch e.Type() {
	case ItemNode:
		title = "NODE"
	case ItemWay:
		title = "WAY"
	case ItemRelation:
		title = "RELATION"
	default:
		return corruptf(e.off, "unknown record discriminant 0x%02x", byte(e.Type()))
	}

	if err := d.title(title, e.buf.outerEnd(e.off)-e.off); err != nil {
		return err
	}

	visible := "no"
	if e.Visible() {
		visible = "yes"
	}

	_, err := fmt.Fprintf(d.w,
		"%[1]s  id=%[2]d\n%[1]s  version=%[3]d\n%[1]s  uid=%[4]d\n%[1]s  user=|%[5]s|\n%[1]s  changeset=%[6]d\n%[1]s  timestamp=%[7]s\n%[1]s  visible=%[8]s\n",
		d.prefix, e.ID(), e.Version(), e.UID(), e.User(), e.Changeset(),
		e.Timestamp().UTC().Format(TimestampLayout), visible)
	if err != nil {
		return err
	}

	if e.Type() == ItemNode {
		loc := e.Location()
		if _, err := fmt.Fprintf(d.w, "%[1]s  lon=%.7[2]f\n%[1]s  lat=%.7[3]f\n",
			d.prefix, float64(loc.Lon()), float64(loc.Lat())); err != nil {
			return err
		}
	}

	sub := d.indented("  ")

	c := e.Items()
	for c.Scan() {
		if err := sub.record(c.Record()); err != nil {
			return err
		}
	}

	return c.Err()
}

func (d *Dump) record(r Record) error {
	switch r.Type() {
	case ItemNode, ItemWay, ItemRelation:
		e, _ := r.Entity()

		return d.Entity(e)
	case ItemTagList:
		tl, _ := r.TagList()

		return d.tags(tl, r.Size())
	case ItemWayNodeList:
		wnl, _ := r.WayNodeList()

		return d.wayNodes(wnl, r.Size())
	case ItemMemberList:
		ml, _ := r.MemberList()

		return d.members(ml, r.Size())
	default:
		return corruptf(r.off, "unknown record discriminant 0x%02x", byte(r.Type()))
	}
}

func (d *Dump) tags(tl TagList, size int) error {
	if err := d.title("TAGS", size); err != nil {
		return err
	}

	for t := range tl.All() {
		if _, err := fmt.Fprintf(d.w, "%s  k=|%s| v=|%s|\n", d.prefix, t.Key, t.Value); err != nil {
			return err
		}
	}

	return nil
}

func (d *Dump) wayNodes(wnl WayNodeList, size int) error {
	if err := d.title("NODES", size); err != nil {
		return err
	}

	for wn := range wnl.All() {
		if _, err := fmt.Fprintf(d.w, "%s  ref=%d", d.prefix, wn.Ref); err != nil {
			return err
		}

		if wn.Location.Defined() {
			if _, err := fmt.Fprintf(d.w, " pos=%s", wn.Location); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(d.w); err != nil {
			return err
		}
	}

	return nil
}

func (d *Dump) members(ml MemberList, size int) error {
	if err := d.title("MEMBERS", size); err != nil {
		return err
	}

	for i, m := range ml.All() {
		_, err := fmt.Fprintf(d.w, "%s  type=%s ref=%d role=|%s|\n", d.prefix, m.Type, m.Ref, m.Role)
		if err != nil {
			return err
		}

		if target, ok := ml.Resolved(i); ok {
			if err := d.indented("  | ").Entity(target); err != nil {
				return err
			}
		}
	}

	return nil
}

func (d *Dump) title(title string, size int) error {
	if d.withSize {
		_, err := fmt.Fprintf(d.w, "%s%s: [%d]\n", d.prefix, title, size)

		return err
	}

	_, err := fmt.Fprintf(d.w, "%s%s:\n", d.prefix, title)

	return err
}

func (d *Dump) indented(by string) *Dump {
	return &Dump{w: d.w, withSize: d.withSize, prefix: d.prefix + by}
}
