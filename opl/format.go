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
	"strconv"
	"strings"

	"m4o.io/osmbuf"
)

// formatEntity renders one entity as an OPL line, without the trailing
// newline.
func formatEntity(e osmbuf.Entity) string {
	var b strings.Builder

	switch e.Type() {
	case osmbuf.ItemNode:
		b.WriteByte('n')
	case osmbuf.ItemWay:
		b.WriteByte('w')
	case osmbuf.ItemRelation:
		b.WriteByte('r')
	}

	b.WriteString(strconv.FormatInt(e.ID(), 10))

	b.WriteString(" v")
	b.WriteString(strconv.FormatUint(uint64(e.Version()), 10))

	if e.Visible() {
		b.WriteString(" dV")
	} else {
		b.WriteString(" dD")
	}

	b.WriteString(" c")
	b.WriteString(strconv.FormatInt(e.Changeset(), 10))

	b.WriteString(" t")
	b.WriteString(e.Timestamp().UTC().Format(osmbuf.TimestampLayout))

	b.WriteString(" i")
	b.WriteString(strconv.FormatUint(uint64(e.UID()), 10))

	b.WriteString(" u")
	b.WriteString(escape(e.User()))

	if tags := e.Tags(); !tags.IsEmpty() {
		b.WriteString(" T")

		first := true
		for t := range tags.All() {
			if !first {
				b.WriteByte(',')
			}

			first = false

			b.WriteString(escape(t.Key))
			b.WriteByte('=')
			b.WriteString(escape(t.Value))
		}
	}

	switch e.Type() {
	case osmbuf.ItemNode:
		if loc := e.Location(); loc.Defined() {
			b.WriteString(" x")
			b.WriteString(strconv.FormatFloat(float64(loc.Lon()), 'f', -1, 64))
			b.WriteString(" y")
			b.WriteString(strconv.FormatFloat(float64(loc.Lat()), 'f', -1, 64))
		}
	case osmbuf.ItemWay:
		if wnl := e.WayNodes(); !wnl.IsEmpty() {
			b.WriteString(" N")

			first := true
			for wn := range wnl.All() {
				if !first {
					b.WriteByte(',')
				}

				first = false

				b.WriteByte('n')
				b.WriteString(strconv.FormatInt(wn.Ref, 10))
			}
		}
	case osmbuf.ItemRelation:
		if ml := e.Members(); !ml.IsEmpty() {
			b.WriteString(" M")

			for i, m := range ml.All() {
				if i > 0 {
					b.WriteByte(',')
				}

				switch m.Type {
				case osmbuf.ItemNode:
					b.WriteByte('n')
				case osmbuf.ItemWay:
					b.WriteByte('w')
				case osmbuf.ItemRelation:
					b.WriteByte('r')
				}

				b.WriteString(strconv.FormatInt(m.Ref, 10))
				b.WriteByte('@')
				b.WriteString(escape(m.Role))
			}
		}
	}

	return b.String()
}
