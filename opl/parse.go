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
	"errors"
	"fmt"
	"strings"

	"m4o.io/osmbuf"
)

// ErrSyntax reports an OPL line that cannot be parsed.
var ErrSyntax = errors.New("opl: syntax error")

func syntaxf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

// line is one parsed OPL line, attributes still textual so that applying
// them runs through the entity attribute dispatch.
type line struct {
	kind osmbuf.ItemType

	id        string
	version   string
	visible   string
	changeset string
	timestamp string
	uid       string
	user      string

	lon, lat string

	tags    []osmbuf.Tag
	nodes   []osmbuf.WayNode
	members []osmbuf.Member
}

// parseLine splits one OPL line into its fields.
func parseLine(s string) (*line, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, syntaxf("empty line")
	}

	l := &line{}

	switch fields[0][0] {
	case 'n':
		l.kind = osmbuf.ItemNode
	case 'w':
		l.kind = osmbuf.ItemWay
	case 'r':
		l.kind = osmbuf.ItemRelation
	default:
		return nil, syntaxf("unknown entity kind %q", fields[0])
	}

	l.id = fields[0][1:]

	for _, f := range fields[1:] {
		if err := l.parseField(f); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func (l *line) parseField(f string) error {
	value := f[1:]

	switch f[0] {
	case 'v':
		l.version = value
	case 'd':
		switch value {
		case "V":
			l.visible = "true"
		case "D":
			l.visible = "false"
		default:
			return syntaxf("unknown deleted flag %q", f)
		}
	case 'c':
		l.changeset = value
	case 't':
		l.timestamp = value
	case 'i':
		l.uid = value
	case 'u':
		user, err := unescape(value)
		if err != nil {
			return err
		}

		l.user = user
	case 'T':
		return l.parseTags(value)
	case 'x':
		l.lon = value
	case 'y':
		l.lat = value
	case 'N':
		return l.parseWayNodes(value)
	case 'M':
		return l.parseMembers(value)
	default:
		// Unknown fields are skipped so readers tolerate format skew.
	}

	return nil
}

func (l *line) parseTags(value string) error {
	if value == "" {
		return nil
	}

	for _, kv := range strings.Split(value, ",") {
		k, v, found := strings.Cut(kv, "=")
		if !found {
			return syntaxf("tag %q has no value", kv)
		}

		key, err := unescape(k)
		if err != nil {
			return err
		}

		val, err := unescape(v)
		if err != nil {
			return err
		}

		l.tags = append(l.tags, osmbuf.Tag{Key: key, Value: val})
	}

	return nil
}

func (l *line) parseWayNodes(value string) error {
	if value == "" {
		return nil
	}

	for _, ref := range strings.Split(value, ",") {
		if len(ref) < 2 || ref[0] != 'n' {
			return syntaxf("way node %q is not a node reference", ref)
		}

		var id int64
		if _, err := fmt.Sscanf(ref[1:], "%d", &id); err != nil {
			return syntaxf("way node %q: %v", ref, err)
		}

		l.nodes = append(l.nodes, osmbuf.NewWayNode(id))
	}

	return nil
}

func (l *line) parseMembers(value string) error {
	if value == "" {
		return nil
	}

	for _, ms := range strings.Split(value, ",") {
		target, role, found := strings.Cut(ms, "@")
		if !found || len(target) < 2 {
			return syntaxf("member %q is not type, reference and role", ms)
		}

		var kind osmbuf.ItemType

		switch target[0] {
		case 'n':
			kind = osmbuf.ItemNode
		case 'w':
			kind = osmbuf.ItemWay
		case 'r':
			kind = osmbuf.ItemRelation
		default:
			return syntaxf("member %q has unknown target kind", ms)
		}

		var id int64
		if _, err := fmt.Sscanf(target[1:], "%d", &id); err != nil {
			return syntaxf("member %q: %v", ms, err)
		}

		unescaped, err := unescape(role)
		if err != nil {
			return err
		}

		l.members = append(l.members, osmbuf.Member{Type: kind, Ref: id, Role: unescaped})
	}

	return nil
}

// appendTo appends the parsed entity and its lists to buf.
func (l *line) appendTo(buf *osmbuf.Buffer) error {
	var e osmbuf.Entity

	switch l.kind {
	case osmbuf.ItemNode:
		loc := osmbuf.UndefinedLocation()

		if l.lon != "" && l.lat != "" {
			lon, err := osmbuf.ParseDegrees(l.lon)
			if err != nil {
				return syntaxf("longitude %q: %v", l.lon, err)
			}

			lat, err := osmbuf.ParseDegrees(l.lat)
			if err != nil {
				return syntaxf("latitude %q: %v", l.lat, err)
			}

			loc = osmbuf.NewLocation(lon, lat)
		}

		e = buf.AppendNode(osmbuf.Meta{}, l.user, loc)
	case osmbuf.ItemWay:
		e = buf.AppendWay(osmbuf.Meta{}, l.user)
	case osmbuf.ItemRelation:
		e = buf.AppendRelation(osmbuf.Meta{}, l.user)
	}

	for _, attr := range [][2]string{
		{"id", l.id},
		{"version", l.version},
		{"changeset", l.changeset},
		{"timestamp", l.timestamp},
		{"uid", l.uid},
		{"visible", l.visible},
	} {
		if attr[1] == "" {
			continue
		}

		if err := e.SetAttribute(attr[0], attr[1]); err != nil {
			return err
		}
	}

	if len(l.tags) > 0 {
		if err := buf.AppendTags(e, l.tags...); err != nil {
			return err
		}
	}

	if len(l.nodes) > 0 {
		if err := buf.AppendWayNodes(e, l.nodes...); err != nil {
			return err
		}
	}

	if len(l.members) > 0 {
		if err := buf.AppendMembers(e, l.members...); err != nil {
			return err
		}
	}

	return nil
}

const hexDigits = "0123456789abcdef"

func escapes(r rune) bool {
	return r <= ' ' || r == ',' || r == '=' || r == '@' || r == '%' || r == 0x7f
}

// escape encodes separator and whitespace characters as %hex% sequences.
func escape(s string) string {
	if !strings.ContainsFunc(s, escapes) {
		return s
	}

	var b strings.Builder

	for _, r := range s {
		if !escapes(r) {
			b.WriteRune(r)

			continue
		}

		b.WriteByte('%')

		started := false
		for shift := 28; shift >= 0; shift -= 4 {
			digit := (r >> shift) & 0xf
			if digit != 0 || started || shift == 0 {
				b.WriteByte(hexDigits[digit])
				started = true
			}
		}

		b.WriteByte('%')
	}

	return b.String()
}

// unescape decodes %hex% sequences.
func unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '%') {
		return s, nil
	}

	var b strings.Builder

	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])

			continue
		}

		end := strings.IndexByte(s[i+1:], '%')
		if end < 0 {
			return "", syntaxf("unterminated escape in %q", s)
		}

		var r rune
		if _, err := fmt.Sscanf(s[i+1:i+1+end], "%x", &r); err != nil {
			return "", syntaxf("bad escape in %q: %v", s, err)
		}

		b.WriteRune(r)
		i += end + 1
	}

	return b.String(), nil
}
