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
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmbuf"
)

func parseInto(t *testing.T, s string) osmbuf.Entity {
	t.Helper()

	l, err := parseLine(s)
	assert.NoError(t, err)

	buf := osmbuf.NewBuffer()
	assert.NoError(t, l.appendTo(buf))
	assert.Equal(t, 1, buf.Count())

	return buf.At(0)
}

func TestParseNodeLine(t *testing.T) {
	e := parseInto(t, "n1 v2 dV c100 t2020-01-01T00:00:00Z i7 umapper Thighway=residential x8.8 y53.1")

	assert.Equal(t, osmbuf.ItemNode, e.Type())
	assert.Equal(t, int64(1), e.ID())
	assert.Equal(t, uint32(2), e.Version())
	assert.True(t, e.Visible())
	assert.Equal(t, int64(100), e.Changeset())
	assert.Equal(t, "2020-01-01T00:00:00Z", e.Timestamp().Format(osmbuf.TimestampLayout))
	assert.Equal(t, uint32(7), e.UID())
	assert.Equal(t, "mapper", e.User())

	v, ok := e.Tags().Get("highway")
	assert.True(t, ok)
	assert.Equal(t, "residential", v)

	loc := e.Location()
	assert.True(t, loc.Defined())
	assert.True(t, loc.Lon().EqualWithin(8.8, osmbuf.E7))
	assert.True(t, loc.Lat().EqualWithin(53.1, osmbuf.E7))
}

func TestParseWayLine(t *testing.T) {
	e := parseInto(t, "w42 v3 dV c100 t2020-01-01T00:00:00Z i7 umapper Thighway=residential Nn10,n11,n12")

	assert.Equal(t, osmbuf.ItemWay, e.Type())
	assert.Equal(t, int64(42), e.ID())
	assert.Equal(t, []int64{10, 11, 12}, e.WayNodes().Refs())
}

func TestParseRelationLine(t *testing.T) {
	e := parseInto(t, "r9 v1 dD c5 t2020-01-01T00:00:00Z i0 u Mw42@outer,n1@")

	assert.Equal(t, osmbuf.ItemRelation, e.Type())
	assert.False(t, e.Visible())
	assert.True(t, e.Anonymous())
	assert.Equal(t, "", e.User())

	var members []osmbuf.Member
	for _, m := range e.Members().All() {
		members = append(members, m)
	}

	assert.Equal(t, []osmbuf.Member{
		{Type: osmbuf.ItemWay, Ref: 42, Role: "outer"},
		{Type: osmbuf.ItemNode, Ref: 1, Role: ""},
	}, members)
}

func TestParseMinimalLine(t *testing.T) {
	e := parseInto(t, "n17")

	assert.Equal(t, int64(17), e.ID())
	assert.Zero(t, e.Version())
	assert.False(t, e.Location().Defined())
	assert.True(t, e.Tags().IsEmpty())
}

func TestParseSkipsUnknownFields(t *testing.T) {
	e := parseInto(t, "n1 v2 q42")

	assert.Equal(t, uint32(2), e.Version())
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"x1 v1",
		"n1 dX",
		"n1 Thighway",
		"n1 Nw10",
		"w1 Nn10,w11",
		"r1 Mw42outer",
		"r1 Mx42@outer",
		"n1 uhalf%20",
	} {
		_, err := parseLine(s)
		assert.ErrorIs(t, err, ErrSyntax, "%q", s)
	}
}

func TestParseMalformedAttribute(t *testing.T) {
	l, err := parseLine("n1 vbogus")
	assert.NoError(t, err, "attribute values are parsed on apply, not on split")

	buf := osmbuf.NewBuffer()
	assert.ErrorIs(t, l.appendTo(buf), osmbuf.ErrMalformedValue)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "plain", escape("plain"))
	assert.Equal(t, "hello%20%world", escape("hello world"))
	assert.Equal(t, "100%25%", escape("100%"))
	assert.Equal(t, "k%3d%v", escape("k=v"))
	assert.Equal(t, "a%2c%b%40%c", escape("a,b@c"))
}

func TestUnescape(t *testing.T) {
	for _, s := range []string{"plain", "hello world", "100%", "k=v", "a,b@c", "snow☃man"} {
		got, err := unescape(escape(s))
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := unescape("bad%2")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = unescape("bad%zz%")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestFormatRoundTrip(t *testing.T) {
	for _, s := range []string{
		"n1 v2 dV c100 t2020-01-01T00:00:00Z i7 umapper Thighway=residential x8.8 y53.1",
		"w42 v3 dV c100 t2020-01-01T00:00:00Z i7 umapper Thighway=residential Nn10,n11,n12",
		"r9 v1 dD c5 t2020-01-01T00:00:00Z i0 u Mw42@outer,n1@",
		"n2 v1 dV c1 t2024-10-28T14:21:30Z i3 uJ%20%Random%20%Mapper",
	} {
		assert.Equal(t, s, formatEntity(parseInto(t, s)))
	}
}
