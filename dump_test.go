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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpNode(t *testing.T) {
	buf := NewBuffer()

	n := buf.AppendNode(Meta{ID: 1, Version: 1, UID: 7}, "alice", NewLocation(8.8, 53.1))
	assert.NoError(t, buf.AppendTags(n, Tag{Key: "amenity", Value: "pub"}))

	var out strings.Builder
	assert.NoError(t, NewDump(&out, WithRecordSizes(false)).Buffer(buf))

	want := `NODE:
  id=1
  version=1
  uid=7
  user=|alice|
  changeset=0
  timestamp=1970-01-01T00:00:00Z
  visible=yes
  lon=8.8000000
  lat=53.1000000
  TAGS:
    k=|amenity| v=|pub|
`
	assert.Equal(t, want, out.String())
}

func TestDumpRecordSizes(t *testing.T) {
	buf := NewBuffer()

	n := buf.AppendNode(Meta{ID: 1, Version: 1, UID: 7}, "alice", NewLocation(8.8, 53.1))
	assert.NoError(t, buf.AppendTags(n, Tag{Key: "amenity", Value: "pub"}))

	var out strings.Builder
	assert.NoError(t, NewDump(&out).Buffer(buf))

	// the entity title carries the outer footprint, nested lists included
	assert.Contains(t, out.String(), "NODE: [80]")
	assert.Contains(t, out.String(), "  TAGS: [24]")
}

func TestDumpResolvedMember(t *testing.T) {
	buf := NewBuffer()

	way := buf.AppendWay(Meta{ID: 10, Version: 1}, "")

	r := buf.AppendRelation(Meta{ID: 2, Version: 1}, "")
	assert.NoError(t, buf.AppendMembers(r, Member{Type: ItemWay, Ref: 10, Role: "outer"}))
	assert.NoError(t, r.Members().SetResolved(0, way))

	var out strings.Builder
	assert.NoError(t, NewDump(&out, WithRecordSizes(false)).Entity(r))

	assert.Contains(t, out.String(), "RELATION:")
	assert.Contains(t, out.String(), "type=way ref=10 role=|outer|")
	assert.Contains(t, out.String(), "    | WAY:")
	assert.Contains(t, out.String(), "    |   id=10")
}

func TestDumpPrefix(t *testing.T) {
	buf := NewBuffer()
	buf.AppendWay(Meta{ID: 1}, "")

	var out strings.Builder
	assert.NoError(t, NewDump(&out, WithRecordSizes(false), WithPrefix("> ")).Buffer(buf))

	for _, line := range strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, "> "), line)
	}
}
