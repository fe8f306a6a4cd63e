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

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmbuf"
)

const sample = `n1 v1 dV c1 t2020-01-01T00:00:00Z i7 ualice x-0.5 y51.3
n2 v1 dV c1 t2020-01-01T00:00:00Z i7 ualice x0.3 y51.7
w10 v1 dV c1 t2020-01-01T00:00:00Z i7 ualice Nn1,n2
r20 v1 dV c1 t2020-01-01T00:00:00Z i7 ualice Mw10@outer
`

func TestRunInfo(t *testing.T) {
	i := runInfo(strings.NewReader(sample), 2)

	assert.Equal(t, int64(2), i.NodeCount)
	assert.Equal(t, int64(1), i.WayCount)
	assert.Equal(t, int64(1), i.RelationCount)
	assert.NotZero(t, i.PackedBytes)

	bbox := &osmbuf.BoundingBox{Top: 51.7, Left: -0.5, Bottom: 51.3, Right: 0.3}
	assert.True(t, i.BoundingBox.EqualWithin(bbox, osmbuf.E6))
}

func TestRunInfoWithoutNodes(t *testing.T) {
	i := runInfo(strings.NewReader("w10 v1 dV c1 t2020-01-01T00:00:00Z i7 ualice Nn1,n2\n"), 2)

	assert.Nil(t, i.BoundingBox, "no nodes means no bounding box")
	assert.Equal(t, int64(1), i.WayCount)
}

func TestRenderJSON(t *testing.T) {
	i := &info{
		BoundingBox:   &osmbuf.BoundingBox{Top: 51.7, Left: -0.5, Bottom: 51.3, Right: 0.3},
		NodeCount:     2,
		WayCount:      1,
		RelationCount: 1,
		PackedBytes:   4096,
	}

	// mock out to collect JSON output
	buf := bytes.NewBuffer(make([]byte, 8192))
	buf.Reset()

	saved := out

	defer func() { out = saved }()

	out = buf

	renderJSON(i)

	got := &info{}
	if err := json.Unmarshal(buf.Bytes(), got); err != nil {
		t.Fatalf("Unable to unmarshal json %v", err)
	}

	assert.True(t, got.BoundingBox.EqualWithin(i.BoundingBox, osmbuf.E6))
	assert.Equal(t, int64(2), got.NodeCount)
	assert.Equal(t, int64(1), got.WayCount)
	assert.Equal(t, int64(1), got.RelationCount)
	assert.Equal(t, int64(4096), got.PackedBytes)
}

func TestRenderText(t *testing.T) {
	i := &info{
		BoundingBox:   &osmbuf.BoundingBox{Top: 51.7, Left: -0.5, Bottom: 51.3, Right: 0.3},
		NodeCount:     2729006,
		WayCount:      459055,
		RelationCount: 12833,
		PackedBytes:   4096,
	}

	buf := bytes.NewBuffer(make([]byte, 8192))
	buf.Reset()

	saved := out

	defer func() { out = saved }()

	out = buf

	renderTxt(i)

	assert.Equal(t, `BoundingBox: [(51.7, -0.5) (51.3, 0.3)]
NodeCount: 2,729,006
WayCount: 459,055
RelationCount: 12,833
PackedBytes: 4.1 kB
`, buf.String())
}
