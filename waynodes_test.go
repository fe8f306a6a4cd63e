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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWayNodeCachedLocations(t *testing.T) {
	buf := NewBuffer()
	w := buf.AppendWay(Meta{ID: 1}, "")

	assert.NoError(t, buf.AppendWayNodes(w,
		WayNode{Ref: 10, Location: NewLocation(8.8, 53.1)},
		NewWayNode(11),
	))

	wnl := w.WayNodes()
	assert.Equal(t, 2, wnl.Len())

	var nodes []WayNode
	for wn := range wnl.All() {
		nodes = append(nodes, wn)
	}

	assert.Equal(t, int64(10), nodes[0].Ref)
	assert.True(t, nodes[0].Location.Defined())
	assert.True(t, nodes[0].Location.Lon().EqualWithin(8.8, E7))

	assert.Equal(t, int64(11), nodes[1].Ref)
	assert.False(t, nodes[1].Location.Defined(), "an unresolved reference has no position")
}

func TestZeroValueWayNodeList(t *testing.T) {
	var wnl WayNodeList

	assert.True(t, wnl.IsEmpty())
	assert.Zero(t, wnl.Len())
	assert.Empty(t, wnl.Refs())
}
