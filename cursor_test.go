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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorUnknownDiscriminant(t *testing.T) {
	buf := NewBuffer()
	buf.AppendNode(Meta{ID: 1}, "", UndefinedLocation())

	buf.data[0] = 0x7f

	c := buf.Records()
	assert.False(t, c.Scan())
	assert.ErrorIs(t, c.Err(), ErrCorrupt)
}

func TestCursorPayloadOverrun(t *testing.T) {
	buf := NewBuffer()
	buf.AppendNode(Meta{ID: 1}, "", UndefinedLocation())

	binary.LittleEndian.PutUint32(buf.data[4:], uint32(buf.Len()))

	c := buf.Records()
	assert.False(t, c.Scan())
	assert.ErrorIs(t, c.Err(), ErrCorrupt)
}

func TestCursorTruncatedHeader(t *testing.T) {
	buf := NewBuffer()
	buf.AppendNode(Meta{ID: 1}, "", UndefinedLocation())

	c := newCursor(buf, 0, headerSize-1)
	assert.False(t, c.Scan())
	assert.ErrorIs(t, c.Err(), ErrCorrupt)
}

func TestCursorErrIsSticky(t *testing.T) {
	buf := NewBuffer()
	buf.AppendNode(Meta{ID: 1}, "", UndefinedLocation())
	buf.AppendNode(Meta{ID: 2}, "", UndefinedLocation())

	buf.data[0] = 0x7f

	c := buf.Records()
	assert.False(t, c.Scan())
	assert.False(t, c.Scan(), "a failed cursor stays failed")
	assert.ErrorIs(t, c.Err(), ErrCorrupt)
}

func TestCursorResetAndEqual(t *testing.T) {
	buf := NewBuffer()
	buf.AppendNode(Meta{ID: 1}, "", UndefinedLocation())
	buf.AppendNode(Meta{ID: 2}, "", UndefinedLocation())

	a := buf.Records()
	b := buf.Records()

	assert.True(t, a.Equal(b))

	assert.True(t, a.Scan())
	assert.False(t, a.Equal(b))

	assert.True(t, b.Scan())
	assert.True(t, a.Equal(b))

	assert.True(t, a.Scan())
	assert.False(t, a.Scan())
	assert.NoError(t, a.Err())

	a.Reset()
	assert.True(t, a.Scan())
	assert.Equal(t, 0, a.Offset())
}

func TestCursorEmptyRange(t *testing.T) {
	buf := NewBuffer()

	c := buf.Records()
	assert.False(t, c.Scan())
	assert.NoError(t, c.Err(), "an empty range is a clean termination")
}

func TestRecordNarrowing(t *testing.T) {
	buf := NewBuffer()

	w := buf.AppendWay(Meta{ID: 1}, "")
	assert.NoError(t, buf.AppendTags(w, Tag{Key: "k", Value: "v"}))

	c := buf.Records()

	assert.True(t, c.Scan())
	e, ok := c.Record().Entity()
	assert.True(t, ok)
	assert.Equal(t, int64(1), e.ID())

	_, ok = c.Record().TagList()
	assert.False(t, ok)

	assert.True(t, c.Scan())
	_, ok = c.Record().Entity()
	assert.False(t, ok)

	tl, ok := c.Record().TagList()
	assert.True(t, ok)

	v, ok := tl.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestRecordSizeIsPadded(t *testing.T) {
	buf := NewBuffer()
	buf.AppendNode(Meta{ID: 1}, "odd", UndefinedLocation())

	c := buf.Records()
	assert.True(t, c.Scan())

	r := c.Record()
	assert.Zero(t, r.Size()%Alignment)
	assert.GreaterOrEqual(t, r.Size(), headerSize+r.Len())
}
