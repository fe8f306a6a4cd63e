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

package osmbuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmbuf"
)

func TestDegreesAngle(t *testing.T) {
	assert.True(t, osmbuf.Angle(0.78539816).EqualWithin(osmbuf.Degrees(45.0).Angle(), osmbuf.E7))
}

func TestDegreesEx(t *testing.T) {
	d := osmbuf.Degrees(53.123456789)

	assert.Equal(t, int32(5312346), d.E5())
	assert.Equal(t, int32(53123457), d.E6())
	assert.Equal(t, int32(531234568), d.E7())
}

func TestDegreesParse(t *testing.T) {
	d, err := osmbuf.ParseDegrees("53.123450")
	if err != nil {
		t.Error(err)
	}

	assert.True(t, osmbuf.Degrees(53.123450).EqualWithin(d, osmbuf.E5))

	_, err = osmbuf.ParseDegrees("abc")
	if err == nil {
		t.Error("Parsing should have failed")
	}
}

func TestDegreesEqualWithin(t *testing.T) {
	assert.True(t, osmbuf.Degrees(53.123450).EqualWithin(osmbuf.Degrees(53.123454), osmbuf.E5))
	assert.False(t, osmbuf.Degrees(53.123450).EqualWithin(osmbuf.Degrees(53.123455), osmbuf.E5))
}

func TestDegreesString(t *testing.T) {
	assert.Equal(t, "53° 7' 24.42\"", osmbuf.Degrees(53.123450).String())
	assert.Equal(t, "-8° 30' 0\"", osmbuf.Degrees(-8.5).String())
}

func TestDegreesMarshalJSON(t *testing.T) {
	b, err := osmbuf.Degrees(53.1234500001).MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "53.12345", string(b))
}
