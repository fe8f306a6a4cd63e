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
	"math"
)

// undefinedCoordinate marks an absent coordinate.
const undefinedCoordinate int32 = math.MaxInt32

// Location is a position stored as ten-millionths of degrees, giving
// about centimeter precision in 8 bytes.  The zero value is the origin;
// use Defined to distinguish an absent position.
type Location struct {
	lon int32
	lat int32
}

// NewLocation creates a location from decimal degrees.
func NewLocation(lon, lat Degrees) Location {
	return Location{lon: lon.E7(), lat: lat.E7()}
}

// UndefinedLocation creates a location with no position.
func UndefinedLocation() Location {
	return Location{lon: undefinedCoordinate, lat: undefinedCoordinate}
}

// Defined reports whether the location carries a position.
func (l Location) Defined() bool {
	return l.lon != undefinedCoordinate && l.lat != undefinedCoordinate
}

// Lon returns the longitude in decimal degrees.
func (l Location) Lon() Degrees {
	return Degrees(l.lon) / TenMillionths
}

// Lat returns the latitude in decimal degrees.
func (l Location) Lat() Degrees {
	return Degrees(l.lat) / TenMillionths
}

func (l Location) String() string {
	if !l.Defined() {
		return "(undefined)"
	}

	return fmt.Sprintf("(%.7f, %.7f)", float64(l.Lon()), float64(l.Lat()))
}
