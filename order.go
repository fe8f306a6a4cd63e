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
	"sort"
)

// Less orders entities by id and version.  The absolute value of the id
// is compared so that provisional entities with negative ids sort next to
// their positive counterparts of equal magnitude; all versions of one
// logical entity group together, lowest version first.
func Less(a, b Entity) bool {
	return (a.ID() == b.ID() && a.Version() < b.Version()) ||
		absID(a.ID()) < absID(b.ID())
}

// Sort sorts entities in place with Less.
func Sort(entities []Entity) {
	sort.Slice(entities, func(i, j int) bool {
		return Less(entities[i], entities[j])
	})
}

func absID(id int64) int64 {
	if id < 0 {
		return -id
	}

	return id
}
