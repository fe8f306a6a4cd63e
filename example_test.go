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
	"fmt"
	"log"

	"m4o.io/osmbuf"
)

func Example() {
	buf := osmbuf.NewBuffer()

	way := buf.AppendWay(osmbuf.Meta{ID: 42, Version: 3, UID: 7}, "mapper")
	if err := buf.AppendTags(way, osmbuf.Tag{Key: "highway", Value: "residential"}); err != nil {
		log.Fatal(err)
	}

	if err := buf.AppendWayNodes(way,
		osmbuf.NewWayNode(10), osmbuf.NewWayNode(11), osmbuf.NewWayNode(12)); err != nil {
		log.Fatal(err)
	}

	for e := range buf.Entities() {
		highway, _ := e.Tags().Get("highway")
		fmt.Printf("%s %d is a %s with nodes %v\n", e.Type(), e.ID(), highway, e.WayNodes().Refs())
	}

	// Output:
	// way 42 is a residential with nodes [10 11 12]
}
