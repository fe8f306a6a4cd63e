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

// Package osmbuf holds large numbers of OpenStreetMap entities packed
// back-to-back in contiguous, growable memory buffers instead of as
// individually allocated objects.
//
// Every record in a Buffer starts with a small header carrying a type
// discriminant and a payload length, and is padded to a fixed alignment
// unit.  Entities (nodes, ways, relations) embed their tag lists, way node
// lists, and member lists as nested records encoded with the same scheme.
// A Cursor walks consecutive records purely by reading the embedded length
// fields, so the same walker serves top-level iteration and the nested
// records inside one entity.
//
// Entities, lists, and list elements are views addressed by (buffer,
// offset) pairs.  They stay valid across buffer growth but are only
// meaningful for the lifetime of their owning buffer: Reset invalidates
// every view taken before it.
//
// A Buffer has exactly one writer.  Once the producer stops appending, any
// number of goroutines may iterate it concurrently; handing the buffer
// over (for example on a channel) provides the required happens-before
// edge.
package osmbuf
