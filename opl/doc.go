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

// Package opl reads and writes the OPL "object per line" text format,
// filling osmbuf buffers on the way in and serializing them on the way
// out.  One line holds one entity:
//
//	n100 v3 dV c12 t2019-04-14T07:56:20Z i42 ujane Thighway=residential x9.1 y48.7
//	w200 v1 dV c12 t2019-04-14T07:56:20Z i42 ujane Nn100,n101
//	r300 v1 dV c12 t2019-04-14T07:56:20Z i42 ujane Mw200@outer
//
// Strings escape whitespace and the separator characters as %hex%
// sequences.  The decoder parses lines concurrently in batches, each
// batch into its own buffer, and hands completed read-only buffers to the
// caller in input order.
package opl
