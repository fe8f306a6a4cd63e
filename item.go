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

	"golang.org/x/exp/constraints"
)

// Alignment is the unit, in bytes, that every record footprint is rounded
// up to.  Iteration always advances by padded sizes; header length fields
// record the unpadded payload so trailing string data is read exactly.
const Alignment = 8

// headerSize is the fixed prefix every packed record carries: one
// discriminant byte, three reserved bytes, and a uint32 payload length.
// The length excludes the header itself and the trailing pad.
const headerSize = 8

// padded rounds n up to the next multiple of Alignment.  padded(n) >= n
// and padded is idempotent.
func padded[T constraints.Integer](n T) T {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// ItemType discriminates the kinds of packed records.
type ItemType uint8

// Record discriminants.  Entity kinds and list kinds appear as record
// headers in a buffer; element kinds never head a record of their own and
// exist for member targets and diagnostics.
const (
	ItemUnknown  ItemType = 0x00
	ItemNode     ItemType = 0x01
	ItemWay      ItemType = 0x02
	ItemRelation ItemType = 0x03

	ItemTagList     ItemType = 0x11
	ItemWayNodeList ItemType = 0x12
	ItemMemberList  ItemType = 0x13

	ItemTag     ItemType = 0x21
	ItemWayNode ItemType = 0x22
	ItemMember  ItemType = 0x23
)

func (t ItemType) String() string {
	switch t {
	case ItemNode:
		return "node"
	case ItemWay:
		return "way"
	case ItemRelation:
		return "relation"
	case ItemTagList:
		return "tag list"
	case ItemWayNodeList:
		return "way node list"
	case ItemMemberList:
		return "member list"
	case ItemTag:
		return "tag"
	case ItemWayNode:
		return "way node"
	case ItemMember:
		return "member"
	default:
		return "unknown"
	}
}

// IsEntity reports whether t is one of the entity kinds.
func (t ItemType) IsEntity() bool {
	return t == ItemNode || t == ItemWay || t == ItemRelation
}

// valid reports whether t may head a packed record.
func (t ItemType) valid() bool {
	switch t {
	case ItemNode, ItemWay, ItemRelation, ItemTagList, ItemWayNodeList, ItemMemberList:
		return true
	default:
		return false
	}
}

// putHeader writes a record header at the start of b.
func putHeader(b []byte, t ItemType, length uint32) {
	b[0] = byte(t)
	b[1], b[2], b[3] = 0, 0, 0
	binary.LittleEndian.PutUint32(b[4:headerSize], length)
}

func headerType(b []byte) ItemType {
	return ItemType(b[0])
}

func headerLength(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b[4:headerSize])
}
