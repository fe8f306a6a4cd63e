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
	"errors"
	"fmt"
)

var (
	// ErrCorrupt reports a byte range whose packed records cannot be
	// walked: a record header does not fit, its discriminant is not a
	// known kind, or its padded footprint overruns the range.
	ErrCorrupt = errors.New("osmbuf: corrupt buffer")

	// ErrMalformedValue reports a textual attribute value that failed to
	// parse as the target field's type.  The field is left unchanged.
	ErrMalformedValue = errors.New("osmbuf: malformed attribute value")

	// ErrNotCurrent reports an attempt to append nested records to an
	// entity that is no longer the last record of its buffer.
	ErrNotCurrent = errors.New("osmbuf: entity is not the buffer's current record")

	// ErrDuplicateList reports an attempt to nest a second list record of
	// a kind the entity already carries.
	ErrDuplicateList = errors.New("osmbuf: entity already has a list of this kind")

	// ErrCrossBuffer reports a view that belongs to a different buffer
	// than the one being operated on.
	ErrCrossBuffer = errors.New("osmbuf: view belongs to a different buffer")
)

func corruptf(off int, format string, args ...any) error {
	return fmt.Errorf("%w: at offset %d: %s", ErrCorrupt, off, fmt.Sprintf(format, args...))
}

func malformedf(attr, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrMalformedValue, attr, value)
}
