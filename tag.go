// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package steit

import (
	"fmt"
)

const (
	// TagLimit is the first tag value that does not fit beside the wire
	// type bits of a uint32 key.
	TagLimit uint32 = 1 << (32 - wireTypeBits)

	MaxTag uint32 = TagLimit - 1
)

var errReservedTag = fmt.Errorf("tag 0 is reserved")

// ValidateTag is the only place the tag boundary is enforced. Everything
// else, including the schema compiler, calls it.
func ValidateTag(tag uint32) error {
	if tag == 0 {
		return errReservedTag
	}
	if tag >= TagLimit {
		return fmt.Errorf("tag %d must be less than %d", tag, TagLimit)
	}
	return nil
}
