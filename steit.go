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

// Package steit holds the runtime pieces shared by the schema compiler and
// generated encoders: wire keys, the tag boundary, and the encoded-length
// cache attached to every encodable node.
package steit

type WireType uint8

const (
	WireTypeVarint WireType = 0
	WireTypeSized  WireType = 2
)

const wireTypeBits = 3

func (wt WireType) String() string {
	switch wt {
	case WireTypeVarint:
		return "varint"
	case WireTypeSized:
		return "sized"
	default:
		return "unknown"
	}
}

// Key packs a field tag and wire type into the uint32 key written before
// every field. The tag must pass ValidateTag.
func Key(tag uint32, wireType WireType) (uint32, error) {
	if err := ValidateTag(tag); err != nil {
		return 0, err
	}
	return tag<<wireTypeBits | uint32(wireType), nil
}

func SplitKey(key uint32) (uint32, WireType) {
	return key >> wireTypeBits, WireType(key & (1<<wireTypeBits - 1))
}
