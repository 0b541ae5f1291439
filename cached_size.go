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
	"sync/atomic"
)

// CachedSize remembers the encoded length computed by the latest size pass
// over its owner, so the write pass that follows can frame nested values
// without recomputing them.
//
// A CachedSize is not part of its owner's identity. Equal always reports
// true, and owners must leave it out of their own equality and hashing.
// The zero value is ready to use.
type CachedSize struct {
	size atomic.Uint32
}

func NewCachedSize() *CachedSize {
	return &CachedSize{}
}

func (c *CachedSize) Get() uint32 {
	return c.size.Load()
}

func (c *CachedSize) Set(size uint32) {
	c.size.Store(size)
}

// Clone returns an independent cell holding the current size.
func (c *CachedSize) Clone() *CachedSize {
	clone := &CachedSize{}
	clone.Set(c.Get())
	return clone
}

func (*CachedSize) Equal(*CachedSize) bool {
	return true
}
