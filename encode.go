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
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/bits"

	"fortio.org/safecast"
)

// Serializer is implemented by every encodable node.
//
// ComputeSize recomputes the node's encoded length from its fields, storing
// it (and the lengths of nested nodes) in their CachedSize cells.
// SerializeCached writes the node, framing nested nodes with the lengths
// left behind by the immediately preceding ComputeSize.
type Serializer interface {
	ComputeSize() uint32
	CachedSize() uint32
	SerializeCached(w *Writer) error
}

type Writer struct {
	buf []byte
}

func NewWriter(capacity uint32) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) WriteUvarint(v uint64) {
	w.buf = binary.AppendUvarint(w.buf, v)
}

func (w *Writer) WriteKey(tag uint32, wireType WireType) error {
	key, err := Key(tag, wireType)
	if err != nil {
		return err
	}
	w.WriteUvarint(uint64(key))
	return nil
}

func (w *Writer) WriteSized(data []byte) error {
	size, err := safecast.Conv[uint32](len(data))
	if err != nil {
		return fmt.Errorf("steit: sized value of %d bytes is too large: %w", len(data), err)
	}
	w.WriteUvarint(uint64(size))
	w.buf = append(w.buf, data...)
	return nil
}

// SizeUvarint reports how many bytes WriteUvarint uses for v.
func SizeUvarint(v uint64) uint32 {
	if v == 0 {
		return 1
	}
	return uint32((bits.Len64(v) + 6) / 7)
}

func sizeKey(tag uint32) uint32 {
	return SizeUvarint(uint64(tag) << wireTypeBits)
}

func sizeOfLen(n int) uint32 {
	size, err := safecast.Conv[uint32](n)
	if err != nil {
		return math.MaxUint32
	}
	return size
}

func sizeSized(size uint32) uint32 {
	return SizeUvarint(uint64(size)) + size
}

// Encode runs a size pass followed by a write pass over s.
func Encode(s Serializer) ([]byte, error) {
	size := s.ComputeSize()
	w := NewWriter(size)
	if err := s.SerializeCached(w); err != nil {
		return nil, err
	}
	if got := sizeOfLen(w.Len()); got != size {
		return nil, errSizeMismatch(size, got)
	}
	return w.Bytes(), nil
}

func EncodeTo(s Serializer, out io.Writer) error {
	buf, err := Encode(s)
	if err != nil {
		return err
	}
	_, err = out.Write(buf)
	return err
}

func errSizeMismatch(want, got uint32) error {
	return fmt.Errorf("steit: size pass computed %d bytes, write pass produced %d", want, got)
}
