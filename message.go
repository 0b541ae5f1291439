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
	"bytes"
	"fmt"
	"hash/maphash"
)

type FieldKind uint8

const (
	FieldVarint FieldKind = iota
	FieldBytes
	FieldMessage
	FieldEnum
)

func (k FieldKind) String() string {
	switch k {
	case FieldVarint:
		return "varint"
	case FieldBytes:
		return "bytes"
	case FieldMessage:
		return "message"
	case FieldEnum:
		return "enum"
	default:
		return fmt.Sprintf("FieldKind(%d)", uint8(k))
	}
}

// Field is one tagged value of a Message. Only the member selected by Kind
// is meaningful.
type Field struct {
	Tag     uint32
	Kind    FieldKind
	Varint  uint64
	Bytes   []byte
	Message *Message
	Enum    *Enum
}

func VarintField(tag uint32, value uint64) Field {
	return Field{Tag: tag, Kind: FieldVarint, Varint: value}
}

func BytesField(tag uint32, value []byte) Field {
	return Field{Tag: tag, Kind: FieldBytes, Bytes: value}
}

func MessageField(tag uint32, value *Message) Field {
	return Field{Tag: tag, Kind: FieldMessage, Message: value}
}

func EnumField(tag uint32, value *Enum) Field {
	return Field{Tag: tag, Kind: FieldEnum, Enum: value}
}

func (f *Field) wireType() WireType {
	if f.Kind == FieldVarint {
		return WireTypeVarint
	}
	return WireTypeSized
}

func (f *Field) computeSize() uint32 {
	size := sizeKey(f.Tag)
	switch f.Kind {
	case FieldVarint:
		size += SizeUvarint(f.Varint)
	case FieldBytes:
		size += sizeSized(sizeOfLen(len(f.Bytes)))
	case FieldMessage:
		size += sizeSized(f.Message.ComputeSize())
	case FieldEnum:
		size += sizeSized(f.Enum.ComputeSize())
	}
	return size
}

func (f *Field) serializeCached(w *Writer) error {
	if err := w.WriteKey(f.Tag, f.wireType()); err != nil {
		return err
	}
	switch f.Kind {
	case FieldVarint:
		w.WriteUvarint(f.Varint)
		return nil
	case FieldBytes:
		return w.WriteSized(f.Bytes)
	case FieldMessage:
		w.WriteUvarint(uint64(f.Message.CachedSize()))
		return f.Message.SerializeCached(w)
	case FieldEnum:
		w.WriteUvarint(uint64(f.Enum.CachedSize()))
		return f.Enum.SerializeCached(w)
	default:
		return fmt.Errorf("steit: field %d has unknown kind %v", f.Tag, f.Kind)
	}
}

func (f *Field) equal(other *Field) bool {
	if f.Tag != other.Tag || f.Kind != other.Kind {
		return false
	}
	switch f.Kind {
	case FieldVarint:
		return f.Varint == other.Varint
	case FieldBytes:
		return bytes.Equal(f.Bytes, other.Bytes)
	case FieldMessage:
		return f.Message.Equal(other.Message)
	case FieldEnum:
		return f.Enum.Equal(other.Enum)
	}
	return true
}

func (f *Field) hashTo(h *maphash.Hash) {
	writeUint64(h, uint64(f.Tag))
	h.WriteByte(byte(f.Kind))
	switch f.Kind {
	case FieldVarint:
		writeUint64(h, f.Varint)
	case FieldBytes:
		writeUint64(h, uint64(len(f.Bytes)))
		h.Write(f.Bytes)
	case FieldMessage:
		f.Message.hashTo(h)
	case FieldEnum:
		f.Enum.hashTo(h)
	}
}

func (f Field) clone() Field {
	out := f
	if f.Bytes != nil {
		out.Bytes = bytes.Clone(f.Bytes)
	}
	if f.Message != nil {
		out.Message = f.Message.Clone()
	}
	if f.Enum != nil {
		out.Enum = f.Enum.Clone()
	}
	return out
}

// Message is a dynamically built encodable node: an ordered list of fields
// plus the cached length of their encoding.
type Message struct {
	Fields []Field

	cachedSize CachedSize
}

var _ Serializer = (*Message)(nil)

func NewMessage(fields ...Field) *Message {
	return &Message{Fields: fields}
}

func (m *Message) ComputeSize() uint32 {
	if m == nil {
		return 0
	}
	var size uint32
	for ii := range m.Fields {
		size += m.Fields[ii].computeSize()
	}
	m.cachedSize.Set(size)
	return size
}

func (m *Message) CachedSize() uint32 {
	if m == nil {
		return 0
	}
	return m.cachedSize.Get()
}

func (m *Message) SerializeCached(w *Writer) error {
	if m == nil {
		return nil
	}
	for ii := range m.Fields {
		if err := m.Fields[ii].serializeCached(w); err != nil {
			return err
		}
	}
	return nil
}

// Equal compares fields only. The cached size is deliberately left out.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.Fields) != len(other.Fields) {
		return false
	}
	for ii := range m.Fields {
		if !m.Fields[ii].equal(&other.Fields[ii]) {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal within one process.
func (m *Message) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	m.hashTo(&h)
	return h.Sum64()
}

func (m *Message) hashTo(h *maphash.Hash) {
	if m == nil {
		h.WriteByte(0)
		return
	}
	writeUint64(h, uint64(len(m.Fields)))
	for ii := range m.Fields {
		m.Fields[ii].hashTo(h)
	}
}

// Clone deep-copies m. The clone's cache starts from m's current size and
// is independent afterwards.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	out := &Message{}
	if m.Fields != nil {
		out.Fields = make([]Field, len(m.Fields))
		for ii := range m.Fields {
			out.Fields[ii] = m.Fields[ii].clone()
		}
	}
	out.cachedSize.Set(m.cachedSize.Get())
	return out
}

// Enum is an encoded sum-type value: the selected variant's tag followed by
// the variant body, framed as a sized field of its own.
type Enum struct {
	Variant uint32
	Body    *Message

	cachedSize CachedSize
}

var _ Serializer = (*Enum)(nil)

func NewEnum(variant uint32, body *Message) *Enum {
	return &Enum{Variant: variant, Body: body}
}

func (e *Enum) ComputeSize() uint32 {
	if e == nil {
		return 0
	}
	size := sizeKey(e.Variant) + sizeSized(e.Body.ComputeSize())
	e.cachedSize.Set(size)
	return size
}

func (e *Enum) CachedSize() uint32 {
	if e == nil {
		return 0
	}
	return e.cachedSize.Get()
}

func (e *Enum) SerializeCached(w *Writer) error {
	if e == nil {
		return nil
	}
	if err := w.WriteKey(e.Variant, WireTypeSized); err != nil {
		return err
	}
	w.WriteUvarint(uint64(e.Body.CachedSize()))
	return e.Body.SerializeCached(w)
}

func (e *Enum) Equal(other *Enum) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Variant == other.Variant && e.Body.Equal(other.Body)
}

func (e *Enum) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	e.hashTo(&h)
	return h.Sum64()
}

func (e *Enum) hashTo(h *maphash.Hash) {
	if e == nil {
		h.WriteByte(0)
		return
	}
	writeUint64(h, uint64(e.Variant))
	e.Body.hashTo(h)
}

func (e *Enum) Clone() *Enum {
	if e == nil {
		return nil
	}
	out := &Enum{Variant: e.Variant, Body: e.Body.Clone()}
	out.cachedSize.Set(e.cachedSize.Get())
	return out
}

var hashSeed = maphash.MakeSeed()

func writeUint64(h *maphash.Hash, v uint64) {
	var buf [8]byte
	for ii := range buf {
		buf[ii] = byte(v >> (8 * ii))
	}
	h.Write(buf[:])
}
