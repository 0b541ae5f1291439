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

package syntax

import (
	"bytes"
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Span is a byte range of one source file.
type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s Span) Start() uint32 {
	return s.start
}

func (s Span) End() uint32 {
	return s.start + s.len
}

func (s Span) Len() uint32 {
	return s.len
}

// Span lets a bare Span stand in wherever a node is expected as a
// diagnostic anchor.
func (s Span) Span() Span {
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d+%d", s.start, s.len)
}

// Node is implemented only by the types of this package.
type Node interface {
	Span() Span
	ChildNodes() iter.Seq[Node]
	UnparseTo(buf *bytes.Buffer)

	children() []Node
}

func Unparse(node Node) string {
	var buf bytes.Buffer
	node.UnparseTo(&buf)
	return buf.String()
}

// Walk calls walkFn for node and, if it returns true, for each child in
// source order, followed by walkFn(nil) once the children are done.
func Walk(node Node, walkFn func(Node) bool) {
	if node == nil || !walkFn(node) {
		return
	}
	for _, child := range node.children() {
		Walk(child, walkFn)
	}
	walkFn(nil)
}

// leaf is the common part of nodes made from a single token.
type leaf struct {
	raw   string
	start uint32
}

func (n *leaf) Span() Span {
	return Span{n.start, uint32(len(n.raw))}
}

func (*leaf) ChildNodes() iter.Seq[Node] {
	return slices.Values([]Node(nil))
}

func (n *leaf) UnparseTo(buf *bytes.Buffer) {
	buf.WriteString(n.raw)
}

func (*leaf) children() []Node {
	return nil
}

// branch is the common part of nodes built from other nodes. Its child
// list includes trivia, so unparsing reproduces the source exactly.
type branch struct {
	span       Span
	childNodes []Node
}

func (n *branch) Span() Span {
	return n.span
}

func (n *branch) ChildNodes() iter.Seq[Node] {
	return slices.Values(n.childNodes)
}

func (n *branch) UnparseTo(buf *bytes.Buffer) {
	for _, child := range n.childNodes {
		child.UnparseTo(buf)
	}
}

func (n *branch) children() []Node {
	return n.childNodes
}

type Space struct{ leaf }

type Newline struct{ leaf }

type Comment struct{ leaf }

func (n *Comment) Text() string {
	return n.raw
}

func (n *Comment) IsDocComment() bool {
	return strings.HasPrefix(n.raw, "##")
}

type Sigil struct{ leaf }

type Keyword struct{ leaf }

type Ident struct{ leaf }

func (n *Ident) Get() string {
	return n.raw
}

type IntLit struct {
	leaf
	value uint64
}

var intLitPrefixLen = map[TokenKind]int{
	T_BIN_INT_LIT: 2,
	T_OCT_INT_LIT: 2,
	T_DEC_INT_LIT: 2,
	T_HEX_INT_LIT: 2,
}

var intLitBase = map[TokenKind]int{
	T_BIN_INT_LIT: 2,
	T_OCT_INT_LIT: 8,
	T_HEX_INT_LIT: 16,
}

func newIntLit(lit leaf, kind TokenKind) (*IntLit, error) {
	base, ok := intLitBase[kind]
	if !ok {
		base = 10
	}
	digits := strings.ReplaceAll(lit.raw[intLitPrefixLen[kind]:], "_", "")
	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, errIntLitTooPositive(lit.raw, lit.start)
	}
	return &IntLit{leaf: lit, value: value}, nil
}

func (n *IntLit) GetUint32() (uint32, bool) {
	if n.value > math.MaxUint32 {
		return 0, false
	}
	return uint32(n.value), true
}

func (n *IntLit) GetUint64() uint64 {
	return n.value
}

type TextLit struct {
	leaf
	value string
}

func newTextLit(lit leaf) (*TextLit, error) {
	value, err := strconv.Unquote(lit.raw)
	if err != nil {
		return nil, errTextLitInvalid(lit.start, lit.raw)
	}
	return &TextLit{leaf: lit, value: value}, nil
}

func (n *TextLit) Get() string {
	return n.value
}

// BoolLit is `true` or `false` in value position. Elsewhere both are
// plain identifiers.
type BoolLit struct {
	leaf
	value bool
}

func (n *BoolLit) Get() bool {
	return n.value
}

type Schema struct {
	branch
	enums []*Enum
}

func (n *Schema) Enums() []*Enum {
	return n.enums
}

type Enum struct {
	branch
	decorators []*Decorator
	name       *Ident
	variants   []*Variant
}

func (n *Enum) Decorators() []*Decorator {
	return n.decorators
}

func (n *Enum) Name() *Ident {
	return n.name
}

func (n *Enum) Variants() []*Variant {
	return n.variants
}

// Variant is one case of an enum. Its span covers the whole declaration,
// decorators included.
type Variant struct {
	branch
	decorators []*Decorator
	name       *Ident
}

func (n *Variant) Decorators() []*Decorator {
	return n.decorators
}

func (n *Variant) Name() *Ident {
	return n.name
}

// Decorator is an `@name` or `@name(meta, ...)` annotation.
type Decorator struct {
	branch
	name    *Ident
	hasArgs bool
	metas   []*Meta
}

func (n *Decorator) Name() *Ident {
	return n.name
}

func (n *Decorator) HasArgs() bool {
	return n.hasArgs
}

func (n *Decorator) Metas() []*Meta {
	return n.metas
}

type MetaKind uint8

const (
	// `name`
	MetaPath MetaKind = iota
	// `name = value`
	MetaNameValue
	// `name(meta, ...)`
	MetaList
)

var metaKindNames = [...]string{
	MetaPath:      "path",
	MetaNameValue: "name-value",
	MetaList:      "list",
}

func (k MetaKind) String() string {
	if int(k) < len(metaKindNames) {
		return metaKindNames[k]
	}
	return fmt.Sprintf("MetaKind(%d)", uint8(k))
}

// Meta is one directive inside a decorator's argument list.
type Meta struct {
	branch
	kind  MetaKind
	name  *Ident
	value Node
	metas []*Meta
}

func (n *Meta) Kind() MetaKind {
	return n.kind
}

func (n *Meta) Name() *Ident {
	return n.name
}

// Value is the literal of a MetaNameValue: *IntLit, *TextLit or *BoolLit.
func (n *Meta) Value() Node {
	return n.value
}

func (n *Meta) Metas() []*Meta {
	return n.metas
}

func (n *Meta) Is(kind MetaKind, name string) bool {
	return n.kind == kind && n.name != nil && n.name.raw == name
}
