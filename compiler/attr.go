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

package compiler

import (
	"github.com/nhatquangsin/steit/syntax"
)

// AttrValue is an accepted directive value and the span it came from.
type AttrValue[T any] struct {
	Value T
	span  syntax.Span
}

func (v AttrValue[T]) Span() syntax.Span {
	return v.span
}

// Attr holds at most one value for a named directive. The first Set wins;
// each later Set is reported as a duplicate.
type Attr[T any] struct {
	ctx   *Context
	name  string
	value AttrValue[T]
	isSet bool
}

func NewAttr[T any](ctx *Context, name string) *Attr[T] {
	return &Attr[T]{
		ctx:  ctx,
		name: name,
	}
}

func (a *Attr[T]) Name() string {
	return a.name
}

func (a *Attr[T]) Set(at Locatable, value T) {
	if a.isSet {
		a.ctx.RawError(errDuplicateAttr(a.name, at.Span()))
		return
	}
	a.value = AttrValue[T]{
		Value: value,
		span:  at.Span(),
	}
	a.isSet = true
}

func (a *Attr[T]) Value() (AttrValue[T], bool) {
	return a.value, a.isSet
}

func (a *Attr[T]) Get() (T, bool) {
	return a.value.Value, a.isSet
}

func (a *Attr[T]) GetWithSpan() (T, syntax.Span, bool) {
	return a.value.Value, a.value.span, a.isSet
}
