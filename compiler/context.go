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
	"errors"

	"github.com/nhatquangsin/steit/syntax"
)

// ErrReported is returned in place of a construct whose diagnostic has
// already been recorded. Callers skip the construct and keep going.
var ErrReported = errors.New("compiler: diagnostic reported")

// Locatable is anything a diagnostic can be anchored to. Every syntax node
// qualifies, as does a bare syntax.Span.
type Locatable interface {
	Span() syntax.Span
}

// Context collects the diagnostics of one compilation pass.
//
// A Context must be drained with Check exactly once, and Close must be
// deferred right after NewContext:
//
//	ctx := compiler.NewContext()
//	defer ctx.Close()
//	...
//	errs := ctx.Check()
type Context struct {
	errors  []*Error
	checked bool
}

func NewContext() *Context {
	return &Context{}
}

// Error records message at the span of at and returns ErrReported.
func (ctx *Context) Error(at Locatable, message string) error {
	return ctx.RawError(newError(0, at.Span(), "%s", message))
}

// RawError records a pre-built diagnostic and returns ErrReported.
func (ctx *Context) RawError(err *Error) error {
	if ctx.checked {
		panic("compiler: diagnostic recorded after context was checked")
	}
	ctx.errors = append(ctx.errors, err)
	return ErrReported
}

// Len reports how many diagnostics have been recorded so far.
func (ctx *Context) Len() int {
	return len(ctx.errors)
}

// Check returns every recorded diagnostic in insertion order, or nil if
// there were none.
func (ctx *Context) Check() []*Error {
	if ctx.checked {
		panic("compiler: context checked twice")
	}
	ctx.checked = true
	errs := ctx.errors
	ctx.errors = nil
	return errs
}

// Close panics if the context was never checked. A checked context leaves
// any panic in flight alone.
func (ctx *Context) Close() {
	if ctx.checked {
		return
	}
	// An in-flight panic wins over the missing Check.
	if r := recover(); r != nil {
		panic(r)
	}
	panic("compiler: context dropped without checking for errors")
}
