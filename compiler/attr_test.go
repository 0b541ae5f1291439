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

package compiler_test

import (
	"testing"

	"github.com/nhatquangsin/steit/compiler"
	"github.com/nhatquangsin/steit/internal/testutil"
	"github.com/nhatquangsin/steit/syntax"
)

func TestAttr_Empty(t *testing.T) {
	t.Parallel()

	ctx := compiler.NewContext()
	defer ctx.Close()

	attr := compiler.NewAttr[uint32](ctx, "tag")
	testutil.ExpectEq(t, "tag", attr.Name())
	value, ok := attr.Get()
	testutil.ExpectFalse(t, ok)
	testutil.ExpectEq(t, uint32(0), value)
	_, ok = attr.Value()
	testutil.ExpectFalse(t, ok)
	testutil.ExpectEq(t, 0, len(ctx.Check()))
}

func TestAttr_FirstSetWins(t *testing.T) {
	t.Parallel()

	ctx := compiler.NewContext()
	defer ctx.Close()

	attr := compiler.NewAttr[int](ctx, "tag")
	for ii, value := range []int{7, 8, 9, 10} {
		attr.Set(syntax.NewSpan(uint32(ii*10), 1), value)
	}

	value, span, ok := attr.GetWithSpan()
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, 7, value)
	testutil.ExpectEq(t, syntax.NewSpan(0, 1), span)

	attrValue, ok := attr.Value()
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, 7, attrValue.Value)
	testutil.ExpectEq(t, syntax.NewSpan(0, 1), attrValue.Span())

	errs := ctx.Check()
	testutil.AssertEq(t, 3, len(errs))
	for ii, err := range errs {
		testutil.ExpectEq(t, uint32(3000), err.Code())
		testutil.ExpectEq(t, "duplicate attribute `tag`", err.Message())
		testutil.ExpectEq(t, syntax.NewSpan(uint32((ii+1)*10), 1), err.Span())
	}
}

func TestAttrValue_Locatable(t *testing.T) {
	t.Parallel()

	ctx := compiler.NewContext()
	defer ctx.Close()

	attr := compiler.NewAttr[bool](ctx, "default")
	attr.Set(syntax.NewSpan(5, 7), true)
	attrValue, _ := attr.Value()

	ctx.Error(attrValue, "conflicts with another default")
	errs := ctx.Check()
	testutil.AssertEq(t, 1, len(errs))
	testutil.ExpectEq(t, syntax.NewSpan(5, 7), errs[0].Span())
}
