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
	"fmt"

	"github.com/nhatquangsin/steit/syntax"
)

// diagnostic is the part shared by errors and warnings.
type diagnostic struct {
	code    uint32
	message string
	span    syntax.Span
}

// Code is zero for diagnostics recorded through Context.Error.
func (d *diagnostic) Code() uint32 {
	return d.code
}

func (d *diagnostic) Message() string {
	return d.message
}

func (d *diagnostic) Span() syntax.Span {
	return d.span
}

// format renders `<letter><code>: message`, or `<label>: message` when
// there is no code.
func (d *diagnostic) format(letter, label string) string {
	if d.code == 0 {
		return fmt.Sprintf("%s: %s", label, d.message)
	}
	return fmt.Sprintf("%s%d: %s", letter, d.code, d.message)
}

type Error struct {
	diagnostic
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return err.format("E", "error")
}

func newError(code uint32, span syntax.Span, format string, args ...any) *Error {
	return &Error{diagnostic{
		code:    code,
		message: fmt.Sprintf(format, args...),
		span:    span,
	}}
}

// errSyntax carries a parse failure into the compiler's diagnostic list,
// keeping its code and span.
func errSyntax(err error) *Error {
	var syntaxErr *syntax.Error
	if errors.As(err, &syntaxErr) {
		return newError(syntaxErr.Code(), syntaxErr.Span(), "%s", syntaxErr.Message())
	}
	return newError(0, syntax.Span{}, "%s", err.Error())
}

func errDuplicateAttr(name string, span syntax.Span) *Error {
	return newError(3000, span, "duplicate attribute `%s`", name)
}

func errMissingTag(span syntax.Span) *Error {
	return newError(3001, span, "expected a valid tag @steit(tag = …)")
}

func errInvalidTag(err error, span syntax.Span) *Error {
	return newError(3002, span, "%s", err.Error())
}

func errTagNotInt(span syntax.Span) *Error {
	return newError(3003, span, "expected an integer literal, as in `tag = 1`")
}

func errTagOverflow(value uint64, span syntax.Span) *Error {
	return newError(3004, span, "tag %d does not fit in 32 bits", value)
}

func errDefaultNotBool(span syntax.Span) *Error {
	return newError(3005, span, "expected `default` or `default = <bool>`")
}

func errUnknownDirective(name string, span syntax.Span) *Error {
	return newError(3006, span, "unknown directive `%s`", name)
}

func errDuplicateVariantName(enumName, name string, span syntax.Span) *Error {
	return newError(3010, span, "duplicate variant '%s' in enum '%s'", name, enumName)
}

func errDuplicateTag(enumName string, tag uint32, prevName, name string, span syntax.Span) *Error {
	return newError(3011, span,
		"tag %d of variant '%s' is already used by variant '%s' in enum '%s'",
		tag, name, prevName, enumName)
}

func errMultipleDefaults(enumName, prevName, name string, span syntax.Span) *Error {
	return newError(3012, span,
		"variant '%s' is marked default, but enum '%s' already defaults to '%s'",
		name, enumName, prevName)
}

func errEmptyEnum(enumName string, span syntax.Span) *Error {
	return newError(3013, span, "enum '%s' has no variants", enumName)
}

func errDuplicateEnumName(enumName string, span syntax.Span) *Error {
	return newError(3014, span, "duplicate enum '%s'", enumName)
}
