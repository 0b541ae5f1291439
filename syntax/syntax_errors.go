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
	"fmt"
	"math"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Error is a tokenizer (1000s) or parser (2000s) failure. Parsing stops at
// the first one.
type Error struct {
	code    uint32
	message string
	span    Span
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() Span {
	return err.span
}

func newError(code uint32, span Span, format string, args ...any) *Error {
	return &Error{
		code:    code,
		message: fmt.Sprintf(format, args...),
		span:    span,
	}
}

func clampLen(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return math.MaxUint32
	}
	return v
}

// found names a token the way diagnostics quote it.
func found(kind TokenKind, token string) string {
	switch kind {
	case T_EOF:
		return "end of input"
	case T_NEWLINE:
		return "newline"
	}
	return fmt.Sprintf("%q", token)
}

func errSourceTooLong(srcLen int) error {
	return newError(1000, Span{0, clampLen(srcLen)},
		"source is %d bytes, the limit is %d", srcLen, maxSrcLen)
}

func errInvalidUtf8(src []byte) error {
	off := 0
	for off < len(src) {
		r, size := utf8.DecodeRune(src[off:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		off += size
	}
	return newError(1001, Span{clampLen(off), 1}, "source contains invalid UTF-8")
}

func errUnexpectedCharacter(start uint32, r rune) error {
	return newError(1002, Span{start, uint32(utf8.RuneLen(r))},
		"unexpected character %q (U+%04X)", r, r)
}

func errForbiddenControlCharacter(start uint32, c byte) error {
	return newError(1003, Span{start, 1}, "control character U+%04X is not allowed", c)
}

func errTokenTooLong(start uint32, tokenLen int) error {
	return newError(1004, Span{start, clampLen(tokenLen)},
		"token is %d bytes, the limit is %d", tokenLen, maxTokenLen)
}

func errIntLitInvalid(start uint32, token []byte) error {
	return newError(1005, Span{start, clampLen(len(token))}, "invalid integer literal %q", token)
}

func errTextLitUnterminated(start uint32, tokenLen int) error {
	return newError(1006, Span{start, clampLen(tokenLen)}, "unterminated text literal")
}

func errTextLitContainsNewline(start, newlineLen uint32) error {
	return newError(1007, Span{start, newlineLen}, "newline in text literal")
}

func errIdentInvalid(start uint32, token []byte) error {
	return newError(1008, Span{start, clampLen(len(token))}, "invalid identifier %q", token)
}

var expectedSigils = map[TokenKind]struct {
	code  uint32
	sigil string
}{
	T_AT:          {2000, "@"},
	T_COMMA:       {2001, ","},
	T_DOT:         {2002, "."},
	T_EQ:          {2003, "="},
	T_OPEN_CURL:   {2004, "{"},
	T_CLOSE_CURL:  {2005, "}"},
	T_OPEN_PAREN:  {2006, "("},
	T_CLOSE_PAREN: {2007, ")"},
}

func errExpectedSigil(wantKind, gotKind TokenKind, gotToken string, span Span) error {
	want, ok := expectedSigils[wantKind]
	if !ok {
		panic(fmt.Sprintf("syntax: %s is not a sigil", wantKind))
	}
	return newError(want.code, span, "expected `%s`, found %s", want.sigil, found(gotKind, gotToken))
}

func errExpectedIdent(gotKind TokenKind, gotToken string, span Span) error {
	return newError(2012, span, "expected an identifier, found %s", found(gotKind, gotToken))
}

func errExpectedDeclaration(gotKind TokenKind, gotToken string, span Span) error {
	return newError(2015, span, "expected a declaration, found %s", found(gotKind, gotToken))
}

func errUnknownDeclaration(token string, span Span) error {
	return newError(2016, span, "unknown declaration `%s`, only `enum` is supported", token)
}

func errExpectedDirectiveValue(gotKind TokenKind, gotToken string, span Span) error {
	return newError(2019, span,
		"expected an integer, text or bool value, found %s", found(gotKind, gotToken))
}

func errIntLitTooPositive(token string, start uint32) error {
	return newError(2022, Span{start, clampLen(len(token))},
		"integer literal %s does not fit in 64 bits", token)
}

func errTextLitInvalid(start uint32, token string) error {
	return newError(2024, Span{start, clampLen(len(token))}, "invalid text literal %s", token)
}

func errExpectedEOF(gotKind TokenKind, gotToken string, span Span) error {
	return newError(2025, span, "expected end of input, found %s", found(gotKind, gotToken))
}
