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
	"math"
	"unicode/utf8"
)

const (
	maxSrcLen   = math.MaxInt32
	maxTokenLen = math.MaxUint16
)

type Token struct {
	Len  uint16
	Kind TokenKind
}

type TokenKind uint8

const (
	T_EOF TokenKind = iota

	T_SPACE
	T_NEWLINE
	T_COMMENT

	T_AT
	T_COMMA
	T_DOT
	T_EQ

	T_OPEN_CURL
	T_CLOSE_CURL
	T_OPEN_PAREN
	T_CLOSE_PAREN

	T_INT_LIT
	T_BIN_INT_LIT
	T_OCT_INT_LIT
	T_DEC_INT_LIT
	T_HEX_INT_LIT

	T_TEXT_LIT

	T_IDENT
)

var tokenKindNames = [...]string{
	T_EOF:         "EOF",
	T_SPACE:       "SPACE",
	T_NEWLINE:     "NEWLINE",
	T_COMMENT:     "COMMENT",
	T_AT:          "AT",
	T_COMMA:       "COMMA",
	T_DOT:         "DOT",
	T_EQ:          "EQ",
	T_OPEN_CURL:   "OPEN_CURL",
	T_CLOSE_CURL:  "CLOSE_CURL",
	T_OPEN_PAREN:  "OPEN_PAREN",
	T_CLOSE_PAREN: "CLOSE_PAREN",
	T_INT_LIT:     "INT_LIT",
	T_BIN_INT_LIT: "BIN_INT_LIT",
	T_OCT_INT_LIT: "OCT_INT_LIT",
	T_DEC_INT_LIT: "DEC_INT_LIT",
	T_HEX_INT_LIT: "HEX_INT_LIT",
	T_TEXT_LIT:    "TEXT_LIT",
	T_IDENT:       "IDENT",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

func (k TokenKind) isIntLit() bool {
	return k >= T_INT_LIT && k <= T_HEX_INT_LIT
}

// Single-byte tokens. T_EOF marks bytes that are not sigils.
var sigils = [utf8.RuneSelf]TokenKind{
	'@': T_AT,
	',': T_COMMA,
	'.': T_DOT,
	'=': T_EQ,
	'{': T_OPEN_CURL,
	'}': T_CLOSE_CURL,
	'(': T_OPEN_PAREN,
	')': T_CLOSE_PAREN,
}

// Radix prefixes that may follow a leading `0`.
var intPrefixes = map[byte]TokenKind{
	'b': T_BIN_INT_LIT,
	'o': T_OCT_INT_LIT,
	'd': T_DEC_INT_LIT,
	'x': T_HEX_INT_LIT,
}

var (
	nbsp   = []byte("\u00A0")
	crlf   = []byte("\r\n")
	dunder = []byte("__")
)

// Tokens splits a schema source into tokens. A Tokens value may be copied
// to look ahead without disturbing the original.
type Tokens struct {
	src    []byte
	offset uint32
}

func NewTokens(src []byte) (*Tokens, error) {
	switch {
	case len(src) > maxSrcLen:
		return nil, errSourceTooLong(len(src))
	case !utf8.Valid(src):
		return nil, errInvalidUtf8(src)
	}
	return &Tokens{src: src}, nil
}

func (t *Tokens) Next(token *Token) error {
	if len(t.src) == 0 {
		*token = Token{Kind: T_EOF}
		return nil
	}

	c := t.src[0]
	if c < utf8.RuneSelf && sigils[c] != T_EOF {
		return t.accept(token, sigils[c], 1)
	}
	switch {
	case c == ' ' || c == '\t' || bytes.HasPrefix(t.src, nbsp):
		return t.accept(token, T_SPACE, spaceLen(t.src))
	case c == '\n':
		return t.accept(token, T_NEWLINE, 1)
	case c == '\r':
		if !bytes.HasPrefix(t.src, crlf) {
			return errForbiddenControlCharacter(t.offset, c)
		}
		return t.accept(token, T_NEWLINE, len(crlf))
	case c == '#':
		end := bytes.IndexAny(t.src, "\r\n")
		if end < 0 {
			end = len(t.src)
		}
		return t.accept(token, T_COMMENT, end)
	case c == '"':
		return t.textLit(token)
	case isDecDigit(c):
		return t.intLit(token)
	case isLetter(c):
		return t.ident(token)
	}

	r, _ := utf8.DecodeRune(t.src)
	if r < 0x20 || r == 0x7F {
		return errForbiddenControlCharacter(t.offset, c)
	}
	return errUnexpectedCharacter(t.offset, r)
}

// accept emits the next n bytes as one token of the given kind.
func (t *Tokens) accept(token *Token, kind TokenKind, n int) error {
	if n > maxTokenLen {
		return errTokenTooLong(t.offset, n)
	}
	*token = Token{Len: uint16(n), Kind: kind}
	t.offset += uint32(n)
	t.src = t.src[n:]
	return nil
}

// intLit takes the whole word as one token, so that "12ab" is a single
// invalid literal and not a literal followed by an identifier.
func (t *Tokens) intLit(token *Token) error {
	src := t.src
	kind, bodyStart := T_INT_LIT, 0
	if len(src) > 1 && src[0] == '0' {
		if prefixed, ok := intPrefixes[src[1]]; ok {
			kind, bodyStart = prefixed, 2
		}
	}
	end := bodyStart + runLen(src[bodyStart:], isWordByte)
	word := src[:end]

	digits := 0
	for _, c := range word[bodyStart:] {
		if c == '_' {
			continue
		}
		if !isDigitOf(kind, c) {
			return errIntLitInvalid(t.offset, word)
		}
		digits++
	}
	// A leading zero is only allowed in a lone "0".
	leadingZero := kind == T_INT_LIT && src[0] == '0' && end > 1
	if digits == 0 || word[end-1] == '_' || leadingZero {
		return errIntLitInvalid(t.offset, word)
	}
	return t.accept(token, kind, end)
}

func (t *Tokens) textLit(token *Token) error {
	for ii := 1; ii < len(t.src); ii++ {
		c := t.src[ii]
		switch {
		case c == '\\':
			ii++
		case c == '"':
			return t.accept(token, T_TEXT_LIT, ii+1)
		case c == '\t':
		case c < 0x20 || c == 0x7F:
			off := t.offset + uint32(ii)
			if c == '\n' {
				return errTextLitContainsNewline(off, 1)
			}
			if bytes.HasPrefix(t.src[ii:], crlf) {
				return errTextLitContainsNewline(off, uint32(len(crlf)))
			}
			return errForbiddenControlCharacter(off, c)
		}
	}
	return errTextLitUnterminated(t.offset, len(t.src))
}

func (t *Tokens) ident(token *Token) error {
	word := t.src[:runLen(t.src, isWordByte)]
	if word[len(word)-1] == '_' || bytes.Contains(word, dunder) {
		return errIdentInvalid(t.offset, word)
	}
	return t.accept(token, T_IDENT, len(word))
}

func spaceLen(src []byte) int {
	n := 0
	for n < len(src) {
		switch {
		case src[n] == ' ' || src[n] == '\t':
			n++
		case bytes.HasPrefix(src[n:], nbsp):
			n += len(nbsp)
		default:
			return n
		}
	}
	return n
}

func runLen(src []byte, pred func(byte) bool) int {
	for ii, c := range src {
		if !pred(c) {
			return ii
		}
	}
	return len(src)
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDecDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isWordByte(c byte) bool {
	return c == '_' || isLetter(c) || isDecDigit(c)
}

func isDigitOf(kind TokenKind, c byte) bool {
	switch kind {
	case T_BIN_INT_LIT:
		return c == '0' || c == '1'
	case T_OCT_INT_LIT:
		return '0' <= c && c <= '7'
	case T_HEX_INT_LIT:
		lower := c | 0x20
		return isDecDigit(c) || ('a' <= lower && lower <= 'f')
	}
	return isDecDigit(c)
}
