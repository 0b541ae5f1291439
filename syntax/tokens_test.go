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

package syntax_test

import (
	"testing"

	"github.com/nhatquangsin/steit/internal/testutil"
	"github.com/nhatquangsin/steit/syntax"
)

type strToken struct {
	kind    string
	content string
}

func tokenize(t *testing.T, src string) ([]strToken, error) {
	t.Helper()
	tokens, err := syntax.NewTokens([]byte(src))
	if err != nil {
		return nil, err
	}
	var got []strToken
	for {
		var token syntax.Token
		if err := tokens.Next(&token); err != nil {
			return got, err
		}
		if token.Kind == syntax.T_EOF {
			return got, nil
		}
		got = append(got, strToken{
			kind:    token.Kind.String(),
			content: src[:token.Len],
		})
		src = src[token.Len:]
	}
}

func TestTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want []strToken
	}{
		{"enum Shape {}", []strToken{
			{"IDENT", "enum"},
			{"SPACE", " "},
			{"IDENT", "Shape"},
			{"SPACE", " "},
			{"OPEN_CURL", "{"},
			{"CLOSE_CURL", "}"},
		}},
		{"@steit(tag = 0x1F)", []strToken{
			{"AT", "@"},
			{"IDENT", "steit"},
			{"OPEN_PAREN", "("},
			{"IDENT", "tag"},
			{"SPACE", " "},
			{"EQ", "="},
			{"SPACE", " "},
			{"HEX_INT_LIT", "0x1F"},
			{"CLOSE_PAREN", ")"},
		}},
		{"# note\r\nx", []strToken{
			{"COMMENT", "# note"},
			{"NEWLINE", "\r\n"},
			{"IDENT", "x"},
		}},
		{"a\u00A0 b", []strToken{
			{"IDENT", "a"},
			{"SPACE", "\u00A0 "},
			{"IDENT", "b"},
		}},
		{`"a\"b",`, []strToken{
			{"TEXT_LIT", `"a\"b"`},
			{"COMMA", ","},
		}},
		{"1_000 0b101 0o17 0d99 0", []strToken{
			{"INT_LIT", "1_000"},
			{"SPACE", " "},
			{"BIN_INT_LIT", "0b101"},
			{"SPACE", " "},
			{"OCT_INT_LIT", "0o17"},
			{"SPACE", " "},
			{"DEC_INT_LIT", "0d99"},
			{"SPACE", " "},
			{"INT_LIT", "0"},
		}},
		{"\t  .", []strToken{
			{"SPACE", "\t  "},
			{"DOT", "."},
		}},
		{"snake_case2\n", []strToken{
			{"IDENT", "snake_case2"},
			{"NEWLINE", "\n"},
		}},
	}
	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			t.Logf("source: %q", test.src)
			got, err := tokenize(t, test.src)
			testutil.AssertNoError(t, err)
			testutil.ExpectSliceEq(t, test.want, got)
		})
	}
}

func TestTokenErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		code uint32
		span syntax.Span
	}{
		{"ab\xff", 1001, syntax.NewSpan(2, 1)},
		{"x $", 1002, syntax.NewSpan(2, 1)},
		{"\r", 1003, syntax.NewSpan(0, 1)},
		{"\x01", 1003, syntax.NewSpan(0, 1)},
		{"012", 1005, syntax.NewSpan(0, 3)},
		{"12ab", 1005, syntax.NewSpan(0, 4)},
		{"1_", 1005, syntax.NewSpan(0, 2)},
		{"0x", 1005, syntax.NewSpan(0, 2)},
		{"0xG", 1005, syntax.NewSpan(0, 3)},
		{`"abc`, 1006, syntax.NewSpan(0, 4)},
		{"\"a\nb\"", 1007, syntax.NewSpan(2, 1)},
		{"\"a\r\nb\"", 1007, syntax.NewSpan(2, 2)},
		{"foo__bar", 1008, syntax.NewSpan(0, 8)},
		{"foo_", 1008, syntax.NewSpan(0, 4)},
	}
	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			t.Logf("source: %q", test.src)
			_, err := tokenize(t, test.src)
			testutil.ExpectSyntaxError(t, err, test.code, test.span)
		})
	}
}

func TestTokenKindStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind syntax.TokenKind
		want string
	}{
		{syntax.T_EOF, "EOF"},
		{syntax.T_SPACE, "SPACE"},
		{syntax.T_NEWLINE, "NEWLINE"},
		{syntax.T_COMMENT, "COMMENT"},
		{syntax.T_AT, "AT"},
		{syntax.T_COMMA, "COMMA"},
		{syntax.T_DOT, "DOT"},
		{syntax.T_EQ, "EQ"},
		{syntax.T_OPEN_CURL, "OPEN_CURL"},
		{syntax.T_CLOSE_CURL, "CLOSE_CURL"},
		{syntax.T_OPEN_PAREN, "OPEN_PAREN"},
		{syntax.T_CLOSE_PAREN, "CLOSE_PAREN"},
		{syntax.T_INT_LIT, "INT_LIT"},
		{syntax.T_BIN_INT_LIT, "BIN_INT_LIT"},
		{syntax.T_OCT_INT_LIT, "OCT_INT_LIT"},
		{syntax.T_DEC_INT_LIT, "DEC_INT_LIT"},
		{syntax.T_HEX_INT_LIT, "HEX_INT_LIT"},
		{syntax.T_TEXT_LIT, "TEXT_LIT"},
		{syntax.T_IDENT, "IDENT"},
		{syntax.TokenKind(255), "TokenKind(255)"},
	}
	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			testutil.ExpectEq(t, test.want, test.kind.String())
		})
	}
}
