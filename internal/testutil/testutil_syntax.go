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

package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nhatquangsin/steit/syntax"
)

// DumpTree renders a syntax tree one node per line, indented by depth.
// Trivia nodes are omitted. Leaf nodes are followed by their quoted source.
func DumpTree(node syntax.Node) string {
	var buf strings.Builder
	depth := 0
	syntax.Walk(node, func(node syntax.Node) bool {
		if node == nil {
			depth--
			return false
		}
		switch node.(type) {
		case *syntax.Space, *syntax.Newline, *syntax.Comment:
			return false
		}
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteString(nodeName(node))
		buf.WriteByte(' ')
		buf.WriteString(node.Span().String())
		if isLeaf(node) {
			fmt.Fprintf(&buf, " %q", syntax.Unparse(node))
		}
		buf.WriteByte('\n')
		depth++
		return true
	})
	return buf.String()
}

func isLeaf(node syntax.Node) bool {
	for range node.ChildNodes() {
		return false
	}
	switch node.(type) {
	case *syntax.Schema, *syntax.Enum, *syntax.Variant, *syntax.Decorator, *syntax.Meta:
		return false
	}
	return true
}

func nodeName(node syntax.Node) string {
	ty := strings.TrimPrefix(fmt.Sprintf("%T", node), "*syntax.")
	var nameBuf strings.Builder
	for ii, c := range ty {
		if c >= 'A' && c <= 'Z' {
			if ii > 0 {
				nameBuf.WriteRune('-')
			}
			nameBuf.WriteRune(c + ('a' - 'A'))
		} else {
			nameBuf.WriteRune(c)
		}
	}
	return nameBuf.String()
}

// ExpectSyntaxError checks that err is a *syntax.Error with the given code
// and span.
func ExpectSyntaxError(t *testing.T, err error, code uint32, span syntax.Span) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected syntax error, got: nil")
	}
	syntaxErr, ok := err.(*syntax.Error)
	if !ok {
		t.Fatalf("Expected *syntax.Error, got: %T (%v)", err, err)
	}
	ExpectEq(t, code, syntaxErr.Code())
	ExpectEq(t, span, syntaxErr.Span())
}
