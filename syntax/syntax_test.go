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
	"strings"
	"testing"

	"github.com/nhatquangsin/steit/internal/testutil"
	"github.com/nhatquangsin/steit/syntax"
)

const shapeSchema = `# Shapes.
@steit(strict)
enum Shape {
    @steit(tag = 1, default)
    Circle,
    @steit(tag = 0x2) Square
    Triangle # no tag
}
`

func spanOf(src, needle string) syntax.Span {
	start := strings.Index(src, needle)
	if start < 0 {
		panic("needle not found: " + needle)
	}
	return syntax.NewSpan(uint32(start), uint32(len(needle)))
}

func TestParseSchema(t *testing.T) {
	t.Parallel()

	schema, err := syntax.Parse([]byte(shapeSchema))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, shapeSchema, syntax.Unparse(schema))
	testutil.ExpectEq(t, syntax.NewSpan(0, uint32(len(shapeSchema))), schema.Span())

	enums := schema.Enums()
	testutil.AssertEq(t, 1, len(enums))
	enum := enums[0]
	testutil.ExpectEq(t, "Shape", enum.Name().Get())

	testutil.AssertEq(t, 1, len(enum.Decorators()))
	strict := enum.Decorators()[0]
	testutil.ExpectEq(t, "steit", strict.Name().Get())
	testutil.ExpectTrue(t, strict.HasArgs())
	testutil.AssertEq(t, 1, len(strict.Metas()))
	testutil.ExpectTrue(t, strict.Metas()[0].Is(syntax.MetaPath, "strict"))

	variants := enum.Variants()
	testutil.AssertEq(t, 3, len(variants))
	testutil.ExpectEq(t, "Circle", variants[0].Name().Get())
	testutil.ExpectEq(t, "Square", variants[1].Name().Get())
	testutil.ExpectEq(t, "Triangle", variants[2].Name().Get())

	testutil.ExpectEq(t,
		spanOf(shapeSchema, "@steit(tag = 1, default)\n    Circle"),
		variants[0].Span())
	testutil.ExpectEq(t, spanOf(shapeSchema, "@steit(tag = 0x2) Square"), variants[1].Span())
	testutil.ExpectEq(t, spanOf(shapeSchema, "Triangle"), variants[2].Span())
	testutil.ExpectEq(t, 0, len(variants[2].Decorators()))

	metas := variants[0].Decorators()[0].Metas()
	testutil.AssertEq(t, 2, len(metas))
	testutil.ExpectTrue(t, metas[0].Is(syntax.MetaNameValue, "tag"))
	testutil.ExpectEq(t, spanOf(shapeSchema, "tag = 1"), metas[0].Span())
	tag, ok := metas[0].Value().(*syntax.IntLit)
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, uint64(1), tag.GetUint64())
	testutil.ExpectTrue(t, metas[1].Is(syntax.MetaPath, "default"))
	testutil.ExpectEq(t, spanOf(shapeSchema, "default"), metas[1].Span())

	hexTag := variants[1].Decorators()[0].Metas()[0].Value().(*syntax.IntLit)
	value, ok := hexTag.GetUint32()
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, uint32(2), value)
}

func TestParseTree(t *testing.T) {
	t.Parallel()

	src := "enum E { @steit(tag = 1) A }"
	schema, err := syntax.Parse([]byte(src))
	testutil.AssertNoError(t, err)

	want := `schema 0+28
  enum 0+28
    keyword 0+4 "enum"
    ident 5+1 "E"
    sigil 7+1 "{"
    variant 9+17
      decorator 9+15
        sigil 9+1 "@"
        ident 10+5 "steit"
        sigil 15+1 "("
        meta 16+7
          ident 16+3 "tag"
          sigil 20+1 "="
          int-lit 22+1 "1"
        sigil 23+1 ")"
      ident 25+1 "A"
    sigil 27+1 "}"
`
	testutil.ExpectNoDiff(t, want, testutil.DumpTree(schema))
}

func TestParseMeta(t *testing.T) {
	t.Parallel()

	t.Run("path span excludes trailing space", func(t *testing.T) {
		decorator, err := syntax.ParseDecorator([]byte("@steit(default )"))
		testutil.AssertNoError(t, err)
		testutil.AssertEq(t, 1, len(decorator.Metas()))
		testutil.ExpectEq(t, syntax.NewSpan(7, 7), decorator.Metas()[0].Span())
	})

	t.Run("trailing comma", func(t *testing.T) {
		decorator, err := syntax.ParseDecorator([]byte("@steit(tag = 3, default = false,)"))
		testutil.AssertNoError(t, err)
		metas := decorator.Metas()
		testutil.AssertEq(t, 2, len(metas))
		testutil.ExpectTrue(t, metas[1].Is(syntax.MetaNameValue, "default"))
		boolLit, ok := metas[1].Value().(*syntax.BoolLit)
		testutil.AssertTrue(t, ok)
		testutil.ExpectFalse(t, boolLit.Get())
		testutil.ExpectEq(t, syntax.NewSpan(26, 5), boolLit.Span())
	})

	t.Run("nested list", func(t *testing.T) {
		decorator, err := syntax.ParseDecorator([]byte(`@steit(rename(all = "snake"))`))
		testutil.AssertNoError(t, err)
		meta := decorator.Metas()[0]
		testutil.ExpectEq(t, syntax.MetaList, meta.Kind())
		testutil.AssertEq(t, 1, len(meta.Metas()))
		text, ok := meta.Metas()[0].Value().(*syntax.TextLit)
		testutil.AssertTrue(t, ok)
		testutil.ExpectEq(t, "snake", text.Get())
	})

	t.Run("bare decorator", func(t *testing.T) {
		decorator, err := syntax.ParseDecorator([]byte("@deprecated"))
		testutil.AssertNoError(t, err)
		testutil.ExpectFalse(t, decorator.HasArgs())
		testutil.ExpectEq(t, 0, len(decorator.Metas()))
	})

	t.Run("multi-line arguments", func(t *testing.T) {
		src := "@steit(\n  tag = 4, # four\n  default\n)"
		decorator, err := syntax.ParseDecorator([]byte(src))
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, 2, len(decorator.Metas()))
		testutil.ExpectEq(t, src, syntax.Unparse(decorator))
	})
}

func TestParseVariant(t *testing.T) {
	t.Parallel()

	variant, err := syntax.ParseVariant([]byte("@steit(tag = 1) Foo # trailing"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "Foo", variant.Name().Get())
	testutil.ExpectEq(t, syntax.NewSpan(0, 19), variant.Span())

	_, err = syntax.ParseVariant([]byte("Foo Bar"))
	testutil.ExpectSyntaxError(t, err, 2025, syntax.NewSpan(4, 3))
}

func TestParseEnum(t *testing.T) {
	t.Parallel()

	enum, err := syntax.ParseEnum([]byte("enum Empty {}"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "Empty", enum.Name().Get())
	testutil.ExpectEq(t, 0, len(enum.Variants()))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		code uint32
		span syntax.Span
	}{
		{"struct Foo {}", 2016, syntax.NewSpan(0, 6)},
		{"enum Foo", 2004, syntax.NewSpan(8, 0)},
		{"enum Foo { A = 1 }", 2012, syntax.NewSpan(13, 1)},
		{"enum A {} }", 2015, syntax.NewSpan(10, 1)},
		{"@steit(tag 1)", 2001, syntax.NewSpan(11, 1)},
		{"@steit(tag = ) enum X {}", 2019, syntax.NewSpan(13, 1)},
		{"@steit(tag = 99999999999999999999999) enum X {}", 2022, syntax.NewSpan(13, 23)},
		{`@steit(name = "\q") enum X {}`, 2024, syntax.NewSpan(14, 4)},
		{"enum Foo { A", 2012, syntax.NewSpan(12, 0)},
	}
	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			t.Logf("source: %q", test.src)
			_, err := syntax.Parse([]byte(test.src))
			testutil.ExpectSyntaxError(t, err, test.code, test.span)
		})
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	schema, err := syntax.Parse([]byte(shapeSchema))
	testutil.AssertNoError(t, err)

	var names []string
	syntax.Walk(schema, func(node syntax.Node) bool {
		if variant, ok := node.(*syntax.Variant); ok {
			names = append(names, variant.Name().Get())
			return false
		}
		return true
	})
	testutil.ExpectSliceEq(t, []string{"Circle", "Square", "Triangle"}, names)
}
