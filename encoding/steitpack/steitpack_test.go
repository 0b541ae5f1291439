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

package steitpack_test

import (
	"bytes"
	"testing"

	"github.com/nhatquangsin/steit/compiler"
	"github.com/nhatquangsin/steit/encoding/steitpack"
	"github.com/nhatquangsin/steit/internal/testutil"
)

const src = `enum Shape {
    @steit(tag = 1) Circle
    @steit(tag = 2, default) Square
}
`

func compile(t *testing.T) *compiler.Schema {
	t.Helper()
	result := compiler.CompileSource([]byte(src))
	testutil.AssertEq(t, 0, len(result.Errors))
	return result.Schema()
}

func TestFromSchema(t *testing.T) {
	t.Parallel()

	packed := steitpack.FromSchema(compile(t))
	testutil.AssertEq(t, 1, len(packed.Enums))
	shape := packed.Enums[0]
	testutil.ExpectEq(t, "Shape", shape.Name)
	testutil.ExpectEq(t, "Square", shape.Default)
	testutil.ExpectSliceEq(t, []steitpack.Variant{
		{
			Name:          "Circle",
			Tag:           1,
			SnakeCaseName: "circle",
			CtorName:      "new_circle",
			Ref:           "Shape.Circle",
		},
		{
			Name:          "Square",
			Tag:           2,
			Default:       true,
			SnakeCaseName: "square",
			CtorName:      "new_square",
			Ref:           "Shape.Square",
		},
	}, shape.Variants)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	schema := compile(t)
	data, err := steitpack.Encode(schema)
	testutil.AssertNoError(t, err)

	var buf bytes.Buffer
	testutil.AssertNoError(t, steitpack.EncodeTo(schema, &buf))
	testutil.ExpectBytesEq(t, data, buf.Bytes())

	decoded, err := steitpack.Decode(data)
	testutil.AssertNoError(t, err)
	want := steitpack.FromSchema(schema)
	testutil.AssertEq(t, 1, len(decoded.Enums))
	testutil.ExpectEq(t, want.Enums[0].Default, decoded.Enums[0].Default)
	testutil.ExpectSliceEq(t, want.Enums[0].Variants, decoded.Enums[0].Variants)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	_, err := steitpack.Decode([]byte{0xc1})
	testutil.AssertError(t, err)
}
