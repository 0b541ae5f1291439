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

package steittext

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nhatquangsin/steit/compiler"
)

// Encode renders a compiled schema as indented text, one block per enum
// and one line per variant.
func Encode(schema *compiler.Schema) string {
	var buf strings.Builder
	EncodeTo(schema, &buf)
	return buf.String()
}

func EncodeTo(schema *compiler.Schema, w io.Writer) error {
	e := encoder{w: w}
	for ii, enum := range schema.Enums() {
		if e.err != nil {
			break
		}
		if ii > 0 {
			e.line("")
		}
		e.visitEnum(enum)
	}
	return e.err
}

type encoder struct {
	w      io.Writer
	indent int
	err    error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	if indent := strings.Repeat("\t", e.indent); indent != "" && s != "" {
		if _, err := io.WriteString(e.w, indent); err != nil {
			e.err = err
			return
		}
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
		return
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		e.err = err
		return
	}
}

func (e *encoder) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *encoder) visitEnum(enum *compiler.Enum) {
	e.linef("enum %s {", enum.Name())
	e.indent += 1
	for _, variant := range enum.Variants() {
		e.visitVariant(enum, variant)
	}
	e.indent -= 1
	e.line("}")
}

func (e *encoder) visitVariant(enum *compiler.Enum, variant *compiler.Variant) {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s = %d", variant.Name(), variant.Tag())
	if enum.Default() == variant {
		buf.WriteString(" default")
	}
	fmt.Fprintf(&buf, " snake=%s ctor=%s ref=%s",
		strconv.Quote(variant.SnakeCaseName()),
		strconv.Quote(variant.CtorName()),
		strconv.Quote(enum.Name()+variant.Qual()),
	)
	e.line(buf.String())
}
