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

package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

type PrettyOpts struct {
	Color bool
}

type palette struct {
	err    *color.Color
	warn   *color.Color
	gutter *color.Color
	caret  *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WritePretty prints each diagnostic as a `path:line:col` header followed
// by the offending source line and a caret underline.
func WritePretty(w io.Writer, r *Report, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var buf bytes.Buffer
	for _, diag := range r.Diagnostics {
		writeDiagnostic(&buf, p, r.Source, diag)
	}
	if r.Truncated > 0 {
		fmt.Fprintf(&buf, "%s: %d more errors not shown\n", r.Source.Path, r.Truncated)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func writeDiagnostic(buf *bytes.Buffer, p *palette, source *Source, diag Diagnostic) {
	pos := source.Position(diag.Span.Start())

	severity := p.err
	if diag.Severity == SeverityWarning {
		severity = p.warn
	}
	label := diag.Severity.String()
	if code := diag.CodeString(); code != "" {
		label += " " + code
	}
	fmt.Fprintf(buf, "%s:%s: %s: %s\n", source.Path, pos, severity.Sprint(label), diag.Message)

	line := source.Line(pos.Line)
	gutter := fmt.Sprintf("%5d | ", pos.Line)
	blank := strings.Repeat(" ", 5) + " | "
	buf.WriteString(p.gutter.Sprint(gutter))
	buf.WriteString(line)
	buf.WriteByte('\n')

	prefix, underlined := splitLine(line, pos.Col, diag.Span.Len())
	buf.WriteString(p.gutter.Sprint(blank))
	buf.WriteString(indentFor(prefix))
	buf.WriteString(p.caret.Sprint(strings.Repeat("^", max(1, runewidth.StringWidth(underlined)))))
	buf.WriteByte('\n')
}

// splitLine returns the text before column col and the text covered by
// spanLen bytes from there, clipped to the end of the line.
func splitLine(line string, col uint32, spanLen uint32) (string, string) {
	start := len(line)
	n := uint32(1)
	for ii := range line {
		if n == col {
			start = ii
			break
		}
		n++
	}
	end := min(start+int(spanLen), len(line))
	return line[:start], line[start:end]
}

// indentFor blanks out prefix while keeping its tabs and display width, so
// a caret printed after it lines up with the source above.
func indentFor(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
