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

// Package report prints compiler diagnostics for people and for tools.
package report

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/nhatquangsin/steit/compiler"
	"github.com/nhatquangsin/steit/syntax"
)

type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

type Diagnostic struct {
	Severity Severity
	Code     uint32
	Message  string
	Span     syntax.Span
}

// CodeString is "E<code>" for errors, "W<code>" for warnings, and empty
// for uncatalogued diagnostics.
func (d Diagnostic) CodeString() string {
	if d.Code == 0 {
		return ""
	}
	if d.Severity == SeverityWarning {
		return fmt.Sprintf("W%d", d.Code)
	}
	return fmt.Sprintf("E%d", d.Code)
}

// Report is everything printed for one source file.
type Report struct {
	Source      *Source
	Diagnostics []Diagnostic
	Truncated   int
}

// New collects the errors of result, then its warnings.
func New(source *Source, result *compiler.CompileResult) *Report {
	diags := make([]Diagnostic, 0, len(result.Errors)+len(result.Warnings))
	for _, err := range result.Errors {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Code:     err.Code(),
			Message:  err.Message(),
			Span:     err.Span(),
		})
	}
	for _, warning := range result.Warnings {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     warning.Code(),
			Message:  warning.Message(),
			Span:     warning.Span(),
		})
	}
	return &Report{
		Source:      source,
		Diagnostics: diags,
		Truncated:   result.Truncated,
	}
}

func (r *Report) Count(severity Severity) int {
	n := 0
	for _, diag := range r.Diagnostics {
		if diag.Severity == severity {
			n++
		}
	}
	return n
}

// Source maps byte offsets of one file to lines and columns.
type Source struct {
	Path  string
	src   []byte
	lines []uint32
}

func NewSource(path string, src []byte) *Source {
	lines := []uint32{0}
	for ii, c := range src {
		if c == '\n' {
			lines = append(lines, uint32(ii+1))
		}
	}
	return &Source{
		Path:  path,
		src:   src,
		lines: lines,
	}
}

// Position is 1-based. Col counts runes, not bytes.
type Position struct {
	Line uint32
	Col  uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

func (s *Source) Position(offset uint32) Position {
	offset = min(offset, uint32(len(s.src)))
	idx := sort.Search(len(s.lines), func(ii int) bool {
		return s.lines[ii] > offset
	}) - 1
	lineStart := s.lines[idx]
	return Position{
		Line: uint32(idx + 1),
		Col:  uint32(utf8.RuneCount(s.src[lineStart:offset]) + 1),
	}
}

// Line returns the text of a 1-based line without its line terminator.
func (s *Source) Line(line uint32) string {
	if line == 0 || int(line) > len(s.lines) {
		return ""
	}
	start := s.lines[line-1]
	end := uint32(len(s.src))
	if int(line) < len(s.lines) {
		end = s.lines[line] - 1
	}
	if end > start && s.src[end-1] == '\r' {
		end--
	}
	return string(s.src[start:end])
}
