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
	"io"

	json "github.com/goccy/go-json"
)

type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      uint32 `json:"line"`
	Col       uint32 `json:"col"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code,omitempty"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type OutputJSON struct {
	File        string           `json:"file"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Truncated   int              `json:"truncated,omitempty"`
}

func BuildJSON(r *Report) OutputJSON {
	diagnostics := make([]DiagnosticJSON, 0, len(r.Diagnostics))
	for _, diag := range r.Diagnostics {
		pos := r.Source.Position(diag.Span.Start())
		diagnostics = append(diagnostics, DiagnosticJSON{
			Severity: diag.Severity.String(),
			Code:     diag.CodeString(),
			Message:  diag.Message,
			Location: LocationJSON{
				File:      r.Source.Path,
				StartByte: diag.Span.Start(),
				EndByte:   diag.Span.End(),
				Line:      pos.Line,
				Col:       pos.Col,
			},
		})
	}
	return OutputJSON{
		File:        r.Source.Path,
		Diagnostics: diagnostics,
		Errors:      r.Count(SeverityError),
		Warnings:    r.Count(SeverityWarning),
		Truncated:   r.Truncated,
	}
}

// WriteJSON writes one indented JSON document followed by a newline.
func WriteJSON(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(BuildJSON(r), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
