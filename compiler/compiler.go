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

package compiler

import (
	"log/slog"

	"github.com/nhatquangsin/steit/internal/logging"
	"github.com/nhatquangsin/steit/syntax"
)

type CompileOption interface {
	apply(*CompileOptions)
}

type compileOption func(*CompileOptions)

func (f compileOption) apply(opts *CompileOptions) { f(opts) }

type CompileOptions struct {
	logger           *slog.Logger
	strictDirectives bool
	maxErrors        int
}

func WithLogger(logger *slog.Logger) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.logger = logger
	})
}

// WithStrictDirectives turns unknown `@steit(...)` directives into errors
// instead of warnings.
func WithStrictDirectives(strict bool) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.strictDirectives = strict
	})
}

// WithMaxErrors caps how many errors a CompileResult carries. Zero means
// no limit.
func WithMaxErrors(maxErrors int) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.maxErrors = max(maxErrors, 0)
	})
}

type CompileResult struct {
	schema *Schema

	Errors   []*Error
	Warnings []*Warning

	// Truncated counts errors dropped by WithMaxErrors.
	Truncated int
}

// Schema is nil unless the compilation produced no errors.
func (r *CompileResult) Schema() *Schema {
	return r.schema
}

func (r *CompileResult) Failed() bool {
	return len(r.Errors) > 0
}

// Schema is a compiled schema: validated enums in declaration order.
type Schema struct {
	enums []*Enum
}

func (s *Schema) Enums() []*Enum {
	return s.enums
}

func (s *Schema) Enum(name string) (*Enum, bool) {
	for _, enum := range s.enums {
		if enum.name == name {
			return enum, true
		}
	}
	return nil, false
}

func Compile(parsedSchema *syntax.Schema, opts ...CompileOption) CompileResult {
	return NewCompileOptions(opts...).Compile(parsedSchema)
}

// CompileSource parses and compiles src. A syntax error is reported in
// CompileResult.Errors like any other diagnostic.
func CompileSource(src []byte, opts ...CompileOption) CompileResult {
	return NewCompileOptions(opts...).CompileSource(src)
}

func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	compileOptions := &CompileOptions{}
	for _, opt := range opts {
		opt.apply(compileOptions)
	}
	if compileOptions.logger == nil {
		compileOptions.logger = logging.NewNop()
	}
	return compileOptions
}

func (opts *CompileOptions) CompileSource(src []byte) CompileResult {
	parsedSchema, err := syntax.Parse(src)
	if err == nil {
		return opts.Compile(parsedSchema)
	}

	ctx := NewContext()
	defer ctx.Close()
	ctx.RawError(errSyntax(err))
	opts.logger.Debug("parse failed", "error", err)
	return opts.result(nil, ctx.Check(), nil)
}

func (opts *CompileOptions) Compile(parsedSchema *syntax.Schema) CompileResult {
	ctx := NewContext()
	defer ctx.Close()

	c := compiler{
		opts: opts,
		ctx:  ctx,
	}
	schema := c.compileSchema(parsedSchema)
	return opts.result(schema, ctx.Check(), c.warnings)
}

func (opts *CompileOptions) result(
	schema *Schema,
	errs []*Error,
	warnings []*Warning,
) CompileResult {
	if len(errs) == 0 {
		return CompileResult{
			schema:   schema,
			Warnings: warnings,
		}
	}
	var truncated int
	if opts.maxErrors > 0 && len(errs) > opts.maxErrors {
		truncated = len(errs) - opts.maxErrors
		errs = errs[:opts.maxErrors]
	}
	return CompileResult{
		Errors:    errs,
		Warnings:  warnings,
		Truncated: truncated,
	}
}

type compiler struct {
	opts     *CompileOptions
	ctx      *Context
	warnings []*Warning
}

func (c *compiler) compileSchema(parsedSchema *syntax.Schema) *Schema {
	names := make(map[string]struct{})
	schema := &Schema{}
	for _, node := range parsedSchema.Enums() {
		enumName := node.Name().Get()
		_, conflict := names[enumName]
		if conflict {
			c.ctx.RawError(errDuplicateEnumName(enumName, node.Name().Span()))
		}
		names[enumName] = struct{}{}

		enum := c.compileEnum(node)
		if enum != nil && !conflict {
			schema.enums = append(schema.enums, enum)
		}
	}
	c.opts.logger.Debug("compiled schema",
		"enums", len(schema.enums),
		"errors", c.ctx.Len(),
		"warnings", len(c.warnings),
	)
	return schema
}
