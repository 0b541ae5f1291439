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
	"strings"
	"unicode"

	"github.com/nhatquangsin/steit"
	"github.com/nhatquangsin/steit/syntax"
)

// Variant is the validated metadata of one enum variant.
type Variant struct {
	name     string
	span     syntax.Span
	nameSpan syntax.Span
	tag      AttrValue[uint32]
	dflt     *AttrValue[bool]
	snake    string
}

func (v *Variant) Name() string {
	return v.name
}

// Span covers the whole variant declaration, directives included.
func (v *Variant) Span() syntax.Span {
	return v.span
}

func (v *Variant) NameSpan() syntax.Span {
	return v.nameSpan
}

func (v *Variant) Tag() uint32 {
	return v.tag.Value
}

// TagWithSpan returns the tag and the span of its integer literal.
func (v *Variant) TagWithSpan() (uint32, syntax.Span) {
	return v.tag.Value, v.tag.span
}

// DefaultWithSpan returns (false, nil) when no default directive was given.
func (v *Variant) DefaultWithSpan() (bool, *syntax.Span) {
	if v.dflt == nil {
		return false, nil
	}
	span := v.dflt.span
	return v.dflt.Value, &span
}

func (v *Variant) SnakeCaseName() string {
	return v.snake
}

// Qual is the reference fragment appended to the owning enum's name, as in
// `Shape.Circle`.
func (v *Variant) Qual() string {
	return "." + v.name
}

func (v *Variant) CtorName() string {
	return "new_" + v.snake
}

type variantSlots struct {
	tag     *Attr[uint32]
	dflt    *Attr[bool]
	tagSeen bool
}

// A directiveMatcher claims the metas it matches. Matchers are tried in
// order and the first match wins.
type directiveMatcher struct {
	match func(meta *syntax.Meta) bool
	apply func(ctx *Context, slots *variantSlots, meta *syntax.Meta)
}

var variantMatchers = []directiveMatcher{
	// tag = <int>
	{
		match: func(meta *syntax.Meta) bool {
			return meta.Name().Get() == "tag"
		},
		apply: func(ctx *Context, slots *variantSlots, meta *syntax.Meta) {
			slots.tagSeen = true
			if meta.Kind() != syntax.MetaNameValue {
				ctx.RawError(errTagNotInt(meta.Span()))
				return
			}
			intLit, ok := meta.Value().(*syntax.IntLit)
			if !ok {
				ctx.RawError(errTagNotInt(meta.Value().Span()))
				return
			}
			tag, ok := intLit.GetUint32()
			if !ok {
				ctx.RawError(errTagOverflow(intLit.GetUint64(), intLit.Span()))
				return
			}
			slots.tag.Set(intLit, tag)
		},
	},
	// default
	{
		match: func(meta *syntax.Meta) bool {
			return meta.Is(syntax.MetaPath, "default")
		},
		apply: func(ctx *Context, slots *variantSlots, meta *syntax.Meta) {
			slots.dflt.Set(meta, true)
		},
	},
	// default = <bool>
	{
		match: func(meta *syntax.Meta) bool {
			return meta.Name().Get() == "default"
		},
		apply: func(ctx *Context, slots *variantSlots, meta *syntax.Meta) {
			if meta.Kind() != syntax.MetaNameValue {
				ctx.RawError(errDefaultNotBool(meta.Span()))
				return
			}
			boolLit, ok := meta.Value().(*syntax.BoolLit)
			if !ok {
				ctx.RawError(errDefaultNotBool(meta.Value().Span()))
				return
			}
			slots.dflt.Set(boolLit, boolLit.Get())
		},
	},
}

// isOwnDecorator reports whether a decorator carries steit directives.
// Other decorators belong to sibling tools and are never inspected.
func isOwnDecorator(decorator *syntax.Decorator) bool {
	return decorator.Name().Get() == "steit"
}

// ParseVariant reads the steit directives of one variant.
//
// Directives it does not recognize are returned untouched. If a diagnostic
// was recorded for the variant, the returned *Variant is nil and the error
// is ErrReported.
func ParseVariant(
	ctx *Context,
	node *syntax.Variant,
) (*Variant, []*syntax.Meta, error) {
	before := ctx.Len()
	slots := &variantSlots{
		tag:  NewAttr[uint32](ctx, "tag"),
		dflt: NewAttr[bool](ctx, "default"),
	}

	var unknown []*syntax.Meta
	for _, decorator := range node.Decorators() {
		if !isOwnDecorator(decorator) {
			continue
		}
		for _, meta := range decorator.Metas() {
			if !applyMatchers(ctx, slots, meta) {
				unknown = append(unknown, meta)
			}
		}
	}

	tag, ok := slots.tag.Value()
	if !ok {
		if slots.tagSeen {
			return nil, unknown, ErrReported
		}
		return nil, unknown, ctx.RawError(errMissingTag(node.Span()))
	}
	if err := steit.ValidateTag(tag.Value); err != nil {
		return nil, unknown, ctx.RawError(errInvalidTag(err, tag.Span()))
	}
	if ctx.Len() > before {
		return nil, unknown, ErrReported
	}

	variant := &Variant{
		name:     node.Name().Get(),
		span:     node.Span(),
		nameSpan: node.Name().Span(),
		tag:      tag,
		snake:    snakeCase(node.Name().Get()),
	}
	if dflt, ok := slots.dflt.Value(); ok {
		variant.dflt = &dflt
	}
	return variant, unknown, nil
}

func applyMatchers(ctx *Context, slots *variantSlots, meta *syntax.Meta) bool {
	for _, matcher := range variantMatchers {
		if matcher.match(meta) {
			matcher.apply(ctx, slots, meta)
			return true
		}
	}
	return false
}

// snakeCase lower-cases name, inserting an underscore before an upper-case
// letter that follows a lower-case letter or digit, or that starts a new
// word at the end of an upper-case run (`HTTPServer` -> `http_server`).
func snakeCase(name string) string {
	runes := []rune(name)
	var buf strings.Builder
	buf.Grow(len(name) + 4)
	for ii, r := range runes {
		if !unicode.IsUpper(r) {
			buf.WriteRune(r)
			continue
		}
		if ii > 0 {
			prev := runes[ii-1]
			nextLower := ii+1 < len(runes) && unicode.IsLower(runes[ii+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && nextLower) {
				buf.WriteByte('_')
			}
		}
		buf.WriteRune(unicode.ToLower(r))
	}
	return buf.String()
}
