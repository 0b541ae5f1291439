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
	"github.com/nhatquangsin/steit/syntax"
)

// Enum is a validated enum: its variants in declaration order and the
// variant used as its default value.
type Enum struct {
	name     string
	span     syntax.Span
	variants []*Variant
	dflt     *Variant
}

func (e *Enum) Name() string {
	return e.name
}

func (e *Enum) Span() syntax.Span {
	return e.span
}

func (e *Enum) Variants() []*Variant {
	return e.variants
}

// Default is the variant marked `default`, or the first variant when none
// is marked.
func (e *Enum) Default() *Variant {
	return e.dflt
}

func (e *Enum) Variant(name string) (*Variant, bool) {
	for _, variant := range e.variants {
		if variant.name == name {
			return variant, true
		}
	}
	return nil, false
}

func (e *Enum) VariantByTag(tag uint32) (*Variant, bool) {
	for _, variant := range e.variants {
		if variant.Tag() == tag {
			return variant, true
		}
	}
	return nil, false
}

func (c *compiler) compileEnum(node *syntax.Enum) *Enum {
	enumName := node.Name().Get()
	before := c.ctx.Len()

	for _, decorator := range node.Decorators() {
		if isOwnDecorator(decorator) {
			c.unknownDirectives(decorator.Metas())
		}
	}

	if len(node.Variants()) == 0 {
		c.ctx.RawError(errEmptyEnum(enumName, node.Name().Span()))
		return nil
	}

	names := make(map[string]struct{})
	tags := make(map[uint32]*Variant)
	var variants []*Variant
	var dflt *Variant
	for _, item := range node.Variants() {
		itemName := item.Name().Get()
		if _, conflict := names[itemName]; conflict {
			c.ctx.RawError(errDuplicateVariantName(enumName, itemName, item.Name().Span()))
		}
		names[itemName] = struct{}{}

		variant, unknown, err := ParseVariant(c.ctx, item)
		c.unknownDirectives(unknown)
		if err != nil {
			continue
		}

		tag, tagSpan := variant.TagWithSpan()
		if prev, conflict := tags[tag]; conflict {
			c.ctx.RawError(errDuplicateTag(enumName, tag, prev.name, itemName, tagSpan))
		} else {
			tags[tag] = variant
		}

		if isDefault, span := variant.DefaultWithSpan(); isDefault {
			if dflt != nil {
				c.ctx.RawError(errMultipleDefaults(enumName, dflt.name, itemName, *span))
			} else {
				dflt = variant
			}
		}
		variants = append(variants, variant)
	}
	if dflt == nil && len(variants) > 0 {
		dflt = variants[0]
	}

	c.opts.logger.Debug("compiled enum",
		"enum", enumName,
		"variants", len(variants),
		"errors", c.ctx.Len()-before,
	)

	return &Enum{
		name:     enumName,
		span:     node.Span(),
		variants: variants,
		dflt:     dflt,
	}
}

func (c *compiler) unknownDirectives(metas []*syntax.Meta) {
	for _, meta := range metas {
		name := meta.Name().Get()
		if c.opts.strictDirectives {
			c.ctx.RawError(errUnknownDirective(name, meta.Span()))
		} else {
			c.warnings = append(c.warnings, warnUnknownDirective(name, meta.Span()))
		}
	}
}
