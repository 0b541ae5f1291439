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

package syntax

func Parse(src []uint8) (*Schema, error) {
	ctx, err := newParseCtx[Schema](src)
	if err != nil {
		return nil, err
	}
	return parseSchema(ctx)
}

func ParseEnum(src []uint8) (*Enum, error) {
	return parseOne(src, parseEnum)
}

func ParseVariant(src []uint8) (*Variant, error) {
	return parseOne(src, parseVariant)
}

func ParseDecorator(src []uint8) (*Decorator, error) {
	return parseOne(src, parseDecorator)
}

// parseOne parses a single construct, which may be followed only by
// trivia.
func parseOne[T any](src []uint8, parseFn func(*parseCtx[T]) (*T, error)) (*T, error) {
	ctx, err := newParseCtx[T](src)
	if err != nil {
		return nil, err
	}
	node, err := parseFn(ctx)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, ctx.unexpected(errExpectedDeclaration)
	}
	ctx.comments()
	if err := ctx.expectEOF(); err != nil {
		return nil, err
	}
	return node, nil
}

type parseCtx[T any] struct {
	src        []uint8
	tokens     *Tokens
	childNodes []Node
	haveToken  bool
	token      Token
	err        error
	consumed   uint32
	offset     uint32
}

func newParseCtx[T any](src []uint8) (*parseCtx[T], error) {
	tokens, err := NewTokens(src)
	if err != nil {
		return nil, err
	}
	return &parseCtx[T]{
		src:    src,
		tokens: tokens,
	}, nil
}

func (ctx *parseCtx[T]) ensureToken() error {
	if ctx.err != nil || ctx.haveToken {
		return ctx.err
	}
	if err := ctx.tokens.Next(&ctx.token); err != nil {
		ctx.err = err
		return err
	}
	ctx.haveToken = true
	return nil
}

// at reports whether the current token is of the given kind. A tokenizer
// error is recorded and reads as false.
func (ctx *parseCtx[T]) at(kind TokenKind) bool {
	return ctx.ensureToken() == nil && ctx.token.Kind == kind
}

// peekPastSpace reports the kind of the next token that is not a space,
// without consuming anything.
func (ctx *parseCtx[T]) peekPastSpace() TokenKind {
	if ctx.ensureToken() != nil {
		return T_EOF
	}
	if ctx.token.Kind != T_SPACE {
		return ctx.token.Kind
	}
	peek := *ctx.tokens
	var next Token
	if err := peek.Next(&next); err != nil {
		return T_EOF
	}
	return next.Kind
}

func (ctx *parseCtx[T]) readToken() []uint8 {
	return ctx.src[:ctx.token.Len]
}

func (ctx *parseCtx[T]) tokenSpan() Span {
	return Span{ctx.offset, uint32(ctx.token.Len)}
}

// leaf captures the current token for a node that has not consumed it yet.
func (ctx *parseCtx[T]) leaf() leaf {
	return leaf{
		raw:   string(ctx.readToken()),
		start: ctx.offset,
	}
}

func (ctx *parseCtx[T]) consumeToken(child Node) {
	ctx.src = ctx.src[ctx.token.Len:]
	ctx.consumed += uint32(ctx.token.Len)
	ctx.offset += uint32(ctx.token.Len)
	ctx.haveToken = false
	if child != nil {
		ctx.childNodes = append(ctx.childNodes, child)
	}
}

// unexpected records errFn's diagnostic for the current token, unless an
// earlier error is already pending.
func (ctx *parseCtx[T]) unexpected(errFn func(TokenKind, string, Span) error) error {
	if ctx.ensureToken() == nil {
		ctx.err = errFn(ctx.token.Kind, string(ctx.readToken()), ctx.tokenSpan())
	}
	return ctx.err
}

// loop yields until the body stops consuming tokens or an error is set.
func (ctx *parseCtx[T]) loop(yield func(struct{}) bool) {
	for ctx.err == nil {
		consumed := ctx.consumed
		if !yield(struct{}{}) || consumed == ctx.consumed {
			return
		}
	}
}

func (ctx *parseCtx[T]) expectEOF() error {
	if !ctx.at(T_EOF) {
		return ctx.unexpected(errExpectedEOF)
	}
	return nil
}

func (ctx *parseCtx[T]) space() {
	if ctx.at(T_SPACE) {
		ctx.consumeToken(&Space{ctx.leaf()})
	}
}

// comments consumes any run of spaces, newlines and comments.
func (ctx *parseCtx[T]) comments() {
	for _ = range ctx.loop {
		switch {
		case ctx.at(T_SPACE):
			ctx.consumeToken(&Space{ctx.leaf()})
		case ctx.at(T_NEWLINE):
			ctx.consumeToken(&Newline{ctx.leaf()})
		case ctx.at(T_COMMENT):
			ctx.consumeToken(&Comment{ctx.leaf()})
		default:
			return
		}
	}
}

func (ctx *parseCtx[T]) trySigil(kind TokenKind) bool {
	if !ctx.at(kind) {
		return false
	}
	ctx.consumeToken(&Sigil{ctx.leaf()})
	return true
}

func (ctx *parseCtx[T]) sigil(kind TokenKind) {
	if ctx.trySigil(kind) {
		return
	}
	ctx.unexpected(func(gotKind TokenKind, got string, span Span) error {
		return errExpectedSigil(kind, gotKind, got, span)
	})
}

func (ctx *parseCtx[T]) tryKeyword(keyword string) bool {
	if !ctx.at(T_IDENT) || string(ctx.readToken()) != keyword {
		return false
	}
	ctx.consumeToken(&Keyword{ctx.leaf()})
	return true
}

func (ctx *parseCtx[T]) ident() *Ident {
	if !ctx.at(T_IDENT) {
		ctx.unexpected(errExpectedIdent)
		return nil
	}
	ident := &Ident{ctx.leaf()}
	ctx.consumeToken(ident)
	return ident
}

// finish wraps everything consumed by ctx into the node built by build.
func (ctx *parseCtx[T]) finish(build func(b branch) *T) (*T, error) {
	if ctx.err != nil {
		return nil, ctx.err
	}
	return build(branch{
		span:       Span{ctx.offset - ctx.consumed, ctx.consumed},
		childNodes: ctx.childNodes,
	}), nil
}

// parseChild runs parseChildFn on a sub-context positioned at ctx's
// current token. On success the child's tokens move into ctx and the child
// becomes one of ctx's nodes.
func parseChild[P any, C any, PtrC interface {
	*C
	Node
}](
	ctx *parseCtx[P],
	parseChildFn func(*parseCtx[C]) (PtrC, error),
) (*C, bool) {
	if ctx.err != nil {
		return nil, false
	}
	sub := &parseCtx[C]{
		src:       ctx.src,
		tokens:    ctx.tokens,
		haveToken: ctx.haveToken,
		token:     ctx.token,
		offset:    ctx.offset,
	}
	child, err := parseChildFn(sub)
	if err != nil {
		ctx.err = err
		return nil, false
	}

	ctx.haveToken, ctx.token = sub.haveToken, sub.token
	if sub.consumed == 0 || child == nil {
		return nil, false
	}
	ctx.src = ctx.src[sub.consumed:]
	ctx.consumed += sub.consumed
	ctx.offset = sub.offset
	ctx.childNodes = append(ctx.childNodes, child)
	return child, true
}

func parseSchema(ctx *parseCtx[Schema]) (*Schema, error) {
	var enums []*Enum
	ctx.comments()
	for _ = range ctx.loop {
		if ctx.at(T_EOF) {
			break
		}
		if enum, ok := parseChild(ctx, parseEnum); ok {
			enums = append(enums, enum)
		}
		ctx.comments()
	}
	ctx.expectEOF()

	return ctx.finish(func(b branch) *Schema {
		return &Schema{branch: b, enums: enums}
	})
}

func parseDecorators[T any](ctx *parseCtx[T]) []*Decorator {
	var decorators []*Decorator
	for _ = range ctx.loop {
		if decorator, ok := parseChild(ctx, parseDecorator); ok {
			decorators = append(decorators, decorator)
			ctx.comments()
		}
	}
	return decorators
}

func parseDecorator(ctx *parseCtx[Decorator]) (*Decorator, error) {
	if !ctx.trySigil(T_AT) {
		return nil, nil
	}
	name := ctx.ident()

	var metas []*Meta
	hasArgs := ctx.trySigil(T_OPEN_PAREN)
	if hasArgs {
		metas = parseMetaArgs(ctx)
	}

	return ctx.finish(func(b branch) *Decorator {
		return &Decorator{
			branch:  b,
			name:    name,
			hasArgs: hasArgs,
			metas:   metas,
		}
	})
}

// parseMetaArgs parses a comma-separated meta list after its opening
// parenthesis, through the closing one. A trailing comma is allowed.
func parseMetaArgs[T any](ctx *parseCtx[T]) []*Meta {
	var metas []*Meta
	ctx.comments()
	for _ = range ctx.loop {
		if ctx.trySigil(T_CLOSE_PAREN) {
			break
		}
		meta, ok := parseChild(ctx, parseMeta)
		if !ok {
			break
		}
		metas = append(metas, meta)
		ctx.comments()
		if ctx.trySigil(T_CLOSE_PAREN) {
			break
		}
		ctx.sigil(T_COMMA)
		ctx.comments()
	}
	return metas
}

func parseMeta(ctx *parseCtx[Meta]) (*Meta, error) {
	name := ctx.ident()

	kind := MetaPath
	var value Node
	var metas []*Meta
	switch {
	case ctx.trySigil(T_OPEN_PAREN):
		kind = MetaList
		metas = parseMetaArgs(ctx)
	case ctx.peekPastSpace() == T_EQ:
		ctx.space()
		ctx.sigil(T_EQ)
		ctx.space()
		kind = MetaNameValue
		value = parseMetaValue(ctx)
	}

	return ctx.finish(func(b branch) *Meta {
		return &Meta{
			branch: b,
			kind:   kind,
			name:   name,
			value:  value,
			metas:  metas,
		}
	})
}

func parseMetaValue[T any](ctx *parseCtx[T]) Node {
	if ctx.ensureToken() != nil {
		return nil
	}
	lit := ctx.leaf()
	var node Node
	var err error
	switch kind := ctx.token.Kind; {
	case kind.isIntLit():
		node, err = newIntLit(lit, kind)
	case kind == T_TEXT_LIT:
		node, err = newTextLit(lit)
	case kind == T_IDENT && (lit.raw == "true" || lit.raw == "false"):
		node = &BoolLit{leaf: lit, value: lit.raw == "true"}
	default:
		ctx.unexpected(errExpectedDirectiveValue)
		return nil
	}
	if err != nil {
		ctx.err = err
		return nil
	}
	ctx.consumeToken(node)
	return node
}

func parseEnum(ctx *parseCtx[Enum]) (*Enum, error) {
	decorators := parseDecorators(ctx)
	if !ctx.tryKeyword("enum") {
		if ctx.at(T_IDENT) {
			return nil, errUnknownDeclaration(string(ctx.readToken()), ctx.tokenSpan())
		}
		return nil, ctx.unexpected(errExpectedDeclaration)
	}
	ctx.space()
	name := ctx.ident()
	ctx.space()

	var variants []*Variant
	ctx.sigil(T_OPEN_CURL)
	ctx.comments()
	for _ = range ctx.loop {
		if ctx.trySigil(T_CLOSE_CURL) {
			break
		}
		if variant, ok := parseChild(ctx, parseVariant); ok {
			variants = append(variants, variant)
		}
		ctx.space()
		ctx.trySigil(T_COMMA)
		ctx.comments()
	}

	return ctx.finish(func(b branch) *Enum {
		return &Enum{
			branch:     b,
			decorators: decorators,
			name:       name,
			variants:   variants,
		}
	})
}

func parseVariant(ctx *parseCtx[Variant]) (*Variant, error) {
	decorators := parseDecorators(ctx)
	name := ctx.ident()

	return ctx.finish(func(b branch) *Variant {
		return &Variant{
			branch:     b,
			decorators: decorators,
			name:       name,
		}
	})
}
