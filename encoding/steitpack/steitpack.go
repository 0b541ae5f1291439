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

// Package steitpack exports a compiled schema as msgpack for tools that do
// not link the compiler.
package steitpack

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/nhatquangsin/steit/compiler"
)

type Schema struct {
	Enums []Enum `msgpack:"enums"`
}

type Enum struct {
	Name     string    `msgpack:"name"`
	Default  string    `msgpack:"default"`
	Variants []Variant `msgpack:"variants"`
}

type Variant struct {
	Name          string `msgpack:"name"`
	Tag           uint32 `msgpack:"tag"`
	Default       bool   `msgpack:"default,omitempty"`
	SnakeCaseName string `msgpack:"snake_case_name"`
	CtorName      string `msgpack:"ctor_name"`
	Ref           string `msgpack:"ref"`
}

func FromSchema(schema *compiler.Schema) *Schema {
	out := &Schema{
		Enums: make([]Enum, 0, len(schema.Enums())),
	}
	for _, enum := range schema.Enums() {
		packed := Enum{
			Name:     enum.Name(),
			Variants: make([]Variant, 0, len(enum.Variants())),
		}
		if dflt := enum.Default(); dflt != nil {
			packed.Default = dflt.Name()
		}
		for _, variant := range enum.Variants() {
			packed.Variants = append(packed.Variants, Variant{
				Name:          variant.Name(),
				Tag:           variant.Tag(),
				Default:       variant == enum.Default(),
				SnakeCaseName: variant.SnakeCaseName(),
				CtorName:      variant.CtorName(),
				Ref:           enum.Name() + variant.Qual(),
			})
		}
		out.Enums = append(out.Enums, packed)
	}
	return out
}

func Encode(schema *compiler.Schema) ([]byte, error) {
	data, err := msgpack.Marshal(FromSchema(schema))
	if err != nil {
		return nil, fmt.Errorf("steitpack: %w", err)
	}
	return data, nil
}

func EncodeTo(schema *compiler.Schema, w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(FromSchema(schema)); err != nil {
		return fmt.Errorf("steitpack: %w", err)
	}
	return nil
}

func Decode(data []byte) (*Schema, error) {
	var schema Schema
	if err := msgpack.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("steitpack: %w", err)
	}
	return &schema, nil
}
