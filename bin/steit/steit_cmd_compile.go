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

package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/nhatquangsin/steit/compiler"
	"github.com/nhatquangsin/steit/encoding/steitpack"
	"github.com/nhatquangsin/steit/encoding/steittext"
	"github.com/nhatquangsin/steit/internal/report"
)

type cmdCompile struct {
	configPath string
	outPath    string
	format     string
}

func (*cmdCompile) help() *commandHelp {
	return &commandHelp{
		usage:   "compile [options] FILE",
		summary: "Compile a schema and write its model",
	}
}

func (cmd *cmdCompile) flags(flags *pflag.FlagSet) {
	flags.StringVar(&cmd.configPath, "config", "", "path to steit.toml (default: search upwards)")
	flags.StringVarP(&cmd.outPath, "output", "o", "", "output path (default: stdout)")
	flags.StringVarP(&cmd.format, "format", "f", "text", "output format (text, msgpack)")
}

func (cmd *cmdCompile) run(ctx context.Context, env *env, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(env.stderr, "usage: steit compile [options] FILE")
		return 1
	}
	srcPath := argv[0]

	outputText := false
	switch cmd.format {
	case "text", "steittext":
		outputText = true
	case "msgpack", "steitpack":
	default:
		fmt.Fprintf(env.stderr, "Unsupported output format %q\n", cmd.format)
		return 1
	}

	cfg, err := loadConfig(cmd.configPath)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}

	src, err := readSource(srcPath)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}
	result := compiler.CompileSource(src,
		compiler.WithLogger(env.logger),
		compiler.WithStrictDirectives(cfg.Compile.StrictDirectives),
		compiler.WithMaxErrors(cfg.Diagnostics.MaxErrors),
	)

	r := report.New(report.NewSource(srcPath, src), &result)
	showColor := useColor(cfg.Diagnostics.Color, env.stderr)
	if err := report.WritePretty(env.stderr, r, report.PrettyOpts{Color: showColor}); err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}
	schema := result.Schema()
	if schema == nil {
		return 1
	}

	var output []byte
	if outputText {
		output = []byte(steittext.Encode(schema))
	} else {
		output, err = steitpack.Encode(schema)
		if err != nil {
			fmt.Fprintln(env.stderr, err)
			return 1
		}
	}

	if err := writeOutput(env.stdout, cmd.outPath, output); err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}
	return 0
}
