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
	"runtime"

	"github.com/spf13/pflag"

	"github.com/nhatquangsin/steit"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

type cmdVersion struct{}

func (*cmdVersion) help() *commandHelp {
	return &commandHelp{
		usage:   "version",
		summary: "Print version information",
	}
}

func (*cmdVersion) flags(flags *pflag.FlagSet) {}

func (*cmdVersion) run(ctx context.Context, env *env, argv []string) int {
	fmt.Fprintf(env.stdout, "steit %s (%s, max tag %d)\n", version, runtime.Version(), steit.MaxTag)
	return 0
}
