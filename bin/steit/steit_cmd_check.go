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
	"golang.org/x/sync/errgroup"

	"github.com/nhatquangsin/steit/compiler"
	"github.com/nhatquangsin/steit/internal/config"
	"github.com/nhatquangsin/steit/internal/report"
)

type cmdCheck struct {
	configPath string
	jobs       int
	strict     bool
	format     string
	color      string
	maxErrors  int

	flagSet *pflag.FlagSet
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check [options] FILE...",
		summary: "Validate schema files and report every diagnostic",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	cmd.flagSet = flags
	flags.StringVar(&cmd.configPath, "config", "", "path to steit.toml (default: search upwards)")
	flags.IntVarP(&cmd.jobs, "jobs", "j", 0, "files checked in parallel")
	flags.BoolVar(&cmd.strict, "strict", false, "treat unknown directives as errors")
	flags.StringVar(&cmd.format, "format", "", "diagnostic format (pretty, json)")
	flags.StringVar(&cmd.color, "color", "", "colored output (auto, always, never)")
	flags.IntVar(&cmd.maxErrors, "max-errors", 0, "errors shown per file, 0 for all")
}

// applyFlags overrides cfg with every flag given on the command line.
func (cmd *cmdCheck) applyFlags(cfg *config.Config) error {
	if cmd.flagSet.Changed("jobs") {
		cfg.Compile.Jobs = cmd.jobs
	}
	if cmd.flagSet.Changed("strict") {
		cfg.Compile.StrictDirectives = cmd.strict
	}
	if cmd.flagSet.Changed("format") {
		cfg.Diagnostics.Format = cmd.format
	}
	if cmd.flagSet.Changed("color") {
		cfg.Diagnostics.Color = cmd.color
	}
	if cmd.flagSet.Changed("max-errors") {
		cfg.Diagnostics.MaxErrors = cmd.maxErrors
	}
	return cfg.Validate()
}

type checkResult struct {
	path   string
	report *report.Report
	err    error
}

func (cmd *cmdCheck) run(ctx context.Context, env *env, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(env.stderr, "usage: steit check [options] FILE...")
		return 1
	}

	cfg, err := loadConfig(cmd.configPath)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}
	if err := cmd.applyFlags(&cfg); err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}

	opts := compiler.NewCompileOptions(
		compiler.WithLogger(env.logger),
		compiler.WithStrictDirectives(cfg.Compile.StrictDirectives),
		compiler.WithMaxErrors(cfg.Diagnostics.MaxErrors),
	)

	// Each file gets its own compilation pass. Results are indexed by
	// argument position so output order does not depend on scheduling.
	results := make([]checkResult, len(argv))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(cfg.Compile.Jobs, len(argv)))
	for ii, path := range argv {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[ii] = checkFile(opts, path)
			env.logger.Debug("checked file", "path", path, "error", results[ii].err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}

	exitCode := 0
	var errCount, warnCount int
	showColor := useColor(cfg.Diagnostics.Color, env.stderr)
	for _, result := range results {
		if result.err != nil {
			fmt.Fprintf(env.stderr, "%s: %v\n", result.path, result.err)
			exitCode = 1
			continue
		}
		r := result.report
		errCount += r.Count(report.SeverityError) + r.Truncated
		warnCount += r.Count(report.SeverityWarning)
		if r.Count(report.SeverityError) > 0 {
			exitCode = 1
		}

		var writeErr error
		switch cfg.Diagnostics.Format {
		case "json":
			writeErr = report.WriteJSON(env.stdout, r)
		default:
			writeErr = report.WritePretty(env.stderr, r, report.PrettyOpts{Color: showColor})
		}
		if writeErr != nil {
			fmt.Fprintln(env.stderr, writeErr)
			return 1
		}
	}

	if cfg.Diagnostics.Format != "json" && (errCount > 0 || warnCount > 0) {
		fmt.Fprintf(env.stderr, "%s, %s\n", plural(errCount, "error"), plural(warnCount, "warning"))
	}
	return exitCode
}

func checkFile(opts *compiler.CompileOptions, path string) checkResult {
	src, err := readSource(path)
	if err != nil {
		return checkResult{path: path, err: err}
	}
	result := opts.CompileSource(src)
	return checkResult{
		path:   path,
		report: report.New(report.NewSource(path, src), &result),
	}
}
