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
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nhatquangsin/steit/internal/logging"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, env *env, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

// env is what a command may touch outside its own flags.
type env struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func main() {
	os.Exit(runMain(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func runMain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	e := &env{
		stdout: stdout,
		stderr: stderr,
		logger: logging.NewNop(),
	}
	exitCode := 0

	var logLevel string
	steitCmd := &cobra.Command{
		Use:           "steit [options] COMMAND",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(*cobra.Command, []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			e.logger = logging.New(stderr, level)
			return nil
		},
	}
	steitCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(stderr, steitCmd.UsageString())
		exitCode = 1
		return nil
	}
	steitCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level (debug, info, warn, error)")

	commands := []command{
		&cmdCheck{},
		&cmdCompile{},
		&cmdVersion{},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				exitCode = cmd.run(ctx, e, args)
				return nil
			},
		}
		steitCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	steitCmd.SetArgs(args)
	steitCmd.SetOut(stdout)
	steitCmd.SetErr(stderr)
	if _, err := steitCmd.ExecuteC(); err != nil {
		fmt.Fprintf(stderr, "steit: %v\n", err)
		return 1
	}
	return exitCode
}
