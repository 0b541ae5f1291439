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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const FileName = "steit.toml"

type Config struct {
	Diagnostics Diagnostics `toml:"diagnostics"`
	Compile     Compile     `toml:"compile"`
}

type Diagnostics struct {
	// Format is "pretty" or "json".
	Format string `toml:"format"`
	// Color is "auto", "always" or "never".
	Color     string `toml:"color"`
	MaxErrors int    `toml:"max_errors"`
}

type Compile struct {
	StrictDirectives bool `toml:"strict_directives"`
	Jobs             int  `toml:"jobs"`
}

func Default() Config {
	return Config{
		Diagnostics: Diagnostics{
			Format: "pretty",
			Color:  "auto",
		},
		Compile: Compile{
			Jobs: 4,
		},
	}
}

// Find looks for steit.toml in startDir and each of its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	switch cfg.Diagnostics.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("[diagnostics].format must be \"pretty\" or \"json\", got %q", cfg.Diagnostics.Format)
	}
	switch cfg.Diagnostics.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("[diagnostics].color must be \"auto\", \"always\" or \"never\", got %q", cfg.Diagnostics.Color)
	}
	if cfg.Diagnostics.MaxErrors < 0 {
		return fmt.Errorf("[diagnostics].max_errors must not be negative")
	}
	if cfg.Compile.Jobs < 1 {
		return fmt.Errorf("[compile].jobs must be at least 1")
	}
	return nil
}
