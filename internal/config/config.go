// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the configuration shared by all public entry points and the functional
// options machinery used to populate it.
package config

import "log/slog"

type Mode int

const (
	// Limit the cost for large inputs with many differences by applying heuristics that reduce the
	// time complexity at the cost of non-minimal diffs.
	ModeDefault Mode = iota

	// Find a minimal diff irrespective of the cost.
	ModeMinimal
)

// ColorConfig holds the ANSI escape sequences used when rendering in color.
type ColorConfig struct {
	Base    string // Name of the base file in the header.
	Added   string // Background for lines only in the base.
	Removed string // Background for lines only in the compared file.
	Reset   string
}

type Config struct {
	// Diff algorithm mode for the line differ.
	Mode Mode

	// Minimal similarity for two lines to be paired up and annotated with intraline markers.
	Cutoff float64

	// If set, the report contains ANSI color escapes.
	Colored bool

	// Maximal number of variants shown per kind and line, 0 means no limit.
	MaxGroups int

	// Width of the separator and header rules.
	SeparatorWidth int

	// Maximal display width of a report line. If <= 0, the terminal width is used.
	Width int

	Colors ColorConfig

	Logger *slog.Logger
}

var DefaultColors = ColorConfig{
	Base:    "\033[0;35m",
	Added:   "\033[0;42m",
	Removed: "\033[0;41m",
	Reset:   "\033[0m",
}

var Default = Config{
	Mode:           ModeDefault,
	Cutoff:         0.75,
	Colored:        false,
	MaxGroups:      3,
	SeparatorWidth: 5,
	Width:          0,
	Colors:         DefaultColors,
	Logger:         slog.New(slog.DiscardHandler),
}

type Flag int

const (
	Minimal Flag = 1 << iota
	Cutoff
	Colored
	MaxGroups
	SeparatorWidth
	Width
	Colors
	Logger
)

// Option mutates a Config and reports which setting it touched.
type Option func(*Config) Flag

// FromOptions applies opts to a copy of [Default]. It panics if an option is not in allowed.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = Default.Logger
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Minimal:
		return "textdiff.Minimal"
	case Cutoff:
		return "textdiff.Cutoff"
	case Colored:
		return "multidiff.Colored"
	case MaxGroups:
		return "multidiff.MaxGroups"
	case SeparatorWidth:
		return "multidiff.SeparatorWidth"
	case Width:
		return "multidiff.Width"
	case Colors:
		return "multidiff.Colors"
	case Logger:
		return "multidiff.Logger"
	default:
		panic("never reached")
	}
}
