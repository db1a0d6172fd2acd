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

package multidiff

import (
	"log/slog"

	"znkr.io/multidiff/internal/config"
	"znkr.io/multidiff/textdiff/color"
)

// Option configures the behavior of comparison functions.
//
// Options of package [znkr.io/multidiff/textdiff] are options too and configure how each file is
// compared to the base.
type Option = config.Option

// Colored enables or disables ANSI color escapes in the report. The default is false.
func Colored(enabled bool) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Colored = enabled
		return config.Colored
	}
}

// MaxGroups sets the maximal number of variants shown per line for each kind of change. Variants
// that occur in the fewest files are shown first. If n is 0, all variants are shown. The default
// is 3.
func MaxGroups(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxGroups = max(0, n)
		return config.MaxGroups
	}
}

// SeparatorWidth sets the width of the rules around the report and between runs of changed lines.
// The default is 5.
func SeparatorWidth(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.SeparatorWidth = max(0, n)
		return config.SeparatorWidth
	}
}

// Width sets the maximal display width of a report line; longer lines are truncated. By default,
// the width of the terminal connected to stdout is used, or 80 if stdout is not a terminal.
func Width(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Width = n
		return config.Width
	}
}

// Colors changes the escape sequences used with [Colored].
func Colors(opts ...color.Option) Option {
	return func(cfg *config.Config) config.Flag {
		for _, opt := range opts {
			opt(&cfg.Colors)
		}
		return config.Colors
	}
}

// Logger sets the logger for diagnostic messages. By default, nothing is logged.
func Logger(logger *slog.Logger) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Logger = logger
		return config.Logger
	}
}
