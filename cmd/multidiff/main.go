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

// multidiff compares a base file with any number of other files and prints a single report of
// all differences.
//
// Usage:
//
//	multidiff [flags] BASE FILE...
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"znkr.io/multidiff"
	"znkr.io/multidiff/internal/terminal"
	"znkr.io/multidiff/textdiff"
)

var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("multidiff", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: multidiff [flags] BASE FILE...\n\n")
		fmt.Fprintf(stderr, "multidiff compares every FILE with BASE and prints all differences in a single report.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	colorFlag := fs.String("color", "auto", "Color the output: auto, always, or never")
	widthFlag := fs.IntP("width", "w", 0, "Maximal width of a report line (default: terminal width)")
	maxGroupsFlag := fs.IntP("max-groups", "g", 3, "Maximal number of variants per line and kind, 0 shows all")
	cutoffFlag := fs.Float64("cutoff", 0.75, "Minimal similarity in [0, 1] for lines to get intraline markers")
	minimalFlag := fs.Bool("minimal", false, "Find a minimal line alignment irrespective of the cost")
	verboseFlag := fs.BoolP("verbose", "v", false, "Log debug information to stderr")
	helpFlag := fs.BoolP("help", "h", false, "Show this help message")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		fs.Usage()
		return 2
	}
	if *helpFlag {
		fs.Usage()
		return 0
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts, err := options(fs.Args(), *colorFlag, stdout)
	if err != nil {
		logger.Error("invalid arguments", "err", err)
		fs.Usage()
		return 2
	}
	opts = append(opts,
		multidiff.MaxGroups(*maxGroupsFlag),
		multidiff.Logger(logger),
		textdiff.Cutoff(*cutoffFlag),
	)
	if *widthFlag > 0 {
		opts = append(opts, multidiff.Width(*widthFlag))
	}
	if *minimalFlag {
		opts = append(opts, textdiff.Minimal())
	}

	args = fs.Args()
	report, err := multidiff.Files(args[0], args[1:], opts...)
	if err != nil {
		logger.Error("comparison failed", "err", err)
		return 1
	}
	fmt.Fprintln(stdout, report)
	return 0
}

// options validates the positional arguments and resolves the color mode for out.
func options(args []string, color string, out io.Writer) ([]multidiff.Option, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: need a base and at least one file, got %d arguments", errUsage, len(args))
	}
	var colored bool
	switch color {
	case "always":
		colored = true
	case "never":
		colored = false
	case "auto":
		f, ok := out.(*os.File)
		colored = ok && terminal.ColorsEnabled(f)
	default:
		return nil, fmt.Errorf("%w: invalid value for --color: %q", errUsage, color)
	}
	return []multidiff.Option{multidiff.Colored(colored)}, nil
}
