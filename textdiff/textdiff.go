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

// Package textdiff compares two texts line by line and produces a tagged line stream in the style
// of the classic ndiff format: every line of both inputs appears once, prefixed by "  " (present
// in both), "- " (only in x), or "+ " (only in y). Lines that were changed only slightly are
// paired up and followed by a "? " line marking the changed characters.
package textdiff

import (
	"strings"

	"znkr.io/multidiff/internal/config"
	"znkr.io/multidiff/internal/ndiff"
)

// Tag describes the origin of a line.
type Tag = ndiff.Tag

const (
	Context   = ndiff.Context   // Line present in both inputs.
	Removed   = ndiff.Removed   // Line only in x.
	Added     = ndiff.Added     // Line only in y.
	Highlight = ndiff.Highlight // Intraline markers for the preceding Removed or Added line.
)

// Line is a single line of a comparison. Its String method renders the line with its prefix.
type Line = ndiff.Line

// Lines compares x and y line by line and returns the tagged line stream.
//
// Intraline markers use '^' for changed characters, '-' for characters only in x and '+' for
// characters only in y.
//
// The following options are supported: [textdiff.Minimal], [textdiff.Cutoff]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Lines(x, y []string, opts ...Option) []Line {
	cfg := config.FromOptions(opts, config.Minimal|config.Cutoff)
	return ndiff.Compare(x, y, cfg)
}

// Unified renders the result of [Lines] as text, one line per element.
func Unified(x, y []string, opts ...Option) string {
	var sb strings.Builder
	for _, l := range Lines(x, y, opts...) {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SplitLines splits s into lines. A trailing newline does not start another line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
