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

// Package aggregate collects the change records of all compared files per base line and renders
// them into a single report.
package aggregate

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"znkr.io/multidiff/internal/ansi"
	"znkr.io/multidiff/internal/config"
	"znkr.io/multidiff/internal/record"
)

// bucket holds the records of one base line, indexed by kind.
type bucket [len(record.Kinds)][]record.Record

// Aggregator collects records from all compared files.
//
// Rendering must only start after the records of every file have been added, because grouping
// and file counts depend on the complete set.
type Aggregator struct {
	cfg     config.Config
	files   []string
	buckets map[int]*bucket
}

// New returns an empty Aggregator for a comparison against the named files.
func New(files []string, cfg config.Config) *Aggregator {
	return &Aggregator{
		cfg:     cfg,
		files:   files,
		buckets: make(map[int]*bucket),
	}
}

// Add adds a record to the bucket of its line.
func (a *Aggregator) Add(r record.Record) {
	b := a.buckets[r.Line]
	if b == nil {
		b = new(bucket)
		a.buckets[r.Line] = b
	}
	b[r.Kind] = append(b[r.Kind], r)
}

func (a *Aggregator) has(line int) bool {
	_, ok := a.buckets[line]
	return ok
}

// group is one variant of a line: all records of one kind with identical text.
type group struct {
	text      string
	sources   []string // distinct, in order of appearance
	highlight string
}

// groups returns the variants of kind at line, rarest first and limited to the configured
// maximum.
func (a *Aggregator) groups(line int, kind record.Kind) []*group {
	b := a.buckets[line]
	if b == nil || len(b[kind]) == 0 {
		return nil
	}

	var groups []*group
	byText := make(map[string]*group)
	for _, r := range b[kind] {
		g, ok := byText[r.Text]
		if !ok {
			g = &group{text: r.Text}
			byText[r.Text] = g
			groups = append(groups, g)
		}
		if !slices.Contains(g.sources, r.Source) {
			g.sources = append(g.sources, r.Source)
		}
		if r.Highlight != "" {
			if g.highlight == "" {
				g.highlight = r.Highlight
			} else {
				g.highlight = MergeHighlight(r.Highlight, g.highlight)
			}
		}
	}

	slices.SortStableFunc(groups, func(x, y *group) int {
		return cmp.Compare(len(x.sources), len(y.sources))
	})
	if limit := a.cfg.MaxGroups; limit > 0 && len(groups) > limit {
		a.cfg.Logger.Debug("omitting variants", "line", line, "kind", kind, "shown", limit, "total", len(groups))
		groups = groups[:limit]
	}
	return groups
}

// MergeHighlight combines the intraline markers of two records with the same text.
//
// The longer highlight is the base (h2 if both have the same length). Every column of the base
// that is blank or '^' takes the marker of the other highlight at that column. A specific marker
// in the base is never overwritten.
func MergeHighlight(h1, h2 string) string {
	base, other := []rune(h2), []rune(h1)
	if len(other) > len(base) {
		base, other = other, base
	}
	for i, c := range other {
		if (base[i] == record.MarkUnchanged || base[i] == record.MarkChanged) && base[i] != c {
			base[i] = c
		}
	}
	return string(base)
}

func (a *Aggregator) colorize(text, highlight string, kind record.Kind) string {
	if !a.cfg.Colored {
		return text
	}
	return ansi.Colorize(text, highlight, kind, a.cfg.Colors)
}

// Line returns the rendered lines for one base line. The result is empty if no file changed the
// line.
func (a *Aggregator) Line(line int) []string {
	if !a.has(line) {
		return nil
	}

	var out []string
	lineNo := strconv.Itoa(line)
	for _, kind := range record.Kinds {
		for _, g := range a.groups(line, kind) {
			fields := []string{
				lineNo + " " + a.colorize(g.text, g.highlight, kind),
				fmt.Sprintf("(%d/%d)", len(g.sources), len(a.files)),
			}
			if len(g.sources) != len(a.files) {
				fields = append(fields, strings.Join(g.sources, ", "))
			}
			out = append(out, strings.Join(fields, " "))

			// In color mode, the highlight is part of the text already.
			if !a.cfg.Colored && g.highlight != "" {
				out = append(out, strings.Repeat(" ", len(lineNo)+1)+g.highlight)
			}
		}
	}

	// Separate runs of changed lines.
	if !a.has(line + 1) {
		out = append(out, " ", strings.Repeat("-", a.cfg.SeparatorWidth), " ")
	}
	return out
}

// Report renders the complete report for a base with the given name and number of lines.
func (a *Aggregator) Report(base string, lines int) string {
	rule := strings.Repeat("=", a.cfg.SeparatorWidth)
	if a.cfg.Colored {
		base = ansi.Paint(base, a.cfg.Colors.Base, a.cfg.Colors)
	}
	out := []string{
		fmt.Sprintf("Comparing %s with %s", base, strings.Join(a.files, ", ")),
		rule,
	}

	reset := ""
	if a.cfg.Colored {
		reset = a.cfg.Colors.Reset
	}
	diff := false
	// Lines only present at the end of a compared file are anchored one past the last line.
	for line := 1; line <= lines+1; line++ {
		block := a.Line(line)
		if len(block) == 0 {
			continue
		}
		if a.cfg.Width > 0 {
			for i, l := range block {
				block[i] = ansi.Truncate(l, a.cfg.Width, reset)
			}
		}
		out = append(out, strings.Join(block, "\n"))
		diff = true
	}
	if !diff {
		out = append(out, "(no diff)")
	}
	out = append(out, rule)
	return strings.Join(out, "\n")
}
