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

// Package ndiff produces a line-by-line comparison of two texts where every line of both inputs
// appears exactly once, tagged with its origin, and where similar line pairs are annotated with
// intraline markers.
package ndiff

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/multidiff/internal/config"
	"znkr.io/multidiff/internal/impl"
	"znkr.io/multidiff/internal/rvecs"
)

// Tag describes the origin of a line.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Tag
type Tag int

const (
	Context   Tag = iota // Line present in both inputs.
	Removed              // Line only in x.
	Added                // Line only in y.
	Highlight            // Intraline markers for the preceding Removed or Added line.
)

// Prefix returns the two character prefix that identifies the tag in textual output.
func (t Tag) Prefix() string {
	switch t {
	case Context:
		return "  "
	case Removed:
		return "- "
	case Added:
		return "+ "
	case Highlight:
		return "? "
	default:
		return "  "
	}
}

// Line is a single line of a comparison.
type Line struct {
	Tag  Tag
	Text string // Line content without prefix.
}

func (l Line) String() string { return l.Tag.Prefix() + l.Text }

// Compare compares x to y and returns the tagged line stream.
func Compare(x, y []string, cfg config.Config) []Line {
	rx, ry := impl.Diff(x, y, cfg)
	d := newDiffer(x, y, cfg)
	for r := range rvecs.Runs(rx, ry) {
		switch {
		case r.Match:
			d.dump(Context, x, r.S0, r.S1)
		case r.S0 == r.S1:
			d.dump(Added, y, r.T0, r.T1)
		case r.T0 == r.T1:
			d.dump(Removed, x, r.S0, r.S1)
		default:
			d.replaceBlock(r.S0, r.S1, r.T0, r.T1)
		}
	}
	return d.out
}

type differ struct {
	x, y   []string
	cutoff float64
	dmp    *diffmatchpatch.DiffMatchPatch
	out    []Line

	// Similarity search state, see similarity.go.
	est    *estimates
	xr, yr [][]rune
	yhist  []map[rune]int
	avail  map[rune]int
}

func newDiffer(x, y []string, cfg config.Config) *differ {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // deterministic output, no matter how long it takes
	return &differ{
		x:      x,
		y:      y,
		cutoff: cfg.Cutoff,
		dmp:    dmp,
		out:    make([]Line, 0, max(len(x), len(y))),
		xr:     make([][]rune, len(x)),
		yr:     make([][]rune, len(y)),
		yhist:  make([]map[rune]int, len(y)),
		avail:  make(map[rune]int),
	}
}

func (d *differ) emit(tag Tag, text string) {
	d.out = append(d.out, Line{Tag: tag, Text: text})
}

func (d *differ) dump(tag Tag, lines []string, lo, hi int) {
	for _, l := range lines[lo:hi] {
		d.emit(tag, l)
	}
}

// replaceBlock handles a block of the alignment where x[alo:ahi] is replaced by y[blo:bhi].
func (d *differ) replaceBlock(alo, ahi, blo, bhi int) {
	d.est = newEstimates(alo, ahi, blo, bhi)
	d.replace(alo, ahi, blo, bhi)
	d.est = nil
}

// replace looks for the most similar pair of lines in x[alo:ahi] and y[blo:bhi], emits it with
// intraline markers, and recurses on the lines before and after the pair. If no pair is similar
// enough, the lines are emitted as is. Of several equally similar pairs, the first one in y
// order wins.
func (d *differ) replace(alo, ahi, blo, bhi int) {
	best, besti, bestj := -1.0, -1, -1
	eqi, eqj := -1, -1
	for j := blo; j < bhi; j++ {
		for i := alo; i < ahi; i++ {
			switch e := d.estimate(i, j, best); {
			case e.level == identical:
				if eqi < 0 {
					eqi, eqj = i, j
				}
			case e.level == exact && e.v > best:
				best, besti, bestj = e.v, i, j
			}
		}
	}

	identical := false
	if best < d.cutoff {
		if eqi < 0 {
			d.plainReplace(alo, ahi, blo, bhi)
			return
		}
		besti, bestj, identical = eqi, eqj, true
	}

	d.between(alo, besti, blo, bestj)
	if identical {
		d.emit(Context, d.x[besti])
	} else {
		d.pair(d.x[besti], d.y[bestj])
	}
	d.between(besti+1, ahi, bestj+1, bhi)
}

func (d *differ) between(alo, ahi, blo, bhi int) {
	switch {
	case alo < ahi && blo < bhi:
		d.replace(alo, ahi, blo, bhi)
	case alo < ahi:
		d.dump(Removed, d.x, alo, ahi)
	case blo < bhi:
		d.dump(Added, d.y, blo, bhi)
	}
}

// plainReplace emits the shorter side first.
func (d *differ) plainReplace(alo, ahi, blo, bhi int) {
	if bhi-blo < ahi-alo {
		d.dump(Added, d.y, blo, bhi)
		d.dump(Removed, d.x, alo, ahi)
	} else {
		d.dump(Removed, d.x, alo, ahi)
		d.dump(Added, d.y, blo, bhi)
	}
}

// ratio returns the similarity of a and b in [0, 1]: twice the number of characters in a
// character diff that are common to both, divided by the total number of characters.
func (d *differ) ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	matches := 0
	for _, df := range d.dmp.DiffMainRunes(a, b, false) {
		if df.Type == diffmatchpatch.DiffEqual {
			matches += utf8.RuneCountInString(df.Text)
		}
	}
	return 2 * float64(matches) / float64(total)
}

func (d *differ) pair(a, b string) {
	atags, btags := markers(d.dmp.DiffMain(a, b, false))
	d.emit(Removed, a)
	if tags := keepWhitespace(a, atags); tags != "" {
		d.emit(Highlight, tags)
	}
	d.emit(Added, b)
	if tags := keepWhitespace(b, btags); tags != "" {
		d.emit(Highlight, tags)
	}
}

// markers converts a character diff from a to b into marker strings aligned with the runes of a
// and b. Runs of deletions and insertions between two equalities are marked as replaced.
func markers(diffs []diffmatchpatch.Diff) (atags, btags []rune) {
	del, ins := 0, 0
	flush := func() {
		switch {
		case del > 0 && ins > 0:
			atags = appendN(atags, '^', del)
			btags = appendN(btags, '^', ins)
		case del > 0:
			atags = appendN(atags, '-', del)
		case ins > 0:
			btags = appendN(btags, '+', ins)
		}
		del, ins = 0, 0
	}
	for _, df := range diffs {
		n := utf8.RuneCountInString(df.Text)
		switch df.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			atags = appendN(atags, ' ', n)
			btags = appendN(btags, ' ', n)
		case diffmatchpatch.DiffDelete:
			del += n
		case diffmatchpatch.DiffInsert:
			ins += n
		}
	}
	flush()
	return atags, btags
}

func appendN(s []rune, r rune, n int) []rune {
	for range n {
		s = append(s, r)
	}
	return s
}

// keepWhitespace replaces blank markers under tabs and spaces of line with the original
// character, so that the markers stay aligned when the line is printed, and right-trims the
// result.
func keepWhitespace(line string, tags []rune) string {
	i := 0
	for _, c := range line {
		if i >= len(tags) {
			break
		}
		if tags[i] == ' ' && (c == ' ' || c == '\t') {
			tags[i] = c
		}
		i++
	}
	return strings.TrimRight(string(tags), " \t")
}
