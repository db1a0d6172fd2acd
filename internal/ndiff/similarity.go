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

package ndiff

// level tells how much is known about the similarity of a pair of lines.
type level uint8

const (
	unknown   level = iota
	lengths         // upper bound from the line lengths
	multiset        // upper bound from the characters both lines have, regardless of order
	exact           // ratio
	identical       // lines are equal
)

type estimate struct {
	v     float64
	level level
}

// maxEstimates limits the size of the estimate table of a replace block. Larger blocks are
// searched without a table.
const maxEstimates = 1 << 20

// estimates caches similarity estimates for the line pairs of one replace block. The search
// recurses into parts of the block and visits the same pairs again.
type estimates struct {
	alo, blo, width int
	table           []estimate
}

func newEstimates(alo, ahi, blo, bhi int) *estimates {
	e := &estimates{alo: alo, blo: blo, width: bhi - blo}
	if n := (ahi - alo) * (bhi - blo); n <= maxEstimates {
		e.table = make([]estimate, n)
	}
	return e
}

func (e *estimates) load(i, j int) estimate {
	if e == nil || e.table == nil {
		return estimate{}
	}
	return e.table[(i-e.alo)*e.width+(j-e.blo)]
}

func (e *estimates) store(i, j int, est estimate) {
	if e == nil || e.table == nil {
		return
	}
	e.table[(i-e.alo)*e.width+(j-e.blo)] = est
}

// estimate refines what is known about x[i] and y[j] until the lines are known to be identical,
// their ratio is known, or an upper bound shows that the ratio can neither exceed best nor reach
// the cutoff. The bounds are cheap to compute and rule out most pairs of a large block.
func (d *differ) estimate(i, j int, best float64) estimate {
	e := d.est.load(i, j)
	for e.level != identical && e.level != exact {
		if e.level != unknown && (e.v <= best || e.v < d.cutoff) {
			return e
		}
		switch e.level {
		case unknown:
			if d.x[i] == d.y[j] {
				e = estimate{level: identical}
			} else {
				e = estimate{lengthBound(len(d.xrunes(i)), len(d.yrunes(j))), lengths}
			}
		case lengths:
			e = estimate{d.quickRatio(i, j), multiset}
		case multiset:
			e = estimate{d.ratio(d.xrunes(i), d.yrunes(j)), exact}
		}
		d.est.store(i, j, e)
	}
	return e
}

// lengthBound is an upper bound of the ratio of two lines with la and lb characters.
func lengthBound(la, lb int) float64 {
	if la+lb == 0 {
		return 1
	}
	return 2 * float64(min(la, lb)) / float64(la+lb)
}

// quickRatio is an upper bound of the ratio of x[i] and y[j] that counts the characters both
// lines have in common, regardless of their order.
func (d *differ) quickRatio(i, j int) float64 {
	a, b := d.xrunes(i), d.yrunes(j)
	if len(a)+len(b) == 0 {
		return 1
	}
	hist := d.histogram(j)
	clear(d.avail)
	matches := 0
	for _, r := range a {
		n, ok := d.avail[r]
		if !ok {
			n = hist[r]
		}
		d.avail[r] = n - 1
		if n > 0 {
			matches++
		}
	}
	return 2 * float64(matches) / float64(len(a)+len(b))
}

func (d *differ) xrunes(i int) []rune {
	if d.xr[i] == nil {
		d.xr[i] = []rune(d.x[i])
	}
	return d.xr[i]
}

func (d *differ) yrunes(j int) []rune {
	if d.yr[j] == nil {
		d.yr[j] = []rune(d.y[j])
	}
	return d.yr[j]
}

// histogram returns the number of occurrences of every character in y[j].
func (d *differ) histogram(j int) map[rune]int {
	if d.yhist[j] == nil {
		hist := make(map[rune]int)
		for _, r := range d.yrunes(j) {
			hist[r]++
		}
		d.yhist[j] = hist
	}
	return d.yhist[j]
}
