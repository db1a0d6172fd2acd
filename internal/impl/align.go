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

package impl

import "math"

// aligner computes a shortest edit script between two sequences of line IDs with the linear space
// variant of Myers' algorithm ("An O(ND) Difference Algorithm and Its Variations", 1986). For
// large inputs with many differences, two heuristics known from GNU diff bound the cost at the
// expense of a minimal result.
type aligner struct {
	x, y []int

	// Lines unique to one side are not part of x and y: x[s] is line xpos[s] of the input.
	xpos, ypos []int

	rx, ry []bool

	// Furthest reaching s-coordinate on diagonal k = s-t, stored at off+k, for the forward and
	// the backward search.
	fwd, bwd []int
	off      int

	// Search depth after which a suboptimal split is accepted.
	costLimit int
}

// box is the part of the edit grid x[smin:smax], y[tmin:tmax] a search runs in.
type box struct {
	smin, smax int
	tmin, tmax int
}

// snake is a possibly empty run of matches from (s0, t0) to (s1, t1) on an edit path, together
// with whether the remaining problems before and after it must be solved minimally.
type snake struct {
	s0, s1, t0, t1 int
	min0, min1     bool
}

// search holds the diagonal ranges visited by one split.
type search struct {
	box
	fmid, fmin, fmax int
	bmid, bmin, bmax int
}

func newAligner(x, y, xpos, ypos []int, rx, ry []bool) *aligner {
	n := len(x) + len(y)
	vlen := 2*n + 3 // both borders and the middle diagonal
	buf := make([]int, 2*vlen)
	return &aligner{
		x:    x,
		y:    y,
		xpos: xpos,
		ypos: ypos,
		rx:   rx,
		ry:   ry,
		fwd:  buf[:vlen],
		bwd:  buf[vlen:],
		off:  n + 1,
	}
}

// align marks every deletion and insertion in the result vectors.
func (a *aligner) align(minimal bool) {
	smin, smax, tmin, tmax := findChangeBounds(a.x, a.y)

	// About the square root of the number of diagonals, but at least minCostLimit.
	limit := 1
	for i := (smax - smin) + (tmax - tmin); i != 0; i >>= 2 {
		limit <<= 1
	}
	a.costLimit = max(minCostLimit, limit)

	a.compare(box{smin, smax, tmin, tmax}, minimal)
}

// compare aligns the lines in b, which must not share a prefix or a suffix.
func (a *aligner) compare(b box, minimal bool) {
	switch {
	case b.smin == b.smax:
		for t := b.tmin; t < b.tmax; t++ {
			a.ry[a.ypos[t]] = true
		}
	case b.tmin == b.tmax:
		for s := b.smin; s < b.smax; s++ {
			a.rx[a.xpos[s]] = true
		}
	default:
		// Neither side of the snake shares a prefix or suffix with it.
		sn := a.split(b, minimal)
		a.compare(box{b.smin, sn.s0, b.tmin, sn.t0}, sn.min0)
		a.compare(box{sn.s1, b.smax, sn.t1, b.tmax}, sn.min1)
	}
}

// split returns the snake in the middle of a shortest edit path through b, or a good enough one
// if the search gets too expensive and minimal is false.
func (a *aligner) split(b box, minimal bool) snake {
	x, y, fwd, bwd, off := a.x, a.y, a.fwd, a.bwd, a.off

	kmin, kmax := b.smin-b.tmax, b.smax-b.tmin
	sr := search{box: b, fmid: b.smin - b.tmin, bmid: b.smax - b.tmax}
	sr.fmin, sr.fmax = sr.fmid, sr.fmid
	sr.bmin, sr.bmax = sr.bmid, sr.bmid

	// The length of every edit path has the parity of the size difference. Overlaps can only occur
	// in the forward pass if it's odd and in the backward pass if it's even.
	odd := ((b.smax-b.smin)-(b.tmax-b.tmin))%2 != 0

	// b has no common prefix or suffix, so there's no 0-path and the search starts at d = 1.
	fwd[off+sr.fmid] = b.smin
	bwd[off+sr.bmid] = b.smax
	for d := 1; ; d++ {
		longest := 0 // longest run of matches found for this d

		// Grow the diagonal range while it stays inside the box, otherwise shrink it to keep the
		// parity. The sentinels outside the range let the border diagonals use the same rule as
		// all others.
		if sr.fmin > kmin {
			sr.fmin--
			fwd[off+sr.fmin-1] = math.MinInt
		} else {
			sr.fmin++
		}
		if sr.fmax < kmax {
			sr.fmax++
			fwd[off+sr.fmax+1] = math.MinInt
		} else {
			sr.fmax--
		}
		for k := sr.fmin; k <= sr.fmax; k += 2 {
			i := off + k
			var s int
			if fwd[i-1] < fwd[i+1] {
				s = fwd[i+1] // insertion from diagonal k+1
			} else {
				s = fwd[i-1] + 1 // deletion from diagonal k-1, preferred on ties
			}
			t := s - k
			s0, t0 := s, t
			for s < b.smax && t < b.tmax && x[s] == y[t] {
				s++
				t++
			}
			longest = max(longest, s-s0)
			fwd[i] = s
			if odd && sr.bmin <= k && k <= sr.bmax && s >= bwd[i] {
				return snake{s0, s, t0, t, true, true}
			}
		}

		if sr.bmin > kmin {
			sr.bmin--
			bwd[off+sr.bmin-1] = math.MaxInt
		} else {
			sr.bmin++
		}
		if sr.bmax < kmax {
			sr.bmax++
			bwd[off+sr.bmax+1] = math.MaxInt
		} else {
			sr.bmax--
		}
		for k := sr.bmin; k <= sr.bmax; k += 2 {
			i := off + k
			var s int
			if bwd[i-1] < bwd[i+1] {
				s = bwd[i-1]
			} else {
				s = bwd[i+1] - 1
			}
			t := s - k
			s0, t0 := s, t
			for s > b.smin && t > b.tmin && x[s-1] == y[t-1] {
				s--
				t--
			}
			longest = max(longest, s0-s)
			bwd[i] = s
			if !odd && sr.fmin <= k && k <= sr.fmax && s <= fwd[i] {
				return snake{s, s0, t, t0, true, true}
			}
		}

		if minimal {
			continue
		}
		if longest >= goodDiagMinLen && d >= goodDiagCostLimit {
			if sn, ok := a.goodDiagonal(&sr, d); ok {
				return sn
			}
		}
		if d >= a.costLimit {
			return a.furthest(&sr)
		}
	}
}

// goodDiagonal looks for a long run of matches that ends a d-path, is not too far from a corner
// of the box, and is not too far from the middle diagonal (GOOD_DIAGONAL heuristic).
func (a *aligner) goodDiagonal(sr *search, d int) (snake, bool) {
	var best snake
	bestv := 0
	for k := sr.fmin; k <= sr.fmax; k += 2 {
		s := a.fwd[a.off+k]
		t := s - k
		if s < sr.smin || sr.smax <= s || t < sr.tmin || sr.tmax <= t {
			continue
		}
		v := (s - sr.smin) + (t - sr.tmin) - max(sr.fmid-d, d-sr.fmid)
		if v <= goodDiagMagic*d || v < bestv {
			continue
		}
		ps, pt := a.prevForward(k)
		if diag := min(s-ps, t-pt); diag >= goodDiagMinLen {
			bestv = v
			best = snake{s - diag, s, t - diag, t, true, false}
		}
	}
	for k := sr.bmin; k <= sr.bmax; k += 2 {
		s := a.bwd[a.off+k]
		t := s - k
		if s < sr.smin || sr.smax <= s || t < sr.tmin || sr.tmax <= t {
			continue
		}
		v := (sr.smax - s) + (sr.tmax - t) - max(sr.bmid-d, d-sr.bmid)
		if v <= goodDiagMagic*d || v < bestv {
			continue
		}
		ps, pt := a.prevBackward(k)
		if diag := min(ps-s, pt-t); diag >= goodDiagMinLen {
			bestv = v
			best = snake{s, s + diag, t, t + diag, false, true}
		}
	}
	return best, bestv > 0
}

// furthest picks the d-path that got furthest towards the opposite corner and splits at the run
// of matches it ends with (TOO_EXPENSIVE heuristic).
func (a *aligner) furthest(sr *search) snake {
	fbest, fk := math.MinInt, 0
	for k := sr.fmin; k <= sr.fmax; k += 2 {
		s := a.fwd[a.off+k]
		t := s - k
		if sr.smin <= s && s < sr.smax && sr.tmin <= t && t < sr.tmax && fbest < s+t {
			fbest, fk = s+t, k
		}
	}
	bbest, bk := math.MaxInt, 0
	for k := sr.bmin; k <= sr.bmax; k += 2 {
		s := a.bwd[a.off+k]
		t := s - k
		if sr.smin <= s && s < sr.smax && sr.tmin <= t && t < sr.tmax && s+t < bbest {
			bbest, bk = s+t, k
		}
	}

	switch {
	case fbest != math.MinInt && (sr.smax+sr.tmax)-bbest < fbest-(sr.smin+sr.tmin):
		s := a.fwd[a.off+fk]
		t := s - fk
		ps, pt := a.prevForward(fk)
		diag := min(s-ps, t-pt)
		return snake{s - diag, s, t - diag, t, true, false}
	case bbest != math.MaxInt:
		s := a.bwd[a.off+bk]
		t := s - bk
		ps, pt := a.prevBackward(bk)
		diag := min(ps-s, pt-t)
		return snake{s, s + diag, t, t + diag, false, true}
	default:
		panic("no path inside the search box")
	}
}

// prevForward returns the endpoint of the (d-1)-path the forward d-path on diagonal k extends.
func (a *aligner) prevForward(k int) (s, t int) {
	i := a.off + k
	pk := k - 1
	if a.fwd[i-1] < a.fwd[i+1] {
		pk = k + 1
	}
	s = a.fwd[a.off+pk]
	return s, s - pk
}

// prevBackward is the backward counterpart of prevForward.
func (a *aligner) prevBackward(k int) (s, t int) {
	i := a.off + k
	pk := k + 1
	if a.bwd[i-1] < a.bwd[i+1] {
		pk = k - 1
	}
	s = a.bwd[a.off+pk]
	return s, s - pk
}
