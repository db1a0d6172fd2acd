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

// Package impl aligns the lines of two texts.
package impl

import (
	"znkr.io/multidiff/internal/config"
	"znkr.io/multidiff/internal/rvecs"
)

// Diff aligns the lines of x and y and returns the result vectors: rx[s] is true if x[s] is
// deleted, ry[t] is true if y[t] is inserted.
func Diff[T comparable](x, y []T, cfg config.Config) (rx, ry []bool) {
	rx, ry = rvecs.Make(len(x), len(y))

	smin, smax, tmin, tmax := findChangeBounds(x, y)
	if handleTrivialBounds(rx, ry, smin, smax, tmin, tmax) {
		return
	}

	// Work with integer IDs instead of Ts. Elements that only appear in one of the inputs are
	// always deletions or insertions and don't need to take part in the search.
	x0, y0, xpos, ypos := preprocess(rx, ry, smin, smax, tmin, tmax, x, y)
	newAligner(x0, y0, xpos, ypos, rx, ry).align(cfg.Mode == config.ModeMinimal)
	return rx, ry
}

// findChangeBounds returns the upper and lower bounds for the changed portion of the inputs.
func findChangeBounds[T comparable](x, y []T) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	return
}

// handleTrivialBounds handles trivial bounds. It returns true if the bounds are trivial.
func handleTrivialBounds(rx, ry []bool, smin, smax, tmin, tmax int) bool {
	switch {
	case smin != smax && tmin == tmax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		return true
	case smin == smax && tmin != tmax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
		return true
	case smin == smax && tmin == tmax:
		return true
	default:
		return false
	}
}

// preprocess assigns an ID to every element of x[smin:smax] and y[tmin:tmax] and drops the
// elements that only appear on one side, marking them as deletions or insertions right away.
//
// The results are the following slices:
//   - x0:   x[smin:smax] as IDs except for elements that appear only in x
//   - y0:   y[tmin:tmax] as IDs except for elements that appear only in y
//   - xpos: A mapping from x0 to x: x0[s] corresponds to x[xpos[s]]
//   - ypos: A mapping from y0 to y: y0[t] corresponds to y[ypos[t]]
func preprocess[T comparable](rx, ry []bool, smin, smax, tmin, tmax int, x, y []T) (x0, y0, xpos, ypos []int) {
	idx := make(map[T]int, smax-smin)
	inx := make([]bool, 0, smax-smin) // inx[id] is true if the element also appears in y
	for _, e := range x[smin:smax] {
		if _, ok := idx[e]; !ok {
			idx[e] = len(inx)
			inx = append(inx, false)
		}
	}

	x0 = make([]int, 0, smax-smin)
	xpos = make([]int, 0, smax-smin)
	y0 = make([]int, 0, tmax-tmin)
	ypos = make([]int, 0, tmax-tmin)
	for t := tmin; t < tmax; t++ {
		id, ok := idx[y[t]]
		if !ok {
			ry[t] = true // only in y, always an insertion
			continue
		}
		inx[id] = true
		y0 = append(y0, id)
		ypos = append(ypos, t)
	}
	for s := smin; s < smax; s++ {
		id := idx[x[s]]
		if !inx[id] {
			rx[s] = true // only in x, always a deletion
			continue
		}
		x0 = append(x0, id)
		xpos = append(xpos, s)
	}
	return
}
