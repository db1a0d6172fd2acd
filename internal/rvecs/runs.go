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

package rvecs

import "iter"

// Run describes a maximal block of consecutive edits of the same shape.
//
// A run is either a block of matches (Match is true, S1-S0 == T1-T0), or a block of changes where
// x[S0:S1] is deleted and y[T0:T1] is inserted. Either side of a change may be empty.
type Run struct {
	S0, S1 int // Start and end of the run in x.
	T0, T1 int // Start and end of the run in y.
	Match  bool
}

// Runs iterates over the result vectors and yields alternating change and match runs.
func Runs(rx, ry []bool) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		n, m := len(rx)-1, len(ry)-1
		for s, t := 0, 0; s < n || t < m; {
			if rx[s] || ry[t] {
				r := Run{S0: s, T0: t}
				for s < n && rx[s] {
					s++
				}
				for t < m && ry[t] {
					t++
				}
				r.S1, r.T1 = s, t
				if !yield(r) {
					return
				}
				continue
			}
			r := Run{S0: s, T0: t, Match: true}
			for s < n && t < m && !rx[s] && !ry[t] {
				s++
				t++
			}
			r.S1, r.T1 = s, t
			if !yield(r) {
				return
			}
		}
	}
}
