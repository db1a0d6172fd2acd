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

// Package rvecs works with result vectors, the representation of a line alignment shared by the
// aligner and the line differ: rx[s] is true if line s of x is deleted and ry[t] is true if line
// t of y is inserted. Both vectors end with one extra false element, so walks over them can look
// one element ahead without bounds checks.
package rvecs

// Make allocates result vectors for inputs with n and m lines.
func Make(n, m int) (rx, ry []bool) {
	r := make([]bool, n+m+2)
	return r[: n+1 : n+1], r[n+1:]
}
