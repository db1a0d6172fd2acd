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

// minCostLimit is the smallest search depth at which the TOO_EXPENSIVE heuristic kicks in.
const minCostLimit = 4096

// GOOD_DIAGONAL heuristic.
const (
	goodDiagMinLen    = 20  // minimal run of matches
	goodDiagCostLimit = 256 // minimal search depth
	goodDiagMagic     = 4   // weight of the distance to the middle diagonal
)
