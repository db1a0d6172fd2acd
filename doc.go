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

// Package multidiff compares one base text against any number of other texts and renders a
// single report of all differences.
//
// Every text is compared to the base line by line (see [znkr.io/multidiff/textdiff]). The
// changes of all comparisons are then merged per line of the base: for each base line, the
// report lists every distinct variant found across the compared texts, how many of them contain
// that variant, and which ones if not all of them do. Rare variants come first, the variant most
// texts agree on comes last. At most three variants per line and kind are shown by default, see
// [MaxGroups].
//
// A report for a base compared with three files where two of them changed the same line in the
// same way looks like this:
//
//	Comparing base.cfg with a.cfg, b.cfg, c.cfg
//	=====
//	3 - version = '1.6.20' (1/3) c.cfg
//	3 - version = '2.6.10' (2/3) a.cfg, b.cfg
//	3 + version = '1.6.10' (3/3)
//
//	-----
//
//	=====
//
// Lines prefixed with "-" are lines of the compared texts, lines prefixed with "+" are the lines
// of the base they differ from. When color is enabled (see [Colored]), changed characters within
// similar lines are highlighted; otherwise they are marked in a separate line below the text.
//
// [znkr.io/multidiff/textdiff]: https://pkg.go.dev/znkr.io/multidiff/textdiff
package multidiff
