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

// Package record defines the change records that flow from the normalizer into the aggregator.
package record

// Markers used in record text and highlight strings.
const (
	MarkRemoved   = '-'
	MarkAdded     = '+'
	MarkChanged   = '^'
	MarkUnchanged = ' '
)

// Kind classifies a record.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind
type Kind int

const (
	Removed Kind = iota // Text present in the compared file but not in base at this position.
	Added               // Text of base where the compared file differs.
)

// Kinds lists all kinds in rendering order.
var Kinds = [...]Kind{Removed, Added}

// Record is one textual variant observed at one base line, from one source file.
type Record struct {
	Line      int    // 1-based line number in base the change is anchored to.
	Kind      Kind   // Removed or Added.
	Text      string // Line content prefixed with the kind's marker, right-trimmed.
	Source    string // Name of the compared file.
	Highlight string // Intraline markers aligned with Text, or empty.
}
