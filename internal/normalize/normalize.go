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

// Package normalize converts the tagged line stream of one comparison into change records
// anchored at the line numbers of the base.
//
// The stream interleaves lines of both inputs. Context and Added lines are lines of the base, so
// counting them recovers the position in the base. Removed and Highlight lines take up a position
// in the stream without representing a base line and shift everything after them back by one.
package normalize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"znkr.io/multidiff/internal/ndiff"
	"znkr.io/multidiff/internal/record"
)

// ErrMalformed is returned if a line stream violates the stream contract.
var ErrMalformed = errors.New("malformed diff")

// state is the state of a single normalization pass.
type state struct {
	// offset translates a 0-based stream position into a 1-based base line number.
	offset int

	// last is the index of the most recently emitted record, or -1.
	last int

	// anchored is true if the previous stream line was a Removed or Added line.
	anchored bool

	// highlights maps record text to the intraline markers seen for it.
	highlights map[string]string
}

// Normalize converts the line stream that compares the file named source to the base into
// records. The stream must have been produced with the file as the first and the base as the
// second input.
func Normalize(source string, stream []ndiff.Line) ([]record.Record, error) {
	st := state{
		offset:     1,
		last:       -1,
		highlights: make(map[string]string),
	}
	var recs []record.Record
	for pos, l := range stream {
		switch l.Tag {
		case ndiff.Context:
			st.anchored = false

		case ndiff.Removed, ndiff.Added:
			kind := record.Added
			if l.Tag == ndiff.Removed {
				kind = record.Removed
			}
			recs = append(recs, record.Record{
				Line:   pos + st.offset,
				Kind:   kind,
				Text:   trim(l.String()),
				Source: source,
			})
			st.last = len(recs) - 1
			st.anchored = true
			if kind == record.Removed {
				st.offset--
			}

		case ndiff.Highlight:
			if !st.anchored {
				return nil, fmt.Errorf("%w: %s: highlight at position %d does not follow a changed line", ErrMalformed, source, pos)
			}
			st.highlights[recs[st.last].Text] = trim(l.String())
			st.anchored = false
			st.offset--

		default:
			return nil, fmt.Errorf("%w: %s: unknown tag %v at position %d", ErrMalformed, source, l.Tag, pos)
		}
	}

	// Highlights are attached by text, a later highlight for the same text wins.
	for i := range recs {
		recs[i].Highlight = st.highlights[recs[i].Text]
	}
	return recs, nil
}

func trim(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }
