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

// Package ansi colors report lines with ANSI escape sequences and truncates them to a display
// width.
package ansi

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"znkr.io/multidiff/internal/config"
	"znkr.io/multidiff/internal/record"
)

// Ellipsis is appended to truncated lines.
const Ellipsis = "..."

// Paint wraps text in code and a reset.
func Paint(text, code string, colors config.ColorConfig) string {
	return code + text + colors.Reset
}

// Colorize colors text according to the intraline markers in highlight.
//
// Without a highlight, the whole line gets the background of its kind. Otherwise, every change
// of marker from one column to the next starts a new color: '-' and '+' always map to the colors
// of removed and added text, '^' maps to the color of kind, anything else is left uncolored.
func Colorize(text, highlight string, kind record.Kind, colors config.ColorConfig) string {
	if highlight == "" {
		return Paint(text, kindColor(kind, colors), colors)
	}

	chars := []rune(text)
	marks := []rune(highlight)
	var sb strings.Builder
	sb.Grow(len(text) + 8*len(colors.Reset))
	flag := rune(record.MarkUnchanged)
	for i, m := range marks {
		if m != flag {
			sb.WriteString(colors.Reset)
			switch m {
			case record.MarkChanged:
				sb.WriteString(kindColor(kind, colors))
			case record.MarkRemoved:
				sb.WriteString(colors.Removed)
			case record.MarkAdded:
				sb.WriteString(colors.Added)
			}
			flag = m
		}
		if i < len(chars) {
			sb.WriteRune(chars[i])
		}
	}
	sb.WriteString(colors.Reset)
	if len(marks) < len(chars) {
		sb.WriteString(string(chars[len(marks):]))
	}
	return sb.String()
}

func kindColor(kind record.Kind, colors config.ColorConfig) string {
	if kind == record.Added {
		return colors.Added
	}
	return colors.Removed
}

// Width returns the display width of s, ignoring escape sequences.
func Width(s string) int {
	w := 0
	for i := 0; i < len(s); {
		if n := escapeLen(s[i:]); n > 0 {
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		w += runewidth.RuneWidth(r)
		i += size
	}
	return w
}

// Truncate limits the display width of s to width. A truncated line is terminated with reset (if
// not empty) followed by [Ellipsis], which is cut to width if width is smaller than the ellipsis.
// Escape sequences are kept and do not count toward the width.
func Truncate(s string, width int, reset string) string {
	if Width(s) <= width {
		return s
	}
	ellipsis := Ellipsis[:min(len(Ellipsis), max(0, width))]
	limit := width - len(ellipsis)
	var sb strings.Builder
	w := 0
	for i := 0; i < len(s); {
		if n := escapeLen(s[i:]); n > 0 {
			sb.WriteString(s[i : i+n])
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		rw := runewidth.RuneWidth(r)
		if w+rw > limit {
			break
		}
		sb.WriteString(s[i : i+size])
		w += rw
		i += size
	}
	sb.WriteString(reset)
	sb.WriteString(ellipsis)
	return sb.String()
}

// escapeLen returns the length of the CSI escape sequence at the start of s, or 0.
func escapeLen(s string) int {
	if len(s) < 2 || s[0] != '\033' || s[1] != '[' {
		return 0
	}
	for i := 2; i < len(s); i++ {
		if c := s[i]; c >= 0x40 && c <= 0x7e {
			return i + 1
		}
	}
	return 0
}
