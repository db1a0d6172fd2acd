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

// Package terminal queries the properties of the terminal the report is written to.
package terminal

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is used when the width of the terminal can't be determined.
const DefaultWidth = 80

// Width returns the width of the terminal connected to f, or [DefaultWidth].
func Width(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// ColorsEnabled reports whether output to f should be colored. It honors NO_COLOR, CLICOLOR and
// CLICOLOR_FORCE and returns false if f is not a terminal.
func ColorsEnabled(f *os.File) bool {
	if f == nil {
		return false
	}
	return termenv.NewOutput(f).EnvColorProfile() != termenv.Ascii
}
