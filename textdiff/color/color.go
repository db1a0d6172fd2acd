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

// Package color provides options to change the ANSI escape sequences used in colored reports.
//
// Each option takes SGR parameters, e.g. color.Added(1, 32) renders added lines in bold green.
package color

import (
	"fmt"
	"strings"

	"znkr.io/multidiff/internal/config"
)

// Option changes one entry of the color table.
type Option func(*config.ColorConfig)

// Base sets the color of the base file name in the report header.
func Base(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Base = code
	}
}

// Added sets the color of lines and characters only present in the base.
func Added(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Added = code
	}
}

// Removed sets the color of lines and characters only present in a compared file.
func Removed(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Removed = code
	}
}

func format(params []int) string {
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteRune(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteRune('m')
	return sb.String()
}
