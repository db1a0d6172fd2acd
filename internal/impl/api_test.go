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

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/multidiff/internal/config"
)

var minimalConfig = func() config.Config {
	cfg := config.Default
	cfg.Mode = config.ModeMinimal
	return cfg
}()

func lines(s string) []string { return strings.Split(s, "") }

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
		want string
	}{
		{
			name: "identical",
			x:    []string{"name = 'x'", "version = '1'"},
			y:    []string{"name = 'x'", "version = '1'"},
			want: "MM",
		},
		{
			name: "empty",
			want: "",
		},
		{
			name: "x-empty",
			y:    []string{"a", "b", "c"},
			want: "III",
		},
		{
			name: "y-empty",
			x:    []string{"a", "b", "c"},
			want: "DDD",
		},
		{
			name: "changed-line",
			x:    []string{"name = 'x'", "version = '2'", "end"},
			y:    []string{"name = 'x'", "version = '1'", "end"},
			want: "MDIM",
		},
		{
			name: "ABCABBA_to_CBABAC",
			x:    lines("ABCABBA"),
			y:    lines("CBABAC"),
			want: "DIMDMMDMI",
		},
		{
			name: "unique-lines-only",
			x:    lines("pq"),
			y:    lines("rs"),
			want: "DDII",
		},
		{
			name: "unique-lines-between-matches",
			x:    lines("xAyB"),
			y:    lines("AzBw"),
			want: "DMDIMI",
		},
		{
			name: "repeated-lines",
			x:    lines("aabaa"),
			y:    lines("aaa"),
			want: "MMDDM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, cfg := range []config.Config{config.Default, minimalConfig} {
				rx, ry := Diff(tt.x, tt.y, cfg)
				got := render(rx, ry, len(tt.x), len(tt.y))
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Diff(...) with mode %v differs [-want,+got]:\n%s", cfg.Mode, diff)
				}
			}
		})
	}
}

func TestPreprocess(t *testing.T) {
	x := lines("aXbcY")
	y := lines("bZac")
	rx, ry := make([]bool, len(x)+1), make([]bool, len(y)+1)
	x0, y0, xpos, ypos := preprocess(rx, ry, 0, len(x), 0, len(y), x, y)

	// IDs follow the first appearance in x.
	if diff := cmp.Diff([]int{0, 2, 3}, x0); diff != "" {
		t.Errorf("preprocess(...) x0 differs [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 0, 3}, y0); diff != "" {
		t.Errorf("preprocess(...) y0 differs [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2, 3}, xpos); diff != "" {
		t.Errorf("preprocess(...) xpos differs [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2, 3}, ypos); diff != "" {
		t.Errorf("preprocess(...) ypos differs [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true, false, false, true, false}, rx); diff != "" {
		t.Errorf("preprocess(...) rx differs [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true, false, false, false}, ry); diff != "" {
		t.Errorf("preprocess(...) ry differs [-want,+got]:\n%s", diff)
	}
}

// TestDiffLarge checks that the result is a valid alignment for inputs large enough to trigger
// the cost heuristics, and that the minimal mode never needs more edits.
func TestDiffLarge(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{100, 1000, 10000} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			x := make([]string, n)
			for i := range x {
				x[i] = fmt.Sprint(rng.IntN(n / 10)) // many repeated lines
			}
			y := make([]string, 0, n)
			for _, l := range x {
				switch rng.IntN(4) {
				case 0: // drop
				case 1:
					y = append(y, fmt.Sprint(rng.IntN(n/10)), l)
				default:
					y = append(y, l)
				}
			}

			edits := make(map[config.Mode]int)
			for _, cfg := range []config.Config{config.Default, minimalConfig} {
				rx, ry := Diff(x, y, cfg)
				if err := validate(x, y, rx, ry); err != nil {
					t.Fatalf("Diff(...) with mode %v returned an invalid alignment: %v", cfg.Mode, err)
				}
				got := render(rx, ry, len(x), len(y))
				edits[cfg.Mode] = len(got) - strings.Count(got, "M")
			}
			if edits[config.ModeMinimal] > edits[config.ModeDefault] {
				t.Errorf("minimal mode needs %d edits, default mode %d", edits[config.ModeMinimal], edits[config.ModeDefault])
			}
		})
	}
}

func BenchmarkDiff(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 2))
	x := make([]string, 10000)
	y := make([]string, 10000)
	for i := range x {
		x[i] = fmt.Sprint(rng.IntN(1000))
		y[i] = fmt.Sprint(rng.IntN(1000))
	}
	b.ReportAllocs()
	for b.Loop() {
		Diff(x, y, config.Default)
	}
}

// validate checks that the lines of x and y that are not marked as changed are identical.
func validate(x, y []string, rx, ry []bool) error {
	var xs, ys []string
	for s, l := range x {
		if !rx[s] {
			xs = append(xs, l)
		}
	}
	for t, l := range y {
		if !ry[t] {
			ys = append(ys, l)
		}
	}
	if diff := cmp.Diff(xs, ys); diff != "" {
		return fmt.Errorf("unchanged lines differ [-x,+y]:\n%s", diff)
	}
	return nil
}

func render(rx, ry []bool, n, m int) string {
	var sb strings.Builder
	for s, t := 0, 0; s < n || t < m; {
		if rx[s] {
			sb.WriteRune('D')
			s++
		} else if ry[t] {
			sb.WriteRune('I')
			t++
		} else {
			sb.WriteRune('M')
			s++
			t++
		}
	}
	return sb.String()
}
