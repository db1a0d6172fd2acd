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

package multidiff

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
	"znkr.io/multidiff/textdiff"
)

var update = flag.Bool("update", false, "update golden files")

type test struct {
	name     string
	filename string
	archive  *txtar.Archive
	base     Text
	others   []Text
	opts     []Option
	want     string
}

func TestCompare(t *testing.T) {
	for _, tt := range parseTests(t) {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.base, tt.others, tt.opts...)
			if err != nil {
				t.Fatalf("Compare(...) failed: %v", err)
			}
			got += "\n"
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compare(...) result are different:\ngot:\n%s\nwant:\n%s\ndiff [-want,+got]:\n%s", got, tt.want, diff)
			}
			if *update {
				writeGolden(t, tt, got)
			}
		})
	}
}

func TestCompareEdgeCases(t *testing.T) {
	base := Text{Name: "base", Lines: []string{"a", "b"}}
	tests := []struct {
		name   string
		base   Text
		others []Text
		opts   []Option
		want   string
	}{
		{
			name: "no-files",
			base: base,
			want: "Comparing base with \n=====\n(no diff)\n=====",
		},
		{
			name:   "empty-base",
			base:   Text{Name: "base"},
			others: []Text{{Name: "f", Lines: []string{"x"}}},
			want:   "Comparing base with f\n=====\n1 - x (1/1)\n \n-----\n \n=====",
		},
		{
			name:   "empty-file",
			base:   base,
			others: []Text{{Name: "f"}},
			want:   "Comparing base with f\n=====\n1 + a (1/1)\n2 + b (1/1)\n \n-----\n \n=====",
		},
		{
			name:   "separator-width",
			base:   base,
			others: []Text{{Name: "f", Lines: []string{"a"}}},
			opts:   []Option{SeparatorWidth(2)},
			want:   "Comparing base with f\n==\n2 + b (1/1)\n \n--\n \n==",
		},
		{
			name:   "truncated",
			base:   Text{Name: "base", Lines: []string{"a rather long line"}},
			others: []Text{{Name: "f", Lines: []string{"zzzzzzzzzzzzzzzzz"}}},
			opts:   []Option{Width(12)},
			want:   "Comparing base with f\n=====\n1 - zzzzz...\n1 + a rat...\n \n-----\n \n=====",
		},
		{
			name:   "colored",
			base:   base,
			others: []Text{{Name: "f", Lines: []string{"a"}}},
			opts:   []Option{Colored(true)},
			want: "Comparing \033[0;35mbase\033[0m with f\n=====\n" +
				"2 \033[0;42m+ b\033[0m (1/1)\n \n-----\n \n=====",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{Width(200)}, tt.opts...)
			got, err := Compare(tt.base, tt.others, opts...)
			if err != nil {
				t.Fatalf("Compare(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compare(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestCompareWithMalformedDiff(t *testing.T) {
	differ := func(file, base []string) []textdiff.Line {
		return []textdiff.Line{{Tag: textdiff.Highlight, Text: "^"}}
	}
	base := Text{Name: "base", Lines: []string{"a"}}
	others := []Text{{Name: "f", Lines: []string{"b"}}}
	_, err := CompareWith(differ, base, others, Width(80))
	if !errors.Is(err, ErrMalformedDiff) {
		t.Errorf("CompareWith(...) error = %v, want %v", err, ErrMalformedDiff)
	}
}

func TestCompareWithCustomDiffer(t *testing.T) {
	// A differ that reports every line of the file as changed.
	differ := func(file, base []string) []textdiff.Line {
		var out []textdiff.Line
		for _, l := range file {
			out = append(out, textdiff.Line{Tag: textdiff.Removed, Text: l})
		}
		for _, l := range base {
			out = append(out, textdiff.Line{Tag: textdiff.Added, Text: l})
		}
		return out
	}
	base := Text{Name: "base", Lines: []string{"a"}}
	others := []Text{{Name: "f", Lines: []string{"a"}}}
	got, err := CompareWith(differ, base, others, Width(80))
	if err != nil {
		t.Fatalf("CompareWith(...) failed: %v", err)
	}
	want := "Comparing base with f\n=====\n1 - a (1/1)\n1 + a (1/1)\n \n-----\n \n====="
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CompareWith(...) result are different [-want,+got]:\n%s", diff)
	}
}

func TestCompareWithCallsDifferConcurrently(t *testing.T) {
	base := Text{Name: "base", Lines: []string{"a = 1", "b = 2", "c = 3"}}
	var others []Text
	for i := range 16 {
		others = append(others, Text{
			Name:  "f" + strconv.Itoa(i),
			Lines: []string{"a = 1", "b = " + strconv.Itoa(i), "c = 3"},
		})
	}

	// Every call waits until all files are being compared at the same time.
	var calls atomic.Int32
	all := make(chan struct{})
	var once sync.Once
	differ := func(file, base []string) []textdiff.Line {
		if calls.Add(1) == int32(len(others)) {
			once.Do(func() { close(all) })
		}
		select {
		case <-all:
		case <-time.After(10 * time.Second):
			t.Error("differ wasn't called concurrently for all files")
		}
		return textdiff.Lines(file, base)
	}

	got, err := CompareWith(differ, base, others, Width(200))
	if err != nil {
		t.Fatalf("CompareWith(...) failed: %v", err)
	}
	if n := calls.Load(); n != int32(len(others)) {
		t.Errorf("CompareWith(...) called differ %d times, want %d", n, len(others))
	}
	want, err := Compare(base, others, Width(200))
	if err != nil {
		t.Fatalf("Compare(...) failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CompareWith(...) result is different from Compare(...) [-want,+got]:\n%s", diff)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		return path
	}
	base := write("base.cfg", "a\nb\n")
	f1 := write("f1.cfg", "a\nc\n")
	f2 := write("f2.cfg", "a\nb\n")

	got, err := Files(base, []string{f1, f2}, Width(80))
	if err != nil {
		t.Fatalf("Files(...) failed: %v", err)
	}
	want := "Comparing base.cfg with f1.cfg, f2.cfg\n=====\n2 - c (1/2) f1.cfg\n2 + b (1/2) f1.cfg\n \n-----\n \n====="
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Files(...) result are different [-want,+got]:\n%s", diff)
	}

	if _, err := Files(base, []string{filepath.Join(dir, "missing")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Files(...) with missing file: error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadText(path)
	if err != nil {
		t.Fatalf("ReadText(%q) failed: %v", path, err)
	}
	want := Text{Name: "file.txt", Lines: []string{"one", "two"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadText(%q) result are different [-want,+got]:\n%s", path, diff)
	}
}

func BenchmarkCompare(b *testing.B) {
	for _, tt := range parseTests(b) {
		b.Run(tt.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = Compare(tt.base, tt.others, tt.opts...)
			}
		})
	}
}

// parseTests reads the golden tests from testdata. Every test is a txtar archive with a file
// named "base", any number of files compared to it, and the expected "report". The report may
// start with pragma lines of the form "# key: value".
func parseTests(t testing.TB) []test {
	t.Helper()
	testFiles, err := filepath.Glob("testdata/*.test")
	if err != nil {
		t.Fatalf("Failed to read testdata: %v", err)
	}
	var tests []test
	for _, filename := range testFiles {
		ar, err := txtar.ParseFile(filename)
		if err != nil {
			t.Fatalf("failed to parse test case: %v", err)
		}
		tt := test{
			name:     strings.TrimSuffix(strings.TrimPrefix(filename, "testdata/"), ".test"),
			filename: filename,
			archive:  ar,
			opts:     []Option{Width(200)},
		}
		for _, f := range ar.Files {
			switch f.Name {
			case "base":
				tt.base = Text{Name: f.Name, Lines: textdiff.SplitLines(string(f.Data))}
			case "report":
				data := f.Data
				for len(data) > 0 && data[0] == '#' {
					eol := bytes.IndexByte(data, '\n')
					if eol < 0 {
						t.Fatal("failed to parse test case: missing newline after pragma line")
					}
					k, v, found := strings.Cut(string(data[1:eol]), ":")
					if !found {
						t.Fatal("failed to parse test case: missing ':' in pragma line")
					}
					switch k, v := strings.TrimSpace(k), strings.TrimSpace(v); k {
					case "max-groups":
						n, err := strconv.Atoi(v)
						if err != nil {
							t.Fatalf("invalid value for max-groups: %q", v)
						}
						tt.opts = append(tt.opts, MaxGroups(n))
					case "minimal":
						if v == "true" {
							tt.opts = append(tt.opts, textdiff.Minimal())
						}
					default:
						t.Fatalf("unknown pragma %q", k)
					}
					data = data[eol+1:]
				}
				tt.want = string(data)
			default:
				tt.others = append(tt.others, Text{Name: f.Name, Lines: textdiff.SplitLines(string(f.Data))})
			}
		}
		tests = append(tests, tt)
	}
	return tests
}

// writeGolden replaces the report in the golden file with got, keeping pragma lines.
func writeGolden(t *testing.T, tt test, got string) {
	t.Helper()
	for i, f := range tt.archive.Files {
		if f.Name != "report" {
			continue
		}
		var pragmas []byte
		for _, line := range bytes.SplitAfter(f.Data, []byte("\n")) {
			if len(line) == 0 || line[0] != '#' {
				break
			}
			pragmas = append(pragmas, line...)
		}
		tt.archive.Files[i].Data = append(pragmas, got...)
	}
	if err := os.WriteFile(tt.filename, txtar.Format(tt.archive), 0o644); err != nil {
		t.Fatalf("error writing golden file: %v", err)
	}
}
