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
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"znkr.io/multidiff/internal/aggregate"
	"znkr.io/multidiff/internal/config"
	"znkr.io/multidiff/internal/ndiff"
	"znkr.io/multidiff/internal/normalize"
	"znkr.io/multidiff/internal/record"
	"znkr.io/multidiff/internal/terminal"
	"znkr.io/multidiff/textdiff"
)

// ErrMalformedDiff is returned if a [Differ] produces a line stream that can't be aligned with
// the base.
var ErrMalformedDiff = normalize.ErrMalformed

// Text is a named text, split into lines.
type Text struct {
	Name  string
	Lines []string
}

// ReadText reads the file at path. The text is named after the last element of path.
func ReadText(path string) (Text, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Text{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Text{Name: filepath.Base(path), Lines: textdiff.SplitLines(string(b))}, nil
}

// Differ compares the lines of a file to the lines of the base and returns the tagged line
// stream as described in [textdiff.Lines].
//
// [CompareWith] calls a Differ from several goroutines at once, one call per file, so it must be
// safe for concurrent use.
type Differ func(file, base []string) []textdiff.Line

const allowed = config.Minimal | config.Cutoff | config.Colored | config.MaxGroups |
	config.SeparatorWidth | config.Width | config.Colors | config.Logger

// Compare compares every text in others with base and returns the report.
//
// All options of this package and of package textdiff are supported.
func Compare(base Text, others []Text, opts ...Option) (string, error) {
	return CompareWith(nil, base, others, opts...)
}

// CompareWith is like [Compare] but uses differ to compare each text with base. If differ is
// nil, [textdiff.Lines] is used.
func CompareWith(differ Differ, base Text, others []Text, opts ...Option) (string, error) {
	cfg := config.FromOptions(opts, allowed)
	if cfg.Width <= 0 {
		cfg.Width = terminal.Width(os.Stdout)
	}
	if differ == nil {
		differ = func(file, base []string) []textdiff.Line {
			return ndiff.Compare(file, base, cfg)
		}
	}

	// Comparisons are independent, but all records must be known before the first line is
	// rendered.
	records := make([][]record.Record, len(others))
	var g errgroup.Group
	for i, other := range others {
		g.Go(func() error {
			recs, err := normalize.Normalize(other.Name, differ(other.Lines, base.Lines))
			if err != nil {
				return err
			}
			records[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	names := make([]string, len(others))
	for i, other := range others {
		names[i] = other.Name
	}
	agg := aggregate.New(names, cfg)
	for i, recs := range records {
		cfg.Logger.Debug("compared file", "base", base.Name, "file", names[i], "records", len(recs))
		for _, r := range recs {
			agg.Add(r)
		}
	}
	return agg.Report(base.Name, len(base.Lines)), nil
}

// Files reads the file at basePath and the files at paths and compares them using [Compare].
func Files(basePath string, paths []string, opts ...Option) (string, error) {
	base, err := ReadText(basePath)
	if err != nil {
		return "", err
	}
	others := make([]Text, 0, len(paths))
	for _, p := range paths {
		t, err := ReadText(p)
		if err != nil {
			return "", err
		}
		others = append(others, t)
	}
	return Compare(base, others, opts...)
}
