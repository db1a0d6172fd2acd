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

// gitdiff is a tool that can be used with git using GIT_EXTERNAL_DIFF.
//
// It prints a multidiff report of the new version of each changed file compared with the old
// version:
//
//	GIT_EXTERNAL_DIFF=gitdiff git diff HEAD~1
//
// Added and deleted files are compared against an empty text.
package main

import (
	"fmt"
	"io"
	"os"

	"znkr.io/multidiff"
	"znkr.io/multidiff/internal/terminal"
	"znkr.io/multidiff/textdiff"
)

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 8 {
		return fmt.Errorf("expected at least 8 args, got %v: %v", len(args), args)
	}

	path, oldFile, oldHex, newFile, newHex := args[1], args[2], args[3], args[5], args[6]

	old, err := read("a/"+path, oldFile)
	if err != nil {
		return err
	}
	new, err := read("b/"+path, newFile)
	if err != nil {
		return err
	}

	f, _ := out.(*os.File)
	report, err := multidiff.Compare(old, []multidiff.Text{new},
		multidiff.Colored(terminal.ColorsEnabled(f)),
		multidiff.Width(terminal.Width(f)),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(out, "index %s..%s\n", short(oldHex), short(newHex))
	fmt.Fprintln(out, report)
	return nil
}

func read(name, file string) (multidiff.Text, error) {
	if file == "/dev/null" {
		return multidiff.Text{Name: name}, nil
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return multidiff.Text{}, fmt.Errorf("reading %s: %w", name, err)
	}
	return multidiff.Text{Name: name, Lines: textdiff.SplitLines(string(b))}, nil
}

func short(hex string) string {
	return hex[:min(len(hex), 10)]
}
