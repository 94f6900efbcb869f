// Copyright 2020 Jim Smart
// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli is the external-collaborator front end described in
// spec.md §6: it reads flags, loads robots.txt bytes from a file or
// stdin, and prints a verdict with a process exit code. None of the
// core parsing/matching logic lives here.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/repverdict/robotsverdict"
)

// exitError pairs an error with the process exit code it should
// produce, letting RunE report both through cobra's normal error
// return.
type exitError struct {
	code int
	err  error // nil for the "disallowed, but otherwise successful" case
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

const (
	exitAllowed     = 0
	exitDisallowed  = 1
	exitIOFailure   = 2
	exitInvalidFlag = 3
)

// Execute parses args and runs the robotscheck command, reading
// robots.txt bytes from stdin unless --file is given, and writing the
// verdict (and any error) to stdout/stderr. It returns the process
// exit code described in spec.md §6.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return exitAllowed
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "error:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "error:", err)
	return exitInvalidFlag
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		agents []string
		rawURL string
		file   string
	)

	cmd := &cobra.Command{
		Use:           "robotscheck",
		Short:         "Check whether a robots.txt document allows a crawler to fetch a URL",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(agents) == 0 {
				return &exitError{code: exitInvalidFlag, err: errors.New("at least one --agent is required")}
			}
			if rawURL == "" {
				return &exitError{code: exitInvalidFlag, err: errors.New("--url is required")}
			}

			body, err := readRobotsTxt(file, stdin)
			if err != nil {
				return &exitError{code: exitIOFailure, err: err}
			}

			doc := robotsverdict.Parse(body, nil)
			matcher := robotsverdict.NewMatcher(doc)
			allowed, err := matcher.Allowed(agents, rawURL)
			if err != nil {
				return &exitError{code: exitInvalidFlag, err: err}
			}

			printVerdict(stdout, allowed)
			if !allowed {
				return &exitError{code: exitDisallowed}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&agents, "agent", "a", nil, "candidate user-agent (repeatable, at least one required)")
	cmd.Flags().StringVarP(&rawURL, "url", "u", "", "URL to query (required)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a robots.txt file (default: read from stdin)")

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd
}

func readRobotsTxt(file string, stdin io.Reader) ([]byte, error) {
	if file == "" {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading robots.txt from stdin: %w", err)
		}
		return body, nil
	}
	body, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading robots.txt from %s: %w", file, err)
	}
	return body, nil
}

func printVerdict(w io.Writer, allowed bool) {
	if allowed {
		color.New(color.FgGreen).Fprintln(w, "ALLOWED")
		return
	}
	color.New(color.FgRed).Fprintln(w, "DISALLOWED")
}
