// Copyright 2026 The Authors (see AUTHORS file)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strings"

	"github.com/abcxyz/pkg/cli"
	"github.com/posener/complete/v2/predict"
)

// RenderFlags describes what archetype to render, where, and with what
// answers.
type RenderFlags struct {
	// Location is the positional argument: the archetype's location
	// string (spec.md §6).
	Location string

	Dest           string
	Answers        map[string]string
	AnswerFiles    []string
	Offline        bool
	Headless       bool
	Prompt         bool
	ForceOverwrite bool
	DryRun         bool
	Switches       []string
	LogLevel       string
}

func (r *RenderFlags) Register(set *cli.FlagSet) {
	f := set.NewSection("RENDER OPTIONS")

	f.StringVar(&cli.StringVar{
		Name:    "dest",
		Aliases: []string{"d"},
		Example: "/my/project/dir",
		Target:  &r.Dest,
		Default: ".",
		Predict: predict.Dirs("*"),
		Usage:   "The target directory in which to write the rendered output.",
	})

	f.StringMapVar(&cli.StringMapVar{
		Name:    "answer",
		Example: "name=value",
		Target:  &r.Answers,
		Usage:   "The key=val pairs of archetype answers; may be repeated. Takes precedence over --input-file.",
	})

	f.StringSliceVar(&cli.StringSliceVar{
		Name:    "input-file",
		Example: "/my/answers.yaml",
		Target:  &r.AnswerFiles,
		Usage:   "YAML files of key: val archetype answers; may be repeated. A key present in more than one file is an error.",
	})

	f.BoolVar(&cli.BoolVar{
		Name:    "offline",
		Target:  &r.Offline,
		Default: false,
		Usage:   "Never touch the network; fail if a remote git source isn't already cached.",
	})

	f.BoolVar(&cli.BoolVar{
		Name:    "force-overwrite",
		Target:  &r.ForceOverwrite,
		Default: false,
		Usage:   "Allow RENDER to replace files that already exist in the destination directory.",
	})

	f.BoolVar(&cli.BoolVar{
		Name:    "dry-run",
		Target:  &r.DryRun,
		Default: false,
		Usage:   "Don't write anything to the destination directory; log a diff of what RENDER would change instead.",
	})

	f.BoolVar(&cli.BoolVar{
		Name:    "headless",
		Target:  &r.Headless,
		Default: false,
		Usage:   "Disallow interactive prompting; fail if a variable can't be resolved non-interactively.",
	})

	f.StringSliceVar(&cli.StringSliceVar{
		Name:    "switch",
		Example: "with-ci",
		Target:  &r.Switches,
		Usage:   "A named boolean flag surfaced to the archetype as switches.<name>; may be repeated.",
	})

	f.StringVar(&cli.StringVar{
		Name:    "log-level",
		Example: "info",
		Default: defaultLogLevel,
		Target:  &r.LogLevel,
		Usage:   "How verbose to log; any of debug|info|warn|error.",
	})

	set.AfterParse(func(existingErr error) error {
		r.Location = strings.TrimSpace(set.Arg(0))
		if r.Location == "" {
			return fmt.Errorf("missing <location> argument")
		}
		return nil
	})
}
