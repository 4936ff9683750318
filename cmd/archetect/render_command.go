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
	"context"
	"fmt"
	"os"

	"github.com/abcxyz/pkg/cli"
	"github.com/abcxyz/pkg/logging"

	"github.com/archetect-dev/archetect/internal/engine"
	"github.com/archetect-dev/archetect/internal/layout"
)

// RenderCommand implements the `archetect render` subcommand: instantiate
// an archetype into a destination directory.
type RenderCommand struct {
	cli.BaseCommand
	flags RenderFlags
}

func (c *RenderCommand) Desc() string {
	return "instantiate an archetype into a project directory"
}

func (c *RenderCommand) Help() string {
	return `
Usage: {{ COMMAND }} [options] <location>

The {{ COMMAND }} command renders the given archetype.

The "<location>" is the archetype's origin. Accepted forms:

  - "user@host:path/repo.git#ref" -- SSH-short git.
  - "https://host/path/repo.git" -- HTTPS git.
  - "file:///local/path" -- a local directory URL.
  - "/local/path" or "./relative/path" -- a local directory or manifest file.`
}

func (c *RenderCommand) Flags() *cli.FlagSet {
	set := c.NewFlagSet()
	c.flags.Register(set)
	return set
}

func (c *RenderCommand) Run(ctx context.Context, args []string) error {
	if err := c.Flags().Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	c.setLogEnvVars()
	ctx = logging.WithLogger(ctx, logging.NewFromEnv("ARCHETECT_"))
	logger := logging.FromContext(ctx)

	lp, err := layout.NewNative()
	if err != nil {
		return fmt.Errorf("resolving layout: %w", err)
	}

	builder := engine.NewBuilder().
		WithLayout(lp).
		WithOffline(c.flags.Offline).
		WithHeadless(c.flags.Headless).
		WithLogger(logger).
		WithStdio(c.Stdout(), c.Stderr())

	for _, sw := range c.flags.Switches {
		builder = builder.WithSwitch(sw)
	}

	eng, err := builder.Build()
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	fileAnswers, err := loadAnswerFiles(c.flags.AnswerFiles)
	if err != nil {
		return err
	}

	// --answer takes precedence over --input-file for any key given by both.
	answers := make(map[string]any, len(fileAnswers)+len(c.flags.Answers))
	for k, v := range fileAnswers {
		answers[k] = v
	}
	for k, v := range c.flags.Answers {
		answers[k] = v
	}

	return eng.Render(ctx, &engine.RenderParams{
		Location:       c.flags.Location,
		Destination:    c.flags.Dest,
		Answers:        answers,
		ForceOverwrite: c.flags.ForceOverwrite,
		DryRun:         c.flags.DryRun,
	})
}

func (c *RenderCommand) setLogEnvVars() {
	if os.Getenv("ARCHETECT_LOG_FORMAT") == "" {
		os.Setenv("ARCHETECT_LOG_FORMAT", string(defaultLogFormat))
	}

	if c.flags.LogLevel != "" {
		os.Setenv("ARCHETECT_LOG_LEVEL", c.flags.LogLevel)
	} else if os.Getenv("ARCHETECT_LOG_LEVEL") == "" {
		os.Setenv("ARCHETECT_LOG_LEVEL", defaultLogLevel)
	}
}
