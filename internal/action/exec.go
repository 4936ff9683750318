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

package action

import (
	"context"
	"os"
	"os/exec"

	"github.com/archetect-dev/archetect/internal/errs"
	"github.com/archetect-dev/archetect/internal/model"
	"github.com/archetect-dev/archetect/internal/render"
)

// execExec implements `exec(ExecAction)` (spec.md §4.5, §6): the command
// and its arguments are rendered as templates, the subprocess inherits
// stdio, and a non-zero exit is fatal unless the action sets
// allow-nonzero-exit (see DESIGN.md's Open Question decisions).
func execExec(ctx context.Context, fr *Frame, a *model.Action) error {
	ea := a.Exec

	command, err := render.String(&ea.Command.Pos, ea.Command.Val, fr.Scope)
	if err != nil {
		return err
	}

	args := make([]string, 0, len(ea.Args))
	for _, argTmpl := range ea.Args {
		rendered, err := render.String(&argTmpl.Pos, argTmpl.Val, fr.Scope)
		if err != nil {
			return err
		}
		args = append(args, rendered)
	}

	dir := fr.Destination
	if ea.Dir.Val != "" {
		rendered, err := render.String(&ea.Dir.Pos, ea.Dir.Val, fr.Scope)
		if err != nil {
			return err
		}
		dir = rendered
	}

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = fr.Stdout
	cmd.Stderr = fr.Stderr

	runErr := cmd.Run()
	if runErr == nil {
		return nil
	}

	exitErr, isExitErr := runErr.(*exec.ExitError)
	if isExitErr && ea.AllowNonzeroExit.Val {
		return nil
	}
	if isExitErr {
		return &errs.ArchetectError{Err: ea.Pos.Errorf("command %q exited with code %d", command, exitErr.ExitCode())}
	}
	return &errs.ArchetectError{Err: ea.Pos.Errorf("running command %q: %w", command, runErr)}
}
