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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// TerminalPrompter is the default Prompter: it writes a colored prompt to
// an output stream and reads a line from an input stream, the same
// stdin/stdout pairing the teacher's CLI commands use for interactive
// input.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

// NewTerminalPrompter builds a TerminalPrompter reading from in and writing
// prompts to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{In: in, Out: out, scanner: bufio.NewScanner(in)}
}

// IsInteractive reports whether in is a real terminal, the same check the
// teacher's --prompt flag handling makes before allowing interactive
// prompting.
func IsInteractive(in *os.File) bool {
	return isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd())
}

func (p *TerminalPrompter) Prompt(ctx context.Context, msg string) (string, error) {
	styled := color.New(color.FgCyan).Sprint(msg)
	if _, err := fmt.Fprint(p.Out, styled); err != nil {
		return "", err
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}
