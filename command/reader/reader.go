/*
 * mppsim - Interactive console reader.
 *
 * Copyright 2026, mppsim contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package reader drives an interactive line-editing console on top of
// package parser, the way the command line of a physical MPP host would
// accept operator commands.
package reader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/tadashi9e/mppsim/command/parser"
	"github.com/tadashi9e/mppsim/internal/controller"
)

const historyFile = ".mppsim_history"

const prompt = "mpp> "

// Run reads commands from the terminal until the user quits or enters
// EOF. Ctrl-C abandons the line being typed and prompts again. Each
// accepted line is handed to parser.ProcessCommand.
func Run(c *controller.Controller) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return parser.CompleteCmd(partial)
	})

	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	for {
		text, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return fmt.Errorf("reader: %w", err)
		}

		if strings.TrimSpace(text) != "" {
			line.AppendHistory(text)
		}

		quit, err := parser.ProcessCommand(text, c)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			slog.Warn("command failed", "line", text, "err", err)
		}
		if quit {
			break
		}
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
	return nil
}
