/*
 * mppsim - Console command parser.
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

// Package parser turns one console line into one call against a
// controller.Controller. This is a thin client of the controller's Go
// API, not part of the emulator core.
package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/tadashi9e/mppsim/internal/controller"
)

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *controller.Controller) (quit bool, err error)
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "reset", min: 3, process: doReset},
	{name: "loada", min: 5, process: doLoadA},
	{name: "loadb", min: 5, process: doLoadB},
	{name: "store", min: 3, process: doStore},
	{name: "recv", min: 4, process: doRecv},
	{name: "send", min: 4, process: doSend},
	{name: "sendbulk", min: 5, process: doSendBulk},
	{name: "newsn", min: 5, process: doNewsN},
	{name: "newss", min: 5, process: doNewsS},
	{name: "newse", min: 5, process: doNewsE},
	{name: "newsw", min: 5, process: doNewsW},
	{name: "ucrecv", min: 3, process: doUnicastRecv},
	{name: "ucsend", min: 3, process: doUnicastSend},
	{name: "help", min: 1, process: doHelp},
	{name: "quit", min: 1, process: doQuit},
	{name: "exit", min: 1, process: doQuit},
}

// ProcessCommand parses and executes one command line against c. The
// returned bool is true once the caller should stop reading commands.
func ProcessCommand(commandLine string, c *controller.Controller) (bool, error) {
	line := cmdLine{line: commandLine}
	word := line.getWord()

	match := matchList(word)
	switch len(match) {
	case 0:
		if word == "" {
			return false, nil
		}
		return false, errors.New("command not found: " + word)
	case 1:
		return match[0].process(&line, c)
	default:
		return false, errors.New("ambiguous command: " + word)
	}
}

// CompleteCmd returns the list of command names matching the partial
// word currently being typed, for console tab-completion.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	word := line.getWord()
	if !line.isEOL() {
		return nil
	}
	var out []string
	for _, m := range cmdList {
		if word != "" && strings.HasPrefix(m.name, word) {
			out = append(out, m.name)
		}
	}
	return out
}

func matchCommand(m cmd, word string) bool {
	if len(word) > len(m.name) || len(word) < m.min {
		return false
	}
	return m.name[:len(word)] == word
}

func matchList(word string) []cmd {
	if word == "" {
		return nil
	}
	var out []cmd
	for _, m := range cmdList {
		if matchCommand(m, word) {
			out = append(out, m)
		}
	}
	return out
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) isEOL() bool {
	return l.pos >= len(l.line)
}

// getWord returns the next run of non-space characters, lower-cased.
func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.line) && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return strings.ToLower(l.line[start:l.pos])
}

func (l *cmdLine) getUint(bitSize int) (uint64, error) {
	word := l.getWord()
	if word == "" {
		return 0, errors.New("expected a number, got end of line")
	}
	base := 10
	if strings.HasPrefix(word, "0x") {
		base = 16
		word = word[2:]
	}
	return strconv.ParseUint(word, base, bitSize)
}

func (l *cmdLine) getBool() (bool, error) {
	word := l.getWord()
	switch word {
	case "1", "true", "t":
		return true, nil
	case "0", "false", "f":
		return false, nil
	default:
		return false, errors.New("expected 0/1 or true/false, got " + word)
	}
}
