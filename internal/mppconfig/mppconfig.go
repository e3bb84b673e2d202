/*
 * mppsim - Configuration file parser.
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

/*
 * Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * blank lines are ignored.
 * <line> := <key> '=' <value>
 * <key>  := 'width' | 'height' | 'address_size' | 'log'
 * <value> for width/height/address_size is a decimal or 0x-prefixed
 *         hex unsigned integer; for log it is taken verbatim.
 */

package mppconfig

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tadashi9e/mppsim/internal/mpp"
)

// Config holds the grid sizing and log path read from a config file.
// Fields default to the values from Default and are overridden by any
// directive present in the file.
type Config struct {
	Sizing      mpp.Sizing
	AddressSize uint64
	LogFile     string
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Sizing:      mpp.DefaultSizing(),
		AddressSize: 1024,
	}
}

// Parse reads directives from r, starting from Default() and overriding
// fields as directives are encountered. Unknown keys and malformed
// values are reported as errors referencing the offending line.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Config{}, fmt.Errorf("mppconfig: line %d: expected 'key = value', got %q", lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "width":
			v, err := parseUint(value)
			if err != nil {
				return Config{}, fmt.Errorf("mppconfig: line %d: width: %w", lineNo, err)
			}
			cfg.Sizing.Width = v
		case "height":
			v, err := parseUint(value)
			if err != nil {
				return Config{}, fmt.Errorf("mppconfig: line %d: height: %w", lineNo, err)
			}
			cfg.Sizing.Height = v
		case "address_size":
			v, err := parseUint(value)
			if err != nil {
				return Config{}, fmt.Errorf("mppconfig: line %d: address_size: %w", lineNo, err)
			}
			cfg.AddressSize = v
		case "log":
			cfg.LogFile = value
		default:
			return Config{}, fmt.Errorf("mppconfig: line %d: unknown directive %q", lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("mppconfig: %w", err)
	}

	cfg.Sizing.NChips = cfg.Sizing.Width * cfg.Sizing.Height / 64
	return cfg, nil
}

func parseUint(s string) (uint64, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}
