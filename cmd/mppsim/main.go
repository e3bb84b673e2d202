/*
 * mppsim - Bit-serial MPP array emulator.
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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/tadashi9e/mppsim/command/reader"
	"github.com/tadashi9e/mppsim/internal/controller"
	"github.com/tadashi9e/mppsim/internal/mppconfig"
	"github.com/tadashi9e/mppsim/internal/mpplog"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := getopt.StringLong("config", 'c', "", "configuration file")
	logPath := getopt.StringLong("log", 'l', "", "log file (overrides config)")
	width := getopt.Uint64Long("width", 'w', 0, "grid width in bits (overrides config)")
	height := getopt.Uint64Long("height", 'H', 0, "grid height in bits (overrides config)")
	addressSize := getopt.Uint64Long("address-size", 'a', 0, "per-chip memory address count (overrides config)")
	debug := getopt.BoolLong("debug", 'd', "echo all log records to stderr")
	help := getopt.BoolLong("help", 'h', "display this help and exit")
	getopt.Parse()

	if *help {
		getopt.Usage()
		return 0
	}

	cfg := mppconfig.Default()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "mppsim:", err)
			return 1
		}
		defer f.Close()
		cfg, err = mppconfig.Parse(f)
		if err != nil {
			fmt.Fprintln(os.Stderr, "mppsim:", err)
			return 1
		}
	}
	if *width != 0 {
		cfg.Sizing.Width = *width
	}
	if *height != 0 {
		cfg.Sizing.Height = *height
	}
	if *width != 0 || *height != 0 {
		cfg.Sizing.NChips = cfg.Sizing.Width * cfg.Sizing.Height / 64
	}
	if *addressSize != 0 {
		cfg.AddressSize = *addressSize
	}
	if *logPath != "" {
		cfg.LogFile = *logPath
	}

	// out stays a true nil io.Writer unless a log file is opened: a
	// typed-nil *os.File boxed into io.Writer would compare non-nil.
	var out io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "mppsim:", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	slog.SetDefault(slog.New(mpplog.NewHandler(out, nil, *debug)))

	sizing := cfg.Sizing
	c, err := controller.New(sizing, cfg.AddressSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mppsim:", err)
		return 1
	}
	defer c.Stop()

	slog.Info("mppsim starting", "width", sizing.Width, "height", sizing.Height, "address_size", cfg.AddressSize)

	if err := reader.Run(c); err != nil {
		fmt.Fprintln(os.Stderr, "mppsim:", err)
		return 1
	}
	return 0
}
