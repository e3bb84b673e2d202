/*
 * mppsim - Configuration parser tests.
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

package mppconfig_test

import (
	"strings"
	"testing"

	"github.com/tadashi9e/mppsim/internal/mppconfig"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := mppconfig.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := mppconfig.Default()
	if cfg != want {
		t.Errorf("Parse(empty) = %+v, want %+v", cfg, want)
	}
}

func TestParseOverrides(t *testing.T) {
	src := `
# grid geometry
width = 128
height = 128
address_size = 0x10
log = /tmp/mppsim.log
`
	cfg, err := mppconfig.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Sizing.Width != 128 || cfg.Sizing.Height != 128 {
		t.Errorf("Sizing = %+v, want Width=128 Height=128", cfg.Sizing)
	}
	if cfg.Sizing.NChips != 128*128/64 {
		t.Errorf("NChips = %d, want %d", cfg.Sizing.NChips, 128*128/64)
	}
	if cfg.AddressSize != 0x10 {
		t.Errorf("AddressSize = %d, want 16", cfg.AddressSize)
	}
	if cfg.LogFile != "/tmp/mppsim.log" {
		t.Errorf("LogFile = %q, want /tmp/mppsim.log", cfg.LogFile)
	}
}

func TestParseRejectsUnknownDirective(t *testing.T) {
	if _, err := mppconfig.Parse(strings.NewReader("bogus = 1")); err == nil {
		t.Error("expected error for unknown directive")
	}
}

func TestParseRejectsMalformedLine(t *testing.T) {
	if _, err := mppconfig.Parse(strings.NewReader("not-a-key-value-pair")); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestParseRejectsBadNumber(t *testing.T) {
	if _, err := mppconfig.Parse(strings.NewReader("width = abc")); err == nil {
		t.Error("expected error for non-numeric width")
	}
}
