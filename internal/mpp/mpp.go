/*
 * mppsim - Bit-plane memory/flag store.
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

// Package mpp implements the bit-plane memory and flag store for a
// 64-PEs-per-chip massively parallel array. All operations are
// synchronous and assume single-threaded access; the command controller
// (package controller) is the only intended caller.
package mpp

import (
	"fmt"

	"github.com/tadashi9e/mppsim/internal/alu"
)

const (
	// FlagCount is the number of flag bits carried per PE.
	FlagCount = 64
	// FlagZero is the constant-zero flag: reads always yield 0.
	FlagZero = 0
	// FlagRoute is the routing flag used by the NEWS router.
	FlagRoute = 63
)

// Sizing holds the grid's fixed, construction-time parameters: the
// number of 64-PE chips and the 2-D grid they are laid out on.
type Sizing struct {
	NChips uint64
	Width  uint64
	Height uint64
}

// DefaultSizing returns the default grid configuration: 1024 chips over
// a 256x256 grid.
func DefaultSizing() Sizing {
	return Sizing{NChips: 1024, Width: 256, Height: 256}
}

// MPP owns the memory and flag bit-planes for one grid and the
// instruction latches consumed by Store.
type MPP struct {
	sizing      Sizing
	addressSize uint64

	memory []uint64 // addr*NChips + chip
	flags  []uint64 // flagIdx*NChips + chip

	// Latched by LoadA.
	addrA     uint64
	readFlag  uint8
	opS       uint8
	haveLoadA bool

	// Latched by LoadB.
	addrB       uint64
	contextFlag uint8
	opC         uint8
	haveLoadB   bool
}

// New allocates and zero-initializes a grid of the given sizing with
// addressSize words of per-PE memory. Returns a configuration error if
// the sizing or address size is invalid.
func New(sizing Sizing, addressSize uint64) (*MPP, error) {
	if sizing.NChips == 0 {
		return nil, fmt.Errorf("mpp: NChips must be positive")
	}
	if sizing.Width == 0 || sizing.Width%64 != 0 {
		return nil, fmt.Errorf("mpp: Width must be a positive multiple of 64, got %d", sizing.Width)
	}
	if sizing.Width*sizing.Height != 64*sizing.NChips {
		return nil, fmt.Errorf("mpp: Width*Height (%d) must equal 64*NChips (%d)",
			sizing.Width*sizing.Height, 64*sizing.NChips)
	}
	if addressSize == 0 {
		return nil, fmt.Errorf("mpp: addressSize must be positive")
	}

	return &MPP{
		sizing:      sizing,
		addressSize: addressSize,
		memory:      make([]uint64, addressSize*sizing.NChips),
		flags:       make([]uint64, FlagCount*sizing.NChips),
	}, nil
}

// Sizing returns the grid's fixed parameters.
func (m *MPP) Sizing() Sizing {
	return m.sizing
}

// AddressSize returns the number of per-PE memory words.
func (m *MPP) AddressSize() uint64 {
	return m.addressSize
}

// TotalCores returns 64*NChips, the total PE count.
func (m *MPP) TotalCores() uint64 {
	return 64 * m.sizing.NChips
}

// Reset zeroes all flag words. Memory is left untouched.
func (m *MPP) Reset() {
	for i := range m.flags {
		m.flags[i] = 0
	}
}

// LoadA latches the A-operand address, read flag and S truth table for
// the next Store.
func (m *MPP) LoadA(addrA uint64, readFlag, opS uint8) error {
	if addrA >= m.addressSize {
		return fmt.Errorf("mpp: addr_a %d out of range [0,%d)", addrA, m.addressSize)
	}
	if readFlag >= FlagCount {
		return fmt.Errorf("mpp: read_flag %d out of range [0,%d)", readFlag, FlagCount)
	}
	m.addrA = addrA
	m.readFlag = readFlag
	m.opS = opS
	m.haveLoadA = true
	return nil
}

// LoadB latches the B-operand address, context flag and C truth table
// for the next Store.
func (m *MPP) LoadB(addrB uint64, contextFlag, opC uint8) error {
	if addrB >= m.addressSize {
		return fmt.Errorf("mpp: addr_b %d out of range [0,%d)", addrB, m.addressSize)
	}
	if contextFlag >= FlagCount {
		return fmt.Errorf("mpp: context_flag %d out of range [0,%d)", contextFlag, FlagCount)
	}
	m.addrB = addrB
	m.contextFlag = contextFlag
	m.opC = opC
	m.haveLoadB = true
	return nil
}

// Store applies the latched ALU operation across every chip word: A, B,
// F and the context flag are read into a per-chip snapshot before
// either writeback happens, so the two truth tables operate on the same
// (a, b, f, c) values and a store can never observe its own partial
// output.
//
// writeFlag selects which flag receives the C truth table's output;
// writeFlag==0 suppresses the flag writeback entirely, so flag 0 always
// reads back as zero.
func (m *MPP) Store(writeFlag uint8, contextValue bool) error {
	if !m.haveLoadA || !m.haveLoadB {
		return fmt.Errorf("mpp: store without a prior load_a/load_b")
	}
	if writeFlag >= FlagCount {
		return fmt.Errorf("mpp: write_flag %d out of range [0,%d)", writeFlag, FlagCount)
	}

	n := m.sizing.NChips
	aBase := m.addrA * n
	bBase := m.addrB * n
	fBase := uint64(m.readFlag) * n
	cBase := uint64(m.contextFlag) * n

	var wBase uint64
	writeBack := writeFlag != FlagZero
	if writeBack {
		wBase = uint64(writeFlag) * n
	}

	for i := uint64(0); i < n; i++ {
		a := m.memory[aBase+i]
		b := m.memory[bBase+i]
		f := m.flags[fBase+i]
		c := m.flags[cBase+i]

		ts := alu.Word(a, b, f, m.opS)
		m.memory[aBase+i] = maskSelect(c, ts, a, contextValue)

		if writeBack {
			tc := alu.Word(a, b, f, m.opC)
			old := m.flags[wBase+i]
			m.flags[wBase+i] = maskSelect(c, tc, old, contextValue)
		}
	}
	return nil
}

// maskSelect merges newVal and oldVal under mask c: when cv is true,
// bits where c=1 take new, bits where c=0 keep old; when cv is false the
// roles swap.
func maskSelect(c, newVal, oldVal uint64, cv bool) uint64 {
	if cv {
		return (c & newVal) | (^c & oldVal)
	}
	return (^c & newVal) | (c & oldVal)
}

// Recv writes the routing flag word (flag 63) for the given chip.
func (m *MPP) Recv(chip uint64, value uint64) error {
	if chip >= m.sizing.NChips {
		return fmt.Errorf("mpp: chip %d out of range [0,%d)", chip, m.sizing.NChips)
	}
	m.flags[uint64(FlagRoute)*m.sizing.NChips+chip] = value
	return nil
}

// Send reads the routing flag word for the given chip.
func (m *MPP) Send(chip uint64) (uint64, error) {
	if chip >= m.sizing.NChips {
		return 0, fmt.Errorf("mpp: chip %d out of range [0,%d)", chip, m.sizing.NChips)
	}
	return m.flags[uint64(FlagRoute)*m.sizing.NChips+chip], nil
}

// SendBulk returns the routing flag words for every chip, in chip-index
// order. Equivalent to calling Send(0)..Send(NChips-1).
func (m *MPP) SendBulk() []uint64 {
	base := uint64(FlagRoute) * m.sizing.NChips
	out := make([]uint64, m.sizing.NChips)
	copy(out, m.flags[base:base+m.sizing.NChips])
	return out
}
