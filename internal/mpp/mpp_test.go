/*
 * mppsim - Bit-plane store tests.
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

package mpp

import "testing"

func smallSizing() Sizing {
	// 2 chips -> 128 PEs, laid out as a 128x1 row; keeps tests fast
	// while exercising the same code paths as the default 1024-chip grid.
	return Sizing{NChips: 2, Width: 128, Height: 1}
}

func TestNewRejectsBadSizing(t *testing.T) {
	cases := []Sizing{
		{NChips: 0, Width: 64, Height: 1},
		{NChips: 1, Width: 63, Height: 1},
		{NChips: 1, Width: 64, Height: 2},
	}
	for _, s := range cases {
		if _, err := New(s, 4); err == nil {
			t.Errorf("New(%+v) expected error, got nil", s)
		}
	}
	if _, err := New(smallSizing(), 0); err == nil {
		t.Errorf("New with addressSize=0 expected error, got nil")
	}
}

func TestResetClearsFlagsOnly(t *testing.T) {
	m, err := New(smallSizing(), 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Recv(0, 0xDEADBEEF); err != nil {
		t.Fatalf("Recv: %v", err)
	}
	m.memory[0] = 0xCAFEBABE // write directly to simulate prior store

	m.Reset()

	if v, _ := m.Send(0); v != 0 {
		t.Errorf("after reset Send(0) = %#x, want 0", v)
	}
	if m.memory[0] != 0xCAFEBABE {
		t.Errorf("reset touched memory: got %#x want %#x", m.memory[0], 0xCAFEBABE)
	}
}

func TestFlagZeroAlwaysReadsZero(t *testing.T) {
	m, err := New(smallSizing(), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Try to write flag 0 via Store: writeFlag=0 must be suppressed.
	if err := m.LoadA(0, FlagZero, 0xFF); err != nil { // op_s = const 1
		t.Fatalf("LoadA: %v", err)
	}
	if err := m.LoadB(0, FlagZero, 0xFF); err != nil { // op_c = const 1
		t.Fatalf("LoadB: %v", err)
	}
	if err := m.Store(FlagZero, true); err != nil {
		t.Fatalf("Store: %v", err)
	}
	for i := uint64(0); i < m.sizing.NChips; i++ {
		if m.flags[i] != 0 {
			t.Errorf("flag 0 chip %d = %#x, want 0", i, m.flags[i])
		}
	}
}

// Context-mask identity: op_s=0xF0 (truth table = A) and writeFlag=0
// must leave memory and flags unchanged regardless of
// context_flag/context_value.
func TestStoreIdentity(t *testing.T) {
	m, err := New(smallSizing(), 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.memory[0] = 0x1111111111111111
	m.memory[1] = 0x2222222222222222
	m.flags[1*m.sizing.NChips+0] = 0x3333333333333333

	before := append([]uint64(nil), m.memory...)
	beforeFlags := append([]uint64(nil), m.flags...)

	if err := m.LoadA(0, 1, 0xF0); err != nil {
		t.Fatalf("LoadA: %v", err)
	}
	if err := m.LoadB(1, 1, 0); err != nil {
		t.Fatalf("LoadB: %v", err)
	}
	for _, cv := range []bool{true, false} {
		if err := m.Store(FlagZero, cv); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}

	for i := range m.memory {
		if m.memory[i] != before[i] {
			t.Errorf("memory[%d] changed: got %#x want %#x", i, m.memory[i], before[i])
		}
	}
	for i := range m.flags {
		if m.flags[i] != beforeFlags[i] {
			t.Errorf("flags[%d] changed: got %#x want %#x", i, m.flags[i], beforeFlags[i])
		}
	}
}

// ALU as COPY, flag 63 -> flag 62.
func TestStoreCopyFlagToFlag(t *testing.T) {
	m, err := New(smallSizing(), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	const value uint64 = 0xDEADBEEFCAFEBABE
	if err := m.Recv(0, value); err != nil {
		t.Fatalf("Recv: %v", err)
	}

	// read_flag carries the routing flag so op_c="F" copies it.
	if err := m.LoadA(0, FlagRoute, 0); err != nil {
		t.Fatalf("LoadA: %v", err)
	}
	if err := m.LoadB(0, FlagZero, 0xAA); err != nil { // op_c = "F"
		t.Fatalf("LoadB: %v", err)
	}
	if err := m.Store(62, false); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got := m.flags[62*m.sizing.NChips+0]
	if got != value {
		t.Errorf("flags[62][0] = %#x, want %#x", got, value)
	}
}

// Context mask writeback into memory.
func TestStoreContextMask(t *testing.T) {
	m, err := New(smallSizing(), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	const maskPattern uint64 = 0xFF00FF00FF00FF00
	m.flags[1*m.sizing.NChips+0] = maskPattern // context flag 1
	if err := m.Recv(0, ^uint64(0)); err != nil {
		t.Fatalf("Recv: %v", err)
	} // routing flag all-ones

	if err := m.LoadA(0, FlagRoute, 0xAA); err != nil { // op_s = "F"
		t.Fatalf("LoadA: %v", err)
	}
	if err := m.LoadB(0, 1, 0); err != nil { // context_flag=1, op_c irrelevant
		t.Fatalf("LoadB: %v", err)
	}
	if err := m.Store(FlagZero, true); err != nil {
		t.Fatalf("Store: %v", err)
	}

	if m.memory[0] != maskPattern {
		t.Errorf("memory[0,0] = %#x, want %#x", m.memory[0], maskPattern)
	}
}

func TestLoadARangeChecks(t *testing.T) {
	m, err := New(smallSizing(), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.LoadA(2, 0, 0); err == nil {
		t.Error("LoadA with out-of-range address expected error")
	}
	if err := m.LoadA(0, 64, 0); err == nil {
		t.Error("LoadA with out-of-range flag expected error")
	}
}

func TestSendBulkAfterReset(t *testing.T) {
	m, err := New(smallSizing(), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Recv(0, 123); err != nil {
		t.Fatalf("Recv: %v", err)
	}
	m.Reset()
	for i, v := range m.SendBulk() {
		if v != 0 {
			t.Errorf("SendBulk()[%d] = %#x, want 0", i, v)
		}
	}
}

func TestRecvSendRangeChecks(t *testing.T) {
	m, err := New(smallSizing(), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Recv(m.sizing.NChips, 0); err == nil {
		t.Error("Recv with out-of-range chip expected error")
	}
	if _, err := m.Send(m.sizing.NChips); err == nil {
		t.Error("Send with out-of-range chip expected error")
	}
}
