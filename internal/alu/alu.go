/*
 * mppsim - Bit-parallel ALU kernel.
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

// Package alu evaluates an 8-bit truth table over three 64-bit operand
// words, one bit-parallel result per processing element.
package alu

// Word evaluates the 3-input truth table op over every bit position of
// a, b and f and returns the 64-bit result word. Bit k of the result is
// the bit of op selected by the 3-bit index (a_k, b_k, f_k): bit 0 of op
// is the output for (0,0,0), bit 7 for (1,1,1), and so on, per the
// minterm table below.
//
//	op bit  condition
//	0x01    ~a & ~b & ~f
//	0x02    ~a & ~b &  f
//	0x04    ~a &  b & ~f
//	0x08    ~a &  b &  f
//	0x10     a & ~b & ~f
//	0x20     a & ~b &  f
//	0x40     a &  b & ~f
//	0x80     a &  b &  f
func Word(a, b, f uint64, op uint8) uint64 {
	na, nb, nf := ^a, ^b, ^f

	// Each minterm is masked in or out with an all-ones/all-zeros mask
	// derived from its op bit, avoiding a branch per minterm.
	m0 := mask(op, 0) & na & nb & nf
	m1 := mask(op, 1) & na & nb & f
	m2 := mask(op, 2) & na & b & nf
	m3 := mask(op, 3) & na & b & f
	m4 := mask(op, 4) & a & nb & nf
	m5 := mask(op, 5) & a & nb & f
	m6 := mask(op, 6) & a & b & nf
	m7 := mask(op, 7) & a & b & f

	return m0 | m1 | m2 | m3 | m4 | m5 | m6 | m7
}

// mask returns all-ones if bit k of op is set, all-zeros otherwise.
func mask(op uint8, k uint) uint64 {
	return -uint64((op >> k) & 1)
}
