/*
 * mppsim - NEWS router over the routing flag plane.
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

// Package router implements the toroidal NEWS (North/East/West/South)
// rotation network over an MPP's routing flag plane, plus single-PE
// unicast access addressed by 2-D grid coordinates.
package router

import (
	"fmt"
)

// backingStore is the subset of *mpp.MPP the router needs. Declared as
// an interface so router tests can drive a fake plane without pulling in
// the full MPP ALU machinery.
type backingStore interface {
	TotalCores() uint64
	Recv(chip uint64, value uint64) error
	Send(chip uint64) (uint64, error)
}

// Router rotates and addresses the routing flag plane of a bound MPP.
type Router struct {
	m       backingStore
	width   uint64
	height  uint64
	width64 uint64 // width / 64
}

// New binds a router to m's routing plane, validating the grid geometry
// against it.
func New(m backingStore, width, height uint64) (*Router, error) {
	if width == 0 || width%64 != 0 {
		return nil, fmt.Errorf("router: width must be a positive multiple of 64, got %d", width)
	}
	if m.TotalCores() != width*height {
		return nil, fmt.Errorf("router: total cores (%d) does not match width*height (%d)",
			m.TotalCores(), width*height)
	}
	return &Router{m: m, width: width, height: height, width64: width / 64}, nil
}

// group returns the chip-group index for word column x64 (0..width64)
// and row y.
func (r *Router) group(x64, y uint64) uint64 {
	return x64 + y*r.width64
}

// RotateN shifts each column strip one row north (toward lower y),
// toroidally: new_row[y] = old_row[(y+1) mod height].
func (r *Router) RotateN() error {
	for x64 := uint64(0); x64 < r.width64; x64++ {
		first, err := r.m.Send(r.group(x64, 0))
		if err != nil {
			return err
		}
		var y uint64
		for y = 0; y < r.height-1; y++ {
			next, err := r.m.Send(r.group(x64, y+1))
			if err != nil {
				return err
			}
			if err := r.m.Recv(r.group(x64, y), next); err != nil {
				return err
			}
		}
		if err := r.m.Recv(r.group(x64, r.height-1), first); err != nil {
			return err
		}
	}
	return nil
}

// RotateS shifts each column strip one row south (toward higher y),
// toroidally: new_row[y] = old_row[(y-1) mod height].
func (r *Router) RotateS() error {
	for x64 := uint64(0); x64 < r.width64; x64++ {
		carry, err := r.m.Send(r.group(x64, r.height-1))
		if err != nil {
			return err
		}
		for y := uint64(0); y < r.height; y++ {
			cur, err := r.m.Send(r.group(x64, y))
			if err != nil {
				return err
			}
			if err := r.m.Recv(r.group(x64, y), carry); err != nil {
				return err
			}
			carry = cur
		}
	}
	return nil
}

// RotateE shifts every row one column east (toward higher x),
// toroidally. Bit 63 of the highest-x word in a row carries into bit 0
// of the lowest-x word of the same row.
func (r *Router) RotateE() error {
	for y := uint64(0); y < r.height; y++ {
		last, err := r.m.Send(r.group(r.width64-1, y))
		if err != nil {
			return err
		}
		carry := last >> 63
		for x64 := uint64(0); x64 < r.width64; x64++ {
			p := r.group(x64, y)
			data, err := r.m.Send(p)
			if err != nil {
				return err
			}
			nextCarry := data >> 63
			if err := r.m.Recv(p, (data<<1)|carry); err != nil {
				return err
			}
			carry = nextCarry
		}
	}
	return nil
}

// RotateW shifts every row one column west (toward lower x), toroidally.
// Bit 0 of the lowest-x word in a row carries into bit 63 of the
// highest-x word of the same row. This is the true wrap-around
// rotation, not the no-wrap variant that also appears in the original
// source.
func (r *Router) RotateW() error {
	for y := uint64(0); y < r.height; y++ {
		first, err := r.m.Send(r.group(0, y))
		if err != nil {
			return err
		}
		carry := first & 1
		for i := uint64(0); i < r.width64; i++ {
			x64 := r.width64 - 1 - i
			p := r.group(x64, y)
			data, err := r.m.Send(p)
			if err != nil {
				return err
			}
			nextCarry := data & 1
			if err := r.m.Recv(p, (carry<<63)|(data>>1)); err != nil {
				return err
			}
			carry = nextCarry
		}
	}
	return nil
}

// groupOf converts (x, y) to the chip-group index holding that PE.
func (r *Router) groupOf(x, y uint64) uint64 {
	return (x + y*r.width) / 64
}

// UnicastRecv sets (bit=true) or clears (bit=false) the single PE bit at
// (x, y), preserving every other bit of that chip's routing word.
func (r *Router) UnicastRecv(x, y uint64, bit bool) error {
	if x >= r.width || y >= r.height {
		return fmt.Errorf("router: (%d,%d) out of range [0,%d)x[0,%d)", x, y, r.width, r.height)
	}
	p := r.groupOf(x, y)
	data, err := r.m.Send(p)
	if err != nil {
		return err
	}
	m := uint64(1) << (x % 64)
	if bit {
		data |= m
	} else {
		data &^= m
	}
	return r.m.Recv(p, data)
}

// UnicastSend returns the single PE bit at (x, y).
func (r *Router) UnicastSend(x, y uint64) (bool, error) {
	if x >= r.width || y >= r.height {
		return false, fmt.Errorf("router: (%d,%d) out of range [0,%d)x[0,%d)", x, y, r.width, r.height)
	}
	data, err := r.m.Send(r.groupOf(x, y))
	if err != nil {
		return false, err
	}
	return (data>>(x%64))&1 != 0, nil
}
