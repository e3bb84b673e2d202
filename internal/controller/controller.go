/*
 * mppsim - Command-queue controller (C4).
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

// Package controller serializes all access to one MPP and one router
// onto a single dedicated worker goroutine, so that callers issuing
// commands from any number of goroutines observe a strict FIFO total
// order, with synchronous results for commands that produce one.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tadashi9e/mppsim/internal/mpp"
	"github.com/tadashi9e/mppsim/internal/router"
)

// ErrStopped is returned by submission methods once Stop has been
// called, and delivered to any waiter racing a submission against Stop.
var ErrStopped = errors.New("controller: stopped")

// Controller owns exactly one MPP and one router for its lifetime.
type Controller struct {
	m *mpp.MPP
	r *router.Router

	q  *cmdQueue
	wg sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// New allocates an MPP and router per sizing/addressSize, then starts
// the worker goroutine. Configuration errors are returned synchronously
// and no worker is started.
func New(sizing mpp.Sizing, addressSize uint64) (*Controller, error) {
	m, err := mpp.New(sizing, addressSize)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	r, err := router.New(m, sizing.Width, sizing.Height)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}

	c := &Controller{
		m: m,
		r: r,
		q: newCmdQueue(),
	}
	c.wg.Add(1)
	go c.run()
	return c, nil
}

// run is the single dedicated worker strand. It dequeues one command at
// a time, executes it against the owned MPP and router, and (if the
// command carries a completion) publishes the result before signaling
// it, in that order.
func (c *Controller) run() {
	defer c.wg.Done()
	for {
		item, ok := c.q.pop()
		if !ok {
			slog.Info("controller worker stopped, queue drained")
			return
		}
		val, err := item.cmd.execute(c.m, c.r)
		if item.done != nil {
			item.done <- outcome{val: val, err: err}
			close(item.done)
		}
	}
}

// submit pushes cmd and, if it carries a result, blocks until the
// worker publishes it. Rejects at enqueue time once Stop has been
// called.
func (c *Controller) submit(cmd command, wantsResult bool) (any, error) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil, ErrStopped
	}
	var done chan outcome
	if wantsResult {
		done = make(chan outcome, 1)
	}
	c.q.push(queuedCommand{cmd: cmd, done: done})
	c.mu.Unlock()

	if done == nil {
		return nil, nil
	}
	o := <-done
	return o.val, o.err
}

// Stop sets the stop flag, lets the worker drain whatever is already
// queued, and joins it. Safe to call more than once.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.mu.Unlock()

	c.q.requestClose()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		slog.Warn("controller: timed out waiting for worker to stop")
	}
}

// Reset clears all flag bits; memory persists.
func (c *Controller) Reset() error {
	_, err := c.submit(cmdReset{}, false)
	return err
}

// LoadA validates addr/readFlag against the bound MPP and, if valid,
// enqueues the A-latch for the next Store.
func (c *Controller) LoadA(addr uint64, readFlag, opS uint8) error {
	if addr >= c.m.AddressSize() {
		return fmt.Errorf("controller: addr_a %d out of range [0,%d)", addr, c.m.AddressSize())
	}
	if readFlag >= mpp.FlagCount {
		return fmt.Errorf("controller: read_flag %d out of range [0,%d)", readFlag, mpp.FlagCount)
	}
	_, err := c.submit(cmdLoadA{addr: addr, readFlag: readFlag, opS: opS}, false)
	return err
}

// LoadB validates addr/contextFlag against the bound MPP and, if valid,
// enqueues the B-latch for the next Store.
func (c *Controller) LoadB(addr uint64, contextFlag, opC uint8) error {
	if addr >= c.m.AddressSize() {
		return fmt.Errorf("controller: addr_b %d out of range [0,%d)", addr, c.m.AddressSize())
	}
	if contextFlag >= mpp.FlagCount {
		return fmt.Errorf("controller: context_flag %d out of range [0,%d)", contextFlag, mpp.FlagCount)
	}
	_, err := c.submit(cmdLoadB{addr: addr, contextFlag: contextFlag, opC: opC}, false)
	return err
}

// Store applies the latched ALU operation across the grid.
func (c *Controller) Store(writeFlag uint8, contextValue bool) error {
	if writeFlag >= mpp.FlagCount {
		return fmt.Errorf("controller: write_flag %d out of range [0,%d)", writeFlag, mpp.FlagCount)
	}
	_, err := c.submit(cmdStore{writeFlag: writeFlag, contextValue: contextValue}, false)
	return err
}

// Recv64 writes the routing flag word for chip.
func (c *Controller) Recv64(chip uint64, value uint64) error {
	if chip >= c.m.Sizing().NChips {
		return fmt.Errorf("controller: chip %d out of range [0,%d)", chip, c.m.Sizing().NChips)
	}
	_, err := c.submit(cmdRecv64{chip: chip, value: value}, false)
	return err
}

// Send64 reads the routing flag word for chip.
func (c *Controller) Send64(chip uint64) (uint64, error) {
	if chip >= c.m.Sizing().NChips {
		return 0, fmt.Errorf("controller: chip %d out of range [0,%d)", chip, c.m.Sizing().NChips)
	}
	val, err := c.submit(cmdSend64{chip: chip}, true)
	if err != nil {
		return 0, err
	}
	return val.(uint64), nil
}

// SendBulk reads the routing flag words for every chip, in chip-index
// order.
func (c *Controller) SendBulk() ([]uint64, error) {
	val, err := c.submit(cmdSendBulk{}, true)
	if err != nil {
		return nil, err
	}
	return val.([]uint64), nil
}

// NewsN rotates the routing plane one row north, toroidally.
func (c *Controller) NewsN() error {
	_, err := c.submit(cmdNewsN{}, false)
	return err
}

// NewsS rotates the routing plane one row south, toroidally.
func (c *Controller) NewsS() error {
	_, err := c.submit(cmdNewsS{}, false)
	return err
}

// NewsE rotates the routing plane one column east, toroidally.
func (c *Controller) NewsE() error {
	_, err := c.submit(cmdNewsE{}, false)
	return err
}

// NewsW rotates the routing plane one column west, toroidally.
func (c *Controller) NewsW() error {
	_, err := c.submit(cmdNewsW{}, false)
	return err
}

// UnicastRecv sets or clears a single PE's routing bit.
func (c *Controller) UnicastRecv(x, y uint64, bit bool) error {
	if err := c.checkCoords(x, y); err != nil {
		return err
	}
	_, err := c.submit(cmdUnicastRecv{x: x, y: y, bit: bit}, false)
	return err
}

// UnicastSend reads a single PE's routing bit.
func (c *Controller) UnicastSend(x, y uint64) (bool, error) {
	if err := c.checkCoords(x, y); err != nil {
		return false, err
	}
	val, err := c.submit(cmdUnicastSend{x: x, y: y}, true)
	if err != nil {
		return false, err
	}
	return val.(bool), nil
}

func (c *Controller) checkCoords(x, y uint64) error {
	s := c.m.Sizing()
	if x >= s.Width || y >= s.Height {
		return fmt.Errorf("controller: (%d,%d) out of range [0,%d)x[0,%d)", x, y, s.Width, s.Height)
	}
	return nil
}
