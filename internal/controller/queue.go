/*
 * mppsim - Unbounded FIFO command queue.
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

package controller

import "sync"

// outcome is what a result-bearing command publishes to its submitter.
type outcome struct {
	val any
	err error
}

// queuedCommand pairs a command with its optional one-shot completion.
// done is nil for commands that produce no result.
type queuedCommand struct {
	cmd  command
	done chan outcome
}

// cmdQueue is an unbounded FIFO guarded by a mutex and condition
// variable: push never suspends, and the worker suspends on an empty
// queue. A plain Go channel cannot be unbounded, so the queue is a
// growable slice instead.
type cmdQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []queuedCommand
	closing bool
}

func newCmdQueue() *cmdQueue {
	q := &cmdQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push enqueues item and wakes the worker. Never blocks.
func (q *cmdQueue) push(item queuedCommand) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.cond.Signal()
}

// pop blocks until a command is available or the queue has been told
// to close with nothing left in it, in which case ok is false.
func (q *cmdQueue) pop() (item queuedCommand, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closing {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return queuedCommand{}, false
	}
	item = q.items[0]
	q.items = q.items[1:]
	return item, true
}

// requestClose tells pop to return ok=false once the queue drains,
// instead of blocking forever. The worker exits once closing is
// observed and the queue is empty, so already-enqueued commands are
// drained, not abandoned.
func (q *cmdQueue) requestClose() {
	q.mu.Lock()
	q.closing = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
