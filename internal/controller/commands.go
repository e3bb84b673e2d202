/*
 * mppsim - Command catalog (C4).
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

import (
	"github.com/tadashi9e/mppsim/internal/mpp"
	"github.com/tadashi9e/mppsim/internal/router"
)

// command is a closed, tagged sum type: each tag is its own struct
// whose execute is a pure function of (mpp, router, payload).
type command interface {
	execute(m *mpp.MPP, r *router.Router) (any, error)
}

type cmdReset struct{}

func (cmdReset) execute(m *mpp.MPP, _ *router.Router) (any, error) {
	m.Reset()
	return nil, nil
}

type cmdLoadA struct {
	addr     uint64
	readFlag uint8
	opS      uint8
}

func (c cmdLoadA) execute(m *mpp.MPP, _ *router.Router) (any, error) {
	return nil, m.LoadA(c.addr, c.readFlag, c.opS)
}

type cmdLoadB struct {
	addr        uint64
	contextFlag uint8
	opC         uint8
}

func (c cmdLoadB) execute(m *mpp.MPP, _ *router.Router) (any, error) {
	return nil, m.LoadB(c.addr, c.contextFlag, c.opC)
}

type cmdStore struct {
	writeFlag    uint8
	contextValue bool
}

func (c cmdStore) execute(m *mpp.MPP, _ *router.Router) (any, error) {
	return nil, m.Store(c.writeFlag, c.contextValue)
}

type cmdRecv64 struct {
	chip  uint64
	value uint64
}

func (c cmdRecv64) execute(m *mpp.MPP, _ *router.Router) (any, error) {
	return nil, m.Recv(c.chip, c.value)
}

type cmdSend64 struct {
	chip uint64
}

func (c cmdSend64) execute(m *mpp.MPP, _ *router.Router) (any, error) {
	return m.Send(c.chip)
}

type cmdSendBulk struct{}

func (cmdSendBulk) execute(m *mpp.MPP, _ *router.Router) (any, error) {
	return m.SendBulk(), nil
}

type cmdNewsN struct{}

func (cmdNewsN) execute(_ *mpp.MPP, r *router.Router) (any, error) {
	return nil, r.RotateN()
}

type cmdNewsS struct{}

func (cmdNewsS) execute(_ *mpp.MPP, r *router.Router) (any, error) {
	return nil, r.RotateS()
}

type cmdNewsE struct{}

func (cmdNewsE) execute(_ *mpp.MPP, r *router.Router) (any, error) {
	return nil, r.RotateE()
}

type cmdNewsW struct{}

func (cmdNewsW) execute(_ *mpp.MPP, r *router.Router) (any, error) {
	return nil, r.RotateW()
}

type cmdUnicastRecv struct {
	x, y uint64
	bit  bool
}

func (c cmdUnicastRecv) execute(_ *mpp.MPP, r *router.Router) (any, error) {
	return nil, r.UnicastRecv(c.x, c.y, c.bit)
}

type cmdUnicastSend struct {
	x, y uint64
}

func (c cmdUnicastSend) execute(_ *mpp.MPP, r *router.Router) (any, error) {
	return r.UnicastSend(c.x, c.y)
}
