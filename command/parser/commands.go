/*
 * mppsim - Console command handlers.
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

package parser

import (
	"fmt"

	"github.com/tadashi9e/mppsim/internal/controller"
)

func doReset(_ *cmdLine, c *controller.Controller) (bool, error) {
	return false, c.Reset()
}

func doLoadA(l *cmdLine, c *controller.Controller) (bool, error) {
	addr, err := l.getUint(64)
	if err != nil {
		return false, fmt.Errorf("loada: addr: %w", err)
	}
	flag, err := l.getUint(8)
	if err != nil {
		return false, fmt.Errorf("loada: flag: %w", err)
	}
	op, err := l.getUint(8)
	if err != nil {
		return false, fmt.Errorf("loada: op: %w", err)
	}
	return false, c.LoadA(addr, uint8(flag), uint8(op))
}

func doLoadB(l *cmdLine, c *controller.Controller) (bool, error) {
	addr, err := l.getUint(64)
	if err != nil {
		return false, fmt.Errorf("loadb: addr: %w", err)
	}
	flag, err := l.getUint(8)
	if err != nil {
		return false, fmt.Errorf("loadb: flag: %w", err)
	}
	op, err := l.getUint(8)
	if err != nil {
		return false, fmt.Errorf("loadb: op: %w", err)
	}
	return false, c.LoadB(addr, uint8(flag), uint8(op))
}

func doStore(l *cmdLine, c *controller.Controller) (bool, error) {
	writeFlag, err := l.getUint(8)
	if err != nil {
		return false, fmt.Errorf("store: write_flag: %w", err)
	}
	contextValue, err := l.getBool()
	if err != nil {
		return false, fmt.Errorf("store: context_value: %w", err)
	}
	return false, c.Store(uint8(writeFlag), contextValue)
}

func doRecv(l *cmdLine, c *controller.Controller) (bool, error) {
	chip, err := l.getUint(64)
	if err != nil {
		return false, fmt.Errorf("recv: chip: %w", err)
	}
	value, err := l.getUint(64)
	if err != nil {
		return false, fmt.Errorf("recv: value: %w", err)
	}
	return false, c.Recv64(chip, value)
}

func doSend(l *cmdLine, c *controller.Controller) (bool, error) {
	chip, err := l.getUint(64)
	if err != nil {
		return false, fmt.Errorf("send: chip: %w", err)
	}
	value, err := c.Send64(chip)
	if err != nil {
		return false, err
	}
	fmt.Printf("%#016x\n", value)
	return false, nil
}

func doSendBulk(_ *cmdLine, c *controller.Controller) (bool, error) {
	values, err := c.SendBulk()
	if err != nil {
		return false, err
	}
	for i, v := range values {
		fmt.Printf("%d: %#016x\n", i, v)
	}
	return false, nil
}

func doNewsN(_ *cmdLine, c *controller.Controller) (bool, error) { return false, c.NewsN() }
func doNewsS(_ *cmdLine, c *controller.Controller) (bool, error) { return false, c.NewsS() }
func doNewsE(_ *cmdLine, c *controller.Controller) (bool, error) { return false, c.NewsE() }
func doNewsW(_ *cmdLine, c *controller.Controller) (bool, error) { return false, c.NewsW() }

func doUnicastRecv(l *cmdLine, c *controller.Controller) (bool, error) {
	x, err := l.getUint(64)
	if err != nil {
		return false, fmt.Errorf("ucrecv: x: %w", err)
	}
	y, err := l.getUint(64)
	if err != nil {
		return false, fmt.Errorf("ucrecv: y: %w", err)
	}
	bit, err := l.getBool()
	if err != nil {
		return false, fmt.Errorf("ucrecv: bit: %w", err)
	}
	return false, c.UnicastRecv(x, y, bit)
}

func doUnicastSend(l *cmdLine, c *controller.Controller) (bool, error) {
	x, err := l.getUint(64)
	if err != nil {
		return false, fmt.Errorf("ucsend: x: %w", err)
	}
	y, err := l.getUint(64)
	if err != nil {
		return false, fmt.Errorf("ucsend: y: %w", err)
	}
	bit, err := c.UnicastSend(x, y)
	if err != nil {
		return false, err
	}
	fmt.Println(bit)
	return false, nil
}

func doHelp(_ *cmdLine, _ *controller.Controller) (bool, error) {
	fmt.Println("commands: reset loada loadb store recv send sendbulk " +
		"newsn newss newse newsw ucrecv ucsend help quit")
	return false, nil
}

func doQuit(_ *cmdLine, _ *controller.Controller) (bool, error) {
	return true, nil
}
