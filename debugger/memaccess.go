// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// The memory access surface is the three hooks the emulator calls
// around every bus access. All three are no-ops while the debug core
// has suspended itself (see Suspend/Unsuspend below): memory dumps,
// pokes and disassembly access the bus on the core's own behalf, and
// the instruction hook holds the guard too; none of that should be able
// to trip a watchpoint or get filtered by the protection table.

package debugger

import (
	"fmt"

	"github.com/jetsetilly/m68kdbgcore/cpu"
)

// Suspend increments the re-entrancy guard. Every self-initiated bus
// access the core makes (a memory dump, an opcode fetch for
// disassembly) must be bracketed by Suspend/Unsuspend.
func (d *Debugger) Suspend() {
	d.suspend++
}

// Unsuspend decrements the re-entrancy guard. Safe to call more times
// than Suspend; the counter never goes negative. Named distinctly from
// the execution controller's Resume so the two unrelated concepts
// (running again after a pause, and releasing the self-access guard)
// never collide on one method name.
func (d *Debugger) Unsuspend() {
	if d.suspend > 0 {
		d.suspend--
	}
}

func (d *Debugger) suspended() bool {
	return d.suspend > 0
}

// AfterRead is called by the emulator after a memory read completes.
// It feeds the watchpoint engine's read path.
func (d *Debugger) AfterRead(addr uint32, value uint32, size cpu.Size) {
	if d.suspended() {
		return
	}
	if d.watchpoints.evaluate(access{kind: AccessRead, addr: cpu.Mask24(addr), size: size, value: value}, false) {
		d.text.Write([]byte(fmt.Sprintf("watch read at 0x%06x\n", cpu.Mask24(addr))))
		d.requestBreak()
	}
}

// FilterWrite is called by the emulator before a write is committed.
// It returns the value that should actually be written; the emulator
// always proceeds with the write (the contract never vetoes it
// outright, only rewrites its value).
func (d *Debugger) FilterWrite(addr uint32, size cpu.Size, oldValue uint32, oldValid bool, inValue uint32) uint32 {
	if d.suspended() {
		return inValue
	}
	return d.protects.FilterWrite(addr, size, oldValue, oldValid, inValue, false)
}

// AfterWrite is called by the emulator after a write is committed. It
// feeds the watchpoint engine's write path.
func (d *Debugger) AfterWrite(addr uint32, value, oldValue uint32, size cpu.Size, oldValid bool) {
	if d.suspended() {
		return
	}
	acc := access{kind: AccessWrite, addr: cpu.Mask24(addr), size: size, value: value, oldValue: oldValue, oldValid: oldValid}
	if d.watchpoints.evaluate(acc, false) {
		d.text.Write([]byte(fmt.Sprintf("watch write at 0x%06x\n", acc.addr)))
		d.requestBreak()
	}
}
