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

package debugger

import (
	"fmt"

	"github.com/jetsetilly/m68kdbgcore/cpu"
)

// InstructionHook is invoked by the emulator with the about-to-execute
// 24-bit PC, the fetched opcode word, and the current cycle-clock
// reading. It returns true if a break was requested this call: the
// emulator is contractually expected to call no further instruction
// hooks until the host resumes or steps again.
//
// Classifying the opcode for the shadow call stack never reads the
// bus itself (the opcode word is supplied directly), but the
// re-entrancy guard is still held across the whole call: a host that
// later teaches this hook to disassemble ahead for source-line
// stepping must not have that lookahead trip a watchpoint.
func (d *Debugger) InstructionHook(pc uint32, opcode uint16, cycle uint64) bool {
	pc = cpu.Mask24(pc)

	d.Suspend()
	defer d.Unsuspend()

	d.profiler.onInstruction(pc, cycle)

	if d.controller.stepInstrAfter {
		d.requestBreak()
		return true
	}

	isReturn := d.callStack.classify(pc, opcode)
	if isReturn {
		d.controller.stepNextSkipOnce = true
	}

	if d.controller.stepInstr {
		d.controller.stepInstr = false
		d.controller.stepInstrAfter = true
		return false
	}

	if d.controller.stepNext {
		if d.controller.stepNextSkipOnce {
			d.controller.stepNextSkipOnce = false
		} else if pc != d.controller.stepStartPC && d.callStack.depth() <= d.controller.stepNextDepth {
			d.requestBreak()
			return true
		}
	}

	if d.controller.stepLine && d.lineResolver != nil {
		if d.callStack.depth() <= d.controller.stepLineDepth {
			if line, ok := d.lineResolver(pc); ok && line != d.controller.stepLineStart {
				d.requestBreak()
				return true
			}
		}
	}

	if d.controller.stepOut && d.callStack.depth() <= d.controller.stepOutDepth {
		d.requestBreak()
		return true
	}

	if d.controller.skipOnce && pc == d.controller.skipPC {
		d.controller.skipOnce = false
		return false
	}

	if d.breakpoints.checkAndConsume(pc) {
		d.text.Write([]byte(fmt.Sprintf("break at 0x%06x\n", pc)))
		d.requestBreak()
		return true
	}

	return false
}

// Vblank is invoked once per vertical blank. It drives the profiler's
// forced-sample fallback for an idle-but-running target, sampling at
// the CPU's current PC, or at whatever PC the instruction hook most
// recently reported when no register file is attached.
func (d *Debugger) Vblank() {
	pc := d.profiler.lastPC
	if d.reg != nil {
		pc = d.reg.PC()
	}
	d.profiler.onVblank(pc)
	if d.vblankCallback != nil {
		d.vblankCallback(d.vblankUserdata)
	}
}
