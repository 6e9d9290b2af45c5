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
	"github.com/google/uuid"

	"github.com/jetsetilly/m68kdbgcore/cpu"
	"github.com/jetsetilly/m68kdbgcore/elfhint"
	"github.com/jetsetilly/m68kdbgcore/logger"
)

// Debugger is the owned aggregate that replaces what used to be a set
// of process-wide singletons: one value, constructed once, passed by
// reference into the emulator's hook sites. Every table it owns lives
// for the process lifetime; nothing here is persisted across restarts.
type Debugger struct {
	SessionID uuid.UUID

	bus cpu.Bus
	reg cpu.Registers

	controller  *controller
	breakpoints *breakpoints
	callStack   *callStack
	watchpoints *watchpoints
	protects    *protects
	profiler    *profiler
	text        *textRing

	suspend int

	elf elfhint.Hint
	log *logger.Logger

	vblankCallback func(interface{})
	vblankUserdata interface{}

	debugBaseCallback func(section string, base uint32)

	// endTimeslice is the emulator's "stop batching now" signal,
	// installed by whatever owns the run loop (see ucbridge). Fired on
	// every requestBreak so that a break raised from a memory-access
	// hook halts the emulator just like one raised from the
	// instruction hook's return value.
	endTimeslice func()

	// lineResolver maps a PC to a source line number, when the host has
	// loaded line-table information from whichever binary
	// GEO_DBG_ELF/GEO_PROF_ELF named (see elfhint). Resolving the table
	// itself is host-side work; the core only consumes the function the
	// host installs. Left nil, StepLine degrades to StepInstruction.
	lineResolver func(pc uint32) (line int, ok bool)
}

// NewDebugger constructs a Debugger aggregate. bus and reg are the
// emulator's effective CPU contract (see package cpu); either may be
// nil for a debugger used only against the instruction/access hooks in
// isolation (as the test suite does for the table components).
func NewDebugger(bus cpu.Bus, reg cpu.Registers) *Debugger {
	return &Debugger{
		SessionID:   uuid.New(),
		bus:         bus,
		reg:         reg,
		controller:  newController(),
		breakpoints: newBreakpoints(),
		callStack:   newCallStack(),
		watchpoints: newWatchpoints(),
		protects:    newProtects(),
		profiler:    newProfiler(),
		text:        newTextRing(),
		elf:         elfhint.Load(),
		log:         logger.NewLogger(256),
	}
}

// SetEndTimeslice installs the emulator's end-of-timeslice signal. The
// emulator contract is that after the signal fires no further
// instruction hooks are called in the current batch.
func (d *Debugger) SetEndTimeslice(fn func()) {
	d.endTimeslice = fn
}

// requestBreak transitions the controller to Paused and signals the
// emulator to end its timeslice. Every break in the core funnels
// through here, whether it originated in the instruction hook, a
// memory-access hook, or a host Pause call.
func (d *Debugger) requestBreak() {
	d.controller.requestBreak()
	if d.endTimeslice != nil {
		d.endTimeslice()
	}
}

// IsPaused reports the execution controller's current run state.
func (d *Debugger) IsPaused() bool {
	return d.controller.IsPaused()
}

// Pause requests an immediate break.
func (d *Debugger) Pause() {
	d.requestBreak()
	d.log.Log(logger.Allow, "debugger", "pause requested")
}

// Resume transitions back to Running, arming the skip-once filter if
// the current PC is sitting on a breakpoint.
func (d *Debugger) Resume() {
	pc := uint32(0)
	if d.reg != nil {
		pc = d.reg.PC()
	}
	d.controller.Resume(pc, d.breakpoints.permanent.has(pc))
}

// StepInstruction arms a single-instruction step.
func (d *Debugger) StepInstruction() {
	d.controller.StepInstruction()
}

// StepOver arms step-over from the current PC and call-stack depth.
func (d *Debugger) StepOver() {
	pc := uint32(0)
	if d.reg != nil {
		pc = d.reg.PC()
	}
	d.controller.StepOver(pc, d.callStack.depth())
}

// SetLineResolver installs the host's PC-to-source-line function,
// loaded from whichever ELF GEO_DBG_ELF/GEO_PROF_ELF named. Resolving
// DWARF line tables is host-side work; the core only calls the
// function it's given.
func (d *Debugger) SetLineResolver(fn func(pc uint32) (line int, ok bool)) {
	d.lineResolver = fn
}

// StepLine arms line-granularity stepping. When a line resolver is
// registered, the hook breaks on the next distinct source line at a
// call-stack depth no deeper than the current one. Without a resolver,
// source-line stepping is unavailable and this degrades to
// StepInstruction.
func (d *Debugger) StepLine() {
	pc := uint32(0)
	if d.reg != nil {
		pc = d.reg.PC()
	}
	if d.lineResolver == nil {
		d.controller.StepInstruction()
		return
	}
	line, ok := d.lineResolver(pc)
	if !ok {
		d.controller.StepInstruction()
		return
	}
	d.controller.StepLine(line, d.callStack.depth())
}

// StepOutOptionally arms a break for when the current call-stack frame
// is popped. The pop happens in the instruction hook of the return
// opcode itself, so the break lands on that return instruction, before
// it executes, not on the caller's next instruction. At depth
// zero there's no frame to step out of, so this degrades to
// StepInstruction instead of arming a break condition that can never
// be satisfied.
func (d *Debugger) StepOutOptionally() {
	depth := d.callStack.depth()
	if depth == 0 {
		d.controller.StepInstruction()
		return
	}
	d.controller.StepOutOptionally(depth - 1)
}

// SetVblankCallback registers the host's vblank notification. Matches
// the export surface's vblank_callback(fn, user) shape.
func (d *Debugger) SetVblankCallback(fn func(interface{}), userdata interface{}) {
	d.vblankCallback = fn
	d.vblankUserdata = userdata
}

// SetDebugBaseCallback registers the host's debug-base notification.
func (d *Debugger) SetDebugBaseCallback(fn func(section string, base uint32)) {
	d.debugBaseCallback = fn
}

// NotifyDebugBase invokes the registered debug-base callback, if any.
// The core itself never computes a base address; this exists purely
// to forward whatever the emulator's loader decided.
func (d *Debugger) NotifyDebugBase(section string, base uint32) {
	if d.debugBaseCallback != nil {
		d.debugBaseCallback(section, base)
	}
}

// ELFHint returns the binary paths recorded from GEO_DBG_ELF /
// GEO_PROF_ELF at construction time.
func (d *Debugger) ELFHint() elfhint.Hint {
	return d.elf
}
