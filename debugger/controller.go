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

// The execution controller is the run/pause/step state machine. It
// owns the decision to request that the emulator end its current
// timeslice; it never touches the bus or the CPU registers directly.

package debugger

import "github.com/jetsetilly/m68kdbgcore/cpu"

type controller struct {
	paused bool

	stepInstr      bool
	stepInstrAfter bool

	stepNext         bool
	stepNextSkipOnce bool
	stepNextDepth    int
	stepStartPC      uint32

	// stepLine mirrors stepNext's depth bookkeeping but breaks on a
	// source-line boundary instead of an instruction boundary; see
	// Debugger.StepLine for the line-resolver fallback when no line
	// table is available.
	stepLine      bool
	stepLineStart int
	stepLineDepth int

	// stepOut breaks the first time call-stack depth is at or below
	// stepOutDepth, i.e. once the current frame has been popped.
	stepOut      bool
	stepOutDepth int

	skipOnce bool
	skipPC   uint32

	// frameEnd is set by requestBreak and consumed (read and cleared)
	// by the host's frame loop to know a break just happened.
	frameEnd bool
}

func newController() *controller {
	return &controller{}
}

// IsPaused reports the current run state.
func (c *controller) IsPaused() bool {
	return c.paused
}

// clearSteps clears every step-related flag, leaving paused/skipOnce
// untouched.
func (c *controller) clearSteps() {
	c.stepInstr = false
	c.stepInstrAfter = false
	c.stepNext = false
	c.stepNextSkipOnce = false
	c.stepLine = false
	c.stepOut = false
}

// requestBreak transitions to Paused, clears all step flags, and
// raises frameEnd so the host's frame loop notices. Idempotent: a
// second call while already paused changes nothing further.
func (c *controller) requestBreak() {
	c.paused = true
	c.clearSteps()
	c.frameEnd = true
}

// ConsumeFrameEnd reports and clears the frameEnd flag.
func (c *controller) ConsumeFrameEnd() bool {
	v := c.frameEnd
	c.frameEnd = false
	return v
}

// Pause requests an immediate break. Idempotent.
func (c *controller) Pause() {
	c.requestBreak()
}

// Resume transitions to Running. If pc is currently a breakpoint (the
// controller was paused sitting on one), skip_once is armed so the
// instruction hook doesn't immediately re-trigger on the very next
// fetch of the same address.
func (c *controller) Resume(pc uint32, onBreakpoint bool) {
	c.paused = false
	c.clearSteps()
	c.skipOnce = false
	if onBreakpoint {
		c.skipOnce = true
		c.skipPC = cpu.Mask24(pc)
	}
}

// StepInstruction arms a single-instruction step. The handshake is
// two-phase: this call only sets stepInstr; the next instruction hook
// arms stepInstrAfter and lets the instruction proceed, and the
// following hook (after that instruction has executed) requests the
// break.
func (c *controller) StepInstruction() {
	c.paused = false
	c.clearSteps()
	c.skipOnce = false
	c.stepInstr = true
}

// StepOver arms step-over from pc at the given call-stack depth: the
// hook breaks once pc has changed and depth has returned to at or
// below depth.
func (c *controller) StepOver(pc uint32, depth int) {
	c.paused = false
	c.clearSteps()
	c.skipOnce = false
	c.stepNext = true
	c.stepNextDepth = depth
	c.stepStartPC = cpu.Mask24(pc)
}

// StepLine arms line-granularity stepping: the hook breaks the first
// time the line resolver reports a line other than startLine, at a
// call-stack depth no deeper than depth. Depth bookkeeping mirrors
// StepOver so a line step never stops partway into a callee.
func (c *controller) StepLine(startLine, depth int) {
	c.paused = false
	c.clearSteps()
	c.skipOnce = false
	c.stepLine = true
	c.stepLineStart = startLine
	c.stepLineDepth = depth
}

// StepOutOptionally arms a break for the first instruction hook that
// sees call-stack depth at or below depth; Debugger.StepOutOptionally
// passes one less than the current depth. Callers at depth 0 have nothing to step
// out of; Debugger.StepOutOptionally falls back to StepInstruction in
// that case rather than arming a step that can never fire.
func (c *controller) StepOutOptionally(depth int) {
	c.paused = false
	c.clearSteps()
	c.skipOnce = false
	c.stepOut = true
	c.stepOutDepth = depth
}
