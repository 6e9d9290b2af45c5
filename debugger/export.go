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

// Every operation in this file is part of the host-facing export
// surface: each one copies bytes across the boundary rather than
// handing out a pointer into the core's internal tables. Nothing here
// is safe to call concurrently with a running emulator in a separate
// thread; see the concurrency notes in package doc.go.

package debugger

import (
	"fmt"

	"github.com/jetsetilly/m68kdbgcore/cpu"
	"github.com/jetsetilly/m68kdbgcore/curated"
	"github.com/jetsetilly/m68kdbgcore/logger"
)

// ReadCallstack copies up to len(out) shadow call-stack entries, most
// recent first, and returns the count copied.
func (d *Debugger) ReadCallstack(out []uint32) int {
	return d.callStack.read(out)
}

// ReadRegisters copies the register file into out in the order 16
// general registers (D0-D7, A0-A7), status register, program counter,
// and returns the count of uint32 slots filled. A buffer shorter than
// 18 entries gets a partial copy; read_registers never errors.
func (d *Debugger) ReadRegisters(out []uint32) int {
	if d.reg == nil {
		return 0
	}
	vals := make([]uint32, 0, 18)
	for i := 0; i < 8; i++ {
		vals = append(vals, d.reg.D(i))
	}
	for i := 0; i < 8; i++ {
		vals = append(vals, d.reg.A(i))
	}
	vals = append(vals, uint32(d.reg.SR()))
	vals = append(vals, d.reg.PC())

	n := copy(out, vals)
	return n
}

// ReadMemory copies up to len(out) bytes starting at addr from the
// bus, one byte at a time, and returns the count copied. This is a
// self-initiated access: it's bracketed in the suspend counter so it
// can never itself trip a watchpoint.
func (d *Debugger) ReadMemory(addr uint32, out []byte) int {
	if d.bus == nil {
		return 0
	}
	d.Suspend()
	defer d.Unsuspend()

	n := 0
	for i := range out {
		v := d.bus.Read(cpu.Mask24(addr+uint32(i)), cpu.Size8)
		out[i] = byte(v)
		n++
	}
	return n
}

// WriteMemory writes a single value of the given size (1, 2 or 4
// bytes) to addr. Returns an invalid-parameter error if size isn't one
// of those three. Host-initiated writes bypass the protection filter
// entirely (the suspend counter is held across the call).
func (d *Debugger) WriteMemory(addr uint32, value uint32, sizeBytes int) error {
	var size cpu.Size
	switch sizeBytes {
	case 1:
		size = cpu.Size8
	case 2:
		size = cpu.Size16
	case 4:
		size = cpu.Size32
	default:
		return curated.Errorc(curated.InvalidParameter, "write_memory size must be 1, 2 or 4 bytes, got %d", sizeBytes)
	}
	if d.bus == nil {
		return curated.Errorf("no bus attached")
	}

	d.Suspend()
	defer d.Unsuspend()

	d.bus.Write(cpu.Mask24(addr), size, size.Truncate(value))
	return nil
}

// DisassembleQuick writes a best-effort textual representation of the
// instruction at pc into out (truncated to len(out)) and returns the
// byte offset of the next instruction. It is "quick" because it only
// classifies the opcode's effective-address shape (see package cpu's
// InstructionLength) rather than fully decoding the instruction;
// that's enough to keep a host-side listing advancing correctly.
func (d *Debugger) DisassembleQuick(pc uint32, out []byte) int {
	if d.bus == nil {
		return 0
	}

	d.Suspend()
	defer d.Unsuspend()

	opcode := uint16(d.bus.Read(cpu.Mask24(pc), cpu.Size16))
	length := cpu.InstructionLength(opcode)

	text := fmt.Sprintf("0x%04x", opcode)
	copy(out, text)

	return length
}

// ReadCycleCount returns the total number of emulator-normalized
// cycles (see cpu.Normalize) attributed to instructions so far, not a
// raw reading of the underlying time base.
func (d *Debugger) ReadCycleCount() uint64 {
	return d.profiler.totalCycles
}

// AddBreakpoint installs a permanent breakpoint at addr.
func (d *Debugger) AddBreakpoint(addr uint32) error {
	err := d.breakpoints.Add(addr)
	if err != nil {
		d.log.Log(logger.Allow, "breakpoints", err)
	}
	return err
}

// RemoveBreakpoint removes a permanent breakpoint at addr.
func (d *Debugger) RemoveBreakpoint(addr uint32) {
	d.breakpoints.Remove(addr)
}

// AddTempBreakpoint installs a one-shot breakpoint at addr.
func (d *Debugger) AddTempBreakpoint(addr uint32) error {
	return d.breakpoints.AddTemp(addr)
}

// RemoveTempBreakpoint removes a one-shot breakpoint at addr.
func (d *Debugger) RemoveTempBreakpoint(addr uint32) {
	d.breakpoints.RemoveTemp(addr)
}

// ResetWatchpoints clears every watchpoint slot.
func (d *Debugger) ResetWatchpoints() {
	d.watchpoints = newWatchpoints()
}

// AddWatchpoint installs a watchpoint; see WatchOp for the clause
// bitset and Watchpoint for the operand tuple.
func (d *Debugger) AddWatchpoint(addr uint32, opMask WatchOp, diff, value, oldValue uint32, size cpu.Size, addrMask uint32) (int, error) {
	i, err := d.watchpoints.Add(addr, opMask, diff, value, oldValue, size, addrMask)
	if err != nil {
		d.log.Log(logger.Allow, "watchpoints", err)
	}
	return i, err
}

// RemoveWatchpoint clears watchpoint slot i.
func (d *Debugger) RemoveWatchpoint(i int) {
	d.watchpoints.Remove(i)
}

// ReadAllWatchpoints copies up to len(out) occupied watchpoints into
// out and returns the count copied.
func (d *Debugger) ReadAllWatchpoints(out []Watchpoint) int {
	return d.watchpoints.ReadAll(out)
}

// WatchpointEnabledMask returns the current enabled mask.
func (d *Debugger) WatchpointEnabledMask() uint64 {
	return d.watchpoints.EnabledMask()
}

// SetWatchpointEnabledMask replaces the enabled mask wholesale.
func (d *Debugger) SetWatchpointEnabledMask(mask uint64) {
	d.watchpoints.SetEnabledMask(mask)
}

// ConsumeWatchbreak copies the latched watchbreak record into out and
// clears the latch. Returns false if nothing was latched.
func (d *Debugger) ConsumeWatchbreak(out *Watchbreak) bool {
	return d.watchpoints.ConsumeWatchbreak(out)
}

// ResetProtects clears every protect slot.
func (d *Debugger) ResetProtects() {
	d.protects = newProtects()
}

// AddProtect installs a write-protection entry.
func (d *Debugger) AddProtect(addr uint32, size cpu.Size, mode ProtectMode, value uint32) (int, error) {
	i, err := d.protects.Add(addr, size, mode, value)
	if err != nil {
		d.log.Log(logger.Allow, "protects", err)
	}
	return i, err
}

// RemoveProtect clears protect slot i.
func (d *Debugger) RemoveProtect(i int) {
	d.protects.Remove(i)
}

// ReadAllProtects copies up to len(out) occupied protect entries into
// out and returns the count copied.
func (d *Debugger) ReadAllProtects(out []ProtectEntry) int {
	return d.protects.ReadAll(out)
}

// ProtectEnabledMask returns the current enabled mask.
func (d *Debugger) ProtectEnabledMask() uint64 {
	return d.protects.EnabledMask()
}

// SetProtectEnabledMask replaces the enabled mask wholesale.
func (d *Debugger) SetProtectEnabledMask(mask uint64) {
	d.protects.SetEnabledMask(mask)
}

// StartProfiler enables PC sampling.
func (d *Debugger) StartProfiler(streamEnabled bool) {
	d.profiler.Start(streamEnabled)
}

// StopProfiler disables PC sampling.
func (d *Debugger) StopProfiler() {
	d.profiler.Stop()
}

// ProfilerEnabled reports whether the profiler is currently sampling.
func (d *Debugger) ProfilerEnabled() bool {
	return d.profiler.IsEnabled()
}

// StreamNext drains the profiler's next delta frame into buf and
// returns the byte count written.
func (d *Debugger) StreamNext(buf []byte) int {
	return d.profiler.StreamNext(buf)
}

// TextWrite appends text to the host notification ring. Used by the
// core itself (a breakpoint/watchpoint hit notification) as well as
// anything the emulator wants to surface as target-originated text.
func (d *Debugger) TextWrite(text string) {
	d.text.Write([]byte(text))
}

// TextRead copies up to len(out) currently retained bytes from the
// text ring and returns the count copied.
func (d *Debugger) TextRead(out []byte) int {
	return d.text.Read(out)
}
