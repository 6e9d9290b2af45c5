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

package ucbridge

import (
	"fmt"

	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/jetsetilly/m68kdbgcore/cpu"
	"github.com/jetsetilly/m68kdbgcore/debugger"
)

// Hooks is the set of unicorn hook handles InstallHooks registers, kept
// around only so a caller could remove them with the underlying
// unicorn API if it ever needed to; this package has no use for that
// itself.
type Hooks struct {
	code  uc.Hook
	read  uc.Hook
	write uc.Hook
}

// InstallHooks wires a unicorn instance's code and memory hooks to
// dbg's instruction hook and memory access surface. The instruction
// hook fetches the opcode word itself (unicorn's HOOK_CODE callback
// only supplies the address and the instruction's byte length). The
// debug core's end-of-timeslice signal is bound to unicorn's Stop, so
// a break raised from any hook (including the memory-access paths,
// which have no return value to veto with) halts emulation.
func InstallHooks(b *Bridge, dbg *debugger.Debugger) (*Hooks, error) {
	h := &Hooks{}

	dbg.SetEndTimeslice(func() {
		b.mu.Stop()
	})

	codeHook, err := b.mu.HookAdd(uc.HOOK_CODE, func(mu uc.Unicorn, addr uint64, size uint32) {
		b.applyPending()

		opcode := uint16(b.Read(uint32(addr), cpu.Size16))
		b.cycle++

		dbg.InstructionHook(uint32(addr), opcode, b.cycle)
	}, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("ucbridge: install code hook: %w", err)
	}
	h.code = codeHook

	readHook, err := b.mu.HookAdd(uc.HOOK_MEM_READ, func(mu uc.Unicorn, access int, addr uint64, size int, value int64) {
		width := sizeFor(size)
		if !width.Valid() {
			return
		}
		v := b.Read(uint32(addr), width)
		dbg.AfterRead(uint32(addr), v, width)
	}, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("ucbridge: install read hook: %w", err)
	}
	h.read = readHook

	writeHook, err := b.mu.HookAdd(uc.HOOK_MEM_WRITE, func(mu uc.Unicorn, access int, addr uint64, size int, value int64) {
		width := sizeFor(size)
		if !width.Valid() {
			return
		}

		old := b.Read(uint32(addr), width)
		in := width.Truncate(uint32(value))

		filtered := dbg.FilterWrite(uint32(addr), width, old, true, in)
		if filtered != in {
			// unicorn commits the guest's original value after this
			// callback returns; the rewrite is deferred until the
			// instruction has retired (see Bridge.applyPending).
			b.pending = append(b.pending, fixup{addr: uint32(addr), size: width, value: filtered})
		}
		dbg.AfterWrite(uint32(addr), filtered, old, width, true)
	}, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("ucbridge: install write hook: %w", err)
	}
	h.write = writeHook

	return h, nil
}

// sizeFor maps unicorn's byte-count access size to the debug core's
// cpu.Size. Any width unicorn reports outside 1/2/4 bytes (shouldn't
// happen on a pure M68K bus) comes back invalid and the caller skips
// the hook body entirely.
func sizeFor(bytes int) cpu.Size {
	switch bytes {
	case 1:
		return cpu.Size8
	case 2:
		return cpu.Size16
	case 4:
		return cpu.Size32
	}
	return cpu.Size(0)
}
