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

// Package ucbridge wires a real unicorn.Unicorn M68K instance to the
// debug core's cpu.Bus and cpu.Registers contracts, and to the
// Debugger's hook surface. Nothing in package cpu or package debugger
// knows unicorn exists; this package is the only place that import
// appears.
package ucbridge

import (
	"fmt"

	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/jetsetilly/m68kdbgcore/cpu"
)

// Bridge owns the unicorn engine instance and satisfies cpu.Bus and
// cpu.Registers against it. A Bridge is only useful once its hooks are
// installed; see InstallHooks.
type Bridge struct {
	mu uc.Unicorn

	// cycle is a synthetic monotone clock fed to Debugger.InstructionHook.
	// Unicorn doesn't expose the target's own cycle-accurate timing, so
	// this counts fetched instructions. The code hook installed by
	// InstallHooks always passes this count; real cycle attribution
	// needs a caller that invokes Debugger.InstructionHook with its own
	// clock reading.
	cycle uint64

	// pending holds protection-filter rewrites that could not be
	// committed inside the write hook itself: unicorn retires the
	// guest's original value after HOOK_MEM_WRITE returns, so a
	// corrective MemWrite issued there would be clobbered. The fixups
	// are applied at the next code hook (the write instruction has
	// fully retired by then) and again when Start returns, in case the
	// run stopped before another instruction was fetched.
	pending []fixup
}

type fixup struct {
	addr  uint32
	size  cpu.Size
	value uint32
}

func (b *Bridge) applyPending() {
	for _, f := range b.pending {
		b.Write(f.addr, f.size, f.value)
	}
	b.pending = b.pending[:0]
}

// New creates a Bridge over a fresh big-endian M68K unicorn instance.
func New() (*Bridge, error) {
	mu, err := uc.NewUnicorn(uc.ARCH_M68K, uc.MODE_BIG_ENDIAN)
	if err != nil {
		return nil, fmt.Errorf("ucbridge: create unicorn: %w", err)
	}
	return &Bridge{mu: mu}, nil
}

// Close releases the underlying unicorn instance.
func (b *Bridge) Close() error {
	return b.mu.Close()
}

// MapMemory maps a region of the target address space. base and size
// are unicorn's native 64-bit address/size even though the debug core
// itself only ever sees the masked 24-bit bus; the bridge is
// responsible for keeping the two consistent.
func (b *Bridge) MapMemory(base, size uint64) error {
	return b.mu.MemMap(base, size)
}

// LoadCode writes a code image at addr.
func (b *Bridge) LoadCode(addr uint64, code []byte) error {
	return b.mu.MemWrite(addr, code)
}

// Start runs the target from pc until stopped, either by the debug
// core requesting a break or by reaching until.
func (b *Bridge) Start(pc, until uint64) error {
	err := b.mu.Start(pc, until)
	b.applyPending()
	return err
}

// Stop halts emulation. Safe to call from an instruction hook.
func (b *Bridge) Stop() error {
	return b.mu.Stop()
}

// m68kRegForD and m68kRegForA translate the debug core's D0-D7/A0-A7
// indices into the unicorn register constants for the M68K backend.
func m68kRegForD(n int) int {
	return uc.M68K_REG_D0 + n
}

func m68kRegForA(n int) int {
	return uc.M68K_REG_A0 + n
}

// D implements cpu.Registers.
func (b *Bridge) D(n int) uint32 {
	v, _ := b.mu.RegRead(m68kRegForD(n))
	return uint32(v)
}

// A implements cpu.Registers.
func (b *Bridge) A(n int) uint32 {
	v, _ := b.mu.RegRead(m68kRegForA(n))
	return uint32(v)
}

// SetD implements cpu.Registers.
func (b *Bridge) SetD(n int, v uint32) {
	b.mu.RegWrite(m68kRegForD(n), uint64(v))
}

// SetA implements cpu.Registers.
func (b *Bridge) SetA(n int, v uint32) {
	b.mu.RegWrite(m68kRegForA(n), uint64(v))
}

// SR implements cpu.Registers.
func (b *Bridge) SR() uint16 {
	v, _ := b.mu.RegRead(uc.M68K_REG_SR)
	return uint16(v)
}

// SetSR implements cpu.Registers.
func (b *Bridge) SetSR(v uint16) {
	b.mu.RegWrite(uc.M68K_REG_SR, uint64(v))
}

// PC implements cpu.Registers.
func (b *Bridge) PC() uint32 {
	v, _ := b.mu.RegRead(uc.M68K_REG_PC)
	return uint32(v)
}

// SetPC implements cpu.Registers.
func (b *Bridge) SetPC(v uint32) {
	b.mu.RegWrite(uc.M68K_REG_PC, uint64(v))
}

// Read implements cpu.Bus. Unicorn has no notion of access width
// narrower than a byte slice, so multi-byte reads are assembled
// big-endian, matching the 68000 bus this adapter targets.
func (b *Bridge) Read(addr uint32, size cpu.Size) uint32 {
	data, err := b.mu.MemRead(uint64(addr), uint64(size.Bytes()))
	if err != nil {
		return 0
	}
	var v uint32
	for _, x := range data {
		v = (v << 8) | uint32(x)
	}
	return v
}

// Write implements cpu.Bus.
func (b *Bridge) Write(addr uint32, size cpu.Size, value uint32) {
	n := size.Bytes()
	data := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		data[i] = byte(value)
		value >>= 8
	}
	b.mu.MemWrite(uint64(addr), data)
}
