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

// breakpoints are used to halt execution when PC reaches a specific
// 24-bit address. The permanent set survives a hit; the one-shot set is
// consumed by it. The two sets may overlap: a hit on an address present
// in both consumes the one-shot entry regardless of the permanent one
// still being armed.

package debugger

import (
	"github.com/jetsetilly/m68kdbgcore/cpu"
	"github.com/jetsetilly/m68kdbgcore/curated"
)

const breakpointCapacity = 4096

// breakpointTable is a fixed-capacity set of 24-bit addresses, used for
// both the permanent breakpoint set and the one-shot (temporary)
// breakpoint set.
type breakpointTable struct {
	addrs map[uint32]bool
}

func newBreakpointTable() *breakpointTable {
	return &breakpointTable{addrs: make(map[uint32]bool)}
}

// add inserts addr, ignoring a duplicate. Returns a capacity-exhausted
// error if the table is already full.
func (t *breakpointTable) add(addr uint32) error {
	addr = cpu.Mask24(addr)
	if t.addrs[addr] {
		return nil
	}
	if len(t.addrs) >= breakpointCapacity {
		return curated.Errorc(curated.CapacityExhausted, "no free breakpoint slot")
	}
	t.addrs[addr] = true
	return nil
}

// remove deletes addr. A missing address is a silent no-op.
func (t *breakpointTable) remove(addr uint32) {
	delete(t.addrs, cpu.Mask24(addr))
}

// has reports whether addr is present.
func (t *breakpointTable) has(addr uint32) bool {
	return t.addrs[cpu.Mask24(addr)]
}

// consume deletes addr and reports whether it had been present.
func (t *breakpointTable) consume(addr uint32) bool {
	addr = cpu.Mask24(addr)
	if !t.addrs[addr] {
		return false
	}
	delete(t.addrs, addr)
	return true
}

// count returns the number of addresses currently held.
func (t *breakpointTable) count() int {
	return len(t.addrs)
}

// list copies up to len(out) addresses into out, in no particular
// order, and returns the number copied.
func (t *breakpointTable) list(out []uint32) int {
	n := 0
	for addr := range t.addrs {
		if n >= len(out) {
			break
		}
		out[n] = addr
		n++
	}
	return n
}

// breakpoints owns the permanent set B and the one-shot set T.
type breakpoints struct {
	permanent *breakpointTable
	temp      *breakpointTable
}

func newBreakpoints() *breakpoints {
	return &breakpoints{
		permanent: newBreakpointTable(),
		temp:      newBreakpointTable(),
	}
}

// Add installs a permanent breakpoint at addr.
func (b *breakpoints) Add(addr uint32) error {
	return b.permanent.add(addr)
}

// Remove removes a permanent breakpoint at addr.
func (b *breakpoints) Remove(addr uint32) {
	b.permanent.remove(addr)
}

// AddTemp installs a one-shot breakpoint at addr.
func (b *breakpoints) AddTemp(addr uint32) error {
	return b.temp.add(addr)
}

// RemoveTemp removes a one-shot breakpoint at addr without consuming
// it (the host changed its mind before the hit happened).
func (b *breakpoints) RemoveTemp(addr uint32) {
	b.temp.remove(addr)
}

// checkAndConsume implements step 7 of the instruction hook: if addr is
// in T it is consumed and true is returned; else if addr is in B, true
// is returned and B is left untouched.
func (b *breakpoints) checkAndConsume(addr uint32) bool {
	if b.temp.consume(addr) {
		return true
	}
	return b.permanent.has(addr)
}
