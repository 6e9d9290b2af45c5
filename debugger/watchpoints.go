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

// Watchpoints are predicate-matched memory access traps. Every enabled
// slot is checked on every read or write the memory access surface
// forwards to AfterRead/AfterWrite; a match latches a single watchbreak
// record and requests a break through the execution controller. Only
// one watchbreak is ever latched at a time: further matches are
// dropped until the host drains the record with ConsumeWatchbreak.

package debugger

import (
	"github.com/jetsetilly/m68kdbgcore/cpu"
	"github.com/jetsetilly/m68kdbgcore/curated"
)

const watchpointCount = 64

// WatchOp is a bitset selecting which clauses of a watchpoint's
// predicate are active. The access kind is always checked (a slot with
// neither WatchRead nor WatchWrite matches nothing), and the address is
// always compared (strict equality unless WatchAddrCompareMask is set).
// The remaining clauses constrain the match only when selected.
type WatchOp uint16

const (
	WatchRead  WatchOp = 1 << iota // access kind must be read
	WatchWrite                     // access kind must be write

	WatchAddrCompareMask // compare (addr & addr_mask) rather than strict equality
	WatchAccessSize      // access size must equal the configured size
	WatchValueEq         // truncated value must equal the value operand
	WatchOldValueEq      // old value must be valid and equal the old_value operand

	// WatchValueNeqOld matches when the old value is valid and
	// truncate(old) != truncate(diff). Despite the name, it is not a
	// comparison between old and new; the name is kept for
	// compatibility with hosts that already configure this bit.
	WatchValueNeqOld

	// WatchOldNeqNew is the clause WatchValueNeqOld's name suggests: it
	// implements "new value differs from old value" literally, for
	// callers who want that semantic without changing WatchValueNeqOld's
	// meaning.
	WatchOldNeqNew
)

// Watchpoint is one slot's configuration. Zero value is an inert,
// unconfigured slot (no clauses active, matches nothing).
type Watchpoint struct {
	Addr     uint32
	AddrMask uint32
	OpMask   WatchOp
	Value    uint32
	OldValue uint32
	Diff     uint32
	Size     cpu.Size
}

// Watchbreak is the latched record describing the access that tripped
// a watchpoint.
type Watchbreak struct {
	Index    int
	Slot     Watchpoint
	Kind     AccessKind
	Addr     uint32
	Size     cpu.Size
	Value    uint32
	OldValue uint32
	OldValid bool
}

type watchpoints struct {
	slots       [watchpointCount]Watchpoint
	occupied    [watchpointCount]bool
	enabledMask uint64

	latched    bool
	watchbreak Watchbreak
}

func newWatchpoints() *watchpoints {
	return &watchpoints{}
}

// Add installs a new watchpoint in the first free slot and enables it.
// Returns the slot index, or a capacity-exhausted error if every slot
// is occupied.
func (w *watchpoints) Add(addr uint32, opMask WatchOp, diff, value, oldValue uint32, size cpu.Size, addrMask uint32) (int, error) {
	for i := 0; i < watchpointCount; i++ {
		if w.occupied[i] {
			continue
		}
		w.slots[i] = Watchpoint{
			Addr:     cpu.Mask24(addr),
			AddrMask: addrMask,
			OpMask:   opMask,
			Value:    value,
			OldValue: oldValue,
			Diff:     diff,
			Size:     size,
		}
		w.occupied[i] = true
		w.enabledMask |= 1 << uint(i)
		return i, nil
	}
	return -1, curated.Errorc(curated.CapacityExhausted, "no free watchpoint slot")
}

// Remove clears slot i. An out-of-range or already-empty index is a
// silent no-op.
func (w *watchpoints) Remove(i int) {
	if i < 0 || i >= watchpointCount || !w.occupied[i] {
		return
	}
	w.occupied[i] = false
	w.slots[i] = Watchpoint{}
	w.enabledMask &^= 1 << uint(i)
}

// ReadAll copies up to len(out) occupied watchpoints into out, in slot
// order, and returns the count copied.
func (w *watchpoints) ReadAll(out []Watchpoint) int {
	n := 0
	for i := 0; i < watchpointCount && n < len(out); i++ {
		if w.occupied[i] {
			out[n] = w.slots[i]
			n++
		}
	}
	return n
}

// EnabledMask returns the current N-bit enabled mask.
func (w *watchpoints) EnabledMask() uint64 {
	return w.enabledMask
}

// SetEnabledMask replaces the enabled mask wholesale. Bits referencing
// empty slots are tolerated: such a slot simply never matches.
func (w *watchpoints) SetEnabledMask(mask uint64) {
	w.enabledMask = mask
}

// ConsumeWatchbreak copies the latched record into out and clears the
// latch, returning true. Returns false (out left untouched) when
// nothing is latched.
func (w *watchpoints) ConsumeWatchbreak(out *Watchbreak) bool {
	if !w.latched {
		return false
	}
	*out = w.watchbreak
	w.latched = false
	return true
}

// match evaluates slot i's predicate against acc. The access kind must
// be selected by op_mask and the address must match; every other clause
// selected by op_mask must hold, and unselected ones are not checked.
func (w *watchpoints) match(i int, acc access) bool {
	s := w.slots[i]

	switch acc.kind {
	case AccessRead:
		if s.OpMask&WatchRead == 0 {
			return false
		}
	case AccessWrite:
		if s.OpMask&WatchWrite == 0 {
			return false
		}
	default:
		return false
	}

	if s.OpMask&WatchAddrCompareMask != 0 {
		if (acc.addr & s.AddrMask) != (s.Addr & s.AddrMask) {
			return false
		}
	} else if acc.addr != s.Addr {
		return false
	}

	if s.OpMask&WatchAccessSize != 0 {
		if !s.Size.Valid() || acc.size != s.Size {
			return false
		}
	}

	if s.OpMask&WatchValueEq != 0 {
		if acc.size.Truncate(acc.value) != acc.size.Truncate(s.Value) {
			return false
		}
	}

	if s.OpMask&WatchOldValueEq != 0 {
		if !acc.oldValid || acc.size.Truncate(acc.oldValue) != acc.size.Truncate(s.OldValue) {
			return false
		}
	}

	if s.OpMask&WatchValueNeqOld != 0 {
		if !acc.oldValid || acc.size.Truncate(acc.oldValue) == acc.size.Truncate(s.Diff) {
			return false
		}
	}

	if s.OpMask&WatchOldNeqNew != 0 {
		if !acc.oldValid || acc.size.Truncate(acc.oldValue) == acc.size.Truncate(acc.value) {
			return false
		}
	}

	return true
}

// evaluate runs acc against every enabled, occupied slot in index
// order. The first match latches a watchbreak (if one isn't already
// latched) and returns true. Does nothing while suspended (the debug
// core's own re-entrancy guard, owned by the Debugger aggregate) or
// while a watchbreak is already latched: no further watchbreak is
// recorded until the host consumes the current one.
func (w *watchpoints) evaluate(acc access, suspended bool) bool {
	if suspended || w.latched {
		return false
	}

	for i := 0; i < watchpointCount; i++ {
		if !w.occupied[i] {
			continue
		}
		if w.enabledMask&(1<<uint(i)) == 0 {
			continue
		}
		if !w.match(i, acc) {
			continue
		}

		w.watchbreak = Watchbreak{
			Index:    i,
			Slot:     w.slots[i],
			Kind:     acc.kind,
			Addr:     acc.addr,
			Size:     acc.size,
			Value:    acc.value,
			OldValue: acc.oldValue,
			OldValid: acc.oldValid,
		}
		w.latched = true
		return true
	}
	return false
}
