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

// The PC-sampling profiler attributes cycles to whichever PC was
// executing during the preceding interval, and takes a sample every
// sampleDivisor instruction hooks. A vertical-blank callback takes a
// forced sample when the instruction hook hasn't fired since the
// previous vblank, so an idle-but-running target still shows up.

package debugger

import "github.com/jetsetilly/m68kdbgcore/cpu"

const profilerCapacity = 4096 // power of two
const profilerSentinelPC = 0xFFFFFFFF
const defaultSampleDivisor = 64

// JIT is the optional just-in-time compiler contract the profiler
// disables while sampling, so that sampled PCs always correspond to
// interpreter fetches rather than compiled-trace execution. A core
// running without a JIT passes nil and this entire concern is skipped.
type JIT interface {
	CacheSize() int
	SetCacheSize(int)
	Flush()
}

type profilerSlot struct {
	pc         uint32
	samples    uint64
	cycles     uint64
	entryEpoch uint32
}

// profiler owns the open-addressed PC table, the dirty/epoch
// bookkeeping that drives the streaming export, and the sampling state
// machine fed by the instruction hook and the vblank callback.
type profiler struct {
	slots [profilerCapacity]profilerSlot
	dirty []int
	epoch uint32

	enabled       bool
	streamEnabled bool

	lastPC    uint32
	lastCycle uint64
	lastValid bool

	// totalCycles is the running sum of every normalized delta
	// attributed to a PC so far; ReadCycleCount reports this, not the
	// raw lastCycle time-base reading.
	totalCycles uint64

	tick           uint64
	sampleDivisor  uint64
	lastVblankTick uint64

	cycleUnit int64

	jit               JIT
	savedJITCacheSize int
}

func newProfiler() *profiler {
	p := &profiler{
		sampleDivisor: defaultSampleDivisor,
		cycleUnit:     1,
		epoch:         1, // epoch 0 is reserved as the "not dirty" sentinel
	}
	for i := range p.slots {
		p.slots[i].pc = profilerSentinelPC
	}
	return p
}

// SetJIT installs (or clears, with nil) the JIT contract the profiler
// pauses while sampling.
func (p *profiler) SetJIT(j JIT) {
	p.jit = j
}

// SetSampleDivisor overrides the default sampling rate. A value <= 0
// is ignored.
func (p *profiler) SetSampleDivisor(d uint64) {
	if d > 0 {
		p.sampleDivisor = d
	}
}

// SetCycleUnit overrides the sub-cycle normalization divisor.
func (p *profiler) SetCycleUnit(u int64) {
	p.cycleUnit = u
}

func hashPC(pc uint32) uint32 {
	return pc * 0x9E3779B1
}

// find returns the slot index for pc, creating the slot on first
// lookup. Linear probe from the hashed index, bounded by capacity.
func (p *profiler) find(pc uint32, create bool) (int, bool) {
	pc = cpu.Mask24(pc)
	idx := int(hashPC(pc)) & (profilerCapacity - 1)
	if idx < 0 {
		idx += profilerCapacity
	}

	for i := 0; i < profilerCapacity; i++ {
		probe := (idx + i) % profilerCapacity
		s := &p.slots[probe]
		if s.pc == pc {
			return probe, true
		}
		if s.pc == profilerSentinelPC {
			if !create {
				return -1, false
			}
			s.pc = pc
			s.samples = 0
			s.cycles = 0
			return probe, true
		}
	}
	return -1, false
}

func (p *profiler) markDirty(idx int) {
	s := &p.slots[idx]
	if s.entryEpoch == p.epoch {
		return
	}
	s.entryEpoch = p.epoch
	p.dirty = append(p.dirty, idx)
}

// Start enables sampling. If streamEnabled is false the table is still
// populated but the host is expected not to call StreamNext.
func (p *profiler) Start(streamEnabled bool) {
	p.enabled = true
	p.streamEnabled = streamEnabled
	if p.jit != nil {
		p.savedJITCacheSize = p.jit.CacheSize()
		p.jit.SetCacheSize(0)
		p.jit.Flush()
	}
}

// Stop disables sampling and restores the JIT cache, if one was
// registered.
func (p *profiler) Stop() {
	p.enabled = false
	if p.jit != nil {
		p.jit.SetCacheSize(p.savedJITCacheSize)
		p.jit.Flush()
	}
}

// IsEnabled reports whether the profiler is currently sampling.
func (p *profiler) IsEnabled() bool {
	return p.enabled
}

// onInstruction feeds one instruction hook invocation: now is the
// emulator's monotone raw cycle counter, pc the about-to-execute
// address.
func (p *profiler) onInstruction(pc uint32, now uint64) {
	if !p.enabled {
		return
	}

	if p.lastValid {
		delta := cpu.Normalize(now-p.lastCycle, p.cycleUnit)
		p.totalCycles += delta
		if idx, ok := p.find(p.lastPC, true); ok {
			p.slots[idx].cycles += delta
			p.markDirty(idx)
		}
	}
	p.lastPC = cpu.Mask24(pc)
	p.lastCycle = now
	p.lastValid = true

	p.tick++
	if p.sampleDivisor > 0 && p.tick%p.sampleDivisor == 0 {
		if idx, ok := p.find(pc, true); ok {
			p.slots[idx].samples++
			p.markDirty(idx)
		}
	}
}

// onVblank takes a forced sample at pc if the instruction hook has not
// fired since the previous vblank.
func (p *profiler) onVblank(pc uint32) {
	if !p.enabled {
		return
	}
	if p.tick == p.lastVblankTick {
		if idx, ok := p.find(pc, true); ok {
			p.slots[idx].samples++
			p.markDirty(idx)
		}
	}
	p.lastVblankTick = p.tick
}

// snapshot returns the aggregate samples/cycles recorded for pc, for
// testing and for the host's non-streaming inspection path. The second
// return value is false if pc has never been sampled.
func (p *profiler) snapshot(pc uint32) (samples, cycles uint64, ok bool) {
	idx, found := p.find(pc, false)
	if !found {
		return 0, 0, false
	}
	return p.slots[idx].samples, p.slots[idx].cycles, true
}
