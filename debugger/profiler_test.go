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
	"testing"

	"github.com/jetsetilly/m68kdbgcore/test"
)

func TestProfilerFindCreatesAndReuses(t *testing.T) {
	p := newProfiler()

	idx, ok := p.find(0x2000, false)
	test.ExpectEquality(t, ok, false)
	test.ExpectEquality(t, idx, -1)

	idx1, ok := p.find(0x2000, true)
	test.ExpectEquality(t, ok, true)

	idx2, ok := p.find(0x2000, true)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, idx1, idx2)
}

func TestProfilerMaskedAddress(t *testing.T) {
	p := newProfiler()
	idx1, _ := p.find(0xFF002000, true)
	idx2, _ := p.find(0x00002000, true)
	test.ExpectEquality(t, idx1, idx2)
}

func TestProfilerSamplingDivisor(t *testing.T) {
	p := newProfiler()
	p.enabled = true
	p.SetSampleDivisor(4)

	for i := 0; i < 3; i++ {
		p.onInstruction(0x3000, uint64(i))
	}
	samples, _, ok := p.snapshot(0x3000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, samples, uint64(0))

	p.onInstruction(0x3000, 3)
	samples, _, _ = p.snapshot(0x3000)
	test.ExpectEquality(t, samples, uint64(1))
}

func TestProfilerDisabledIgnoresTicks(t *testing.T) {
	p := newProfiler()
	p.SetSampleDivisor(1)
	p.onInstruction(0x4000, 0)

	_, _, ok := p.snapshot(0x4000)
	test.ExpectEquality(t, ok, false)
}

func TestProfilerAccumulatesCyclesToPriorPC(t *testing.T) {
	p := newProfiler()
	p.enabled = true
	p.SetSampleDivisor(0xFFFFFFFF)

	p.onInstruction(0x5000, 100)
	p.onInstruction(0x6000, 150)

	samples, cycles, ok := p.snapshot(0x5000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, samples, uint64(0))
	test.ExpectEquality(t, cycles, uint64(50))
}

func TestProfilerVblankForcesSampleWhenIdle(t *testing.T) {
	p := newProfiler()
	p.enabled = true
	p.SetSampleDivisor(0xFFFFFFFF)

	// tick and lastVblankTick both start at zero, so the very first
	// vblank call (with no preceding instruction hook at all) already
	// counts as idle and forces a sample.
	p.onVblank(0x7000)

	samples, _, ok := p.snapshot(0x7000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, samples, uint64(1))

	// a second vblank with no intervening instruction hook samples
	// again; the tick counter hasn't moved.
	p.onVblank(0x7000)
	samples, _, _ = p.snapshot(0x7000)
	test.ExpectEquality(t, samples, uint64(2))
}

func TestProfilerVblankSkipsWhenTickAdvanced(t *testing.T) {
	p := newProfiler()
	p.enabled = true
	p.SetSampleDivisor(0xFFFFFFFF)

	// an instruction hook moves tick away from lastVblankTick, so this
	// vblank does not force a sample.
	p.onInstruction(0x8000, 0)
	p.onVblank(0x8000)

	_, _, ok := p.snapshot(0x8000)
	test.ExpectEquality(t, ok, false)

	// no further instruction hook fires before the next vblank: tick
	// has caught back up with lastVblankTick, so this one forces.
	p.onVblank(0x8000)
	samples, _, ok := p.snapshot(0x8000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, samples, uint64(1))
}

func TestProfilerStartStopTogglesJIT(t *testing.T) {
	p := newProfiler()
	j := &fakeJIT{size: 512}
	p.SetJIT(j)

	p.Start(true)
	test.ExpectEquality(t, p.IsEnabled(), true)
	test.ExpectEquality(t, j.size, 0)
	test.ExpectEquality(t, j.flushed, 1)

	p.Stop()
	test.ExpectEquality(t, p.IsEnabled(), false)
	test.ExpectEquality(t, j.size, 512)
	test.ExpectEquality(t, j.flushed, 2)
}

type fakeJIT struct {
	size    int
	flushed int
}

func (f *fakeJIT) CacheSize() int     { return f.size }
func (f *fakeJIT) SetCacheSize(n int) { f.size = n }
func (f *fakeJIT) Flush()             { f.flushed++ }
