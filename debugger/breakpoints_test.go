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

func TestBreakpointsAddRemove(t *testing.T) {
	b := newBreakpoints()

	test.ExpectedSuccess(t, b.Add(0x1000))
	test.ExpectEquality(t, b.permanent.has(0x1000), true)

	// duplicate add is a silent no-op, not an error
	test.ExpectedSuccess(t, b.Add(0x1000))
	test.ExpectEquality(t, b.permanent.count(), 1)

	b.Remove(0x1000)
	test.ExpectEquality(t, b.permanent.has(0x1000), false)

	// removing an address that was never added is a silent no-op
	b.Remove(0x2000)
}

func TestBreakpointsCapacity(t *testing.T) {
	b := newBreakpoints()
	for i := 0; i < breakpointCapacity; i++ {
		test.ExpectedSuccess(t, b.Add(uint32(i)))
	}
	test.ExpectedFailure(t, b.Add(uint32(breakpointCapacity)))
}

func TestBreakpointsTempConsumedOnHit(t *testing.T) {
	b := newBreakpoints()
	test.ExpectedSuccess(t, b.AddTemp(0x3000))

	test.ExpectEquality(t, b.checkAndConsume(0x3000), true)
	// second check at the same address finds nothing: the temp entry
	// was consumed by the first hit
	test.ExpectEquality(t, b.checkAndConsume(0x3000), false)
}

func TestBreakpointsOverlapConsumesTemp(t *testing.T) {
	b := newBreakpoints()
	test.ExpectedSuccess(t, b.Add(0x4000))
	test.ExpectedSuccess(t, b.AddTemp(0x4000))

	test.ExpectEquality(t, b.checkAndConsume(0x4000), true)
	// temp entry is gone, permanent entry survives
	test.ExpectEquality(t, b.temp.has(0x4000), false)
	test.ExpectEquality(t, b.checkAndConsume(0x4000), true)
}

func TestBreakpointsListRoundTrip(t *testing.T) {
	b := newBreakpoints()
	test.ExpectedSuccess(t, b.Add(0x1000))
	test.ExpectedSuccess(t, b.Add(0x2000))

	out := make([]uint32, 8)
	n := b.permanent.list(out)
	test.ExpectEquality(t, n, 2)

	found := map[uint32]bool{}
	for _, addr := range out[:n] {
		found[addr] = true
	}
	test.ExpectEquality(t, found[0x1000], true)
	test.ExpectEquality(t, found[0x2000], true)

	// removing one restores the pre-add listing
	b.Remove(0x2000)
	n = b.permanent.list(out)
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, out[0], uint32(0x1000))

	// a listing into a short buffer is a partial copy, not an error
	short := make([]uint32, 1)
	test.ExpectEquality(t, b.permanent.list(short), 1)
}

func TestBreakpointsMask24(t *testing.T) {
	b := newBreakpoints()
	test.ExpectedSuccess(t, b.Add(0xFF001000))
	test.ExpectEquality(t, b.permanent.has(0x001000), true)
}
