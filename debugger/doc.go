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

// Package debugger is the in-process debug core embedded in a 68000-family
// emulator. It is not a host-facing CLI: a host UI drives it through the
// Debugger aggregate's exported methods (execution control, table
// mutation, the profiler stream, the text ring) and is responsible for
// its own symbol resolution, rendering, and input handling.
//
// The core is invoked synchronously from two places: the emulator's
// run loop, which calls InstructionHook before every fetched opcode and
// AfterRead/FilterWrite/AfterWrite around every memory access; and the
// host, which calls the Debugger's exported methods between timeslices
// or while the emulator is paused. There are no internal goroutines and
// no locking: the scheduling model is single-threaded cooperative, and
// a host running the emulator on another thread must confine its calls
// to timeslice boundaries.
package debugger
