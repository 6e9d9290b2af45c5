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

// Package curated defines the errors the debug core reports. The core
// never aborts the process on its own account: every fault it can hit
// surfaces as a return value built by this package, and every one of
// them belongs to a small taxonomy of categories.
//
//	CapacityExhausted   a fixed-size table had no free slot: the
//	                    breakpoint sets, the 64-slot watchpoint table,
//	                    the 64-slot protect table
//	InvalidParameter    a caller-supplied value fell outside the set an
//	                    operation accepts: an access size not in
//	                    {8,16,32}, a protect mode that is neither BLOCK
//	                    nor SET, a memory-write size not in {1,2,4}
//	OutOfRange          an index argument named a slot that does not
//	                    exist (no debugger operation returns it:
//	                    out-of-range removes are a silent no-op)
//
// Errors are created with Errorf, or with Errorc when the call site
// wants to tag the category explicitly:
//
//	e := curated.Errorc(curated.CapacityExhausted, "no free watchpoint slot")
//
// A caller reacting to a class of fault recovers the tag with
// CategoryOf rather than matching message text:
//
//	if c, ok := curated.CategoryOf(e); ok && c == curated.CapacityExhausted {
//		// tell the host to free a slot first
//	}
//
// Errors keep the formatting pattern they were created with, and the
// pattern acts as the error's identity. Is() checks the outermost error
// against a pattern and Has() searches the whole chain, so a wrapped
// error remains identifiable:
//
//	e := curated.Errorf("no free protect slot")
//	f := curated.Errorf("add protect: %v", e)
//
//	curated.Is(f, "add protect: %v")        // true
//	curated.Has(f, "no free protect slot")  // true
//
// IsAny reports whether an error was raised by this package at all: the
// distinction between a fault the debug core anticipated and something
// unexpected bubbling up from below.
//
// Error() normalises the message chain by collapsing the first two
// parts (parts being the ": "-separated segments of the message) when
// they are identical, so one layer of wrapping with the same pattern
// does not stutter. Duplicates beyond the leading pair are kept.
package curated
