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

// textRing is the fixed-capacity, drop-oldest byte ring used for
// target-to-host textual output (the "Text" export operation). It is
// the core's own component, built the same way as the drop-oldest
// ring helper in package test, but kept independent of it: the test
// package is reference tooling for _test.go files, not a production
// dependency.

package debugger

const textRingCapacity = 4096

type textRing struct {
	buf  []byte
	head int
	n    int
}

func newTextRing() *textRing {
	return &textRing{buf: make([]byte, textRingCapacity)}
}

// Write appends p to the ring, dropping the oldest bytes first if p
// doesn't fit. Always succeeds.
func (r *textRing) Write(p []byte) {
	size := len(r.buf)
	if len(p) >= size {
		copy(r.buf, p[len(p)-size:])
		r.head = 0
		r.n = size
		return
	}
	for _, b := range p {
		if r.n < size {
			pos := (r.head + r.n) % size
			r.buf[pos] = b
			r.n++
		} else {
			r.buf[r.head] = b
			r.head = (r.head + 1) % size
		}
	}
}

// Read copies up to len(out) of the currently retained bytes, oldest
// first, into out and returns the count copied. It does not drain the
// ring; repeated reads return the same bytes until the next Write.
func (r *textRing) Read(out []byte) int {
	n := r.n
	if n > len(out) {
		n = len(out)
	}
	size := len(r.buf)
	for i := 0; i < n; i++ {
		out[i] = r.buf[(r.head+i)%size]
	}
	return n
}
