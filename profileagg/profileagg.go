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

// Package profileagg is the host-side counterpart to the debug core's
// streaming profiler. The core only ever reports the totals it has
// seen since the process started; it is this package's job to turn a
// sequence of those totals, delivered as they arrive over however many
// stream_next calls it takes, into accumulated deltas a host-side UI
// can chart over time without re-reading the entire history on every
// packet.
package profileagg

import "encoding/json"

// entry mirrors one element of the debug core's profiler stream wire
// format; see debugger.StreamNext.
type entry struct {
	PC      string `json:"pc"`
	Samples uint64 `json:"samples"`
	Cycles  uint64 `json:"cycles"`
}

type frame struct {
	Stream  string  `json:"stream"`
	Enabled string  `json:"enabled"`
	Hits    []entry `json:"hits"`
}

// counters is what the aggregator remembers per PC: the running total
// it has accumulated so far, and the last raw value it saw reported for
// each metric (needed to compute the next delta).
type counters struct {
	samplesSeen uint64
	cyclesSeen  uint64
	lastSamples uint64
	lastCycles  uint64
}

// Aggregator accumulates per-PC sample and cycle totals across
// successive profiler stream frames. It is not safe for concurrent use.
type Aggregator struct {
	table map[uint32]*counters
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{table: make(map[uint32]*counters)}
}

// delta computes new-last, or new itself when new < last: the
// device-reported counters are monotone for the lifetime of one
// profiler session, but a shrink (the
// profiler was stopped and restarted, or the process relaunched) is
// treated as a reset, and the new value is taken as the delta in full
// rather than producing a negative contribution.
func delta(newValue, last uint64) uint64 {
	if newValue < last {
		return newValue
	}
	return newValue - last
}

// Ingest parses one profiler stream frame (the bytes written by a
// single debugger.StreamNext call) and folds its entries into the
// running totals. An empty frame (zero bytes, the core's convention for
// "nothing new") is accepted as a no-op.
func (a *Aggregator) Ingest(frameBytes []byte) error {
	if len(frameBytes) == 0 {
		return nil
	}

	var f frame
	if err := json.Unmarshal(frameBytes, &f); err != nil {
		return err
	}

	for _, hit := range f.Hits {
		pc, err := parsePC(hit.PC)
		if err != nil {
			return err
		}

		c, ok := a.table[pc]
		if !ok {
			c = &counters{}
			a.table[pc] = c
		}

		c.samplesSeen += delta(hit.Samples, c.lastSamples)
		c.cyclesSeen += delta(hit.Cycles, c.lastCycles)
		c.lastSamples = hit.Samples
		c.lastCycles = hit.Cycles
	}

	return nil
}

// Totals returns the accumulated samples and cycles for pc. ok is false
// if pc has never appeared in an ingested frame.
func (a *Aggregator) Totals(pc uint32) (samples, cycles uint64, ok bool) {
	c, found := a.table[pc]
	if !found {
		return 0, 0, false
	}
	return c.samplesSeen, c.cyclesSeen, true
}

// Len returns the number of distinct PCs the aggregator has seen.
func (a *Aggregator) Len() int {
	return len(a.table)
}

// Reset discards all accumulated state, as if New() had just been
// called.
func (a *Aggregator) Reset() {
	a.table = make(map[uint32]*counters)
}
