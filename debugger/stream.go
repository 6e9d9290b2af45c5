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

// StreamNext emits the profiler's dirty entries as a single ASCII JSON
// frame, draining as many as fit in the caller's buffer. The wire
// format is deliberately not encoding/json: the field order, the
// quoted hex PC, and the lack of whitespace between array entries are
// part of the contract, not an accident of a struct's field order.

package debugger

import (
	"fmt"
	"strings"
)

const streamPrefixEnabled = `{"stream":"profiler","enabled":"enabled","hits":[`
const streamPrefixDisabled = `{"stream":"profiler","enabled":"disabled","hits":[`
const streamSuffix = `]}`

func formatHit(pc uint32, samples, cycles uint64) string {
	return fmt.Sprintf(`{"pc":"0x%06x","samples":%d,"cycles":%d}`, pc, samples, cycles)
}

// StreamNext writes up to len(buf) bytes of the next profiler delta
// frame into buf and returns the byte count written. Entries that
// don't fit this call remain dirty for the next call. An entry whose
// samples and cycles are both zero is dropped from the stream but
// still cleared, since it carries nothing the host needs to see.
func (p *profiler) StreamNext(buf []byte) int {
	prefix := streamPrefixDisabled
	if p.enabled {
		prefix = streamPrefixEnabled
	}

	var hits strings.Builder
	written := 0

	remaining := p.dirty[:0]
	deferred := make([]int, 0, len(p.dirty))

	for _, idx := range p.dirty {
		s := &p.slots[idx]

		if s.samples == 0 && s.cycles == 0 {
			s.entryEpoch = 0
			continue
		}

		entry := formatHit(s.pc, s.samples, s.cycles)
		sep := ""
		if written > 0 {
			sep = ","
		}

		candidate := len(prefix) + hits.Len() + len(sep) + len(entry) + len(streamSuffix)
		if candidate > len(buf) {
			deferred = append(deferred, idx)
			continue
		}

		hits.WriteString(sep)
		hits.WriteString(entry)
		written++
		s.entryEpoch = 0
	}

	p.dirty = append(remaining, deferred...)

	if written == 0 {
		return 0
	}

	frame := prefix + hits.String() + streamSuffix

	if len(p.dirty) == 0 {
		p.epoch++
		if p.epoch == 0 {
			for i := range p.slots {
				p.slots[i].entryEpoch = 0
			}
			p.epoch = 1
		}
	}

	return copy(buf, frame)
}
