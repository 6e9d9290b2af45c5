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

package cpu

// eaExtensionWords reports how many 16-bit extension words follow the
// opcode word for a given effective-address mode/register pair, so
// that InstructionLength can compute next_instruction_offset without
// fully decoding the instruction. This mirrors the addressing-mode
// table of a standard MC68000 EA resolver: register-direct modes need
// no extension, memory modes need zero, one or two words depending on
// the indexing form.
func eaExtensionWords(mode, reg uint8) int {
	switch mode {
	case 0, 1: // Dn, An: register direct, no extension
		return 0
	case 2, 3, 4: // (An), (An)+, -(An)
		return 0
	case 5: // d16(An)
		return 1
	case 6: // d8(An,Xn)
		return 1
	case 7:
		switch reg {
		case 0: // abs.W
			return 1
		case 1: // abs.L
			return 2
		case 2: // d16(PC)
			return 1
		case 3: // d8(PC,Xn)
			return 1
		case 4: // immediate (word or long, width-dependent; long assumed)
			return 2
		}
	}
	return 0
}

// InstructionLength returns a best-effort byte length for opcode, used
// by the quick disassembler to compute the next instruction's offset
// without a full decode. It looks only at the
// low six bits as an EA mode/register field, which is where the
// majority of single-operand and most two-operand MC68000 instructions
// carry their effective address; opcodes that don't follow that layout
// (branches, immediate-to-SR forms, bit manipulation with a separate
// extension word) still get a plausible answer because those forms
// either encode no EA at all (mode/reg read as register-direct, zero
// extension words) or the quick decoder's job is only to keep the
// host's listing roughly in step, not to execute anything.
func InstructionLength(opcode uint16) int {
	mode := uint8((opcode >> 3) & 0x7)
	reg := uint8(opcode & 0x7)

	length := 2 // the opcode word itself
	length += eaExtensionWords(mode, reg) * 2

	switch {
	case opcode >= bsrLow && opcode <= bsrHigh:
		// BSR: displacement byte in the opcode, or one extension word
		// when that byte is zero.
		if opcode&0xFF == 0 {
			return 4
		}
		return 2
	case opcode&0xF000 == 0x6000:
		// Bcc/BRA: same shape as BSR.
		if opcode&0xFF == 0 {
			return 4
		}
		return 2
	case opcode >= jsrLow && opcode <= jsrHigh:
		return length
	case opcode == opRTS, opcode == opRTR, opcode == opRTE:
		return 2
	case opcode == opRTD:
		return 4 // RTD carries a 16-bit displacement extension word
	}

	return length
}
