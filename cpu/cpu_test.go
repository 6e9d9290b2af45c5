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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/m68kdbgcore/cpu"
	"github.com/jetsetilly/m68kdbgcore/test"
)

func TestMask24(t *testing.T) {
	test.ExpectEquality(t, cpu.Mask24(0xFF123456), uint32(0x123456))
	test.ExpectEquality(t, cpu.Mask24(0x00000000), uint32(0))
	test.ExpectEquality(t, cpu.Mask24(0x01000000), uint32(0))
}

func TestSizeValid(t *testing.T) {
	test.ExpectEquality(t, cpu.Size8.Valid(), true)
	test.ExpectEquality(t, cpu.Size16.Valid(), true)
	test.ExpectEquality(t, cpu.Size32.Valid(), true)
	test.ExpectEquality(t, cpu.Size(0).Valid(), false)
	test.ExpectEquality(t, cpu.Size(24).Valid(), false)
}

func TestSizeTruncate(t *testing.T) {
	test.ExpectEquality(t, cpu.Size8.Truncate(0x12345678), uint32(0x78))
	test.ExpectEquality(t, cpu.Size16.Truncate(0x12345678), uint32(0x5678))
	test.ExpectEquality(t, cpu.Size32.Truncate(0x12345678), uint32(0x12345678))
}

func TestSizeBytes(t *testing.T) {
	test.ExpectEquality(t, cpu.Size8.Bytes(), 1)
	test.ExpectEquality(t, cpu.Size16.Bytes(), 2)
	test.ExpectEquality(t, cpu.Size32.Bytes(), 4)
}

func TestNormalize(t *testing.T) {
	test.ExpectEquality(t, cpu.Normalize(100, 4), uint64(25))
	test.ExpectEquality(t, cpu.Normalize(103, 4), uint64(25))

	// a non-positive unit means the delta is already in cycles
	test.ExpectEquality(t, cpu.Normalize(103, 0), uint64(103))
	test.ExpectEquality(t, cpu.Normalize(103, -7), uint64(103))
}

func TestIsCallOpcode(t *testing.T) {
	// JSR family
	test.ExpectEquality(t, cpu.IsCallOpcode(0x4E80), true)
	test.ExpectEquality(t, cpu.IsCallOpcode(0x4E90), true) // JSR (A0)
	test.ExpectEquality(t, cpu.IsCallOpcode(0x4EBF), true)

	// BSR family
	test.ExpectEquality(t, cpu.IsCallOpcode(0x6100), true)
	test.ExpectEquality(t, cpu.IsCallOpcode(0x61FE), true)

	// neighbours of both ranges are not calls
	test.ExpectEquality(t, cpu.IsCallOpcode(0x4E7F), false)
	test.ExpectEquality(t, cpu.IsCallOpcode(0x4EC0), false) // JMP, not JSR
	test.ExpectEquality(t, cpu.IsCallOpcode(0x60FF), false) // BRA
	test.ExpectEquality(t, cpu.IsCallOpcode(0x6200), false) // BHI
}

func TestIsReturnOpcode(t *testing.T) {
	test.ExpectEquality(t, cpu.IsReturnOpcode(0x4E75), true) // RTS
	test.ExpectEquality(t, cpu.IsReturnOpcode(0x4E74), true) // RTD
	test.ExpectEquality(t, cpu.IsReturnOpcode(0x4E73), true) // RTE
	test.ExpectEquality(t, cpu.IsReturnOpcode(0x4E77), true) // RTR

	test.ExpectEquality(t, cpu.IsReturnOpcode(0x4E71), false) // NOP
	test.ExpectEquality(t, cpu.IsReturnOpcode(0x4E76), false) // TRAPV
}

func TestInstructionLength(t *testing.T) {
	// short branches carry the displacement in the opcode word
	test.ExpectEquality(t, cpu.InstructionLength(0x6004), 2) // BRA.S
	test.ExpectEquality(t, cpu.InstructionLength(0x6102), 2) // BSR.S

	// a zero displacement byte means a 16-bit displacement word follows
	test.ExpectEquality(t, cpu.InstructionLength(0x6000), 4) // BRA.W
	test.ExpectEquality(t, cpu.InstructionLength(0x6100), 4) // BSR.W

	// JSR lengths follow the effective-address extension table
	test.ExpectEquality(t, cpu.InstructionLength(0x4E90), 2) // JSR (A0)
	test.ExpectEquality(t, cpu.InstructionLength(0x4EA8), 4) // JSR d16(A0)
	test.ExpectEquality(t, cpu.InstructionLength(0x4EB9), 6) // JSR abs.L

	// returns
	test.ExpectEquality(t, cpu.InstructionLength(0x4E75), 2) // RTS
	test.ExpectEquality(t, cpu.InstructionLength(0x4E74), 4) // RTD #d16
}
