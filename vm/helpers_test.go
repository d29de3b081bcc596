package vm

import "testing"

// assert fails the test with a formatted message if cond is false.
func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

// asm packs an opcode and two addressing modes into one instruction word.
func asm(opcode, mode1, mode2 uint8) uint16 {
	return uint16(opcode&opcodeMask)<<opcodeShift | uint16(mode1&modeMask)<<mode1Shift | uint16(mode2&modeMask)
}
