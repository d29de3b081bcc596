package vm

import "testing"

func TestRunMoveConstAndHalt(t *testing.T) {
	m := New(0)
	// MOVE A, #0x1111 ; HALT
	m.WriteMem(0, []uint16{
		asm(opMOVE, modeA, modeCNST), 0x1111,
		asm(opHALT, 0, 0),
	})
	status, executed := m.Run(100)
	assert(t, status == StatusHALT, "expected StatusHALT, got %v", status)
	assert(t, executed == 2, "expected 2 instructions executed, got %d", executed)
	assert(t, m.A == 0x1111, "expected A == 0x1111, got %#x", m.A)
	assert(t, m.GetPC() == 2, "HALT should rewind PC back onto itself, got %d", m.GetPC())
}

func TestRunStopsAtCycleBudget(t *testing.T) {
	m := New(0)
	// an infinite loop: JUMP to address 0
	m.WriteMem(0, []uint16{asm(opJUMP, modeCNST, 0), 0x0000})
	status, executed := m.Run(5)
	assert(t, status == StatusOK, "expected StatusOK on budget exhaustion, got %v", status)
	assert(t, executed == 5, "expected exactly 5 executed, got %d", executed)
}

func TestInvalidOpcodeReportsAccurateExecuted(t *testing.T) {
	m := New(0)
	// Opcode 0x03 is unassigned (a reserved gap in the v2 opcode space).
	m.WriteMem(0, []uint16{uint16(0x03) << opcodeShift})
	status, executed := m.Run(10)
	assert(t, status == StatusError, "expected StatusError for an unassigned opcode, got %v", status)
	assert(t, executed == 1, "expected the faulting instruction to count toward executed, got %d", executed)
	assert(t, m.GetPC() == 0, "ERROR should rewind PC back onto the faulting instruction")
}

func TestDivByZeroIsSilentNoOp(t *testing.T) {
	m := New(0)
	m.A = 7
	m.WriteMem(0, []uint16{
		asm(opDIV, modeA, modeREG0), // REG0 == constant 0
	})
	status, executed := m.Run(1)
	assert(t, status == StatusOK, "expected StatusOK, got %v", status)
	assert(t, executed == 1, "expected 1 executed")
	assert(t, m.A == 7, "DIV by zero should leave the destination unchanged")
}

func TestAddcCarriesIntoB(t *testing.T) {
	m := New(0)
	m.A = 0xFFFF
	m.WriteMem(0, []uint16{
		asm(opADDC, modeA, modeREG1), // REG1 == constant 1
	})
	m.Run(1)
	assert(t, m.A == 0, "A should wrap to 0")
	assert(t, m.B == 1, "ADDC should place the carry into B")
}

func TestAddcOverwritesBEvenWithoutCarry(t *testing.T) {
	m := New(0)
	m.A = 1
	m.B = 0xBEEF
	m.WriteMem(0, []uint16{
		asm(opADDC, modeA, modeREG1),
	})
	m.Run(1)
	assert(t, m.B == 0, "ADDC should overwrite B with the high word even when there is no carry")
}

func TestSkeqSkipsNextTwoWordInstructionWhenEqual(t *testing.T) {
	// SKEQ skips forward by exactly 2 words, the width of the single
	// 2-word instruction (opcode + one CNST immediate) it is meant to be
	// paired with — not a generic "skip the next instruction" that would
	// need to know the skipped instruction's actual width.
	m := New(0)
	m.A = 5
	m.B = 5
	m.WriteMem(0, []uint16{
		asm(opSKEQ, modeA, modeB),
		asm(opJUMP, modeCNST, 0), 0xFFFF, // skipped
		asm(opMOVE, modeD, modeREG1), // executed
	})
	m.Run(2)
	assert(t, m.D == 1, "execution should resume right after the skipped 2-word instruction")
}

func TestCallRetnRoundTrip(t *testing.T) {
	m := New(0)
	m.WriteMem(0, []uint16{
		asm(opCALL, modeCNST, 0), 10,
		asm(opHALT, 0, 0),
	})
	m.WriteMem(10, []uint16{
		asm(opMOVE, modeA, modeREG1),
		asm(opRETN, 0, 0),
	})
	status, _ := m.Run(10)
	assert(t, status == StatusHALT, "expected StatusHALT after returning from the call, got %v", status)
	assert(t, m.A == 1, "the called routine should have run")
	assert(t, m.GetPC() == 2, "RETN should resume right after the CALL instruction")
}

func TestBreakRewindsPCAndResetsInputDest(t *testing.T) {
	m := New(0)
	m.pInDest = &m.B
	m.WriteMem(0, []uint16{asm(opBRK, 0, 0)})
	status, executed := m.Run(10)
	assert(t, status == StatusBreak, "expected StatusBreak, got %v", status)
	assert(t, executed == 1, "expected 1 executed")
	assert(t, m.GetPC() == 0, "BRK should rewind PC back onto itself")
	assert(t, m.pInDest == &m.A, "BRK should reset pInDest to A")
}

func TestSysDoesNotRewindPC(t *testing.T) {
	m := New(0)
	m.pInDest = &m.B
	m.WriteMem(0, []uint16{asm(opSYS, 0, 0)})
	status, _ := m.Run(10)
	assert(t, status == StatusSYS, "expected StatusSYS, got %v", status)
	assert(t, m.GetPC() == 1, "SYS should not rewind PC")
	assert(t, m.pInDest == &m.A, "SYS should reset pInDest to A")
}

func TestInEventLatchesDestination(t *testing.T) {
	m := New(0)
	m.WriteMem(0, []uint16{asm(opIN, modeC, modeREG0)})
	status, _ := m.Run(1)
	assert(t, status == StatusIN, "expected StatusIN, got %v", status)
	m.SetInput(0x7777)
	assert(t, m.C == 0x7777, "SetInput after IN should write through to the latched destination")
}
