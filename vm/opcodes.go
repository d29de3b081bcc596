package vm

// Instruction word layout: [opcode: 6 bits][addr_mode1: 5 bits][addr_mode2: 5 bits],
// MSB to LSB.
const (
	opcodeShift = 10
	opcodeMask  = 0x3F
	mode1Shift  = 5
	modeMask    = 0x1F
)

// Addressing modes. Codes 0x00-0x07 address the register file directly;
// 0x08-0x0D are memory/register-indirect and constant-register modes with
// no trailing immediate; 0x10-0x16 consume one immediate word from the PC
// stream.
const (
	modeA    = 0x00
	modeB    = 0x01
	modeC    = 0x02
	modeD    = 0x03
	modeX    = 0x04
	modeY    = 0x05
	modePC   = 0x06
	modeSP   = 0x07
	modeXIND = 0x08 // [X]
	modeYIND = 0x09 // [Y]
	modeXINC = 0x0A // [X], X++
	modeYINC = 0x0B // [Y], Y++
	modeREG0 = 0x0C // constant 0 (source only)
	modeREG1 = 0x0D // constant 1 (source only)

	modeCNST = 0x10 // immediate word at PC, PC++ (source only)
	modeABS  = 0x11 // mem[word at PC], PC++
	modeREL  = 0x12 // PC + offs after PC++ (source only; deprecated)
	modeSREL = 0x13 // mem[SP + offs]
	modeREL2 = 0x14 // PC + offs - 2 after PC++ (source only)
	modeXREL = 0x15 // mem[X + offs]
	modeYREL = 0x16 // mem[Y + offs]
)

// Opcodes (v2). An opcode not listed here is invalid and terminates the
// run with StatusError.
const (
	opNOP  = 0x00
	opBRK  = 0x01
	opSYS  = 0x02
	opJUMP = 0x04
	opCALL = 0x05
	opRETN = 0x06
	opHALT = 0x07

	opMOVE = 0x08
	opXCHG = 0x09
	opINC  = 0x0A
	opDEC  = 0x0B

	opADD = 0x0C
	opSUB = 0x0D
	opMUL = 0x0E
	opDIV = 0x0F

	opAND = 0x10
	opOR  = 0x11
	opXOR = 0x12
	opNOT = 0x13

	opBNZE = 0x14
	opBZE  = 0x15
	opBPOS = 0x16
	opBNEG = 0x17

	opIN   = 0x18
	opOUT  = 0x19
	opPUSH = 0x1A
	opPOP  = 0x1B

	opSWAP = 0x1C
	opDBNZ = 0x1D
	opMOD  = 0x1E

	opSHL  = 0x1F
	opSHR  = 0x20
	opADDC = 0x21
	opMULC = 0x22

	opSKNE = 0x23
	opSKEQ = 0x24
	opSKLT = 0x25
	opSKGT = 0x26
)

// Status is the reason a Run call returned control to the host.
type Status int

const (
	StatusOK    Status = 0 // cycle budget exhausted
	StatusNOP   Status = 1 // nop command
	StatusIN    Status = 2 // input command
	StatusOUT   Status = 3 // output command
	StatusSYS   Status = 4 // system call
	StatusHALT  Status = 5 // cpu halt
	StatusBreak Status = 6 // breakpoint reached
	StatusError Status = 7 // invalid opcode or invalid vm
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNOP:
		return "NOP"
	case StatusIN:
		return "IN"
	case StatusOUT:
		return "OUT"
	case StatusSYS:
		return "SYS"
	case StatusHALT:
		return "HALT"
	case StatusBreak:
		return "BREAK"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
