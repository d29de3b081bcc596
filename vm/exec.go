package vm

// Run executes instructions until either cycles have been executed, an
// event the host must service occurs, or an invalid opcode is
// encountered. It returns the reason execution stopped and the number of
// instructions actually executed, which is always accurate even on the
// StatusError path (P8) — a deliberate departure from the reference
// dispatcher, whose default case returns early without recording the
// instruction that triggered it.
//
// Run on an invalid VM returns (StatusError, 0) without touching any
// state.
func (vm *VM) Run(cycles uint32) (Status, uint32) {
	if !vm.valid() {
		return StatusError, 0
	}

	var executed uint32
	for executed < cycles {
		status, stop := vm.step()
		executed++
		if stop {
			return status, executed
		}
	}
	return StatusOK, executed
}

// step executes exactly one instruction and reports whether the run loop
// must return control to the host, along with the status to report.
func (vm *VM) step() (Status, bool) {
	instr := vm.memory[vm.mask(vm.PC)]
	vm.PC++

	opcode := uint8((instr >> opcodeShift) & opcodeMask)
	mode1 := uint8((instr >> mode1Shift) & modeMask)
	mode2 := uint8(instr & modeMask)

	switch opcode {
	case opNOP:
		vm.pInDest = &vm.A
		return StatusNOP, true

	case opBRK:
		vm.pInDest = &vm.A
		vm.LAddr = instr & 0x03FF
		vm.PC--
		return StatusBreak, true

	case opSYS:
		vm.pInDest = &vm.A
		vm.LAddr = instr & 0x03FF
		return StatusSYS, true

	case opJUMP:
		addr := vm.getOperand(mode1)
		vm.PC = addr
		return StatusOK, false

	case opCALL:
		addr := vm.getOperand(mode1)
		vm.SP--
		vm.memory[vm.mask(vm.SP)] = vm.PC
		vm.PC = addr
		vm.BP = vm.SP
		if vm.TOS > vm.SP {
			vm.TOS = vm.SP
		}
		return StatusOK, false

	case opRETN:
		vm.PC = vm.memory[vm.mask(vm.SP)]
		vm.SP++
		vm.BP = vm.SP
		return StatusOK, false

	case opHALT:
		vm.PC--
		return StatusHALT, true

	case opMOVE:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		*dst = src

	case opXCHG:
		dst := vm.getAddr(mode1)
		src := vm.getAddr(mode2)
		*dst, *src = *src, *dst

	case opINC:
		dst := vm.getAddr(mode1)
		*dst++

	case opDEC:
		dst := vm.getAddr(mode1)
		*dst--

	case opADD:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		*dst += src

	case opSUB:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		*dst -= src

	case opMUL:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		*dst *= src

	case opDIV:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		if src != 0 {
			*dst /= src
		}

	case opAND:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		*dst &= src

	case opOR:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		*dst |= src

	case opXOR:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		*dst ^= src

	case opNOT:
		dst := vm.getAddr(mode1)
		*dst = ^*dst

	case opBNZE:
		val := vm.getOperand(mode1)
		addr := vm.getOperand(mode2)
		if val != 0 {
			vm.PC = addr
		}

	case opBZE:
		val := vm.getOperand(mode1)
		addr := vm.getOperand(mode2)
		if val == 0 {
			vm.PC = addr
		}

	case opBPOS:
		val := vm.getOperand(mode1)
		addr := vm.getOperand(mode2)
		if int16(val) >= 0 {
			vm.PC = addr
		}

	case opBNEG:
		val := vm.getOperand(mode1)
		addr := vm.getOperand(mode2)
		if int16(val) < 0 {
			vm.PC = addr
		}

	case opIN:
		vm.pInDest = vm.getAddr(mode1)
		vm.LAddr = vm.getOperand(mode2)
		return StatusIN, true

	case opOUT:
		vm.LAddr = vm.getOperand(mode1)
		vm.LData = vm.getOperand(mode2)
		return StatusOUT, true

	case opPUSH:
		val := vm.getOperand(mode1)
		vm.SP--
		if vm.TOS > vm.SP {
			vm.TOS = vm.SP
		}
		vm.memory[vm.mask(vm.SP)] = val

	case opPOP:
		dst := vm.getAddr(mode1)
		*dst = vm.memory[vm.mask(vm.SP)]
		vm.SP++

	case opSWAP:
		dst := vm.getAddr(mode1)
		*dst = (*dst >> 8) | (*dst << 8)

	case opDBNZ:
		dst := vm.getAddr(mode1)
		addr := vm.getOperand(mode2)
		*dst--
		if *dst != 0 {
			vm.PC = addr
		}

	case opMOD:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		if src != 0 {
			*dst %= src
		}

	case opSHL:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		*dst <<= src

	case opSHR:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		*dst >>= src

	case opADDC:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		result := uint32(*dst) + uint32(src)
		*dst = uint16(result)
		vm.B = uint16(result >> 16)

	case opMULC:
		dst := vm.getAddr(mode1)
		src := vm.getOperand(mode2)
		result := uint32(*dst) * uint32(src)
		*dst = uint16(result)
		vm.B = uint16(result >> 16)

	case opSKNE:
		val1 := vm.getOperand(mode1)
		val2 := vm.getOperand(mode2)
		if val1 != val2 {
			vm.PC += 2
		}

	case opSKEQ:
		val1 := vm.getOperand(mode1)
		val2 := vm.getOperand(mode2)
		if val1 == val2 {
			vm.PC += 2
		}

	case opSKLT:
		val1 := vm.getOperand(mode1)
		val2 := vm.getOperand(mode2)
		if val1 < val2 {
			vm.PC += 2
		}

	case opSKGT:
		val1 := vm.getOperand(mode1)
		val2 := vm.getOperand(mode2)
		if val1 > val2 {
			vm.PC += 2
		}

	default:
		vm.PC--
		return StatusError, true
	}

	return StatusOK, false
}
