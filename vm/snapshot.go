package vm

import (
	"encoding/binary"
	"fmt"
)

// headerWords is the number of 16-bit words in the fixed header that
// precedes the memory image in both the binary and hex-text snapshot
// forms: ident(2 words)+version+A,B,C,D,X,Y+PC,SP,BP,TOS+LAddr,LData+
// memSize+memMask.
const headerWords = 2 + 1 + 6 + 4 + 2 + 1 + 1

// snapshotSize returns the byte length of the binary/hex-decoded form for
// this VM's memory size.
func (vm *VM) snapshotSize() int {
	return (headerWords+len(vm.memory))*2
}

// MarshalBinary implements encoding.BinaryMarshaler. The encoding is
// specific to this implementation and this build: field order, byte
// order, and header layout are not a portable contract across VM16
// implementations. Use Snapshot/Restore for a persisted, portable form.
func (vm *VM) MarshalBinary() ([]byte, error) {
	if !vm.valid() {
		return nil, errInvalidVM
	}
	buf := make([]byte, vm.snapshotSize())
	vm.encodeHeader(buf)
	off := headerWords * 2
	for i, v := range vm.memory {
		binary.BigEndian.PutUint16(buf[off+i*2:], v)
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The receiver
// must already be constructed (via New); ident, version, memSize, and
// memMask are re-asserted from the live receiver rather than trusted from
// data, matching the hex-text Restore contract (invariant I4).
func (vm *VM) UnmarshalBinary(data []byte) error {
	if !vm.valid() {
		return errInvalidVM
	}
	if len(data) != vm.snapshotSize() {
		return fmt.Errorf("vm16: %w: got %d bytes, want %d", errBufferSize, len(data), vm.snapshotSize())
	}
	vm.decodeHeader(data)
	off := headerWords * 2
	for i := range vm.memory {
		vm.memory[i] = binary.BigEndian.Uint16(data[off+i*2:])
	}
	vm.reassertHeader()
	return nil
}

func (vm *VM) encodeHeader(buf []byte) {
	binary.BigEndian.PutUint32(buf[0:], vm.ident)
	binary.BigEndian.PutUint16(buf[4:], vm.version)
	binary.BigEndian.PutUint16(buf[6:], vm.A)
	binary.BigEndian.PutUint16(buf[8:], vm.B)
	binary.BigEndian.PutUint16(buf[10:], vm.C)
	binary.BigEndian.PutUint16(buf[12:], vm.D)
	binary.BigEndian.PutUint16(buf[14:], vm.X)
	binary.BigEndian.PutUint16(buf[16:], vm.Y)
	binary.BigEndian.PutUint16(buf[18:], vm.PC)
	binary.BigEndian.PutUint16(buf[20:], vm.SP)
	binary.BigEndian.PutUint16(buf[22:], vm.BP)
	binary.BigEndian.PutUint16(buf[24:], vm.TOS)
	binary.BigEndian.PutUint16(buf[26:], vm.LAddr)
	binary.BigEndian.PutUint16(buf[28:], vm.LData)
	binary.BigEndian.PutUint16(buf[30:], vm.memSize)
	binary.BigEndian.PutUint16(buf[32:], vm.memMask)
}

// decodeHeader loads the register fields from buf. It deliberately does
// not touch memSize/memMask: those are never trusted from a snapshot
// buffer (invariant I4), so they keep the live receiver's values,
// matching the reference vm16_set_vm_as_str, which
// captures its own mem_size into a local before the decode loop ever
// looks at the buffer.
func (vm *VM) decodeHeader(buf []byte) {
	vm.ident = binary.BigEndian.Uint32(buf[0:])
	vm.version = binary.BigEndian.Uint16(buf[4:])
	vm.A = binary.BigEndian.Uint16(buf[6:])
	vm.B = binary.BigEndian.Uint16(buf[8:])
	vm.C = binary.BigEndian.Uint16(buf[10:])
	vm.D = binary.BigEndian.Uint16(buf[12:])
	vm.X = binary.BigEndian.Uint16(buf[14:])
	vm.Y = binary.BigEndian.Uint16(buf[16:])
	vm.PC = binary.BigEndian.Uint16(buf[18:])
	vm.SP = binary.BigEndian.Uint16(buf[20:])
	vm.BP = binary.BigEndian.Uint16(buf[22:])
	vm.TOS = binary.BigEndian.Uint16(buf[24:])
	vm.LAddr = binary.BigEndian.Uint16(buf[26:])
	vm.LData = binary.BigEndian.Uint16(buf[28:])
}

// reassertHeader restores the fields that must never be taken on faith
// from a snapshot buffer: ident and version are reset to this build's
// constants, memSize/memMask are left untouched (decodeHeader never
// wrote them, so they still hold the live receiver's values), and
// pInDest is reset to &A, matching the reference vm16_set_vm_as_str
// behavior.
func (vm *VM) reassertHeader() {
	vm.ident = ident
	vm.version = version
	vm.pInDest = &vm.A
}

// Snapshot returns this VM's full state (registers and memory) encoded as
// a portable hex-text string: two ASCII hex digits per byte, most
// significant nibble first. This is the only form intended to move
// between machines or implementations; the binary form is for fast local
// persistence only.
func (vm *VM) Snapshot() string {
	data, err := vm.MarshalBinary()
	if err != nil {
		return ""
	}
	out := make([]byte, len(data)*2)
	for i, b := range data {
		out[i*2] = hexDigits[b>>4]
		out[i*2+1] = hexDigits[b&0x0F]
	}
	return string(out)
}

// Restore decodes a hex-text snapshot produced by Snapshot and applies it
// to vm, re-asserting the header fields that must never be trusted from
// the buffer (invariant I4). Reports whether decoding succeeded; on
// failure vm is left unmodified.
func (vm *VM) Restore(s string) bool {
	if !vm.valid() {
		return false
	}
	if len(s) != vm.snapshotSize()*2 {
		return false
	}
	data := make([]byte, len(s)/2)
	for i := range data {
		hi, err := hexNibble(s[i*2])
		if err != nil {
			return false
		}
		lo, err := hexNibble(s[i*2+1])
		if err != nil {
			return false
		}
		data[i] = byte(hi<<4 | lo)
	}
	return vm.UnmarshalBinary(data) == nil
}
