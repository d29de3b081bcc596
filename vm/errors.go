package vm

import "errors"

// Sentinel errors returned by the host-facing operation surface. The core
// never panics or aborts the process on a bad argument or a malformed
// snapshot/H16 buffer; every failure is reported through a return value,
// per the error handling design.
var (
	// errInvalidVM is returned when an operation is attempted on a nil or
	// zero-value *VM. A *VM obtained from New is always valid thereafter;
	// this only fires for a nil receiver or a VM that failed construction.
	errInvalidVM = errors.New("vm16: invalid vm")

	// errBufferSize is returned by the snapshot codec when the supplied
	// buffer does not match the exact size required for this VM's memory
	// window, and by WriteMemString when its string is not a positive
	// multiple of 4 characters or holds more words than the window.
	errBufferSize = errors.New("vm16: buffer size mismatch")

	// errMalformedH16 is returned by WriteH16 when a line does not match
	// the ":N AAAA TT ..." record grammar.
	errMalformedH16 = errors.New("vm16: malformed h16 record")
)
