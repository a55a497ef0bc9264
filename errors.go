package tsig

import "fmt"

// MalformedInputError reports that a message or structure supplied to the
// protocol could not be parsed or does not have the shape the protocol
// requires, as distinct from a ProtocolViolationError raised by a
// well-formed but dishonest participant.
type MalformedInputError struct {
	Field string
	Err   error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tsig: malformed input in field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("tsig: malformed input in field %q", e.Field)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// ProtocolViolationError reports that signer SignerID supplied a
// well-formed message that nonetheless fails a protocol check: a
// commitment that doesn't match its opening, a NIZK proof that fails to
// verify, or a missing required contribution.
type ProtocolViolationError struct {
	SignerID uint64
	Reason   string
}

func (e *ProtocolViolationError) Error() string {
	return fmt.Sprintf("tsig: protocol violation by signer %d: %s", e.SignerID, e.Reason)
}
