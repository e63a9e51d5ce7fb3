package bytecode

import (
	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/deepnoodle-ai/lbc/op"
)

// CaptureKind describes how a closure captures one variable of an enclosing
// function. It is carried in the A field of a CAPTURE instruction.
type CaptureKind uint8

const (
	// CaptureValue snapshots the variable when the closure is created. Later
	// writes by the enclosing function are not visible to the closure.
	CaptureValue CaptureKind = 0
	// CaptureReference aliases the enclosing function's register. Writes on
	// either side are visible to the other.
	CaptureReference CaptureKind = 1
	// CaptureUpvalue reuses an upvalue the enclosing closure already holds,
	// so the storage is resolved through that closure's own captures.
	CaptureUpvalue CaptureKind = 2
)

// ValidateCaptureKind reports whether k is one of the defined kinds.
func ValidateCaptureKind(k CaptureKind) bool {
	return k <= CaptureUpvalue
}

// DecodeCaptureKind validates a capture kind byte.
func DecodeCaptureKind(b byte) (CaptureKind, error) {
	k := CaptureKind(b)
	if !ValidateCaptureKind(k) {
		return 0, errors.Newf(errors.E1004, "capture kind %d is not defined", b)
	}
	return k, nil
}

func (k CaptureKind) String() string {
	switch k {
	case CaptureValue:
		return "VAL"
	case CaptureReference:
		return "REF"
	case CaptureUpvalue:
		return "UPVAL"
	default:
		return "invalid"
	}
}

// Capture is one entry of a closure's capture list.
type Capture struct {
	Kind CaptureKind
	// Index is a register of the enclosing function for CaptureValue and
	// CaptureReference, and an upvalue index of the enclosing closure for
	// CaptureUpvalue.
	Index uint8
}

// DecodeCapture decodes a CAPTURE instruction into a capture record.
func DecodeCapture(word Instruction) (Capture, error) {
	if word.Op() != op.Capture {
		return Capture{}, errors.Newf(errors.E1006, "expected CAPTURE, got opcode %d", word.Op())
	}
	kind, err := DecodeCaptureKind(word.A())
	if err != nil {
		return Capture{}, err
	}
	return Capture{Kind: kind, Index: word.B()}, nil
}

// EncodeCapture packs a capture record into a CAPTURE instruction.
func EncodeCapture(c Capture) (Instruction, error) {
	if !ValidateCaptureKind(c.Kind) {
		return 0, errors.Newf(errors.E1004, "capture kind %d is not defined", c.Kind)
	}
	return EncodeABC(op.Capture, uint8(c.Kind), c.Index, 0)
}

// createsClosure reports whether the opcode is followed by a capture list.
func createsClosure(c op.Code) bool {
	return c == op.NewClosure || c == op.DupClosure
}
