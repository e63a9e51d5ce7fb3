package bytecode

import (
	"github.com/deepnoodle-ai/lbc/errors"
)

// Accepted bytecode and type annotation format versions (inclusive).
const (
	VersionMin     = 1
	VersionMax     = 3
	TypeVersionMin = 1
	TypeVersionMax = 2
)

// Header holds the version fields at the start of a chunk.
type Header struct {
	Version      uint8
	TypesVersion uint8
	// Typed is true when the chunk carries type annotations, in which case
	// TypesVersion is meaningful.
	Typed bool
	// BigEndian is true when multi-byte values in the chunk body are stored
	// most significant byte first.
	BigEndian bool
}

// Check runs the version gate on the header.
func (h Header) Check() error {
	return CheckVersion(h.Version, h.TypesVersion, h.Typed)
}

// CheckVersion accepts a chunk iff its bytecode version lies in
// [VersionMin, VersionMax] and, when the chunk is typed, its type version lies
// in [TypeVersionMin, TypeVersionMax]. The type version is ignored for chunks
// without type information. A rejection is a version rejected error; it must
// be acted on before any constant or instruction is decoded.
func CheckVersion(version, typesVersion uint8, typed bool) error {
	if version < VersionMin || version > VersionMax {
		return errors.Newf(errors.E1001, "bytecode version %d outside [%d, %d]",
			version, VersionMin, VersionMax)
	}
	if typed && (typesVersion < TypeVersionMin || typesVersion > TypeVersionMax) {
		return errors.Newf(errors.E1001, "type version %d outside [%d, %d]",
			typesVersion, TypeVersionMin, TypeVersionMax)
	}
	return nil
}
