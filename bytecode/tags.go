package bytecode

import (
	"strconv"

	"github.com/deepnoodle-ai/lbc/errors"
)

// ConstantTag identifies the shape of one constant pool entry. The tag byte
// precedes the entry's payload on the wire.
type ConstantTag uint8

const (
	ConstantNil     ConstantTag = 0
	ConstantBoolean ConstantTag = 1
	ConstantNumber  ConstantTag = 2
	ConstantString  ConstantTag = 3
	ConstantImport  ConstantTag = 4
	ConstantTable   ConstantTag = 5
	ConstantClosure ConstantTag = 6
	ConstantVector  ConstantTag = 7
)

var constantTagNames = [...]string{
	ConstantNil:     "nil",
	ConstantBoolean: "boolean",
	ConstantNumber:  "number",
	ConstantString:  "string",
	ConstantImport:  "import",
	ConstantTable:   "table",
	ConstantClosure: "closure",
	ConstantVector:  "vector",
}

// Valid reports whether t is a defined constant tag.
func (t ConstantTag) Valid() bool {
	return t <= ConstantVector
}

// Byte returns the wire encoding of the tag.
func (t ConstantTag) Byte() byte {
	return byte(t)
}

func (t ConstantTag) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return constantTagNames[t]
}

// DecodeConstantTag validates a constant tag byte.
func DecodeConstantTag(b byte) (ConstantTag, error) {
	t := ConstantTag(b)
	if !t.Valid() {
		return 0, errors.Newf(errors.E1003, "constant tag %d is not defined", b)
	}
	return t, nil
}

// TypeTag identifies a value type in type annotations. Ids 0-9 are the core
// types; ids in [TypeTaggedUserdataBase, TypeTaggedUserdataEnd) are host
// defined userdata subtypes.
type TypeTag uint8

const (
	TypeNil      TypeTag = 0
	TypeBoolean  TypeTag = 1
	TypeNumber   TypeTag = 2
	TypeString   TypeTag = 3
	TypeTable    TypeTag = 4
	TypeFunction TypeTag = 5
	TypeUserdata TypeTag = 6
	TypeThread   TypeTag = 7
	TypeBuffer   TypeTag = 8
	TypeVector   TypeTag = 9

	TypeTaggedUserdataBase TypeTag = 128
	TypeTaggedUserdataEnd  TypeTag = 192
)

// MaxUserdataTag is the number of distinct tagged userdata subtypes.
const MaxUserdataTag = int(TypeTaggedUserdataEnd - TypeTaggedUserdataBase)

var typeTagNames = [...]string{
	TypeNil:      "nil",
	TypeBoolean:  "boolean",
	TypeNumber:   "number",
	TypeString:   "string",
	TypeTable:    "table",
	TypeFunction: "function",
	TypeUserdata: "userdata",
	TypeThread:   "thread",
	TypeBuffer:   "buffer",
	TypeVector:   "vector",
}

// Valid reports whether t is a core type or lies in the tagged userdata band.
func (t TypeTag) Valid() bool {
	return t <= TypeVector || t.IsTaggedUserdata()
}

// IsTaggedUserdata reports whether t lies in the tagged userdata band.
func (t TypeTag) IsTaggedUserdata() bool {
	return t >= TypeTaggedUserdataBase && t < TypeTaggedUserdataEnd
}

// UserdataTag returns the host defined subtype index of a tagged userdata
// type. The second result is false if t is not a tagged userdata type.
func (t TypeTag) UserdataTag() (int, bool) {
	if !t.IsTaggedUserdata() {
		return 0, false
	}
	return int(t - TypeTaggedUserdataBase), true
}

// Byte returns the wire encoding of the tag.
func (t TypeTag) Byte() byte {
	return byte(t)
}

func (t TypeTag) String() string {
	if t <= TypeVector {
		return typeTagNames[t]
	}
	if n, ok := t.UserdataTag(); ok {
		return "userdata#" + strconv.Itoa(n)
	}
	return "invalid"
}

// TaggedUserdata returns the type tag for host defined userdata subtype n.
// It fails with a malformed tag error if n is outside [0, MaxUserdataTag).
func TaggedUserdata(n int) (TypeTag, error) {
	if n < 0 || n >= MaxUserdataTag {
		return 0, errors.Newf(errors.E1003, "userdata tag %d outside [0, %d)", n, MaxUserdataTag)
	}
	return TypeTaggedUserdataBase + TypeTag(n), nil
}

// DecodeTypeTag validates a type tag byte.
func DecodeTypeTag(b byte) (TypeTag, error) {
	t := TypeTag(b)
	if !t.Valid() {
		return 0, errors.Newf(errors.E1003, "type tag %d is not defined", b)
	}
	return t, nil
}

// Import ids pack a path of up to three name indices into a single 32-bit
// value: the path length in the top 2 bits followed by three 10-bit indices.
const (
	MaxImportPath  = 3
	MaxImportIndex = 1<<10 - 1
)

// EncodeImport packs a path of constant indices into an import id.
func EncodeImport(path ...uint32) (uint32, error) {
	if len(path) == 0 || len(path) > MaxImportPath {
		return 0, errors.Newf(errors.E2001, "import path length %d outside [1, %d]", len(path), MaxImportPath)
	}
	id := uint32(len(path)) << 30
	for i, idx := range path {
		if idx > MaxImportIndex {
			return 0, errors.Newf(errors.E2001, "import index %d exceeds maximum %d", idx, MaxImportIndex)
		}
		id |= idx << (20 - 10*uint(i))
	}
	return id, nil
}

// DecodeImport unpacks an import id into its path of constant indices.
func DecodeImport(id uint32) ([]uint32, error) {
	count := int(id >> 30)
	if count == 0 {
		return nil, errors.Newf(errors.E1006, "import id %#x has an empty path", id)
	}
	for i := count; i < MaxImportPath; i++ {
		if id&(MaxImportIndex<<(20-10*uint(i))) != 0 {
			return nil, errors.Newf(errors.E1006, "import id %#x has bits set past its %d-element path", id, count)
		}
	}
	path := make([]uint32, count)
	for i := range path {
		path[i] = (id >> (20 - 10*uint(i))) & MaxImportIndex
	}
	return path, nil
}
