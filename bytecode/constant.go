package bytecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Constant is one entry of a chunk's constant pool. The tag selects which
// payload accessor is meaningful. Constants are immutable values.
type Constant struct {
	tag     ConstantTag
	boolean bool
	number  float64
	str     string
	index   uint32 // import id or closure prototype index
	keys    []uint32
	vector  [4]float32
}

// NilConstant returns the nil constant.
func NilConstant() Constant {
	return Constant{tag: ConstantNil}
}

// BoolConstant returns a boolean constant.
func BoolConstant(v bool) Constant {
	return Constant{tag: ConstantBoolean, boolean: v}
}

// NumberConstant returns a number constant.
func NumberConstant(v float64) Constant {
	return Constant{tag: ConstantNumber, number: v}
}

// StringConstant returns a string constant.
func StringConstant(v string) Constant {
	return Constant{tag: ConstantString, str: v}
}

// ImportConstant returns an import constant holding a packed import id.
// See EncodeImport.
func ImportConstant(id uint32) Constant {
	return Constant{tag: ConstantImport, index: id}
}

// TableConstant returns a table shape constant. Each key is the index of a
// constant holding the key.
func TableConstant(keys ...uint32) Constant {
	return Constant{tag: ConstantTable, keys: copyUints(keys)}
}

// ClosureConstant returns a closure constant referring to a function
// prototype by index.
func ClosureConstant(proto uint32) Constant {
	return Constant{tag: ConstantClosure, index: proto}
}

// VectorConstant returns a vector constant.
func VectorConstant(x, y, z, w float32) Constant {
	return Constant{tag: ConstantVector, vector: [4]float32{x, y, z, w}}
}

// Tag returns the constant's tag.
func (c Constant) Tag() ConstantTag { return c.tag }

// Bool returns the value of a boolean constant.
func (c Constant) Bool() bool { return c.boolean }

// Number returns the value of a number constant.
func (c Constant) Number() float64 { return c.number }

// Str returns the value of a string constant.
func (c Constant) Str() string { return c.str }

// ImportID returns the packed id of an import constant.
func (c Constant) ImportID() uint32 { return c.index }

// ClosureIndex returns the prototype index of a closure constant.
func (c Constant) ClosureIndex() uint32 { return c.index }

// Vector returns the components of a vector constant.
func (c Constant) Vector() [4]float32 { return c.vector }

// KeyCount returns the number of keys of a table constant.
func (c Constant) KeyCount() int { return len(c.keys) }

// KeyAt returns the constant index of the key at position i of a table
// constant.
func (c Constant) KeyAt(i int) uint32 { return c.keys[i] }

// Equal reports whether two constants have the same tag and payload.
func (c Constant) Equal(other Constant) bool {
	if c.tag != other.tag {
		return false
	}
	switch c.tag {
	case ConstantNil:
		return true
	case ConstantBoolean:
		return c.boolean == other.boolean
	case ConstantNumber:
		// Bitwise so that -0 and +0 stay distinct and equal NaNs merge.
		return math.Float64bits(c.number) == math.Float64bits(other.number)
	case ConstantString:
		return c.str == other.str
	case ConstantImport, ConstantClosure:
		return c.index == other.index
	case ConstantVector:
		for i := range c.vector {
			if math.Float32bits(c.vector[i]) != math.Float32bits(other.vector[i]) {
				return false
			}
		}
		return true
	case ConstantTable:
		if len(c.keys) != len(other.keys) {
			return false
		}
		for i := range c.keys {
			if c.keys[i] != other.keys[i] {
				return false
			}
		}
		return true
	}
	return false
}

// String returns a short human readable rendering of the constant.
func (c Constant) String() string {
	switch c.tag {
	case ConstantNil:
		return "nil"
	case ConstantBoolean:
		return strconv.FormatBool(c.boolean)
	case ConstantNumber:
		return strconv.FormatFloat(c.number, 'g', -1, 64)
	case ConstantString:
		return strconv.Quote(c.str)
	case ConstantImport:
		path, err := DecodeImport(c.index)
		if err != nil {
			return fmt.Sprintf("import(%#x)", c.index)
		}
		parts := make([]string, len(path))
		for i, p := range path {
			parts[i] = "k" + strconv.FormatUint(uint64(p), 10)
		}
		return "import(" + strings.Join(parts, ".") + ")"
	case ConstantTable:
		parts := make([]string, len(c.keys))
		for i, k := range c.keys {
			parts[i] = "k" + strconv.FormatUint(uint64(k), 10)
		}
		return "table{" + strings.Join(parts, ", ") + "}"
	case ConstantClosure:
		return fmt.Sprintf("closure(%d)", c.index)
	case ConstantVector:
		return fmt.Sprintf("vector(%g, %g, %g, %g)", c.vector[0], c.vector[1], c.vector[2], c.vector[3])
	}
	return "invalid"
}
