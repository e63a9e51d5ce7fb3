package bytecode

import (
	"encoding/binary"
	"math"

	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/deepnoodle-ai/lbc/platform"
)

// Header flag bits.
const (
	flagBigEndian = 1 << 0
	flagTyped     = 1 << 1
	knownFlags    = flagBigEndian | flagTyped
)

// MarshalOption configures Marshal.
type MarshalOption func(*marshalConfig)

type marshalConfig struct {
	bigEndian *bool
}

// WithBigEndian selects the byte order of the chunk body, overriding the
// order recorded in the chunk's header.
func WithBigEndian(bigEndian bool) MarshalOption {
	return func(cfg *marshalConfig) {
		cfg.bigEndian = &bigEndian
	}
}

// WithHostOrder writes the chunk body in the byte order of the running host.
func WithHostOrder() MarshalOption {
	return WithBigEndian(!platform.HostIsLittleEndian())
}

// Marshal encodes a chunk in the binary chunk format:
//
//	u8      version
//	u8      flags (bit 0: big-endian body, bit 1: typed)
//	u8      types version, only when typed
//	uvarint constant count, then per constant a tag byte and its payload
//	uvarint instruction word count, then the words
//
// Marshal refuses to encode a chunk whose header fails the version gate.
func Marshal(chunk *Chunk, opts ...MarshalOption) ([]byte, error) {
	cfg := &marshalConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	header := chunk.Header()
	if cfg.bigEndian != nil {
		header.BigEndian = *cfg.bigEndian
	}
	if err := header.Check(); err != nil {
		return nil, err
	}
	w := &writer{bigEndian: header.BigEndian}
	w.u8(header.Version)
	var flags byte
	if header.BigEndian {
		flags |= flagBigEndian
	}
	if header.Typed {
		flags |= flagTyped
	}
	w.u8(flags)
	if header.Typed {
		w.u8(header.TypesVersion)
	}
	w.uvarint(uint64(chunk.ConstantCount()))
	for i := 0; i < chunk.ConstantCount(); i++ {
		if err := w.constant(chunk.ConstantAt(i)); err != nil {
			return nil, errors.Prefix(err, "constant %d", i)
		}
	}
	w.uvarint(uint64(chunk.InstructionCount()))
	for i := 0; i < chunk.InstructionCount(); i++ {
		w.u32(uint32(chunk.InstructionAt(i)))
	}
	return w.buf, nil
}

// Unmarshal decodes a chunk from the binary chunk format. The header is
// passed through the version gate before any constant or instruction is
// read. Unmarshal checks the structure of the encoding only; use Load to
// also validate the decoded contents.
func Unmarshal(data []byte) (*Chunk, error) {
	r := &reader{data: data}
	header, err := r.header(true)
	if err != nil {
		return nil, err
	}
	if err := header.Check(); err != nil {
		return nil, err
	}
	r.bigEndian = header.BigEndian

	nconst, err := r.count(1)
	if err != nil {
		return nil, errors.Prefix(err, "constant count")
	}
	constants := make([]Constant, 0, nconst)
	for i := 0; i < nconst; i++ {
		c, err := r.constant()
		if err != nil {
			return nil, errors.Prefix(err, "constant %d", i)
		}
		constants = append(constants, c)
	}

	ninsn, err := r.count(4)
	if err != nil {
		return nil, errors.Prefix(err, "instruction count")
	}
	code := make([]Instruction, ninsn)
	for i := range code {
		word, err := r.u32()
		if err != nil {
			return nil, errors.Prefix(err, "instruction %d", i)
		}
		code[i] = Instruction(word)
	}
	if r.pos != len(r.data) {
		return nil, errors.Newf(errors.E1006, "%d trailing bytes after instructions", len(r.data)-r.pos)
	}
	return &Chunk{header: header, constants: constants, code: code}, nil
}

// Load decodes a chunk and validates its contents.
func Load(data []byte) (*Chunk, error) {
	chunk, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(chunk); err != nil {
		return nil, err
	}
	return chunk, nil
}

// ReadHeader decodes only the header of a chunk. It does not apply the
// version gate.
func ReadHeader(data []byte) (Header, error) {
	r := &reader{data: data}
	return r.header(false)
}

type writer struct {
	buf       []byte
	bigEndian bool
}

func (w *writer) u8(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) uvarint(v uint64) {
	w.buf = binary.AppendUvarint(w.buf, v)
}

func (w *writer) u32(v uint32) {
	if w.bigEndian {
		v = platform.Byteswap32(v)
	}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *writer) u64(v uint64) {
	if w.bigEndian {
		v = platform.Byteswap64(v)
	}
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *writer) constant(c Constant) error {
	if !c.Tag().Valid() {
		return errors.Newf(errors.E1003, "constant tag %d is not defined", c.Tag())
	}
	w.u8(c.Tag().Byte())
	switch c.Tag() {
	case ConstantNil:
	case ConstantBoolean:
		if c.Bool() {
			w.u8(1)
		} else {
			w.u8(0)
		}
	case ConstantNumber:
		w.u64(math.Float64bits(c.Number()))
	case ConstantString:
		w.uvarint(uint64(len(c.Str())))
		w.buf = append(w.buf, c.Str()...)
	case ConstantImport:
		w.u32(c.ImportID())
	case ConstantTable:
		w.uvarint(uint64(c.KeyCount()))
		for i := 0; i < c.KeyCount(); i++ {
			w.uvarint(uint64(c.KeyAt(i)))
		}
	case ConstantClosure:
		w.uvarint(uint64(c.ClosureIndex()))
	case ConstantVector:
		for _, f := range c.Vector() {
			w.u32(math.Float32bits(f))
		}
	}
	return nil
}

type reader struct {
	data      []byte
	pos       int
	bigEndian bool
}

func truncated(what string) error {
	return errors.Newf(errors.E1005, "unexpected end of data reading %s", what)
}

// header decodes the chunk header. With gate set, the bytecode version is
// checked as soon as it is read, ahead of any other header problem.
func (r *reader) header(gate bool) (Header, error) {
	version, err := r.u8()
	if err != nil {
		return Header{}, truncated("version")
	}
	if gate {
		if err := CheckVersion(version, 0, false); err != nil {
			return Header{}, err
		}
	}
	flags, err := r.u8()
	if err != nil {
		return Header{}, truncated("flags")
	}
	if flags&^knownFlags != 0 {
		return Header{}, errors.Newf(errors.E1006, "unknown header flags %#02x", flags&^knownFlags)
	}
	h := Header{
		Version:   version,
		Typed:     flags&flagTyped != 0,
		BigEndian: flags&flagBigEndian != 0,
	}
	if h.Typed {
		if h.TypesVersion, err = r.u8(); err != nil {
			return Header{}, truncated("types version")
		}
	}
	return h, nil
}

func (r *reader) u8() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, truncated("byte")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.pos:])
	if n == 0 {
		return 0, truncated("varint")
	}
	if n < 0 {
		return 0, errors.New(errors.E1006, "varint overflows 64 bits")
	}
	r.pos += n
	return v, nil
}

// count reads an element count and checks that the remaining data could
// hold that many elements of at least minSize bytes each.
func (r *reader) count(minSize int) (int, error) {
	v, err := r.uvarint()
	if err != nil {
		return 0, err
	}
	remaining := uint64(len(r.data) - r.pos)
	if v > remaining/uint64(minSize) {
		return 0, errors.Newf(errors.E1005, "count %d exceeds remaining %d bytes", v, remaining)
	}
	return int(v), nil
}

func (r *reader) index() (uint32, error) {
	v, err := r.uvarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, errors.Newf(errors.E1006, "index %d exceeds 32 bits", v)
	}
	return uint32(v), nil
}

func (r *reader) u32() (uint32, error) {
	if len(r.data)-r.pos < 4 {
		return 0, truncated("u32")
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	if r.bigEndian {
		v = platform.Byteswap32(v)
	}
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if len(r.data)-r.pos < 8 {
		return 0, truncated("u64")
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	if r.bigEndian {
		v = platform.Byteswap64(v)
	}
	return v, nil
}

func (r *reader) constant() (Constant, error) {
	b, err := r.u8()
	if err != nil {
		return Constant{}, truncated("constant tag")
	}
	tag, err := DecodeConstantTag(b)
	if err != nil {
		return Constant{}, err
	}
	switch tag {
	case ConstantNil:
		return NilConstant(), nil
	case ConstantBoolean:
		v, err := r.u8()
		if err != nil {
			return Constant{}, err
		}
		if v > 1 {
			return Constant{}, errors.Newf(errors.E1006, "boolean payload %d", v)
		}
		return BoolConstant(v == 1), nil
	case ConstantNumber:
		v, err := r.u64()
		if err != nil {
			return Constant{}, err
		}
		return NumberConstant(math.Float64frombits(v)), nil
	case ConstantString:
		n, err := r.count(1)
		if err != nil {
			return Constant{}, err
		}
		s := string(r.data[r.pos : r.pos+n])
		r.pos += n
		return StringConstant(s), nil
	case ConstantImport:
		v, err := r.u32()
		if err != nil {
			return Constant{}, err
		}
		return ImportConstant(v), nil
	case ConstantTable:
		n, err := r.count(1)
		if err != nil {
			return Constant{}, err
		}
		keys := make([]uint32, n)
		for i := range keys {
			if keys[i], err = r.index(); err != nil {
				return Constant{}, err
			}
		}
		return Constant{tag: ConstantTable, keys: keys}, nil
	case ConstantClosure:
		v, err := r.index()
		if err != nil {
			return Constant{}, err
		}
		return ClosureConstant(v), nil
	default: // ConstantVector
		var vec [4]float32
		for i := range vec {
			v, err := r.u32()
			if err != nil {
				return Constant{}, err
			}
			vec[i] = math.Float32frombits(v)
		}
		return VectorConstant(vec[0], vec[1], vec[2], vec[3]), nil
	}
}
