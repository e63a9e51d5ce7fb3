package bytecode

import (
	"github.com/hashicorp/go-multierror"

	"github.com/deepnoodle-ai/lbc/errors"
	"github.com/deepnoodle-ai/lbc/op"
)

// constantRef describes an operand that indexes the constant pool.
type constantRef struct {
	field string
	// tag is the required constant tag, or nil if any tag is accepted.
	tag *ConstantTag
}

func requireTag(t ConstantTag) *ConstantTag { return &t }

func (r constantRef) index(code []Instruction, pc int) (int, bool) {
	switch r.field {
	case "D":
		return int(code[pc].D()), true
	case "C":
		return int(code[pc].C()), true
	default:
		if pc+1 >= len(code) {
			return 0, false
		}
		return int(code[pc+1]), true
	}
}

var constantRefs = map[op.Code]constantRef{
	op.LoadK:      {field: "D"},
	op.GetImport:  {field: "D", tag: requireTag(ConstantImport)},
	op.DupTable:   {field: "D", tag: requireTag(ConstantTable)},
	op.DupClosure: {field: "D", tag: requireTag(ConstantClosure)},
	op.AddK:       {field: "C"},
	op.SubK:       {field: "C"},
	op.MulK:       {field: "C"},
	op.DivK:       {field: "C"},
	op.ModK:       {field: "C"},
	op.PowK:       {field: "C"},
	op.AndK:       {field: "C"},
	op.OrK:        {field: "C"},
	op.LoadKX:     {field: "aux"},
	op.GetGlobal:  {field: "aux", tag: requireTag(ConstantString)},
	op.SetGlobal:  {field: "aux", tag: requireTag(ConstantString)},
	op.GetTableKS: {field: "aux", tag: requireTag(ConstantString)},
	op.SetTableKS: {field: "aux", tag: requireTag(ConstantString)},
	op.NameCall:   {field: "aux", tag: requireTag(ConstantString)},
}

// Validate checks that a chunk is safe to hand to an interpreter. It
// verifies that:
//   - every instruction has a defined opcode and its auxiliary word, if any
//   - CAPTURE instructions only follow NEWCLOSURE, DUPCLOSURE or another
//     CAPTURE, and carry a defined capture kind
//   - constant operands are in range and have the expected tag
//   - table keys refer to existing constants and import paths to string
//     constants
//
// All problems found are reported together in a *multierror.Error.
func Validate(chunk *Chunk) error {
	var result *multierror.Error
	if err := chunk.Header().Check(); err != nil {
		return err
	}
	nconst := chunk.ConstantCount()
	for i := 0; i < nconst; i++ {
		c := chunk.ConstantAt(i)
		switch c.Tag() {
		case ConstantTable:
			for k := 0; k < c.KeyCount(); k++ {
				if int64(c.KeyAt(k)) >= int64(nconst) {
					result = multierror.Append(result, errors.Newf(errors.E1006,
						"constant %d: table key %d refers to missing constant %d", i, k, c.KeyAt(k)))
				}
			}
		case ConstantImport:
			path, err := DecodeImport(c.ImportID())
			if err != nil {
				result = multierror.Append(result, errors.Prefix(err, "constant %d", i))
				continue
			}
			for _, idx := range path {
				if int(idx) >= nconst {
					result = multierror.Append(result, errors.Newf(errors.E1006,
						"constant %d: import path refers to missing constant %d", i, idx))
				} else if tag := chunk.ConstantAt(int(idx)).Tag(); tag != ConstantString {
					result = multierror.Append(result, errors.Newf(errors.E1006,
						"constant %d: import path names a %s constant %d", i, tag, idx))
				}
			}
		}
	}

	n := chunk.InstructionCount()
	captureAllowed := false
	for pc := 0; pc < n; {
		word := chunk.InstructionAt(pc)
		info, err := op.GetInfo(word.Op())
		if err != nil {
			result = multierror.Append(result, errors.Prefix(err, "pc %d", pc))
			captureAllowed = false
			pc++
			continue
		}
		if info.Code == op.Capture {
			if !captureAllowed {
				result = multierror.Append(result, errors.Newf(errors.E1006,
					"pc %d: CAPTURE does not follow a closure", pc))
			}
			if _, err := DecodeCapture(word); err != nil {
				result = multierror.Append(result, errors.Prefix(err, "pc %d", pc))
			}
		} else {
			captureAllowed = createsClosure(info.Code)
		}
		if info.Aux && pc+1 >= n {
			result = multierror.Append(result, errors.Newf(errors.E1005,
				"pc %d: %s is missing its auxiliary word", pc, info.Name))
			break
		}
		if ref, ok := constantRefs[info.Code]; ok {
			index, _ := ref.index(chunk.code, pc)
			if index >= nconst {
				result = multierror.Append(result, errors.Newf(errors.E1006,
					"pc %d: %s refers to missing constant %d", pc, info.Name, index))
			} else if ref.tag != nil && chunk.ConstantAt(index).Tag() != *ref.tag {
				result = multierror.Append(result, errors.Newf(errors.E1006,
					"pc %d: %s expects a %s constant, found %s", pc, info.Name,
					*ref.tag, chunk.ConstantAt(index).Tag()))
			}
		}
		pc += info.Size()
	}
	return result.ErrorOrNil()
}
