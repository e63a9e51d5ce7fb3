// Package bytecode defines the wire and in-memory contract for register VM
// bytecode: instruction words, constant and type tags, version gating,
// closure captures, and the binary chunk format that carries them.
//
// # Instructions
//
// An [Instruction] is a 32-bit word with the opcode in the low 8 bits. The
// remaining 24 bits are split according to the format the [op] table
// declares for the opcode (ABC, AD or E). [Pack] and [Unpack] are the raw
// codec; [Decode] and [Encode] convert between words and the [ABC], [AD] and
// [E] structs using the opcode table, so consumers never mask bits
// themselves.
//
// # Chunks
//
// A [Chunk] is immutable after construction and safe to share across
// goroutines. Index-based accessors are provided instead of slices:
//
//	chunk.InstructionAt(pc)
//	chunk.ConstantAt(i)
//	chunk.Captures(pc)
//
// [Unmarshal] applies the version gate ([CheckVersion]) to the header
// before reading anything else. [Validate] checks the decoded contents and
// [Load] does both.
//
// Example:
//
//	b := bytecode.NewBuilder(3)
//	k := b.AddConstant(bytecode.NumberConstant(42))
//	b.EmitAD(op.LoadK, 0, uint16(k))
//	b.EmitABC(op.Return, 0, 2, 0)
//	chunk, err := b.Build()
//	if err != nil {
//	    return err
//	}
//	data, err := bytecode.Marshal(chunk)
package bytecode
