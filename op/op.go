// Package op defines the opcodes of the register VM instruction set.
//
// Opcode ids are part of the bytecode contract. They never change meaning
// between bytecode versions; new opcodes may only be appended after MaxCode.
package op

import (
	"strings"

	"github.com/deepnoodle-ai/lbc/errors"
)

// Code is an integer opcode that indicates an operation to execute. It
// occupies the low 8 bits of every instruction word.
type Code uint8

const (
	Nop         Code = 0
	Break       Code = 1
	LoadNil     Code = 2
	LoadB       Code = 3
	LoadN       Code = 4
	LoadK       Code = 5
	Move        Code = 6
	GetGlobal   Code = 7
	SetGlobal   Code = 8
	GetUpval    Code = 9
	SetUpval    Code = 10
	CloseUpvals Code = 11
	GetImport   Code = 12

	// Tables
	GetTable   Code = 13
	SetTable   Code = 14
	GetTableKS Code = 15
	SetTableKS Code = 16
	GetTableN  Code = 17
	SetTableN  Code = 18

	// Calls
	NewClosure Code = 19
	NameCall   Code = 20
	Call       Code = 21
	Return     Code = 22

	// Jumps
	Jump        Code = 23
	JumpBack    Code = 24
	JumpIf      Code = 25
	JumpIfNot   Code = 26
	JumpIfEq    Code = 27
	JumpIfLe    Code = 28
	JumpIfLt    Code = 29
	JumpIfNotEq Code = 30
	JumpIfNotLe Code = 31
	JumpIfNotLt Code = 32

	// Arithmetic
	Add  Code = 33
	Sub  Code = 34
	Mul  Code = 35
	Div  Code = 36
	Mod  Code = 37
	Pow  Code = 38
	AddK Code = 39
	SubK Code = 40
	MulK Code = 41
	DivK Code = 42
	ModK Code = 43
	PowK Code = 44

	// Logic
	And  Code = 45
	Or   Code = 46
	AndK Code = 47
	OrK  Code = 48

	Concat Code = 49
	Not    Code = 50
	Minus  Code = 51
	Length Code = 52

	NewTable Code = 53
	DupTable Code = 54
	SetList  Code = 55

	// Loops
	ForNPrep      Code = 56
	ForNLoop      Code = 57
	ForGPrep      Code = 58
	ForGLoop      Code = 59
	ForGPrepINext Code = 60
	ForGPrepNext  Code = 61

	NativeCall  Code = 62
	GetVarArgs  Code = 63
	DupClosure  Code = 64
	PrepVarArgs Code = 65
	LoadKX      Code = 66
	JumpX       Code = 67
	FastCall    Code = 68
	Coverage    Code = 69
	Capture     Code = 70
)

// MaxCode is the highest defined opcode.
const MaxCode = Capture

// Count is the number of defined opcodes.
const Count = int(MaxCode) + 1

// Format describes how the 24 bits above the opcode are split into operand
// fields.
type Format uint8

const (
	// FormatABC splits the operand bits into three 8-bit fields A, B, C.
	FormatABC Format = iota
	// FormatAD splits the operand bits into an 8-bit A and a 16-bit D.
	FormatAD
	// FormatE uses all 24 operand bits as a single field E.
	FormatE
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatABC:
		return "ABC"
	case FormatAD:
		return "AD"
	case FormatE:
		return "E"
	default:
		return ""
	}
}

// Valid reports whether f is one of the defined formats.
func (f Format) Valid() bool {
	return f <= FormatE
}

// FieldCount returns the number of operand fields in the format.
func (f Format) FieldCount() int {
	switch f {
	case FormatABC:
		return 3
	case FormatAD:
		return 2
	case FormatE:
		return 1
	default:
		return 0
	}
}

// Info contains information about an opcode.
type Info struct {
	Code   Code
	Name   string
	Format Format
	// Aux is true when the instruction is followed by one auxiliary
	// 32-bit word that belongs to it.
	Aux bool
}

// Size returns the number of 32-bit words the instruction occupies.
func (i Info) Size() int {
	if i.Aux {
		return 2
	}
	return 1
}

var (
	infos  [Count]Info
	byName = make(map[string]Code, Count)
)

func init() {
	type opInfo struct {
		op     Code
		name   string
		format Format
		aux    bool
	}
	ops := []opInfo{
		{Nop, "NOP", FormatABC, false},
		{Break, "BREAK", FormatABC, false},
		{LoadNil, "LOADNIL", FormatABC, false},
		{LoadB, "LOADB", FormatABC, false},
		{LoadN, "LOADN", FormatAD, false},
		{LoadK, "LOADK", FormatAD, false},
		{Move, "MOVE", FormatABC, false},
		{GetGlobal, "GETGLOBAL", FormatABC, true},
		{SetGlobal, "SETGLOBAL", FormatABC, true},
		{GetUpval, "GETUPVAL", FormatABC, false},
		{SetUpval, "SETUPVAL", FormatABC, false},
		{CloseUpvals, "CLOSEUPVALS", FormatABC, false},
		{GetImport, "GETIMPORT", FormatAD, true},
		{GetTable, "GETTABLE", FormatABC, false},
		{SetTable, "SETTABLE", FormatABC, false},
		{GetTableKS, "GETTABLEKS", FormatABC, true},
		{SetTableKS, "SETTABLEKS", FormatABC, true},
		{GetTableN, "GETTABLEN", FormatABC, false},
		{SetTableN, "SETTABLEN", FormatABC, false},
		{NewClosure, "NEWCLOSURE", FormatAD, false},
		{NameCall, "NAMECALL", FormatABC, true},
		{Call, "CALL", FormatABC, false},
		{Return, "RETURN", FormatABC, false},
		{Jump, "JUMP", FormatAD, false},
		{JumpBack, "JUMPBACK", FormatAD, false},
		{JumpIf, "JUMPIF", FormatAD, false},
		{JumpIfNot, "JUMPIFNOT", FormatAD, false},
		{JumpIfEq, "JUMPIFEQ", FormatAD, true},
		{JumpIfLe, "JUMPIFLE", FormatAD, true},
		{JumpIfLt, "JUMPIFLT", FormatAD, true},
		{JumpIfNotEq, "JUMPIFNOTEQ", FormatAD, true},
		{JumpIfNotLe, "JUMPIFNOTLE", FormatAD, true},
		{JumpIfNotLt, "JUMPIFNOTLT", FormatAD, true},
		{Add, "ADD", FormatABC, false},
		{Sub, "SUB", FormatABC, false},
		{Mul, "MUL", FormatABC, false},
		{Div, "DIV", FormatABC, false},
		{Mod, "MOD", FormatABC, false},
		{Pow, "POW", FormatABC, false},
		{AddK, "ADDK", FormatABC, false},
		{SubK, "SUBK", FormatABC, false},
		{MulK, "MULK", FormatABC, false},
		{DivK, "DIVK", FormatABC, false},
		{ModK, "MODK", FormatABC, false},
		{PowK, "POWK", FormatABC, false},
		{And, "AND", FormatABC, false},
		{Or, "OR", FormatABC, false},
		{AndK, "ANDK", FormatABC, false},
		{OrK, "ORK", FormatABC, false},
		{Concat, "CONCAT", FormatABC, false},
		{Not, "NOT", FormatABC, false},
		{Minus, "MINUS", FormatABC, false},
		{Length, "LENGTH", FormatABC, false},
		{NewTable, "NEWTABLE", FormatABC, true},
		{DupTable, "DUPTABLE", FormatAD, false},
		{SetList, "SETLIST", FormatABC, true},
		{ForNPrep, "FORNPREP", FormatAD, false},
		{ForNLoop, "FORNLOOP", FormatAD, false},
		{ForGPrep, "FORGPREP", FormatAD, false},
		{ForGLoop, "FORGLOOP", FormatAD, true},
		{ForGPrepINext, "FORGPREP_INEXT", FormatAD, false},
		{ForGPrepNext, "FORGPREP_NEXT", FormatAD, false},
		{NativeCall, "NATIVECALL", FormatABC, false},
		{GetVarArgs, "GETVARARGS", FormatABC, false},
		{DupClosure, "DUPCLOSURE", FormatAD, false},
		{PrepVarArgs, "PREPVARARGS", FormatABC, false},
		{LoadKX, "LOADKX", FormatABC, true},
		{JumpX, "JUMPX", FormatE, false},
		{FastCall, "FASTCALL", FormatABC, false},
		{Coverage, "COVERAGE", FormatE, false},
		{Capture, "CAPTURE", FormatABC, false},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:   o.op,
			Name:   o.name,
			Format: o.format,
			Aux:    o.aux,
		}
		byName[o.name] = o.op
	}
}

// Valid reports whether c is a defined opcode.
func (c Code) Valid() bool {
	return c <= MaxCode
}

// String returns the mnemonic of the opcode, or an empty string if the
// opcode is not defined.
func (c Code) String() string {
	if !c.Valid() {
		return ""
	}
	return infos[c].Name
}

// GetInfo returns information about the given opcode.
func GetInfo(c Code) (Info, error) {
	if !c.Valid() {
		return Info{}, errors.Newf(errors.E1002, "opcode %d is not defined", c)
	}
	return infos[c], nil
}

// GetInfoByID returns information about the opcode with the given numeric id.
// Ids that do not fit in a Code are reported as unknown opcodes.
func GetInfoByID(id int) (Info, error) {
	if id < 0 || id > int(MaxCode) {
		return Info{}, errors.Newf(errors.E1002, "opcode %d is not defined", id)
	}
	return infos[id], nil
}

// Lookup returns the opcode with the given mnemonic. The match is not case
// sensitive.
func Lookup(name string) (Code, error) {
	c, ok := byName[strings.ToUpper(name)]
	if !ok {
		names := make([]string, 0, Count)
		for _, info := range infos {
			names = append(names, info.Name)
		}
		return 0, errors.Newf(errors.E1002, "opcode %q is not defined%s", name,
			errors.DidYouMean(strings.ToUpper(name), names))
	}
	return c, nil
}

// All returns information about every defined opcode, ordered by id.
func All() []Info {
	all := make([]Info, Count)
	copy(all, infos[:])
	return all
}
