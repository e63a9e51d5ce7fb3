package bytecode

// copyWords returns a copy of the given instruction slice.
func copyWords(src []Instruction) []Instruction {
	if src == nil {
		return nil
	}
	dst := make([]Instruction, len(src))
	copy(dst, src)
	return dst
}

// copyConstants returns a copy of the given constant slice.
func copyConstants(src []Constant) []Constant {
	if src == nil {
		return nil
	}
	dst := make([]Constant, len(src))
	copy(dst, src)
	return dst
}

// copyUints returns a copy of the given index slice.
func copyUints(src []uint32) []uint32 {
	if src == nil {
		return nil
	}
	dst := make([]uint32, len(src))
	copy(dst, src)
	return dst
}
