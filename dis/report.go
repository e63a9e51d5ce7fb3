package dis

import (
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/deepnoodle-ai/lbc/bytecode"
)

// Report is a structured summary of a chunk suitable for machine consumption.
type Report struct {
	Version      uint8            `json:"version" cbor:"1,keyasint"`
	Typed        bool             `json:"typed" cbor:"2,keyasint"`
	TypesVersion uint8            `json:"types_version,omitempty" cbor:"3,keyasint,omitempty"`
	Stats        Stats            `json:"stats" cbor:"4,keyasint"`
	Constants    []Constant       `json:"constants" cbor:"5,keyasint"`
	Instructions []Instruction    `json:"instructions" cbor:"6,keyasint"`
	Opcodes      []OpcodeCount    `json:"opcodes" cbor:"7,keyasint"`
	Captures     map[int][]string `json:"captures,omitempty" cbor:"8,keyasint,omitempty"`
}

// Stats mirrors bytecode.Stats.
type Stats struct {
	Instructions int `json:"instructions" cbor:"1,keyasint"`
	Words        int `json:"words" cbor:"2,keyasint"`
	Constants    int `json:"constants" cbor:"3,keyasint"`
	Closures     int `json:"closures" cbor:"4,keyasint"`
	Captures     int `json:"captures" cbor:"5,keyasint"`
}

// Constant describes one entry of the constant pool.
type Constant struct {
	Index int    `json:"index" cbor:"1,keyasint"`
	Tag   string `json:"tag" cbor:"2,keyasint"`
	Value string `json:"value" cbor:"3,keyasint"`
}

// OpcodeCount is the number of times an opcode occurs in a chunk.
type OpcodeCount struct {
	Name  string `json:"name" cbor:"1,keyasint"`
	Count int    `json:"count" cbor:"2,keyasint"`
}

// Inspect disassembles the chunk and gathers a Report.
func Inspect(chunk *bytecode.Chunk) (*Report, error) {
	instructions, err := Disassemble(chunk)
	if err != nil {
		return nil, err
	}
	header := chunk.Header()
	stats := chunk.Stats()
	report := &Report{
		Version:      header.Version,
		Typed:        header.Typed,
		TypesVersion: header.TypesVersion,
		Stats: Stats{
			Instructions: stats.InstructionCount,
			Words:        stats.WordCount,
			Constants:    stats.ConstantCount,
			Closures:     stats.ClosureCount,
			Captures:     stats.CaptureCount,
		},
		Constants:    make([]Constant, chunk.ConstantCount()),
		Instructions: instructions,
	}
	for i := range report.Constants {
		c := chunk.ConstantAt(i)
		report.Constants[i] = Constant{Index: i, Tag: c.Tag().String(), Value: c.String()}
	}

	counts := map[string]int{}
	for _, instr := range instructions {
		counts[instr.Name]++
		if instr.Name != "NEWCLOSURE" && instr.Name != "DUPCLOSURE" {
			continue
		}
		captures, err := chunk.Captures(instr.PC)
		if err != nil {
			return nil, err
		}
		if len(captures) == 0 {
			continue
		}
		if report.Captures == nil {
			report.Captures = map[int][]string{}
		}
		for _, c := range captures {
			report.Captures[instr.PC] = append(report.Captures[instr.PC], captureAnnotation(c))
		}
	}
	for name, count := range counts {
		report.Opcodes = append(report.Opcodes, OpcodeCount{Name: name, Count: count})
	}
	sort.Slice(report.Opcodes, func(i, j int) bool {
		if report.Opcodes[i].Count != report.Opcodes[j].Count {
			return report.Opcodes[i].Count > report.Opcodes[j].Count
		}
		return report.Opcodes[i].Name < report.Opcodes[j].Name
	})
	return report, nil
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("dis: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalCBOR encodes the report in canonical CBOR.
func (r *Report) MarshalCBOR() ([]byte, error) {
	type plain Report
	return cborEncMode.Marshal((*plain)(r))
}

// UnmarshalReport decodes a report produced by MarshalCBOR.
func UnmarshalReport(data []byte) (*Report, error) {
	var r Report
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("dis: unmarshal report: %w", err)
	}
	return &r, nil
}
