package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Decode errors (chunk headers, opcodes, tags, captures)
//   - E2xxx: Encode errors
//   - E3xxx: Feature flag errors
type ErrorCode string

const (
	// Decode errors (E1xxx)
	E1001 ErrorCode = "E1001" // Version rejected
	E1002 ErrorCode = "E1002" // Unknown opcode
	E1003 ErrorCode = "E1003" // Malformed tag
	E1004 ErrorCode = "E1004" // Invalid capture kind
	E1005 ErrorCode = "E1005" // Truncated chunk
	E1006 ErrorCode = "E1006" // Invalid chunk

	// Encode errors (E2xxx)
	E2001 ErrorCode = "E2001" // Field overflow

	// Flag errors (E3xxx)
	E3001 ErrorCode = "E3001" // Flag redefinition
	E3002 ErrorCode = "E3002" // Immutable flag write
	E3003 ErrorCode = "E3003" // Unknown flag
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "version rejected",
	E1002: "unknown opcode",
	E1003: "malformed tag",
	E1004: "invalid capture kind",
	E1005: "truncated chunk",
	E1006: "invalid chunk",

	E2001: "field overflow",

	E3001: "flag redefinition",
	E3002: "immutable flag write",
	E3003: "unknown flag",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "decode"
	case '2':
		return "encode"
	case '3':
		return "flag"
	default:
		return "unknown"
	}
}
