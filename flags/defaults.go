package flags

// Names of the flags consulted by the VM.
const (
	// FastintSupport enables the fast path for machine integer arithmetic.
	FastintSupport = "LuauFastintSupport"
	// VectorLib enables the vector value type and its library.
	VectorLib = "LuauVectorLib"
	// BufferLib enables the buffer value type and its library.
	BufferLib = "LuauBufferLib"
	// RecursionLimit enforces the recursion depth limit.
	RecursionLimit = "LuauRecursionLimit"
	// TailCallOptimization enables tail call elision.
	TailCallOptimization = "LuauTailCallOptimization"
	// StringFormatFixC enables the string formatting compatibility fix.
	StringFormatFixC = "LuauStringFormatFixC"
)

// Definition describes a flag to register.
type Definition struct {
	Name    string
	Kind    Kind
	Default bool
}

// Defaults lists the VM flags registered by NewDefault. The recursion limit
// guards the host stack and is static; the rest may be toggled.
var Defaults = []Definition{
	{FastintSupport, Dynamic, true},
	{VectorLib, Dynamic, true},
	{BufferLib, Dynamic, true},
	{RecursionLimit, Static, true},
	{TailCallOptimization, Dynamic, true},
	{StringFormatFixC, Dynamic, true},
}

// NewDefault returns a registry with the VM flags in Defaults registered.
func NewDefault(opts ...Option) *Registry {
	r := New(opts...)
	for _, d := range Defaults {
		r.MustRegister(d.Name, d.Kind, d.Default)
	}
	return r
}
