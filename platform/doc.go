// Package platform provides the byte order, alignment and sizing helpers used
// when bytecode crosses machine boundaries.
//
// Host facts are discovered at run time instead of being baked in at compile
// time. HostIsLittleEndian inspects the memory layout of a known value, and
// Detect gathers the remaining facts into a BuildConfig value that callers
// pass explicitly to whatever needs them.
package platform
