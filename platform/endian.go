package platform

import (
	"encoding/binary"
	"math/bits"
	"unsafe"
)

var probe = uint32(0x01020304)

// HostIsLittleEndian reports whether the running host stores the least
// significant byte of a word first.
func HostIsLittleEndian() bool {
	b := (*[4]byte)(unsafe.Pointer(&probe))
	return b[0] == 0x04
}

// HostByteOrder returns the byte order of the running host.
func HostByteOrder() binary.ByteOrder {
	if HostIsLittleEndian() {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Byteswap16 reverses the byte order of v.
func Byteswap16(v uint16) uint16 {
	return bits.ReverseBytes16(v)
}

// Byteswap32 reverses the byte order of v.
func Byteswap32(v uint32) uint32 {
	return bits.ReverseBytes32(v)
}

// Byteswap64 reverses the byte order of v.
func Byteswap64(v uint64) uint64 {
	return bits.ReverseBytes64(v)
}
