package ort

import "unsafe"

// CstringToGo converts a C null-terminated string pointer to a Go string.
// Returns empty string if ptr is 0 (null).
func CstringToGo(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}

	// Scan for the terminator through a bounded view. The bound avoids
	// checkptr issues when walking C-allocated memory; ORT strings (error
	// messages, names, version) are far below it in practice.
	const maxStringLen = 1 << 20
	// #nosec G103 -- Required for CGO-free FFI; the pointer originates from ORT.
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), maxStringLen)

	var length int
	for i := 0; i < maxStringLen; i++ {
		if bytes[i] == 0 {
			length = i
			break
		}
	}

	return string(bytes[:length])
}

// GoToCstring converts a Go string to a null-terminated byte slice suitable
// for passing to C functions. Returns the byte slice (which the caller must
// keep alive for as long as the native side may read it) and a pointer to its
// first byte.
func GoToCstring(s string) ([]byte, *byte) {
	b := append([]byte(s), 0)
	return b, &b[0]
}
