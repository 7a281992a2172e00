//go:build !windows

package ort

import "unsafe"

// goStringToORTChar converts a Go string to ORTCHAR_T for Unix platforms.
// The returned backing object must be kept alive by the caller until ORT
// has finished using the returned pointer.
func goStringToORTChar(s string) (uintptr, any, error) {
	bytes, ptr := GoToCstring(s)
	// #nosec G103 -- Required for CGO-free FFI to pass char* path to ORT.
	return uintptr(unsafe.Pointer(ptr)), bytes, nil
}
