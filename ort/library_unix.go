//go:build !windows

package ort

import "github.com/ebitengine/purego"

// loadLibrary opens the shared library. The handle is never closed while the
// process lives; registered function pointers reference its mappings.
func loadLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func getSymbol(handle uintptr, symbol string) (uintptr, error) {
	return purego.Dlsym(handle, symbol)
}
