//go:build windows

package ort

import "golang.org/x/sys/windows"

// loadLibrary opens the shared library. The handle is never closed while the
// process lives; registered function pointers reference its mappings.
func loadLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

func getSymbol(handle uintptr, symbol string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), symbol)
}
