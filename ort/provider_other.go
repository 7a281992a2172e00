//go:build !darwin

package ort

// autoExecutionProvider is the build-time platform default for auto.
func autoExecutionProvider() ExecutionProvider {
	return CPUExecutionProvider()
}

// appendCoreMLProvider rejects CoreML off-platform. Hard failure is
// deliberate: silently running on CPU when the caller asked for an
// accelerator would mask a configuration bug.
func appendCoreMLProvider(o *SessionOptions, _ CoreMLOptions) error {
	return invalidArgumentError("the CoreML execution provider is only available on macOS")
}
