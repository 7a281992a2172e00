//go:build darwin

package ort

import "github.com/ebitengine/purego"

// autoExecutionProvider is the build-time platform default for auto.
func autoExecutionProvider() ExecutionProvider {
	return CoreMLExecutionProvider(CoreMLOptions{})
}

// appendCoreMLProvider appends the CoreML provider through the exported C
// entry point, passing the option bitmask.
func appendCoreMLProvider(o *SessionOptions, opts CoreMLOptions) error {
	sym, err := lookupProviderSymbol(o, "OrtSessionOptionsAppendExecutionProvider_CoreML")
	if err != nil {
		return err
	}

	var appendCoreML func(OrtSessionOptions, uint32) OrtStatus
	purego.RegisterFunc(&appendCoreML, sym)
	return asProviderError(translateStatus(o.api, appendCoreML(o.handle, opts.flags())))
}
