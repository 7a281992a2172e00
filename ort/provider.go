package ort

import (
	"errors"

	"github.com/ebitengine/purego"
)

// providerKind tags the closed set of ExecutionProvider variants.
type providerKind int

const (
	providerCPU providerKind = iota
	providerCoreML
	providerCUDA
	providerAuto
)

// CoreMLComputeUnits restricts which Apple compute units CoreML may use.
type CoreMLComputeUnits int

const (
	CoreMLComputeUnitsAll CoreMLComputeUnits = iota
	CoreMLComputeUnitsCPUOnly
	CoreMLComputeUnitsCPUAndGPU
	CoreMLComputeUnitsCPUAndNeuralEngine
)

// CoreML provider flag bits, from coreml_provider_factory.h.
const (
	coremlFlagUseCPUOnly             uint32 = 0x001
	coremlFlagOnlyEnableDeviceANE    uint32 = 0x004
	coremlFlagOnlyStaticInputShapes  uint32 = 0x008
	coremlFlagCreateMLProgram        uint32 = 0x010
	coremlFlagUseCPUAndGPU           uint32 = 0x020
)

// CoreMLOptions configures the CoreML execution provider.
type CoreMLOptions struct {
	// UseMLProgram selects the MLProgram model format instead of the legacy
	// NeuralNetwork format.
	UseMLProgram bool
	// ComputeUnits restricts execution to a subset of compute units.
	ComputeUnits CoreMLComputeUnits
	// RequireStaticShapes rejects models with dynamic input shapes instead
	// of partitioning them.
	RequireStaticShapes bool
}

func (o CoreMLOptions) flags() uint32 {
	var flags uint32
	if o.UseMLProgram {
		flags |= coremlFlagCreateMLProgram
	}
	switch o.ComputeUnits {
	case CoreMLComputeUnitsCPUOnly:
		flags |= coremlFlagUseCPUOnly
	case CoreMLComputeUnitsCPUAndGPU:
		flags |= coremlFlagUseCPUAndGPU
	case CoreMLComputeUnitsCPUAndNeuralEngine:
		flags |= coremlFlagOnlyEnableDeviceANE
	}
	if o.RequireStaticShapes {
		flags |= coremlFlagOnlyStaticInputShapes
	}
	return flags
}

// ExecutionProvider selects the acceleration backend for a session. It is a
// pure value; nothing native is held. The zero value is the CPU provider.
type ExecutionProvider struct {
	kind         providerKind
	coreML       CoreMLOptions
	cudaDeviceID int
}

// CPUExecutionProvider returns the default CPU provider. Applying it is a
// no-op: CPU is the native default.
func CPUExecutionProvider() ExecutionProvider {
	return ExecutionProvider{kind: providerCPU}
}

// CoreMLExecutionProvider returns the CoreML provider. It can only be
// applied on macOS; elsewhere apply fails with InvalidArgument rather than
// silently running on CPU, since that could mask a configuration bug.
func CoreMLExecutionProvider(opts CoreMLOptions) ExecutionProvider {
	return ExecutionProvider{kind: providerCoreML, coreML: opts}
}

// CUDAExecutionProvider returns the CUDA provider for the given device. It
// requires a library built with CUDA support; absence of the provider entry
// point fails with InvalidArgument rather than crashing on a missing symbol.
func CUDAExecutionProvider(deviceID int) ExecutionProvider {
	return ExecutionProvider{kind: providerCUDA, cudaDeviceID: deviceID}
}

// AutoExecutionProvider returns a provider that resolves to the platform
// default (CoreML on macOS, CPU elsewhere). It must be resolved before being
// applied; Resolve is called by SessionOptions.AppendExecutionProvider.
func AutoExecutionProvider() ExecutionProvider {
	return ExecutionProvider{kind: providerAuto}
}

// Resolve returns the concrete provider for this platform. It is the
// identity for any non-auto variant, and the platform choice for auto is
// fixed at build time, so resolving twice always yields the same result.
func (p ExecutionProvider) Resolve() ExecutionProvider {
	if p.kind != providerAuto {
		return p
	}
	return autoExecutionProvider()
}

func (p ExecutionProvider) String() string {
	switch p.kind {
	case providerCPU:
		return "cpu"
	case providerCoreML:
		return "coreml"
	case providerCUDA:
		return "cuda"
	case providerAuto:
		return "auto"
	default:
		return "invalid"
	}
}

// apply writes the provider into the session options. Callers always resolve
// first; an unresolved auto here means a broken call path inside this
// package.
func (p ExecutionProvider) apply(o *SessionOptions) error {
	switch p.kind {
	case providerCPU:
		return nil
	case providerCoreML:
		return appendCoreMLProvider(o, p.coreML)
	case providerCUDA:
		return appendCUDAProvider(o, p.cudaDeviceID)
	default:
		return &Error{Code: ErrorCodeFail, Message: "auto execution provider applied without resolution"}
	}
}

// appendCUDAProvider appends the CUDA provider through the exported C entry
// point. Libraries built without CUDA do not export it at all.
func appendCUDAProvider(o *SessionOptions, deviceID int) error {
	sym, err := lookupProviderSymbol(o, "OrtSessionOptionsAppendExecutionProvider_CUDA")
	if err != nil {
		return err
	}

	var appendCUDA func(OrtSessionOptions, int32) OrtStatus
	purego.RegisterFunc(&appendCUDA, sym)
	// #nosec G115 -- device IDs are small non-negative integers
	return asProviderError(translateStatus(o.api, appendCUDA(o.handle, int32(deviceID))))
}

func lookupProviderSymbol(o *SessionOptions, name string) (uintptr, error) {
	if o.env == nil || o.env.symbolLookup == nil {
		return 0, invalidArgumentError("execution provider %q requires an environment backed by a loaded library", name)
	}
	sym, err := o.env.symbolLookup(name)
	if err != nil || sym == 0 {
		return 0, invalidArgumentError("the loaded ONNX Runtime library was built without %q", name)
	}
	return sym, nil
}

// asProviderError reclassifies a native provider-append failure as an
// engine error; the native layer reports these under assorted codes.
func asProviderError(err error) error {
	if err == nil {
		return nil
	}
	var ortErr *Error
	if errors.As(err, &ortErr) {
		return &Error{Code: ErrorCodeEngineError, Message: ortErr.Message}
	}
	return err
}
