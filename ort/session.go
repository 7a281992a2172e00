package ort

import (
	"runtime"
	"unsafe"
)

// Session owns one loaded model. Input and output names are enumerated once
// at creation and cached, together with C-string copies used on every run so
// the hot path performs no per-call conversions. Run and RunWithBinding are
// safe for concurrent use; creation and destruction are not.
type Session struct {
	api       API
	handle    OrtSession
	allocator OrtAllocator

	inputNames  []string
	outputNames []string

	// C-string copies of the names, plus pointer arrays in native call
	// layout. Built once; read-only afterwards.
	inputNameBytes  [][]byte
	outputNameBytes [][]byte
	inputNamePtrs   []*byte
	outputNamePtrs  []*byte
}

// NewSession loads the model at modelPath into the environment. A nil opts
// uses default session options, created and destroyed internally. When opts
// is supplied the caller keeps ownership of it.
func NewSession(env *Environment, modelPath string, opts *SessionOptions) (*Session, error) {
	if env == nil || env.handle == 0 {
		return nil, invalidArgumentError("environment is nil or destroyed")
	}
	if modelPath == "" {
		return nil, invalidArgumentError("model path cannot be empty")
	}

	a := env.api

	optsHandle := opts.Handle()
	if opts != nil && optsHandle == 0 {
		return nil, invalidArgumentError("session options have been destroyed")
	}
	if opts == nil {
		defaults, err := newSessionOptionsWithAPI(a)
		if err != nil {
			return nil, err
		}
		defer func() { _ = defaults.Destroy() }()
		optsHandle = defaults.handle
	}

	pathPtr, pathHolder, err := goStringToORTChar(modelPath)
	if err != nil {
		return nil, err
	}

	var handle OrtSession
	status := a.CreateSession(env.handle, pathPtr, optsHandle, &handle)
	runtime.KeepAlive(pathHolder)
	if err := translateStatus(a, status); err != nil {
		return nil, err
	}

	var allocator OrtAllocator
	if err := translateStatus(a, a.GetAllocatorWithDefaultOptions(&allocator)); err != nil {
		a.ReleaseSession(handle)
		return nil, err
	}

	s := &Session{api: a, handle: handle, allocator: allocator}
	if err := s.enumerateNames(); err != nil {
		a.ReleaseSession(handle)
		return nil, err
	}
	return s, nil
}

// enumerateNames queries input and output names once and caches them in both
// Go and C form. Allocator-returned buffers are copied and freed immediately.
func (s *Session) enumerateNames() error {
	inputCount, err := s.nameCount(s.api.SessionGetInputCount)
	if err != nil {
		return err
	}
	outputCount, err := s.nameCount(s.api.SessionGetOutputCount)
	if err != nil {
		return err
	}

	s.inputNames = make([]string, 0, inputCount)
	for i := 0; i < inputCount; i++ {
		name, err := s.nameAt(s.api.SessionGetInputName, i)
		if err != nil {
			return err
		}
		s.inputNames = append(s.inputNames, name)
	}

	s.outputNames = make([]string, 0, outputCount)
	for i := 0; i < outputCount; i++ {
		name, err := s.nameAt(s.api.SessionGetOutputName, i)
		if err != nil {
			return err
		}
		s.outputNames = append(s.outputNames, name)
	}

	s.inputNameBytes, s.inputNamePtrs = buildCstringArray(s.inputNames)
	s.outputNameBytes, s.outputNamePtrs = buildCstringArray(s.outputNames)
	return nil
}

func (s *Session) nameCount(query func(OrtSession, *uintptr) OrtStatus) (int, error) {
	var count uintptr
	if err := translateStatus(s.api, query(s.handle, &count)); err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *Session) nameAt(query func(OrtSession, uintptr, OrtAllocator, **byte) OrtStatus, index int) (string, error) {
	var namePtr *byte
	// #nosec G115 -- index is a non-negative loop counter
	if err := translateStatus(s.api, query(s.handle, uintptr(index), s.allocator, &namePtr)); err != nil {
		return "", err
	}
	if namePtr == nil {
		return "", &Error{Code: ErrorCodeFail, Message: "native layer returned a nil name pointer"}
	}
	// #nosec G103 -- Required for CGO-free FFI; the pointer originates from ORT.
	raw := uintptr(unsafe.Pointer(namePtr))
	name := CstringToGo(raw)
	s.api.AllocatorFree(s.allocator, raw)
	return name, nil
}

// buildCstringArray copies names into null-terminated buffers and collects
// first-byte pointers in the layout the native run calls expect.
func buildCstringArray(names []string) ([][]byte, []*byte) {
	if len(names) == 0 {
		return nil, nil
	}
	bufs := make([][]byte, len(names))
	ptrs := make([]*byte, len(names))
	for i, name := range names {
		bufs[i], ptrs[i] = GoToCstring(name)
	}
	return bufs, ptrs
}

// InputNames returns the model's input names in graph order. The returned
// slice is shared; callers must not modify it.
func (s *Session) InputNames() []string {
	return s.inputNames
}

// OutputNames returns the model's output names in graph order. The returned
// slice is shared; callers must not modify it.
func (s *Session) OutputNames() []string {
	return s.outputNames
}

// Handle returns the native session handle, or 0 after Destroy.
func (s *Session) Handle() OrtSession {
	if s == nil {
		return 0
	}
	return s.handle
}

// Run executes the model synchronously with default run options. Inputs are
// matched to input names by position. Outputs are freshly allocated by the
// native layer and owned by the caller; destroy each one when done.
func (s *Session) Run(inputs []Value) ([]*RawTensor, error) {
	return s.RunWithOptions(inputs, nil)
}

// RunWithOptions is Run with explicit run options (tag, terminate flag). A
// nil options runs with defaults.
func (s *Session) RunWithOptions(inputs []Value, opts *RunOptions) ([]*RawTensor, error) {
	inputHandles, outputHandles, err := s.prepareRun(inputs)
	if err != nil {
		return nil, err
	}

	status := s.api.Run(s.handle, opts.Handle(),
		unsafe.SliceData(s.inputNamePtrs), unsafe.SliceData(inputHandles), uintptr(len(inputHandles)),
		unsafe.SliceData(s.outputNamePtrs), uintptr(len(outputHandles)), unsafe.SliceData(outputHandles))
	runtime.KeepAlive(s.inputNameBytes)
	runtime.KeepAlive(s.outputNameBytes)
	runtime.KeepAlive(inputs)
	if err := translateStatus(s.api, status); err != nil {
		return nil, err
	}

	return wrapOwnedOutputs(s.api, outputHandles), nil
}

// prepareRun validates the input set and lays out the native handle arrays.
// Validation failures return before any native call is made.
func (s *Session) prepareRun(inputs []Value) ([]OrtValue, []OrtValue, error) {
	if s == nil || s.handle == 0 {
		return nil, nil, invalidArgumentError("session has been destroyed")
	}
	if len(inputs) != len(s.inputNames) {
		return nil, nil, invalidArgumentError("input count mismatch: got %d, model expects %d", len(inputs), len(s.inputNames))
	}

	inputHandles := make([]OrtValue, len(inputs))
	for i, input := range inputs {
		if input == nil {
			return nil, nil, invalidArgumentError("input %d (%s) is nil", i, s.inputNames[i])
		}
		h := input.ortValueHandle()
		if h == 0 {
			return nil, nil, invalidArgumentError("input %d (%s) has been destroyed", i, s.inputNames[i])
		}
		inputHandles[i] = h
	}

	// Zeroed handles ask the native layer to allocate the outputs.
	return inputHandles, make([]OrtValue, len(s.outputNames)), nil
}

// wrapOwnedOutputs wraps the run's output handles as caller-owned tensors.
// Optional outputs the model did not produce come back as null handles and
// stay nil in the result; slot positions still match the output names.
func wrapOwnedOutputs(a API, handles []OrtValue) []*RawTensor {
	outputs := make([]*RawTensor, len(handles))
	for i, h := range handles {
		if h == 0 {
			continue
		}
		outputs[i] = newRawTensor(a, h, true)
	}
	return outputs
}

// Destroy releases the native session handle. Safe to call more than once;
// in-flight runs must have completed.
func (s *Session) Destroy() error {
	if s == nil {
		return nil
	}

	if s.handle != 0 {
		s.api.ReleaseSession(s.handle)
		s.handle = 0
	}
	s.inputNames = nil
	s.outputNames = nil
	s.inputNameBytes = nil
	s.outputNameBytes = nil
	s.inputNamePtrs = nil
	s.outputNamePtrs = nil
	return nil
}
