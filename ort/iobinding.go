package ort

import (
	"runtime"
	"unsafe"
)

// IoBinding pre-binds named inputs and outputs to a session so the run hot
// path does zero name conversion and zero Go allocation. The binding holds a
// non-owning reference to its session; destroy the binding before the
// session. Bound values must outlive every Run that uses them.
type IoBinding struct {
	api     API
	handle  OrtIoBinding
	session OrtSession
}

// NewIoBinding creates a binding attached to the session.
func NewIoBinding(session *Session) (*IoBinding, error) {
	if session == nil || session.handle == 0 {
		return nil, invalidArgumentError("session is nil or destroyed")
	}

	var handle OrtIoBinding
	if err := translateStatus(session.api, session.api.CreateIoBinding(session.handle, &handle)); err != nil {
		return nil, err
	}
	return &IoBinding{api: session.api, handle: handle, session: session.handle}, nil
}

// BindInput binds a value to the named input. Rebinding the same name
// replaces the previous binding. The name conversion happens here, at bind
// time, so Run stays allocation-free.
func (b *IoBinding) BindInput(name string, value Value) error {
	return b.bind(name, value, b.api.BindInput)
}

// BindOutput binds a value to the named output. The native layer writes run
// results into the bound value's memory.
func (b *IoBinding) BindOutput(name string, value Value) error {
	return b.bind(name, value, b.api.BindOutput)
}

func (b *IoBinding) bind(name string, value Value, bindFn func(OrtIoBinding, *byte, OrtValue) OrtStatus) error {
	if b == nil || b.handle == 0 {
		return invalidArgumentError("binding has been destroyed")
	}
	if name == "" {
		return invalidArgumentError("binding name cannot be empty")
	}
	if value == nil || value.ortValueHandle() == 0 {
		return invalidArgumentError("value for %q is nil or destroyed", name)
	}

	nameBytes, namePtr := GoToCstring(name)
	status := bindFn(b.handle, namePtr, value.ortValueHandle())
	runtime.KeepAlive(nameBytes)
	return translateStatus(b.api, status)
}

// BindOutputToDevice binds the named output to a device described by
// memInfo, letting the native layer allocate it there at run time. Retrieve
// the result with GetOutputs.
func (b *IoBinding) BindOutputToDevice(name string, memInfo *MemoryInfo) error {
	if b == nil || b.handle == 0 {
		return invalidArgumentError("binding has been destroyed")
	}
	if name == "" {
		return invalidArgumentError("binding name cannot be empty")
	}
	if memInfo == nil || memInfo.handle == 0 {
		return invalidArgumentError("memory info for %q is nil or destroyed", name)
	}

	nameBytes, namePtr := GoToCstring(name)
	status := b.api.BindOutputToDevice(b.handle, namePtr, memInfo.handle)
	runtime.KeepAlive(nameBytes)
	return translateStatus(b.api, status)
}

// Run executes the session against the bound inputs and outputs. All name
// and handle marshalling happened at bind time, so a run with pre-bound
// tensors allocates nothing on the Go side. A nil opts runs with defaults.
func (b *IoBinding) Run(opts *RunOptions) error {
	if b == nil || b.handle == 0 {
		return invalidArgumentError("binding has been destroyed")
	}
	return translateStatus(b.api, b.api.RunWithBinding(b.session, opts.Handle(), b.handle))
}

// GetOutputs returns the currently bound output values in binding order. The
// returned tensors are views over the bound values' memory: each carries its
// own native reference, which the caller releases with Destroy. Destroying a
// view never frees the backing memory of a caller-bound tensor.
func (b *IoBinding) GetOutputs() ([]*RawTensor, error) {
	if b == nil || b.handle == 0 {
		return nil, invalidArgumentError("binding has been destroyed")
	}

	var allocator OrtAllocator
	if err := translateStatus(b.api, b.api.GetAllocatorWithDefaultOptions(&allocator)); err != nil {
		return nil, err
	}

	var valuesPtr *OrtValue
	var count uintptr
	if err := translateStatus(b.api, b.api.GetBoundOutputValues(b.handle, allocator, &valuesPtr, &count)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	if valuesPtr == nil {
		return nil, &Error{Code: ErrorCodeFail, Message: "native layer returned a nil output array"}
	}

	// #nosec G103 -- Required for CGO-free FFI; the array originates from ORT.
	handles := unsafe.Slice(valuesPtr, count)
	outputs := make([]*RawTensor, count)
	for i, h := range handles {
		outputs[i] = newRawTensor(b.api, h, false)
	}

	// The array buffer itself is allocator-owned and freed here; the value
	// handles inside it stay with the binding.
	// #nosec G103 -- freeing the allocator-owned array buffer.
	b.api.AllocatorFree(allocator, uintptr(unsafe.Pointer(valuesPtr)))
	return outputs, nil
}

// ClearInputs removes all input bindings.
func (b *IoBinding) ClearInputs() error {
	if b == nil || b.handle == 0 {
		return invalidArgumentError("binding has been destroyed")
	}
	b.api.ClearBoundInputs(b.handle)
	return nil
}

// ClearOutputs removes all output bindings and invalidates views returned by
// GetOutputs.
func (b *IoBinding) ClearOutputs() error {
	if b == nil || b.handle == 0 {
		return invalidArgumentError("binding has been destroyed")
	}
	b.api.ClearBoundOutputs(b.handle)
	return nil
}

// Destroy releases the native binding handle. The session is untouched. Safe
// to call more than once.
func (b *IoBinding) Destroy() error {
	if b == nil || b.handle == 0 {
		return nil
	}
	b.api.ReleaseIoBinding(b.handle)
	b.handle = 0
	return nil
}
