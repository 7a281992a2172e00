package ort

import "runtime"

// RunOptions wraps per-invocation controls: a cooperative termination flag
// and an optional run tag. Its lifetime is independent of any Session; one
// RunOptions may be shared by several runs to terminate them together.
type RunOptions struct {
	api    API
	handle OrtRunOptions
}

// NewRunOptions creates a native run-options handle.
func NewRunOptions(env *Environment) (*RunOptions, error) {
	return newRunOptionsWithAPI(env.api)
}

func newRunOptionsWithAPI(a API) (*RunOptions, error) {
	var handle OrtRunOptions
	if err := translateStatus(a, a.CreateRunOptions(&handle)); err != nil {
		return nil, err
	}
	return &RunOptions{api: a, handle: handle}, nil
}

// SetTerminate requests cooperative termination of all in-flight runs that
// share this options object. Termination timing is at the engine's
// discretion; this does not forcibly abort anything.
func (o *RunOptions) SetTerminate() error {
	return translateStatus(o.api, o.api.RunOptionsSetTerminate(o.handle))
}

// UnsetTerminate clears the termination flag so the options can be reused.
func (o *RunOptions) UnsetTerminate() error {
	return translateStatus(o.api, o.api.RunOptionsUnsetTerminate(o.handle))
}

// SetTag sets the run tag used by the native layer for logging/profiling.
func (o *RunOptions) SetTag(tag string) error {
	tagBytes, tagPtr := GoToCstring(tag)
	status := o.api.RunOptionsSetRunTag(o.handle, tagPtr)
	runtime.KeepAlive(tagBytes)
	return translateStatus(o.api, status)
}

// Handle returns the native handle, or 0 after Destroy.
func (o *RunOptions) Handle() OrtRunOptions {
	if o == nil {
		return 0
	}
	return o.handle
}

// Destroy releases the native handle. Safe to call more than once.
func (o *RunOptions) Destroy() error {
	if o == nil || o.handle == 0 {
		return nil
	}
	o.api.ReleaseRunOptions(o.handle)
	o.handle = 0
	return nil
}
