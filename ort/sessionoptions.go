package ort

// SessionOptions is a transient configuration object consumed by NewSession.
// It owns a native options handle that is destroyed together with the options
// (NewSession destroys internally-created defaults; caller-supplied options
// are destroyed by the caller, before or after session creation).
type SessionOptions struct {
	api    API
	env    *Environment
	handle OrtSessionOptions
}

// NewSessionOptions creates a native session-options handle.
func NewSessionOptions(env *Environment) (*SessionOptions, error) {
	opts, err := newSessionOptionsWithAPI(env.api)
	if err != nil {
		return nil, err
	}
	opts.env = env
	return opts, nil
}

func newSessionOptionsWithAPI(a API) (*SessionOptions, error) {
	var handle OrtSessionOptions
	if err := translateStatus(a, a.CreateSessionOptions(&handle)); err != nil {
		return nil, err
	}
	return &SessionOptions{api: a, handle: handle}, nil
}

// SetIntraOpNumThreads sets the thread count used within individual
// operators.
func (o *SessionOptions) SetIntraOpNumThreads(n int) error {
	if n < 0 {
		return invalidArgumentError("intra-op thread count cannot be negative: %d", n)
	}
	// #nosec G115 -- n is validated non-negative above
	return translateStatus(o.api, o.api.SetIntraOpNumThreads(o.handle, int32(n)))
}

// SetInterOpNumThreads sets the thread count used across operators.
func (o *SessionOptions) SetInterOpNumThreads(n int) error {
	if n < 0 {
		return invalidArgumentError("inter-op thread count cannot be negative: %d", n)
	}
	// #nosec G115 -- n is validated non-negative above
	return translateStatus(o.api, o.api.SetInterOpNumThreads(o.handle, int32(n)))
}

// SetGraphOptimizationLevel sets the graph optimization level.
func (o *SessionOptions) SetGraphOptimizationLevel(level GraphOptimizationLevel) error {
	switch level {
	case GraphOptimizationLevelDisableAll, GraphOptimizationLevelEnableBasic,
		GraphOptimizationLevelEnableExtended, GraphOptimizationLevelEnableLayout,
		GraphOptimizationLevelEnableAll:
	default:
		return invalidArgumentError("invalid graph optimization level: %d", level)
	}
	return translateStatus(o.api, o.api.SetSessionGraphOptimizationLevel(o.handle, int32(level)))
}

// SetMemPattern toggles the memory-pattern optimization.
func (o *SessionOptions) SetMemPattern(enabled bool) error {
	if enabled {
		return translateStatus(o.api, o.api.EnableMemPattern(o.handle))
	}
	return translateStatus(o.api, o.api.DisableMemPattern(o.handle))
}

// AppendExecutionProvider resolves the provider (auto becomes the platform
// default) and applies it to these options. CPU is a no-op; accelerator
// variants fail with InvalidArgument when the platform or the loaded library
// cannot serve them.
func (o *SessionOptions) AppendExecutionProvider(provider ExecutionProvider) error {
	return provider.Resolve().apply(o)
}

// Handle returns the native handle, or 0 after Destroy.
func (o *SessionOptions) Handle() OrtSessionOptions {
	if o == nil {
		return 0
	}
	return o.handle
}

// Destroy releases the native handle. Safe to call more than once.
func (o *SessionOptions) Destroy() error {
	if o == nil || o.handle == 0 {
		return nil
	}
	o.api.ReleaseSessionOptions(o.handle)
	o.handle = 0
	return nil
}
