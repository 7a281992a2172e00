package ort

import (
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"
)

// asyncRun holds everything a pending RunAsync call needs at completion time.
// It is registered in asyncRuns under an integer id; the id travels through
// the native layer as the user-data pointer, so no Go pointer ever crosses
// the boundary.
type asyncRun struct {
	api      API
	callback func([]*RawTensor, error)

	// Keep the native call arguments alive until the callback fires. The
	// session may become unreachable right after submission, so the entry
	// retains the name byte buffers and the pointer arrays over them; the
	// engine reads both from a worker thread for the whole run.
	inputHandles   []OrtValue
	outputHandles  []OrtValue
	inputs         []Value
	inputNames     [][]byte
	outputNames    [][]byte
	inputNamePtrs  []*byte
	outputNamePtrs []*byte
}

var (
	asyncRuns   sync.Map // uintptr id -> *asyncRun
	asyncNextID atomic.Uintptr

	asyncTrampolineOnce sync.Once
	asyncTrampoline     uintptr
)

// asyncCallbackTrampoline is the single native-callable completion entry
// point shared by every RunAsync call. Native signature:
//
//	void (*RunAsyncCallbackFn)(void* user_data, OrtValue** outputs,
//	                           size_t num_outputs, OrtStatusPtr status);
//
// purego.NewCallback allows a small fixed number of callback registrations
// per process, so the trampoline is created once and dispatches by id.
func asyncCallbackTrampoline() uintptr {
	asyncTrampolineOnce.Do(func() {
		asyncTrampoline = purego.NewCallback(func(userData uintptr, outputs uintptr, numOutputs uintptr, status uintptr) uintptr {
			finishAsyncRun(userData, OrtStatus(status))
			return 0
		})
	})
	return asyncTrampoline
}

// finishAsyncRun completes the async run registered under id: it translates
// the status, wraps the outputs, and invokes the user callback exactly once.
// Split from the trampoline so fakes can drive completion directly.
func finishAsyncRun(id uintptr, status OrtStatus) {
	value, ok := asyncRuns.LoadAndDelete(id)
	if !ok {
		// Duplicate or unknown completion. Nothing safe to do with it.
		return
	}
	run := value.(*asyncRun)

	if err := translateStatus(run.api, status); err != nil {
		run.callback(nil, err)
		return
	}

	run.callback(wrapOwnedOutputs(run.api, run.outputHandles), nil)
}

// RunAsync executes the model on the native intra-op thread pool and invokes
// callback exactly once when the run completes, from a native worker thread.
// The callback receives either the owned output tensors or the translated
// error. Inputs must stay valid until the callback has been invoked. A nil
// opts runs with defaults.
func (s *Session) RunAsync(inputs []Value, opts *RunOptions, callback func([]*RawTensor, error)) error {
	if callback == nil {
		return invalidArgumentError("callback cannot be nil")
	}

	inputHandles, outputHandles, err := s.prepareRun(inputs)
	if err != nil {
		return err
	}

	run := &asyncRun{
		api:            s.api,
		callback:       callback,
		inputHandles:   inputHandles,
		outputHandles:  outputHandles,
		inputs:         inputs,
		inputNames:     s.inputNameBytes,
		outputNames:    s.outputNameBytes,
		inputNamePtrs:  s.inputNamePtrs,
		outputNamePtrs: s.outputNamePtrs,
	}

	id := asyncNextID.Add(1)
	asyncRuns.Store(id, run)

	status := s.api.RunAsync(s.handle, opts.Handle(),
		unsafe.SliceData(s.inputNamePtrs), unsafe.SliceData(inputHandles), uintptr(len(inputHandles)),
		unsafe.SliceData(s.outputNamePtrs), uintptr(len(outputHandles)), unsafe.SliceData(outputHandles),
		asyncCallbackTrampoline(), id)
	runtime.KeepAlive(run)
	if err := translateStatus(s.api, status); err != nil {
		// Submission failed; the callback will never fire.
		asyncRuns.Delete(id)
		return err
	}
	return nil
}
