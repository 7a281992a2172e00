package ort

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// API is the versioned ONNX Runtime entry-point table, narrowed to the calls
// this binding consumes. Every wrapper object holds a non-owning reference to
// one API; the concrete instantiation backed by the shared library is built
// once per library path and is read-only afterwards. Tests substitute fakes.
type API interface {
	// Status
	GetErrorCode(status OrtStatus) int32
	GetErrorMessage(status OrtStatus) uintptr
	ReleaseStatus(status OrtStatus)

	// Environment
	CreateEnv(level LoggingLevel, logID *byte, out *OrtEnv) OrtStatus
	ReleaseEnv(env OrtEnv)
	EnableTelemetryEvents(env OrtEnv) OrtStatus
	DisableTelemetryEvents(env OrtEnv) OrtStatus

	// Session options
	CreateSessionOptions(out *OrtSessionOptions) OrtStatus
	SetIntraOpNumThreads(opts OrtSessionOptions, n int32) OrtStatus
	SetInterOpNumThreads(opts OrtSessionOptions, n int32) OrtStatus
	SetSessionGraphOptimizationLevel(opts OrtSessionOptions, level int32) OrtStatus
	EnableMemPattern(opts OrtSessionOptions) OrtStatus
	DisableMemPattern(opts OrtSessionOptions) OrtStatus
	ReleaseSessionOptions(opts OrtSessionOptions)

	// Session lifecycle and metadata
	CreateSession(env OrtEnv, modelPath uintptr, opts OrtSessionOptions, out *OrtSession) OrtStatus
	SessionGetInputCount(session OrtSession, out *uintptr) OrtStatus
	SessionGetOutputCount(session OrtSession, out *uintptr) OrtStatus
	SessionGetInputName(session OrtSession, index uintptr, allocator OrtAllocator, out **byte) OrtStatus
	SessionGetOutputName(session OrtSession, index uintptr, allocator OrtAllocator, out **byte) OrtStatus
	Run(session OrtSession, runOptions OrtRunOptions, inputNames **byte, inputs *OrtValue, inputCount uintptr,
		outputNames **byte, outputCount uintptr, outputs *OrtValue) OrtStatus
	RunAsync(session OrtSession, runOptions OrtRunOptions, inputNames **byte, inputs *OrtValue, inputCount uintptr,
		outputNames **byte, outputCount uintptr, outputs *OrtValue, callback uintptr, userData uintptr) OrtStatus
	ReleaseSession(session OrtSession)

	// Allocator
	GetAllocatorWithDefaultOptions(out *OrtAllocator) OrtStatus
	AllocatorFree(allocator OrtAllocator, p uintptr)

	// Memory info
	CreateMemoryInfo(name *byte, allocatorType AllocatorType, deviceID int32, memType MemType, out *OrtMemoryInfo) OrtStatus
	ReleaseMemoryInfo(memInfo OrtMemoryInfo)

	// Run options
	CreateRunOptions(out *OrtRunOptions) OrtStatus
	RunOptionsSetTerminate(opts OrtRunOptions) OrtStatus
	RunOptionsUnsetTerminate(opts OrtRunOptions) OrtStatus
	RunOptionsSetRunTag(opts OrtRunOptions, tag *byte) OrtStatus
	ReleaseRunOptions(opts OrtRunOptions)

	// Values
	CreateTensorWithDataAsOrtValue(memInfo OrtMemoryInfo, data uintptr, dataBytes uintptr,
		shape *int64, rank uintptr, elementType TensorElementDataType, out *OrtValue) OrtStatus
	CreateTensorAsOrtValue(allocator OrtAllocator, shape *int64, rank uintptr,
		elementType TensorElementDataType, out *OrtValue) OrtStatus
	GetTensorMutableData(value OrtValue, out *uintptr) OrtStatus
	GetTensorTypeAndShape(value OrtValue, out *OrtTensorTypeAndShapeInfo) OrtStatus
	GetTensorElementType(info OrtTensorTypeAndShapeInfo, out *TensorElementDataType) OrtStatus
	GetDimensionsCount(info OrtTensorTypeAndShapeInfo, out *uintptr) OrtStatus
	GetDimensions(info OrtTensorTypeAndShapeInfo, out *int64, count uintptr) OrtStatus
	GetTensorShapeElementCount(info OrtTensorTypeAndShapeInfo, out *uintptr) OrtStatus
	ReleaseTensorTypeAndShapeInfo(info OrtTensorTypeAndShapeInfo)
	ReleaseValue(value OrtValue)

	// IO binding
	CreateIoBinding(session OrtSession, out *OrtIoBinding) OrtStatus
	BindInput(binding OrtIoBinding, name *byte, value OrtValue) OrtStatus
	BindOutput(binding OrtIoBinding, name *byte, value OrtValue) OrtStatus
	BindOutputToDevice(binding OrtIoBinding, name *byte, memInfo OrtMemoryInfo) OrtStatus
	GetBoundOutputValues(binding OrtIoBinding, allocator OrtAllocator, out **OrtValue, count *uintptr) OrtStatus
	ClearBoundInputs(binding OrtIoBinding)
	ClearBoundOutputs(binding OrtIoBinding)
	RunWithBinding(session OrtSession, runOptions OrtRunOptions, binding OrtIoBinding) OrtStatus
	ReleaseIoBinding(binding OrtIoBinding)
}

// liveAPI is the concrete API backed by the loaded shared library. Fields are
// populated once by purego.RegisterFunc and never mutated afterwards.
type liveAPI struct {
	getErrorCode    func(OrtStatus) int32
	getErrorMessage func(OrtStatus) uintptr
	releaseStatus   func(OrtStatus)

	createEnv              func(LoggingLevel, *byte, *OrtEnv) OrtStatus
	releaseEnv             func(OrtEnv)
	enableTelemetryEvents  func(OrtEnv) OrtStatus
	disableTelemetryEvents func(OrtEnv) OrtStatus

	createSessionOptions             func(*OrtSessionOptions) OrtStatus
	setIntraOpNumThreads             func(OrtSessionOptions, int32) OrtStatus
	setInterOpNumThreads             func(OrtSessionOptions, int32) OrtStatus
	setSessionGraphOptimizationLevel func(OrtSessionOptions, int32) OrtStatus
	enableMemPattern                 func(OrtSessionOptions) OrtStatus
	disableMemPattern                func(OrtSessionOptions) OrtStatus
	releaseSessionOptions            func(OrtSessionOptions)

	createSession         func(OrtEnv, uintptr, OrtSessionOptions, *OrtSession) OrtStatus
	sessionGetInputCount  func(OrtSession, *uintptr) OrtStatus
	sessionGetOutputCount func(OrtSession, *uintptr) OrtStatus
	sessionGetInputName   func(OrtSession, uintptr, OrtAllocator, **byte) OrtStatus
	sessionGetOutputName  func(OrtSession, uintptr, OrtAllocator, **byte) OrtStatus
	run                   func(OrtSession, OrtRunOptions, **byte, *OrtValue, uintptr, **byte, uintptr, *OrtValue) OrtStatus
	runAsync              func(OrtSession, OrtRunOptions, **byte, *OrtValue, uintptr, **byte, uintptr, *OrtValue, uintptr, uintptr) OrtStatus
	releaseSession        func(OrtSession)

	getAllocatorWithDefaultOptions func(*OrtAllocator) OrtStatus
	allocatorFree                  func(OrtAllocator, uintptr)

	createMemoryInfo  func(*byte, AllocatorType, int32, MemType, *OrtMemoryInfo) OrtStatus
	releaseMemoryInfo func(OrtMemoryInfo)

	createRunOptions         func(*OrtRunOptions) OrtStatus
	runOptionsSetTerminate   func(OrtRunOptions) OrtStatus
	runOptionsUnsetTerminate func(OrtRunOptions) OrtStatus
	runOptionsSetRunTag      func(OrtRunOptions, *byte) OrtStatus
	releaseRunOptions        func(OrtRunOptions)

	createTensorWithDataAsOrtValue func(OrtMemoryInfo, uintptr, uintptr, *int64, uintptr, TensorElementDataType, *OrtValue) OrtStatus
	createTensorAsOrtValue         func(OrtAllocator, *int64, uintptr, TensorElementDataType, *OrtValue) OrtStatus
	getTensorMutableData           func(OrtValue, *uintptr) OrtStatus
	getTensorTypeAndShape          func(OrtValue, *OrtTensorTypeAndShapeInfo) OrtStatus
	getTensorElementType           func(OrtTensorTypeAndShapeInfo, *TensorElementDataType) OrtStatus
	getDimensionsCount             func(OrtTensorTypeAndShapeInfo, *uintptr) OrtStatus
	getDimensions                  func(OrtTensorTypeAndShapeInfo, *int64, uintptr) OrtStatus
	getTensorShapeElementCount     func(OrtTensorTypeAndShapeInfo, *uintptr) OrtStatus
	releaseTensorTypeAndShapeInfo  func(OrtTensorTypeAndShapeInfo)
	releaseValue                   func(OrtValue)

	createIoBinding      func(OrtSession, *OrtIoBinding) OrtStatus
	bindInput            func(OrtIoBinding, *byte, OrtValue) OrtStatus
	bindOutput           func(OrtIoBinding, *byte, OrtValue) OrtStatus
	bindOutputToDevice   func(OrtIoBinding, *byte, OrtMemoryInfo) OrtStatus
	getBoundOutputValues func(OrtIoBinding, OrtAllocator, **OrtValue, *uintptr) OrtStatus
	clearBoundInputs     func(OrtIoBinding)
	clearBoundOutputs    func(OrtIoBinding)
	runWithBinding       func(OrtSession, OrtRunOptions, OrtIoBinding) OrtStatus
	releaseIoBinding     func(OrtIoBinding)
}

// loadedLibrary pairs a dlopen handle with the API table obtained from it,
// plus the base table for version queries.
type loadedLibrary struct {
	handle  uintptr
	api     *liveAPI
	version string
}

var (
	loadedMu   sync.Mutex
	loadedLibs = map[string]*loadedLibrary{}
)

// loadLibraryAPI obtains the entry-point table for the shared library at
// path. Acquisition is process-wide and idempotent: the same path always
// yields the same loadedLibrary, and the library is never dlclosed while the
// process lives. All failure modes wrap ErrAPIUnavailable.
func loadLibraryAPI(path string) (*loadedLibrary, error) {
	loadedMu.Lock()
	defer loadedMu.Unlock()

	if lib, ok := loadedLibs[path]; ok {
		return lib, nil
	}

	handle, err := loadLibrary(path)
	if err != nil || handle == 0 {
		return nil, fmt.Errorf("%w: failed to load %q: %v", ErrAPIUnavailable, path, err)
	}

	sym, err := getSymbol(handle, "OrtGetApiBase")
	if err != nil || sym == 0 {
		return nil, fmt.Errorf("%w: OrtGetApiBase not found in %q: %v", ErrAPIUnavailable, path, err)
	}

	var ortGetAPIBase func() *ortAPIBase
	purego.RegisterFunc(&ortGetAPIBase, sym)
	base := ortGetAPIBase()
	if base == nil {
		return nil, fmt.Errorf("%w: OrtGetApiBase returned nil", ErrAPIUnavailable)
	}

	var getAPI func(uint32) unsafe.Pointer
	purego.RegisterFunc(&getAPI, base.GetApi)
	tablePtr := getAPI(ortAPIVersion)
	if tablePtr == nil {
		return nil, fmt.Errorf("%w: library %q does not provide API version %d", ErrAPIUnavailable, path, ortAPIVersion)
	}

	var getVersionString func() uintptr
	purego.RegisterFunc(&getVersionString, base.GetVersionString)
	version := CstringToGo(getVersionString())

	lib := &loadedLibrary{
		handle:  handle,
		api:     registerAPI((*ortAPITable)(tablePtr)),
		version: version,
	}
	loadedLibs[path] = lib
	return lib, nil
}

// registerAPI builds the concrete API from a raw function-pointer table.
func registerAPI(table *ortAPITable) *liveAPI {
	a := &liveAPI{}

	purego.RegisterFunc(&a.getErrorCode, table.GetErrorCode)
	purego.RegisterFunc(&a.getErrorMessage, table.GetErrorMessage)
	purego.RegisterFunc(&a.releaseStatus, table.ReleaseStatus)

	purego.RegisterFunc(&a.createEnv, table.CreateEnv)
	purego.RegisterFunc(&a.releaseEnv, table.ReleaseEnv)
	purego.RegisterFunc(&a.enableTelemetryEvents, table.EnableTelemetryEvents)
	purego.RegisterFunc(&a.disableTelemetryEvents, table.DisableTelemetryEvents)

	purego.RegisterFunc(&a.createSessionOptions, table.CreateSessionOptions)
	purego.RegisterFunc(&a.setIntraOpNumThreads, table.SetIntraOpNumThreads)
	purego.RegisterFunc(&a.setInterOpNumThreads, table.SetInterOpNumThreads)
	purego.RegisterFunc(&a.setSessionGraphOptimizationLevel, table.SetSessionGraphOptimizationLevel)
	purego.RegisterFunc(&a.enableMemPattern, table.EnableMemPattern)
	purego.RegisterFunc(&a.disableMemPattern, table.DisableMemPattern)
	purego.RegisterFunc(&a.releaseSessionOptions, table.ReleaseSessionOptions)

	purego.RegisterFunc(&a.createSession, table.CreateSession)
	purego.RegisterFunc(&a.sessionGetInputCount, table.SessionGetInputCount)
	purego.RegisterFunc(&a.sessionGetOutputCount, table.SessionGetOutputCount)
	purego.RegisterFunc(&a.sessionGetInputName, table.SessionGetInputName)
	purego.RegisterFunc(&a.sessionGetOutputName, table.SessionGetOutputName)
	purego.RegisterFunc(&a.run, table.Run)
	purego.RegisterFunc(&a.runAsync, table.RunAsync)
	purego.RegisterFunc(&a.releaseSession, table.ReleaseSession)

	purego.RegisterFunc(&a.getAllocatorWithDefaultOptions, table.GetAllocatorWithDefaultOptions)
	purego.RegisterFunc(&a.allocatorFree, table.AllocatorFree)

	purego.RegisterFunc(&a.createMemoryInfo, table.CreateMemoryInfo)
	purego.RegisterFunc(&a.releaseMemoryInfo, table.ReleaseMemoryInfo)

	purego.RegisterFunc(&a.createRunOptions, table.CreateRunOptions)
	purego.RegisterFunc(&a.runOptionsSetTerminate, table.RunOptionsSetTerminate)
	purego.RegisterFunc(&a.runOptionsUnsetTerminate, table.RunOptionsUnsetTerminate)
	purego.RegisterFunc(&a.runOptionsSetRunTag, table.RunOptionsSetRunTag)
	purego.RegisterFunc(&a.releaseRunOptions, table.ReleaseRunOptions)

	purego.RegisterFunc(&a.createTensorWithDataAsOrtValue, table.CreateTensorWithDataAsOrtValue)
	purego.RegisterFunc(&a.createTensorAsOrtValue, table.CreateTensorAsOrtValue)
	purego.RegisterFunc(&a.getTensorMutableData, table.GetTensorMutableData)
	purego.RegisterFunc(&a.getTensorTypeAndShape, table.GetTensorTypeAndShape)
	purego.RegisterFunc(&a.getTensorElementType, table.GetTensorElementType)
	purego.RegisterFunc(&a.getDimensionsCount, table.GetDimensionsCount)
	purego.RegisterFunc(&a.getDimensions, table.GetDimensions)
	purego.RegisterFunc(&a.getTensorShapeElementCount, table.GetTensorShapeElementCount)
	purego.RegisterFunc(&a.releaseTensorTypeAndShapeInfo, table.ReleaseTensorTypeAndShapeInfo)
	purego.RegisterFunc(&a.releaseValue, table.ReleaseValue)

	purego.RegisterFunc(&a.createIoBinding, table.CreateIoBinding)
	purego.RegisterFunc(&a.bindInput, table.BindInput)
	purego.RegisterFunc(&a.bindOutput, table.BindOutput)
	purego.RegisterFunc(&a.bindOutputToDevice, table.BindOutputToDevice)
	purego.RegisterFunc(&a.getBoundOutputValues, table.GetBoundOutputValues)
	purego.RegisterFunc(&a.clearBoundInputs, table.ClearBoundInputs)
	purego.RegisterFunc(&a.clearBoundOutputs, table.ClearBoundOutputs)
	purego.RegisterFunc(&a.runWithBinding, table.RunWithBinding)
	purego.RegisterFunc(&a.releaseIoBinding, table.ReleaseIoBinding)

	return a
}

func (a *liveAPI) GetErrorCode(status OrtStatus) int32      { return a.getErrorCode(status) }
func (a *liveAPI) GetErrorMessage(status OrtStatus) uintptr { return a.getErrorMessage(status) }
func (a *liveAPI) ReleaseStatus(status OrtStatus)           { a.releaseStatus(status) }

func (a *liveAPI) CreateEnv(level LoggingLevel, logID *byte, out *OrtEnv) OrtStatus {
	return a.createEnv(level, logID, out)
}
func (a *liveAPI) ReleaseEnv(env OrtEnv)                       { a.releaseEnv(env) }
func (a *liveAPI) EnableTelemetryEvents(env OrtEnv) OrtStatus  { return a.enableTelemetryEvents(env) }
func (a *liveAPI) DisableTelemetryEvents(env OrtEnv) OrtStatus { return a.disableTelemetryEvents(env) }

func (a *liveAPI) CreateSessionOptions(out *OrtSessionOptions) OrtStatus {
	return a.createSessionOptions(out)
}
func (a *liveAPI) SetIntraOpNumThreads(opts OrtSessionOptions, n int32) OrtStatus {
	return a.setIntraOpNumThreads(opts, n)
}
func (a *liveAPI) SetInterOpNumThreads(opts OrtSessionOptions, n int32) OrtStatus {
	return a.setInterOpNumThreads(opts, n)
}
func (a *liveAPI) SetSessionGraphOptimizationLevel(opts OrtSessionOptions, level int32) OrtStatus {
	return a.setSessionGraphOptimizationLevel(opts, level)
}
func (a *liveAPI) EnableMemPattern(opts OrtSessionOptions) OrtStatus {
	return a.enableMemPattern(opts)
}
func (a *liveAPI) DisableMemPattern(opts OrtSessionOptions) OrtStatus {
	return a.disableMemPattern(opts)
}
func (a *liveAPI) ReleaseSessionOptions(opts OrtSessionOptions) { a.releaseSessionOptions(opts) }

func (a *liveAPI) CreateSession(env OrtEnv, modelPath uintptr, opts OrtSessionOptions, out *OrtSession) OrtStatus {
	return a.createSession(env, modelPath, opts, out)
}
func (a *liveAPI) SessionGetInputCount(session OrtSession, out *uintptr) OrtStatus {
	return a.sessionGetInputCount(session, out)
}
func (a *liveAPI) SessionGetOutputCount(session OrtSession, out *uintptr) OrtStatus {
	return a.sessionGetOutputCount(session, out)
}
func (a *liveAPI) SessionGetInputName(session OrtSession, index uintptr, allocator OrtAllocator, out **byte) OrtStatus {
	return a.sessionGetInputName(session, index, allocator, out)
}
func (a *liveAPI) SessionGetOutputName(session OrtSession, index uintptr, allocator OrtAllocator, out **byte) OrtStatus {
	return a.sessionGetOutputName(session, index, allocator, out)
}
func (a *liveAPI) Run(session OrtSession, runOptions OrtRunOptions, inputNames **byte, inputs *OrtValue, inputCount uintptr,
	outputNames **byte, outputCount uintptr, outputs *OrtValue) OrtStatus {
	return a.run(session, runOptions, inputNames, inputs, inputCount, outputNames, outputCount, outputs)
}
func (a *liveAPI) RunAsync(session OrtSession, runOptions OrtRunOptions, inputNames **byte, inputs *OrtValue, inputCount uintptr,
	outputNames **byte, outputCount uintptr, outputs *OrtValue, callback uintptr, userData uintptr) OrtStatus {
	return a.runAsync(session, runOptions, inputNames, inputs, inputCount, outputNames, outputCount, outputs, callback, userData)
}
func (a *liveAPI) ReleaseSession(session OrtSession) { a.releaseSession(session) }

func (a *liveAPI) GetAllocatorWithDefaultOptions(out *OrtAllocator) OrtStatus {
	return a.getAllocatorWithDefaultOptions(out)
}
func (a *liveAPI) AllocatorFree(allocator OrtAllocator, p uintptr) { a.allocatorFree(allocator, p) }

func (a *liveAPI) CreateMemoryInfo(name *byte, allocatorType AllocatorType, deviceID int32, memType MemType, out *OrtMemoryInfo) OrtStatus {
	return a.createMemoryInfo(name, allocatorType, deviceID, memType, out)
}
func (a *liveAPI) ReleaseMemoryInfo(memInfo OrtMemoryInfo) { a.releaseMemoryInfo(memInfo) }

func (a *liveAPI) CreateRunOptions(out *OrtRunOptions) OrtStatus { return a.createRunOptions(out) }
func (a *liveAPI) RunOptionsSetTerminate(opts OrtRunOptions) OrtStatus {
	return a.runOptionsSetTerminate(opts)
}
func (a *liveAPI) RunOptionsUnsetTerminate(opts OrtRunOptions) OrtStatus {
	return a.runOptionsUnsetTerminate(opts)
}
func (a *liveAPI) RunOptionsSetRunTag(opts OrtRunOptions, tag *byte) OrtStatus {
	return a.runOptionsSetRunTag(opts, tag)
}
func (a *liveAPI) ReleaseRunOptions(opts OrtRunOptions) { a.releaseRunOptions(opts) }

func (a *liveAPI) CreateTensorWithDataAsOrtValue(memInfo OrtMemoryInfo, data uintptr, dataBytes uintptr,
	shape *int64, rank uintptr, elementType TensorElementDataType, out *OrtValue) OrtStatus {
	return a.createTensorWithDataAsOrtValue(memInfo, data, dataBytes, shape, rank, elementType, out)
}
func (a *liveAPI) CreateTensorAsOrtValue(allocator OrtAllocator, shape *int64, rank uintptr,
	elementType TensorElementDataType, out *OrtValue) OrtStatus {
	return a.createTensorAsOrtValue(allocator, shape, rank, elementType, out)
}
func (a *liveAPI) GetTensorMutableData(value OrtValue, out *uintptr) OrtStatus {
	return a.getTensorMutableData(value, out)
}
func (a *liveAPI) GetTensorTypeAndShape(value OrtValue, out *OrtTensorTypeAndShapeInfo) OrtStatus {
	return a.getTensorTypeAndShape(value, out)
}
func (a *liveAPI) GetTensorElementType(info OrtTensorTypeAndShapeInfo, out *TensorElementDataType) OrtStatus {
	return a.getTensorElementType(info, out)
}
func (a *liveAPI) GetDimensionsCount(info OrtTensorTypeAndShapeInfo, out *uintptr) OrtStatus {
	return a.getDimensionsCount(info, out)
}
func (a *liveAPI) GetDimensions(info OrtTensorTypeAndShapeInfo, out *int64, count uintptr) OrtStatus {
	return a.getDimensions(info, out, count)
}
func (a *liveAPI) GetTensorShapeElementCount(info OrtTensorTypeAndShapeInfo, out *uintptr) OrtStatus {
	return a.getTensorShapeElementCount(info, out)
}
func (a *liveAPI) ReleaseTensorTypeAndShapeInfo(info OrtTensorTypeAndShapeInfo) {
	a.releaseTensorTypeAndShapeInfo(info)
}
func (a *liveAPI) ReleaseValue(value OrtValue) { a.releaseValue(value) }

func (a *liveAPI) CreateIoBinding(session OrtSession, out *OrtIoBinding) OrtStatus {
	return a.createIoBinding(session, out)
}
func (a *liveAPI) BindInput(binding OrtIoBinding, name *byte, value OrtValue) OrtStatus {
	return a.bindInput(binding, name, value)
}
func (a *liveAPI) BindOutput(binding OrtIoBinding, name *byte, value OrtValue) OrtStatus {
	return a.bindOutput(binding, name, value)
}
func (a *liveAPI) BindOutputToDevice(binding OrtIoBinding, name *byte, memInfo OrtMemoryInfo) OrtStatus {
	return a.bindOutputToDevice(binding, name, memInfo)
}
func (a *liveAPI) GetBoundOutputValues(binding OrtIoBinding, allocator OrtAllocator, out **OrtValue, count *uintptr) OrtStatus {
	return a.getBoundOutputValues(binding, allocator, out, count)
}
func (a *liveAPI) ClearBoundInputs(binding OrtIoBinding)  { a.clearBoundInputs(binding) }
func (a *liveAPI) ClearBoundOutputs(binding OrtIoBinding) { a.clearBoundOutputs(binding) }
func (a *liveAPI) RunWithBinding(session OrtSession, runOptions OrtRunOptions, binding OrtIoBinding) OrtStatus {
	return a.runWithBinding(session, runOptions, binding)
}
func (a *liveAPI) ReleaseIoBinding(binding OrtIoBinding) { a.releaseIoBinding(binding) }
