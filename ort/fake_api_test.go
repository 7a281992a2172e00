package ort

import (
	"fmt"
	"testing"
	"unsafe"
)

// fakeFailure is a status injected into one call of a fake method.
type fakeFailure struct {
	code    ErrorCode
	message string
}

// fakeStatusRecord tracks one status handle handed out by the fake, so tests
// can assert it was queried and released exactly once.
type fakeStatusRecord struct {
	code     int32
	message  []byte // null-terminated
	releases int
}

// fakeTensorSpec configures one output value the fake engine produces. A
// null spec makes the engine leave the output handle at zero, the way the
// real engine reports an optional output it did not produce.
type fakeTensorSpec struct {
	elementType TensorElementDataType
	shape       Shape
	byteSize    int
	null        bool
}

// fakeTensor is the fake engine's record of one live value handle.
type fakeTensor struct {
	elementType TensorElementDataType
	shape       Shape
	data        []byte  // engine-allocated backing, when any
	dataPtr     uintptr // caller-supplied backing, when any
	released    int
}

// fakeAPI is an in-memory entry-point table. It hands out opaque handles,
// tracks create/release pairing, and lets tests inject failures per method.
type fakeAPI struct {
	calls  map[string]int
	failOn map[string]fakeFailure

	nextHandle uintptr

	statuses map[OrtStatus]*fakeStatusRecord

	envs        map[OrtEnv]bool
	sessionOpts map[OrtSessionOptions]bool
	sessions    map[OrtSession]bool
	memInfos    map[OrtMemoryInfo]bool
	runOpts     map[OrtRunOptions]bool
	bindings    map[OrtIoBinding]bool
	values      map[OrtValue]*fakeTensor
	infos       map[OrtTensorTypeAndShapeInfo]OrtValue

	doubleReleases []string

	allocator   OrtAllocator
	nameBuffers map[uintptr][]byte
	valueArrays map[uintptr][]OrtValue

	modelInputNames  []string
	modelOutputNames []string
	runOutputs       []fakeTensorSpec

	lastRunInputs []OrtValue

	boundInputNames  []string
	boundOutputNames []string
	boundOutputs     []OrtValue
	engineBound      map[OrtValue]bool

	// When set, RunAsync fills the output array and completes the run
	// inline instead of leaving it pending.
	completeAsyncInline bool
	asyncFailure        *fakeFailure

	intraOpThreads    int32
	interOpThreads    int32
	optimizationLevel int32
	memPattern        bool
	terminateSet      bool
	runTag            string
	telemetryEnabled  bool
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		calls:       map[string]int{},
		failOn:      map[string]fakeFailure{},
		statuses:    map[OrtStatus]*fakeStatusRecord{},
		envs:        map[OrtEnv]bool{},
		sessionOpts: map[OrtSessionOptions]bool{},
		sessions:    map[OrtSession]bool{},
		memInfos:    map[OrtMemoryInfo]bool{},
		runOpts:     map[OrtRunOptions]bool{},
		bindings:    map[OrtIoBinding]bool{},
		values:      map[OrtValue]*fakeTensor{},
		infos:       map[OrtTensorTypeAndShapeInfo]OrtValue{},
		nameBuffers: map[uintptr][]byte{},
		valueArrays: map[uintptr][]OrtValue{},
		engineBound: map[OrtValue]bool{},

		modelInputNames:  []string{"input"},
		modelOutputNames: []string{"output"},
	}
	f.allocator = OrtAllocator(f.next())
	return f
}

func (f *fakeAPI) next() uintptr {
	f.nextHandle++
	return f.nextHandle
}

// failNext makes the next call to method return an error status.
func (f *fakeAPI) failNext(method string, code ErrorCode, message string) {
	f.failOn[method] = fakeFailure{code: code, message: message}
}

func (f *fakeAPI) newStatus(code ErrorCode, message string) OrtStatus {
	h := OrtStatus(f.next())
	f.statuses[h] = &fakeStatusRecord{
		code:    int32(code),
		message: append([]byte(message), 0),
	}
	return h
}

// enter counts the call and returns an injected failure status, if any.
func (f *fakeAPI) enter(method string) OrtStatus {
	f.calls[method]++
	if fail, ok := f.failOn[method]; ok {
		delete(f.failOn, method)
		return f.newStatus(fail.code, fail.message)
	}
	return 0
}

func (f *fakeAPI) releaseFrom(kind string, alive bool) bool {
	if !alive {
		f.doubleReleases = append(f.doubleReleases, kind)
	}
	return alive
}

// checkClean fails the test if any handle is still live or was released
// twice. Status handles must have been released exactly once each.
func (f *fakeAPI) checkClean(t *testing.T) {
	t.Helper()
	if len(f.doubleReleases) > 0 {
		t.Errorf("double releases: %v", f.doubleReleases)
	}
	for h, st := range f.statuses {
		if st.releases != 1 {
			t.Errorf("status %d released %d times, want 1", h, st.releases)
		}
	}
	if n := len(f.envs); n != 0 {
		t.Errorf("%d environment handles leaked", n)
	}
	if n := len(f.sessionOpts); n != 0 {
		t.Errorf("%d session options handles leaked", n)
	}
	if n := len(f.sessions); n != 0 {
		t.Errorf("%d session handles leaked", n)
	}
	if n := len(f.memInfos); n != 0 {
		t.Errorf("%d memory info handles leaked", n)
	}
	if n := len(f.runOpts); n != 0 {
		t.Errorf("%d run options handles leaked", n)
	}
	if n := len(f.bindings); n != 0 {
		t.Errorf("%d binding handles leaked", n)
	}
	for h, v := range f.values {
		if v.released == 0 {
			t.Errorf("value %d never released", h)
		}
		if v.released > 1 {
			t.Errorf("value %d released %d times", h, v.released)
		}
	}
	if n := len(f.infos); n != 0 {
		t.Errorf("%d type/shape info handles leaked", n)
	}
	if n := len(f.nameBuffers); n != 0 {
		t.Errorf("%d allocator name buffers never freed", n)
	}
	if n := len(f.valueArrays); n != 0 {
		t.Errorf("%d allocator value arrays never freed", n)
	}
}

// Status

func (f *fakeAPI) GetErrorCode(status OrtStatus) int32 {
	f.calls["GetErrorCode"]++
	return f.statuses[status].code
}

func (f *fakeAPI) GetErrorMessage(status OrtStatus) uintptr {
	f.calls["GetErrorMessage"]++
	// #nosec G103 -- test fake handing its own buffer back
	return uintptr(unsafe.Pointer(&f.statuses[status].message[0]))
}

func (f *fakeAPI) ReleaseStatus(status OrtStatus) {
	f.calls["ReleaseStatus"]++
	f.statuses[status].releases++
}

// Environment

func (f *fakeAPI) CreateEnv(level LoggingLevel, logID *byte, out *OrtEnv) OrtStatus {
	if st := f.enter("CreateEnv"); st != 0 {
		return st
	}
	h := OrtEnv(f.next())
	f.envs[h] = true
	*out = h
	return 0
}

func (f *fakeAPI) ReleaseEnv(env OrtEnv) {
	f.calls["ReleaseEnv"]++
	if f.releaseFrom("env", f.envs[env]) {
		delete(f.envs, env)
	}
}

func (f *fakeAPI) EnableTelemetryEvents(env OrtEnv) OrtStatus {
	if st := f.enter("EnableTelemetryEvents"); st != 0 {
		return st
	}
	f.telemetryEnabled = true
	return 0
}

func (f *fakeAPI) DisableTelemetryEvents(env OrtEnv) OrtStatus {
	if st := f.enter("DisableTelemetryEvents"); st != 0 {
		return st
	}
	f.telemetryEnabled = false
	return 0
}

// Session options

func (f *fakeAPI) CreateSessionOptions(out *OrtSessionOptions) OrtStatus {
	if st := f.enter("CreateSessionOptions"); st != 0 {
		return st
	}
	h := OrtSessionOptions(f.next())
	f.sessionOpts[h] = true
	*out = h
	return 0
}

func (f *fakeAPI) SetIntraOpNumThreads(opts OrtSessionOptions, n int32) OrtStatus {
	if st := f.enter("SetIntraOpNumThreads"); st != 0 {
		return st
	}
	f.intraOpThreads = n
	return 0
}

func (f *fakeAPI) SetInterOpNumThreads(opts OrtSessionOptions, n int32) OrtStatus {
	if st := f.enter("SetInterOpNumThreads"); st != 0 {
		return st
	}
	f.interOpThreads = n
	return 0
}

func (f *fakeAPI) SetSessionGraphOptimizationLevel(opts OrtSessionOptions, level int32) OrtStatus {
	if st := f.enter("SetSessionGraphOptimizationLevel"); st != 0 {
		return st
	}
	f.optimizationLevel = level
	return 0
}

func (f *fakeAPI) EnableMemPattern(opts OrtSessionOptions) OrtStatus {
	if st := f.enter("EnableMemPattern"); st != 0 {
		return st
	}
	f.memPattern = true
	return 0
}

func (f *fakeAPI) DisableMemPattern(opts OrtSessionOptions) OrtStatus {
	if st := f.enter("DisableMemPattern"); st != 0 {
		return st
	}
	f.memPattern = false
	return 0
}

func (f *fakeAPI) ReleaseSessionOptions(opts OrtSessionOptions) {
	f.calls["ReleaseSessionOptions"]++
	if f.releaseFrom("sessionOptions", f.sessionOpts[opts]) {
		delete(f.sessionOpts, opts)
	}
}

// Session

func (f *fakeAPI) CreateSession(env OrtEnv, modelPath uintptr, opts OrtSessionOptions, out *OrtSession) OrtStatus {
	if st := f.enter("CreateSession"); st != 0 {
		return st
	}
	if modelPath == 0 {
		return f.newStatus(ErrorCodeNoSuchFile, "nil model path")
	}
	h := OrtSession(f.next())
	f.sessions[h] = true
	*out = h
	return 0
}

func (f *fakeAPI) SessionGetInputCount(session OrtSession, out *uintptr) OrtStatus {
	if st := f.enter("SessionGetInputCount"); st != 0 {
		return st
	}
	*out = uintptr(len(f.modelInputNames))
	return 0
}

func (f *fakeAPI) SessionGetOutputCount(session OrtSession, out *uintptr) OrtStatus {
	if st := f.enter("SessionGetOutputCount"); st != 0 {
		return st
	}
	*out = uintptr(len(f.modelOutputNames))
	return 0
}

func (f *fakeAPI) allocName(name string, out **byte) {
	buf := append([]byte(name), 0)
	// #nosec G103 -- test fake handing its own buffer back
	f.nameBuffers[uintptr(unsafe.Pointer(&buf[0]))] = buf
	*out = &buf[0]
}

func (f *fakeAPI) SessionGetInputName(session OrtSession, index uintptr, allocator OrtAllocator, out **byte) OrtStatus {
	if st := f.enter("SessionGetInputName"); st != 0 {
		return st
	}
	if int(index) >= len(f.modelInputNames) {
		return f.newStatus(ErrorCodeInvalidArgument, "input index out of range")
	}
	f.allocName(f.modelInputNames[index], out)
	return 0
}

func (f *fakeAPI) SessionGetOutputName(session OrtSession, index uintptr, allocator OrtAllocator, out **byte) OrtStatus {
	if st := f.enter("SessionGetOutputName"); st != 0 {
		return st
	}
	if int(index) >= len(f.modelOutputNames) {
		return f.newStatus(ErrorCodeInvalidArgument, "output index out of range")
	}
	f.allocName(f.modelOutputNames[index], out)
	return 0
}

// makeRunOutput materializes the i-th configured output value.
func (f *fakeAPI) makeRunOutput(i int) OrtValue {
	spec := fakeTensorSpec{elementType: TensorElementDataTypeFloat, shape: Shape{1}, byteSize: 4}
	if i < len(f.runOutputs) {
		spec = f.runOutputs[i]
	}
	if spec.null {
		return 0
	}
	h := OrtValue(f.next())
	f.values[h] = &fakeTensor{
		elementType: spec.elementType,
		shape:       spec.shape.Clone(),
		data:        make([]byte, spec.byteSize),
	}
	return h
}

func (f *fakeAPI) fillOutputs(outputs *OrtValue, outputCount uintptr) {
	// #nosec G103 -- test fake writing into the caller's array
	outSlice := unsafe.Slice(outputs, outputCount)
	for i := range outSlice {
		outSlice[i] = f.makeRunOutput(i)
	}
}

func (f *fakeAPI) Run(session OrtSession, runOptions OrtRunOptions, inputNames **byte, inputs *OrtValue, inputCount uintptr,
	outputNames **byte, outputCount uintptr, outputs *OrtValue) OrtStatus {
	if st := f.enter("Run"); st != 0 {
		return st
	}
	// #nosec G103 -- test fake reading the caller's array
	f.lastRunInputs = append([]OrtValue(nil), unsafe.Slice(inputs, inputCount)...)
	f.fillOutputs(outputs, outputCount)
	return 0
}

func (f *fakeAPI) RunAsync(session OrtSession, runOptions OrtRunOptions, inputNames **byte, inputs *OrtValue, inputCount uintptr,
	outputNames **byte, outputCount uintptr, outputs *OrtValue, callback uintptr, userData uintptr) OrtStatus {
	if st := f.enter("RunAsync"); st != 0 {
		return st
	}
	if !f.completeAsyncInline {
		return 0
	}

	var status OrtStatus
	if f.asyncFailure != nil {
		status = f.newStatus(f.asyncFailure.code, f.asyncFailure.message)
	} else {
		f.fillOutputs(outputs, outputCount)
	}
	finishAsyncRun(userData, status)
	return 0
}

func (f *fakeAPI) ReleaseSession(session OrtSession) {
	f.calls["ReleaseSession"]++
	if f.releaseFrom("session", f.sessions[session]) {
		delete(f.sessions, session)
	}
}

// Allocator

func (f *fakeAPI) GetAllocatorWithDefaultOptions(out *OrtAllocator) OrtStatus {
	if st := f.enter("GetAllocatorWithDefaultOptions"); st != 0 {
		return st
	}
	*out = f.allocator
	return 0
}

func (f *fakeAPI) AllocatorFree(allocator OrtAllocator, p uintptr) {
	f.calls["AllocatorFree"]++
	if _, ok := f.nameBuffers[p]; ok {
		delete(f.nameBuffers, p)
		return
	}
	if _, ok := f.valueArrays[p]; ok {
		delete(f.valueArrays, p)
		return
	}
	f.doubleReleases = append(f.doubleReleases, fmt.Sprintf("allocatorFree(%#x)", p))
}

// Memory info

func (f *fakeAPI) CreateMemoryInfo(name *byte, allocatorType AllocatorType, deviceID int32, memType MemType, out *OrtMemoryInfo) OrtStatus {
	if st := f.enter("CreateMemoryInfo"); st != 0 {
		return st
	}
	h := OrtMemoryInfo(f.next())
	f.memInfos[h] = true
	*out = h
	return 0
}

func (f *fakeAPI) ReleaseMemoryInfo(memInfo OrtMemoryInfo) {
	f.calls["ReleaseMemoryInfo"]++
	if f.releaseFrom("memoryInfo", f.memInfos[memInfo]) {
		delete(f.memInfos, memInfo)
	}
}

// Run options

func (f *fakeAPI) CreateRunOptions(out *OrtRunOptions) OrtStatus {
	if st := f.enter("CreateRunOptions"); st != 0 {
		return st
	}
	h := OrtRunOptions(f.next())
	f.runOpts[h] = true
	*out = h
	return 0
}

func (f *fakeAPI) RunOptionsSetTerminate(opts OrtRunOptions) OrtStatus {
	if st := f.enter("RunOptionsSetTerminate"); st != 0 {
		return st
	}
	f.terminateSet = true
	return 0
}

func (f *fakeAPI) RunOptionsUnsetTerminate(opts OrtRunOptions) OrtStatus {
	if st := f.enter("RunOptionsUnsetTerminate"); st != 0 {
		return st
	}
	f.terminateSet = false
	return 0
}

func (f *fakeAPI) RunOptionsSetRunTag(opts OrtRunOptions, tag *byte) OrtStatus {
	if st := f.enter("RunOptionsSetRunTag"); st != 0 {
		return st
	}
	// #nosec G103 -- test fake reading the caller's string
	f.runTag = CstringToGo(uintptr(unsafe.Pointer(tag)))
	return 0
}

func (f *fakeAPI) ReleaseRunOptions(opts OrtRunOptions) {
	f.calls["ReleaseRunOptions"]++
	if f.releaseFrom("runOptions", f.runOpts[opts]) {
		delete(f.runOpts, opts)
	}
}

// Values

func readShape(shape *int64, rank uintptr) Shape {
	if rank == 0 {
		return Shape{}
	}
	// #nosec G103 -- test fake reading the caller's array
	return append(Shape(nil), unsafe.Slice(shape, rank)...)
}

func (f *fakeAPI) CreateTensorWithDataAsOrtValue(memInfo OrtMemoryInfo, data uintptr, dataBytes uintptr,
	shape *int64, rank uintptr, elementType TensorElementDataType, out *OrtValue) OrtStatus {
	if st := f.enter("CreateTensorWithDataAsOrtValue"); st != 0 {
		return st
	}
	if !f.memInfos[memInfo] {
		return f.newStatus(ErrorCodeInvalidArgument, "unknown memory info handle")
	}
	h := OrtValue(f.next())
	f.values[h] = &fakeTensor{
		elementType: elementType,
		shape:       readShape(shape, rank),
		dataPtr:     data,
	}
	*out = h
	return 0
}

func (f *fakeAPI) CreateTensorAsOrtValue(allocator OrtAllocator, shape *int64, rank uintptr,
	elementType TensorElementDataType, out *OrtValue) OrtStatus {
	if st := f.enter("CreateTensorAsOrtValue"); st != 0 {
		return st
	}
	s := readShape(shape, rank)
	count, err := shapeElementCount(s)
	if err != nil {
		return f.newStatus(ErrorCodeInvalidArgument, err.Error())
	}
	h := OrtValue(f.next())
	f.values[h] = &fakeTensor{
		elementType: elementType,
		shape:       s,
		data:        make([]byte, count*8),
	}
	*out = h
	return 0
}

func (f *fakeAPI) GetTensorMutableData(value OrtValue, out *uintptr) OrtStatus {
	if st := f.enter("GetTensorMutableData"); st != 0 {
		return st
	}
	v := f.values[value]
	if v == nil {
		return f.newStatus(ErrorCodeInvalidArgument, "unknown value handle")
	}
	if v.data != nil {
		// #nosec G103 -- test fake handing its own buffer back
		*out = uintptr(unsafe.Pointer(&v.data[0]))
		return 0
	}
	*out = v.dataPtr
	return 0
}

func (f *fakeAPI) GetTensorTypeAndShape(value OrtValue, out *OrtTensorTypeAndShapeInfo) OrtStatus {
	if st := f.enter("GetTensorTypeAndShape"); st != 0 {
		return st
	}
	if f.values[value] == nil {
		return f.newStatus(ErrorCodeInvalidArgument, "unknown value handle")
	}
	h := OrtTensorTypeAndShapeInfo(f.next())
	f.infos[h] = value
	*out = h
	return 0
}

func (f *fakeAPI) GetTensorElementType(info OrtTensorTypeAndShapeInfo, out *TensorElementDataType) OrtStatus {
	if st := f.enter("GetTensorElementType"); st != 0 {
		return st
	}
	*out = f.values[f.infos[info]].elementType
	return 0
}

func (f *fakeAPI) GetDimensionsCount(info OrtTensorTypeAndShapeInfo, out *uintptr) OrtStatus {
	if st := f.enter("GetDimensionsCount"); st != 0 {
		return st
	}
	*out = uintptr(len(f.values[f.infos[info]].shape))
	return 0
}

func (f *fakeAPI) GetDimensions(info OrtTensorTypeAndShapeInfo, out *int64, count uintptr) OrtStatus {
	if st := f.enter("GetDimensions"); st != 0 {
		return st
	}
	// #nosec G103 -- test fake writing into the caller's array
	copy(unsafe.Slice(out, count), f.values[f.infos[info]].shape)
	return 0
}

func (f *fakeAPI) GetTensorShapeElementCount(info OrtTensorTypeAndShapeInfo, out *uintptr) OrtStatus {
	if st := f.enter("GetTensorShapeElementCount"); st != 0 {
		return st
	}
	count, err := shapeElementCount(f.values[f.infos[info]].shape)
	if err != nil {
		return f.newStatus(ErrorCodeInvalidArgument, err.Error())
	}
	*out = uintptr(count)
	return 0
}

func (f *fakeAPI) ReleaseTensorTypeAndShapeInfo(info OrtTensorTypeAndShapeInfo) {
	f.calls["ReleaseTensorTypeAndShapeInfo"]++
	if _, ok := f.infos[info]; !ok {
		f.doubleReleases = append(f.doubleReleases, "typeShapeInfo")
		return
	}
	delete(f.infos, info)
}

func (f *fakeAPI) ReleaseValue(value OrtValue) {
	f.calls["ReleaseValue"]++
	v := f.values[value]
	if v == nil {
		f.doubleReleases = append(f.doubleReleases, "value(unknown)")
		return
	}
	v.released++
	if v.released > 1 {
		f.doubleReleases = append(f.doubleReleases, fmt.Sprintf("value(%d)", value))
	}
}

// IO binding

func (f *fakeAPI) CreateIoBinding(session OrtSession, out *OrtIoBinding) OrtStatus {
	if st := f.enter("CreateIoBinding"); st != 0 {
		return st
	}
	if !f.sessions[session] {
		return f.newStatus(ErrorCodeInvalidArgument, "unknown session handle")
	}
	h := OrtIoBinding(f.next())
	f.bindings[h] = true
	*out = h
	return 0
}

func (f *fakeAPI) BindInput(binding OrtIoBinding, name *byte, value OrtValue) OrtStatus {
	if st := f.enter("BindInput"); st != 0 {
		return st
	}
	// #nosec G103 -- test fake reading the caller's string
	f.boundInputNames = append(f.boundInputNames, CstringToGo(uintptr(unsafe.Pointer(name))))
	return 0
}

func (f *fakeAPI) BindOutput(binding OrtIoBinding, name *byte, value OrtValue) OrtStatus {
	if st := f.enter("BindOutput"); st != 0 {
		return st
	}
	// #nosec G103 -- test fake reading the caller's string
	f.boundOutputNames = append(f.boundOutputNames, CstringToGo(uintptr(unsafe.Pointer(name))))
	f.boundOutputs = append(f.boundOutputs, value)
	return 0
}

func (f *fakeAPI) BindOutputToDevice(binding OrtIoBinding, name *byte, memInfo OrtMemoryInfo) OrtStatus {
	if st := f.enter("BindOutputToDevice"); st != 0 {
		return st
	}
	// #nosec G103 -- test fake reading the caller's string
	f.boundOutputNames = append(f.boundOutputNames, CstringToGo(uintptr(unsafe.Pointer(name))))
	// The device-bound output is materialized lazily; model it as a fresh
	// engine-owned value the binding releases when cleared or destroyed.
	h := f.makeRunOutput(len(f.boundOutputs))
	if h != 0 {
		f.engineBound[h] = true
	}
	f.boundOutputs = append(f.boundOutputs, h)
	return 0
}

// viewOf mints a fresh handle over an existing value's metadata and backing,
// matching the real engine's contract that GetBoundOutputValues hands out
// values the caller releases independently of the binding.
func (f *fakeAPI) viewOf(orig OrtValue) OrtValue {
	v := f.values[orig]
	if v == nil {
		return 0
	}
	h := OrtValue(f.next())
	f.values[h] = &fakeTensor{
		elementType: v.elementType,
		shape:       v.shape.Clone(),
		data:        v.data,
		dataPtr:     v.dataPtr,
	}
	return h
}

func (f *fakeAPI) GetBoundOutputValues(binding OrtIoBinding, allocator OrtAllocator, out **OrtValue, count *uintptr) OrtStatus {
	if st := f.enter("GetBoundOutputValues"); st != 0 {
		return st
	}
	*count = uintptr(len(f.boundOutputs))
	if len(f.boundOutputs) == 0 {
		*out = nil
		return 0
	}
	arr := make([]OrtValue, len(f.boundOutputs))
	for i, orig := range f.boundOutputs {
		arr[i] = f.viewOf(orig)
	}
	// #nosec G103 -- test fake handing its own buffer back
	f.valueArrays[uintptr(unsafe.Pointer(&arr[0]))] = arr
	*out = &arr[0]
	return 0
}

func (f *fakeAPI) ClearBoundInputs(binding OrtIoBinding) {
	f.calls["ClearBoundInputs"]++
	f.boundInputNames = nil
}

// releaseEngineBoundOutputs drops the binding's own references to values it
// allocated for device-bound outputs.
func (f *fakeAPI) releaseEngineBoundOutputs() {
	for _, h := range f.boundOutputs {
		if f.engineBound[h] {
			delete(f.engineBound, h)
			f.values[h].released++
		}
	}
}

func (f *fakeAPI) ClearBoundOutputs(binding OrtIoBinding) {
	f.calls["ClearBoundOutputs"]++
	f.releaseEngineBoundOutputs()
	f.boundOutputNames = nil
	f.boundOutputs = nil
}

func (f *fakeAPI) RunWithBinding(session OrtSession, runOptions OrtRunOptions, binding OrtIoBinding) OrtStatus {
	if st := f.enter("RunWithBinding"); st != 0 {
		return st
	}
	return 0
}

func (f *fakeAPI) ReleaseIoBinding(binding OrtIoBinding) {
	f.calls["ReleaseIoBinding"]++
	if f.releaseFrom("ioBinding", f.bindings[binding]) {
		f.releaseEngineBoundOutputs()
		delete(f.bindings, binding)
	}
}

// newTestEnvironment builds an Environment over a fake table, registering
// cleanup that destroys it and checks for handle leaks.
func newTestEnvironment(t *testing.T, f *fakeAPI) *Environment {
	t.Helper()
	env, err := newEnvironmentWithAPI(f, environmentConfig{logLevel: LoggingLevelWarning, logID: "test"})
	if err != nil {
		t.Fatalf("newEnvironmentWithAPI: %v", err)
	}
	t.Cleanup(func() {
		if err := env.Destroy(); err != nil {
			t.Errorf("env.Destroy: %v", err)
		}
		f.checkClean(t)
	})
	return env
}

// newTestSession builds a Session over the fake with default options.
func newTestSession(t *testing.T, f *fakeAPI, env *Environment) *Session {
	t.Helper()
	session, err := NewSession(env, "model.onnx", nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(func() {
		if err := session.Destroy(); err != nil {
			t.Errorf("session.Destroy: %v", err)
		}
	})
	return session
}
