package ort

import (
	"fmt"
	"reflect"
	"runtime"
	"unsafe"
)

// FloatData covers the floating-point tensor element types.
type FloatData interface {
	~float32 | ~float64
}

// IntData covers the integer tensor element types.
type IntData interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// TensorData is the type constraint for tensor element types.
type TensorData interface {
	FloatData | IntData
}

// GetTensorElementDataType returns the native element-type enum for T.
func GetTensorElementDataType[T TensorData]() TensorElementDataType {
	var zero T
	// Type assertions cannot see through ~ constraints, so go by kind.
	switch reflect.ValueOf(zero).Kind() {
	case reflect.Float32:
		return TensorElementDataTypeFloat
	case reflect.Float64:
		return TensorElementDataTypeDouble
	case reflect.Int8:
		return TensorElementDataTypeInt8
	case reflect.Uint8:
		return TensorElementDataTypeUint8
	case reflect.Int16:
		return TensorElementDataTypeInt16
	case reflect.Uint16:
		return TensorElementDataTypeUint16
	case reflect.Int32:
		return TensorElementDataTypeInt32
	case reflect.Uint32:
		return TensorElementDataTypeUint32
	case reflect.Int64:
		return TensorElementDataTypeInt64
	case reflect.Uint64:
		return TensorElementDataTypeUint64
	}
	return TensorElementDataTypeUndefined
}

// Value is anything holding a live native value handle, usable as a run or
// binding input/output.
type Value interface {
	ortValueHandle() OrtValue
	Destroy() error
}

// Tensor wraps a native value handle backed by a Go buffer. The backing
// memory is borrowed from the data slice for the tensor's whole lifetime;
// Destroy releases only the native wrapper, never the buffer.
type Tensor[T TensorData] struct {
	api    API
	handle OrtValue
	shape  Shape
	data   []T
	pinner *runtime.Pinner // pins the backing array while ORT may access it
}

// NewTensor creates a tensor over the caller's buffer using the
// environment's default CPU memory descriptor. The buffer is borrowed: the
// caller keeps ownership and must keep it valid until Destroy.
func NewTensor[T TensorData](env *Environment, shape Shape, data []T) (*Tensor[T], error) {
	return NewTensorWithMemoryInfo(env.DefaultCPUMemoryInfo(), shape, data)
}

// NewEmptyTensor creates a zero-filled tensor of the given shape, backed by
// a freshly allocated Go buffer.
func NewEmptyTensor[T TensorData](env *Environment, shape Shape) (*Tensor[T], error) {
	count, err := shapeElementCount(shape)
	if err != nil {
		return nil, err
	}
	return NewTensor(env, shape, make([]T, count))
}

// NewTensorWithMemoryInfo creates a tensor over the caller's buffer using an
// explicit memory descriptor. The descriptor is only read during
// construction and may be reused immediately.
func NewTensorWithMemoryInfo[T TensorData](memInfo *MemoryInfo, shape Shape, data []T) (*Tensor[T], error) {
	if memInfo == nil || memInfo.handle == 0 {
		return nil, invalidArgumentError("memory info is nil or destroyed")
	}

	elementType := GetTensorElementDataType[T]()
	shapeCopy := cloneShape(shape)
	count, err := shapeElementCount(shapeCopy)
	if err != nil {
		return nil, err
	}
	if len(data) != count {
		return nil, invalidArgumentError("data length mismatch: got %d elements, expected %d for shape %v", len(data), count, shapeCopy)
	}

	var elemSize uintptr = unsafe.Sizeof(*new(T))
	dataBytes := uintptr(len(data)) * elemSize

	a := memInfo.api

	var dataPtr uintptr
	var pinner *runtime.Pinner
	if len(data) > 0 {
		pinner = &runtime.Pinner{}
		pinner.Pin(unsafe.SliceData(data))
		// #nosec G103 -- Required for CGO-free FFI; backing array is pinned for the value's lifetime.
		dataPtr = uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	}

	var handle OrtValue
	status := a.CreateTensorWithDataAsOrtValue(memInfo.handle, dataPtr, dataBytes,
		shapePtr(shapeCopy), uintptr(len(shapeCopy)), elementType, &handle)
	// ORT reads the dimensions synchronously during the call.
	runtime.KeepAlive(shapeCopy)
	if err := translateStatus(a, status); err != nil {
		if pinner != nil {
			pinner.Unpin()
		}
		return nil, err
	}

	tensor := &Tensor[T]{
		api:    a,
		handle: handle,
		shape:  shapeCopy,
		data:   data,
		pinner: pinner,
	}

	// Safety net against leaking the native wrapper if Destroy is forgotten.
	runtime.SetFinalizer(tensor, func(t *Tensor[T]) {
		_ = t.Destroy()
	})

	return tensor, nil
}

func (t *Tensor[T]) ortValueHandle() OrtValue {
	if t == nil {
		return 0
	}
	return t.handle
}

// GetData returns the tensor's backing buffer. After Destroy it returns nil.
func (t *Tensor[T]) GetData() []T {
	if t == nil {
		return nil
	}
	return t.data
}

// Shape returns the cached shape the tensor was constructed with.
func (t *Tensor[T]) Shape() Shape {
	if t == nil {
		return nil
	}
	return t.shape
}

// GetShape queries the native layer for the tensor's dimensions.
func (t *Tensor[T]) GetShape() (Shape, error) {
	if t == nil || t.handle == 0 {
		return nil, invalidArgumentError("tensor has been destroyed")
	}
	_, shape, _, err := valueTypeAndShape(t.api, t.handle)
	return shape, err
}

// ElementCount returns the number of elements in the tensor.
func (t *Tensor[T]) ElementCount() int {
	if t == nil {
		return 0
	}
	return len(t.data)
}

// ElementType returns the native element-type enum.
func (t *Tensor[T]) ElementType() TensorElementDataType {
	return GetTensorElementDataType[T]()
}

// Destroy releases the native value handle and unpins the backing buffer.
// The buffer itself stays with the caller. Safe to call more than once.
func (t *Tensor[T]) Destroy() error {
	if t == nil {
		return nil
	}

	if t.handle != 0 {
		t.api.ReleaseValue(t.handle)
		t.handle = 0
	}
	if t.pinner != nil {
		t.pinner.Unpin()
		t.pinner = nil
	}
	t.data = nil
	t.shape = nil
	runtime.SetFinalizer(t, nil)
	return nil
}

// RawTensor wraps a native value whose element type is only known at
// runtime: run outputs and bound binding outputs. The owned flag records
// whether the wrapper owns the backing memory (native-allocated outputs) or
// merely views memory owned elsewhere (binding-held outputs).
type RawTensor struct {
	api    API
	handle OrtValue
	owned  bool
}

// NewAllocatedTensor creates a tensor whose backing memory is allocated and
// owned by the native default allocator; releasing the value frees it.
func NewAllocatedTensor[T TensorData](env *Environment, shape Shape) (*RawTensor, error) {
	a := env.api

	var allocator OrtAllocator
	if err := translateStatus(a, a.GetAllocatorWithDefaultOptions(&allocator)); err != nil {
		return nil, err
	}

	shapeCopy := cloneShape(shape)
	if _, err := shapeElementCount(shapeCopy); err != nil {
		return nil, err
	}

	var handle OrtValue
	status := a.CreateTensorAsOrtValue(allocator, shapePtr(shapeCopy), uintptr(len(shapeCopy)),
		GetTensorElementDataType[T](), &handle)
	runtime.KeepAlive(shapeCopy)
	if err := translateStatus(a, status); err != nil {
		return nil, err
	}

	return newRawTensor(a, handle, true), nil
}

func newRawTensor(a API, handle OrtValue, owned bool) *RawTensor {
	t := &RawTensor{api: a, handle: handle, owned: owned}
	runtime.SetFinalizer(t, func(t *RawTensor) {
		_ = t.Destroy()
	})
	return t
}

func (t *RawTensor) ortValueHandle() OrtValue {
	if t == nil {
		return 0
	}
	return t.handle
}

// Owned reports whether this wrapper owns the backing memory.
func (t *RawTensor) Owned() bool {
	return t.owned
}

// ElementType queries the native element type.
func (t *RawTensor) ElementType() (TensorElementDataType, error) {
	if t == nil || t.handle == 0 {
		return TensorElementDataTypeUndefined, invalidArgumentError("tensor has been destroyed")
	}
	elementType, _, _, err := valueTypeAndShape(t.api, t.handle)
	return elementType, err
}

// GetShape queries the native layer for the tensor's dimensions. The
// returned slice is freshly allocated and owned by the caller.
func (t *RawTensor) GetShape() (Shape, error) {
	if t == nil || t.handle == 0 {
		return nil, invalidArgumentError("tensor has been destroyed")
	}
	_, shape, _, err := valueTypeAndShape(t.api, t.handle)
	return shape, err
}

// ElementCount queries the total number of elements.
func (t *RawTensor) ElementCount() (int, error) {
	if t == nil || t.handle == 0 {
		return 0, invalidArgumentError("tensor has been destroyed")
	}
	_, _, count, err := valueTypeAndShape(t.api, t.handle)
	return count, err
}

// Destroy releases the native value handle. For owned tensors this also
// frees the native backing memory; for borrowed views it only drops the
// wrapper's reference. Safe to call more than once.
func (t *RawTensor) Destroy() error {
	if t == nil {
		return nil
	}
	if t.handle != 0 {
		t.api.ReleaseValue(t.handle)
		t.handle = 0
	}
	runtime.SetFinalizer(t, nil)
	return nil
}

// GetTensorData returns a typed view over the tensor's elements. The
// requested type is cross-checked against the native element type; a
// mismatch fails with InvalidArgument instead of producing a misaligned
// view. The view aliases native memory and is invalidated by Destroy.
func GetTensorData[T TensorData](t *RawTensor) ([]T, error) {
	if t == nil || t.handle == 0 {
		return nil, invalidArgumentError("tensor has been destroyed")
	}

	elementType, _, count, err := valueTypeAndShape(t.api, t.handle)
	if err != nil {
		return nil, err
	}
	want := GetTensorElementDataType[T]()
	if elementType != want {
		return nil, invalidArgumentError("element type mismatch: tensor holds type %d, requested type %d", elementType, want)
	}

	if count == 0 {
		return nil, nil
	}

	var dataPtr uintptr
	if err := translateStatus(t.api, t.api.GetTensorMutableData(t.handle, &dataPtr)); err != nil {
		return nil, err
	}
	if dataPtr == 0 {
		return nil, &Error{Code: ErrorCodeFail, Message: "native layer returned a nil data pointer"}
	}

	// #nosec G103 -- Required for CGO-free FFI; length is the native element count.
	return unsafe.Slice((*T)(unsafe.Pointer(dataPtr)), count), nil
}

// valueTypeAndShape queries element type, dimensions, and element count from
// a native value in one pass, releasing the metadata handle on every path.
func valueTypeAndShape(a API, value OrtValue) (TensorElementDataType, Shape, int, error) {
	var info OrtTensorTypeAndShapeInfo
	if err := translateStatus(a, a.GetTensorTypeAndShape(value, &info)); err != nil {
		return TensorElementDataTypeUndefined, nil, 0, err
	}
	defer a.ReleaseTensorTypeAndShapeInfo(info)

	var elementType TensorElementDataType
	if err := translateStatus(a, a.GetTensorElementType(info, &elementType)); err != nil {
		return TensorElementDataTypeUndefined, nil, 0, err
	}

	var rank uintptr
	if err := translateStatus(a, a.GetDimensionsCount(info, &rank)); err != nil {
		return TensorElementDataTypeUndefined, nil, 0, err
	}

	shape := make(Shape, rank)
	if rank > 0 {
		if err := translateStatus(a, a.GetDimensions(info, unsafe.SliceData(shape), rank)); err != nil {
			return TensorElementDataTypeUndefined, nil, 0, err
		}
	}

	var count uintptr
	if err := translateStatus(a, a.GetTensorShapeElementCount(info, &count)); err != nil {
		return TensorElementDataTypeUndefined, nil, 0, err
	}

	if count > uintptr(int(^uint(0)>>1)) {
		return TensorElementDataTypeUndefined, nil, 0, fmt.Errorf("element count overflows int: %d", count)
	}
	return elementType, shape, int(count), nil
}
