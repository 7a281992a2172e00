package ort

import "runtime"

// MemoryInfo wraps a native memory descriptor (device + allocator type).
// One MemoryInfo can back any number of tensor constructions, which keeps
// descriptor churn off hot paths.
type MemoryInfo struct {
	api           API
	handle        OrtMemoryInfo
	name          string
	allocatorType AllocatorType
	memType       MemType
	deviceID      int
}

// NewMemoryInfo creates a memory descriptor with the given parameters.
func NewMemoryInfo(env *Environment, name string, allocatorType AllocatorType, deviceID int, memType MemType) (*MemoryInfo, error) {
	return newMemoryInfoWithAPI(env.api, name, allocatorType, deviceID, memType)
}

// NewCPUMemoryInfo creates a descriptor for CPU memory, the common case.
func NewCPUMemoryInfo(env *Environment, allocatorType AllocatorType, memType MemType) (*MemoryInfo, error) {
	return newMemoryInfoWithAPI(env.api, "Cpu", allocatorType, 0, memType)
}

func newMemoryInfoWithAPI(a API, name string, allocatorType AllocatorType, deviceID int, memType MemType) (*MemoryInfo, error) {
	nameBytes, namePtr := GoToCstring(name)

	var handle OrtMemoryInfo
	// #nosec G115 -- deviceID is validated by ONNX Runtime, conversion is safe
	status := a.CreateMemoryInfo(namePtr, allocatorType, int32(deviceID), memType, &handle)
	runtime.KeepAlive(nameBytes)
	if err := translateStatus(a, status); err != nil {
		return nil, err
	}

	return &MemoryInfo{
		api:           a,
		handle:        handle,
		name:          name,
		allocatorType: allocatorType,
		memType:       memType,
		deviceID:      deviceID,
	}, nil
}

// Handle returns the native handle, or 0 after Destroy.
func (m *MemoryInfo) Handle() OrtMemoryInfo {
	return m.handle
}

// Name returns the allocator name the descriptor was created with.
func (m *MemoryInfo) Name() string {
	return m.name
}

// AllocatorType returns the allocator type.
func (m *MemoryInfo) AllocatorType() AllocatorType {
	return m.allocatorType
}

// MemType returns the memory type.
func (m *MemoryInfo) MemType() MemType {
	return m.memType
}

// DeviceID returns the device index.
func (m *MemoryInfo) DeviceID() int {
	return m.deviceID
}

// IsValid reports whether the descriptor still holds a live handle.
func (m *MemoryInfo) IsValid() bool {
	return m.handle != 0
}

// Destroy releases the native descriptor. Safe to call more than once.
func (m *MemoryInfo) Destroy() error {
	if m == nil || m.handle == 0 {
		return nil
	}
	m.api.ReleaseMemoryInfo(m.handle)
	m.handle = 0
	return nil
}
