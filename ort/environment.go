package ort

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

var (
	mu             sync.Mutex
	defaultLibPath string
)

// SetSharedLibraryPath sets the default path to the ONNX Runtime shared
// library used by NewEnvironment when no WithLibraryPath option is given.
func SetSharedLibraryPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("shared library path cannot be empty")
	}

	mu.Lock()
	defer mu.Unlock()
	defaultLibPath = path
	return nil
}

// EnvironmentOption configures NewEnvironment.
type EnvironmentOption func(*environmentConfig) error

type environmentConfig struct {
	libraryPath string
	logLevel    LoggingLevel
	logID       string
}

// WithLibraryPath overrides the shared library path for this environment.
func WithLibraryPath(path string) EnvironmentOption {
	return func(cfg *environmentConfig) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return fmt.Errorf("library path cannot be empty")
		}
		cfg.libraryPath = path
		return nil
	}
}

// WithLogLevel sets the native log severity for this environment.
func WithLogLevel(level LoggingLevel) EnvironmentOption {
	return func(cfg *environmentConfig) error {
		if level < LoggingLevelVerbose || level > LoggingLevelFatal {
			return fmt.Errorf("invalid logging level: %d", level)
		}
		cfg.logLevel = level
		return nil
	}
}

// WithLogID sets the logger identifier passed to the native environment.
func WithLogID(id string) EnvironmentOption {
	return func(cfg *environmentConfig) error {
		if id == "" {
			return fmt.Errorf("log ID cannot be empty")
		}
		cfg.logID = id
		return nil
	}
}

// Environment owns one native runtime handle plus a non-owning reference to
// the process-wide entry-point table. It must outlive every Session created
// from it. The handle is read-only after creation, so an Environment may be
// shared across any number of Sessions without locking.
type Environment struct {
	api          API
	handle       OrtEnv
	version      string
	symbolLookup func(name string) (uintptr, error)
	cpuMemory    *MemoryInfo
}

// NewEnvironment creates a native runtime environment. It fails with
// ErrAPIUnavailable when the entry-point table cannot be obtained (shared
// library missing, handshake failure, version mismatch).
func NewEnvironment(opts ...EnvironmentOption) (*Environment, error) {
	cfg := environmentConfig{
		logLevel: LoggingLevelWarning,
		logID:    "ort-go",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.libraryPath == "" {
		mu.Lock()
		cfg.libraryPath = defaultLibPath
		mu.Unlock()
	}
	if cfg.libraryPath == "" {
		cfg.libraryPath = strings.TrimSpace(os.Getenv("ONNXRUNTIME_LIB_PATH"))
	}
	if cfg.libraryPath == "" {
		return nil, fmt.Errorf("%w: no shared library path configured (use SetSharedLibraryPath, WithLibraryPath, or ONNXRUNTIME_LIB_PATH)", ErrAPIUnavailable)
	}

	lib, err := loadLibraryAPI(cfg.libraryPath)
	if err != nil {
		return nil, err
	}

	env, err := newEnvironmentWithAPI(lib.api, cfg)
	if err != nil {
		return nil, err
	}
	env.version = lib.version
	env.symbolLookup = func(name string) (uintptr, error) {
		return getSymbol(lib.handle, name)
	}
	return env, nil
}

// newEnvironmentWithAPI builds an Environment on an already-obtained
// entry-point table. Split out so tests can substitute a fake table.
func newEnvironmentWithAPI(a API, cfg environmentConfig) (*Environment, error) {
	logIDBytes, logIDPtr := GoToCstring(cfg.logID)

	var handle OrtEnv
	status := a.CreateEnv(cfg.logLevel, logIDPtr, &handle)
	runtime.KeepAlive(logIDBytes)
	if err := translateStatus(a, status); err != nil {
		return nil, err
	}

	// One CPU memory descriptor per environment; reused by every tensor
	// constructed without an explicit MemoryInfo.
	cpuMemory, err := newMemoryInfoWithAPI(a, "Cpu", AllocatorTypeArena, 0, MemTypeCPU)
	if err != nil {
		a.ReleaseEnv(handle)
		return nil, err
	}

	return &Environment{
		api:       a,
		handle:    handle,
		cpuMemory: cpuMemory,
	}, nil
}

// API returns the entry-point table this environment was created from.
func (e *Environment) API() API {
	return e.api
}

// Handle returns the native environment handle, or 0 after Destroy.
func (e *Environment) Handle() OrtEnv {
	return e.handle
}

// Version returns the runtime version string reported by the shared library,
// or empty for environments built on a substituted table.
func (e *Environment) Version() string {
	return e.version
}

// DefaultCPUMemoryInfo returns the environment-owned CPU memory descriptor.
// Callers must not destroy it; it is released with the environment.
func (e *Environment) DefaultCPUMemoryInfo() *MemoryInfo {
	return e.cpuMemory
}

// EnableTelemetry enables native telemetry events for this environment.
func (e *Environment) EnableTelemetry() error {
	if e.handle == 0 {
		return fmt.Errorf("environment has been destroyed")
	}
	return translateStatus(e.api, e.api.EnableTelemetryEvents(e.handle))
}

// DisableTelemetry disables native telemetry events for this environment.
func (e *Environment) DisableTelemetry() error {
	if e.handle == 0 {
		return fmt.Errorf("environment has been destroyed")
	}
	return translateStatus(e.api, e.api.DisableTelemetryEvents(e.handle))
}

// Destroy releases the native environment handle. Safe to call more than
// once; all Sessions created from this environment must already be destroyed.
func (e *Environment) Destroy() error {
	if e == nil {
		return nil
	}

	if e.cpuMemory != nil {
		_ = e.cpuMemory.Destroy()
		e.cpuMemory = nil
	}

	if e.handle != 0 {
		e.api.ReleaseEnv(e.handle)
		e.handle = 0
	}
	return nil
}
