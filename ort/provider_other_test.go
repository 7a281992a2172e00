//go:build !darwin

package ort

import (
	"errors"
	"testing"
)

func TestAppendCoreMLProviderOffPlatform(t *testing.T) {
	f := newFakeAPI()
	env := newTestEnvironment(t, f)

	opts, err := NewSessionOptions(env)
	if err != nil {
		t.Fatalf("NewSessionOptions: %v", err)
	}
	defer func() { _ = opts.Destroy() }()

	err = opts.AppendExecutionProvider(CoreMLExecutionProvider(CoreMLOptions{}))
	if !errors.Is(err, &Error{Code: ErrorCodeInvalidArgument}) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestAutoProviderIsCPUOffPlatform(t *testing.T) {
	if got := AutoExecutionProvider().Resolve(); got.kind != providerCPU {
		t.Errorf("auto resolved to %v, want cpu", got)
	}
}
