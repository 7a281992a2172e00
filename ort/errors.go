package ort

import (
	"errors"
	"fmt"
)

// ErrAPIUnavailable is returned when the ONNX Runtime entry-point table
// cannot be obtained: the shared library is missing, OrtGetApiBase cannot be
// resolved, or the library does not serve the pinned API version.
var ErrAPIUnavailable = errors.New("ONNX Runtime API unavailable")

// ErrorCode represents ONNX Runtime error codes.
type ErrorCode int32

const (
	ErrorCodeOK ErrorCode = iota
	ErrorCodeFail
	ErrorCodeInvalidArgument
	ErrorCodeNoSuchFile
	ErrorCodeNoModel
	ErrorCodeEngineError
	ErrorCodeRuntimeException
	ErrorCodeInvalidProtobuf
	ErrorCodeModelLoaded
	ErrorCodeNotImplemented
	ErrorCodeInvalidGraph
	ErrorCodeEPFail
	ErrorCodeModelLoadCanceled
	ErrorCodeModelRequiresCompilation
)

// ErrorCodeUnknown is not a native code. Codes reported by runtimes newer
// than this binding are folded into it instead of being rejected.
const ErrorCodeUnknown ErrorCode = -1

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeOK:
		return "OK"
	case ErrorCodeFail:
		return "Fail"
	case ErrorCodeInvalidArgument:
		return "InvalidArgument"
	case ErrorCodeNoSuchFile:
		return "NoSuchFile"
	case ErrorCodeNoModel:
		return "NoModel"
	case ErrorCodeEngineError:
		return "EngineError"
	case ErrorCodeRuntimeException:
		return "RuntimeException"
	case ErrorCodeInvalidProtobuf:
		return "InvalidProtobuf"
	case ErrorCodeModelLoaded:
		return "ModelLoaded"
	case ErrorCodeNotImplemented:
		return "NotImplemented"
	case ErrorCodeInvalidGraph:
		return "InvalidGraph"
	case ErrorCodeEPFail:
		return "EPFail"
	case ErrorCodeModelLoadCanceled:
		return "ModelLoadCanceled"
	case ErrorCodeModelRequiresCompilation:
		return "ModelRequiresCompilation"
	default:
		return "Unknown"
	}
}

// Error is a translated ONNX Runtime status. Code is one of the ErrorCode
// values; Message is the text extracted from the status before release.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("onnxruntime: %s", e.Code)
	}
	return fmt.Sprintf("onnxruntime: %s: %s", e.Code, e.Message)
}

// Is reports code equality so callers can match with errors.Is against a
// bare &Error{Code: ...} sentinel.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// invalidArgumentError builds a wrapper-originated InvalidArgument error
// (no native status involved).
func invalidArgumentError(format string, args ...any) *Error {
	return &Error{Code: ErrorCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// translateStatus converts a native status handle into a typed error. The
// zero status means success and nothing is touched. A non-zero status is
// queried for its code and message and then released exactly once; the
// handle must not be used afterwards.
func translateStatus(a API, status OrtStatus) error {
	if status == 0 {
		return nil
	}

	code := translateErrorCode(a.GetErrorCode(status))
	message := CstringToGo(a.GetErrorMessage(status))
	a.ReleaseStatus(status)

	return &Error{Code: code, Message: message}
}

func translateErrorCode(raw int32) ErrorCode {
	code := ErrorCode(raw)
	if code < ErrorCodeOK || code > ErrorCodeModelRequiresCompilation {
		return ErrorCodeUnknown
	}
	return code
}
