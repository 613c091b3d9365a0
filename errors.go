package inputhook

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyRunning      = errors.New("a registration is already active")
	ErrUnsupportedPlatform = errors.New("platform not supported")
	ErrNoDisplay           = errors.New("no display available")
	ErrPermission          = errors.New("permission denied")
	ErrAccessibility       = errors.New("accessibility permission not granted")
	ErrUnmapped            = errors.New("no platform mapping")
	ErrDeviceUnavailable   = errors.New("input device unavailable")
	ErrNoDevices           = errors.New("no input devices found")
	ErrStopped             = errors.New("stopped before install completed")
)

// ErrorKind classifies setup and injection failures.
type ErrorKind uint8

const (
	KindOther ErrorKind = iota
	KindAlreadyRunning
	KindUnsupported
	KindNoDisplay
	KindPermission
	KindHookFailed
	KindUnmapped
	KindInjectFailed
	KindDeviceUnavailable
	KindStopped
)

var errorKindNames = map[ErrorKind]string{
	KindOther:             "other",
	KindAlreadyRunning:    "already_running",
	KindUnsupported:       "unsupported",
	KindNoDisplay:         "no_display",
	KindPermission:        "permission",
	KindHookFailed:        "hook_failed",
	KindUnmapped:          "unmapped",
	KindInjectFailed:      "inject_failed",
	KindDeviceUnavailable: "device_unavailable",
	KindStopped:           "stopped",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// kindOf picks the kind of a backend error from the sentinels it wraps.
func kindOf(err error, fallback ErrorKind) ErrorKind {
	switch {
	case errors.Is(err, ErrAlreadyRunning):
		return KindAlreadyRunning
	case errors.Is(err, ErrUnsupportedPlatform):
		return KindUnsupported
	case errors.Is(err, ErrNoDisplay):
		return KindNoDisplay
	case errors.Is(err, ErrPermission), errors.Is(err, ErrAccessibility):
		return KindPermission
	case errors.Is(err, ErrUnmapped):
		return KindUnmapped
	case errors.Is(err, ErrDeviceUnavailable), errors.Is(err, ErrNoDevices):
		return KindDeviceUnavailable
	case errors.Is(err, ErrStopped):
		return KindStopped
	case errors.Is(err, errInvalidEvent):
		return KindOther
	}
	return fallback
}

// ListenError is returned when a listener cannot be installed.
type ListenError struct {
	Kind ErrorKind
	Err  error
}

func (e *ListenError) Error() string { return "listen: " + e.Kind.String() + ": " + e.Err.Error() }
func (e *ListenError) Unwrap() error { return e.Err }

// GrabError is returned when a grab cannot be installed.
type GrabError struct {
	Kind ErrorKind
	Err  error
}

func (e *GrabError) Error() string { return "grab: " + e.Kind.String() + ": " + e.Err.Error() }
func (e *GrabError) Unwrap() error { return e.Err }

// SimulateError is returned by a failed Simulate call. It never leaves the
// injector in a state that affects later calls.
type SimulateError struct {
	Kind  ErrorKind
	Event EventType
	Err   error
}

func (e *SimulateError) Error() string {
	return fmt.Sprintf("simulate %s: %s: %v", e.Event, e.Kind, e.Err)
}
func (e *SimulateError) Unwrap() error { return e.Err }

type DisplayError struct {
	Kind ErrorKind
	Err  error
}

func (e *DisplayError) Error() string { return "display: " + e.Kind.String() + ": " + e.Err.Error() }
func (e *DisplayError) Unwrap() error { return e.Err }

func newListenError(err error) error {
	if err == nil {
		return nil
	}
	var le *ListenError
	if errors.As(err, &le) {
		return le
	}
	return &ListenError{Kind: kindOf(err, KindHookFailed), Err: err}
}

func newGrabError(err error) error {
	if err == nil {
		return nil
	}
	var ge *GrabError
	if errors.As(err, &ge) {
		return ge
	}
	return &GrabError{Kind: kindOf(err, KindHookFailed), Err: err}
}

func newSimulateError(et EventType, err error) *SimulateError {
	var se *SimulateError
	if errors.As(err, &se) {
		return se
	}
	return &SimulateError{Kind: kindOf(err, KindInjectFailed), Event: et, Err: err}
}

func newDisplayError(err error) error {
	if err == nil {
		return nil
	}
	var de *DisplayError
	if errors.As(err, &de) {
		return de
	}
	return &DisplayError{Kind: kindOf(err, KindOther), Err: err}
}
