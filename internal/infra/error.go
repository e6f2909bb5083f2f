package infra

import (
	"errors"
	"log/slog"

	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/shared"
)

type BackendErrorKind string

type BackendError struct {
	Kind       BackendErrorKind
	StatusCode int
	msg        string
	err        error // wrapped low-level error
}

func (e BackendError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e BackendError) Unwrap() error {
	return e.err
}

// Is maps backend kinds onto the engine's error categories.
func (e BackendError) Is(target error) bool {
	switch target {
	case errs.ErrServerRejected:
		return e.Kind != KindConflict && e.Kind != KindNotFound
	case errs.ErrHandledElsewhere:
		return e.Kind == KindConflict || e.Kind == KindNotFound
	case shared.ErrBookingGone:
		return e.Kind == KindNotFound
	case shared.ErrTransient:
		return e.Kind == KindTransport || e.StatusCode >= 500
	}
	return false
}

func WrapBackendErr(slogger *slog.Logger, kind BackendErrorKind, statusCode int, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if statusCode != 0 {
		logArgs = append(logArgs, slog.Int("status_code", statusCode))
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	slogger.Warn("Backend error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return BackendError{Kind: kind, StatusCode: statusCode, msg: msg, err: err}
}

func IsKind(err error, kind BackendErrorKind) bool {
	var e BackendError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindTransport BackendErrorKind = "TRANSPORT"
	KindRejected  BackendErrorKind = "REJECTED"
	KindConflict  BackendErrorKind = "CONFLICT"
	KindNotFound  BackendErrorKind = "NOT_FOUND"
	KindDecode    BackendErrorKind = "DECODE"
)
