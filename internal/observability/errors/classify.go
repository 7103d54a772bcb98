// Package errors turns print bridge failures into short labels for metrics and logs.
package errors

import (
	"context"
	goerrors "errors"
	"net"
	"reflect"
	"strings"
	"syscall"

	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
)

// Error classes reported for the failures the bridge knows about.
const (
	ClassTimeout           = "timeout"
	ClassCanceled          = "canceled"
	ClassConnectionRefused = "connection_refused"
	ClassUnreachable       = "unreachable"
	ClassConnectionReset   = "connection_reset"
	ClassUnknown           = "unknown"
)

// Classify returns a normalized error class suitable for tagging metrics and logs.
// Socket-level causes win over the wrapping AppError code so a failed delivery is
// reported as timeout, connection_refused and so on. Other AppErrors report their
// code. Anything else falls back to the innermost concrete type name.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	if class := classifyNetwork(err); class != "" {
		return class
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}
	return typeName(err)
}

func classifyNetwork(err error) string {
	switch {
	case goerrors.Is(err, context.DeadlineExceeded):
		return ClassTimeout
	case goerrors.Is(err, context.Canceled):
		return ClassCanceled
	case goerrors.Is(err, syscall.ECONNREFUSED):
		return ClassConnectionRefused
	case goerrors.Is(err, syscall.ECONNRESET), goerrors.Is(err, syscall.EPIPE):
		return ClassConnectionReset
	case goerrors.Is(err, syscall.EHOSTUNREACH), goerrors.Is(err, syscall.ENETUNREACH):
		return ClassUnreachable
	}

	var netErr net.Error
	if goerrors.As(err, &netErr) && netErr.Timeout() {
		return ClassTimeout
	}
	return ""
}

func typeName(err error) string {
	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ClassUnknown
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return ClassUnknown
	}
	return name
}
