package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/platform/tracing"
	"github.com/riskibarqy/pickem-league/internal/usecase"
	"go.opentelemetry.io/otel/trace"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "pickem-league"
	internalMessage  = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorMappings is checked in order; the first matching sentinel wins.
// ErrForbidden wraps ErrUnauthorized and must stay ahead of it.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{pickem.ErrDuplicateSubmission, mappedError{http.StatusConflict, "duplicateSubmission", "ALREADY_EXISTS"}},
	{usecase.ErrConflict, mappedError{http.StatusConflict, "conflict", "ALREADY_EXISTS"}},
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrForbidden, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalError = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := err.Error()
	items := errorItems(mapped.Reason, err)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		tracing.Fail(trace.SpanFromContext(ctx), err)
	}
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = internalMessage
		items = []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}}
	}

	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  items,
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New(internalMessage))
}

func mapError(err error) mappedError {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}
	return internalError
}

// errorItems lists each violation of a joined validation error separately so
// clients can show every problem with a pick sheet at once.
func errorItems(reason string, err error) []googleErrorItem {
	violations := joinedViolations(err)
	if len(violations) == 0 {
		return []googleErrorItem{{Domain: errorDomain, Reason: reason, Message: err.Error()}}
	}

	items := make([]googleErrorItem, 0, len(violations))
	for _, v := range violations {
		items = append(items, googleErrorItem{Domain: errorDomain, Reason: reason, Message: v.Error()})
	}
	return items
}

// joinedViolations returns the members of the first errors.Join found in the
// chain. Multi-%w wraps from fmt.Errorf are walked through, not expanded.
func joinedViolations(err error) []error {
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		parts := e.Unwrap()
		if isJoined(err, parts) {
			return parts
		}
		for _, part := range parts {
			if found := joinedViolations(part); len(found) > 0 {
				return found
			}
		}
	case interface{ Unwrap() error }:
		return joinedViolations(e.Unwrap())
	}
	return nil
}

func isJoined(err error, parts []error) bool {
	if len(parts) < 2 {
		return false
	}
	msgs := make([]string, len(parts))
	for i, part := range parts {
		msgs[i] = part.Error()
	}
	return err.Error() == strings.Join(msgs, "\n")
}
