package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid", err: fmt.Errorf("%w: %w", usecase.ErrInvalidInput, pickem.ErrInvalidPickCount), want: http.StatusBadRequest},
		{name: "unauthenticated", err: usecase.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "not a member", err: fmt.Errorf("%w: not a member", usecase.ErrForbidden), want: http.StatusForbidden},
		{name: "not found", err: usecase.ErrNotFound, want: http.StatusNotFound},
		{name: "duplicate submission", err: fmt.Errorf("%w: %w", usecase.ErrConflict, pickem.ErrDuplicateSubmission), want: http.StatusConflict},
		{name: "store down", err: fmt.Errorf("%w: boom", usecase.ErrDependencyUnavailable), want: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapError(tc.err).HTTPStatus; got != tc.want {
				t.Fatalf("mapError(%v)=%d want=%d", tc.err, got, tc.want)
			}
		})
	}
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: connection refused to 10.0.0.1"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.1") {
		t.Fatalf("internal error detail leaked: %s", rec.Body.String())
	}
}

func TestMapError_DuplicateSubmissionReason(t *testing.T) {
	got := mapError(fmt.Errorf("%w: %w", usecase.ErrConflict, pickem.ErrDuplicateSubmission))
	if got.Reason != "duplicateSubmission" {
		t.Fatalf("expected duplicateSubmission reason, got %q", got.Reason)
	}
}

func TestWriteError_ListsEachJoinedViolation(t *testing.T) {
	violations := errors.Join(
		fmt.Errorf("%w: pick 1", pickem.ErrMissingGameID),
		fmt.Errorf("%w: pick 2 must be between 1 and 5", pickem.ErrInvalidConfidence),
	)
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, violations))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || len(body.Error.Errors) != 2 {
		t.Fatalf("expected two error items, got %+v", body.Error)
	}
	if !strings.Contains(body.Error.Errors[1].Message, "confidence out of range") {
		t.Fatalf("unexpected second item: %+v", body.Error.Errors[1])
	}
}

func TestJoinedViolations_SingleErrorIsNotExpanded(t *testing.T) {
	err := fmt.Errorf("%w: %w", usecase.ErrInvalidInput, pickem.ErrInvalidPickCount)
	if got := joinedViolations(err); len(got) != 0 {
		t.Fatalf("expected no joined violations, got %v", got)
	}
}
