package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized},
		{code: CodeIdempotency, status: http.StatusConflict, detailsOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests},
		{code: CodeInternal, status: http.StatusInternalServerError, retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, retryable: true, detailsOK: true},
		{code: CodeNotOwner, status: http.StatusForbidden},
		{code: CodeNotGuest, status: http.StatusForbidden},
		{code: CodeNotAdmin, status: http.StatusForbidden},
		{code: CodeNotWhitelisted, status: http.StatusForbidden},
		{code: CodeAlreadyUnlisted, status: http.StatusUnprocessableEntity, detailsOK: true},
		{code: CodePropertyBooked, status: http.StatusUnprocessableEntity, detailsOK: true},
		{code: CodePropertyInactive, status: http.StatusUnprocessableEntity, detailsOK: true},
		{code: CodeAlreadyBooked, status: http.StatusConflict, detailsOK: true},
		{code: CodeInvalidRange, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeWrongPayment, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeSettlementFailed, status: http.StatusServiceUnavailable, retryable: true, detailsOK: true},
		{code: CodeUnknownProperty, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage == "" {
			t.Fatalf("code %s has no public message", tt.code)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "foo"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeAlreadyBooked, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeAlreadyBooked {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeNotOwner, "no entry")
	if got := As(err); got == nil || got.Code() != CodeNotOwner {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestHasCode(t *testing.T) {
	err := New(CodeWrongPayment, "short")
	if !HasCode(err, CodeWrongPayment) {
		t.Fatalf("expected HasCode to match")
	}
	if HasCode(err, CodeNotGuest) {
		t.Fatalf("HasCode matched the wrong code")
	}
	if HasCode(stdErrors.New("plain"), CodeWrongPayment) {
		t.Fatalf("HasCode matched an untyped error")
	}
}
