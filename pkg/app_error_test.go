package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("invalid state: cannot finalize from contested")

	t.Run("client error exposes details", func(t *testing.T) {
		appErr := NewDomainError("INVALID_STATE", "Operation not allowed", cause, http.StatusConflict)
		body := appErr.ToHTTPError()
		if body.Code != "INVALID_STATE" || body.Details != cause.Error() {
			t.Fatalf("unexpected body: %+v", body)
		}
		if !errors.Is(appErr, cause) {
			t.Fatalf("expected the cause to be unwrapped")
		}
	})

	t.Run("server error hides details", func(t *testing.T) {
		appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if body := appErr.ToHTTPError(); body.Details != "" {
			t.Fatalf("expected no details, got %q", body.Details)
		}
	})

	t.Run("simple", func(t *testing.T) {
		appErr := NewDomainErrorSimple("PREFACTURATION_NOT_FOUND", "Prefacturation not found", http.StatusNotFound)
		if appErr.Error() != "PREFACTURATION_NOT_FOUND: Prefacturation not found" {
			t.Fatalf("unexpected message: %s", appErr.Error())
		}
	})
}
