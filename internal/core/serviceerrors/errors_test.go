package serviceerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestServiceError(t *testing.T) {
	t.Run("messages", func(t *testing.T) {
		cases := []struct {
			err  *ServiceError
			kind ErrorKind
			msg  string
		}{
			{NewStockExceededError(), KindStockExceeded, "requested quantity exceeds stock"},
			{NewAddFailedError(nil), KindAddFailed, "failed to add product"},
			{NewRemoveFailedError(nil), KindRemoveFailed, "failed to remove product"},
			{NewUpdateFailedError(nil), KindUpdateFailed, "failed to update quantity"},
		}
		for _, tc := range cases {
			if tc.err.Kind != tc.kind {
				t.Fatalf("expected kind %d, got %d", tc.kind, tc.err.Kind)
			}
			if tc.err.Error() != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, tc.err.Error())
			}
		}
	})

	t.Run("wraps cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewAddFailedError(cause)
		if !errors.Is(err, cause) {
			t.Fatal("expected errors.Is to find the cause")
		}
		if err.Error() != "failed to add product: connection refused" {
			t.Fatalf("unexpected error string %q", err.Error())
		}
		if err.Message != MessageAddFailed {
			t.Fatalf("expected user message untouched, got %q", err.Message)
		}
	})
}

func TestIsOfKind(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewRemoveFailedError(nil))
	if !IsOfKind(wrapped, KindRemoveFailed) {
		t.Fatal("expected KindRemoveFailed")
	}
	if IsOfKind(wrapped, KindAddFailed) {
		t.Fatal("did not expect KindAddFailed")
	}
	if IsOfKind(errors.New("plain"), KindAddFailed) {
		t.Fatal("plain errors have no kind")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(NewStockExceededError(), "x"); got != MessageStockExceeded {
		t.Fatalf("expected %q, got %q", MessageStockExceeded, got)
	}
	if got := UserMessage(errors.New("boom"), MessageAddFailed); got != MessageAddFailed {
		t.Fatalf("expected fallback, got %q", got)
	}
}
