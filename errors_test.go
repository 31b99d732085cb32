package post

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrors_ErrorCode(t *testing.T) {
	testCases := []ErrorCode{
		ErrCodeNone,
		ErrCodeInvalidEvent,
		ErrCodeInvalidEventData,
	}

	for i, code := range testCases {
		if int(code) != i {
			t.Errorf("Expected error code %d to have value %d", i, int(code))
		}
		if code.String() == "" {
			t.Errorf("Expected a name for error code %d", i)
		}
	}

	if ErrorCode(99).String() != "error_code(99)" {
		t.Errorf("Unexpected name for unknown code: %s", ErrorCode(99).String())
	}
}

func TestEventError_Creation(t *testing.T) {
	err := NewUnknownEventError("publish", StateDraft)

	if err.Code != ErrCodeInvalidEvent {
		t.Errorf("Expected error code %v, got %v", ErrCodeInvalidEvent, err.Code)
	}

	errorString := err.Error()
	if !strings.Contains(errorString, "publish") || !strings.Contains(errorString, StateDraft) {
		t.Errorf("Expected error string to name event and state, got %q", errorString)
	}
}

func TestEventError_Matching(t *testing.T) {
	wrapped := fmt.Errorf("handling: %w", NewEventError(ErrCodeInvalidEventData, EventAddText, StateDraft, "bad data"))

	if !errors.Is(wrapped, ErrInvalidEvent) {
		t.Error("Expected wrapped EventError to match ErrInvalidEvent")
	}

	if !IsEventError(wrapped) {
		t.Error("Expected IsEventError to see through wrapping")
	}

	if GetErrorCode(wrapped) != ErrCodeInvalidEventData {
		t.Errorf("Expected code %v, got %v", ErrCodeInvalidEventData, GetErrorCode(wrapped))
	}
}

func TestErrors_UnknownErrors(t *testing.T) {
	plain := errors.New("plain")

	if IsEventError(plain) || IsObserverError(plain) {
		t.Error("Plain error must not match typed errors")
	}

	if GetErrorCode(plain) != ErrCodeNone {
		t.Errorf("Expected ErrCodeNone, got %v", GetErrorCode(plain))
	}
}

func TestObserverError(t *testing.T) {
	err := &ObserverError{Callback: "OnTransition", Value: "boom"}

	if !strings.Contains(err.Error(), "OnTransition") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
