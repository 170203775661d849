package entities

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("count failed: %w", NewError(InvalidReference, "complex 999 not found"))

	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("Expected wrapped error to match ErrInvalidReference")
	}
	if errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected wrapped error not to match ErrInvalidQuantity")
	}
	if KindOf(err) != InvalidReference {
		t.Errorf("Expected kind InvalidReference, got %s", KindOf(err))
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Errorf("Expected zero kind for plain error")
	}
}

func TestErrorKind_Strings(t *testing.T) {
	testCases := []struct {
		kind ErrorKind
		name string
		code string
	}{
		{InvalidInput, "InvalidInput", "invalid_input"},
		{InvalidQuantity, "InvalidQuantity", "invalid_quantity"},
		{InvalidReference, "InvalidReference", "invalid_reference"},
		{UnknownPart, "UnknownPart", "unknown_part"},
		{Overflow, "Overflow", "overflow"},
		{NotFound, "NotFound", "not_found"},
		{Conflict, "Conflict", "conflict"},
		{ErrorKind(0), "Unknown", "internal"},
	}

	for _, tc := range testCases {
		if tc.kind.String() != tc.name {
			t.Errorf("Expected %s, got %s", tc.name, tc.kind.String())
		}
		if tc.kind.Code() != tc.code {
			t.Errorf("Expected code %s, got %s", tc.code, tc.kind.Code())
		}
	}

	if ErrOverflow.Error() != "Overflow" {
		t.Errorf("Expected sentinel message 'Overflow', got %q", ErrOverflow.Error())
	}
}
