package tradeoffer

import (
	"errors"
	"testing"

	"github.com/tradewind-gg/steam/steamlang"
)

func TestErrorForEResult(t *testing.T) {
	tests := []struct {
		result steamlang.EResult
		want   error
	}{
		{steamlang.OKResult, nil},
		{steamlang.InvalidResult, nil},
		{steamlang.InvalidStateResult, InvalidStateError},
		{steamlang.AccessDeniedResult, AccessDeniedError},
		{steamlang.TimeoutResult, TimeoutError},
		{steamlang.LimitExceededResult, TooManyTradeOffersError},
		{steamlang.RevokedResult, ItemsDontExistError},
	}

	for _, test := range tests {
		if got := ErrorForEResult(test.result); !errors.Is(got, test.want) {
			t.Errorf("ErrorForEResult(%v) = %v, want %v", test.result, got, test.want)
		}
	}

	if err := ErrorForEResult(steamlang.BannedResult); err == nil {
		t.Error("unmapped non-OK result must still produce an error")
	}
}

func TestErrorForStrError(t *testing.T) {
	tests := []struct {
		message string
		want    error
	}{
		{"There was an error accepting this trade offer. Please try again later. (11)", InvalidStateError},
		{"There was an error sending your trade offer. Please try again later. (15)", AccessDeniedError},
		{"There was an error sending your trade offer. Please try again later. (25)", TooManyTradeOffersError},
		{"There was an error sending your trade offer. Please try again later. (26)", ItemsDontExistError},
	}

	for _, test := range tests {
		if got := ErrorForStrError(test.message); !errors.Is(got, test.want) {
			t.Errorf("ErrorForStrError(%q) = %v, want %v", test.message, got, test.want)
		}
	}
}

func TestErrorForStrErrorWithoutCode(t *testing.T) {
	err := ErrorForStrError("something unexpected happened")
	if err == nil {
		t.Fatal("a strError body always signals failure")
	}
	if got := err.Error(); got != "steam rejected the call: something unexpected happened" {
		t.Errorf("unmapped message must come back verbatim, got %q", got)
	}
}

// A code that maps to nil in the result table (OK, Invalid) still has a
// non-empty strError attached, so the verbatim fallback must kick in.
func TestErrorForStrErrorWithBenignCode(t *testing.T) {
	if err := ErrorForStrError("odd but present (1)"); err == nil {
		t.Error("expected a fallback error for a benign code")
	}
}
