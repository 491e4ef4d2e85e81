package upstream

import (
	"errors"
	"testing"
)

func TestErrorIsMatchesByType(t *testing.T) {
	err := &Error{Type: TypeNetwork, Message: "connection reset"}
	target := &Error{Type: TypeNetwork}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match on Type")
	}

	other := &Error{Type: TypeServer}
	if errors.Is(err, other) {
		t.Error("errors.Is should not match a different Type")
	}
}

func TestErrorAsExtractsStructuredFields(t *testing.T) {
	var err error = &Error{Type: TypeOpenSky, Message: "HTTP 429", StatusCode: 429}

	var uerr *Error
	if !errors.As(err, &uerr) {
		t.Fatal("errors.As should extract *Error")
	}
	if uerr.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", uerr.StatusCode)
	}
}

func TestClassifyStatusMapsKnownCodes(t *testing.T) {
	cases := map[int]ErrorType{
		401: TypeOpenSky,
		403: TypeOpenSky,
		429: TypeOpenSky,
		503: TypeOpenSky,
		500: TypeServer,
		502: TypeServer,
	}
	for status, want := range cases {
		got, ok := classifyStatus(status)
		if !ok {
			t.Errorf("classifyStatus(%d) reported ok=false", status)
		}
		if got != want {
			t.Errorf("classifyStatus(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestClassifyStatusIgnoresSuccess(t *testing.T) {
	if _, ok := classifyStatus(200); ok {
		t.Error("200 should not be classified as an error")
	}
}
