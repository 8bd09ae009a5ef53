package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(ErrDowngrade, "reconcile", "validate", "feed is ahead", base)

	if !errors.Is(err, ErrDowngrade) {
		t.Fatal("expected errors.Is to match ErrDowngrade")
	}
	if !errors.Is(err, base) {
		t.Fatal("expected errors.Is to match wrapped cause")
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "publish", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatal("nil marker should default to ErrTransient")
	}
}

func TestWrapDetailComposition(t *testing.T) {
	err := Wrap(ErrValidation, "reconcile", "compare", "", nil)
	want := "validation error: reconcile: compare"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}

	err = Wrap(ErrValidation, "", "", "", nil)
	want = "validation error: service failure"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
