package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapPreservesMarker(t *testing.T) {
	err := Wrap(ErrValidation, "ratings", "load source", "title missing", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !IsValidation(err) {
		t.Fatal("IsValidation should report true")
	}
}

func TestWrapIncludesCause(t *testing.T) {
	cause := errors.New("exit status 7")
	err := Wrap(ErrTransient, "effector", "rate", "command failed", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause not wrapped: %v", err)
	}
	if !IsTransient(err) {
		t.Fatal("IsTransient should report true")
	}
	if !strings.Contains(err.Error(), "effector: rate: command failed") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "effector", "rate", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient default, got %v", err)
	}
}

func TestWrapEmptyContext(t *testing.T) {
	err := Wrap(ErrNotFound, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %v", err)
	}
	if !IsNotFound(err) {
		t.Fatal("IsNotFound should report true")
	}
}
