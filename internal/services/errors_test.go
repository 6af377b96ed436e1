package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"curator/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "fetch", "yt-dlp", "download failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"fetch", "yt-dlp", "download failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerFallsBackToTransient(t *testing.T) {
	err := services.Wrap(nil, "scan", "hash", "", errors.New("io"))
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected generic detail, got %q", err.Error())
	}
}

func TestRunContextRoundTrip(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "abc")
	ctx = services.WithMode(ctx, "title")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "abc" {
		t.Fatalf("run id = %q, %v", id, ok)
	}
	if mode, ok := services.ModeFromContext(ctx); !ok || mode != "title" {
		t.Fatalf("mode = %q, %v", mode, ok)
	}

	if _, ok := services.RunIDFromContext(context.Background()); ok {
		t.Fatal("expected missing run id")
	}
}
