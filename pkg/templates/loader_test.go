package templates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ai-resumelab-be/internal/apperr"
)

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"modern", "modern"},
		{"two_column-v2", "two_column-v2"},
		{"", ""},
		{"../secret", ""},
		{"a/b", ""},
		{"a.tex", ""},
		{"spaced name", ""},
	}
	for _, tt := range tests {
		if got := SanitizeID(tt.id); got != tt.want {
			t.Errorf("SanitizeID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "modern.tex"), []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader(dir)

	got, err := l.Load("modern")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "content" {
		t.Errorf("Load() = %q", got)
	}

	// Cached copy survives removal of the backing file.
	os.Remove(filepath.Join(dir, "modern.tex"))
	got, err = l.Load("modern")
	if err != nil || got != "content" {
		t.Errorf("cached Load() = %q, %v", got, err)
	}
}

func TestLoaderLoadMissing(t *testing.T) {
	l := NewLoader(t.TempDir())
	_, err := l.Load("ghost")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoaderLoadUnsafeID(t *testing.T) {
	l := NewLoader(t.TempDir())
	_, err := l.Load("../../etc/passwd")
	var invalid *apperr.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Errorf("error = %v, want InvalidInputError", err)
	}
}
