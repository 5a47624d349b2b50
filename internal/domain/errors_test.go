package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestLoadError_Is(t *testing.T) {
	err := NewLoadError("file:./data.json", fs.ErrNotExist)

	if !errors.Is(err, ErrCatalogLoad) {
		t.Error("expected ErrCatalogLoad")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected underlying cause")
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Source != "file:./data.json" {
		t.Errorf("expected LoadError with source, got %v", err)
	}
}

func TestLoadError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"plain cause",
			NewLoadError("http:https://x", errors.New("unexpected status 500")),
			"catalog load failed: http:https://x: unexpected status 500",
		},
		{
			"cause already a load failure",
			NewLoadError("file:d.json", fmt.Errorf("%w: parse document: bad", ErrCatalogLoad)),
			"catalog load failed: parse document: bad (source file:d.json)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
