package catalog

import (
	"context"
	"time"
)

// Source yields the raw catalog document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// Recorder receives load and search measurements.
type Recorder interface {
	LoadCompleted(source string, dur time.Duration, items, types, platforms int)
	LoadFailed(source string, dur time.Duration)
	Searched(dur time.Duration, matches int)
}

type nopRecorder struct{}

func (nopRecorder) LoadCompleted(string, time.Duration, int, int, int) {}
func (nopRecorder) LoadFailed(string, time.Duration)                  {}
func (nopRecorder) Searched(time.Duration, int)                        {}
