package observability

import (
	"context"
	"testing"
	"time"
)

type recordingCheckHooks struct {
	NoopCheckHooks
	done int
}

func (h *recordingCheckHooks) OnPackageDone(context.Context, string, string, string, time.Duration) {
	h.done++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string) {
	h.hits++
}

func TestSetCheckHooks(t *testing.T) {
	defer Reset()

	rec := &recordingCheckHooks{}
	SetCheckHooks(rec)

	Check().OnPackageDone(context.Background(), "flask", "2.0.0", "compatible", time.Millisecond)
	if rec.done != 1 {
		t.Errorf("done = %d, want 1", rec.done)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	Cache().OnCacheHit(context.Background(), "pypi:flask")
	if rec.hits != 1 {
		t.Errorf("hits = %d, want 1", rec.hits)
	}
}

func TestSetHooks_NilIgnored(t *testing.T) {
	defer Reset()

	SetCheckHooks(nil)
	SetCacheHooks(nil)

	// No-op defaults must survive a nil registration.
	Check().OnFileStart(context.Background(), "requirements.txt", 0)
	Cache().OnCacheMiss(context.Background(), "key")
}

func TestReset(t *testing.T) {
	rec := &recordingCheckHooks{}
	SetCheckHooks(rec)
	Reset()

	Check().OnPackageDone(context.Background(), "flask", "2.0.0", "compatible", 0)
	if rec.done != 0 {
		t.Errorf("hooks should be no-op after Reset, got done = %d", rec.done)
	}
}
