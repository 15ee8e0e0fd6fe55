package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reqcheck/pkg/observability"
)

// logHooks emits check and cache events through the CLI logger.
// Registered only in verbose mode.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnFileStart(_ context.Context, path string, packages int) {
	h.logger.Debugf("Checking %s (%d packages)", path, packages)
}

func (h *logHooks) OnPackageStart(_ context.Context, name, version string) {
	h.logger.Debugf("Looking up %s==%s", name, version)
}

func (h *logHooks) OnPackageDone(_ context.Context, name, version, verdict string, d time.Duration) {
	h.logger.Debugf("%s==%s: %s (%s)", name, version, verdict, d.Round(time.Millisecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debugf("Cache hit: %s", key)
}

func (h *logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debugf("Cache miss: %s", key)
}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debugf("Cache store: %s (%d bytes)", key, size)
}

// registerHooks wires the logging hooks into the observability registry.
func (c *CLI) registerHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetCheckHooks(h)
	observability.SetCacheHooks(h)
}

var (
	_ observability.CheckHooks = (*logHooks)(nil)
	_ observability.CacheHooks = (*logHooks)(nil)
)
