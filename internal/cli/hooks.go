package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depscan/pkg/observability"
)

// useHooks registers scan and cache hooks for one command run and returns a
// function restoring the previous ones.
func useHooks(logger *log.Logger, spinner *Spinner) func() {
	prevScan, prevCache := observability.Scan(), observability.Cache()
	observability.SetScanHooks(&scanHooks{logger: logger, spinner: spinner})
	observability.SetCacheHooks(&cacheHooks{logger: logger})
	return func() {
		observability.SetScanHooks(prevScan)
		observability.SetCacheHooks(prevCache)
	}
}

// scanHooks keeps the spinner's file counter current and traces files at
// debug level.
type scanHooks struct {
	logger  *log.Logger
	spinner *Spinner
	files   atomic.Int64
}

func (h *scanHooks) OnScanStart(_ context.Context, root string) {
	h.logger.Debug("scan started", "root", root)
}

func (h *scanHooks) OnFileProcessed(_ context.Context, path, dialect string, detections int, err error) {
	n := h.files.Add(1)
	if h.spinner != nil {
		h.spinner.SetMessage(fmt.Sprintf("Scanning… %d files", n))
	}
	if err == nil {
		h.logger.Debug("processed", "file", path, "dialect", dialect, "detections", detections)
	}
}

func (h *scanHooks) OnScanComplete(_ context.Context, root string, dependencies, errs int, d time.Duration) {
	h.logger.Debug("scan complete", "root", root, "dependencies", dependencies, "errors", errs, "took", d.Round(time.Millisecond))
}

// cacheHooks traces extraction cache traffic at debug level.
type cacheHooks struct {
	logger *log.Logger
}

func (h *cacheHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *cacheHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *cacheHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}
