package loader

import (
	"context"
	"log/slog"
	"regexp"
	"time"
)

// Observer receives one call per completed load.
type Observer interface {
	ObserveLoad(chained bool, took time.Duration, err error)
}

type instrumented struct {
	next Hook
	obs  Observer
	log  *slog.Logger
}

// Instrument wraps h with logging and load metrics. Results and errors pass
// through untouched.
func Instrument(h Hook, obs Observer, log *slog.Logger) Hook {
	return &instrumented{next: h, obs: obs, log: log}
}

func (h *instrumented) Name() string { return h.next.Name() }

func (h *instrumented) Filter() *regexp.Regexp { return h.next.Filter() }

func (h *instrumented) Load(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	res, err := h.next.Load(ctx, req)
	took := time.Since(start)
	chained := req.ChainedContents != nil
	if h.obs != nil {
		h.obs.ObserveLoad(chained, took, err)
	}
	if h.log != nil {
		if err != nil {
			h.log.Error("svg load failed", "path", req.Path, "chained", chained, "err", err)
		} else {
			h.log.Debug("svg loaded", "path", req.Path, "chained", chained, "bytes", len(res.Contents), "took", took)
		}
	}
	return res, err
}
