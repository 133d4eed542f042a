// Package poller periodically refreshes the cached global feed so the
// snapshot does not go stale between user intents.
package poller

import (
	"context"
	"log/slog"
	"time"

	"story_bot/internal/model"
)

// Refresher is the interface for re-fetching the global feed.
type Refresher interface {
	FetchGlobalFeed(ctx context.Context) ([]model.Story, error)
}

// Poller refreshes the global feed on a fixed interval.
type Poller struct {
	engine Refresher
	log    *slog.Logger
	tick   time.Duration
}

// New creates a Poller with the default 10-minute interval.
func New(engine Refresher, log *slog.Logger) *Poller {
	return &Poller{
		engine: engine,
		log:    log,
		tick:   10 * time.Minute,
	}
}

// SetTickInterval overrides the default refresh interval.
func (p *Poller) SetTickInterval(d time.Duration) {
	p.tick = d
}

// Run starts the refresh loop, blocking until ctx is cancelled. The feed
// is fetched once immediately so the first render has data.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	stories, err := p.engine.FetchGlobalFeed(ctx)
	if err != nil {
		p.log.Warn("refresh global feed", "error", err)
		return
	}
	p.log.Debug("global feed refreshed", "stories", len(stories))
}
