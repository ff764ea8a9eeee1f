// Package notifier broadcasts collection events to the social platforms.
// Platforms are independent: a failure on one never blocks the others, and
// no delivery, ordering, or retry guarantee is made.
package notifier

import (
	"context"
	"sync"

	"sigil/domain/interfaces"
	"sigil/metrics"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Platform posts one announcement to one social network.
type Platform interface {
	Name() string
	Post(ctx context.Context, text string, links []string) error
}

// Broadcaster fans announcements out to all configured platforms.
type Broadcaster struct {
	platforms []Platform
}

// NewBroadcaster creates a broadcaster over the given platforms. Nil
// entries (unconfigured platforms) are skipped.
func NewBroadcaster(platforms ...Platform) *Broadcaster {
	b := &Broadcaster{}
	for _, p := range platforms {
		if p != nil {
			b.platforms = append(b.platforms, p)
		}
	}
	return b
}

// Broadcast posts to every platform in parallel and reports per-platform
// outcomes. It never returns an error; partial delivery is normal.
func (b *Broadcaster) Broadcast(ctx context.Context, text string, links []string) *interfaces.BroadcastReport {
	report := &interfaces.BroadcastReport{
		Platforms: make(map[string]bool),
		Errors:    make(map[string]string),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, platform := range b.platforms {
		g.Go(func() error {
			err := platform.Post(gctx, text, links)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Platforms[platform.Name()] = false
				report.Errors[platform.Name()] = err.Error()
				metrics.Broadcasts.WithLabelValues(platform.Name(), "error").Inc()
				log.WithField("platform", platform.Name()).Warnf("Broadcast failed: %v", err)
			} else {
				report.Platforms[platform.Name()] = true
				metrics.Broadcasts.WithLabelValues(platform.Name(), "ok").Inc()
			}
			return nil
		})
	}

	g.Wait()
	return report
}
