// Package worker runs the in-process daily jobs so the service does not
// depend on an external cron scheduler.
package worker

import (
	"context"
	"time"

	"sigil/service"

	log "github.com/sirupsen/logrus"
)

// Workers owns the background settlement and announcement jobs.
type Workers struct {
	settlement *service.SettlementService
	notify     *service.NotifyService
}

// New creates the worker set.
func New(settlement *service.SettlementService, notify *service.NotifyService) *Workers {
	return &Workers{settlement: settlement, notify: notify}
}

// StartDailyWorker starts a background worker that settles past days and
// broadcasts announcements once per day at the given UTC hour, plus one
// catch-up run at startup. Returns a cleanup function to stop the worker
// gracefully.
func (w *Workers) StartDailyWorker(ctx context.Context, runHourUTC int) func() {
	stopChan := make(chan struct{})

	calculateNextRun := func() time.Duration {
		now := time.Now().UTC()
		next := time.Date(now.Year(), now.Month(), now.Day(), runHourUTC, 0, 0, 0, time.UTC)

		// If the run time has already passed today, schedule for tomorrow
		if now.After(next) || now.Equal(next) {
			next = next.Add(24 * time.Hour)
		}

		return next.Sub(now)
	}

	runDaily := func() {
		results, err := w.settlement.SettleAllPast(context.Background())
		if err != nil {
			log.Errorf("Error settling past days: %v", err)
		} else {
			settled := 0
			for _, result := range results {
				if result.Settled() {
					settled++
				}
			}
			log.Infof("Daily settlement run complete: %d of %d days settled", settled, len(results))
		}

		report, err := w.notify.Notify(context.Background())
		if err != nil {
			log.Errorf("Error running daily announcements: %v", err)
		} else {
			log.Infof("Daily announcement run complete: %d events posted", len(report.Posted))
		}
	}

	go func() {
		log.Infof("Daily worker started, next run at %02d:00 UTC", runHourUTC)

		// Catch up on anything missed while the service was down
		runDaily()

		for {
			waitDuration := calculateNextRun()
			log.Infof("Daily worker waiting %v until next run", waitDuration)

			select {
			case <-ctx.Done():
				log.Info("Daily worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Daily worker shutting down (stop requested)...")
				return
			case <-time.After(waitDuration):
				runDaily()
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}
