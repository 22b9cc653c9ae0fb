package publish

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Purger removes expired replay records.
type Purger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Worker periodically drops publish_requests past the retention window.
type Worker struct {
	requests  Purger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func NewWorker(requests Purger, interval, retention time.Duration) *Worker {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &Worker{
		requests:  requests,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background loop.
func (w *Worker) Start() {
	log.Info().Dur("interval", w.interval).Dur("retention", w.retention).Msg("Starting idempotency sweeper")
	go w.loop()
}

// Stop ends the loop and waits for an in-flight sweep.
func (w *Worker) Stop() {
	log.Info().Msg("Stopping idempotency sweeper")
	close(w.stopCh)
	<-w.doneCh
}

func (w *Worker) loop() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep()

	for {
		select {
		case <-ticker.C:
			w.sweep()
		case <-w.stopCh:
			return
		}
	}
}

func (w *Worker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := w.requests.PurgeOlderThan(ctx, time.Now().Add(-w.retention))
	if err != nil {
		log.Error().Err(err).Msg("Failed to purge publish requests")
		return
	}
	if n > 0 {
		log.Info().Int64("count", n).Msg("Purged expired publish requests")
	}
}
