package publish

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (p *fakePurger) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoffs = append(p.cutoffs, cutoff)
	return 3, p.err
}

func (p *fakePurger) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cutoffs)
}

func TestWorkerSweepsOnStartAndTick(t *testing.T) {
	purger := &fakePurger{}
	w := NewWorker(purger, 20*time.Millisecond, time.Hour)

	w.Start()
	require.Eventually(t, func() bool { return purger.calls() >= 2 }, 2*time.Second, 5*time.Millisecond)
	w.Stop()

	purger.mu.Lock()
	first := purger.cutoffs[0]
	purger.mu.Unlock()
	assert.WithinDuration(t, time.Now().Add(-time.Hour), first, 5*time.Second)

	n := purger.calls()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, purger.calls(), "no sweeps after Stop")
}

func TestWorkerDefaultsAndErrors(t *testing.T) {
	w := NewWorker(&fakePurger{err: errors.New("db down")}, 0, 0)
	assert.Equal(t, time.Hour, w.interval)
	assert.Equal(t, 24*time.Hour, w.retention)

	w.Start()
	w.Stop()
}
