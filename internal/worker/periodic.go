package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// periodic calls run on every tick until stopped.
type periodic struct {
	name     string
	interval time.Duration
	eager    bool // run once before the first tick
	run      func(ctx context.Context) (int64, error)
	log      *zap.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newPeriodic(name string, interval time.Duration, eager bool, run func(ctx context.Context) (int64, error), log *zap.Logger) *periodic {
	return &periodic{
		name:     name,
		interval: interval,
		eager:    eager,
		run:      run,
		log:      log.With(zap.String("worker", name)),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start blocks until ctx is done or Stop is called.
func (p *periodic) Start(ctx context.Context) {
	p.log.Info("Worker started", zap.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer close(p.doneCh)

	if p.eager {
		p.tick(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			p.log.Info("Worker stopped (context cancelled)")
			return
		case <-p.stopCh:
			p.log.Info("Worker stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// Stop signals the loop and waits for the tick in progress.
func (p *periodic) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	<-p.doneCh
}

func (p *periodic) tick(ctx context.Context) {
	rows, err := p.run(ctx)
	if err != nil {
		p.log.Error("Failed to run "+p.name, zap.Error(err))
		return
	}

	if rows > 0 {
		p.log.Info("Worker run finished", zap.Int64("rows", rows))
	} else {
		p.log.Debug("Worker run found nothing to do")
	}
}
