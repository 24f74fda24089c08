package bridge

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultPollInterval is how often the input-frequency statistic is sampled
// while the agent view is mounted.
const DefaultPollInterval = 2 * time.Second

// SampleFunc queries the host for the current input-frequency statistic
// (events per second since the previous sample).
type SampleFunc func() (float64, error)

// Poller samples the host's input-frequency statistic on a fixed interval
// and hands each sample to a callback. It must be stopped when the view that
// owns it unmounts; Stop is synchronous and idempotent, so no tick can fire
// after it returns.
type Poller struct {
	interval time.Duration
	sample   SampleFunc
	onSample func(float64)
	log      *zap.Logger

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
	done     chan struct{}
	finished chan struct{}
}

// NewPoller builds a poller; call Start to begin sampling.
func NewPoller(interval time.Duration, sample SampleFunc, onSample func(float64), log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{
		interval: interval,
		sample:   sample,
		onSample: onSample,
		log:      log,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start launches the sampling loop. Starting twice is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		defer close(p.finished)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				v, err := p.sample()
				if err != nil {
					p.log.Warn("input frequency sample failed", zap.Error(err))
					continue
				}
				p.onSample(v)
			}
		}
	}()
}

// Stop halts the loop and waits for it to finish. Safe to call more than
// once, and safe on a poller that was never started.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if started {
		<-p.finished
	}
}
