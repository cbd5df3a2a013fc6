package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// JobFunc is one scheduled unit of background work.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	fn       JobFunc
}

// Scheduler runs registered jobs on fixed intervals until stopped. Each job
// gets its own goroutine and runs once immediately on Start.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// runTimeout bounds a single job run.
const runTimeout = 5 * time.Minute

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// AddJob registers a job; call before Start.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, interval: interval, fn: fn})
	slog.Info("background job registered", "job", name, "interval", interval)
}

// Start launches every registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}

	slog.Info("background scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("background scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.run(j)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.run(j)
		}
	}
}

// run executes one job pass; a panic is logged and the job waits for its
// next tick.
func (s *Scheduler) run(j job) {
	ctx, cancel := context.WithTimeout(s.ctx, runTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("background job panicked", "job", j.name, "panic", r)
		}
	}()

	start := time.Now()
	if err := j.fn(ctx); err != nil {
		slog.Error("background job failed", "job", j.name, "error", err, "duration", time.Since(start))
	}
}

// RunOnce executes every registered job a single time with the caller's
// context, bypassing the tickers.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if err := j.fn(ctx); err != nil {
			slog.Error("background job failed", "job", j.name, "error", err)
		}
	}
}
