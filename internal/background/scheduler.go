package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/logger"
)

type SchedulerConfig struct {
	WorkerCount int
	QueueSize   int
}

type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// Job is a unit of maintenance work such as pruning the generation log.
type Job struct {
	Name        string
	Run         func(ctx context.Context) error
	Timeout     time.Duration
	RetryPolicy RetryPolicy
}

var (
	ErrSchedulerNotStarted   = errors.New("scheduler not started")
	ErrJobAlreadyScheduled   = errors.New("job already scheduled")
	errSchedulerShuttingDown = errors.New("scheduler is shutting down")
)

// Scheduler runs jobs on a fixed worker pool. Unique jobs are skipped while a
// run with the same name is queued or in progress.
type Scheduler struct {
	config SchedulerConfig

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	active  map[string]struct{}

	queue chan queuedJob
	wg    sync.WaitGroup
}

type queuedJob struct {
	job     Job
	attempt int
	unique  bool
	delay   time.Duration
}

var (
	metricsOnce        sync.Once
	jobRunsTotal       *prometheus.CounterVec
	jobDurationSeconds *prometheus.HistogramVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		jobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnelcart",
			Subsystem: "background",
			Name:      "job_runs_total",
			Help:      "Background job runs by job and status",
		}, []string{"job", "status"})

		jobDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "funnelcart",
			Subsystem: "background",
			Name:      "job_duration_seconds",
			Help:      "Duration of background job runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"})
	})
}

func NewScheduler(cfg SchedulerConfig) *Scheduler {
	initMetrics()

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}

	return &Scheduler{
		config: cfg,
		queue:  make(chan queuedJob, cfg.QueueSize),
		active: make(map[string]struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true
	for i := 0; i < s.config.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

func (s *Scheduler) Schedule(job Job) error {
	return s.submit(job, false)
}

func (s *Scheduler) ScheduleUnique(job Job) error {
	return s.submit(job, true)
}

// Every runs job once immediately and then on every tick of interval until the
// scheduler shuts down. Ticks that find the previous run unfinished are skipped.
func (s *Scheduler) Every(job Job, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %s for job %s", interval, job.Name)
	}
	if err := s.ScheduleUnique(job); err != nil {
		return err
	}

	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.ScheduleUnique(job); err != nil && !errors.Is(err, ErrJobAlreadyScheduled) {
					return
				}
			}
		}
	}()
	return nil
}

func (s *Scheduler) submit(job Job, unique bool) error {
	if job.Name == "" {
		return errors.New("job name is required")
	}
	if job.Run == nil {
		return errors.New("job runner is required")
	}

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrSchedulerNotStarted
	}
	if unique {
		if _, exists := s.active[job.Name]; exists {
			s.mu.Unlock()
			return ErrJobAlreadyScheduled
		}
		s.active[job.Name] = struct{}{}
	}
	s.mu.Unlock()

	if !s.enqueue(queuedJob{job: job, attempt: 1, unique: unique}) {
		s.release(job.Name, unique)
		return errSchedulerShuttingDown
	}
	return nil
}

func (s *Scheduler) enqueue(job queuedJob) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.queue <- job:
		return true
	}
}

func (s *Scheduler) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case job := <-s.queue:
			s.execute(job)
		}
	}
}

func (s *Scheduler) execute(job queuedJob) {
	if job.delay > 0 {
		timer := time.NewTimer(job.delay)
		select {
		case <-timer.C:
		case <-s.ctx.Done():
			timer.Stop()
			s.finish(job, context.Canceled)
			return
		}
	}

	err := s.run(job)
	if err != nil && s.shouldRetry(job, err) {
		retry := job
		retry.attempt++
		retry.delay = job.job.RetryPolicy.Backoff
		// Requeue from a goroutine so a full queue cannot block the worker.
		go func() {
			if !s.enqueue(retry) {
				s.finish(job, err)
			}
		}()
		return
	}
	s.finish(job, err)
}

func (s *Scheduler) run(job queuedJob) (runErr error) {
	start := time.Now()
	status := "success"

	ctx := s.ctx
	if job.job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.job.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("panic: %v", r)
			status = "failure"
		}
		jobDurationSeconds.WithLabelValues(job.job.Name).Observe(time.Since(start).Seconds())
		jobRunsTotal.WithLabelValues(job.job.Name, status).Inc()
	}()

	if err := ctx.Err(); err != nil {
		status = "canceled"
		return err
	}

	if err := job.job.Run(ctx); err != nil {
		status = "failure"
		if errors.Is(err, context.Canceled) {
			status = "canceled"
		}
		return err
	}
	return nil
}

func (s *Scheduler) shouldRetry(job queuedJob, err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return job.attempt <= job.job.RetryPolicy.MaxRetries
}

func (s *Scheduler) finish(job queuedJob, err error) {
	s.release(job.job.Name, job.unique)

	fields := map[string]interface{}{"job": job.job.Name, "attempt": job.attempt}
	switch {
	case err == nil:
		logger.Debug("Background job completed", fields)
	case errors.Is(err, context.Canceled):
		logger.Warn("Background job canceled", fields)
	default:
		logger.Error(err, "Background job failed", fields)
	}
}

func (s *Scheduler) release(name string, unique bool) {
	if !unique {
		return
	}
	s.mu.Lock()
	delete(s.active, name)
	s.mu.Unlock()
}

// Shutdown stops the workers and waits for running jobs until ctx expires.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
