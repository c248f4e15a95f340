// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	// ErrJobNotFound is returned for unknown job names.
	ErrJobNotFound = errors.New("job not found")
	// ErrJobRunning is returned when a run of the job is still active.
	ErrJobRunning = errors.New("job already running")
)

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context) error

type job struct {
	name        string
	description string
	schedule    string
	entryID     cron.EntryID
	fn          JobFunc
	running     bool
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Schedule    string    `json:"schedule"`
	LastRun     time.Time `json:"last_run"`
	NextRun     time.Time `json:"next_run"`
}

// Scheduler wraps a cron instance with named jobs.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration

	mu   sync.Mutex
	jobs map[string]*job
}

// New creates a new scheduler instance. Each run is bounded by timeout
// (zero means no limit).
func New(logger *slog.Logger, timeout time.Duration) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:    cron.New(),
		logger:  logger,
		timeout: timeout,
		jobs:    make(map[string]*job),
	}
}

// Register adds a job on a standard five-field cron schedule. An empty
// schedule leaves the job registered but only runnable through TriggerNow.
func (s *Scheduler) Register(name, description, schedule string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	j := &job{name: name, description: description, schedule: schedule, fn: fn}
	if schedule != "" {
		id, err := s.cron.AddFunc(schedule, func() { _ = s.run(j) })
		if err != nil {
			return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
		}
		j.entryID = id
	}
	s.jobs[name] = j

	s.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
	return nil
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// TriggerNow runs a job immediately and returns its error.
func (s *Scheduler) TriggerNow(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	s.logger.Info("manually triggering job", "name", name)
	return s.run(j)
}

// run executes j unless a previous run is still going.
func (s *Scheduler) run(j *job) error {
	s.mu.Lock()
	if j.running {
		s.mu.Unlock()
		s.logger.Warn("skipping job, previous run still active", "name", j.name)
		return fmt.Errorf("%w: %s", ErrJobRunning, j.name)
	}
	j.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		j.running = false
		s.mu.Unlock()
	}()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := j.fn(ctx); err != nil {
		s.logger.Error("scheduled job failed", "name", j.name, "error", err)
		return err
	}
	s.logger.Info("scheduled job finished", "name", j.name, "duration", time.Since(start))
	return nil
}

// List returns all registered jobs sorted by name.
func (s *Scheduler) List() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		info := JobInfo{
			Name:        j.name,
			Description: j.description,
			Schedule:    j.schedule,
		}
		if j.schedule != "" {
			entry := s.cron.Entry(j.entryID)
			info.NextRun = entry.Next
			info.LastRun = entry.Prev
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
