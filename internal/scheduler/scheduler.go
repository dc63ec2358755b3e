// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scheduler runs named jobs on cron expressions in the background.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// JobID identifies the daily blog generation job.
const JobID = "blog_generation_job"

// DefaultSchedule fires once a day at 00:00 local time.
const DefaultSchedule = "0 0 * * *"

// JobInfo describes one registered job.
type JobInfo struct {
	ID          string     `json:"id"`
	NextRunTime *time.Time `json:"next_run_time"`
}

// Scheduler wraps a cron runner with named jobs and a running flag.
type Scheduler struct {
	cron *cron.Cron

	mu      sync.Mutex
	jobs    map[string]cron.EntryID
	running bool
}

// slogPrintf adapts slog to the cron logger's Printf shape.
type slogPrintf struct{}

func (slogPrintf) Printf(format string, args ...any) {
	slog.Info(fmt.Sprintf(format, args...), "component", "cron")
}

// New creates a stopped scheduler. A nil location means time.Local.
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	logger := cron.VerbosePrintfLogger(slogPrintf{})
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cron.PrintfLogger(slogPrintf{})),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	return &Scheduler{cron: c, jobs: make(map[string]cron.EntryID)}
}

// Add registers fn under id with a standard five-field cron spec. Adding an
// id twice replaces the earlier job.
func (s *Scheduler) Add(id, spec string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return fmt.Errorf("schedule %s %q: %w", id, spec, err)
	}
	if old, ok := s.jobs[id]; ok {
		s.cron.Remove(old)
	}
	s.jobs[id] = entryID
	slog.Info("job scheduled", "id", id, "spec", spec)
	return nil
}

// Start begins running jobs in a background goroutine.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	slog.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop halts the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		slog.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// Running reports whether Start has been called without a matching Stop.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Jobs lists registered jobs sorted by id. NextRunTime is nil while the
// scheduler is stopped.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobInfo, 0, len(s.jobs))
	for id, entryID := range s.jobs {
		info := JobInfo{ID: id}
		if s.running {
			if next := s.cron.Entry(entryID).Next; !next.IsZero() {
				info.NextRunTime = &next
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
