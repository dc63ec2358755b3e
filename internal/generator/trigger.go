// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator runs the blog pipeline end to end: generate, map the
// final state to a post, persist it. Both the cron job and the admin
// endpoint go through Trigger, which never lets an error or panic escape.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"autoblog/internal/models"
	"autoblog/internal/pipeline"
)

// ErrRunInProgress is reported when a run is requested while another one
// (in this process or, with a shared lock, in another) is still going.
var ErrRunInProgress = errors.New("generation already in progress")

var errUnsavedPost = errors.New("store returned a post without an id")

// Pipeline produces a completed generation state.
type Pipeline interface {
	Run(ctx context.Context) (*pipeline.State, error)
}

// BlogWriter persists a finished post.
type BlogWriter interface {
	Insert(ctx context.Context, b *models.BlogPost) (*models.BlogPost, error)
}

// Locker is a cross-process single-holder lock.
type Locker interface {
	Acquire(ctx context.Context) (release func(), ok bool, err error)
}

// Invalidator drops cached reads after a new post is written.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// State is the trigger's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Result is the structured outcome of one run.
type Result struct {
	Success bool   `json:"success"`
	BlogID  string `json:"blog_id,omitempty"`
	Error   string `json:"error,omitempty"`

	err error
}

// Err returns the underlying error of a failed run, or nil.
func (r Result) Err() error {
	return r.err
}

func failure(err error) Result {
	return Result{Success: false, Error: err.Error(), err: err}
}

// RunRecord describes a finished run.
type RunRecord struct {
	State      string    `json:"state"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	BlogID     string    `json:"blog_id,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Status is a snapshot of the trigger.
type Status struct {
	State   string     `json:"state"`
	LastRun *RunRecord `json:"last_run"`
}

// Trigger guards and executes pipeline runs.
type Trigger struct {
	pipeline    Pipeline
	store       BlogWriter
	locker      Locker
	invalidator Invalidator
	now         func() time.Time

	running sync.Mutex

	mu      sync.RWMutex
	state   State
	lastRun *RunRecord
}

// Option configures a Trigger.
type Option func(*Trigger)

// WithLocker adds a cross-process lock taken before each run.
func WithLocker(l Locker) Option {
	return func(t *Trigger) { t.locker = l }
}

// WithInvalidator registers a cache to clear after each stored post.
func WithInvalidator(inv Invalidator) Option {
	return func(t *Trigger) { t.invalidator = inv }
}

// WithClock overrides the clock used for created_at and run timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Trigger) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTrigger creates a trigger over the given pipeline and store.
func NewTrigger(p Pipeline, store BlogWriter, opts ...Option) *Trigger {
	t := &Trigger{pipeline: p, store: store, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run executes one generation. It never panics and never returns an error
// directly: every failure is folded into the Result. The caller's
// cancellation is not propagated, so an abandoned HTTP request does not cut
// a run short.
func (t *Trigger) Run(ctx context.Context) Result {
	if !t.running.TryLock() {
		slog.Warn("blog generation rejected", "reason", "run in progress")
		return failure(ErrRunInProgress)
	}
	defer t.running.Unlock()

	ctx = context.WithoutCancel(ctx)

	if t.locker != nil {
		release, ok, err := t.locker.Acquire(ctx)
		switch {
		case err != nil:
			// Lock backend down: the in-process guard still holds.
			slog.Warn("generation lock unavailable, continuing", "error", err)
		case !ok:
			slog.Warn("blog generation rejected", "reason", "lock held elsewhere")
			return failure(ErrRunInProgress)
		default:
			defer release()
		}
	}

	started := t.now()
	t.setState(StateRunning, nil)
	slog.Info("blog generation started")

	res := t.execute(ctx)

	rec := &RunRecord{
		StartedAt:  started,
		FinishedAt: t.now(),
		BlogID:     res.BlogID,
		Error:      res.Error,
	}
	if res.Success {
		rec.State = StateSucceeded.String()
		slog.Info("blog generation succeeded",
			"blog_id", res.BlogID,
			"duration", rec.FinishedAt.Sub(started).String(),
		)
	} else {
		rec.State = StateFailed.String()
		slog.Error("blog generation failed", "error", res.Error)
	}
	t.setState(StateIdle, rec)
	return res
}

// RunScheduled is the cron entry point: it runs and only logs the outcome.
func (t *Trigger) RunScheduled() {
	slog.Info("scheduled blog generation fired")
	res := t.Run(context.Background())
	if errors.Is(res.Err(), ErrRunInProgress) {
		slog.Info("scheduled blog generation skipped", "reason", res.Error)
	}
}

// Status returns the current state and the last finished run.
func (t *Trigger) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Status{State: t.state.String()}
	if t.lastRun != nil {
		rec := *t.lastRun
		s.LastRun = &rec
	}
	return s
}

func (t *Trigger) setState(s State, rec *RunRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = s
	if rec != nil {
		t.lastRun = rec
	}
}

func (t *Trigger) execute(ctx context.Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic during blog generation", "panic", r)
			res = failure(fmt.Errorf("panic: %v", r))
		}
	}()

	st, err := t.pipeline.Run(ctx)
	if err != nil {
		return failure(err)
	}

	saved, err := t.store.Insert(ctx, toBlogPost(st, t.now().UTC()))
	if err != nil {
		return failure(err)
	}
	if !saved.HasID() {
		return failure(errUnsavedPost)
	}

	if t.invalidator != nil {
		t.invalidator.Invalidate(ctx)
	}
	return Result{Success: true, BlogID: saved.ID.String()}
}

func toBlogPost(st *pipeline.State, createdAt time.Time) *models.BlogPost {
	return &models.BlogPost{
		Title:     st.Title,
		Content:   st.Content,
		ImageURL:  st.ImageURL,
		Tags:      st.Tags,
		Category:  st.Category,
		CreatedAt: createdAt,
	}
}
