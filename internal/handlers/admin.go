// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"net/http"

	"autoblog/internal/generator"
	"autoblog/internal/scheduler"
)

// Runner starts a generation run and reports on past runs.
type Runner interface {
	Run(ctx context.Context) generator.Result
	Status() generator.Status
}

// SchedulerInfo exposes the background scheduler's state.
type SchedulerInfo interface {
	Running() bool
	Jobs() []scheduler.JobInfo
}

// Admin groups the privileged endpoints. Authentication happens in
// middleware before any of these run.
type Admin struct {
	runner    Runner
	scheduler SchedulerInfo
}

// NewAdmin creates the admin handler group.
func NewAdmin(runner Runner, sched SchedulerInfo) *Admin {
	return &Admin{runner: runner, scheduler: sched}
}

// GenerateBlog runs the pipeline synchronously and reports the new post id.
func (a *Admin) GenerateBlog(w http.ResponseWriter, r *http.Request) {
	res := a.runner.Run(r.Context())

	switch {
	case errors.Is(res.Err(), generator.ErrRunInProgress):
		writeDetail(w, http.StatusConflict, "Blog generation already in progress")
	case !res.Success:
		writeDetail(w, http.StatusInternalServerError, "Blog generation failed: "+res.Error)
	default:
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Blog generated successfully",
			"blog_id": res.BlogID,
		})
	}
}

type schedulerStatusResponse struct {
	SchedulerRunning bool                 `json:"scheduler_running"`
	ScheduledJobs    []scheduler.JobInfo  `json:"scheduled_jobs"`
	GenerationState  string               `json:"generation_state"`
	LastRun          *generator.RunRecord `json:"last_run"`
}

// SchedulerStatus reports the scheduler, its jobs and the last run.
func (a *Admin) SchedulerStatus(w http.ResponseWriter, r *http.Request) {
	status := a.runner.Status()
	writeJSON(w, http.StatusOK, schedulerStatusResponse{
		SchedulerRunning: a.scheduler.Running(),
		ScheduledJobs:    a.scheduler.Jobs(),
		GenerationState:  status.State,
		LastRun:          status.LastRun,
	})
}
