// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared fakes for handler tests.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"autoblog/internal/generator"
	"autoblog/internal/models"
	"autoblog/internal/render"
	"autoblog/internal/scheduler"
	"autoblog/internal/store"
)

// fakeBlogs is an in-memory BlogReader.
type fakeBlogs struct {
	posts   []models.BlogPost
	err     error
	pingErr error
	lists   atomic.Int32
	finds   atomic.Int32
	lastID  string
}

func (f *fakeBlogs) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	f.lists.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.BlogPost, len(f.posts))
	copy(out, f.posts)
	return out, nil
}

func (f *fakeBlogs) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	f.finds.Add(1)
	f.lastID = id
	uid, err := store.ParseID(id)
	if err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].ID == uid {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeBlogs) Ping(ctx context.Context) error { return f.pingErr }

// fakeRunner records calls and returns a canned result.
type fakeRunner struct {
	result generator.Result
	status generator.Status
	calls  atomic.Int32
}

func (f *fakeRunner) Run(ctx context.Context) generator.Result {
	f.calls.Add(1)
	return f.result
}

func (f *fakeRunner) Status() generator.Status { return f.status }

type fakeScheduler struct {
	running bool
	jobs    []scheduler.JobInfo
}

func (f *fakeScheduler) Running() bool             { return f.running }
func (f *fakeScheduler) Jobs() []scheduler.JobInfo { return f.jobs }

func samplePosts() []models.BlogPost {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	return []models.BlogPost{
		{
			ID: uuid.New(), Title: "Newer", Content: "## Second\n\nText.",
			ImageURL: "https://image.pollinations.ai/prompt/b", Tags: []string{"b"},
			Category: "Technology", CreatedAt: base.Add(time.Hour),
		},
		{
			ID: uuid.New(), Title: "Older", Content: "## First\n\nText.",
			ImageURL: "https://image.pollinations.ai/prompt/a", Tags: []string{"a"},
			Category: "Programming", CreatedAt: base,
		},
	}
}

// testRouter mounts the handlers on a bare chi router, without middleware.
func testRouter(t *testing.T, blogs BlogReader, runner Runner, sched SchedulerInfo) http.Handler {
	t.Helper()
	rn, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	pub := NewPublic(blogs, nil, rn)
	adm := NewAdmin(runner, sched)

	r := chi.NewRouter()
	r.Get("/", pub.Root)
	r.Get("/health", pub.Health)
	r.Get("/blogs", pub.ListBlogs)
	r.Get("/blogs/{id}", pub.GetBlog)
	r.Get("/blogs/{id}/html", pub.BlogHTML)
	r.Post("/admin/generate-blog", adm.GenerateBlog)
	r.Get("/admin/scheduler-status", adm.SchedulerStatus)
	return r
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}
