// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"autoblog/internal/cache"
	"autoblog/internal/models"
	"autoblog/internal/render"
	"autoblog/internal/store"
)

// APIVersion is reported by the liveness endpoint.
const APIVersion = "1.0.0"

// BlogReader is the read side of the post store.
type BlogReader interface {
	ListAll(ctx context.Context) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id string) (*models.BlogPost, error)
	Ping(ctx context.Context) error
}

// Public groups the unauthenticated read endpoints. Reads go through the
// Valkey blog cache first when one is configured.
type Public struct {
	blogs    BlogReader
	cache    *cache.BlogCache
	renderer *render.Renderer
}

// NewPublic creates the public handler group. blogCache may be nil.
func NewPublic(blogs BlogReader, blogCache *cache.BlogCache, renderer *render.Renderer) *Public {
	return &Public{blogs: blogs, cache: blogCache, renderer: renderer}
}

// Root is the liveness endpoint.
func (p *Public) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"message": "Automated Blog Generator API",
		"version": APIVersion,
	})
}

// Health reports whether the database answers a ping.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := p.blogs.Ping(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListBlogs returns every post, newest first.
func (p *Public) ListBlogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if posts, ok := p.cache.GetList(ctx); ok {
		writeJSON(w, http.StatusOK, posts)
		return
	}

	posts, err := p.blogs.ListAll(ctx)
	if err != nil {
		slog.Error("list blogs failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to fetch blogs")
		return
	}

	p.cache.SetList(ctx, posts)
	writeJSON(w, http.StatusOK, posts)
}

// GetBlog returns a single post by id.
func (p *Public) GetBlog(w http.ResponseWriter, r *http.Request) {
	post, ok := p.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// BlogHTML renders a single post as an HTML article page.
func (p *Public) BlogHTML(w http.ResponseWriter, r *http.Request) {
	post, ok := p.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.renderer.Article(w, post); err != nil {
		slog.Error("render article failed", "id", post.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to render blog")
	}
}

// lookup resolves the {id} URL param to a post, writing the error response
// itself when it cannot. Malformed and unknown ids are both 404.
func (p *Public) lookup(w http.ResponseWriter, r *http.Request) (*models.BlogPost, bool) {
	ctx := r.Context()

	uid, err := store.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Blog not found")
		return nil, false
	}
	id := uid.String()

	if post, ok := p.cache.GetPost(ctx, uid); ok {
		return post, true
	}

	post, err := p.blogs.FindByID(ctx, id)
	switch {
	case errors.Is(err, store.ErrInvalidIdentifier):
		writeDetail(w, http.StatusNotFound, "Blog not found")
		return nil, false
	case err != nil:
		slog.Error("find blog failed", "id", id, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to fetch blog")
		return nil, false
	case post == nil:
		writeDetail(w, http.StatusNotFound, "Blog not found")
		return nil, false
	}

	p.cache.SetPost(ctx, post)
	return post, true
}
