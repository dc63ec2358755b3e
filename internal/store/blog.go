// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements persistence for generated blog posts on top of
// PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"autoblog/internal/models"
)

var (
	// ErrStoreUnavailable wraps every database failure: unreachable server,
	// broken connection or a rejected write.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidIdentifier is returned by FindByID for ids that are not UUIDs.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

const blogColumns = `id, title, content, image_url, tags, category, created_at`

// BlogStore handles all blog post database operations. Posts are
// append-only: there is no update or delete.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database connection.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

// Insert stores a new post and returns it with the generated ID. CreatedAt
// is set by the database unless the caller already filled it in.
func (s *BlogStore) Insert(ctx context.Context, b *models.BlogPost) (*models.BlogPost, error) {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}

	var createdAt any
	if !b.CreatedAt.IsZero() {
		createdAt = b.CreatedAt
	}

	m := pgtype.NewMap()
	result := &models.BlogPost{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO blogs (title, content, image_url, tags, category, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6::timestamptz, NOW()))
		RETURNING `+blogColumns,
		b.Title, b.Content, b.ImageURL, tags, b.Category, createdAt,
	).Scan(
		&result.ID, &result.Title, &result.Content, &result.ImageURL,
		m.SQLScanner(&result.Tags), &result.Category, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert blog: %w", ErrStoreUnavailable, err)
	}
	return result, nil
}

// ListAll returns every post, newest first. An empty table yields an empty
// slice.
func (s *BlogStore) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blogColumns+`
		FROM blogs
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list blogs: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	m := pgtype.NewMap()
	items := []models.BlogPost{}
	for rows.Next() {
		var b models.BlogPost
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Content, &b.ImageURL,
			m.SQLScanner(&b.Tags), &b.Category, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan blog: %w", ErrStoreUnavailable, err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list blogs: %w", ErrStoreUnavailable, err)
	}
	return items, nil
}

// FindByID retrieves a post by its UUID string. Returns ErrInvalidIdentifier
// if id is not a UUID and nil (no error) if no post has that id.
func (s *BlogStore) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	uid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	m := pgtype.NewMap()
	b := &models.BlogPost{}
	err = s.db.QueryRowContext(ctx, `
		SELECT `+blogColumns+` FROM blogs WHERE id = $1
	`, uid).Scan(
		&b.ID, &b.Title, &b.Content, &b.ImageURL,
		m.SQLScanner(&b.Tags), &b.Category, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find blog by id: %w", ErrStoreUnavailable, err)
	}
	return b, nil
}

// Ping checks that the database is reachable.
func (s *BlogStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// ParseID validates a post identifier.
func ParseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return uid, nil
}
