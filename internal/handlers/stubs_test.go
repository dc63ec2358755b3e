// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"

	"github.com/google/uuid"

	"autoblog/internal/models"
	"autoblog/internal/pipeline"
)

type stubPipeline struct{ err error }

func (s stubPipeline) Run(ctx context.Context) (*pipeline.State, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &pipeline.State{Title: "t", Content: "c", Tags: []string{"x"}, Category: "Technology"}, nil
}

type blockingPipeline struct {
	entered chan struct{}
	release chan struct{}
}

func (b blockingPipeline) Run(ctx context.Context) (*pipeline.State, error) {
	close(b.entered)
	<-b.release
	return &pipeline.State{Title: "t"}, nil
}

type stubWriter struct{}

func (stubWriter) Insert(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error) {
	saved := *p
	saved.ID = uuid.New()
	return &saved, nil
}
