// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pipeline generates one blog post by running a fixed sequence of
// steps over a shared State: five LLM prompt steps (topic, title, content,
// metadata, image prompt) followed by a deterministic image reference step.
// Steps never retry or recover; the first failing step aborts the run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrGenerationFailed wraps every failure raised by a prompt step: LLM
// transport errors, timeouts and empty or malformed responses.
var ErrGenerationFailed = errors.New("generation failed")

// Generator is the LLM completion interface the prompt steps call. The
// ai.Registry satisfies it. Retries, token budget and temperature are the
// implementation's concern.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Step is one named unit of the pipeline. Run reads fields written by
// earlier steps and writes its own.
type Step struct {
	Name string
	Run  func(ctx context.Context, st *State) error
}

// Pipeline holds the ordered steps and their collaborators.
type Pipeline struct {
	llm          Generator
	imageBaseURL string
	now          func() time.Time
	steps        []Step
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithImageBaseURL overrides the thumbnail service base URL.
func WithImageBaseURL(base string) Option {
	return func(p *Pipeline) {
		if base != "" {
			p.imageBaseURL = base
		}
	}
}

// WithClock overrides the clock used for the topic prompt's month/year.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New builds the pipeline with its fixed step order.
func New(llm Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		llm:          llm,
		imageBaseURL: DefaultImageBaseURL,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.steps = []Step{
		{Name: "topic", Run: p.generateTopic},
		{Name: "title", Run: p.generateTitle},
		{Name: "content", Run: p.generateContent},
		{Name: "metadata", Run: p.generateMetadata},
		{Name: "image_prompt", Run: p.generateImagePrompt},
		{Name: "image", Run: p.generateImage},
	}
	return p
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Run executes every step in order against a fresh State and returns the
// completed state. The first step error is returned as is and the partial
// state is discarded. A run that ends with any field unset fails with
// ErrGenerationFailed.
func (p *Pipeline) Run(ctx context.Context) (*State, error) {
	st := &State{}
	for _, step := range p.steps {
		start := time.Now()
		if err := step.Run(ctx, st); err != nil {
			slog.Warn("pipeline step failed", "step", step.Name, "error", err)
			return nil, err
		}
		slog.Debug("pipeline step done",
			"step", step.Name,
			"duration", time.Since(start).String(),
		)
	}
	if !st.Complete() {
		return nil, fmt.Errorf("%w: state incomplete after %d steps", ErrGenerationFailed, len(p.steps))
	}
	return st, nil
}
