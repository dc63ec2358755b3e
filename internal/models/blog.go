// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the persistent data types shared by the store,
// the generation trigger and the HTTP handlers.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category values the metadata prompt asks the model to choose from. The
// stored category is whatever the model returned, so values outside this
// list are possible.
var Categories = []string{
	"Technology",
	"AI/ML",
	"Web Development",
	"Software Engineering",
	"Career",
	"Tutorial",
	"Guide",
	"News",
}

// DefaultCategory is used when the model response carries no category line.
const DefaultCategory = "Technology"

// DefaultTags is used when the model response carries no tags line.
func DefaultTags() []string {
	return []string{"blog", "technology", "programming"}
}

// MaxTags caps the number of tags stored on a post.
const MaxTags = 5

// BlogPost is a generated article as stored in the blogs table. Posts are
// written once per successful generation run and never updated.
type BlogPost struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	Tags      []string  `json:"tags"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// HasID reports whether the store has assigned an identifier yet.
func (b *BlogPost) HasID() bool {
	return b.ID != uuid.Nil
}
