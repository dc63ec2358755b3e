// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"strings"

	"autoblog/internal/models"
)

const (
	tagsPrefix     = "TAGS:"
	categoryPrefix = "CATEGORY:"
)

// parseMetadata extracts tags and category from the metadata step's reply,
// which is expected to contain "TAGS: a, b, c" and "CATEGORY: X" lines.
// Other lines are ignored and a later line wins over an earlier one. Empty
// tag entries are dropped and at most models.MaxTags are kept. Missing
// values fall back to models.DefaultTags and models.DefaultCategory.
func parseMetadata(text string) (tags []string, category string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, tagsPrefix):
			tags = splitTags(strings.TrimPrefix(line, tagsPrefix))
		case strings.HasPrefix(line, categoryPrefix):
			category = strings.TrimSpace(strings.TrimPrefix(line, categoryPrefix))
		}
	}

	if len(tags) > models.MaxTags {
		tags = tags[:models.MaxTags]
	}
	if len(tags) == 0 {
		tags = models.DefaultTags()
	}
	if category == "" {
		category = models.DefaultCategory
	}
	return tags, category
}

// splitTags splits a comma-separated list into trimmed, non-empty tags.
func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
