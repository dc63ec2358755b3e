// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

// State accumulates the outputs of one pipeline run. Each field is written
// once, by the step noted beside it, and only read by later steps.
type State struct {
	Topic        string   // topic
	Title        string   // title
	Content      string   // content
	Tags         []string // metadata
	Category     string   // metadata
	ImagePrompt  string   // image_prompt
	ImageURL     string   // image
	ShortImageID string   // image
}

// Complete reports whether every field has been populated.
func (s *State) Complete() bool {
	return s.Topic != "" && s.Title != "" && s.Content != "" &&
		len(s.Tags) > 0 && s.Category != "" && s.ImagePrompt != "" &&
		s.ImageURL != "" && s.ShortImageID != ""
}
