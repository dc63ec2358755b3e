// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"autoblog/internal/models"
)

// metadataExcerptLen is how many characters of the body the metadata step
// shows the model.
const metadataExcerptLen = 500

// complete calls the LLM once and applies clean to the raw text. Any call
// error, or an empty result after cleaning, becomes ErrGenerationFailed.
func (p *Pipeline) complete(ctx context.Context, step, systemPrompt, userPrompt string, clean func(string) string) (string, error) {
	raw, err := p.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("%w: %s step: %w", ErrGenerationFailed, step, err)
	}

	text := clean(raw)
	if text == "" {
		return "", fmt.Errorf("%w: %s step: empty model response", ErrGenerationFailed, step)
	}
	return text, nil
}

func (p *Pipeline) generateTopic(ctx context.Context, st *State) error {
	user := fmt.Sprintf("Generate a trending, specific blog topic for %s", p.now().Format("January 2006"))

	topic, err := p.complete(ctx, "topic", topicSystemPrompt, user, cleanSingleValue)
	if err != nil {
		return err
	}
	st.Topic = topic
	return nil
}

func (p *Pipeline) generateTitle(ctx context.Context, st *State) error {
	user := fmt.Sprintf(`Create an SEO-optimized title for this topic:

Topic: %s

Focus: Make it compelling, specific, and search-friendly.`, st.Topic)

	title, err := p.complete(ctx, "title", titleSystemPrompt, user, cleanSingleValue)
	if err != nil {
		return err
	}
	st.Title = title
	return nil
}

func (p *Pipeline) generateContent(ctx context.Context, st *State) error {
	user := fmt.Sprintf(`Write a detailed, expert-level blog post:

**Topic**: %s
**Title**: %s

Create engaging, valuable content that demonstrates expertise while remaining accessible.`, st.Topic, st.Title)

	content, err := p.complete(ctx, "content", contentSystemPrompt, user, strings.TrimSpace)
	if err != nil {
		return err
	}
	st.Content = content
	return nil
}

func (p *Pipeline) generateMetadata(ctx context.Context, st *State) error {
	system := fmt.Sprintf(metadataSystemPrompt, strings.Join(models.Categories, ", "))
	user := fmt.Sprintf(`Generate metadata for this blog:

**Title**: %s
**First %d characters**: %s

Provide %d specific, searchable tags and one category.`,
		st.Title, metadataExcerptLen, excerpt(st.Content, metadataExcerptLen), models.MaxTags)

	raw, err := p.complete(ctx, "metadata", system, user, strings.TrimSpace)
	if err != nil {
		return err
	}
	st.Tags, st.Category = parseMetadata(raw)
	return nil
}

func (p *Pipeline) generateImagePrompt(ctx context.Context, st *State) error {
	user := fmt.Sprintf(`Create an image generation prompt for this blog thumbnail:

**Title**: %s
**Category**: %s

Focus: Professional, eye-catching, relevant to the topic.`, st.Title, st.Category)

	prompt, err := p.complete(ctx, "image_prompt", imagePromptSystemPrompt, user, cleanSingleValue)
	if err != nil {
		return err
	}
	st.ImagePrompt = prompt
	return nil
}

// generateImage derives the thumbnail reference. It makes no network call.
func (p *Pipeline) generateImage(_ context.Context, st *State) error {
	st.ImageURL, st.ShortImageID = ImageReference(p.imageBaseURL, st.ImagePrompt)
	return nil
}

// cleanSingleValue trims whitespace and the double quotes models like to
// wrap one-line answers in.
func cleanSingleValue(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

// excerpt returns at most n characters of s without splitting a rune.
func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
