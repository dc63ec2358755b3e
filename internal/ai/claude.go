// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const claudeBaseURL = "https://api.anthropic.com/"

// claudeProvider implements the Provider interface on the Anthropic Messages
// API. Like the OpenAI-compatible providers, retries of 429, 5xx and
// transport errors are left to the SDK client.
type claudeProvider struct {
	config ProviderConfig
	client anthropic.Client
}

// newClaude creates a new Anthropic Claude provider.
func newClaude(cfg ProviderConfig) *claudeProvider {
	cfg = cfg.normalize()
	if cfg.BaseURL == "" {
		cfg.BaseURL = claudeBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithRequestTimeout(60*time.Second),
	)

	return &claudeProvider{config: cfg, client: client}
}

func (p *claudeProvider) Name() string { return "claude" }

// Generate sends a single user message and returns the first text block of
// the reply.
func (p *claudeProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.config.Model),
		MaxTokens: int64(p.config.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
		Temperature: anthropic.Float(p.config.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("claude messages: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", errors.New("claude: no text content in response")
}
