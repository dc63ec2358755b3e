// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Default endpoints for the OpenAI-compatible providers.
const (
	groqBaseURL   = "https://api.groq.com/openai/v1/"
	openAIBaseURL = "https://api.openai.com/v1/"
)

// openAIProvider implements the Provider interface against any OpenAI
// compatible chat completions API. Groq and OpenAI both use it; they only
// differ in base URL and model. Retries are delegated to the SDK client.
type openAIProvider struct {
	name   string
	config ProviderConfig
	client openai.Client
}

// newOpenAICompatible creates a provider for the named OpenAI-compatible
// service.
func newOpenAICompatible(name string, cfg ProviderConfig) *openAIProvider {
	cfg = cfg.normalize()
	if cfg.BaseURL == "" {
		cfg.BaseURL = openAIBaseURL
		if name == "groq" {
			cfg.BaseURL = groqBaseURL
		}
	}
	// The SDK resolves endpoint paths relative to the base URL.
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithRequestTimeout(60*time.Second),
	)

	return &openAIProvider{name: name, config: cfg, client: client}
}

func (p *openAIProvider) Name() string { return p.name }

// Generate sends a chat completion request and returns the assistant's
// response text.
func (p *openAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.config.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(p.config.Temperature),
		MaxTokens:   openai.Int(int64(p.config.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", p.name)
	}

	return resp.Choices[0].Message.Content, nil
}
