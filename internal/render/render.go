// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render renders a stored post as a standalone HTML article page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"autoblog/internal/markdown"
	"autoblog/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// ArticleData is passed to the article template.
type ArticleData struct {
	Post *models.BlogPost
	Body template.HTML // rendered Markdown
}

// Renderer holds the parsed article template.
type Renderer struct {
	article *template.Template
}

var funcMap = template.FuncMap{
	"isoDate": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
	"longDate": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("article.html").Funcs(funcMap).ParseFS(templateFS, "templates/article.html")
	if err != nil {
		return nil, fmt.Errorf("parse template article.html: %w", err)
	}
	return &Renderer{article: tmpl}, nil
}

// Article writes the full HTML page for post. Output is buffered, so
// nothing reaches w when rendering fails.
func (rn *Renderer) Article(w io.Writer, post *models.BlogPost) error {
	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	data := ArticleData{
		Post: post,
		// goldmark output with raw HTML disabled.
		Body: template.HTML(body),
	}
	if err := rn.article.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute article template: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}
