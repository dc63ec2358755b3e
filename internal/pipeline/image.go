// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// DefaultImageBaseURL is the Pollinations endpoint that renders a thumbnail
// on first request to the generated URL.
const DefaultImageBaseURL = "https://image.pollinations.ai"

// imageQuery fixes the thumbnail size (Open Graph 1200x630) and flags.
const imageQuery = "?width=1200&height=630&nologo=true&enhance=true"

// shortIDLen is the number of hex characters kept from the prompt digest.
const shortIDLen = 8

// ImageReference builds the thumbnail URL for prompt and a short identifier
// taken from the first 8 hex characters of the prompt's SHA-256 digest. Both
// depend only on baseURL and prompt; the URL is never fetched here.
func ImageReference(baseURL, prompt string) (imageURL, shortID string) {
	base := strings.TrimRight(baseURL, "/")
	imageURL = base + "/prompt/" + escapePrompt(prompt) + imageQuery

	sum := sha256.Sum256([]byte(prompt))
	shortID = hex.EncodeToString(sum[:])[:shortIDLen]
	return imageURL, shortID
}

// escapePrompt percent-encodes every byte outside the RFC 3986 unreserved
// set, so the prompt stays a single path segment and reserved characters
// like ':' '&' '+' '=' '@' never reach the image service raw. '/' is
// encoded too.
func escapePrompt(prompt string) string {
	return strings.ReplaceAll(url.QueryEscape(prompt), "+", "%20")
}
