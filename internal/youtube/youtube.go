// Package youtube fetches video caption tracks from the public timedtext
// endpoint so the bot can summarize a video without an API key.
package youtube

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoTranscript is returned when a video has no English caption track.
var ErrNoTranscript = errors.New("youtube: no transcript available")

const defaultEndpoint = "https://video.google.com/timedtext"

type captionTrack struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

type Fetcher struct {
	httpClient *http.Client
	endpoint   string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   defaultEndpoint,
	}
}

// FetchTranscript downloads the English caption track for videoID and
// flattens it to a single string of fragments in order.
func (f *Fetcher) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	reqURL := fmt.Sprintf("%s?lang=en&v=%s", f.endpoint, url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch transcript: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	// The endpoint answers 200 with an empty body when no track exists.
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", ErrNoTranscript
	}

	var track captionTrack
	if err := xml.Unmarshal(body, &track); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}

	parts := make([]string, 0, len(track.Texts))
	for _, t := range track.Texts {
		// caption text is HTML-escaped a second time inside the XML
		s := strings.TrimSpace(html.UnescapeString(t.Value))
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", ErrNoTranscript
	}
	return strings.Join(parts, " "), nil
}
