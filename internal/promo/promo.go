// Package promo looks up the title and thumbnail of the promoted video.
package promo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/verte-zerg/tuivoca/internal/player"
)

// DefaultEndpoint is the YouTube oEmbed endpoint.
const DefaultEndpoint = "https://www.youtube.com/oembed"

// Info describes the promoted video.
type Info struct {
	VideoID      string
	Title        string
	Author       string
	ThumbnailURL string
	// Placeholder is set when the details could not be fetched.
	Placeholder bool
}

// URL returns the watch page of the video.
func (i Info) URL() string {
	return player.WatchURL(i.VideoID)
}

// Placeholder returns the details shown until, or instead of, a lookup.
func Placeholder(videoID string) Info {
	return Info{
		VideoID:      videoID,
		ThumbnailURL: ThumbnailURL(videoID),
		Placeholder:  true,
	}
}

// ThumbnailURL returns the static thumbnail address of a video.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + url.PathEscape(videoID) + "/hqdefault.jpg"
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Client fetches oEmbed details behind a circuit breaker.
type Client struct {
	endpoint string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the oEmbed endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient returns a client that stops calling out for a minute after three
// consecutive failures.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "oembed",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return c
}

// Fetch looks up videoID. On failure it returns the placeholder details
// together with the error.
func (c *Client) Fetch(ctx context.Context, videoID string) (Info, error) {
	if videoID == "" {
		return Info{}, fmt.Errorf("missing video id")
	}
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, videoID)
	})
	if err != nil {
		return Placeholder(videoID), err
	}
	return out.(Info), nil
}

func (c *Client) fetch(ctx context.Context, videoID string) (Info, error) {
	q := url.Values{}
	q.Set("url", player.WatchURL(videoID))
	q.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return Info{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Info{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("unexpected oembed status: %s", resp.Status)
	}

	var payload oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Info{}, fmt.Errorf("failed to decode oembed response: %w", err)
	}
	info := Info{
		VideoID:      videoID,
		Title:        payload.Title,
		Author:       payload.AuthorName,
		ThumbnailURL: payload.ThumbnailURL,
	}
	if info.ThumbnailURL == "" {
		info.ThumbnailURL = ThumbnailURL(videoID)
	}
	return info, nil
}
