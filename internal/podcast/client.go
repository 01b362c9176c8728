// Package podcast talks to the podcast-generation backend.
package podcast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/alkime/podcasts/internal/saver"
)

// DefaultType is the podcast type sent when the caller gives none.
const DefaultType = "single"

const (
	generatePath = "/generate-podcast"
	audioPath    = "/audio/"
)

// Service is the surface callers need from the request client.
// It is implemented by *Client and can be mocked in tests.
type Service interface {
	GeneratePodcast(ctx context.Context, text, podcastType string) GenerateResult
	DownloadPodcast(ctx context.Context, audioFile string) DownloadResult
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client issues generate and download calls against one backend origin.
type Client struct {
	baseOrigin string
	http       *http.Client
	saver      saver.Saver
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithSaver sets where downloaded audio is stored.
func WithSaver(s saver.Saver) Option {
	return func(c *Client) {
		c.saver = s
	}
}

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the backend at baseOrigin, e.g.
// http://localhost:5001. A trailing slash is dropped.
//
// Without WithSaver, downloads are written to the current directory.
func NewClient(baseOrigin string, opts ...Option) *Client {
	c := &Client{
		baseOrigin: strings.TrimSuffix(baseOrigin, "/"),
		http:       &http.Client{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.saver == nil {
		c.saver = saver.NewDir(".", c.logger)
	}

	return c
}

// BaseOrigin returns the origin every request is sent to.
func (c *Client) BaseOrigin() string {
	return c.baseOrigin
}

// AudioURL returns the URL the backend serves audioFile from.
func (c *Client) AudioURL(audioFile string) string {
	return c.baseOrigin + audioPath + audioFile
}

// WithSaver returns a copy of c that stores downloads with s.
func (c *Client) WithSaver(s saver.Saver) *Client {
	clone := *c
	clone.saver = s

	return &clone
}

type generateRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// generateResponse mirrors the backend body. Success and Error are left
// loosely typed because the backend is only trusted to be truthy.
type generateResponse struct {
	Success     any    `json:"success"`
	AudioFile   string `json:"audio_file"`
	PodcastType string `json:"podcast_type"`
	Error       any    `json:"error"`
}

// GeneratePodcast asks the backend to synthesize text as a podcast of the
// given type ("single" when empty). It makes exactly one attempt and never
// returns an error; failures are described by the result.
func (c *Client) GeneratePodcast(ctx context.Context, text, podcastType string) GenerateResult {
	if podcastType == "" {
		podcastType = DefaultType
	}

	resp, err := c.postGenerate(ctx, generateRequest{Text: text, Type: podcastType})
	if err != nil {
		c.logger.Error("Podcast generation request failed", "error", err, "origin", c.baseOrigin)
		return generateFailure(KindNetwork, MsgNetworkFailed)
	}

	if !truthy(resp.Success) {
		msg, _ := resp.Error.(string)
		if msg == "" {
			msg = MsgGenerateFailed
		}
		c.logger.Debug("Backend reported generation failure", "error", msg)

		return generateFailure(KindServerReported, msg)
	}

	return GenerateResult{
		Success:     true,
		AudioURL:    c.AudioURL(resp.AudioFile),
		AudioFile:   resp.AudioFile,
		PodcastType: resp.PodcastType,
	}
}

func (c *Client) postGenerate(ctx context.Context, body generateRequest) (*generateResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseOrigin+generatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// the body is decoded whatever the status; the backend reports
	// failures in it
	dec := json.NewDecoder(resp.Body)

	var out *generateResponse
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if out == nil {
		return nil, fmt.Errorf("decode response (status %d): null body", resp.StatusCode)
	}

	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode response (status %d): trailing data after JSON value", resp.StatusCode)
	}

	return out, nil
}

// DownloadPodcast fetches audioFile from the backend and hands the bytes to
// the configured saver under the same name. Non-2xx responses never reach
// the saver.
func (c *Client) DownloadPodcast(ctx context.Context, audioFile string) DownloadResult {
	data, status, err := c.fetchAudio(ctx, audioFile)
	if err != nil {
		c.logger.Error("Podcast download failed", "error", err, "file", audioFile)
		return downloadFailure(KindNetwork)
	}

	if status < 200 || status > 299 {
		c.logger.Debug("Podcast download rejected", "status", status, "file", audioFile)
		return downloadFailure(KindHTTPStatus)
	}

	if err := c.saver.SaveBytes(audioFile, data); err != nil {
		c.logger.Error("Failed to save podcast audio", "error", err, "file", audioFile)
		return downloadFailure(KindSave)
	}

	return DownloadResult{Success: true}
}

// fetchAudio returns the body only for 2xx responses; other statuses are
// reported with a nil body.
func (c *Client) fetchAudio(ctx context.Context, audioFile string) ([]byte, int, error) {
	reqURL := c.baseOrigin + audioPath + url.PathEscape(audioFile)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	return data, resp.StatusCode, nil
}

// truthy applies JavaScript truthiness to a decoded JSON value.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		// objects and arrays
		return true
	}
}
