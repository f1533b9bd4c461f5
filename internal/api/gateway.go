// Package api performs the single GET each navigation step needs and turns
// every failure into a logged "no data" result.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
	"resty.dev/v3"

	"genshinbook/internal/config"
)

// Gateway fetches and decodes one JSON document.
// ok is false when no data could be obtained; the cause has been logged.
type Gateway interface {
	Fetch(ctx context.Context, targetURL string) (payload any, ok bool)
}

// FailureKind classifies a FetchFailure for diagnostics
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureStatus  FailureKind = "status"
	FailureDecode  FailureKind = "decode"
	FailureEmpty   FailureKind = "empty"
)

// FetchFailure covers network errors, non-2xx responses and undecodable bodies
type FetchFailure struct {
	URL        string
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *FetchFailure) Error() string {
	switch e.Kind {
	case FailureStatus:
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	case FailureEmpty:
		return fmt.Sprintf("GET %s: empty payload", e.URL)
	default:
		return fmt.Sprintf("GET %s: %s error: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *FetchFailure) Unwrap() error { return e.Err }

// Client is the resty-backed Gateway
type Client struct {
	http *resty.Client
}

// NewClient creates a gateway client. No retries are configured; every
// navigation issues exactly one request.
func NewClient(cfg config.HTTPConfig) *Client {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	}
	return &Client{http: client}
}

// Fetch implements Gateway
func (c *Client) Fetch(ctx context.Context, targetURL string) (any, bool) {
	payload, err := c.Do(ctx, targetURL)
	if err != nil {
		entry := log.WithField("url", targetURL)
		var failure *FetchFailure
		if errors.As(err, &failure) {
			entry = entry.WithField("kind", failure.Kind)
			if failure.StatusCode != 0 {
				entry = entry.WithField("status", failure.StatusCode)
			}
		}
		entry.WithError(err).Warn("fetch failed")
		return nil, false
	}
	return payload, true
}

// Do performs the GET and returns the typed failure, for callers that
// want to report it themselves
func (c *Client) Do(ctx context.Context, targetURL string) (any, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		Get(targetURL)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, &FetchFailure{URL: targetURL, Kind: FailureNetwork, Err: err}
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, &FetchFailure{URL: targetURL, Kind: FailureStatus, StatusCode: code}
	}

	var payload any
	if err := sonic.UnmarshalString(resp.String(), &payload); err != nil {
		return nil, &FetchFailure{URL: targetURL, Kind: FailureDecode, StatusCode: resp.StatusCode(), Err: err}
	}
	if payload == nil {
		return nil, &FetchFailure{URL: targetURL, Kind: FailureEmpty, StatusCode: resp.StatusCode()}
	}

	log.WithFields(log.Fields{
		"url":      targetURL,
		"status":   resp.StatusCode(),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("fetched")
	return payload, nil
}

// URL builds the target for a navigation path: the base itself at the
// root, otherwise base + "/" + the escaped segments joined by "/"
func URL(base string, path []string) string {
	base = strings.TrimRight(base, "/")
	if len(path) == 0 {
		return base
	}
	escaped := make([]string, len(path))
	for i, segment := range path {
		escaped[i] = url.PathEscape(segment)
	}
	return base + "/" + strings.Join(escaped, "/")
}
