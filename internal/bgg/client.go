// Package bgg is a thin HTTP client for the remote collection service's XML
// API. It decodes collection responses into models.CollectionItem values;
// everything about merging them locally lives elsewhere.
package bgg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/marcus/meeple/internal/models"
)

// Sentinel errors for common HTTP error classes.
var (
	// ErrRequestQueued means the server accepted the collection request
	// and is preparing the export; retry later (202).
	ErrRequestQueued = errors.New("collection request queued, retry later")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
)

// Client is an HTTP client for the collection service.
type Client struct {
	BaseURL      string
	SessionToken string // optional, required only for private info
	HTTP         *http.Client
}

// New creates a new collection client.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// CollectionOptions selects the fidelity of a collection fetch.
type CollectionOptions struct {
	Brief              bool
	IncludeStats       bool
	IncludePrivateInfo bool
	GameID             int             // restrict to a single game; 0 = whole collection
	Statuses           []models.Status // restrict the server-side fetch; nil = all
}

// Collection fetches and decodes a user's collection.
func (c *Client) Collection(ctx context.Context, username string, opts CollectionOptions) ([]models.CollectionItem, error) {
	q := url.Values{}
	q.Set("username", username)
	q.Set("subtype", "boardgame")
	if opts.Brief {
		q.Set("brief", "1")
	}
	if opts.IncludeStats {
		q.Set("stats", "1")
	}
	if opts.IncludePrivateInfo {
		q.Set("showprivate", "1")
	}
	if opts.GameID > 0 {
		q.Set("id", strconv.Itoa(opts.GameID))
	}
	for _, s := range opts.Statuses {
		if s == models.StatusPlayed {
			// not a server-side flag; filtered locally by play count
			continue
		}
		q.Set(string(s), "1")
	}

	endpoint := c.BaseURL + "/xmlapi2/collection?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.SessionToken != "" {
		req.Header.Set("Cookie", "bggsession="+c.SessionToken)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch collection: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusAccepted:
		return nil, ErrRequestQueued
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("collection fetch: HTTP %d: %s", resp.StatusCode, body)
	}

	items, err := decodeCollection(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	return items, nil
}
