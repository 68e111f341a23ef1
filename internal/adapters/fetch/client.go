// Package fetch retrieves competition documents from the results service.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/okian/crux/pkg/logger"
	"github.com/okian/crux/pkg/metrics"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRate    = 2
	defaultBurst   = 1
	linkPrefix     = "/egroupware"
	paramSeparator = "!"
	jsonIndent     = "    "
)

// Store is where fetched documents are kept.
type Store interface {
	Has(name string) bool
	Put(name string, raw []byte) error
}

// Summary counts the outcome of one fetch run.
type Summary struct {
	Links    int
	Fetched  int
	Existing int
	Failed   int
}

// Client talks to the results service.
type Client struct {
	jsonURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  logger.Logger
}

// New creates a client that resolves document parameters against jsonURL.
func New(jsonURL string, opts ...Option) *Client {
	c := &Client{
		jsonURL: jsonURL,
		http:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(defaultRate, defaultBurst),
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DocumentName maps a parameter string to its stored filename.
func DocumentName(params string) string {
	return strings.ReplaceAll(params, "&", "::") + ".json"
}

// Fetch reads the calendar page and stores every linked competition
// document not yet present in store. Per-document failures are counted
// and skipped; a calendar failure is returned.
func (c *Client) Fetch(ctx context.Context, calendarURL string, store Store) (Summary, error) {
	var sum Summary

	c.logger.Info(ctx, "fetching competition calendar", logger.String("url", calendarURL))
	page, err := c.get(ctx, calendarURL)
	if err != nil {
		return sum, fmt.Errorf("fetch calendar: %w", err)
	}
	params, err := Params(bytes.NewReader(page))
	if err != nil {
		return sum, fmt.Errorf("parse calendar: %w", err)
	}
	sum.Links = len(params)

	for _, p := range params {
		name := DocumentName(p)
		if store.Has(name) {
			c.logger.Debug(ctx, "file already exists", logger.String("competition", name))
			sum.Existing++
			continue
		}
		if err := c.fetchDocument(ctx, p, name, store); err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			c.logger.Warn(ctx, "error while fetching competition",
				logger.String("competition", name),
				logger.Error(err),
			)
			metrics.RecordFetchRequest("failed")
			sum.Failed++
			continue
		}
		metrics.RecordFetchRequest("ok")
		sum.Fetched++
	}
	return sum, nil
}

func (c *Client) fetchDocument(ctx context.Context, params, name string, store Store) error {
	c.logger.Info(ctx, "fetching competition", logger.String("params", params))
	body, err := c.get(ctx, c.jsonURL+params)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", jsonIndent); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return store.Put(name, out.Bytes())
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s: %d", ErrUnexpectedStatus, url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

// Params extracts competition parameter strings from the anchors of an
// HTML page, in document order and without duplicates.
func Params(r io.Reader) ([]string, error) {
	var (
		out  []string
		seen = make(map[string]struct{})
		z    = html.NewTokenizer(r)
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return out, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "a" {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key != "href" {
					continue
				}
				if p, ok := paramsFromHref(a.Val); ok {
					if _, dup := seen[p]; !dup {
						seen[p] = struct{}{}
						out = append(out, p)
					}
				}
			}
		}
	}
}

func paramsFromHref(href string) (string, bool) {
	if !strings.HasPrefix(href, linkPrefix) {
		return "", false
	}
	_, params, found := strings.Cut(href, paramSeparator)
	if !found || params == "" {
		return "", false
	}
	return params, true
}
