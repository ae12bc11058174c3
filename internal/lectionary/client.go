// Package lectionary fetches the daily Mass readings from the readings API.
package lectionary

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/hyperjump/patristica/internal/config"
	"github.com/hyperjump/patristica/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

//go:embed schema.json
var schemaJSON string

// ErrInvalidPayload is returned when the API answers with a document that does not
// match the readings schema.
var ErrInvalidPayload = errors.New("invalid readings payload")

const maxBody = 1 << 20

// Day is the API document for one date.
type Day struct {
	Date   string      `json:"date"`
	Season string      `json:"season"`
	Slots  DayReadings `json:"readings"`
}

// DayReadings holds the citations the API returns for a day. Any may be empty.
type DayReadings struct {
	FirstReading  string `json:"firstReading"`
	Psalm         string `json:"psalm"`
	SecondReading string `json:"secondReading"`
	Gospel        string `json:"gospel"`
}

// Readings lists the day's citations in liturgical order, skipping empty ones.
func (d *Day) Readings() []models.Reading {
	if d == nil {
		return nil
	}
	var out []models.Reading
	for _, r := range []struct{ kind, ref string }{
		{models.ReadingFirst, d.Slots.FirstReading},
		{models.ReadingPsalm, d.Slots.Psalm},
		{models.ReadingSecond, d.Slots.SecondReading},
		{models.ReadingGospel, d.Slots.Gospel},
	} {
		if strings.TrimSpace(r.ref) == "" {
			continue
		}
		out = append(out, models.Reading{Type: r.kind, Reference: r.ref})
	}
	return out
}

// Client talks to the readings API.
type Client struct {
	baseURL   string
	userAgent string
	attempts  uint
	delay     time.Duration
	http      *http.Client
	schema    *jsonschema.Schema
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the HTTP client. The configured timeout is not applied to it.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRetryDelay sets the base delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

// NewClient builds a client from cfg.
func NewClient(cfg config.LectionaryConfig, opts ...Option) (*Client, error) {
	schema, err := jsonschema.CompileString("readings.json", schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to compile readings schema: %w", err)
	}
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		attempts:  cfg.Attempts,
		delay:     time.Second,
		http:      &http.Client{Timeout: cfg.Timeout},
		schema:    schema,
		logger:    zap.NewNop(),
	}
	if c.attempts == 0 {
		c.attempts = 1
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// URL returns the readings document location for date.
func (c *Client) URL(date time.Time) string {
	return fmt.Sprintf("%s/readings/%s/%s.json", c.baseURL, date.Format("2006"), date.Format("01-02"))
}

// Fetch downloads and validates the readings for date. Transport errors and 5xx
// responses are retried; any other failure is returned immediately.
func (c *Client) Fetch(ctx context.Context, date time.Time) (*Day, error) {
	url := c.URL(date)
	var body []byte
	err := retry.Do(
		func() error {
			b, err := c.get(ctx, url)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying readings fetch", zap.String("url", url), zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch readings for %s: %w", date.Format(time.DateOnly), err)
	}
	return c.decode(body)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("readings API status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, retry.Unrecoverable(fmt.Errorf("readings API status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) decode(body []byte) (*Day, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := c.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	var day Day
	if err := json.Unmarshal(body, &day); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return &day, nil
}
