// Package forum fetches the week's top posts from discussion forums.
package forum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/hyperjump/patristica/internal/config"
	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/pkg/utils"
	"go.uber.org/zap"
)

// MaxSelftext caps the post body kept from the listing.
const MaxSelftext = 200

const postBase = "https://reddit.com"

type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				Permalink   string  `json:"permalink"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
				Selftext    string  `json:"selftext"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Client reads subreddit listings.
type Client struct {
	baseURL   string
	userAgent string
	attempts  uint
	delay     time.Duration
	http      *http.Client
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetryDelay sets the base delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

// NewClient builds a client from cfg.
func NewClient(cfg config.ForumConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		attempts:  max(cfg.Attempts, 1),
		delay:     time.Second,
		http:      &http.Client{Timeout: cfg.Timeout},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = utils.OrNop(c.logger)
	return c
}

// Top returns up to limit of the week's top posts in subreddit. Failures are logged
// and yield an empty list.
func (c *Client) Top(ctx context.Context, subreddit string, limit int) []models.ForumPost {
	posts, err := c.fetch(ctx, subreddit, limit)
	if err != nil {
		c.logger.Warn("could not fetch subreddit", zap.String("subreddit", subreddit), zap.Error(err))
		return []models.ForumPost{}
	}
	return posts
}

func (c *Client) fetch(ctx context.Context, subreddit string, limit int) ([]models.ForumPost, error) {
	q := url.Values{}
	q.Set("t", "week")
	q.Set("limit", strconv.Itoa(limit))
	endpoint := fmt.Sprintf("%s/r/%s/top.json?%s", c.baseURL, url.PathEscape(subreddit), q.Encode())

	var data listing
	err := retry.Do(
		func() error {
			return c.get(ctx, endpoint, &data)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	posts := make([]models.ForumPost, 0, len(data.Data.Children))
	for _, child := range data.Data.Children {
		d := child.Data
		posts = append(posts, models.ForumPost{
			Title:       d.Title,
			URL:         postBase + d.Permalink,
			Source:      "r/" + subreddit,
			Subreddit:   subreddit,
			Score:       d.Score,
			NumComments: d.NumComments,
			CreatedUTC:  d.CreatedUTC,
			Selftext:    utils.Clip(d.Selftext, MaxSelftext),
		})
	}
	return posts, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out *listing) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return retry.Unrecoverable(err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("forum status %d", resp.StatusCode)
		if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
			return retry.Unrecoverable(err)
		}
		return err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	*out = listing{}
	if err := json.Unmarshal(body, out); err != nil {
		return retry.Unrecoverable(fmt.Errorf("failed to decode listing: %w", err))
	}
	return nil
}
