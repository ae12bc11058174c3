// Package feed assembles the daily feed document: readings, patristic commentary
// on them, and ranked forum sections.
package feed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/patristica/internal/config"
	"github.com/hyperjump/patristica/internal/lectionary"
	"github.com/hyperjump/patristica/internal/matcher"
	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/internal/ranking"
	"github.com/hyperjump/patristica/internal/storage"
	"github.com/hyperjump/patristica/pkg/utils"
	"go.uber.org/zap"
)

// ReadingsSource returns the readings for a date.
type ReadingsSource interface {
	Fetch(ctx context.Context, date time.Time) (*lectionary.Day, error)
}

// PostSource returns a subreddit's top posts. Failures yield an empty list.
type PostSource interface {
	Top(ctx context.Context, subreddit string, limit int) []models.ForumPost
}

// LookupSource exposes the currently loaded index.
type LookupSource interface {
	Lookup() *models.Lookup
}

// Collector builds Feeds.
type Collector struct {
	readings   ReadingsSource
	posts      PostSource
	index      LookupSource
	matcher    *matcher.Matcher
	ranker     *ranking.Ranker
	liturgy    config.LiturgyConfig
	subreddits []string
	limit      int
	now        func() time.Time
	logger     *zap.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithLogger sets the collector logger.
func WithLogger(l *zap.Logger) CollectorOption {
	return func(c *Collector) { c.logger = l }
}

// WithClock replaces time.Now for the generation timestamp and week label.
func WithClock(now func() time.Time) CollectorOption {
	return func(c *Collector) { c.now = now }
}

// NewCollector wires a collector from cfg and its collaborators.
func NewCollector(
	cfg *config.Config,
	readings ReadingsSource,
	posts PostSource,
	index LookupSource,
	m *matcher.Matcher,
	opts ...CollectorOption,
) *Collector {
	rankCfg := cfg.Ranking
	c := &Collector{
		readings:   readings,
		posts:      posts,
		index:      index,
		matcher:    m,
		ranker:     ranking.NewRanker(&rankCfg),
		liturgy:    cfg.Liturgy,
		subreddits: cfg.Forum.Subreddits,
		limit:      cfg.Forum.Limit,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = utils.OrNop(c.logger)
	return c
}

// Collect builds the feed for date. Collaborator failures are logged and leave the
// affected block empty; only cancellation of ctx is returned as an error.
func (c *Collector) Collect(ctx context.Context, date time.Time) (*models.Feed, error) {
	feed := &models.Feed{ID: uuid.New().String()}

	if c.liturgy.EnabledOrDefault() {
		feed.Liturgy = c.collectLiturgy(ctx, date)
	} else {
		c.logger.Info("liturgy disabled")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var posts []models.ForumPost
	for _, sub := range c.subreddits {
		got := c.posts.Top(ctx, sub, c.limit)
		if len(got) > 0 {
			c.logger.Debug("forum posts fetched", zap.String("subreddit", sub), zap.Int("posts", len(got)))
		}
		posts = append(posts, got...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	feed.Sections = c.ranker.Sections(posts)

	now := c.now()
	feed.GeneratedAt = now.UTC()
	feed.Week = WeekLabel(now)
	return feed, nil
}

func (c *Collector) collectLiturgy(ctx context.Context, date time.Time) *models.Liturgy {
	lit := &models.Liturgy{
		Date:              date.Format(time.DateOnly),
		Readings:          []models.Reading{},
		PatristicComments: []models.MatchResult{},
	}
	day, err := c.readings.Fetch(ctx, date)
	if err != nil {
		c.logger.Warn("could not fetch readings", zap.String("date", lit.Date), zap.Error(err))
	}
	if day != nil {
		lit.Season = day.Season
		lit.Readings = append(lit.Readings, day.Readings()...)
	}
	c.logger.Info("readings collected", zap.Int("readings", len(lit.Readings)))

	if !c.liturgy.IncludeFathersOrDefault() || len(lit.Readings) == 0 {
		return lit
	}
	lookup := c.index.Lookup()
	if lookup == nil {
		c.logger.Warn("fathers index not loaded; skipping commentary", zap.Error(matcher.ErrNoIndex))
		return lit
	}
	for _, r := range lit.Readings {
		matches := c.matcher.Match(lookup, r.Reference)
		if c.liturgy.MaxComments > 0 && len(matches) > c.liturgy.MaxComments {
			matches = matches[:c.liturgy.MaxComments]
		}
		c.logger.Debug("patristic comments matched", zap.String("reference", r.Reference), zap.Int("comments", len(matches)))
		lit.PatristicComments = append(lit.PatristicComments, models.Results(matches)...)
	}
	c.logger.Info("patristic comments collected", zap.Int("comments", len(lit.PatristicComments)))
	return lit
}

// WriteFile publishes feed at path atomically, indented with two spaces.
func WriteFile(path string, feed *models.Feed) error {
	return storage.WriteJSON(path, feed, "  ")
}
