package ranking

import (
	"sort"

	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/pkg/utils"
)

// Ranker turns fetched posts into ranked feed sections.
type Ranker struct {
	config     *RankingConfig
	categories map[string]Category
}

// NewRanker creates a new Ranker with the given configuration.
func NewRanker(config *RankingConfig) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()

	categories := make(map[string]Category)
	for _, s := range config.CatholicSubreddits {
		categories[s] = CategoryCatholic
	}
	for _, s := range config.AISubreddits {
		categories[s] = CategoryAI
	}
	return &Ranker{config: config, categories: categories}
}

// Categorize maps a subreddit name to its section.
func (r *Ranker) Categorize(subreddit string) Category {
	return r.categories[subreddit]
}

// RawScore is the engagement signal items are ordered by.
func (r *Ranker) RawScore(item models.FeedItem) int {
	return item.RedditScore + r.config.CommentWeight*item.RedditComments
}

// Sections groups posts by category in order of first appearance, sorts each
// section by raw score (ties keep fetch order), caps it, and normalizes scores
// to 1..100 within the section.
func (r *Ranker) Sections(posts []models.ForumPost) []models.Section {
	index := make(map[Category]int)
	var sections []models.Section
	for _, p := range posts {
		cat := r.Categorize(p.Subreddit)
		i, ok := index[cat]
		if !ok {
			i = len(sections)
			index[cat] = i
			sections = append(sections, models.Section{ID: cat.String(), Title: cat.Title(), Items: []models.FeedItem{}})
		}
		sections[i].Items = append(sections[i].Items, models.FeedItem{
			Title:          p.Title,
			URL:            p.URL,
			Source:         p.Source,
			RedditScore:    p.Score,
			RedditComments: p.NumComments,
			Summary:        utils.Clip(p.Selftext, r.config.MaxSummary),
		})
	}

	for i := range sections {
		items := sections[i].Items
		sort.SliceStable(items, func(a, b int) bool {
			return r.RawScore(items[a]) > r.RawScore(items[b])
		})
		if len(items) > r.config.MaxItemsPerSection {
			items = items[:r.config.MaxItemsPerSection]
		}
		r.normalize(items)
		sections[i].Items = items
	}
	if sections == nil {
		return []models.Section{}
	}
	return sections
}

// normalize rescales raw scores by the section maximum.
func (r *Ranker) normalize(items []models.FeedItem) {
	if len(items) == 0 {
		return
	}
	maxRaw := r.RawScore(items[0])
	for _, it := range items {
		maxRaw = max(maxRaw, r.RawScore(it))
	}
	maxRaw = max(maxRaw, 1)
	for i := range items {
		items[i].Score = max(1, int(float64(r.RawScore(items[i]))/float64(maxRaw)*100))
	}
}
