package models

import "time"

// Reading kinds, in the order they are read at Mass.
const (
	ReadingFirst  = "first_reading"
	ReadingPsalm  = "psalm"
	ReadingSecond = "second_reading"
	ReadingGospel = "gospel"
)

// Reading is one lectionary citation for the day.
type Reading struct {
	Type      string `json:"type"`
	Reference string `json:"reference"`
	Summary   string `json:"summary"`
}

// Liturgy is the liturgical block of the feed.
type Liturgy struct {
	Date              string        `json:"date"`
	Season            string        `json:"season"`
	Readings          []Reading     `json:"readings"`
	PatristicComments []MatchResult `json:"patristic_comments"`
	Meditation        string        `json:"meditation"`
	Prayer            string        `json:"prayer"`
}

// ForumPost is a post fetched from a discussion forum.
type ForumPost struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Source      string  `json:"source"`
	Subreddit   string  `json:"-"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Selftext    string  `json:"selftext"`
}

// FeedItem is a ranked forum post as shown in a section.
type FeedItem struct {
	Title          string `json:"title"`
	URL            string `json:"url"`
	Source         string `json:"source"`
	RedditScore    int    `json:"reddit_score"`
	RedditComments int    `json:"reddit_comments"`
	Score          int    `json:"score"`
	Summary        string `json:"summary"`
	WhyItMatters   string `json:"why_it_matters"`
}

// Section groups feed items under a topic.
type Section struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Items []FeedItem `json:"items"`
}

// Feed is the daily document consumed by the dashboard.
type Feed struct {
	ID          string    `json:"id,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Week        string    `json:"week"`
	Liturgy     *Liturgy  `json:"liturgy"`
	Sections    []Section `json:"sections"`
}
