package ranking

// RankingConfig holds the section mapping and caps used to rank forum posts.
type RankingConfig struct {
	// Subreddits routed to each section
	CatholicSubreddits []string `yaml:"catholic_subreddits"`
	AISubreddits       []string `yaml:"ai_subreddits"`

	MaxItemsPerSection int `yaml:"max_items_per_section"` // default: 10
	CommentWeight      int `yaml:"comment_weight"`        // default: 2
	MaxSummary         int `yaml:"max_summary"`           // default: 150
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		CatholicSubreddits: []string{"Catholicism", "Catholic", "TraditionalCatholics"},
		AISubreddits: []string{
			"ChatGPT", "OpenAI", "Artificial", "ArtificialInteligence", "ChatGPTPro",
			"AGI", "AIPromptProgramming", "MachineLearning", "LocalLLaMA", "ClaudeAI",
		},
		MaxItemsPerSection: 10,
		CommentWeight:      2,
		MaxSummary:         150,
	}
}

// ApplyDefaults fills zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	d := DefaultRankingConfig()
	if c.CatholicSubreddits == nil {
		c.CatholicSubreddits = d.CatholicSubreddits
	}
	if c.AISubreddits == nil {
		c.AISubreddits = d.AISubreddits
	}
	if c.MaxItemsPerSection <= 0 {
		c.MaxItemsPerSection = d.MaxItemsPerSection
	}
	if c.CommentWeight <= 0 {
		c.CommentWeight = d.CommentWeight
	}
	if c.MaxSummary <= 0 {
		c.MaxSummary = d.MaxSummary
	}
}
