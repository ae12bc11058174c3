// Package ranking groups forum posts into feed sections and normalizes their scores.
package ranking

// Category is the feed section a subreddit belongs to.
type Category int

const (
	// CategoryOther collects every subreddit not mapped elsewhere.
	CategoryOther Category = iota
	// CategoryCatholic is the Church news section.
	CategoryCatholic
	// CategoryAI is the artificial intelligence section.
	CategoryAI
)

// String returns the section id.
func (c Category) String() string {
	switch c {
	case CategoryCatholic:
		return "catholic"
	case CategoryAI:
		return "ai"
	default:
		return "other"
	}
}

// Title returns the section heading shown on the dashboard.
func (c Category) Title() string {
	switch c {
	case CategoryCatholic:
		return "Iglesia Catolica"
	case CategoryAI:
		return "Inteligencia Artificial"
	default:
		return "Otros temas"
	}
}
