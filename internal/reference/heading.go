package reference

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// LineKind classifies a single corpus line.
type LineKind int

const (
	// Blank is an empty or whitespace-only line.
	Blank LineKind = iota
	// Heading is a line that consists solely of a verse citation.
	Heading
	// Body is any other line, including citations quoted inside prose.
	Body
)

func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Heading:
		return "heading"
	default:
		return "body"
	}
}

// HeadingRef is the citation carried by a heading line.
type HeadingRef struct {
	// Book is the spelling found in the corpus.
	Book string
	// Canonical is Book after normalization.
	Canonical string
	Chapter   string
	// VerseSpan is the verse part with inner whitespace removed, e.g. "14-23".
	VerseSpan string
}

// Ref returns the normalized reference string "{canonical} {chapter}:{verses}".
func (h HeadingRef) Ref() string {
	return h.Canonical + " " + h.Chapter + ":" + h.VerseSpan
}

const (
	verseTail = `\s+(\d+)[:.](\d+(?:\s*[-–]\s*\d+)?)\s*$`
	// capitalized words with optional leading ordinal and lowercase connectors
	genericBook = `(?:[1-3]\s*)?\p{Lu}[\p{L}'’]*(?:(?:\s+(?:de|del|la|las|los|el|of|the))*\s+\p{Lu}[\p{L}'’]*)*`
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Classifier recognizes heading lines. A line is a heading only when the citation
// is the entire trimmed line.
type Classifier struct {
	books   *Books
	known   *regexp.Regexp
	generic *regexp.Regexp
}

// NewClassifier compiles heading patterns for the aliases in books.
func NewClassifier(books *Books) *Classifier {
	c := &Classifier{
		books:   books,
		generic: regexp.MustCompile(`^(` + genericBook + `)` + verseTail),
	}
	names := books.Names()
	if len(names) > 0 {
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = regexp.QuoteMeta(n)
		}
		c.known = regexp.MustCompile(`^(` + strings.Join(quoted, "|") + `)` + verseTail)
	}
	return c
}

// Classify returns the kind of line and, for headings, the parsed citation.
// Lines whose book token is prose ending in a known book name ("Véase Mateo 5:3")
// are ambiguous and reported as Body.
func (c *Classifier) Classify(line string) (LineKind, HeadingRef) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Blank, HeadingRef{}
	}
	if c.known != nil {
		if m := c.known.FindStringSubmatch(trimmed); m != nil {
			return Heading, c.heading(m)
		}
	}
	m := c.generic.FindStringSubmatch(trimmed)
	if m == nil || c.endsWithKnownBook(m[1]) {
		return Body, HeadingRef{}
	}
	return Heading, c.heading(m)
}

// heading builds the ref from a match. The chapter is written without leading
// zeros so "Marcos 07:14" lands in the same bucket a parsed citation looks up.
func (c *Classifier) heading(m []string) HeadingRef {
	chapter := m[2]
	if n, err := strconv.Atoi(chapter); err == nil {
		chapter = strconv.Itoa(n)
	}
	return HeadingRef{
		Book:      m[1],
		Canonical: c.books.Normalize(m[1]),
		Chapter:   chapter,
		VerseSpan: whitespaceRe.ReplaceAllString(m[3], ""),
	}
}

// endsWithKnownBook reports whether some proper word suffix of book is an alias.
func (c *Classifier) endsWithKnownBook(book string) bool {
	for i, r := range book {
		if i == 0 || !unicode.IsSpace(r) {
			continue
		}
		if c.books.Known(strings.TrimSpace(book[i:])) {
			return true
		}
	}
	return false
}
