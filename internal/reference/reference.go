package reference

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrNoReference is returned when a string carries no "chapter:verse" pattern.
	ErrNoReference = errors.New("no chapter:verse reference found")
	// ErrReversedRange is returned for spans such as "7:10-3".
	ErrReversedRange = errors.New("verse range ends before it starts")
)

// citationRe matches a book token (lazy, optional leading ordinal) followed by
// chapter, a ':' or '.' separator, a verse and an optional hyphen/en-dash range.
// Book tokens may carry apostrophes, as heading book names can.
var citationRe = regexp.MustCompile(`^(\d?\s*[\p{L}\p{N}_][\p{L}\p{N}_'’\s]*?)\s+(\d+)[:.](\d+)(?:\s*[-–]\s*(\d+))?`)

// Reference is a parsed citation. EndVerse is never lower than StartVerse.
type Reference struct {
	Book       string `json:"book"`
	Chapter    int    `json:"chapter"`
	StartVerse int    `json:"start_verse"`
	EndVerse   int    `json:"end_verse"`
}

// ChapterKey returns the "{book} {chapter}" bucket key.
func (r Reference) ChapterKey() string {
	return r.Book + " " + strconv.Itoa(r.Chapter)
}

// String formats the reference as "Book C:V" or "Book C:V-W".
func (r Reference) String() string {
	if r.StartVerse == r.EndVerse {
		return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.StartVerse)
	}
	return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, r.StartVerse, r.EndVerse)
}

// Overlaps reports whether the two closed verse intervals share at least one verse.
// Book and chapter are not compared.
func (r Reference) Overlaps(other Reference) bool {
	return r.StartVerse <= other.EndVerse && r.EndVerse >= other.StartVerse
}

// ParseCitation extracts book, chapter and verse range from a free-text citation.
// Only the first comma-delimited segment is considered, so "Psalm 37:5-6, 30-31"
// yields Psalm 37:5-6. The book token is returned as written.
func ParseCitation(s string) (Reference, error) {
	segment, _, _ := strings.Cut(norm.NFC.String(s), ",")
	segment = strings.TrimSpace(segment)
	m := citationRe.FindStringSubmatch(segment)
	if m == nil {
		return Reference{}, fmt.Errorf("%q: %w", s, ErrNoReference)
	}
	chapter, err := strconv.Atoi(m[2])
	if err != nil {
		return Reference{}, fmt.Errorf("%q: %w", s, ErrNoReference)
	}
	start, err := strconv.Atoi(m[3])
	if err != nil {
		return Reference{}, fmt.Errorf("%q: %w", s, ErrNoReference)
	}
	end := start
	if m[4] != "" {
		if end, err = strconv.Atoi(m[4]); err != nil {
			return Reference{}, fmt.Errorf("%q: %w", s, ErrNoReference)
		}
	}
	if end < start {
		return Reference{}, fmt.Errorf("%q: %w", s, ErrReversedRange)
	}
	return Reference{
		Book:       strings.TrimSpace(m[1]),
		Chapter:    chapter,
		StartVerse: start,
		EndVerse:   end,
	}, nil
}

// Parser parses citations and maps their book token through a Books table.
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	books *Books
}

// NewParser returns a Parser that normalizes with books. A nil table
// leaves book tokens unchanged.
func NewParser(books *Books) *Parser {
	return &Parser{books: books}
}

// Parse is ParseCitation followed by book normalization.
func (p *Parser) Parse(s string) (Reference, error) {
	ref, err := ParseCitation(s)
	if err != nil {
		return Reference{}, err
	}
	ref.Book = p.books.Normalize(ref.Book)
	return ref, nil
}

// Books returns the table the parser normalizes with.
func (p *Parser) Books() *Books {
	return p.books
}
