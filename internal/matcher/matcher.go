// Package matcher finds indexed commentary that overlaps a reading citation.
package matcher

import (
	"errors"
	"regexp"
	"strings"

	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/internal/reference"
	"github.com/hyperjump/patristica/pkg/utils"
	"go.uber.org/zap"
)

// UnknownFather labels commentary whose author cannot be attributed.
const UnknownFather = "Padre de la Iglesia"

// attributionWindow is how much of an entry's text the author search reads.
const attributionWindow = 200

// DefaultFathers is the closed list of names the attribution heuristic looks for.
var DefaultFathers = []string{
	"Agustín", "Crisóstomo", "Orígenes", "Ambrosio", "Jerónimo", "Gregorio",
	"Basilio", "Cirilo", "Efrén", "Tertuliano", "Atanasio", "Ireneo", "Clemente",
	"Augustine", "Chrysostom", "Origen", "Ambrose", "Jerome", "Gregory",
	"Basil", "Cyril", "Ephrem", "Tertullian", "Athanasius", "Irenaeus", "Clement",
}

// ErrNoIndex is logged when a lookup runs before any snapshot is available.
var ErrNoIndex = errors.New("no index loaded")

// Matcher matches citations against a Lookup. It holds no mutable state.
type Matcher struct {
	parser     *reference.Parser
	authorRe   *regexp.Regexp
	maxResults int
	logger     *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the logger used for missing-index warnings.
func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) { m.logger = l }
}

// WithFathers replaces the author names used for attribution.
func WithFathers(names []string) Option {
	return func(m *Matcher) { m.authorRe = compileAuthorRe(names) }
}

// WithMaxResults caps matches per citation.
func WithMaxResults(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.maxResults = n
		}
	}
}

// New returns a Matcher that parses citations with books.
func New(books *reference.Books, opts ...Option) *Matcher {
	m := &Matcher{
		parser:     reference.NewParser(books),
		authorRe:   compileAuthorRe(DefaultFathers),
		maxResults: models.MaxMatchesPerReading,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = utils.OrNop(m.logger)
	return m
}

// compileAuthorRe builds the "clause ending in a known name, then ':' or '.'" pattern.
func compileAuthorRe(names []string) *regexp.Regexp {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return regexp.MustCompile(`^(.*?(?:` + strings.Join(quoted, "|") + `)[\p{L}\p{N}_\s]*?)[:.]`)
}

// Match returns up to the configured maximum of entries in the citation's chapter
// bucket whose verse range overlaps it, in bucket order. Unparseable citations,
// missing buckets and a nil lookup all yield no matches.
func (m *Matcher) Match(lookup *models.Lookup, citation string) []models.Match {
	if lookup == nil {
		m.logger.Warn("lookup without index", zap.String("reference", citation), zap.Error(ErrNoIndex))
		return nil
	}
	target, err := m.parser.Parse(citation)
	if err != nil {
		m.logger.Debug("citation not parsed", zap.String("reference", citation), zap.Error(err))
		return nil
	}
	bucket, ok := lookup.Bucket(target.ChapterKey())
	if !ok {
		return nil
	}
	var out []models.Match
	for _, e := range bucket {
		candidate, err := reference.ParseCitation(e.Ref)
		if err != nil {
			continue
		}
		if !candidate.Overlaps(target) {
			continue
		}
		out = append(out, models.Match{
			ReadingRef: citation,
			Author:     m.Attribute(e.Text),
			Entry:      e,
		})
		if len(out) == m.maxResults {
			break
		}
	}
	return out
}

// Attribute names the author of a commentary excerpt: the opening clause that ends
// in a known name, else the first line, else UnknownFather.
func (m *Matcher) Attribute(text string) string {
	if text == "" {
		return UnknownFather
	}
	if sm := m.authorRe.FindStringSubmatch(utils.Clip(text, attributionWindow)); sm != nil {
		if author := strings.TrimSpace(sm[1]); author != "" {
			return author
		}
	}
	first, _, _ := strings.Cut(text, "\n")
	if first = utils.Clip(first, models.MaxAuthorLen); first != "" {
		return first
	}
	return UnknownFather
}

// Parser exposes the citation parser the matcher uses.
func (m *Matcher) Parser() *reference.Parser {
	return m.parser
}
