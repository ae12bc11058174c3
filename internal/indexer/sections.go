package indexer

import (
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/internal/reference"
)

// DefaultMinSectionLen is the length a trimmed section must exceed to be kept.
const DefaultMinSectionLen = 50

type sectionState int

const (
	outsideSection sectionState = iota
	inSection
)

// sectionMachine accumulates the body lines that follow each heading.
type sectionMachine struct {
	state       sectionState
	heading     reference.HeadingRef
	headingLine int
	body        []string
	minLen      int
	out         *models.RawIndex

	headings  int
	discarded int
}

func newSectionMachine(minLen int) *sectionMachine {
	return &sectionMachine{minLen: minLen, out: models.NewRawIndex()}
}

// step applies one classified line. lineNo is 1-based.
func (m *sectionMachine) step(lineNo int, kind reference.LineKind, h reference.HeadingRef, line string) {
	switch m.state {
	case outsideSection:
		if kind == reference.Heading {
			m.open(lineNo, h)
		}
	case inSection:
		switch kind {
		case reference.Heading:
			m.commit()
			m.open(lineNo, h)
		case reference.Blank:
			m.body = append(m.body, "")
		default:
			m.body = append(m.body, strings.TrimSpace(line))
		}
	}
}

func (m *sectionMachine) open(lineNo int, h reference.HeadingRef) {
	m.state = inSection
	m.heading = h
	m.headingLine = lineNo
	m.body = m.body[:0]
	m.headings++
}

// commit stores the open section when its trimmed text is long enough.
func (m *sectionMachine) commit() {
	if m.state != inSection {
		return
	}
	text := strings.TrimSpace(strings.Join(m.body, "\n"))
	if utf8.RuneCountInString(text) <= m.minLen {
		m.discarded++
		return
	}
	m.out.Put(models.IndexEntry{
		Ref:        m.heading.Ref(),
		Verses:     m.heading.VerseSpan,
		Text:       text,
		SourceLine: m.headingLine,
	})
}

// finish flushes the last open section and returns the index.
func (m *sectionMachine) finish() *models.RawIndex {
	m.commit()
	m.state = outsideSection
	return m.out
}
