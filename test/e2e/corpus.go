// Package e2e provides end-to-end tests over a generated commentary corpus.
package e2e

import (
	"fmt"
	"strings"
)

// Section is one heading plus its commentary in the generated corpus.
type Section struct {
	Heading string // as written in the corpus (Spanish book name)
	Ref     string // canonical reference the indexer must produce
	Father  string // attribution the matcher must recover
	Body    string
}

// QueryTestCase defines a citation and the canonical refs it must match, in order.
// An empty ExpectedRefs means the citation must match nothing.
type QueryTestCase struct {
	Citation     string
	ExpectedRefs []string
	Description  string
}

// Corpus holds sections and query test cases for E2E tests.
type Corpus struct {
	Sections     []Section
	TestCases    []QueryTestCase
	TotalRefs    int
	TotalQueries int
}

var corpusBooks = []struct{ alias, canonical string }{
	{"Mateo", "Matthew"},
	{"Marcos", "Mark"},
	{"Lucas", "Luke"},
	{"Juan", "John"},
	{"Hechos", "Acts"},
	{"Romanos", "Romans"},
	{"1 Corintios", "1 Corinthians"},
	{"Gálatas", "Galatians"},
	{"Hebreos", "Hebrews"},
	{"1 Juan", "1 John"},
	{"Apocalipsis", "Revelation"},
	{"Génesis", "Genesis"},
	{"Salmos", "Psalms"},
	{"Isaías", "Isaiah"},
}

var corpusFathers = []string{
	"San Agustín", "San Juan Crisóstomo", "Orígenes", "San Ambrosio",
	"San Jerónimo", "San Gregorio Magno", "San Cirilo de Alejandría",
}

var verseSpans = []struct {
	span       string
	start, end int
}{
	{"1-5", 1, 5},
	{"6", 6, 6},
	{"7–12", 7, 12},
}

// BuildCorpus returns a corpus with three sections per chapter for two chapters of
// each book, and citation test cases covering overlap, aliases and misses.
func BuildCorpus() *Corpus {
	var sections []Section
	var cases []QueryTestCase
	n := 0
	for _, b := range corpusBooks {
		for ch := 1; ch <= 2; ch++ {
			for _, v := range verseSpans {
				father := corpusFathers[n%len(corpusFathers)]
				n++
				sections = append(sections, Section{
					Heading: fmt.Sprintf("%s %d:%s", b.alias, ch, v.span),
					Ref:     fmt.Sprintf("%s %d:%s", b.canonical, ch, v.span),
					Father:  father,
					Body: fmt.Sprintf("%s: Sobre el capítulo %d del libro de %s. Explica el sentido literal y espiritual del pasaje para la Iglesia.",
						father, ch, b.alias),
				})
			}
		}
		cases = append(cases,
			QueryTestCase{
				Citation:     fmt.Sprintf("%s 1:4-6", b.canonical),
				ExpectedRefs: []string{fmt.Sprintf("%s 1:1-5", b.canonical), fmt.Sprintf("%s 1:6", b.canonical)},
				Description:  "range spanning two sections",
			},
			QueryTestCase{
				Citation:     fmt.Sprintf("%s 2:8", b.alias),
				ExpectedRefs: []string{fmt.Sprintf("%s 2:7–12", b.canonical)},
				Description:  "Spanish alias inside a range",
			},
			QueryTestCase{
				Citation:     fmt.Sprintf("%s 2:1-20, 30-31", b.canonical),
				ExpectedRefs: []string{fmt.Sprintf("%s 2:1-5", b.canonical), fmt.Sprintf("%s 2:6", b.canonical), fmt.Sprintf("%s 2:7–12", b.canonical)},
				Description:  "compound citation uses the first segment",
			},
			QueryTestCase{
				Citation:    fmt.Sprintf("%s 2:13-20", b.canonical),
				Description: "past the last indexed verse",
			},
			QueryTestCase{
				Citation:    fmt.Sprintf("%s 3:1", b.canonical),
				Description: "chapter not indexed",
			},
		)
	}
	return &Corpus{
		Sections:     sections,
		TestCases:    cases,
		TotalRefs:    len(sections),
		TotalQueries: len(cases),
	}
}

// Text renders the corpus as the indexer reads it: a title page, then each heading
// followed by a blank line and its commentary.
func (c *Corpus) Text() string {
	var b strings.Builder
	b.WriteString("LA BIBLIA COMENTADA POR LOS PADRES DE LA IGLESIA\n")
	b.WriteString("Edición preparada para la lectura continua.\n\n")
	for _, s := range c.Sections {
		b.WriteString(s.Heading)
		b.WriteString("\n\n")
		b.WriteString(s.Body)
		b.WriteString("\n\n")
	}
	return b.String()
}

// SectionByRef returns the section indexed under ref.
func (c *Corpus) SectionByRef(ref string) (Section, bool) {
	for _, s := range c.Sections {
		if s.Ref == ref {
			return s, true
		}
	}
	return Section{}, false
}
