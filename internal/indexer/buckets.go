package indexer

import (
	"regexp"

	"github.com/hyperjump/patristica/internal/models"
)

// bucketRefRe splits "{book} {chapter}:{verses}". The book is greedy so that the
// last chapter:verses occurrence wins for names with embedded digits.
var bucketRefRe = regexp.MustCompile(`^(.+)\s+(\d+)[:.](.+)$`)

// BuildLookup regroups raw entries by "{book} {chapter}". Buckets and the entries
// inside them keep the raw index order. References that do not split are skipped.
func BuildLookup(raw *models.RawIndex) *models.Lookup {
	lookup := models.NewLookup()
	if raw == nil {
		return lookup
	}
	for _, e := range raw.Entries() {
		m := bucketRefRe.FindStringSubmatch(e.Ref)
		if m == nil {
			continue
		}
		e.Verses = m[3]
		lookup.Append(m[1]+" "+m[2], e)
	}
	return lookup
}
