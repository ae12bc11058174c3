// Package cli provides output helpers for the patristica commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/internal/reference"
	"github.com/hyperjump/patristica/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q (use text or json)", s)
	}
}

// LookupResult is the outcome of matching one citation.
type LookupResult struct {
	Reference string               `json:"reference"`
	Parsed    *reference.Reference `json:"parsed"`
	Matches   []models.MatchResult `json:"matches"`
}

// WriteMatches writes a lookup result to w in the given format.
func WriteMatches(w io.Writer, result *LookupResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, result)
	default:
		writeMatchesText(w, result)
		return nil
	}
}

func writeMatchesText(w io.Writer, result *LookupResult) {
	if result.Parsed == nil {
		fmt.Fprintf(w, "\nCould not parse %q as a citation\n", result.Reference)
		return
	}
	fmt.Fprintf(w, "\n%s -> %s (chapter %s)\n", result.Reference, result.Parsed, result.Parsed.ChapterKey())
	if len(result.Matches) == 0 {
		fmt.Fprintln(w, "No patristic commentary found")
		return
	}
	fmt.Fprintf(w, "Found %d comment(s)\n\n", len(result.Matches))
	for i, m := range result.Matches {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "[%d] %s | %s\n", i+1, m.VerseRef, m.Father)
		fmt.Fprintf(w, "\n%s\n", utils.Truncate(m.Text, 300))
		fmt.Fprintln(w)
	}
}

// BookCoverage summarizes how much of one book is indexed.
type BookCoverage struct {
	Book     string `json:"book"`
	Chapters int    `json:"chapters"`
	Entries  int    `json:"entries"`
}

// ChapterSample previews the first entries of a bucket.
type ChapterSample struct {
	Key     string                  `json:"key"`
	Entries int                     `json:"entries"`
	Preview []models.PersistedEntry `json:"preview"`
}

// Status describes a published snapshot.
type Status struct {
	SnapshotPath   string          `json:"snapshot_path"`
	DiskUsageBytes int64           `json:"disk_usage_bytes"`
	Chapters       int             `json:"chapters"`
	Entries        int             `json:"entries"`
	Samples        []ChapterSample `json:"samples"`
	NewTestament   []BookCoverage  `json:"new_testament"`
}

const (
	sampleChapters = 5
	samplePerKey   = 2
	samplePreview  = 100
)

// BuildStatus computes snapshot statistics, the first chapter samples and the
// New Testament coverage of lookup.
func BuildStatus(lookup *models.Lookup, path string, size int64) *Status {
	st := &Status{
		SnapshotPath:   path,
		DiskUsageBytes: size,
		Chapters:       lookup.Len(),
		Entries:        lookup.EntryCount(),
		Samples:        []ChapterSample{},
		NewTestament:   []BookCoverage{},
	}
	keys := lookup.Keys()
	for _, key := range keys[:min(sampleChapters, len(keys))] {
		bucket, _ := lookup.Bucket(key)
		preview := models.PersistedView(bucket[:min(samplePerKey, len(bucket))])
		for i := range preview {
			preview[i].Text = utils.Clip(preview[i].Text, samplePreview)
		}
		st.Samples = append(st.Samples, ChapterSample{Key: key, Entries: len(bucket), Preview: preview})
	}
	for _, book := range reference.NewTestament {
		cov := BookCoverage{Book: book}
		for _, key := range keys {
			if !strings.HasPrefix(key, book+" ") {
				continue
			}
			bucket, _ := lookup.Bucket(key)
			cov.Chapters++
			cov.Entries += len(bucket)
		}
		if cov.Chapters > 0 {
			st.NewTestament = append(st.NewTestament, cov)
		}
	}
	return st
}

// WriteStatus writes snapshot statistics to w in the given format.
func WriteStatus(w io.Writer, st *Status, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, st)
	default:
		writeStatusText(w, st)
		return nil
	}
}

func writeStatusText(w io.Writer, st *Status) {
	fmt.Fprintf(w, "Snapshot: %s (%.1f MB)\n", st.SnapshotPath, float64(st.DiskUsageBytes)/(1024*1024))
	fmt.Fprintf(w, "Books/chapters indexed: %d\n", st.Chapters)
	fmt.Fprintf(w, "Verse entries: %d\n", st.Entries)
	if len(st.Samples) > 0 {
		fmt.Fprintln(w, "\n── Sample entries ──")
		for _, s := range st.Samples {
			fmt.Fprintf(w, "  %s: %d verse(s)\n", s.Key, s.Entries)
			for _, e := range s.Preview {
				fmt.Fprintf(w, "    - %s: %s...\n", e.Ref, e.Text)
			}
		}
	}
	if len(st.NewTestament) > 0 {
		fmt.Fprintln(w, "\n── New Testament coverage ──")
		for _, c := range st.NewTestament {
			fmt.Fprintf(w, "  %s: %d chapters, %d verse entries\n", c.Book, c.Chapters, c.Entries)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
