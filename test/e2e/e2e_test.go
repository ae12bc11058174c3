package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/patristica/internal/config"
	"github.com/hyperjump/patristica/internal/extract"
	"github.com/hyperjump/patristica/internal/indexer"
	"github.com/hyperjump/patristica/internal/matcher"
	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/internal/reference"
	"github.com/hyperjump/patristica/internal/server"
	"github.com/hyperjump/patristica/internal/storage"
	"go.uber.org/zap"
)

// publish indexes the corpus from disk and publishes the snapshot, returning a
// holder loaded from it.
func publish(t *testing.T, c *Corpus) (*matcher.Holder, string) {
	t.Helper()
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "padres_iglesia_full.txt")
	if err := os.WriteFile(corpusPath, []byte(c.Text()), 0600); err != nil {
		t.Fatal(err)
	}
	books := reference.DefaultBooks()
	res, err := indexer.NewIndexer(books, extract.NewExtractor()).IndexFile(context.Background(), corpusPath)
	if err != nil {
		t.Fatalf("index corpus: %v", err)
	}
	if res.Index.Len() != c.TotalRefs {
		t.Fatalf("indexed %d refs, want %d", res.Index.Len(), c.TotalRefs)
	}

	snapshot := filepath.Join(dir, "data", "fathers_index.json")
	store := storage.NewSnapshotStore(snapshot, time.Second, nil)
	if err := store.Write(context.Background(), indexer.BuildLookup(res.Index)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	holder := matcher.NewHolder(store, nil)
	if err := holder.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return holder, snapshot
}

func TestE2E_MatchReturnsCorrectCommentary(t *testing.T) {
	c := BuildCorpus()
	holder, _ := publish(t, c)
	m := matcher.New(reference.DefaultBooks())

	for _, tc := range c.TestCases {
		t.Run(tc.Citation, func(t *testing.T) {
			results := models.Results(m.Match(holder.Lookup(), tc.Citation))
			if len(results) != len(tc.ExpectedRefs) {
				t.Fatalf("%s: got %d results, want %d (%+v)", tc.Description, len(results), len(tc.ExpectedRefs), results)
			}
			for i, want := range tc.ExpectedRefs {
				r := results[i]
				if r.VerseRef != want {
					t.Errorf("result %d = %s, want %s", i, r.VerseRef, want)
				}
				s, _ := c.SectionByRef(want)
				if r.Father != s.Father {
					t.Errorf("father = %q, want %q", r.Father, s.Father)
				}
				if r.Text != s.Body {
					t.Errorf("text = %q, want %q", r.Text, s.Body)
				}
				if r.ReadingRef != tc.Citation {
					t.Errorf("reading_ref = %q", r.ReadingRef)
				}
			}
		})
	}
}

func TestE2E_HTTPLookup(t *testing.T) {
	c := BuildCorpus()
	holder, snapshot := publish(t, c)
	srv := server.NewServer(holder, matcher.New(reference.DefaultBooks()), snapshot, &config.ServerConfig{}, zap.NewNop())
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	for _, tc := range c.TestCases[:5] {
		resp, err := http.Get(ts.URL + "/api/v1/lookup?ref=" + url.QueryEscape(tc.Citation))
		if err != nil {
			t.Fatal(err)
		}
		var out struct {
			Matches []models.MatchResult `json:"matches"`
		}
		err = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}
		if len(out.Matches) != len(tc.ExpectedRefs) {
			t.Errorf("%s: got %d matches over HTTP, want %d", tc.Citation, len(out.Matches), len(tc.ExpectedRefs))
		}
	}

	resp, err := http.Get(ts.URL + "/api/v1/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var status struct {
		Entries int `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Entries != c.TotalRefs {
		t.Errorf("status entries = %d, want %d", status.Entries, c.TotalRefs)
	}
}

func TestE2E_SnapshotIsStable(t *testing.T) {
	c := BuildCorpus()
	_, first := publish(t, c)
	_, second := publish(t, c)
	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("publishing the same corpus twice should produce identical snapshots")
	}
}
