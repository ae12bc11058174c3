package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/patristica/internal/config"
	"github.com/hyperjump/patristica/internal/matcher"
	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/internal/reference"
	"github.com/hyperjump/patristica/internal/storage"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, publish bool) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fathers_index.json")
	store := storage.NewSnapshotStore(path, time.Second, nil)
	holder := matcher.NewHolder(store, nil)
	if publish {
		l := models.NewLookup()
		l.Append("Mark 7", models.IndexEntry{Ref: "Mark 7:14-23", Verses: "14-23", Text: "Crisóstomo: Lo que sale del hombre."})
		l.Append("Mark 7", models.IndexEntry{Ref: "Mark 7:24-30", Verses: "24-30", Text: "Agustín. La fe de la mujer cananea."})
		if err := store.Write(context.Background(), l); err != nil {
			t.Fatal(err)
		}
		if err := holder.Reload(); err != nil {
			t.Fatal(err)
		}
	}
	m := matcher.New(reference.DefaultBooks())
	return NewServer(holder, m, path, &config.ServerConfig{Host: "localhost", Port: 8080}, zap.NewNop()), path
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t, false)
	w := get(t, s, "/health")
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestHandleLookup(t *testing.T) {
	s, _ := newTestServer(t, true)
	w := get(t, s, "/api/v1/lookup?ref="+url.QueryEscape("Marcos 7:20"))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out lookupResponse
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Parsed == nil || out.Parsed.Book != "Mark" || out.Parsed.Chapter != 7 || out.Parsed.StartVerse != 20 {
		t.Errorf("parsed = %+v", out.Parsed)
	}
	if len(out.Matches) != 1 {
		t.Fatalf("matches = %+v", out.Matches)
	}
	if out.Matches[0].Father != "Crisóstomo" || out.Matches[0].VerseRef != "Mark 7:14-23" || out.Matches[0].ReadingRef != "Marcos 7:20" {
		t.Errorf("match = %+v", out.Matches[0])
	}
}

func TestHandleLookup_limit(t *testing.T) {
	s, _ := newTestServer(t, true)
	w := get(t, s, "/api/v1/lookup?limit=1&ref="+url.QueryEscape("Mark 7:1-30"))
	var out lookupResponse
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Matches) != 1 {
		t.Errorf("matches = %d, want 1", len(out.Matches))
	}
}

func TestHandleLookup_noMatches(t *testing.T) {
	tests := []struct {
		name    string
		publish bool
		ref     string
	}{
		{"unparseable", true, "hello world"},
		{"unknown chapter", true, "Mark 9:1"},
		{"no index", false, "Mark 7:20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, tt.publish)
			w := get(t, s, "/api/v1/lookup?ref="+url.QueryEscape(tt.ref))
			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d", w.Code)
			}
			var raw map[string]json.RawMessage
			if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
				t.Fatal(err)
			}
			if string(raw["matches"]) != "[]" {
				t.Errorf("matches = %s, want []", raw["matches"])
			}
		})
	}
}

func TestHandleLookup_badRequest(t *testing.T) {
	s, _ := newTestServer(t, true)
	for _, target := range []string{"/api/v1/lookup", "/api/v1/lookup?ref=%20%20", "/api/v1/lookup?ref=Mark+7:1&limit=x"} {
		if w := get(t, s, target); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, w.Code)
		}
	}
}

func TestHandleChapter(t *testing.T) {
	s, _ := newTestServer(t, true)
	w := get(t, s, "/api/v1/chapters/Mark%207")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out []models.PersistedEntry
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].Ref != "Mark 7:14-23" || out[1].Verses != "24-30" {
		t.Errorf("bucket = %+v", out)
	}

	if w := get(t, s, "/api/v1/chapters/Mark%208"); w.Code != http.StatusNotFound {
		t.Errorf("missing chapter: status %d", w.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	s, path := newTestServer(t, true)
	w := get(t, s, "/api/v1/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out statusResponse
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Chapters != 1 || out.Entries != 2 || out.SnapshotPath != path {
		t.Errorf("status = %+v", out)
	}
	if out.LoadedAt == nil || out.DiskUsageBytes <= 0 {
		t.Errorf("loaded_at=%v disk=%d", out.LoadedAt, out.DiskUsageBytes)
	}
}

func TestHandleStatus_empty(t *testing.T) {
	s, _ := newTestServer(t, false)
	var out map[string]any
	if err := json.NewDecoder(get(t, s, "/api/v1/status").Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["loaded_at"] != nil || out["chapters"] != float64(0) {
		t.Errorf("status = %+v", out)
	}
}
