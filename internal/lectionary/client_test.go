package lectionary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hyperjump/patristica/internal/config"
	"github.com/hyperjump/patristica/internal/models"
)

const sampleDay = `{
  "date": "2026-02-11",
  "season": "Ordinary Time",
  "readings": {
    "firstReading": "1 Kings 10:1-10",
    "psalm": "Psalm 37:5-6, 30-31, 39-40",
    "secondReading": "",
    "gospel": "Mark 7:14-23"
  }
}`

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(config.LectionaryConfig{
		BaseURL:   url,
		UserAgent: "test-agent",
		Timeout:   time.Second,
		Attempts:  3,
	}, WithRetryDelay(time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func testDate() time.Time {
	return time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/readings/2026/02-11.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("user agent = %q", ua)
		}
		w.Write([]byte(sampleDay))
	}))
	defer srv.Close()

	day, err := newTestClient(t, srv.URL).Fetch(context.Background(), testDate())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if day.Season != "Ordinary Time" {
		t.Errorf("season = %q", day.Season)
	}
	readings := day.Readings()
	want := []models.Reading{
		{Type: models.ReadingFirst, Reference: "1 Kings 10:1-10"},
		{Type: models.ReadingPsalm, Reference: "Psalm 37:5-6, 30-31, 39-40"},
		{Type: models.ReadingGospel, Reference: "Mark 7:14-23"},
	}
	if len(readings) != len(want) {
		t.Fatalf("readings = %+v", readings)
	}
	for i := range want {
		if readings[i] != want[i] {
			t.Errorf("reading %d = %+v, want %+v", i, readings[i], want[i])
		}
	}
}

func TestFetch_retriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(sampleDay))
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv.URL).Fetch(context.Background(), testDate()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestFetch_notFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv.URL).Fetch(context.Background(), testDate()); err == nil {
		t.Fatal("expected error")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestFetch_rejectsPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>maintenance</html>"},
		{"readings not an object", `{"readings": "Mark 7:14-23"}`},
		{"citation not a string", `{"readings": {"gospel": 42}}`},
		{"array document", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			day, err := newTestClient(t, srv.URL).Fetch(context.Background(), testDate())
			if !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("expected ErrInvalidPayload, got %v", err)
			}
			if day != nil {
				t.Errorf("day = %+v", day)
			}
		})
	}
}

func TestFetch_nullFieldsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"season": null, "readings": {"firstReading": "Acts 2:1-11", "secondReading": null}}`))
	}))
	defer srv.Close()

	day, err := newTestClient(t, srv.URL).Fetch(context.Background(), testDate())
	if err != nil {
		t.Fatal(err)
	}
	if got := day.Readings(); len(got) != 1 || got[0].Type != models.ReadingFirst {
		t.Errorf("readings = %+v", got)
	}
}

func TestDay_ReadingsNil(t *testing.T) {
	var d *Day
	if d.Readings() != nil {
		t.Error("nil day should have no readings")
	}
}

func TestURL(t *testing.T) {
	c := newTestClient(t, "https://example.org/api/")
	want := "https://example.org/api/readings/2026/02-11.json"
	if got := c.URL(testDate()); got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}
