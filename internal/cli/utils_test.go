package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/internal/reference"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func lookupResult() *LookupResult {
	ref := reference.Reference{Book: "Mark", Chapter: 7, StartVerse: 14, EndVerse: 23}
	return &LookupResult{
		Reference: "Marcos 7:14-23",
		Parsed:    &ref,
		Matches: []models.MatchResult{{
			ReadingRef: "Marcos 7:14-23",
			Father:     "Crisóstomo",
			Text:       "Crisóstomo: Lo que sale del hombre <eso> lo contamina.",
			VerseRef:   "Mark 7:14-23",
		}},
	}
}

func TestWriteMatches_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMatches(&buf, lookupResult(), OutputJSON); err != nil {
		t.Fatalf("WriteMatches(json): %v", err)
	}
	if strings.Contains(buf.String(), `\u003c`) {
		t.Error("output should not escape HTML")
	}
	var decoded LookupResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded.Parsed == nil || decoded.Parsed.Book != "Mark" || len(decoded.Matches) != 1 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteMatches_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMatches(&buf, lookupResult(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Mark 7:14-23 (chapter Mark 7)", "Found 1 comment(s)", "[1] Mark 7:14-23 | Crisóstomo"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	_ = WriteMatches(&buf, &LookupResult{Reference: "hola"}, OutputText)
	if !strings.Contains(buf.String(), `Could not parse "hola"`) {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	r := lookupResult()
	r.Matches = nil
	_ = WriteMatches(&buf, r, OutputText)
	if !strings.Contains(buf.String(), "No patristic commentary found") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func statusLookup() *models.Lookup {
	l := models.NewLookup()
	for ch := 1; ch <= 3; ch++ {
		key := fmt.Sprintf("John %d", ch)
		for v := 1; v <= 3; v++ {
			l.Append(key, models.IndexEntry{Ref: fmt.Sprintf("%s:%d", key, v), Verses: fmt.Sprint(v), Text: strings.Repeat("á", 150)})
		}
	}
	l.Append("1 John 4", models.IndexEntry{Ref: "1 John 4:8", Verses: "8", Text: "Agustín: Dios es amor."})
	l.Append("Genesis 1", models.IndexEntry{Ref: "Genesis 1:1", Verses: "1", Text: "Basilio. En el principio."})
	l.Append("Mark 7", models.IndexEntry{Ref: "Mark 7:14", Verses: "14", Text: "Crisóstomo: Nada de fuera."})
	return l
}

func TestBuildStatus(t *testing.T) {
	st := BuildStatus(statusLookup(), "/data/fathers_index.json", 2048)
	if st.Chapters != 6 || st.Entries != 12 {
		t.Errorf("chapters=%d entries=%d", st.Chapters, st.Entries)
	}
	if len(st.Samples) != 5 || st.Samples[0].Key != "John 1" || len(st.Samples[0].Preview) != 2 {
		t.Fatalf("samples = %+v", st.Samples)
	}
	if n := utf8.RuneCountInString(st.Samples[0].Preview[0].Text); n != 100 {
		t.Errorf("preview runes = %d", n)
	}
	want := []BookCoverage{
		{Book: "Mark", Chapters: 1, Entries: 1},
		{Book: "John", Chapters: 3, Entries: 9},
		{Book: "1 John", Chapters: 1, Entries: 1},
	}
	if len(st.NewTestament) != len(want) {
		t.Fatalf("coverage = %+v", st.NewTestament)
	}
	for i := range want {
		if st.NewTestament[i] != want[i] {
			t.Errorf("coverage %d = %+v, want %+v", i, st.NewTestament[i], want[i])
		}
	}
}

func TestBuildStatus_empty(t *testing.T) {
	st := BuildStatus(nil, "", 0)
	if st.Chapters != 0 || len(st.Samples) != 0 || len(st.NewTestament) != 0 {
		t.Errorf("status = %+v", st)
	}
}

func TestWriteStatus(t *testing.T) {
	st := BuildStatus(statusLookup(), "/data/fathers_index.json", 3*1024*1024)
	var buf bytes.Buffer
	if err := WriteStatus(&buf, st, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"(3.0 MB)", "Books/chapters indexed: 6", "── New Testament coverage ──", "  John: 3 chapters, 9 verse entries"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteStatus(&buf, st, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded Status
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Entries != 12 || len(decoded.NewTestament) != 3 {
		t.Errorf("decoded = %+v", decoded)
	}
}
