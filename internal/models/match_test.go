package models

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMatch_Result(t *testing.T) {
	m := Match{
		ReadingRef: "Mark 7:14-23",
		Author:     strings.Repeat("é", 150),
		Entry:      IndexEntry{Ref: "Mark 7:14-23", Text: strings.Repeat("ñ", 1000)},
	}
	r := m.Result()
	if n := utf8.RuneCountInString(r.Father); n != MaxAuthorLen {
		t.Errorf("father has %d characters, want %d", n, MaxAuthorLen)
	}
	if n := utf8.RuneCountInString(r.Text); n != MaxMatchText {
		t.Errorf("text has %d characters, want %d", n, MaxMatchText)
	}
	if r.VerseRef != "Mark 7:14-23" || r.ReadingRef != "Mark 7:14-23" {
		t.Errorf("unexpected refs %+v", r)
	}
	if utf8.RuneCountInString(m.Entry.Text) != 1000 {
		t.Error("projection must not modify the match")
	}
}

func TestMatchResult_JSONKeys(t *testing.T) {
	data, err := json.Marshal(MatchResult{ReadingRef: "a", Father: "b", Text: "c", VerseRef: "d"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"reading_ref":"a","father":"b","text":"c","verse_ref":"d"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestResults_keepsOrder(t *testing.T) {
	got := Results([]Match{
		{Entry: IndexEntry{Ref: "Mark 7:24"}},
		{Entry: IndexEntry{Ref: "Mark 7:14"}},
	})
	if len(got) != 2 || got[0].VerseRef != "Mark 7:24" || got[1].VerseRef != "Mark 7:14" {
		t.Errorf("Results = %+v", got)
	}
}
