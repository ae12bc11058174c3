// Package models defines the index, match and feed data structures.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hyperjump/patristica/pkg/utils"
)

// MaxPersistedText caps entry text in the persisted snapshot, in characters.
const MaxPersistedText = 2000

// IndexEntry is one commentary section found under a heading.
// Text is kept in full; caps apply only when projecting or persisting.
type IndexEntry struct {
	// Ref is the normalized reference, e.g. "Mark 7:14-23".
	Ref string `json:"ref"`
	// Verses is the verse span as captured from the heading, e.g. "14-23".
	Verses string `json:"verses"`
	Text   string `json:"text"`
	// SourceLine is the 1-based corpus line of the heading; zero for entries
	// loaded from a snapshot.
	SourceLine int `json:"line,omitempty"`
}

// RawIndex maps normalized references to entries in first-insertion order.
type RawIndex struct {
	order   []string
	entries map[string]IndexEntry
}

// NewRawIndex returns an empty RawIndex.
func NewRawIndex() *RawIndex {
	return &RawIndex{entries: make(map[string]IndexEntry)}
}

// Put stores e under e.Ref. A repeated reference replaces the earlier entry
// but keeps its original position.
func (r *RawIndex) Put(e IndexEntry) {
	if _, ok := r.entries[e.Ref]; !ok {
		r.order = append(r.order, e.Ref)
	}
	r.entries[e.Ref] = e
}

// Get returns the entry stored for ref.
func (r *RawIndex) Get(ref string) (IndexEntry, bool) {
	e, ok := r.entries[ref]
	return e, ok
}

// Len returns the number of entries.
func (r *RawIndex) Len() int {
	return len(r.order)
}

// Entries returns all entries in insertion order.
func (r *RawIndex) Entries() []IndexEntry {
	out := make([]IndexEntry, 0, len(r.order))
	for _, ref := range r.order {
		out = append(out, r.entries[ref])
	}
	return out
}

// MarshalJSON encodes the index as an object keyed by reference, preserving order.
func (r *RawIndex) MarshalJSON() ([]byte, error) {
	type rawValue struct {
		Text string `json:"text"`
		Line int    `json:"line"`
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ref := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		e := r.entries[ref]
		if err := writeMember(&buf, ref, rawValue{Text: e.Text, Line: e.SourceLine}); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Lookup is the persisted chapter-bucket structure: "{book} {chapter}" keys in
// first-insertion order, each holding entries in corpus order.
type Lookup struct {
	keys    []string
	buckets map[string][]IndexEntry
}

// NewLookup returns an empty Lookup.
func NewLookup() *Lookup {
	return &Lookup{buckets: make(map[string][]IndexEntry)}
}

// Append adds e to the bucket for key, creating the bucket when needed.
func (l *Lookup) Append(key string, e IndexEntry) {
	if _, ok := l.buckets[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.buckets[key] = append(l.buckets[key], e)
}

// Bucket returns the entries for key in corpus order. The returned slice is shared.
func (l *Lookup) Bucket(key string) ([]IndexEntry, bool) {
	if l == nil {
		return nil, false
	}
	b, ok := l.buckets[key]
	return b, ok
}

// Keys returns bucket keys in insertion order.
func (l *Lookup) Keys() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.keys...)
}

// Len returns the number of buckets.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.keys)
}

// EntryCount returns the number of entries across all buckets.
func (l *Lookup) EntryCount() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, b := range l.buckets {
		n += len(b)
	}
	return n
}

// PersistedEntry is the on-disk view of an IndexEntry.
type PersistedEntry struct {
	Ref    string `json:"ref"`
	Verses string `json:"verses"`
	Text   string `json:"text"`
}

// PersistedView returns the entries of a bucket as they are written to disk.
func PersistedView(entries []IndexEntry) []PersistedEntry {
	out := make([]PersistedEntry, len(entries))
	for i, e := range entries {
		out[i] = PersistedEntry{Ref: e.Ref, Verses: e.Verses, Text: utils.Clip(e.Text, MaxPersistedText)}
	}
	return out
}

// MarshalJSON encodes buckets in insertion order with text capped at MaxPersistedText.
func (l *Lookup) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range l.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, key, PersistedView(l.buckets[key])); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a snapshot, keeping the key order found in the document.
func (l *Lookup) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("lookup: expected object, got %v", tok)
	}
	l.keys = nil
	l.buckets = make(map[string][]IndexEntry)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("lookup: expected key, got %v", tok)
		}
		var entries []PersistedEntry
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("lookup: bucket %q: %w", key, err)
		}
		if _, seen := l.buckets[key]; !seen {
			l.keys = append(l.keys, key)
			l.buckets[key] = make([]IndexEntry, 0, len(entries))
		}
		for _, e := range entries {
			l.buckets[key] = append(l.buckets[key], IndexEntry{Ref: e.Ref, Verses: e.Verses, Text: e.Text})
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// writeMember writes "key":value without HTML escaping.
func writeMember(buf *bytes.Buffer, key string, value any) error {
	if err := writeJSON(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeJSON(buf, value)
}

func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
