// Package indexer builds the commentary index from a corpus of verse headings.
package indexer

import (
	"context"
	"fmt"

	"github.com/hyperjump/patristica/internal/extract"
	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/internal/reference"
	"go.uber.org/zap"
)

// progressEvery is how many headings pass between debug progress logs, and how
// many lines pass between cancellation checks.
const progressEvery = 500

// Indexer scans corpus lines once and collects the text under each heading.
// Per-run state lives in the run itself, so an Indexer can be reused.
type Indexer struct {
	classifier    *reference.Classifier
	extractor     *extract.Extractor
	minSectionLen int
	logger        *zap.Logger // optional; when set, logs progress and totals
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithLogger sets a logger for progress and summary output.
func WithLogger(l *zap.Logger) IndexerOption {
	return func(idx *Indexer) { idx.logger = l }
}

// WithMinSectionLen overrides the length a section must exceed to be kept.
func WithMinSectionLen(n int) IndexerOption {
	return func(idx *Indexer) { idx.minSectionLen = n }
}

// Result is the outcome of one indexing run.
type Result struct {
	Index *models.RawIndex
	// Lines is the number of corpus lines scanned.
	Lines int
	// Headings counts every heading line, kept or not.
	Headings int
	// Discarded counts sections at or below the minimum length.
	Discarded int
}

// NewIndexer creates an indexer that recognizes headings using books.
// extractor may be nil; when nil, IndexFile treats every file as plain text.
func NewIndexer(books *reference.Books, extractor *extract.Extractor, opts ...IndexerOption) *Indexer {
	if extractor == nil {
		extractor = extract.NewExtractor()
	}
	idx := &Indexer{
		classifier:    reference.NewClassifier(books),
		extractor:     extractor,
		minSectionLen: DefaultMinSectionLen,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// IndexFile extracts the corpus at path and indexes its lines. Any read or
// decoding error aborts the run.
func (idx *Indexer) IndexFile(ctx context.Context, path string) (*Result, error) {
	if idx.logger != nil {
		idx.logger.Debug("indexer reading corpus", zap.String("path", path))
	}
	text, err := idx.extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	return idx.IndexLines(ctx, SplitLines(text))
}

// IndexLines runs the section state machine over lines in order.
func (idx *Indexer) IndexLines(ctx context.Context, lines []string) (*Result, error) {
	m := newSectionMachine(idx.minSectionLen)
	for i, line := range lines {
		if i%progressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		kind, h := idx.classifier.Classify(line)
		m.step(i+1, kind, h, line)
		if kind == reference.Heading && m.headings%progressEvery == 0 && idx.logger != nil {
			idx.logger.Debug("indexer progress",
				zap.Int("headings", m.headings),
				zap.String("current", h.Ref()),
			)
		}
	}
	res := &Result{
		Index:     m.finish(),
		Lines:     len(lines),
		Headings:  m.headings,
		Discarded: m.discarded,
	}
	if idx.logger != nil {
		idx.logger.Info("corpus indexed",
			zap.Int("lines", res.Lines),
			zap.Int("headings", res.Headings),
			zap.Int("entries", res.Index.Len()),
			zap.Int("discarded", res.Discarded),
		)
	}
	return res, nil
}
