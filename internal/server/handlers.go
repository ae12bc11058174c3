package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/patristica/internal/models"
	"github.com/hyperjump/patristica/internal/reference"
	"github.com/hyperjump/patristica/internal/storage"
	"go.uber.org/zap"
)

type lookupResponse struct {
	Reference string               `json:"reference"`
	Parsed    *reference.Reference `json:"parsed"`
	Matches   []models.MatchResult `json:"matches"`
}

type statusResponse struct {
	Chapters       int        `json:"chapters"`
	Entries        int        `json:"entries"`
	SnapshotPath   string     `json:"snapshot_path"`
	LoadedAt       *time.Time `json:"loaded_at"`
	DiskUsageBytes int64      `json:"disk_usage_bytes"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	query := models.LookupQuery{Reference: r.URL.Query().Get("ref")}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		query.Limit = n
	}
	if err := query.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("lookup request", zap.String("reference", query.Reference), zap.Int("limit", query.Limit))

	resp := lookupResponse{Reference: query.Reference, Matches: []models.MatchResult{}}
	if ref, err := s.matcher.Parser().Parse(query.Reference); err == nil {
		resp.Parsed = &ref
	}
	matches := s.matcher.Match(s.holder.Lookup(), query.Reference)
	if len(matches) > query.Limit {
		matches = matches[:query.Limit]
	}
	resp.Matches = append(resp.Matches, models.Results(matches)...)
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	bucket, ok := s.holder.Lookup().Bucket(key)
	if !ok {
		s.respondError(w, http.StatusNotFound, "chapter not found")
		return
	}
	s.respondJSON(w, http.StatusOK, models.PersistedView(bucket))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	lookup := s.holder.Lookup()
	resp := statusResponse{
		Chapters:     lookup.Len(),
		Entries:      lookup.EntryCount(),
		SnapshotPath: s.snapshotPath,
	}
	if at := s.holder.LoadedAt(); !at.IsZero() {
		resp.LoadedAt = &at
	}
	diskBytes, err := storage.DiskUsageBytes(s.snapshotPath)
	if err != nil {
		s.logger.Warn("status: disk usage failed", zap.Error(err))
	}
	resp.DiskUsageBytes = diskBytes
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
