package server

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"

	"colordist/internal/ratings"
)

const maxSubmitBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": code})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.cfg.IndexPath)
	if err != nil {
		stdlog.Printf("Error reading index page %s: %v", s.cfg.IndexPath, err)
		http.Error(w, "index page not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	now := s.now()
	if s.limits != nil && !s.limits.allow(ip, now) {
		writeError(w, http.StatusTooManyRequests, "rate_limited")
		return
	}

	var sub ratings.Submission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmitBytes))
	if err := dec.Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	rating, err := sub.Rating(ip, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}

	if err := s.store.Append(r.Context(), rating); err != nil {
		stdlog.Printf("Error storing rating from %s: %v", ip, err)
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}

	s.journalRating(rating)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) journalRating(r ratings.Rating) {
	line, err := json.Marshal(r.LogEntry())
	if err != nil {
		stdlog.Printf("Error encoding rating log entry: %v", err)
		return
	}
	s.journalMu.Lock()
	defer s.journalMu.Unlock()
	s.journal.Write(append(line, '\n'))
}
