package server

import (
	"net/http"
	"time"

	"github.com/jonathan/careerview/internal/storage"
)

// InfoResponse represents the response for /
type InfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthResponse represents the response for /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// MessageResponse acknowledges an operation without a payload.
type MessageResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ClearAllResponse represents the response for /clear-all-data
type ClearAllResponse struct {
	Message       string              `json:"message"`
	DeletedCounts storage.ClearCounts `json:"deleted_counts"`
	Timestamp     time.Time           `json:"timestamp"`
}

// handleRoot returns service information and the endpoint map
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, InfoResponse{
		Message:   serviceName,
		Version:   serviceVersion,
		Status:    "running",
		Timestamp: s.now(),
		Endpoints: map[string]string{
			"health":   "/health",
			"upload":   "/upload-resume",
			"matches":  "/career-matches/{user_id}",
			"path":     "/career-path/{career_id}",
			"personas": "/personas",
			"chat":     "/chat",
		},
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: s.now(),
		Service:   serviceName,
		Version:   serviceVersion,
	})
}

// handlePerformance reports storage latency and cache usage
func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.service.Performance(r.Context()))
}

// handleDebugLastResume shows the raw text of the last upload
func (s *Server) handleDebugLastResume(w http.ResponseWriter, r *http.Request) {
	dbg, err := s.service.DebugLastResume(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, dbg)
}

// handleClearCache drops cached matches
func (s *Server) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	s.service.ClearCaches()
	s.jsonResponse(w, http.StatusOK, MessageResponse{
		Message:   "Career matches cache cleared",
		Timestamp: s.now(),
	})
}

// handleClearAllData deletes stored matches, paths and personas
func (s *Server) handleClearAllData(w http.ResponseWriter, r *http.Request) {
	counts, err := s.service.ClearAllData(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ClearAllResponse{
		Message:       "All stored data cleared successfully",
		DeletedCounts: counts,
		Timestamp:     s.now(),
	})
}
