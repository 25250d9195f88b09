package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/careerview/internal/careers"
	"github.com/jonathan/careerview/internal/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StoredCareerPathsResponse represents the response for GET /stored-career-paths
type StoredCareerPathsResponse struct {
	CareerPaths []types.CareerPathSummary `json:"career_paths"`
	TotalCount  int                       `json:"total_count"`
	Timestamp   time.Time                 `json:"timestamp"`
}

// AckResponse acknowledges a change to one stored object.
type AckResponse struct {
	Message   string    `json:"message"`
	CareerID  string    `json:"career_id,omitempty"`
	PersonaID string    `json:"persona_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DeletedCountResponse acknowledges a bulk deletion.
type DeletedCountResponse struct {
	Message      string    `json:"message"`
	DeletedCount int       `json:"deleted_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// handleUploadResume accepts a multipart "file" field holding a PDF or DOCX
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	bodyLimit := s.maxUpload + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) || r.ContentLength > bodyLimit {
			s.serviceError(w, r, &careers.ErrFileTooLarge{Size: r.ContentLength, Limit: s.maxUpload})
			return
		}
		s.serviceError(w, r, &ErrValidation{Field: "file", Message: "multipart field is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.serviceError(w, r, &ErrBadRequest{Err: err})
		return
	}

	result, err := s.service.UploadResume(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleCareerMatches returns stored, cached or freshly computed matches
func (s *Server) handleCareerMatches(w http.ResponseWriter, r *http.Request) {
	force, err := queryBool(r, "force_refresh")
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	record, err := s.service.CareerMatches(r.Context(), r.PathValue("user_id"), force)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleExportMatches streams the matches as a spreadsheet
func (s *Server) handleExportMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	data, err := s.service.ExportMatches(r.Context(), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="career_matches_%s.xlsx"`, userID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleCareerPath returns the stored or generated learning path for a career
func (s *Server) handleCareerPath(w http.ResponseWriter, r *http.Request) {
	record, err := s.service.CareerPath(r.Context(), r.PathValue("career_id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleStoredCareerPaths lists stored learning paths
func (s *Server) handleStoredCareerPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := s.service.StoredCareerPaths(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, StoredCareerPathsResponse{
		CareerPaths: paths,
		TotalCount:  len(paths),
		Timestamp:   s.now(),
	})
}

// handleDeleteCareerPath deletes one stored learning path
func (s *Server) handleDeleteCareerPath(w http.ResponseWriter, r *http.Request) {
	careerID := r.PathValue("career_id")
	if err := s.service.DeleteCareerPath(r.Context(), careerID); err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, AckResponse{
		Message:   fmt.Sprintf("Career path '%s' deleted successfully", careerID),
		CareerID:  careerID,
		Timestamp: s.now(),
	})
}

// handleDeleteAllCareerPaths deletes every stored learning path
func (s *Server) handleDeleteAllCareerPaths(w http.ResponseWriter, r *http.Request) {
	n, err := s.service.DeleteAllCareerPaths(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, DeletedCountResponse{
		Message:      fmt.Sprintf("Deleted %d career paths", n),
		DeletedCount: n,
		Timestamp:    s.now(),
	})
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ErrValidation{Field: name, Message: "must be a boolean"}
	}
	return v, nil
}
