package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/careerview/internal/types"
)

// PersonasResponse represents the response for GET /personas
type PersonasResponse struct {
	Personas   []types.Persona `json:"personas"`
	TotalCount int             `json:"total_count"`
	Source     string          `json:"source"`
	Message    string          `json:"message,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// PersonaResponse represents the response for GET /personas/{persona_id}
type PersonaResponse struct {
	PersonaID string         `json:"persona_id"`
	Info      *types.Persona `json:"info"`
	Source    string         `json:"source"`
	Timestamp time.Time      `json:"timestamp"`
}

// FutureSelfResponse represents the response for POST /personas/create-future-self/{career_id}
type FutureSelfResponse struct {
	Persona   *types.Persona `json:"persona"`
	CareerID  string         `json:"career_id"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
}

const (
	sourceStorage = "storage"
	sourceNone    = "no_stored_personas"
)

// handleListPersonas lists stored personas
func (s *Server) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	personas, err := s.service.ListPersonas(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	resp := PersonasResponse{
		Personas:   personas,
		TotalCount: len(personas),
		Source:     sourceStorage,
		Timestamp:  s.now(),
	}
	if len(personas) == 0 {
		resp.Personas = []types.Persona{}
		resp.Source = sourceNone
		resp.Message = "No personas found. Create one from a career match."
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetPersona returns one stored persona
func (s *Server) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("persona_id")
	p, err := s.service.GetPersona(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, PersonaResponse{
		PersonaID: id,
		Info:      p,
		Source:    sourceStorage,
		Timestamp: s.now(),
	})
}

// handleCreatePersona stores a persona given by the client
func (s *Server) handleCreatePersona(w http.ResponseWriter, r *http.Request) {
	var p types.Persona
	if err := s.decodeJSON(r, &p); err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := s.service.CreatePersona(r.Context(), &p); err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, AckResponse{
		Message:   fmt.Sprintf("Persona '%s' created successfully", p.Key()),
		PersonaID: p.Key(),
		Timestamp: s.now(),
	})
}

// handleDeletePersona deletes one stored persona
func (s *Server) handleDeletePersona(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("persona_id")
	if err := s.service.DeletePersona(r.Context(), id); err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, AckResponse{
		Message:   fmt.Sprintf("Persona '%s' deleted successfully", id),
		PersonaID: id,
		Timestamp: s.now(),
	})
}

// handleDeleteAllPersonas deletes every stored persona
func (s *Server) handleDeleteAllPersonas(w http.ResponseWriter, r *http.Request) {
	n, err := s.service.DeleteAllPersonas(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, DeletedCountResponse{
		Message:      fmt.Sprintf("Deleted %d personas", n),
		DeletedCount: n,
		Timestamp:    s.now(),
	})
}

// handleCreateFutureSelf builds and stores the future-self persona for a career
func (s *Server) handleCreateFutureSelf(w http.ResponseWriter, r *http.Request) {
	careerID := r.PathValue("career_id")
	p, err := s.service.CreateFutureSelf(r.Context(), careerID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, FutureSelfResponse{
		Persona:   p,
		CareerID:  careerID,
		Message:   fmt.Sprintf("Future self persona created for %s", careerID),
		Timestamp: s.now(),
	})
}

// handleChat answers a chat message as a persona
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.service.Chat(r.Context(), req))
}

// handleQuickChat answers a message given as query parameters
func (s *Server) handleQuickChat(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := s.service.QuickChat(r.Context(), q.Get("persona_id"), q.Get("message"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleVoiceChat answers the voice variant of the future-self conversation
func (s *Server) handleVoiceChat(w http.ResponseWriter, r *http.Request) {
	var req types.VoiceChatRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}
	resp, err := s.service.VoiceChat(r.Context(), r.PathValue("persona_id"), req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
