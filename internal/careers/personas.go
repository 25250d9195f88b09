package careers

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/persona"
	"github.com/jonathan/careerview/internal/types"
)

// ListPersonas returns every stored persona.
func (s *Service) ListPersonas(ctx context.Context) ([]types.Persona, error) {
	return onPool(ctx, s, func() []types.Persona { return s.repo.ListPersonas(ctx) })
}

// GetPersona returns the stored persona with id.
func (s *Service) GetPersona(ctx context.Context, id string) (*types.Persona, error) {
	p, ok, err := loadOnPool(ctx, s, func() (*types.Persona, bool) { return s.repo.GetPersona(ctx, id) })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ErrNotFound{Kind: "persona", ID: id}
	}
	return p, nil
}

// CreatePersona stores p under its id or persona_id.
func (s *Service) CreatePersona(ctx context.Context, p *types.Persona) error {
	if p.Key() == "" {
		return &ErrValidation{Field: "id", Message: "persona ID is required"}
	}
	saved, err := onPool(ctx, s, func() bool { return s.repo.SavePersona(ctx, p) })
	if err != nil {
		return err
	}
	if !saved {
		return &ErrStorage{Op: "save persona"}
	}
	s.logger.Info("persona saved", zap.String("persona_id", p.Key()))
	return nil
}

// DeletePersona removes the stored persona with id.
func (s *Service) DeletePersona(ctx context.Context, id string) error {
	deleted, err := onPool(ctx, s, func() bool { return s.repo.DeletePersona(ctx, id) })
	if err != nil {
		return err
	}
	if !deleted {
		return &ErrNotFound{Kind: "persona", ID: id}
	}
	return nil
}

// DeleteAllPersonas removes every stored persona and reports how many went.
func (s *Service) DeleteAllPersonas(ctx context.Context) (int, error) {
	return onPool(ctx, s, func() int { return s.repo.DeleteAllPersonas(ctx) })
}

// CreateFutureSelf builds and stores the future-self persona for careerID,
// seeded with the user's match for that career when there is one.
func (s *Service) CreateFutureSelf(ctx context.Context, careerID string) (*types.Persona, error) {
	if careerID == "" {
		return nil, &ErrValidation{Field: "career_id", Message: "is required"}
	}
	if _, err := s.LatestResume(ctx); err != nil {
		return nil, err
	}

	match, ok := s.findMatch(ctx, careerID, true)
	if !ok {
		match = types.CareerMatch{
			CareerID:        careerID,
			Title:           types.CareerTitle(careerID),
			Description:     "Professional in " + strings.ReplaceAll(careerID, "_", " "),
			MatchPercentage: 75,
			MatchedSkills:   []string{"Relevant Skills"},
			MissingSkills:   []string{"Skills to Learn"},
		}
	}

	p := persona.NewFutureSelf(careerID, &match)
	saved, err := onPool(ctx, s, func() bool { return s.repo.SavePersona(ctx, p) })
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, &ErrStorage{Op: "save persona"}
	}
	s.logger.Info("created future self persona", zap.String("career_id", careerID))
	return p, nil
}

// Chat answers req as the future self for req.PersonaID. Career details come
// from the stored matches when they include that career; matches are never
// generated here.
func (s *Service) Chat(ctx context.Context, req types.ChatRequest) types.ChatResponse {
	info, ok := s.findMatch(ctx, req.PersonaID, false)
	if !ok {
		info = types.CareerMatch{
			CareerID:    req.PersonaID,
			Title:       types.CareerTitle(req.PersonaID),
			Description: "Professional in " + strings.ReplaceAll(req.PersonaID, "_", " "),
		}
	}
	return s.chat.Reply(ctx, req, &info)
}

// QuickChat is Chat without history or user context.
func (s *Service) QuickChat(ctx context.Context, personaID, message string) (types.ChatResponse, error) {
	if strings.TrimSpace(personaID) == "" {
		return types.ChatResponse{}, &ErrValidation{Field: "persona_id", Message: "is required"}
	}
	if strings.TrimSpace(message) == "" {
		return types.ChatResponse{}, &ErrValidation{Field: "message", Message: "is required"}
	}
	return s.Chat(ctx, types.ChatRequest{PersonaID: personaID, Message: message}), nil
}

// VoiceChat answers a voice message for personaID.
func (s *Service) VoiceChat(ctx context.Context, personaID string, req types.VoiceChatRequest) (types.VoiceChatResponse, error) {
	resp, err := s.chat.VoiceReply(ctx, personaID, req)
	if errors.Is(err, persona.ErrEmptyMessage) {
		return resp, &ErrValidation{Field: "message", Message: "is required"}
	}
	return resp, err
}

// findMatch looks careerID up in the default user's matches. With compute set,
// the matches are generated when none are stored.
func (s *Service) findMatch(ctx context.Context, careerID string, compute bool) (types.CareerMatch, bool) {
	var (
		record *types.CareerMatchesRecord
		ok     bool
	)
	if compute {
		var err error
		record, err = s.CareerMatches(ctx, DefaultUserID, false)
		ok = err == nil
	} else {
		var err error
		record, ok, err = s.cachedMatches(ctx, DefaultUserID)
		ok = ok && err == nil
	}
	if !ok {
		return types.CareerMatch{}, false
	}
	return record.Find(careerID)
}
