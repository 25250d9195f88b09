package careers

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/storage"
	"github.com/jonathan/careerview/internal/types"
)

// CareerPath returns the stored learning path for careerID or builds one from
// the latest résumé and its match for that career. Careers the matcher did not
// suggest get a generic match.
func (s *Service) CareerPath(ctx context.Context, careerID string) (*types.CareerPathRecord, error) {
	if careerID == "" {
		return nil, &ErrValidation{Field: "career_id", Message: "is required"}
	}
	stored, ok, err := loadOnPool(ctx, s, func() (*types.CareerPathRecord, bool) {
		return s.repo.GetCareerPath(ctx, careerID)
	})
	if err != nil {
		return nil, err
	}
	if ok {
		s.logger.Debug("returning stored career path", zap.String("career_id", careerID))
		return stored, nil
	}

	facts, err := s.LatestResume(ctx)
	if err != nil {
		return nil, err
	}
	match, ok := s.findMatch(ctx, careerID, true)
	if !ok {
		match = types.GenericCareerMatch(careerID)
	}

	level := match.ExperienceLevel
	if level == "" {
		level = defaultLevel
	}
	path := s.optimizer.LearningPath(ctx, careerID, facts.Skills.AllSkills, match.MissingSkills, level)

	record := &types.CareerPathRecord{
		CareerID:     careerID,
		CurrentMatch: match,
		LearningPath: path,
		UserProfile: types.PathProfile{
			Name:            facts.Name,
			CurrentSkills:   facts.TopSkills(skillsInPathProfile),
			ExperienceLevel: facts.ExperienceYears,
		},
		Timestamp: s.now().UTC(),
	}
	saved, err := onPool(ctx, s, func() bool { return s.repo.SaveCareerPath(ctx, careerID, record) })
	if err != nil {
		return nil, err
	}
	if !saved {
		s.logger.Warn("career path not persisted", zap.String("career_id", careerID))
	}
	return record, nil
}

// StoredCareerPaths summarizes every stored career path.
func (s *Service) StoredCareerPaths(ctx context.Context) ([]types.CareerPathSummary, error) {
	stored, err := onPool(ctx, s, func() []storage.StoredCareerPath { return s.repo.ListCareerPaths(ctx) })
	if err != nil {
		return nil, err
	}
	out := make([]types.CareerPathSummary, 0, len(stored))
	for _, p := range stored {
		title := p.Record.CurrentMatch.Title
		if title == "" {
			title = types.CareerTitle(p.Record.CareerID)
		}
		out = append(out, types.CareerPathSummary{
			CareerID:     p.Record.CareerID,
			Title:        title,
			CreatedAt:    p.CreatedAt,
			UserProfile:  p.Record.UserProfile,
			LearningPath: p.Record.LearningPath,
		})
	}
	return out, nil
}

// DeleteCareerPath removes the stored path for careerID.
func (s *Service) DeleteCareerPath(ctx context.Context, careerID string) error {
	deleted, err := onPool(ctx, s, func() bool { return s.repo.DeleteCareerPath(ctx, careerID) })
	if err != nil {
		return err
	}
	if !deleted {
		return &ErrNotFound{Kind: "career path", ID: careerID}
	}
	return nil
}

// DeleteAllCareerPaths removes every stored path and reports how many went.
func (s *Service) DeleteAllCareerPaths(ctx context.Context) (int, error) {
	return onPool(ctx, s, func() int { return s.repo.DeleteAllCareerPaths(ctx) })
}
