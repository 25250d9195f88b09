// Package careers ties résumé parsing, career matching, learning paths and
// persona chat to the object store. The HTTP server and the CLI both drive it.
package careers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/cache"
	"github.com/jonathan/careerview/internal/events"
	"github.com/jonathan/careerview/internal/export"
	"github.com/jonathan/careerview/internal/extraction"
	"github.com/jonathan/careerview/internal/logger"
	"github.com/jonathan/careerview/internal/matching"
	"github.com/jonathan/careerview/internal/parsing"
	"github.com/jonathan/careerview/internal/pathing"
	"github.com/jonathan/careerview/internal/persona"
	"github.com/jonathan/careerview/internal/storage"
	"github.com/jonathan/careerview/internal/types"
	"github.com/jonathan/careerview/internal/workers"
)

// DefaultUserID owns the matches used for career paths and chat context.
const DefaultUserID = "default_user"

// DefaultMaxUploadBytes is the upload limit when none is configured.
const DefaultMaxUploadBytes = 10 << 20

const (
	topSkillsInProfile  = 8
	skillsInPathProfile = 10
	defaultLevel        = "Entry"
)

// Next steps reported after an upload.
const (
	NextStepMatching     = "career_matching"
	NextStepManualReview = "manual_review"
)

// purger is implemented by stores that keep a read cache.
type purger interface {
	Purge()
	Len() int
}

// Dependencies are the collaborators of a Service. Repository is required;
// every other nil field gets a working default (no LLM, no events).
type Dependencies struct {
	Repository *storage.Repository
	Parser     *parsing.Parser
	Extractor  *extraction.Extractor
	Matcher    *matching.Matcher
	Optimizer  *pathing.Optimizer
	Chat       *persona.Chat
	Pool       *workers.Pool
	Events     *events.Emitter
	Logger     *zap.Logger
	Clock      cache.Clock
	NewID      func() string

	MaxUploadBytes int64
	// MatchesTTL bounds the in-memory matches cache. Zero keeps entries until cleared.
	MatchesTTL time.Duration
}

// Service implements the careerview operations.
type Service struct {
	repo      *storage.Repository
	parser    *parsing.Parser
	extractor *extraction.Extractor
	matcher   *matching.Matcher
	optimizer *pathing.Optimizer
	chat      *persona.Chat
	pool      *workers.Pool
	events    *events.Emitter
	logger    *zap.Logger
	now       cache.Clock
	newID     func() string
	maxUpload int64

	matches *cache.TTL[*types.CareerMatchesRecord]
}

// New creates a Service from deps.
func New(deps Dependencies) *Service {
	l := logger.OrNop(deps.Logger)
	s := &Service{
		repo:      deps.Repository,
		parser:    deps.Parser,
		extractor: deps.Extractor,
		matcher:   deps.Matcher,
		optimizer: deps.Optimizer,
		chat:      deps.Chat,
		pool:      deps.Pool,
		events:    deps.Events,
		logger:    l,
		now:       deps.Clock,
		newID:     deps.NewID,
		maxUpload: deps.MaxUploadBytes,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	if s.parser == nil {
		s.parser = parsing.New(parsing.WithLogger(l), parsing.WithClock(s.now))
	}
	if s.extractor == nil {
		s.extractor = extraction.New(l)
	}
	if s.matcher == nil {
		s.matcher = matching.New(nil, matching.WithLogger(l))
	}
	if s.optimizer == nil {
		s.optimizer = pathing.New(nil, pathing.WithLogger(l))
	}
	if s.chat == nil {
		s.chat = persona.NewChat(nil, persona.WithLogger(l))
	}
	if s.pool == nil {
		s.pool = workers.NewPool(workers.DefaultSize)
	}
	if s.events == nil {
		s.events = events.NewEmitter(nil, l)
	}
	s.matches = cache.New[*types.CareerMatchesRecord](deps.MatchesTTL, s.now)
	return s
}

// UploadResult describes a stored upload and the outcome of parsing it.
type UploadResult struct {
	Message          string              `json:"message"`
	UploadID         string              `json:"upload_id"`
	Filename         string              `json:"filename"`
	OriginalFilename string              `json:"original_filename"`
	FileSize         int                 `json:"file_size"`
	Hash             string              `json:"hash"`
	Timestamp        time.Time           `json:"timestamp"`
	ParsedData       *types.ResumeFacts  `json:"parsed_data"`
	ParsingError     string              `json:"parsing_error,omitempty"`
	NextStep         string              `json:"next_step"`
	Cleared          storage.ClearCounts `json:"cleared_counts"`
}

// UploadResume stores a PDF or DOCX résumé, wipes everything derived from the
// previous one and parses the new document. A document that cannot be parsed
// still yields a result, carrying failed facts and the parsing error.
func (s *Service) UploadResume(ctx context.Context, filename, contentType string, data []byte) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, &ErrValidation{Field: "file", Message: "file is empty"}
	}
	if int64(len(data)) > s.maxUpload {
		return nil, &ErrFileTooLarge{Size: int64(len(data)), Limit: s.maxUpload}
	}
	format, err := extraction.FormatFromContentType(contentType)
	if err != nil {
		var nameErr error
		if format, nameErr = extraction.FormatFromFilename(filename); nameErr != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	stored := fmt.Sprintf("resume_%s.%s", now.Format("20060102_150405"), format)
	info := extraction.NewDocumentInfo(stored, format, data, now)

	s.logger.Info("new resume uploaded, clearing all data",
		zap.String("filename", filename),
		zap.Int("size", len(data)))
	s.ClearCaches()
	cleared, err := onPool(ctx, s, func() storage.ClearCounts {
		counts := s.repo.ClearAll(ctx)
		s.repo.ClearLatestResume(ctx)
		return counts
	})
	if err != nil {
		return nil, err
	}

	upload := &storage.Upload{UploadID: s.newID(), Info: info, Content: data}
	saved, err := onPool(ctx, s, func() bool { return s.repo.SaveUpload(ctx, upload) })
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, &ErrStorage{Op: "save uploaded resume"}
	}

	result := &UploadResult{
		UploadID:         upload.UploadID,
		Filename:         stored,
		OriginalFilename: filename,
		FileSize:         len(data),
		Hash:             info.Hash,
		Timestamp:        now,
		Cleared:          cleared,
	}

	facts, err := workers.Run(ctx, s.pool, func() (*types.ResumeFacts, error) {
		text, err := s.extractor.Extract(format, data)
		if err != nil {
			return nil, err
		}
		return s.parser.Parse(text)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		s.logger.Warn("resume parsing failed",
			zap.String("upload_id", upload.UploadID), zap.Error(err))
		result.Message = "Resume uploaded but parsing failed"
		result.ParsedData = types.FailedResumeFacts()
		result.ParsingError = err.Error()
		result.NextStep = NextStepManualReview
		return result, nil
	}

	saved, err = onPool(ctx, s, func() bool { return s.repo.SaveLatestResume(ctx, facts) })
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, &ErrStorage{Op: "save parsed resume"}
	}
	s.events.Emit(ctx, events.ResumeParsed, map[string]any{
		"upload_id":        upload.UploadID,
		"filename":         stored,
		"total_skills":     facts.Skills.TotalCount,
		"experience_years": facts.ExperienceYears,
	})

	result.Message = "Resume uploaded and parsed successfully"
	result.ParsedData = facts
	result.NextStep = NextStepMatching
	return result, nil
}

// LatestResume returns the facts of the last successfully parsed upload.
func (s *Service) LatestResume(ctx context.Context) (*types.ResumeFacts, error) {
	facts, ok, err := loadOnPool(ctx, s, func() (*types.ResumeFacts, bool) { return s.repo.LatestResume(ctx) })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ErrNoResume{}
	}
	return facts, nil
}

// LatestUpload returns the last stored document.
func (s *Service) LatestUpload(ctx context.Context) (*storage.Upload, error) {
	u, ok, err := loadOnPool(ctx, s, func() (*storage.Upload, bool) { return s.repo.LatestUpload(ctx) })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ErrNoResume{}
	}
	return u, nil
}

// CareerMatches returns the matches for userID. Unless force is set, a stored
// record wins, then the in-memory one; otherwise the latest résumé is matched
// afresh and the record is kept in both places. A record computed while the
// caches were cleared (a new upload) is returned but not kept.
func (s *Service) CareerMatches(ctx context.Context, userID string, force bool) (*types.CareerMatchesRecord, error) {
	if userID == "" {
		return nil, &ErrValidation{Field: "user_id", Message: "is required"}
	}
	gen := s.matches.Generation(userID)
	if !force {
		record, ok, err := s.cachedMatches(ctx, userID)
		if err != nil {
			return nil, err
		}
		if ok {
			return record, nil
		}
	}

	facts, err := s.LatestResume(ctx)
	if err != nil {
		return nil, err
	}
	basedOn := ""
	if u, err := s.LatestUpload(ctx); err == nil {
		basedOn = u.Info.Filename
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	matches := s.matcher.Match(ctx, facts)
	record := &types.CareerMatchesRecord{
		UserID:        userID,
		Matches:       matches,
		Timestamp:     s.now().UTC(),
		TotalMatches:  len(matches),
		BasedOnResume: basedOn,
		UserProfile: types.UserProfile{
			Name:            facts.Name,
			ExperienceYears: facts.ExperienceYears,
			TotalSkills:     facts.Skills.TotalCount,
			TopSkills:       facts.TopSkills(topSkillsInProfile),
		},
	}

	if !s.matches.Unchanged(userID, gen) {
		s.logger.Info("caches cleared while matching, result not kept", zap.String("user_id", userID))
		return record, nil
	}
	saved, err := onPool(ctx, s, func() bool { return s.repo.SaveCareerMatches(ctx, userID, record) })
	if err != nil {
		return nil, err
	}
	if !saved {
		s.logger.Warn("career matches not persisted", zap.String("user_id", userID))
	}
	if !s.matches.SetIfGeneration(userID, record, gen) {
		s.logger.Info("caches cleared while saving matches, in-memory copy skipped", zap.String("user_id", userID))
	}

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.CareerID
	}
	s.events.Emit(ctx, events.MatchesGenerated, map[string]any{
		"user_id":       userID,
		"total_matches": len(matches),
		"career_ids":    ids,
	})
	return record, nil
}

// cachedMatches looks up a record without computing one.
func (s *Service) cachedMatches(ctx context.Context, userID string) (*types.CareerMatchesRecord, bool, error) {
	record, ok, err := loadOnPool(ctx, s, func() (*types.CareerMatchesRecord, bool) {
		return s.repo.GetCareerMatches(ctx, userID)
	})
	if err != nil {
		return nil, false, err
	}
	if ok {
		s.logger.Debug("returning stored career matches", zap.String("user_id", userID))
		return record, true, nil
	}
	if record, ok := s.matches.Get(userID); ok {
		s.logger.Debug("returning in-memory career matches", zap.String("user_id", userID))
		return record, true, nil
	}
	return nil, false, nil
}

// ExportMatches renders the matches for userID as an XLSX workbook.
func (s *Service) ExportMatches(ctx context.Context, userID string) ([]byte, error) {
	record, err := s.CareerMatches(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return export.MatchesXLSX(record)
}

// ClearCaches drops the in-memory matches and the store's read cache.
func (s *Service) ClearCaches() {
	s.matches.Purge()
	if p, ok := s.repo.Store().(purger); ok {
		p.Purge()
	}
}

// ClearAllData removes stored matches, career paths and personas and empties
// the caches.
func (s *Service) ClearAllData(ctx context.Context) (storage.ClearCounts, error) {
	s.ClearCaches()
	counts, err := onPool(ctx, s, func() storage.ClearCounts { return s.repo.ClearAll(ctx) })
	if err != nil {
		return storage.ClearCounts{}, err
	}
	s.events.Emit(ctx, events.DataCleared, counts)
	return counts, nil
}

// Stats is a snapshot of runtime health.
type Stats struct {
	Backend             string    `json:"storage_backend"`
	StorageAvailable    bool      `json:"storage_available"`
	StorageResponseTime string    `json:"storage_response_time"`
	CacheSize           int       `json:"cache_size"`
	MatchesCached       int       `json:"matches_cached"`
	PoolSize            int       `json:"pool_size"`
	ActiveJobs          int       `json:"active_jobs"`
	Timestamp           time.Time `json:"timestamp"`
}

// Performance checks the store with a list call on the pool and reports cache
// and pool usage.
func (s *Service) Performance(ctx context.Context) Stats {
	store := s.repo.Store()
	start := time.Now()
	listErr, err := onPool(ctx, s, func() error {
		_, err := store.List(ctx, storage.CategoryMatches)
		return err
	})
	elapsed := time.Since(start)

	stats := Stats{
		Backend:             store.Backend(),
		StorageAvailable:    err == nil && listErr == nil,
		StorageResponseTime: fmt.Sprintf("%.3fs", elapsed.Seconds()),
		MatchesCached:       s.matches.Len(),
		PoolSize:            s.pool.Size(),
		ActiveJobs:          s.pool.Active(),
		Timestamp:           s.now().UTC(),
	}
	if p, ok := store.(purger); ok {
		stats.CacheSize = p.Len()
	}
	return stats
}
