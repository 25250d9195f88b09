package storage

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/careerview/internal/cache"
	"github.com/jonathan/careerview/internal/extraction"
	"github.com/jonathan/careerview/internal/logger"
	"github.com/jonathan/careerview/internal/types"
)

// Data types written into every envelope.
const (
	DataTypeMatches = "career_matches"
	DataTypePath    = "career_path"
	DataTypePersona = "persona"
	DataTypeResume  = "resume_facts"
	DataTypeUpload  = "resume_upload"
)

// LatestID is the id under which the most recent résumé and upload are kept.
const LatestID = "latest"

const loadConcurrency = 8

type matchesEnvelope struct {
	UserID    string                    `json:"user_id"`
	Matches   types.CareerMatchesRecord `json:"matches"`
	CreatedAt time.Time                 `json:"created_at"`
	DataType  string                    `json:"data_type"`
}

type pathEnvelope struct {
	CareerID  string                 `json:"career_id"`
	PathData  types.CareerPathRecord `json:"path_data"`
	CreatedAt time.Time              `json:"created_at"`
	DataType  string                 `json:"data_type"`
}

type personaEnvelope struct {
	PersonaID   string        `json:"persona_id"`
	PersonaData types.Persona `json:"persona_data"`
	CreatedAt   time.Time     `json:"created_at"`
	DataType    string        `json:"data_type"`
}

type resumeEnvelope struct {
	ResumeID   string            `json:"resume_id"`
	ResumeData types.ResumeFacts `json:"resume_data"`
	CreatedAt  time.Time         `json:"created_at"`
	DataType   string            `json:"data_type"`
}

// Upload is a stored résumé document.
type Upload struct {
	UploadID string                  `json:"upload_id"`
	Info     extraction.DocumentInfo `json:"info"`
	Content  []byte                  `json:"content"`
	DataType string                  `json:"data_type"`
}

// StoredCareerPath is a career path record with its storage timestamp.
type StoredCareerPath struct {
	Record    types.CareerPathRecord
	CreatedAt time.Time
}

// ClearCounts reports how many objects ClearAll removed per category.
type ClearCounts struct {
	Matches  int `json:"matches"`
	Paths    int `json:"paths"`
	Personas int `json:"personas"`
}

// Total is the sum of all categories.
func (c ClearCounts) Total() int { return c.Matches + c.Paths + c.Personas }

// Repository wraps a Store with typed domain operations. Failures are logged
// and reported as false so callers never see a half-written state as success.
type Repository struct {
	store  Store
	logger *zap.Logger
	now    cache.Clock
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) RepositoryOption {
	return func(r *Repository) { r.logger = logger.OrNop(l) }
}

// WithClock sets the clock used for created_at stamps.
func WithClock(c cache.Clock) RepositoryOption {
	return func(r *Repository) {
		if c != nil {
			r.now = c
		}
	}
}

// NewRepository returns a Repository over store.
func NewRepository(store Store, opts ...RepositoryOption) *Repository {
	r := &Repository{store: store, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the underlying store.
func (r *Repository) Store() Store { return r.store }

// SaveCareerMatches stores the matches record for userID.
func (r *Repository) SaveCareerMatches(ctx context.Context, userID string, record *types.CareerMatchesRecord) bool {
	return r.save(ctx, CategoryMatches, userID, matchesEnvelope{
		UserID:    userID,
		Matches:   *record,
		CreatedAt: r.now().UTC(),
		DataType:  DataTypeMatches,
	})
}

// GetCareerMatches returns the stored matches record for userID.
func (r *Repository) GetCareerMatches(ctx context.Context, userID string) (*types.CareerMatchesRecord, bool) {
	var env matchesEnvelope
	if !r.load(ctx, CategoryMatches, userID, &env) {
		return nil, false
	}
	return &env.Matches, true
}

// DeleteCareerMatches reports whether a record was removed.
func (r *Repository) DeleteCareerMatches(ctx context.Context, userID string) bool {
	return r.remove(ctx, CategoryMatches, userID)
}

// SaveCareerPath stores the learning path record for careerID.
func (r *Repository) SaveCareerPath(ctx context.Context, careerID string, record *types.CareerPathRecord) bool {
	return r.save(ctx, CategoryPaths, careerID, pathEnvelope{
		CareerID:  careerID,
		PathData:  *record,
		CreatedAt: r.now().UTC(),
		DataType:  DataTypePath,
	})
}

// GetCareerPath returns the stored path record for careerID.
func (r *Repository) GetCareerPath(ctx context.Context, careerID string) (*types.CareerPathRecord, bool) {
	var env pathEnvelope
	if !r.load(ctx, CategoryPaths, careerID, &env) {
		return nil, false
	}
	return &env.PathData, true
}

// DeleteCareerPath reports whether a record was removed.
func (r *Repository) DeleteCareerPath(ctx context.Context, careerID string) bool {
	return r.remove(ctx, CategoryPaths, careerID)
}

// ListCareerPaths loads every stored career path, ordered by career id.
func (r *Repository) ListCareerPaths(ctx context.Context) []StoredCareerPath {
	envs := loadAll[pathEnvelope](ctx, r, CategoryPaths)
	out := make([]StoredCareerPath, 0, len(envs))
	for _, env := range envs {
		out = append(out, StoredCareerPath{Record: env.PathData, CreatedAt: env.CreatedAt})
	}
	return out
}

// DeleteAllCareerPaths returns the number of paths removed.
func (r *Repository) DeleteAllCareerPaths(ctx context.Context) int {
	return r.clear(ctx, CategoryPaths)
}

// SavePersona stores p under its key.
func (r *Repository) SavePersona(ctx context.Context, p *types.Persona) bool {
	return r.save(ctx, CategoryPersonas, p.Key(), personaEnvelope{
		PersonaID:   p.Key(),
		PersonaData: *p,
		CreatedAt:   r.now().UTC(),
		DataType:    DataTypePersona,
	})
}

// GetPersona returns the stored persona.
func (r *Repository) GetPersona(ctx context.Context, personaID string) (*types.Persona, bool) {
	var env personaEnvelope
	if !r.load(ctx, CategoryPersonas, personaID, &env) {
		return nil, false
	}
	return &env.PersonaData, true
}

// DeletePersona reports whether a persona was removed.
func (r *Repository) DeletePersona(ctx context.Context, personaID string) bool {
	return r.remove(ctx, CategoryPersonas, personaID)
}

// ListPersonas loads every stored persona, ordered by id.
func (r *Repository) ListPersonas(ctx context.Context) []types.Persona {
	envs := loadAll[personaEnvelope](ctx, r, CategoryPersonas)
	out := make([]types.Persona, 0, len(envs))
	for _, env := range envs {
		out = append(out, env.PersonaData)
	}
	return out
}

// DeleteAllPersonas returns the number of personas removed.
func (r *Repository) DeleteAllPersonas(ctx context.Context) int {
	return r.clear(ctx, CategoryPersonas)
}

// SaveLatestResume stores the facts of the most recent upload.
func (r *Repository) SaveLatestResume(ctx context.Context, facts *types.ResumeFacts) bool {
	return r.save(ctx, CategoryResumes, LatestID, resumeEnvelope{
		ResumeID:   LatestID,
		ResumeData: *facts,
		CreatedAt:  r.now().UTC(),
		DataType:   DataTypeResume,
	})
}

// LatestResume returns the facts of the most recent upload.
func (r *Repository) LatestResume(ctx context.Context) (*types.ResumeFacts, bool) {
	var env resumeEnvelope
	if !r.load(ctx, CategoryResumes, LatestID, &env) {
		return nil, false
	}
	return &env.ResumeData, true
}

// ClearLatestResume removes the stored facts of the most recent upload.
func (r *Repository) ClearLatestResume(ctx context.Context) bool {
	return r.remove(ctx, CategoryResumes, LatestID)
}

// SaveUpload stores the raw document under its id and as the latest upload.
func (r *Repository) SaveUpload(ctx context.Context, u *Upload) bool {
	u.DataType = DataTypeUpload
	if !r.save(ctx, CategoryUploads, u.UploadID, u) {
		return false
	}
	return r.save(ctx, CategoryUploads, LatestID, u)
}

// LatestUpload returns the most recently stored document.
func (r *Repository) LatestUpload(ctx context.Context) (*Upload, bool) {
	var u Upload
	if !r.load(ctx, CategoryUploads, LatestID, &u) {
		return nil, false
	}
	return &u, true
}

// ClearAll removes every stored matches record, career path and persona.
// Résumés and uploads are kept.
func (r *Repository) ClearAll(ctx context.Context) ClearCounts {
	counts := ClearCounts{
		Matches:  r.clear(ctx, CategoryMatches),
		Paths:    r.clear(ctx, CategoryPaths),
		Personas: r.clear(ctx, CategoryPersonas),
	}
	r.logger.Info("cleared stored data",
		zap.Int("matches", counts.Matches),
		zap.Int("paths", counts.Paths),
		zap.Int("personas", counts.Personas),
	)
	return counts
}

func (r *Repository) save(ctx context.Context, category, id string, v any) bool {
	blob, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("failed to encode object",
			zap.String("key", Key(category, id)), zap.Error(err))
		return false
	}
	if err := r.store.Put(ctx, category, id, blob); err != nil {
		r.logger.Error("failed to save object",
			zap.String("key", Key(category, id)), zap.Error(err))
		return false
	}
	r.logger.Debug("saved object", zap.String("key", Key(category, id)), zap.Int("bytes", len(blob)))
	return true
}

func (r *Repository) load(ctx context.Context, category, id string, v any) bool {
	blob, ok, err := r.store.Get(ctx, category, id)
	if err != nil {
		r.logger.Error("failed to load object",
			zap.String("key", Key(category, id)), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(blob, v); err != nil {
		r.logger.Error("failed to decode object",
			zap.String("key", Key(category, id)), zap.Error(err))
		return false
	}
	return true
}

func (r *Repository) remove(ctx context.Context, category, id string) bool {
	existed, err := r.store.Delete(ctx, category, id)
	if err != nil {
		r.logger.Error("failed to delete object",
			zap.String("key", Key(category, id)), zap.Error(err))
		return false
	}
	return existed
}

func (r *Repository) ids(ctx context.Context, category string) []string {
	ids, err := r.store.List(ctx, category)
	if err != nil {
		r.logger.Error("failed to list objects", zap.String("category", category), zap.Error(err))
		return nil
	}
	return ids
}

func (r *Repository) clear(ctx context.Context, category string) int {
	deleted := 0
	for _, id := range r.ids(ctx, category) {
		if r.remove(ctx, category, id) {
			deleted++
		}
	}
	return deleted
}

// loadAll fetches every object of a category in parallel. Objects that fail to
// load are logged and skipped; the result keeps List order.
func loadAll[T any](ctx context.Context, r *Repository, category string) []T {
	ids := r.ids(ctx, category)
	loaded := make([]*T, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			var v T
			if r.load(gctx, category, id, &v) {
				loaded[i] = &v
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]T, 0, len(ids))
	for _, v := range loaded {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
