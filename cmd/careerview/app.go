package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/careers"
	"github.com/jonathan/careerview/internal/config"
	"github.com/jonathan/careerview/internal/events"
	"github.com/jonathan/careerview/internal/extraction"
	"github.com/jonathan/careerview/internal/llm"
	"github.com/jonathan/careerview/internal/matching"
	"github.com/jonathan/careerview/internal/nlp"
	"github.com/jonathan/careerview/internal/parsing"
	"github.com/jonathan/careerview/internal/pathing"
	"github.com/jonathan/careerview/internal/persona"
	"github.com/jonathan/careerview/internal/storage"
	"github.com/jonathan/careerview/internal/types"
	"github.com/jonathan/careerview/internal/workers"
)

// closers runs cleanup functions in reverse order.
type closers []func() error

func (c closers) Close() error {
	var errs []error
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// newLLMClient returns a Gemini client, or nil when no API key is configured.
func newLLMClient(ctx context.Context, c config.LLMConfig, l *zap.Logger) (llm.Client, func() error, error) {
	if c.APIKey == "" {
		l.Warn("GEMINI_API_KEY not set; using built-in career results")
		return nil, func() error { return nil }, nil
	}
	client, err := llm.NewGeminiClient(ctx,
		llm.NewConfig(c.StandardModel, c.AdvancedModel),
		c.APIKey,
		llm.WithLogger(l.Named("llm")),
		llm.WithMaxLogLength(c.MaxLogLength),
	)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

func newParser(l *zap.Logger) *parsing.Parser {
	return parsing.New(
		parsing.WithLogger(l.Named("parsing")),
		parsing.WithRecognizer(nlp.NewProseRecognizer(l.Named("nlp"))),
	)
}

// newService wires the configured store, model client, event publisher and
// worker pool into a careers.Service.
func newService(ctx context.Context, c *config.Config, l *zap.Logger) (*careers.Service, closers, error) {
	var cleanup closers
	fail := func(err error) (*careers.Service, closers, error) {
		_ = cleanup.Close()
		return nil, nil, err
	}

	store, err := storage.Open(ctx, c.Storage)
	if err != nil {
		return fail(fmt.Errorf("failed to open %s storage: %w", c.Storage.Backend, err))
	}
	cleanup = append(cleanup, store.Close)
	cached := storage.NewCachedStore(store, c.Storage.CacheTTL, nil)
	repo := storage.NewRepository(cached, storage.WithLogger(l.Named("storage")))

	client, closeClient, err := newLLMClient(ctx, c.LLM, l)
	if err != nil {
		return fail(fmt.Errorf("failed to create LLM client: %w", err))
	}
	cleanup = append(cleanup, closeClient)

	var publisher events.Publisher = events.NopPublisher{}
	if c.Events.AMQPURL != "" {
		amqpPublisher, err := events.DialAMQP(c.Events.AMQPURL, c.Events.Exchange)
		if err != nil {
			return fail(err)
		}
		publisher = amqpPublisher
		l.Info("publishing events", zap.String("exchange", c.Events.Exchange))
	}
	emitter := events.NewEmitter(publisher, l.Named("events"))
	cleanup = append(cleanup, emitter.Close)

	svc := careers.New(careers.Dependencies{
		Repository:     repo,
		Parser:         newParser(l),
		Extractor:      extraction.New(l.Named("extraction")),
		Matcher:        matching.New(client, matching.WithLogger(l.Named("matching"))),
		Optimizer:      pathing.New(client, pathing.WithLogger(l.Named("pathing"))),
		Chat:           persona.NewChat(client, persona.WithLogger(l.Named("persona"))),
		Pool:           workers.NewPool(c.Workers.PoolSize),
		Events:         emitter,
		Logger:         l,
		MaxUploadBytes: c.MaxUploadBytes(),
		MatchesTTL:     c.Storage.CacheTTL,
	})
	l.Info("service ready",
		zap.String("storage", store.Backend()),
		zap.Bool("llm", client != nil),
		zap.Int("pool_size", c.Workers.PoolSize),
	)
	return svc, cleanup, nil
}

// readResume extracts and parses the résumé at path without touching storage.
func readResume(path string, l *zap.Logger) (*types.ResumeFacts, error) {
	format, err := extraction.FormatFromFilename(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	text, err := extraction.New(l.Named("extraction")).Extract(format, data)
	if err != nil {
		return nil, err
	}
	facts, err := newParser(l).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return facts, nil
}
