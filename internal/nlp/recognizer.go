// Package nlp wraps a statistical named-entity tagger for résumé name detection.
package nlp

import (
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/logger"
)

// ProseRecognizer reports PERSON entities found by prose's averaged-perceptron tagger.
type ProseRecognizer struct {
	logger *zap.Logger

	once    sync.Once
	model   *prose.Model
	loadErr error
}

// NewProseRecognizer returns a recognizer. Tagging errors are logged and yield no names.
func NewProseRecognizer(l *zap.Logger) *ProseRecognizer {
	return &ProseRecognizer{logger: logger.OrNop(l)}
}

// loadModel builds prose's default model once and shares it across calls.
func (r *ProseRecognizer) loadModel() (*prose.Model, error) {
	r.once.Do(func() {
		doc, err := prose.NewDocument("", prose.WithSegmentation(false))
		if err != nil {
			r.loadErr = err
			return
		}
		r.model = doc.Model
	})
	return r.model, r.loadErr
}

// PersonNames returns PERSON entity texts in document order. Each line is
// tagged on its own so an entity never runs across a line break.
func (r *ProseRecognizer) PersonNames(text string) []string {
	model, err := r.loadModel()
	if err != nil {
		r.logger.Debug("entity model unavailable", zap.Error(err))
		return nil
	}

	var names []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc, err := prose.NewDocument(line,
			prose.WithSegmentation(false),
			prose.UsingModel(model),
		)
		if err != nil {
			r.logger.Debug("entity recognition failed", zap.Error(err))
			continue
		}
		for _, ent := range doc.Entities() {
			if ent.Label == "PERSON" {
				names = append(names, ent.Text)
			}
		}
	}
	return names
}
