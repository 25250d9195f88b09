// Package storage persists JSON documents under <category>/<id>.json keys.
//
// Backends implement Store. Repository layers the domain envelopes on top and
// reports failures as booleans after logging them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Categories used by the service.
const (
	CategoryMatches  = "matches"
	CategoryPaths    = "paths"
	CategoryPersonas = "personas"
	CategoryResumes  = "resumes"
	CategoryUploads  = "uploads"
)

// Categories lists every category the service writes.
var Categories = []string{CategoryMatches, CategoryPaths, CategoryPersonas, CategoryResumes, CategoryUploads}

var (
	// ErrNotFound is returned by backends that need to report a missing object as an error.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for empty or path-like categories and ids.
	ErrInvalidKey = errors.New("invalid storage key")
)

// Store is a flat JSON blob store keyed by category and id.
type Store interface {
	Put(ctx context.Context, category, id string, blob []byte) error
	// Get reports false when the object does not exist.
	Get(ctx context.Context, category, id string) ([]byte, bool, error)
	// Delete reports whether the object existed.
	Delete(ctx context.Context, category, id string) (bool, error)
	// List returns the ids stored under category in lexical order.
	List(ctx context.Context, category string) ([]string, error)
	Backend() string
	Close() error
}

// Key returns the object key for category and id.
func Key(category, id string) string {
	return category + "/" + id + ".json"
}

// ParseKey splits an object key produced by Key.
func ParseKey(key string) (category, id string, ok bool) {
	category, rest, found := strings.Cut(key, "/")
	if !found || !strings.HasSuffix(rest, ".json") {
		return "", "", false
	}
	id = strings.TrimSuffix(rest, ".json")
	if category == "" || id == "" || strings.Contains(id, "/") {
		return "", "", false
	}
	return category, id, true
}

func checkKey(category, id string) error {
	if err := checkCategory(category); err != nil {
		return err
	}
	if id == "" || strings.ContainsAny(id, "/\\") || id == "." || id == ".." {
		return fmt.Errorf("%w: id %q", ErrInvalidKey, id)
	}
	return nil
}

func checkCategory(category string) error {
	if category == "" || strings.ContainsAny(category, "/\\") {
		return fmt.Errorf("%w: category %q", ErrInvalidKey, category)
	}
	return nil
}
