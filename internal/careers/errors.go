package careers

import "fmt"

// ErrNoResume indicates no résumé has been uploaded and parsed yet
type ErrNoResume struct{}

func (e *ErrNoResume) Error() string {
	return "no resume found, upload a resume first"
}

// ErrNotFound indicates a stored object does not exist
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.ID)
}

// ErrValidation indicates a request that cannot be served as given
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrFileTooLarge indicates an upload over the configured limit
type ErrFileTooLarge struct {
	Size  int64
	Limit int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("file size must be less than %dMB (got %d bytes)", e.Limit>>20, e.Size)
}

// ErrStorage indicates the object store rejected a write
type ErrStorage struct {
	Op string
}

func (e *ErrStorage) Error() string {
	return fmt.Sprintf("failed to %s", e.Op)
}
