package persona

import "errors"

// ErrEmptyMessage is returned when a chat message is blank.
var ErrEmptyMessage = errors.New("message is required")
