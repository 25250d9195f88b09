package parsing

import "errors"

// ErrEmptyDocument is returned when the résumé text is blank
var ErrEmptyDocument = errors.New("no text could be extracted from the resume")
