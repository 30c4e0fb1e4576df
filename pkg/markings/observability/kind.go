package observability

import (
	"errors"

	"github.com/randalmurphal/markings/pkg/markings"
)

// ErrorKind classifies a markings error for log fields and metric attributes.
// It returns "" for a nil error and "other" for errors it does not know.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, markings.ErrMalformed):
		return "malformed"
	case errors.Is(err, markings.ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, markings.ErrEmptyTemplate):
		return "empty_template"
	case errors.Is(err, markings.ErrDuplicateKeys):
		return "duplicate_keys"
	case errors.Is(err, markings.ErrUnmatchedArgument):
		return "unmatched_argument"
	case errors.Is(err, markings.ErrMissingArgument):
		return "missing_argument"
	case errors.Is(err, markings.ErrTemplateConsumed):
		return "consumed"
	default:
		return "other"
	}
}
