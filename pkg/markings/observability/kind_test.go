package observability

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/markings/pkg/markings"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&markings.BraceCountError{Open: 1}, "malformed"},
		{&markings.InvalidKeyStartError{Name: "1"}, "invalid_key"},
		{markings.ErrEmptyTemplate, "empty_template"},
		{&markings.DuplicateKeyError{Name: "a"}, "duplicate_keys"},
		{&markings.UnmatchedArgumentError{Key: "a"}, "unmatched_argument"},
		{&markings.MissingArgumentsError{Keys: []string{"a"}}, "missing_argument"},
		{markings.ErrTemplateConsumed, "consumed"},
		{fmt.Errorf("wrapped: %w", markings.ErrDuplicateKeys), "duplicate_keys"},
		{errors.New("other"), "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err), "%v", tt.err)
	}
}
