package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/markings/pkg/markings"
)

// Store persists named template sources.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save inserts or replaces the entry with entry.Name.
	// The first save assigns an ID; every save bumps Revision and UpdatedAt.
	// Returns the entry as stored.
	Save(entry Entry) (Entry, error)

	// Load retrieves an entry by name.
	// Returns ErrNotFound if no entry has that name.
	Load(name string) (Entry, error)

	// List returns all entries ordered by name.
	// Returns empty slice (not error) if the store is empty.
	List() ([]Entry, error)

	// Delete removes an entry.
	// Returns nil if the entry doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is a stored template source together with the policy it parses under.
type Entry struct {
	ID        uuid.UUID     `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Text      string        `json:"text" yaml:"text"`
	Opts      markings.Opts `json:"opts" yaml:"opts"`
	Rule      string        `json:"rule,omitempty" yaml:"rule,omitempty"`
	Revision  int           `json:"revision" yaml:"revision"`
	UpdatedAt time.Time     `json:"updated_at" yaml:"updated_at"`
}

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates no entry has the requested name.
	ErrNotFound = errors.New("template not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("catalog store closed")

	// ErrInvalidName indicates a blank entry name or one with surrounding whitespace.
	ErrInvalidName = errors.New("invalid template name")
)

func validName(name string) bool {
	return name != "" && strings.TrimSpace(name) == name
}
