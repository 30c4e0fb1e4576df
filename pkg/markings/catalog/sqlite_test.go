package catalog_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/markings/pkg/markings/catalog"
)

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store1, err := catalog.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	saved, err := store1.Save(catalog.Entry{Name: "persistent", Text: "${x}"})
	require.NoError(t, err)
	require.NoError(t, store1.Close())

	// Reopening the database sees the same entry.
	store2, err := catalog.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	loaded, err := store2.Load("persistent")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, "${x}", loaded.Text)

	again, err := store2.Save(catalog.Entry{Name: "persistent", Text: "${y}"})
	require.NoError(t, err)
	assert.Equal(t, 2, again.Revision)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := catalog.NewSQLiteStore("/nonexistent/path/db.sqlite")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	store, err := catalog.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	store, err := catalog.NewSQLiteStore(filepath.Join(t.TempDir(), "concurrent.db"))
	require.NoError(t, err)
	defer store.Close()

	const numGoroutines = 20
	const numOps = 20

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				name := fmt.Sprintf("t-%d", j%5)
				switch j % 3 {
				case 0:
					_, _ = store.Save(catalog.Entry{Name: name, Text: "${k}"})
				case 1:
					_, _ = store.Load(name)
				case 2:
					_, _ = store.List()
				}
			}
		}(i)
	}
	wg.Wait()

	entries, err := store.List()
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	// Saves are serialized, so revisions add up to the number of saves.
	total := 0
	for _, e := range entries {
		total += e.Revision
	}
	assert.Equal(t, numGoroutines*7, total)
}
