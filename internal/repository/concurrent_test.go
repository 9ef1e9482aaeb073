package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp
// directory. Unlike :memory:, every pooled connection sees the same data.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	database, err := db.OpenDB(filepath.Join(dir, "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// The timeline commits drags from a background command while the view keeps
// listing the day; WAL mode must keep those reads consistent.
func TestConcurrentAccess_ListDuringCommits(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLitePlanItemRepo(database)

	const count = 20
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		item := testutil.NewTestPlanItem(fmt.Sprintf("Item-%d", i), testutil.WithStart(6+i/4, (i%4)*15))
		require.NoError(t, repo.Create(ctx, item))
		items = append(items, item.ID)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, id := range items {
			item, err := repo.GetByID(ctx, id)
			if err != nil {
				t.Errorf("writer: get %s: %v", id, err)
				return
			}
			moved, err := item.WithDurationMinutes(item.DurationMinutes + 15)
			if err != nil {
				t.Errorf("writer: resize %s: %v", id, err)
				return
			}
			if err := repo.Update(ctx, moved); err != nil {
				t.Errorf("writer: update %s: %v", id, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				got, err := repo.ListByDay(ctx, testutil.TestDay)
				if err != nil {
					t.Errorf("reader %d: list: %v", reader, err)
					return
				}
				if len(got) != count {
					t.Errorf("reader %d: expected %d items, got %d", reader, count, len(got))
				}
				for _, item := range got {
					if err := item.Validate(); err != nil {
						t.Errorf("reader %d: half-written item %s: %v", reader, item.ID, err)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	got, err := repo.ListByDay(ctx, testutil.TestDay)
	require.NoError(t, err)
	require.Len(t, got, count)
	for _, item := range got {
		assert.Equal(t, 45, item.DurationMinutes)
	}
}
