package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tearlogapp/tearlog-core/internal/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestStore_LoadEntries_Empty(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	entries, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_SaveLoadEntries(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	entries := []domain.JournalEntry{
		{
			ID:        "ent-1",
			Content:   "rough morning",
			CreatedAt: created,
			WasCrying: true,
			Intensity: domain.IntensityProperCry,
		},
		{
			ID:        "ent-2",
			Content:   "better afternoon",
			CreatedAt: created.Add(4 * time.Hour),
			WasCrying: false,
		},
	}

	require.NoError(t, s.SaveEntries(ctx, entries))

	loaded, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "ent-1", loaded[0].ID)
	assert.Equal(t, domain.IntensityProperCry, loaded[0].Intensity)
	assert.True(t, loaded[0].CreatedAt.Equal(created))
	assert.Equal(t, domain.IntensityNone, loaded[1].Intensity)
}

func TestStore_SaveEntries_ReplacesCollection(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := []domain.JournalEntry{{ID: "ent-1", Content: "one", CreatedAt: time.Now()}}
	require.NoError(t, s.SaveEntries(ctx, first))

	second := []domain.JournalEntry{{ID: "ent-2", Content: "two", CreatedAt: time.Now()}}
	require.NoError(t, s.SaveEntries(ctx, second))

	loaded, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "ent-2", loaded[0].ID)
}

func TestStore_SaveLoadCryingDays(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	ts := time.Date(2024, 3, 1, 22, 30, 0, 0, time.Local)
	days := []domain.CryingDay{
		{Date: "2024-03-01", Timestamp: ts, Count: 2},
		{Date: "2024-02-28", Timestamp: ts.AddDate(0, 0, -1), Count: 1},
	}

	require.NoError(t, s.SaveCryingDays(ctx, days))

	loaded, err := s.LoadCryingDays(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "2024-03-01", loaded[0].Date)
	assert.Equal(t, 2, loaded[0].Count)
}

func TestStore_MalformedData_LoadsEmpty(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetRaw(KeyEntries, []byte("{not json")))
	require.NoError(t, s.SetRaw(KeyCryingDays, []byte("also not json]")))

	entries, err := s.LoadEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	days, err := s.LoadCryingDays(ctx)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestStore_ContextCancellation(t *testing.T) {
	s := setupTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.LoadEntries(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	err = s.SaveEntries(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
