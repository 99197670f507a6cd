package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
	"github.com/QASchoolUSA/QAXP-Booking/internal/store"
)

func sampleBookings() []model.Booking {
	return []model.Booking{
		{
			ID: "b1", Name: "Jane Doe", Email: "jane@example.com",
			Date: "2025-06-10", Time: "13:00", Duration: 30,
			CreatedAt: time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: "b2", Name: "John Roe", Email: "john@example.com", Notes: "follow-up",
			Date: "2025-06-11", Time: "15:30", Duration: 60,
			CreatedAt: time.Date(2025, time.June, 2, 10, 30, 0, 0, time.UTC),
		},
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "bookings.json")
	fs := store.NewFileStore(path)

	t.Run("missing file loads as empty set", func(t *testing.T) {
		got, err := fs.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		want := sampleBookings()
		require.NoError(t, fs.SaveAll(ctx, want))
		got, err := fs.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("every save replaces the whole set", func(t *testing.T) {
		require.NoError(t, fs.SaveAll(ctx, sampleBookings()[:1]))
		got, err := fs.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "b1", got[0].ID)
	})

	t.Run("no temp file left behind", func(t *testing.T) {
		_, err := os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()

	t.Run("starts empty", func(t *testing.T) {
		got, err := ms.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("round trip", func(t *testing.T) {
		want := sampleBookings()
		require.NoError(t, ms.SaveAll(ctx, want))
		got, err := ms.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("callers cannot mutate the stored set", func(t *testing.T) {
		got, err := ms.Load(ctx)
		require.NoError(t, err)
		got[0].Name = "mutated"

		again, err := ms.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", again[0].Name)
	})
}
