package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
)

func setupTestDB(t *testing.T) *BoltDB {
	t.Helper()
	db, err := NewBolt(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadSnapshotEmpty(t *testing.T) {
	db := setupTestDB(t)

	snap, err := db.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotRoundTripReplacesLatest(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	fetched := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)

	first := &models.Snapshot{
		FetchedAt: fetched,
		Groups: []models.EventGroup{{
			ID: "g1", Title: "River vs Boca", Time: "21:00", DisplayStatus: "EN_VIVO",
			Links: []string{"https://p/?stream=espn"},
		}},
	}
	require.NoError(t, db.SaveSnapshot(ctx, first))

	second := &models.Snapshot{FetchedAt: fetched.Add(time.Minute), Groups: nil}
	require.NoError(t, db.SaveSnapshot(ctx, second))

	got, err := db.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.FetchedAt.Equal(second.FetchedAt))
	assert.NotNil(t, got.Groups)
	assert.Empty(t, got.Groups)

	require.NoError(t, db.SaveSnapshot(ctx, first))
	got, err = db.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Groups, got.Groups)
}

func TestSaveSnapshotRejectsNilAndCancelled(t *testing.T) {
	db := setupTestDB(t)

	assert.Error(t, db.SaveSnapshot(context.Background(), nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, db.SaveSnapshot(ctx, &models.Snapshot{}), context.Canceled)
	_, err := db.LoadSnapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadSnapshotCorrupt(t *testing.T) {
	db := setupTestDB(t)

	err := db.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(snapshotsBucket)).Put([]byte(latestKey), []byte("{not json"))
	})
	require.NoError(t, err)

	_, err = db.LoadSnapshot(context.Background())
	assert.Error(t, err)
}
