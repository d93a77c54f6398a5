// Package database provides data persistence using BoltDB.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
)

const (
	// Default database file permissions
	dbFileMode = 0600
	dbDirMode  = 0755

	defaultDBFile = "sportslive.db"

	snapshotsBucket = "snapshots"
	latestKey       = "latest"
)

// Database defines the persistence operations used by the event store.
type Database interface {
	// SaveSnapshot replaces the last published snapshot
	SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error
	// LoadSnapshot returns the last published snapshot, or nil if none was saved
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)
	Close() error
}

// BoltDB implements Database on top of a single bbolt file.
type BoltDB struct {
	db *bbolt.DB
}

// snapshotDTO is the on-disk form of a snapshot.
type snapshotDTO struct {
	Version   int                 `json:"version"`
	FetchedAt time.Time           `json:"fetched_at"`
	Groups    []models.EventGroup `json:"groups"`
}

const snapshotVersion = 1

// NewBolt opens (or creates) the database at dbPath.
// If dbPath is empty, uses the default database file in current directory.
func NewBolt(dbPath string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", defaultDBFile)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bbolt.Open(dbPath, dbFileMode, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(snapshotsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// Close closes the database connection.
func (b *BoltDB) Close() error {
	return b.db.Close()
}

// SaveSnapshot persists snapshot as the latest one.
func (b *BoltDB) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot == nil {
		return errors.New("snapshot cannot be nil")
	}

	data, err := json.Marshal(snapshotDTO{
		Version:   snapshotVersion,
		FetchedAt: snapshot.FetchedAt,
		Groups:    snapshot.Groups,
	})
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotsBucket))
		if bucket == nil {
			return errors.New("snapshots bucket not found")
		}
		return bucket.Put([]byte(latestKey), data)
	})
}

// LoadSnapshot returns nil, without error, when nothing has been saved yet.
func (b *BoltDB) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snapshot *models.Snapshot

	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotsBucket))
		if bucket == nil {
			return errors.New("snapshots bucket not found")
		}

		data := bucket.Get([]byte(latestKey))
		if data == nil {
			return nil
		}

		var dto snapshotDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			return fmt.Errorf("corrupt snapshot: %w", err)
		}
		if dto.Version != snapshotVersion {
			return fmt.Errorf("unsupported snapshot version %d", dto.Version)
		}

		groups := dto.Groups
		if groups == nil {
			groups = []models.EventGroup{}
		}
		snapshot = &models.Snapshot{Groups: groups, FetchedAt: dto.FetchedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
