// Package database persists enrichment lookups with bbolt so repeat cache
// refreshes skip the secondary metadata APIs.
package database

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileMode = 0600
	dbDirMode  = 0755

	defaultDBFile = "data.db"
)

var (
	bucketTMDBImages = []byte("tmdb_images")
	bucketIDMappings = []byte("id_mappings")
)

// TMDBImagesCache is one cached artwork lookup, keyed by the schedule
// source's media id.
type TMDBImagesCache struct {
	MediaID   int
	TMDBID    int
	Poster    string
	Backdrop  string
	CreatedAt time.Time
}

// IDMappingCache is one cached alternate-identifier lookup.
type IDMappingCache struct {
	MediaID   int
	IMDBId    string
	CreatedAt time.Time
}

// Database defines the interface for enrichment persistence.
type Database interface {
	// GetTMDBImages returns nil without error when no entry exists
	GetTMDBImages(mediaID int) (*TMDBImagesCache, error)
	StoreTMDBImages(cache *TMDBImagesCache) error
	// GetIDMapping returns nil without error when no entry exists
	GetIDMapping(mediaID int) (*IDMappingCache, error)
	StoreIDMapping(cache *IDMappingCache) error
	Close() error
}

// BoltDB implements Database on a single bbolt file.
type BoltDB struct {
	db *bolt.DB
}

// NewBolt opens (creating if needed) the database at dbPath. An empty path
// uses the default file in the current directory.
func NewBolt(dbPath string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", defaultDBFile)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, dbFileMode, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketTMDBImages); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketIDMappings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

func (b *BoltDB) GetTMDBImages(mediaID int) (*TMDBImagesCache, error) {
	var cache *TMDBImagesCache
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketTMDBImages).Get(itob(mediaID))
		if raw == nil {
			return nil
		}
		cache = &TMDBImagesCache{}
		return json.Unmarshal(raw, cache)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get tmdb images: %w", err)
	}
	return cache, nil
}

func (b *BoltDB) StoreTMDBImages(cache *TMDBImagesCache) error {
	cache.CreatedAt = time.Now()
	raw, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("failed to encode tmdb images: %w", err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTMDBImages).Put(itob(cache.MediaID), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to store tmdb images: %w", err)
	}
	return nil
}

func (b *BoltDB) GetIDMapping(mediaID int) (*IDMappingCache, error) {
	var cache *IDMappingCache
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketIDMappings).Get(itob(mediaID))
		if raw == nil {
			return nil
		}
		cache = &IDMappingCache{}
		return json.Unmarshal(raw, cache)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get id mapping: %w", err)
	}
	return cache, nil
}

func (b *BoltDB) StoreIDMapping(cache *IDMappingCache) error {
	cache.CreatedAt = time.Now()
	raw, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("failed to encode id mapping: %w", err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketIDMappings).Put(itob(cache.MediaID), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to store id mapping: %w", err)
	}
	return nil
}

func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
