// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package doccache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
	bolt "go.etcd.io/bbolt"

	"github.com/bureau-foundation/dynview/lib/codec"
	"github.com/bureau-foundation/dynview/lib/document"
)

// ErrMiss is returned by [Cache.Load] when no usable entry exists.
var ErrMiss = errors.New("doccache: miss")

// schemaVersion is bumped whenever the cached envelope or the
// document.Node encoding changes shape.
const schemaVersion = 1

const bucketDocuments = "documents"

// Key is the cache key of one source document.
type Key [32]byte

// String returns the lowercase hex form of the key.
func (key Key) String() string {
	return hex.EncodeToString(key[:])
}

// keyDomain separates document keys from any other use of BLAKE3 with
// the same input bytes. ASCII, zero-padded to 32 bytes.
var keyDomain = [32]byte{
	'd', 'y', 'n', 'v', 'i', 'e', 'w', '.', 'd', 'o', 'c', 'c', 'a', 'c', 'h', 'e',
	'.', 'k', 'e', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// KeyOf computes the cache key of data parsed as format. The same
// bytes in two formats produce different keys.
func KeyOf(data []byte, format document.Format) Key {
	hasher, err := blake3.NewKeyed(keyDomain[:])
	if err != nil {
		panic("doccache: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(format))
	hasher.Write([]byte{0})
	hasher.Write(data)
	var key Key
	copy(key[:], hasher.Sum(nil))
	return key
}

// entry is the envelope stored under each key.
type entry struct {
	Version int            `cbor:"version"`
	Format  string         `cbor:"format"`
	Root    *document.Node `cbor:"root"`
}

// zstdEncoder and zstdDecoder are shared across calls; both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("doccache: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("doccache: zstd decoder initialization failed: " + err.Error())
	}
}

// Cache is a bbolt-backed store of parsed documents.
type Cache struct {
	db *bolt.DB
}

// Open opens or creates the cache database at path, creating parent
// directories as needed.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening document cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDocuments))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing document cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Close releases the database. Closing a nil cache is a no-op.
func (cache *Cache) Close() error {
	if cache == nil {
		return nil
	}
	return cache.db.Close()
}

// Load returns the cached tree for key, or [ErrMiss].
func (cache *Cache) Load(key Key) (*document.Node, error) {
	if cache == nil {
		return nil, ErrMiss
	}

	var compressed []byte
	err := cache.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(bucketDocuments)).Get(key[:])
		if value == nil {
			return ErrMiss
		}
		// Bolt values are only valid for the life of the transaction.
		compressed = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	raw, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing cache entry %s: %w", key, err)
	}
	var stored entry
	if err := codec.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}
	if stored.Version != schemaVersion || stored.Root == nil {
		return nil, ErrMiss
	}
	return stored.Root, nil
}

// Store writes root under key, replacing any previous entry.
func (cache *Cache) Store(key Key, format document.Format, root *document.Node) error {
	if cache == nil {
		return nil
	}
	if root == nil {
		return errors.New("doccache: cannot store a nil document")
	}

	raw, err := codec.Marshal(entry{Version: schemaVersion, Format: string(format), Root: root})
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	compressed := zstdEncoder.EncodeAll(raw, nil)

	return cache.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDocuments)).Put(key[:], compressed)
	})
}

// Len returns the number of cached entries.
func (cache *Cache) Len() (int, error) {
	if cache == nil {
		return 0, nil
	}
	var count int
	err := cache.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket([]byte(bucketDocuments)).Stats().KeyN
		return nil
	})
	return count, err
}

// Purge removes every entry.
func (cache *Cache) Purge() error {
	if cache == nil {
		return nil
	}
	return cache.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketDocuments)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketDocuments))
		return err
	})
}

// ParseCached parses data as format, consulting cache first and
// storing fresh parses. Cache failures other than a miss are returned
// alongside a successful parse so callers can log them; they never
// prevent parsing.
func ParseCached(cache *Cache, data []byte, format document.Format) (*document.Node, error) {
	key := KeyOf(data, format)
	root, loadErr := cache.Load(key)
	if loadErr == nil {
		return root, nil
	}

	root, err := document.Parse(data, format)
	if err != nil {
		return nil, err
	}

	var cacheErr error
	if !errors.Is(loadErr, ErrMiss) {
		cacheErr = loadErr
	}
	if storeErr := cache.Store(key, format, root); storeErr != nil {
		cacheErr = errors.Join(cacheErr, storeErr)
	}
	if cacheErr != nil {
		return root, &CacheError{Err: cacheErr}
	}
	return root, nil
}

// CacheError reports a cache failure that did not stop parsing. The
// tree returned alongside it is valid.
type CacheError struct {
	Err error
}

func (e *CacheError) Error() string { return "document cache: " + e.Err.Error() }

func (e *CacheError) Unwrap() error { return e.Err }
