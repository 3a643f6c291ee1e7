// ABOUTME: On-disk TTL cache for radar search results
// ABOUTME: Keeps repeat queries off the upstream feed for a short window
package radar

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	badger "github.com/dgraph-io/badger/v3"
)

// cacheTTL is how long a query's results stay fresh.
const cacheTTL = 15 * time.Minute

type Cache struct {
	db *badger.DB
}

// OpenCache opens the radar cache at path. An empty path opens an in-memory
// cache, which tests use.
func OpenCache(path string) (*Cache, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open radar cache: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func cacheKey(query string) []byte {
	return []byte("radar:" + query)
}

// Get returns cached results for a query, or false when absent or expired.
func (c *Cache) Get(query string) ([]NewsItem, bool) {
	var items []NewsItem
	err := c.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(cacheKey(query))
		if err != nil {
			return err
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &items)
		})
	})
	if err != nil {
		return nil, false
	}
	return items, true
}

// Set stores results for a query with the cache TTL.
func (c *Cache) Set(query string, items []NewsItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(cacheKey(query), payload).WithTTL(cacheTTL)
		return txn.SetEntry(entry)
	})
}

// Service pairs a fetcher with the cache.
type Service struct {
	fetcher *Fetcher
	cache   *Cache
}

func NewService(fetcher *Fetcher, cache *Cache) *Service {
	return &Service{fetcher: fetcher, cache: cache}
}

// Search serves from cache when possible, otherwise fetches and fills it.
// Cache write failures are not fatal; the fetched items still return.
func (s *Service) Search(ctx context.Context, query string) ([]NewsItem, error) {
	if query == "" {
		query = DefaultQuery
	}

	if s.cache != nil {
		if items, ok := s.cache.Get(query); ok {
			return items, nil
		}
	}

	items, err := s.fetcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Cache failures are non-fatal; the fetch already succeeded.
		if err := s.cache.Set(query, items); err != nil {
			log.Printf("warning: radar cache write failed: %v", err)
		}
	}
	return items, nil
}
