package suite

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gnoswap-labs/tableaux"
)

const cacheFileName = "proof_cache.gob"

type CacheEntry struct {
	Report       tableaux.Report
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache remembers reports by system and statement so that re-checking a
// suite only proves the arguments that changed. A Cache with a directory
// persists its entries there on Save.
type Cache struct {
	CacheDir string
	entries  map[string]CacheEntry
	mutex    sync.Mutex
	maxAge   time.Duration
}

// NewCache opens the cache stored in cacheDir, creating the directory if
// needed. An empty cacheDir gives a cache that lives in memory only.
func NewCache(cacheDir string) (*Cache, error) {
	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
	}
	if cacheDir == "" {
		return cache, nil
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.CacheDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	return nil
}

// Save writes the entries to the cache directory.
func (c *Cache) Save() error {
	if c.CacheDir == "" {
		return nil
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()

	file, err := os.Create(filepath.Join(c.CacheDir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

// Set stores r as the report of statement proved in sys with opts.
func (c *Cache) Set(sys tableaux.System, statement string, opts []tableaux.Option, r *tableaux.Report) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[cacheKey(sys, statement, opts)] = CacheEntry{
		Report:       *r,
		CreatedAt:    now,
		LastAccessed: now,
	}
}

// Get returns the report stored for the same system, statement and options.
func (c *Cache) Get(sys tableaux.System, statement string, opts []tableaux.Option) (*tableaux.Report, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := cacheKey(sys, statement, opts)
	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		delete(c.entries, key)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[key] = entry
	r := entry.Report
	return &r, true
}

// SetMaxAge expires entries older than d. Zero keeps entries forever.
func (c *Cache) SetMaxAge(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = d
}

func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.entries)
}

func (c *Cache) InvalidateAll() error {
	c.mutex.Lock()
	c.entries = make(map[string]CacheEntry)
	c.mutex.Unlock()
	return c.Save()
}

func cacheKey(sys tableaux.System, statement string, opts []tableaux.Option) string {
	sum := md5.Sum([]byte(sys.String() + "\x00" + statement + "\x00" + tableaux.OptionsKey(opts...)))
	return fmt.Sprintf("%x", sum)
}
