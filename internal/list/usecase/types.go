package usecase

import (
	"time"

	"list-timeline/internal/model"
)

const (
	defaultCacheTTL  = 60 * time.Second
	defaultCacheSize = 256
	defaultTitle     = "Project Timeline"
)

// Config tunes the task cache.
type Config struct {
	CacheTTL     time.Duration // freshness window of cached tasks
	CacheSize    int           // max cached lists (and multi-list merges)
	DefaultTitle string        // title used when a list exposes none
}

// cacheEntry is an immutable snapshot of one fetch.
type cacheEntry struct {
	tasks     []model.Task
	listNames map[string]string
	fetchedAt time.Time
}
