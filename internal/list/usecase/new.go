package usecase

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"list-timeline/internal/list"
	"list-timeline/internal/list/normalizer"
	"list-timeline/internal/list/repository"
	"list-timeline/internal/list/schema"
	"list-timeline/internal/model"
	pkgLog "list-timeline/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.SourceRepository
	discoverer schema.Discoverer
	normalizer *normalizer.Normalizer
	cfg        Config

	fresh      *expirable.LRU[string, cacheEntry] // list id -> tasks inside the TTL
	freshMulti *expirable.LRU[string, cacheEntry] // sorted joined ids -> merged tasks
	failed     *expirable.LRU[string, error]      // list id -> cause of a failed refresh inside the TTL
	group      singleflight.Group

	mu       sync.RWMutex
	lastGood map[string]cacheEntry
	infos    map[string]model.ListInfo

	now func() time.Time
}

// New creates a new list UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.SourceRepository,
	discoverer schema.Discoverer,
	norm *normalizer.Normalizer,
	cfg Config,
) list.UseCase {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if cfg.DefaultTitle == "" {
		cfg.DefaultTitle = defaultTitle
	}

	return &implUseCase{
		l:          l,
		repo:       repo,
		discoverer: discoverer,
		normalizer: norm,
		cfg:        cfg,
		fresh:      expirable.NewLRU[string, cacheEntry](cfg.CacheSize, nil, cfg.CacheTTL),
		freshMulti: expirable.NewLRU[string, cacheEntry](cfg.CacheSize, nil, cfg.CacheTTL),
		failed:     expirable.NewLRU[string, error](cfg.CacheSize, nil, cfg.CacheTTL),
		lastGood:   make(map[string]cacheEntry),
		infos:      make(map[string]model.ListInfo),
		now:        time.Now,
	}
}
