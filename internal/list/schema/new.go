package schema

import (
	"sync"

	"list-timeline/internal/list/repository"
	"list-timeline/pkg/datemath"
	pkgLog "list-timeline/pkg/log"
)

type implDiscoverer struct {
	l       pkgLog.Logger
	repo    repository.SourceRepository
	cfg     Config
	ignored map[string]bool
	dates   *datemath.Parser // recognizes date cells in exports

	mu      sync.RWMutex
	schemas map[string]Schema
}

// New creates a Discoverer with an empty per-list store.
func New(l pkgLog.Logger, repo repository.SourceRepository, cfg Config) Discoverer {
	cfg.Columns = cfg.Columns.WithDefaults()
	if cfg.OptionPrefix == "" {
		cfg.OptionPrefix = defaultOptionPrefix
	}
	if cfg.IgnoredColumns == nil {
		cfg.IgnoredColumns = []string{defaultIgnored}
	}

	ignored := make(map[string]bool, len(cfg.IgnoredColumns))
	for _, c := range cfg.IgnoredColumns {
		ignored[c] = true
	}

	// UTC always loads; only calendar dates are compared.
	dates, _ := datemath.NewParser("UTC")

	return &implDiscoverer{
		l:       l,
		dates:   dates,
		repo:    repo,
		cfg:     cfg,
		ignored: ignored,
		schemas: make(map[string]Schema),
	}
}
