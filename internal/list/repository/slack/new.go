package slack

import (
	"list-timeline/internal/list/repository"
	pkgLog "list-timeline/pkg/log"
	"list-timeline/pkg/slacklists"
)

type implRepository struct {
	client *slacklists.Client
	l      pkgLog.Logger
}

// New creates a SourceRepository backed by the Slack Lists API.
func New(client *slacklists.Client, l pkgLog.Logger) repository.SourceRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}
