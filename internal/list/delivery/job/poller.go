package job

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"list-timeline/internal/list"
	"list-timeline/pkg/log"
)

// Config controls background refreshing of lists.
type Config struct {
	ListIDs         []string
	IntervalMinutes int    // 0 disables polling unless Schedule is set
	Schedule        string // standard 5-field cron expression, wins over IntervalMinutes
}

// Poller periodically force-refreshes lists so page loads hit a warm cache.
type Poller struct {
	l    log.Logger
	uc   list.UseCase
	cfg  Config
	spec string
	cron *cron.Cron
}

// New validates the schedule and creates a Poller. A Poller without schedule or lists is
// disabled and Start is a no-op.
func New(l log.Logger, uc list.UseCase, cfg Config) (*Poller, error) {
	spec, err := scheduleSpec(cfg)
	if err != nil {
		return nil, err
	}
	return &Poller{
		l:    l,
		uc:   uc,
		cfg:  cfg,
		spec: spec,
		cron: cron.New(),
	}, nil
}

func scheduleSpec(cfg Config) (string, error) {
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			return "", fmt.Errorf("invalid poll schedule %q: %w", cfg.Schedule, err)
		}
		return cfg.Schedule, nil
	}
	if cfg.IntervalMinutes < 0 {
		return "", fmt.Errorf("invalid poll interval %d", cfg.IntervalMinutes)
	}
	if cfg.IntervalMinutes == 0 {
		return "", nil
	}
	return fmt.Sprintf("@every %dm", cfg.IntervalMinutes), nil
}

// Enabled reports whether Start schedules anything.
func (p *Poller) Enabled() bool {
	return p.spec != "" && len(p.cfg.ListIDs) > 0
}

// Start schedules the refresh job and returns immediately.
func (p *Poller) Start(ctx context.Context) error {
	if !p.Enabled() {
		p.l.Infof(ctx, "list poller: disabled")
		return nil
	}

	if _, err := p.cron.AddFunc(p.spec, func() { p.RefreshAll(ctx) }); err != nil {
		return fmt.Errorf("schedule list poller: %w", err)
	}
	p.cron.Start()
	p.l.Infof(ctx, "list poller: refreshing %d lists on %q", len(p.cfg.ListIDs), p.spec)
	return nil
}

// Stop stops scheduling and waits for a running refresh to finish.
func (p *Poller) Stop() {
	<-p.cron.Stop().Done()
}

// RefreshAll force-refreshes every configured list once.
func (p *Poller) RefreshAll(ctx context.Context) {
	for _, id := range p.cfg.ListIDs {
		if ctx.Err() != nil {
			return
		}
		out, err := p.uc.Fetch(ctx, list.FetchInput{ListID: id, ForceRefresh: true})
		if err != nil {
			p.l.Errorf(ctx, "list poller: refresh of %s: %v", id, err)
			continue
		}
		if out.Status != list.StatusFresh {
			p.l.Warnf(ctx, "list poller: refresh of %s ended %s: %v", id, out.Status, out.Err)
			continue
		}
		p.l.Infof(ctx, "list poller: refreshed %s (%d tasks)", id, len(out.Tasks))
	}
}
