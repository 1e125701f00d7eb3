package job_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"list-timeline/internal/list"
	"list-timeline/internal/list/delivery/job"
	"list-timeline/pkg/log"
)

type mockUseCase struct {
	list.UseCase

	mu      sync.Mutex
	fetched []list.FetchInput
}

func (m *mockUseCase) Fetch(ctx context.Context, input list.FetchInput) (list.FetchOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetched = append(m.fetched, input)
	if input.ListID == "L2" {
		return list.FetchOutput{Status: list.StatusStale, Err: errors.New("timeout")}, nil
	}
	return list.FetchOutput{Status: list.StatusFresh}, nil
}

func TestNew(t *testing.T) {
	tcs := map[string]struct {
		cfg         job.Config
		wantErr     bool
		wantEnabled bool
	}{
		"interval":          {cfg: job.Config{ListIDs: []string{"L1"}, IntervalMinutes: 15}, wantEnabled: true},
		"cron schedule":     {cfg: job.Config{ListIDs: []string{"L1"}, Schedule: "*/5 * * * *"}, wantEnabled: true},
		"disabled":          {cfg: job.Config{ListIDs: []string{"L1"}}},
		"no lists":          {cfg: job.Config{IntervalMinutes: 5}},
		"invalid schedule":  {cfg: job.Config{ListIDs: []string{"L1"}, Schedule: "every tuesday"}, wantErr: true},
		"negative interval": {cfg: job.Config{ListIDs: []string{"L1"}, IntervalMinutes: -1}, wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			p, err := job.New(log.NewNop(), &mockUseCase{}, tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Enabled() != tc.wantEnabled {
				t.Errorf("Enabled: got %v, want %v", p.Enabled(), tc.wantEnabled)
			}
		})
	}
}

func TestRefreshAll(t *testing.T) {
	uc := &mockUseCase{}
	p, err := job.New(log.NewNop(), uc, job.Config{ListIDs: []string{"L1", "L2", "L3"}, IntervalMinutes: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.RefreshAll(context.Background())

	if len(uc.fetched) != 3 {
		t.Fatalf("expected every list to be refreshed, got %d", len(uc.fetched))
	}
	for _, in := range uc.fetched {
		if !in.ForceRefresh {
			t.Errorf("poller must bypass the cache for %s", in.ListID)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.RefreshAll(ctx)
	if len(uc.fetched) != 3 {
		t.Errorf("cancelled context should stop the refresh, got %d calls", len(uc.fetched))
	}
}

func TestStartStop(t *testing.T) {
	p, _ := job.New(log.NewNop(), &mockUseCase{}, job.Config{ListIDs: []string{"L1"}, IntervalMinutes: 60})
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Stop()

	disabled, _ := job.New(log.NewNop(), &mockUseCase{}, job.Config{})
	if err := disabled.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	disabled.Stop()
}
