package usecase

import (
	"context"
	"fmt"
	"slices"

	"list-timeline/internal/list"
	"list-timeline/internal/list/schema"
	"list-timeline/internal/model"
)

func (uc *implUseCase) Fetch(ctx context.Context, input list.FetchInput) (list.FetchOutput, error) {
	if input.ListID == "" {
		return list.FetchOutput{}, list.ErrEmptyListID
	}

	if err := uc.repo.Ready(); err != nil {
		uc.l.Errorf(ctx, "list usecase: cannot fetch %s: %v", input.ListID, err)
		return list.FetchOutput{Tasks: []model.Task{}, Status: list.StatusFailed, Err: err}, nil
	}

	if !input.ForceRefresh {
		if entry, ok := uc.fresh.Get(input.ListID); ok {
			return list.FetchOutput{
				Tasks:     slices.Clone(entry.tasks),
				Status:    list.StatusCached,
				FetchedAt: entry.fetchedAt,
			}, nil
		}
	}

	key := input.ListID
	if input.ForceRefresh {
		key += "|force"
	}
	v, _, shared := uc.group.Do(key, func() (any, error) {
		return uc.refresh(ctx, input.ListID, input.ForceRefresh), nil
	})
	if shared {
		uc.l.Debugf(ctx, "list usecase: joined in-flight fetch of %s", input.ListID)
	}

	out := v.(list.FetchOutput)
	out.Tasks = slices.Clone(out.Tasks)
	return out, nil
}

// refresh fetches, normalizes and caches one list. Any failure, including a panic, degrades
// to the last known good tasks.
func (uc *implUseCase) refresh(ctx context.Context, listID string, force bool) (out list.FetchOutput) {
	defer func() {
		if r := recover(); r != nil {
			out = uc.degrade(ctx, listID, fmt.Errorf("panic while fetching list: %v", r))
		}
	}()

	if force {
		uc.discoverer.Invalidate(listID)
	}

	records, err := uc.repo.FetchRecords(ctx, listID)
	if err != nil {
		return uc.degrade(ctx, listID, err)
	}

	tasks := make([]model.Task, 0, len(records))
	var info model.ListInfo
	if len(records) == 0 {
		uc.l.Warnf(ctx, "list usecase: list %s has no records", listID)
	} else {
		s := uc.discoverer.Discover(ctx, schema.DiscoverInput{
			ListID: listID,
			Force:  force,
			Sample: records,
		})
		info = s.Info
		for _, rec := range records {
			task, err := uc.normalizer.Normalize(rec, s)
			if err != nil {
				uc.l.Debugf(ctx, "list usecase: skipped record %s of %s: %v", rec.ID, listID, err)
				continue
			}
			tasks = append(tasks, task)
		}
		model.SortTasks(tasks)
	}

	if info.Title == "" {
		info.Title = uc.cfg.DefaultTitle
	}

	entry := cacheEntry{tasks: tasks, fetchedAt: uc.now()}
	uc.fresh.Add(listID, entry)
	uc.failed.Remove(listID)
	uc.mu.Lock()
	uc.lastGood[listID] = entry
	uc.infos[listID] = info
	uc.mu.Unlock()

	uc.l.Infof(ctx, "list usecase: fetched %d tasks from %d records of %s", len(tasks), len(records), listID)
	return list.FetchOutput{Tasks: tasks, Status: list.StatusFresh, FetchedAt: entry.fetchedAt}
}

func (uc *implUseCase) degrade(ctx context.Context, listID string, cause error) list.FetchOutput {
	uc.failed.Add(listID, cause)

	uc.mu.RLock()
	entry, ok := uc.lastGood[listID]
	uc.mu.RUnlock()

	if !ok {
		uc.l.Errorf(ctx, "list usecase: fetch of %s failed and nothing is cached: %v", listID, cause)
		return list.FetchOutput{Tasks: []model.Task{}, Status: list.StatusFailed, Err: cause}
	}

	uc.l.Warnf(ctx, "list usecase: fetch of %s failed, serving %d cached tasks: %v", listID, len(entry.tasks), cause)
	return list.FetchOutput{
		Tasks:     entry.tasks,
		Status:    list.StatusStale,
		FetchedAt: entry.fetchedAt,
		Err:       cause,
	}
}
