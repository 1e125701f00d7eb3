package usecase

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"list-timeline/internal/list"
	"list-timeline/internal/model"
)

func (uc *implUseCase) FetchMulti(ctx context.Context, input list.FetchMultiInput) (list.FetchMultiOutput, error) {
	ids := uniqueIDs(input.ListIDs)
	if len(ids) == 0 {
		return list.FetchMultiOutput{}, list.ErrEmptyListID
	}
	key := multiKey(ids)

	if !input.ForceRefresh {
		if entry, ok := uc.freshMulti.Get(key); ok {
			return list.FetchMultiOutput{
				Tasks:     slices.Clone(entry.tasks),
				ListNames: maps.Clone(entry.listNames),
				Status:    list.StatusCached,
				FetchedAt: entry.fetchedAt,
			}, nil
		}
	}

	var (
		merged    []model.Task
		names     = make(map[string]string, len(ids))
		seen      = make(map[string]bool)
		status    = list.StatusFresh
		fetchedAt time.Time
	)
	for _, id := range ids {
		out, err := uc.Fetch(ctx, list.FetchInput{ListID: id, ForceRefresh: input.ForceRefresh})
		if err != nil {
			return list.FetchMultiOutput{}, err
		}
		status = status.Worse(out.Status)
		if !out.FetchedAt.IsZero() && (fetchedAt.IsZero() || out.FetchedAt.Before(fetchedAt)) {
			fetchedAt = out.FetchedAt
		}

		info, err := uc.GetListInfo(ctx, id)
		if err != nil {
			return list.FetchMultiOutput{}, err
		}
		names[id] = info.Info.Title

		for _, t := range out.Tasks {
			if t.ID != "" {
				if seen[t.ID] {
					continue
				}
				seen[t.ID] = true
			}
			t.SourceListID = id
			t.SourceListName = info.Info.Title
			merged = append(merged, t)
		}
	}
	if merged == nil {
		merged = []model.Task{}
	}
	model.SortTasks(merged)

	if status == list.StatusFresh || status == list.StatusCached {
		uc.freshMulti.Add(key, cacheEntry{tasks: merged, listNames: names, fetchedAt: fetchedAt})
	}

	return list.FetchMultiOutput{
		Tasks:     slices.Clone(merged),
		ListNames: maps.Clone(names),
		Status:    status,
		FetchedAt: fetchedAt,
	}, nil
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func multiKey(ids []string) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return strings.Join(sorted, ",")
}
