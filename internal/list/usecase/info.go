package usecase

import (
	"context"
	"maps"
	"slices"
	"strings"

	"list-timeline/internal/list"
	"list-timeline/internal/list/schema"
	"list-timeline/internal/model"
)

func (uc *implUseCase) GetListInfo(ctx context.Context, listID string) (list.ListInfoOutput, error) {
	if listID == "" {
		return list.ListInfoOutput{}, list.ErrEmptyListID
	}

	uc.mu.RLock()
	info, ok := uc.infos[listID]
	uc.mu.RUnlock()
	if ok {
		return list.ListInfoOutput{Info: info}, nil
	}

	// The default title is served without a remote call while a failed refresh is inside the TTL.
	if _, failed := uc.failed.Get(listID); failed {
		return list.ListInfoOutput{Info: model.ListInfo{Title: uc.cfg.DefaultTitle}}, nil
	}

	s, known := uc.discoverer.Get(listID)
	if (!known || s.Info.Title == "") && uc.repo.Ready() == nil {
		s = uc.discoverer.Discover(ctx, schema.DiscoverInput{ListID: listID})
		_, known = uc.discoverer.Get(listID)
	}

	info = s.Info
	if info.Title == "" {
		info.Title = uc.cfg.DefaultTitle
	}
	if known {
		uc.mu.Lock()
		uc.infos[listID] = info
		uc.mu.Unlock()
	}
	return list.ListInfoOutput{Info: info}, nil
}

func (uc *implUseCase) Schema(ctx context.Context, input list.SchemaInput) (list.SchemaOutput, error) {
	if input.ListID == "" {
		return list.SchemaOutput{}, list.ErrEmptyListID
	}
	if err := uc.repo.Ready(); err != nil {
		return list.SchemaOutput{}, err
	}

	s := uc.discoverer.Discover(ctx, schema.DiscoverInput{ListID: input.ListID, Force: input.ForceRefresh})
	return list.SchemaOutput{
		ListID:       input.ListID,
		Columns:      maps.Clone(s.Columns),
		Options:      maps.Clone(s.Options),
		Source:       string(s.Source),
		DiscoveredAt: s.DiscoveredAt,
	}, nil
}

func (uc *implUseCase) ClearCache(ctx context.Context, listID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if listID == "" {
		uc.fresh.Purge()
		uc.freshMulti.Purge()
		uc.failed.Purge()
		clear(uc.lastGood)
		clear(uc.infos)
		uc.l.Infof(ctx, "list usecase: cleared all cached lists")
		return
	}

	uc.fresh.Remove(listID)
	uc.failed.Remove(listID)
	for _, key := range uc.freshMulti.Keys() {
		if slices.Contains(strings.Split(key, ","), listID) {
			uc.freshMulti.Remove(key)
		}
	}
	delete(uc.lastGood, listID)
	delete(uc.infos, listID)
	uc.l.Infof(ctx, "list usecase: cleared cache of %s", listID)
}
