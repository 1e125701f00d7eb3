package list

import "context"

// UseCase produces normalized, sorted task lists from remote Slack Lists.
type UseCase interface {
	// Fetch returns the tasks of one list, served from cache inside the TTL.
	Fetch(ctx context.Context, input FetchInput) (FetchOutput, error)

	// FetchMulti fetches several lists sequentially and merges them, tagging each task with its source list.
	FetchMulti(ctx context.Context, input FetchMultiInput) (FetchMultiOutput, error)

	// GetListInfo returns the list title and description.
	GetListInfo(ctx context.Context, listID string) (ListInfoOutput, error)

	// Schema returns the discovered column mapping and option labels of a list.
	Schema(ctx context.Context, input SchemaInput) (SchemaOutput, error)

	// ClearCache drops cached tasks for one list, or for every list when listID is empty.
	ClearCache(ctx context.Context, listID string)
}
