package repository

import (
	"context"

	"list-timeline/internal/model"
)

// SourceRepository is the remote list/record source.
type SourceRepository interface {
	// Ready reports configuration problems that make every fetch fail (list.ErrMissingToken).
	Ready() error

	// FetchRecords returns every raw record of a list.
	FetchRecords(ctx context.Context, listID string) ([]model.RawRecord, error)

	// FetchListMetadata returns the list title and, when the API exposes one, its column schema.
	FetchListMetadata(ctx context.Context, opt ListMetadataOptions) (ListMetadata, error)

	// FetchExport returns the human-readable tabular export of a list.
	FetchExport(ctx context.Context, listID string) (Export, error)
}
