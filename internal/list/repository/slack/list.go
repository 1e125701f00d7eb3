package slack

import (
	"context"
	"encoding/json"
	"fmt"

	"list-timeline/internal/list"
	"list-timeline/internal/list/repository"
	"list-timeline/internal/model"
	"list-timeline/pkg/slacklists"
)

func (r *implRepository) Ready() error {
	if !r.client.HasToken() {
		return list.ErrMissingToken
	}
	return nil
}

func (r *implRepository) FetchRecords(ctx context.Context, listID string) ([]model.RawRecord, error) {
	items, err := r.client.ListItems(ctx, listID)
	if err != nil {
		r.l.Errorf(ctx, "slack repository: failed to list items of %s: %v", listID, err)
		return nil, err
	}

	records := make([]model.RawRecord, 0, len(items))
	for _, item := range items {
		records = append(records, r.itemToRecord(item))
	}
	r.l.Debugf(ctx, "slack repository: fetched %d records from %s", len(records), listID)
	return records, nil
}

func (r *implRepository) FetchListMetadata(ctx context.Context, opt repository.ListMetadataOptions) (repository.ListMetadata, error) {
	itemID := opt.SampleRecordID
	if itemID == "" {
		items, err := r.client.ListItems(ctx, opt.ListID)
		if err != nil {
			return repository.ListMetadata{}, err
		}
		if len(items) == 0 {
			return repository.ListMetadata{}, fmt.Errorf("list %s: %w", opt.ListID, list.ErrNoRecords)
		}
		itemID = items[0].ID
	}

	info, err := r.client.ItemInfo(ctx, opt.ListID, itemID)
	if err != nil {
		r.l.Warnf(ctx, "slack repository: failed to get item info for %s/%s: %v", opt.ListID, itemID, err)
		return repository.ListMetadata{}, err
	}

	return listToMetadata(info.List), nil
}

func (r *implRepository) FetchExport(ctx context.Context, listID string) (repository.Export, error) {
	export, err := r.client.DownloadExport(ctx, listID)
	if err != nil {
		r.l.Warnf(ctx, "slack repository: export of %s failed: %v", listID, err)
		return repository.Export{}, err
	}
	return repository.Export{
		Columns: export.Columns,
		Rows:    export.Rows,
	}, nil
}

func (r *implRepository) itemToRecord(item slacklists.Item) model.RawRecord {
	fields := make([]model.RawField, 0, len(item.Fields))
	for _, f := range item.Fields {
		key := f.Key
		if key == "" {
			key = f.ColumnID
		}
		fields = append(fields, model.RawField{
			Key:   key,
			Value: decodeValue(f.Value),
			Text:  f.Text,
		})
	}
	return model.RawRecord{ID: item.ID, Fields: fields}
}

// decodeValue turns a raw field value into plain Go values. Undecodable payloads are kept as text.
func decodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func listToMetadata(l slacklists.List) repository.ListMetadata {
	title := l.Name
	if title == "" {
		title = l.Title
	}
	description := l.Description
	if description == "" {
		description = l.ListMetadata.Description
	}

	columns := make([]repository.ColumnDescriptor, 0, len(l.ListMetadata.Schema))
	for _, c := range l.ListMetadata.Schema {
		key := c.Key
		if key == "" {
			key = c.ID
		}
		col := repository.ColumnDescriptor{
			Name: c.Name,
			Key:  key,
			Type: c.Type,
		}
		if c.Options != nil {
			for _, choice := range c.Options.Choices {
				col.Options = append(col.Options, repository.ColumnOption{
					ID:    choice.Value,
					Label: choice.Label,
				})
			}
		}
		columns = append(columns, col)
	}

	return repository.ListMetadata{
		Title:       title,
		Description: description,
		Columns:     columns,
	}
}
