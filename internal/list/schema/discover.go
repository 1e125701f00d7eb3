package schema

import (
	"context"
	"maps"
	"time"

	"list-timeline/internal/list/repository"
	"list-timeline/internal/model"
)

func (d *implDiscoverer) Discover(ctx context.Context, input DiscoverInput) Schema {
	if !input.Force {
		if cached, ok := d.Get(input.ListID); ok && cached.Complete() {
			return cached
		}
	}

	sample := input.Sample
	if len(sample) == 0 {
		records, err := d.repo.FetchRecords(ctx, input.ListID)
		if err != nil {
			d.l.Warnf(ctx, "schema discoverer: failed to fetch sample of %s: %v", input.ListID, err)
			return d.fallback(input.ListID)
		}
		sample = records
	}
	if len(sample) == 0 {
		d.l.Infof(ctx, "schema discoverer: list %s has no records, nothing to discover", input.ListID)
		return d.fallback(input.ListID)
	}

	columns := map[string]string{}
	options := map[string]string{}
	var source Source

	meta, err := d.repo.FetchListMetadata(ctx, repository.ListMetadataOptions{
		ListID:         input.ListID,
		SampleRecordID: sample[0].ID,
	})
	if err != nil {
		d.l.Warnf(ctx, "schema discoverer: no list metadata for %s: %v", input.ListID, err)
	}
	if len(meta.Columns) > 0 {
		fromDescriptor(meta.Columns, columns, options)
		source = SourceDescriptor
	}

	if len(columns) == 0 {
		export, err := d.repo.FetchExport(ctx, input.ListID)
		if err != nil {
			d.l.Warnf(ctx, "schema discoverer: export of %s unavailable: %v", input.ListID, err)
		} else {
			d.fromExport(export, sample, columns, options)
			if len(columns) > 0 {
				source = SourceExport
			}
		}
	}

	if len(columns) == 0 && len(d.cfg.FieldOverrides) == 0 && len(d.cfg.StaticOptions) == 0 {
		d.l.Warnf(ctx, "schema discoverer: could not learn a schema for %s", input.ListID)
		return d.fallback(input.ListID)
	}
	if source == "" {
		source = SourceStatic
	}

	s := d.build(input.ListID, columns, options, source)
	s.Info = model.ListInfo{Title: meta.Title, Description: meta.Description}
	d.store(s)

	d.l.Infof(ctx, "schema discoverer: %s mapped %d columns and %d options from %s",
		input.ListID, len(s.Columns), len(s.Options), s.Source)
	return s
}

func (d *implDiscoverer) Get(listID string) (Schema, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.schemas[listID]
	return s, ok
}

func (d *implDiscoverer) Invalidate(listID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.schemas, listID)
}

func (d *implDiscoverer) InvalidateAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.schemas = make(map[string]Schema)
}

func (d *implDiscoverer) store(s Schema) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.schemas[s.ListID] = s
}

// fallback returns the cached schema if any, else the static configuration. Nothing is stored.
func (d *implDiscoverer) fallback(listID string) Schema {
	if cached, ok := d.Get(listID); ok {
		return cached
	}
	return d.build(listID, nil, nil, SourceStatic)
}

// build layers static configuration over discovered maps: configured field keys win over
// discovered ones, discovered option labels win over configured ones.
func (d *implDiscoverer) build(listID string, columns, options map[string]string, source Source) Schema {
	cols := make(map[string]string, len(columns)+len(d.cfg.FieldOverrides))
	maps.Copy(cols, columns)
	for column, key := range d.cfg.FieldOverrides {
		if key != "" {
			cols[column] = key
		}
	}

	opts := make(map[string]string, len(options)+len(d.cfg.StaticOptions))
	maps.Copy(opts, d.cfg.StaticOptions)
	maps.Copy(opts, options)

	return Schema{
		ListID:       listID,
		Columns:      cols,
		Options:      opts,
		Source:       source,
		DiscoveredAt: time.Now(),
	}
}

func fromDescriptor(descriptors []repository.ColumnDescriptor, columns, options map[string]string) {
	for _, c := range descriptors {
		if c.Name == "" || c.Key == "" {
			continue
		}
		columns[c.Name] = c.Key
		if !selectTypes[c.Type] && len(c.Options) == 0 {
			continue
		}
		for _, o := range c.Options {
			if o.ID != "" {
				options[o.ID] = o.Label
			}
		}
	}
}
