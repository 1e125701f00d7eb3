package schema

import (
	"strings"

	"cloud.google.com/go/civil"

	"list-timeline/internal/list/repository"
	"list-timeline/internal/model"
	"list-timeline/pkg/datemath"
	"list-timeline/pkg/richtext"
)

// fromExport cross-references export rows with raw records through the identity column.
// A row whose identity cell equals the display text of some record field ties that row to
// the record; the row's other cells are then matched against the record's fields.
func (d *implDiscoverer) fromExport(export repository.Export, records []model.RawRecord, columns, options map[string]string) {
	identity := d.cfg.Columns.Name
	claimed := map[string]string{} // field key -> column label
	for _, key := range columns {
		claimed[key] = ""
	}

	claim := func(column, key string) {
		columns[column] = key
		claimed[key] = column
	}

	order := d.columnOrder(export.Columns)
	for _, row := range export.Rows {
		name := strings.TrimSpace(row[identity])
		if name == "" {
			continue
		}
		rec, nameKey, ok := matchRecord(records, name)
		if !ok {
			continue
		}
		if _, mapped := columns[identity]; !mapped {
			claim(identity, nameKey)
		}

		for _, column := range order {
			if column == identity || d.ignored[column] {
				continue
			}
			cell := strings.TrimSpace(row[column])
			if cell == "" {
				continue
			}

			if key, mapped := columns[column]; mapped {
				if f, ok := fieldByKey(rec, key); ok {
					d.learnOptions(f.Value, cell, options)
				}
				continue
			}

			if key, ok := directMatch(rec, cell, claimed); ok {
				claim(column, key)
				if f, ok := fieldByKey(rec, key); ok {
					d.learnOptions(f.Value, cell, options)
				}
				continue
			}

			date, isDate := d.dates.ParseString(cell)
			if isDate {
				if key, ok := d.dateMatch(rec, date, claimed); ok {
					claim(column, key)
					continue
				}
				// A date cell never pairs with an option field.
				if column != d.cfg.Columns.Category {
					continue
				}
			}

			if f, ok := d.optionField(rec, claimed); ok {
				claim(column, f.Key)
				d.learnOptions(f.Value, cell, options)
			}
		}
	}
}

// learnOptions records id -> label pairs from an option-valued field and its export cell.
// Multi-select cells are split on commas and zipped with the ids when the counts agree.
func (d *implDiscoverer) learnOptions(value any, cell string, options map[string]string) {
	ids := optionIDs(value, d.cfg.OptionPrefix)
	if len(ids) == 0 {
		return
	}
	labels := []string{cell}
	if len(ids) > 1 {
		labels = strings.Split(cell, ",")
		if len(labels) != len(ids) {
			return
		}
	}
	for i, id := range ids {
		label := strings.TrimSpace(labels[i])
		if label == "" || label == id {
			continue
		}
		if _, seen := options[id]; !seen {
			options[id] = label
		}
	}
}

// columnOrder puts the configured category column first so it gets the first pick of the
// option-valued fields.
func (d *implDiscoverer) columnOrder(columns []string) []string {
	category := d.cfg.Columns.Category
	order := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == category {
			order = append(order, c)
		}
	}
	for _, c := range columns {
		if c != category {
			order = append(order, c)
		}
	}
	return order
}

// dateMatch finds an unclaimed field holding the same calendar date as an export cell.
func (d *implDiscoverer) dateMatch(rec model.RawRecord, date civil.Date, claimed map[string]string) (string, bool) {
	for _, f := range rec.Fields {
		if _, taken := claimed[f.Key]; taken {
			continue
		}
		if v, ok := d.dates.ParseValue(f.Value); ok && v == date {
			return f.Key, true
		}
	}
	return "", false
}

// optionField returns the first unclaimed field whose value is one or more option ids.
func (d *implDiscoverer) optionField(rec model.RawRecord, claimed map[string]string) (model.RawField, bool) {
	for _, f := range rec.Fields {
		if _, taken := claimed[f.Key]; taken {
			continue
		}
		if len(optionIDs(f.Value, d.cfg.OptionPrefix)) > 0 {
			return f, true
		}
	}
	return model.RawField{}, false
}

func matchRecord(records []model.RawRecord, name string) (model.RawRecord, string, bool) {
	for _, rec := range records {
		for _, f := range rec.Fields {
			if strings.TrimSpace(displayText(f)) == name {
				return rec, f.Key, true
			}
		}
	}
	return model.RawRecord{}, "", false
}

// directMatch finds the field whose value or text equals cell. Unclaimed fields are preferred;
// a claimed field is used only when nothing else matches.
func directMatch(rec model.RawRecord, cell string, claimed map[string]string) (string, bool) {
	fallback := ""
	for _, f := range rec.Fields {
		if !fieldMatches(f, cell) {
			continue
		}
		if _, taken := claimed[f.Key]; !taken {
			return f.Key, true
		}
		if fallback == "" {
			fallback = f.Key
		}
	}
	return fallback, fallback != ""
}

func fieldMatches(f model.RawField, cell string) bool {
	if strings.TrimSpace(f.Text) == cell {
		return true
	}
	if model.IsEmptyValue(f.Value) {
		return false
	}
	if strings.TrimSpace(model.ValueText(f.Value)) == cell {
		return true
	}
	return strings.TrimSpace(richtext.Decode(f.Value)) == cell
}

func fieldByKey(rec model.RawRecord, key string) (model.RawField, bool) {
	for _, f := range rec.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return model.RawField{}, false
}

func displayText(f model.RawField) string {
	if f.Text != "" {
		return f.Text
	}
	if model.IsEmptyValue(f.Value) {
		return ""
	}
	return richtext.Decode(f.Value)
}

// optionIDs returns the option ids held by a single- or multi-select value.
func optionIDs(v any, prefix string) []string {
	switch val := v.(type) {
	case string:
		if strings.HasPrefix(val, prefix) {
			return []string{val}
		}
	case []any:
		ids := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok || !strings.HasPrefix(s, prefix) {
				return nil
			}
			ids = append(ids, s)
		}
		return ids
	}
	return nil
}
