package normalizer

import (
	"list-timeline/internal/list/schema"
	"list-timeline/internal/model"
	"list-timeline/pkg/richtext"
)

// Normalize converts one raw record into a Task using the list schema. Records without a
// name or a start date are rejected with ErrMissingName or ErrMissingStartDate.
func (n *Normalizer) Normalize(rec model.RawRecord, s schema.Schema) (model.Task, error) {
	f := index(rec)
	consumed := map[string]bool{}
	consume := func(key string) {
		if key != "" {
			consumed[key] = true
		}
	}
	for _, column := range []string{n.columns.Name, n.columns.StartDate, n.columns.EndDate, n.columns.Category, n.columns.Notes} {
		if key, ok := s.FieldKey(column); ok {
			consume(key)
		}
	}

	name, key, ok := firstOf(f,
		mappedText(s, n.columns.Name),
		commonText(nameFallbackKeys...),
	)
	if !ok {
		return model.Task{}, ErrMissingName
	}
	consume(key)

	start, key, ok := firstOf(f,
		n.mappedDate(s, n.columns.StartDate),
		n.commonDate(startFallbackKeys...),
	)
	if !ok {
		return model.Task{}, ErrMissingStartDate
	}
	consume(key)

	end, _, ok := firstOf(f, n.mappedDate(s, n.columns.EndDate))
	if !ok {
		end = start
	}

	task := model.Task{
		ID:        rec.ID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
	}

	if key, ok := s.FieldKey(n.columns.Category); ok {
		if raw := f.values[key]; !model.IsEmptyValue(raw) {
			task.Category = resolveCategory(s, raw)
		}
	}

	if key, ok := s.FieldKey(n.columns.Notes); ok {
		if raw := f.values[key]; !model.IsEmptyValue(raw) {
			if notes := richtext.Decode(raw); notes != "" {
				task.Metadata.Set(model.MetaNotes, model.StringValue(notes))
			}
		}
	}

	for _, field := range rec.Fields {
		if field.Key == "" || consumed[field.Key] || model.IsEmptyValue(field.Value) {
			continue
		}
		if _, dup := task.Metadata.Get(field.Key); dup {
			continue
		}
		task.Metadata.Set(field.Key, model.ValueOf(field.Value))
	}

	return task, nil
}

func index(rec model.RawRecord) fields {
	f := fields{
		values: make(map[string]any, len(rec.Fields)),
		texts:  make(map[string]string),
	}
	for _, field := range rec.Fields {
		if field.Key == "" {
			continue
		}
		f.values[field.Key] = field.Value
		if field.Text != "" {
			f.texts[field.Key] = field.Text
		}
	}
	return f
}
