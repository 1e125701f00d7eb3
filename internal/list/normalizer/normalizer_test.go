package normalizer_test

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"list-timeline/internal/list"
	"list-timeline/internal/list/normalizer"
	"list-timeline/internal/list/schema"
	"list-timeline/internal/model"
	"list-timeline/pkg/datemath"
)

func newNormalizer(t *testing.T) *normalizer.Normalizer {
	t.Helper()
	dates, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("parser: %v", err)
	}
	return normalizer.New(list.ColumnNames{}, dates)
}

func date(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func field(key string, v any) model.RawField { return model.RawField{Key: key, Value: v} }

var mapped = schema.Schema{
	ListID: "L1",
	Columns: map[string]string{
		"Name":       "name",
		"Start Date": "Col1",
		"End Date":   "Col3",
		"category":   "Col2",
		"notes":      "Col5",
	},
	Options: map[string]string{"OptA": "Students", "OptB": "Staff"},
}

func TestNormalize(t *testing.T) {
	n := newNormalizer(t)

	tcs := map[string]struct {
		rec     model.RawRecord
		s       schema.Schema
		wantErr error
		check   func(t *testing.T, task model.Task)
	}{
		"mapped record": {
			rec: model.RawRecord{ID: "R1", Fields: []model.RawField{
				{Key: "name", Value: "Launch", Text: "Launch"},
				field("Col1", "2024-03-15"),
				field("Col2", "OptA"),
				field("priority", "high"),
			}},
			s: mapped,
			check: func(t *testing.T, task model.Task) {
				if task.ID != "R1" || task.Name != "Launch" || task.Category != "Students" {
					t.Errorf("unexpected task: %+v", task)
				}
				if task.StartDate != date(2024, 3, 15) || task.EndDate != task.StartDate {
					t.Errorf("expected one-day task on 2024-03-15, got %s..%s", task.StartDate, task.EndDate)
				}
				keys := task.Metadata.Keys()
				if len(keys) != 1 || keys[0] != "priority" || task.Metadata.GetString("priority", "") != "high" {
					t.Errorf("expected only priority in metadata, got %v", keys)
				}
			},
		},
		"keyless fields are skipped": {
			rec: model.RawRecord{ID: "R9", Fields: []model.RawField{
				{Key: "", Value: "Ghost", Text: "Ghost"},
				field("name", "Launch"),
				field("Col1", "2024-03-15"),
				field("", "stray"),
			}},
			s: mapped,
			check: func(t *testing.T, task model.Task) {
				if task.Name != "Launch" {
					t.Errorf("expected name Launch, got %q", task.Name)
				}
				if task.Metadata.Len() != 0 {
					t.Errorf("keyless values leaked into metadata: %v", task.Metadata.Keys())
				}
			},
		},
		"explicit end date": {
			rec: model.RawRecord{ID: "R2", Fields: []model.RawField{
				field("name", "Sprint"),
				field("Col1", "2024-03-15"),
				field("Col3", []any{"2024-03-20"}),
			}},
			s: mapped,
			check: func(t *testing.T, task model.Task) {
				if task.EndDate != date(2024, 3, 20) {
					t.Errorf("expected end 2024-03-20, got %s", task.EndDate)
				}
			},
		},
		"name fallback and start fallback without schema": {
			rec: model.RawRecord{ID: "R3", Fields: []model.RawField{
				field("title", "Audit"),
				field("date", "1710460800"),
				field("owner", "alice"),
			}},
			check: func(t *testing.T, task model.Task) {
				if task.Name != "Audit" || task.StartDate != date(2024, 3, 15) {
					t.Errorf("unexpected task: %+v", task)
				}
				keys := task.Metadata.Keys()
				if len(keys) != 1 || keys[0] != "owner" {
					t.Errorf("fallback keys should be consumed, got metadata %v", keys)
				}
			},
		},
		"name from rich text value": {
			rec: model.RawRecord{ID: "R4", Fields: []model.RawField{
				field("name", []any{map[string]any{"elements": []any{map[string]any{"elements": []any{
					map[string]any{"type": "text", "text": "Write"},
					map[string]any{"type": "text", "text": "report"},
				}}}}}),
				field("Col1", "2024-03-15"),
			}},
			s: mapped,
			check: func(t *testing.T, task model.Task) {
				if task.Name != "Write report" {
					t.Errorf("expected decoded name, got %q", task.Name)
				}
			},
		},
		"unknown option passes through": {
			rec: model.RawRecord{ID: "R5", Fields: []model.RawField{
				field("name", "Launch"), field("Col1", "2024-03-15"), field("Col2", "OptZ"),
			}},
			s: mapped,
			check: func(t *testing.T, task model.Task) {
				if task.Category != "OptZ" {
					t.Errorf("expected raw option id, got %q", task.Category)
				}
			},
		},
		"multi select category": {
			rec: model.RawRecord{ID: "R6", Fields: []model.RawField{
				field("name", "Launch"), field("Col1", "2024-03-15"), field("Col2", []any{"OptA", "OptB", "OptZ"}),
			}},
			s: mapped,
			check: func(t *testing.T, task model.Task) {
				if task.Category != "Students, Staff, OptZ" {
					t.Errorf("unexpected category %q", task.Category)
				}
			},
		},
		"notes and falsy metadata": {
			rec: model.RawRecord{ID: "R7", Fields: []model.RawField{
				field("name", "Launch"),
				field("Col1", "2024-03-15"),
				field("Col5", `[{"elements":[{"elements":[{"type":"text","text":"Bring slides"}]}]}]`),
				field("empty", ""),
				field("zero", float64(0)),
				field("flag", false),
				field("none", nil),
				field("tags", []any{}),
				field("estimate", float64(3)),
				field("done", true),
			}},
			s: mapped,
			check: func(t *testing.T, task model.Task) {
				if task.Notes() != "Bring slides" {
					t.Errorf("expected decoded notes, got %q", task.Notes())
				}
				keys := task.Metadata.Keys()
				want := []string{model.MetaNotes, "estimate", "done"}
				if len(keys) != len(want) {
					t.Fatalf("metadata keys: got %v, want %v", keys, want)
				}
				for i := range want {
					if keys[i] != want[i] {
						t.Errorf("metadata key %d: got %q, want %q", i, keys[i], want[i])
					}
				}
				if v, _ := task.Metadata.Get("estimate"); v.String() != "3" {
					t.Errorf("expected estimate 3, got %s", v)
				}
				if v, _ := task.Metadata.Get("done"); v.String() != "true" {
					t.Errorf("expected done stored as JSON text, got %s", v)
				}
			},
		},
		"missing name": {
			rec:     model.RawRecord{ID: "R8", Fields: []model.RawField{field("Col1", "2024-03-15")}},
			s:       mapped,
			wantErr: normalizer.ErrMissingName,
		},
		"blank name": {
			rec:     model.RawRecord{ID: "R9", Fields: []model.RawField{field("name", ""), field("Col1", "2024-03-15")}},
			s:       mapped,
			wantErr: normalizer.ErrMissingName,
		},
		"missing start date": {
			rec:     model.RawRecord{ID: "R10", Fields: []model.RawField{field("name", "Launch"), field("Col1", "someday")}},
			s:       mapped,
			wantErr: normalizer.ErrMissingStartDate,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			task, err := n.Normalize(tc.rec, tc.s)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.check(t, task)
		})
	}
}

func TestNormalizeCustomColumns(t *testing.T) {
	dates, _ := datemath.NewParser("UTC")
	n := normalizer.New(list.ColumnNames{Name: "Task", StartDate: "Begins"}, dates)
	s := schema.Schema{Columns: map[string]string{"Task": "c1", "Begins": "c2"}}

	task, err := n.Normalize(model.RawRecord{ID: "R1", Fields: []model.RawField{
		field("c1", "Custom"), field("c2", "March 15, 2024"),
	}}, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Name != "Custom" || task.StartDate != date(2024, 3, 15) {
		t.Errorf("unexpected task: %+v", task)
	}
}
