package slack_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"list-timeline/internal/list"
	"list-timeline/internal/list/repository"
	"list-timeline/internal/list/repository/slack"
	pkgLog "list-timeline/pkg/log"
	"list-timeline/pkg/slacklists"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/slackLists.items.list", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"ok": true,
			"items": []map[string]any{
				{"id": "Rec1", "fields": []map[string]any{
					{"key": "name", "value": "Launch", "text": "Launch"},
					{"column_id": "Col1", "value": "2024-03-15"},
					{"key": "Col2", "value": []string{"OptA", "OptB"}},
					{"key": "Col3", "value": 3},
				}},
			},
		})
	})
	mux.HandleFunc("/slackLists.items.info", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["id"] != "Rec1" {
			writeJSON(w, map[string]any{"ok": false, "error": "item_not_found"})
			return
		}
		writeJSON(w, map[string]any{
			"ok": true,
			"list": map[string]any{
				"id":          "F1",
				"title":       "Roadmap",
				"description": "Q1 plan",
				"list_metadata": map[string]any{
					"schema": []map[string]any{
						{"id": "Col0", "key": "name", "name": "Name", "type": "text"},
						{"id": "Col2", "name": "category", "type": "multi_select",
							"options": map[string]any{"choices": []map[string]any{
								{"value": "OptA", "label": "Students"},
								{"value": "OptB", "label": "Staff"},
							}}},
					},
				},
			},
			"record": map[string]any{"id": "Rec1"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newRepo(url, token string) repository.SourceRepository {
	client := slacklists.NewClient(slacklists.Config{
		BaseURL:    url,
		Token:      token,
		Timeout:    2 * time.Second,
		RetryCount: -1,
	})
	return slack.New(client, pkgLog.NewNop())
}

func TestSlackRepository(t *testing.T) {
	srv := newServer(t)
	repo := newRepo(srv.URL, "xoxp-test")
	ctx := context.Background()

	t.Run("Ready", func(t *testing.T) {
		if err := repo.Ready(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("FetchRecords", func(t *testing.T) {
		records, err := repo.FetchRecords(ctx, "F1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 || records[0].ID != "Rec1" {
			t.Fatalf("unexpected records: %+v", records)
		}
		fields := records[0].Fields
		if fields[0].Key != "name" || fields[0].Value != "Launch" || fields[0].Text != "Launch" {
			t.Errorf("unexpected name field: %+v", fields[0])
		}
		if fields[1].Key != "Col1" {
			t.Errorf("expected column id to back an empty key, got %q", fields[1].Key)
		}
		opts, ok := fields[2].Value.([]any)
		if !ok || len(opts) != 2 || opts[0] != "OptA" {
			t.Errorf("expected decoded option list, got %#v", fields[2].Value)
		}
		if fields[3].Value != float64(3) {
			t.Errorf("expected decoded number, got %#v", fields[3].Value)
		}
	})

	t.Run("FetchListMetadata with sample", func(t *testing.T) {
		meta, err := repo.FetchListMetadata(ctx, repository.ListMetadataOptions{ListID: "F1", SampleRecordID: "Rec1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta.Title != "Roadmap" || meta.Description != "Q1 plan" {
			t.Errorf("unexpected info: %+v", meta)
		}
		if len(meta.Columns) != 2 {
			t.Fatalf("expected 2 columns, got %d", len(meta.Columns))
		}
		cat := meta.Columns[1]
		if cat.Key != "Col2" || cat.Type != "multi_select" || len(cat.Options) != 2 || cat.Options[1].Label != "Staff" {
			t.Errorf("unexpected category column: %+v", cat)
		}
	})

	t.Run("FetchListMetadata without sample", func(t *testing.T) {
		meta, err := repo.FetchListMetadata(ctx, repository.ListMetadataOptions{ListID: "F1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta.Title != "Roadmap" {
			t.Errorf("expected title Roadmap, got %q", meta.Title)
		}
	})

	t.Run("FetchListMetadata unknown item", func(t *testing.T) {
		_, err := repo.FetchListMetadata(ctx, repository.ListMetadataOptions{ListID: "F1", SampleRecordID: "RecX"})
		var apiErr *slacklists.APIError
		if !errors.As(err, &apiErr) || apiErr.Code != "item_not_found" {
			t.Errorf("expected item_not_found API error, got %v", err)
		}
	})
}

func TestSlackRepositoryMissingToken(t *testing.T) {
	repo := newRepo("http://127.0.0.1:1", "")
	if err := repo.Ready(); !errors.Is(err, list.ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
	if _, err := repo.FetchRecords(context.Background(), "F1"); err == nil {
		t.Error("expected error without token")
	}
}
