package slacklists_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"list-timeline/pkg/slacklists"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func newTestClient(url string) *slacklists.Client {
	return slacklists.NewClient(slacklists.Config{
		BaseURL:              url,
		Token:                "xoxp-test",
		Timeout:              2 * time.Second,
		RetryCount:           -1,
		DownloadPollAttempts: 3,
		DownloadPollInterval: time.Millisecond,
	})
}

func TestSlackListsClient(t *testing.T) {
	polls := 0
	mux := http.NewServeMux()

	mux.HandleFunc("/slackLists.items.list", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer xoxp-test" {
			writeJSON(w, map[string]any{"ok": false, "error": "not_authed"})
			return
		}
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)

		switch {
		case req["list_id"] == "F_BROKEN":
			writeJSON(w, map[string]any{"ok": false, "error": "list_not_found"})
		case req["cursor"] == nil || req["cursor"] == "":
			writeJSON(w, map[string]any{
				"ok": true,
				"items": []map[string]any{
					{"id": "Rec1", "fields": []map[string]any{
						{"key": "name", "value": `[{"type":"rich_text"}]`, "text": "Task one"},
						{"key": "Col1", "value": "2024-03-15"},
					}},
				},
				"response_metadata": map[string]any{"next_cursor": "page2"},
			})
		default:
			writeJSON(w, map[string]any{
				"ok":    true,
				"items": []map[string]any{{"id": "Rec2", "fields": []map[string]any{{"key": "Col2", "value": []string{"OptA"}}}}},
			})
		}
	})

	mux.HandleFunc("/slackLists.items.info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"ok": true,
			"list": map[string]any{
				"id":   "F1",
				"name": "Roadmap",
				"list_metadata": map[string]any{
					"schema": []map[string]any{
						{"id": "Col0", "key": "name", "name": "Name", "type": "text", "is_primary_column": true},
						{"id": "Col2", "key": "Col2", "name": "category", "type": "select",
							"options": map[string]any{"choices": []map[string]any{{"value": "OptA", "label": "Students"}}}},
					},
				},
			},
			"record": map[string]any{"id": "Rec1"},
		})
	})

	mux.HandleFunc("/slackLists.download.start", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "job_id": "Job1"})
	})

	var serverURL string
	mux.HandleFunc("/slackLists.download.get", func(w http.ResponseWriter, r *http.Request) {
		polls++
		if polls < 2 {
			writeJSON(w, map[string]any{"ok": true, "status": "IN_PROGRESS"})
			return
		}
		writeJSON(w, map[string]any{"ok": true, "status": "COMPLETED", "download_url": serverURL + "/files/export.csv"})
	})

	mux.HandleFunc("/files/export.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("\xef\xbb\xbfName,Start Date,category\nTask one,2024-03-15,Students\nShort row\n"))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()
	serverURL = ts.URL

	client := newTestClient(ts.URL)
	ctx := context.Background()

	t.Run("ListItems follows cursor", func(t *testing.T) {
		items, err := client.ListItems(ctx, "F1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 || items[0].ID != "Rec1" || items[1].ID != "Rec2" {
			t.Fatalf("unexpected items: %+v", items)
		}
		if items[0].Fields[0].Text != "Task one" {
			t.Errorf("expected display text to be kept, got %q", items[0].Fields[0].Text)
		}
		if string(items[0].Fields[1].Value) != `"2024-03-15"` {
			t.Errorf("expected raw value to be kept, got %s", items[0].Fields[1].Value)
		}
	})

	t.Run("ListItems API error", func(t *testing.T) {
		_, err := client.ListItems(ctx, "F_BROKEN")
		var apiErr *slacklists.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Code != "list_not_found" || apiErr.Method != slacklists.MethodItemsList {
			t.Errorf("unexpected api error: %+v", apiErr)
		}
	})

	t.Run("ItemInfo returns schema", func(t *testing.T) {
		info, err := client.ItemInfo(ctx, "F1", "Rec1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.List.Name != "Roadmap" {
			t.Errorf("unexpected list name %q", info.List.Name)
		}
		schema := info.List.ListMetadata.Schema
		if len(schema) != 2 || schema[1].Options == nil || schema[1].Options.Choices[0].Label != "Students" {
			t.Errorf("unexpected schema: %+v", schema)
		}
	})

	t.Run("DownloadExport polls until completed", func(t *testing.T) {
		export, err := client.DownloadExport(ctx, "F1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if polls != 2 {
			t.Errorf("expected 2 polls, got %d", polls)
		}
		if len(export.Columns) != 3 || export.Columns[0] != "Name" {
			t.Errorf("unexpected columns: %v", export.Columns)
		}
		if len(export.Rows) != 2 || export.Rows[0]["category"] != "Students" {
			t.Errorf("unexpected rows: %v", export.Rows)
		}
		if export.Rows[1]["Start Date"] != "" {
			t.Errorf("expected short row to be padded, got %v", export.Rows[1])
		}
	})

	t.Run("Missing token", func(t *testing.T) {
		c := slacklists.NewClient(slacklists.Config{BaseURL: ts.URL})
		if c.HasToken() {
			t.Errorf("expected HasToken false")
		}
		_, err := c.ListItems(ctx, "F1")
		if !errors.Is(err, slacklists.ErrMissingToken) {
			t.Errorf("expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("Server Down", func(t *testing.T) {
		badClient := newTestClient("http://localhost:59999")
		_, err := badClient.ListItems(ctx, "F1")
		if err == nil {
			t.Errorf("expected connection refused error")
		}
	})
}

func TestDownloadExportNeverCompletes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/slackLists.download.start", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "job_id": "Job1"})
	})
	mux.HandleFunc("/slackLists.download.get", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "status": "IN_PROGRESS"})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	_, err := newTestClient(ts.URL).DownloadExport(context.Background(), "F1")
	if !errors.Is(err, slacklists.ErrDownloadPending) {
		t.Errorf("expected ErrDownloadPending, got %v", err)
	}
}

func TestParseExport(t *testing.T) {
	export, err := slacklists.ParseExport(nil)
	if err != nil {
		t.Fatalf("unexpected error on empty export: %v", err)
	}
	if len(export.Columns) != 0 || len(export.Rows) != 0 {
		t.Errorf("expected empty export, got %+v", export)
	}

	_, err = slacklists.ParseExport([]byte("Name,\"broken\nrow"))
	if err == nil {
		t.Errorf("expected error for malformed csv")
	}
}
