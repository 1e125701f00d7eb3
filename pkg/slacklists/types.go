package slacklists

import (
	"encoding/json"
	"time"
)

// Config configures the Slack Lists HTTP client.
type Config struct {
	BaseURL       string        // defaults to DefaultBaseURL
	Token         string        // user OAuth token (xoxp-...) with lists:read
	Timeout       time.Duration // per request
	RatePerMinute int           // outbound request budget, 0 disables throttling
	RetryCount    int           // retries on 429/5xx

	DownloadPollAttempts int
	DownloadPollInterval time.Duration
}

// ---- Request/Response types scoped to this package ----

type baseResponse struct {
	OK               bool   `json:"ok"`
	Error            string `json:"error,omitempty"`
	ResponseMetadata struct {
		NextCursor string   `json:"next_cursor,omitempty"`
		Messages   []string `json:"messages,omitempty"`
	} `json:"response_metadata"`
}

func (r *baseResponse) status() (bool, string) { return r.OK, r.Error }

// Item is one row of a Slack List.
type Item struct {
	ID               string  `json:"id"`
	ListID           string  `json:"list_id"`
	DateCreated      int64   `json:"date_created"`
	CreatedBy        string  `json:"created_by"`
	UpdatedTimestamp string  `json:"updated_timestamp"`
	Fields           []Field `json:"fields"`
}

// Field is a single cell of an Item. Value is kept raw because its shape depends on the
// column type (string, list of option ids, rich_text blocks, ...).
type Field struct {
	Key      string          `json:"key"`
	ColumnID string          `json:"column_id"`
	Value    json.RawMessage `json:"value"`
	Text     string          `json:"text,omitempty"`
}

// List is the list object returned alongside item info.
type List struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ListMetadata ListMetadata `json:"list_metadata"`
}

// ListMetadata carries the column schema of a list.
type ListMetadata struct {
	Schema      []Column `json:"schema"`
	Description string   `json:"description"`
}

// Column describes one list column.
type Column struct {
	ID        string         `json:"id"`
	Key       string         `json:"key"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	IsPrimary bool           `json:"is_primary_column"`
	Options   *ColumnOptions `json:"options,omitempty"`
}

// ColumnOptions holds the choices of select-type columns.
type ColumnOptions struct {
	Choices []Choice `json:"choices"`
}

// Choice is one selectable option.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// ItemInfo is the slackLists.items.info payload.
type ItemInfo struct {
	List   List `json:"list"`
	Record Item `json:"record"`
}

// DownloadStatus is the slackLists.download.get payload.
type DownloadStatus struct {
	JobID       string `json:"job_id"`
	Status      string `json:"status"`
	DownloadURL string `json:"download_url"`
}

// Export is a parsed CSV export: headers plus one map per row keyed by header.
type Export struct {
	Columns []string
	Rows    []map[string]string
}

type itemsListRequest struct {
	ListID string `json:"list_id"`
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

type itemsListResponse struct {
	baseResponse
	Items []Item `json:"items"`
}

type itemInfoRequest struct {
	ListID string `json:"list_id"`
	ID     string `json:"id"`
}

type itemInfoResponse struct {
	baseResponse
	ItemInfo
}

type downloadStartRequest struct {
	ListID string `json:"list_id"`
}

type downloadStartResponse struct {
	baseResponse
	JobID string `json:"job_id"`
}

type downloadGetRequest struct {
	ListID string `json:"list_id"`
	JobID  string `json:"job_id"`
}

type downloadGetResponse struct {
	baseResponse
	DownloadStatus
}
