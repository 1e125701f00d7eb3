package list

import (
	"time"

	"list-timeline/internal/model"
)

// ColumnNames are the human-readable column labels the normalizer looks for.
type ColumnNames struct {
	Name      string
	StartDate string
	EndDate   string
	Notes     string
	Category  string
}

// DefaultColumnNames mirrors the labels of a freshly created Slack List.
func DefaultColumnNames() ColumnNames {
	return ColumnNames{
		Name:      "Name",
		StartDate: "Start Date",
		EndDate:   "End Date",
		Notes:     "notes",
		Category:  "category",
	}
}

// WithDefaults fills empty labels from DefaultColumnNames.
func (c ColumnNames) WithDefaults() ColumnNames {
	def := DefaultColumnNames()
	if c.Name == "" {
		c.Name = def.Name
	}
	if c.StartDate == "" {
		c.StartDate = def.StartDate
	}
	if c.EndDate == "" {
		c.EndDate = def.EndDate
	}
	if c.Notes == "" {
		c.Notes = def.Notes
	}
	if c.Category == "" {
		c.Category = def.Category
	}
	return c
}

// FetchStatus tells callers where a task list came from, so an empty list can be told
// apart from a failed fetch.
type FetchStatus string

const (
	StatusFresh  FetchStatus = "fresh"  // fetched from the remote API on this call
	StatusCached FetchStatus = "cached" // served from cache inside the TTL
	StatusStale  FetchStatus = "stale"  // remote fetch failed, last known good tasks returned
	StatusFailed FetchStatus = "failed" // remote fetch failed and nothing was cached
)

// Worse returns the more degraded of two statuses.
func (s FetchStatus) Worse(other FetchStatus) FetchStatus {
	if statusRank[other] > statusRank[s] {
		return other
	}
	return s
}

var statusRank = map[FetchStatus]int{
	StatusFresh:  0,
	StatusCached: 1,
	StatusStale:  2,
	StatusFailed: 3,
}

// FetchInput is the input for Fetch.
type FetchInput struct {
	ListID       string
	ForceRefresh bool
}

// FetchOutput is the result of Fetch.
type FetchOutput struct {
	Tasks     []model.Task
	Status    FetchStatus
	FetchedAt time.Time // when the returned tasks were fetched from the remote API
	Err       error     // cause of a stale or failed status
}

// FetchMultiInput is the input for FetchMulti.
type FetchMultiInput struct {
	ListIDs      []string
	ForceRefresh bool
}

// FetchMultiOutput is the merged result of FetchMulti.
type FetchMultiOutput struct {
	Tasks     []model.Task
	ListNames map[string]string // list id -> list title
	Status    FetchStatus
	FetchedAt time.Time
}

// ListInfoOutput is the result of GetListInfo.
type ListInfoOutput struct {
	Info model.ListInfo
}

// SchemaInput is the input for Schema.
type SchemaInput struct {
	ListID       string
	ForceRefresh bool
}

// SchemaOutput exposes what discovery learned about a list.
type SchemaOutput struct {
	ListID       string
	Columns      map[string]string // column label -> field key
	Options      map[string]string // option id -> label
	Source       string
	DiscoveredAt time.Time
}
