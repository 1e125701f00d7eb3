package model

import (
	"sort"

	"cloud.google.com/go/civil"
)

// Well-known metadata keys read by renderers.
const (
	MetaNotes    = "notes"
	MetaGroup    = "group"
	MetaAssignee = "assignee"
	MetaStatus   = "status"
	MetaColor    = "color"

	DefaultGroup = "default"
	OtherGroup   = "Other"
)

// Task is one normalized list record, ready for timeline rendering.
// EndDate defaults to StartDate; EndDate >= StartDate is not guaranteed.
type Task struct {
	ID             string
	Name           string
	StartDate      civil.Date
	EndDate        civil.Date
	Category       string // resolved option label, "" when the record has none
	SourceListID   string
	SourceListName string
	Metadata       Metadata
}

// Group returns the visual grouping key, "default" when unset.
func (t Task) Group() string {
	return t.Metadata.GetString(MetaGroup, DefaultGroup)
}

// Assignee returns the assignee metadata, if any.
func (t Task) Assignee() string {
	return t.Metadata.GetString(MetaAssignee, "")
}

// Status returns the status metadata, if any.
func (t Task) Status() string {
	return t.Metadata.GetString(MetaStatus, "")
}

// Notes returns the decoded notes, if any.
func (t Task) Notes() string {
	return t.Metadata.GetString(MetaNotes, "")
}

// DurationDays is the inclusive length of the task, never less than one day.
func (t Task) DurationDays() int {
	return max(1, t.EndDate.DaysSince(t.StartDate)+1)
}

// IsPast reports whether the task ended before today.
func (t Task) IsPast(today civil.Date) bool {
	return t.EndDate.Before(today)
}

// Color picks the category color from colorMap, then the "color" metadata, then fallback.
func (t Task) Color(colorMap map[string]string, fallback string) string {
	if t.Category != "" {
		if c, ok := colorMap[t.Category]; ok {
			return c
		}
	}
	return t.Metadata.GetString(MetaColor, fallback)
}

// SortTasks orders tasks by start date, then name, then id.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.StartDate != b.StartDate {
			return a.StartDate.Before(b.StartDate)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

// TaskGroup is a derived set of tasks sharing a metadata value.
type TaskGroup struct {
	Name  string
	Tasks []Task
}

// StartDate is the earliest member start; ok is false for an empty group.
func (g TaskGroup) StartDate() (civil.Date, bool) {
	if len(g.Tasks) == 0 {
		return civil.Date{}, false
	}
	start := g.Tasks[0].StartDate
	for _, t := range g.Tasks[1:] {
		if t.StartDate.Before(start) {
			start = t.StartDate
		}
	}
	return start, true
}

// EndDate is the latest member end; ok is false for an empty group.
func (g TaskGroup) EndDate() (civil.Date, bool) {
	if len(g.Tasks) == 0 {
		return civil.Date{}, false
	}
	end := g.Tasks[0].EndDate
	for _, t := range g.Tasks[1:] {
		if t.EndDate.After(end) {
			end = t.EndDate
		}
	}
	return end, true
}

// GroupTasks buckets tasks by the metadata value under groupBy ("Other" when missing).
// Members are ordered by start date and groups by their earliest start.
func GroupTasks(tasks []Task, groupBy string) []TaskGroup {
	index := make(map[string]int)
	var groups []TaskGroup
	for _, t := range tasks {
		name := t.Metadata.GetString(groupBy, OtherGroup)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, TaskGroup{Name: name})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}

	for i := range groups {
		sort.SliceStable(groups[i].Tasks, func(a, b int) bool {
			return groups[i].Tasks[a].StartDate.Before(groups[i].Tasks[b].StartDate)
		})
	}
	sort.SliceStable(groups, func(a, b int) bool {
		sa, _ := groups[a].StartDate()
		sb, _ := groups[b].StartDate()
		return sa.Before(sb)
	})
	return groups
}

// ListInfo is the human-facing description of a list.
type ListInfo struct {
	Title       string
	Description string
}

// Categories returns the sorted unique category labels of tasks.
func Categories(tasks []Task) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range tasks {
		if t.Category == "" {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}
