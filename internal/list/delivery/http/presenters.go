package http

import (
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"list-timeline/internal/list"
	"list-timeline/internal/model"
	"list-timeline/pkg/response"
)

const (
	uncategorized    = "Uncategorized"
	defaultTaskColor = "#3498db"
)

var colorPalette = []string{
	"#3498db",
	"#e74c3c",
	"#2ecc71",
	"#9b59b6",
	"#f39c12",
	"#1abc9c",
	"#e91e63",
	"#00bcd4",
}

// --- Request DTOs ---

type viewReq struct {
	GroupBy    string `form:"group_by"`
	ShowPast   *bool  `form:"show_past"`
	Categories string `form:"categories"`
}

func (r viewReq) showPast() bool {
	return r.ShowPast == nil || *r.ShowPast
}

func (r viewReq) activeCategories() map[string]bool {
	if strings.TrimSpace(r.Categories) == "" {
		return nil
	}
	active := make(map[string]bool)
	for _, c := range strings.Split(r.Categories, ",") {
		if c = strings.TrimSpace(c); c != "" {
			active[c] = true
		}
	}
	return active
}

type tasksReq struct {
	ListID     string `form:"-"`
	Refresh    bool   `form:"refresh"`
	GroupBy    string `form:"group_by"`
	ShowPast   *bool  `form:"show_past"`
	Categories string `form:"categories"`
}

func (r tasksReq) validate() error {
	if r.ListID == "" {
		return errListIDRequired
	}
	return nil
}

func (r tasksReq) toInput() list.FetchInput {
	return list.FetchInput{ListID: r.ListID, ForceRefresh: r.Refresh}
}

func (r tasksReq) view() viewReq {
	return viewReq{GroupBy: r.GroupBy, ShowPast: r.ShowPast, Categories: r.Categories}
}

type multiTasksReq struct {
	ListIDs    string `form:"list_ids"`
	Refresh    bool   `form:"refresh"`
	GroupBy    string `form:"group_by"`
	ShowPast   *bool  `form:"show_past"`
	Categories string `form:"categories"`
}

func (r multiTasksReq) ids() []string {
	var ids []string
	for _, id := range strings.Split(r.ListIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r multiTasksReq) validate() error {
	if len(r.ids()) == 0 {
		return errListIDRequired
	}
	return nil
}

func (r multiTasksReq) toInput() list.FetchMultiInput {
	return list.FetchMultiInput{ListIDs: r.ids(), ForceRefresh: r.Refresh}
}

func (r multiTasksReq) view() viewReq {
	return viewReq{GroupBy: r.GroupBy, ShowPast: r.ShowPast, Categories: r.Categories}
}

type schemaReq struct {
	ListID  string `form:"-"`
	Refresh bool   `form:"refresh"`
}

func (r schemaReq) validate() error {
	if r.ListID == "" {
		return errListIDRequired
	}
	return nil
}

func (r schemaReq) toInput() list.SchemaInput {
	return list.SchemaInput{ListID: r.ListID, ForceRefresh: r.Refresh}
}

// --- Response DTOs ---

type taskResp struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	StartDate      civil.Date     `json:"start_date"`
	EndDate        civil.Date     `json:"end_date"`
	DurationDays   int            `json:"duration_days"`
	Category       string         `json:"category"`
	Color          string         `json:"color"`
	IsPast         bool           `json:"is_past"`
	SourceListID   string         `json:"source_list_id,omitempty"`
	SourceListName string         `json:"source_list_name,omitempty"`
	Metadata       model.Metadata `json:"metadata"`
}

type groupResp struct {
	Name      string     `json:"name"`
	StartDate civil.Date `json:"start_date"`
	EndDate   civil.Date `json:"end_date"`
	TaskIDs   []string   `json:"task_ids"`
}

type tasksResp struct {
	Title          string            `json:"title,omitempty"`
	Description    string            `json:"description,omitempty"`
	Status         string            `json:"status"`
	Error          string            `json:"error,omitempty"`
	FetchedAt      response.DateTime `json:"fetched_at"`
	Count          int               `json:"count"`
	Tasks          []taskResp        `json:"tasks"`
	Categories     []string          `json:"categories"`
	CategoryColors map[string]string `json:"category_colors"`
	Groups         []groupResp       `json:"groups,omitempty"`
	ListNames      map[string]string `json:"list_names,omitempty"`
}

type infoResp struct {
	ListID      string `json:"list_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func newInfoResp(listID string, out list.ListInfoOutput) infoResp {
	return infoResp{
		ListID:      listID,
		Title:       out.Info.Title,
		Description: out.Info.Description,
	}
}

type schemaResp struct {
	ListID       string            `json:"list_id"`
	Source       string            `json:"source"`
	Columns      map[string]string `json:"columns"`
	Options      map[string]string `json:"options"`
	DiscoveredAt response.DateTime `json:"discovered_at"`
}

func newSchemaResp(out list.SchemaOutput) schemaResp {
	return schemaResp{
		ListID:       out.ListID,
		Source:       out.Source,
		Columns:      out.Columns,
		Options:      out.Options,
		DiscoveredAt: response.DateTime(out.DiscoveredAt),
	}
}

// newTasksResp filters tasks for the view and colors them. Categories and colors are
// computed over all tasks so they stay stable while filters change.
func (h *handler) newTasksResp(tasks []model.Task, status list.FetchStatus, fetchedAt time.Time, fetchErr error, view viewReq) tasksResp {
	today := h.dates.Today(h.now())

	categories := displayCategories(tasks)
	colors := h.assignColors(categories)
	active := view.activeCategories()

	var shown []model.Task
	for _, t := range tasks {
		cat := displayCategory(t)
		if active != nil && !active[cat] {
			continue
		}
		if !view.showPast() && t.IsPast(today) {
			continue
		}
		shown = append(shown, t)
	}

	resp := tasksResp{
		Status:         string(status),
		FetchedAt:      response.DateTime(fetchedAt),
		Count:          len(shown),
		Tasks:          make([]taskResp, 0, len(shown)),
		Categories:     categories,
		CategoryColors: colors,
	}
	if fetchErr != nil {
		resp.Error = fetchErr.Error()
	}

	for _, t := range shown {
		resp.Tasks = append(resp.Tasks, taskResp{
			ID:             t.ID,
			Name:           t.Name,
			StartDate:      t.StartDate,
			EndDate:        t.EndDate,
			DurationDays:   t.DurationDays(),
			Category:       displayCategory(t),
			Color:          h.colorOf(t, colors),
			IsPast:         t.IsPast(today),
			SourceListID:   t.SourceListID,
			SourceListName: t.SourceListName,
			Metadata:       t.Metadata,
		})
	}

	if view.GroupBy != "" {
		for _, g := range model.GroupTasks(shown, view.GroupBy) {
			start, _ := g.StartDate()
			end, _ := g.EndDate()
			ids := make([]string, len(g.Tasks))
			for i, t := range g.Tasks {
				ids[i] = t.ID
			}
			resp.Groups = append(resp.Groups, groupResp{Name: g.Name, StartDate: start, EndDate: end, TaskIDs: ids})
		}
	}
	return resp
}

// assignColors uses configured colors first and hands out palette colors to the rest in
// sorted category order.
func (h *handler) assignColors(categories []string) map[string]string {
	colors := make(map[string]string, len(categories))
	next := 0
	for _, c := range categories {
		if configured, ok := h.cfg.CategoryColors[c]; ok {
			colors[c] = configured
			continue
		}
		colors[c] = colorPalette[next%len(colorPalette)]
		next++
	}
	return colors
}

// colorOf prefers the category color, then the task's own "color" metadata. Uncategorized
// tasks fall back to the palette color of the "Uncategorized" bucket.
func (h *handler) colorOf(t model.Task, colors map[string]string) string {
	if t.Category == "" {
		fallback, ok := colors[uncategorized]
		if !ok {
			fallback = h.cfg.DefaultColor
		}
		return t.Color(nil, fallback)
	}
	return t.Color(colors, h.cfg.DefaultColor)
}

func displayCategory(t model.Task) string {
	if t.Category == "" {
		return uncategorized
	}
	return t.Category
}

func displayCategories(tasks []model.Task) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range tasks {
		c := displayCategory(t)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
