package http

import (
	"github.com/gin-gonic/gin"

	"list-timeline/pkg/response"
)

// Tasks godoc
// @Summary     Get the tasks of a list
// @Description Returns normalized, sorted tasks of one Slack List. Cached for the configured TTL unless refresh=true.
// @Description status tells whether tasks are fresh, cached, stale (served after a failed fetch) or failed.
// @Tags        Lists
// @Produce     json
// @Param       list_id    path  string true  "Slack List ID"
// @Param       refresh    query bool   false "Bypass the cache and rediscover the schema"
// @Param       group_by   query string false "Metadata key to group tasks by"
// @Param       show_past  query bool   false "Include tasks that ended before today (default: true)"
// @Param       categories query string false "Comma-separated categories to keep"
// @Success     200 {object} tasksResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Router      /api/v1/lists/{list_id}/tasks [GET]
func (h *handler) Tasks(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTasksReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Fetch(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Fetch: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	info, err := h.uc.GetListInfo(ctx, req.ListID)
	if err != nil {
		h.l.Warnf(ctx, "uc.GetListInfo: %v", err)
	}

	resp := h.newTasksResp(output.Tasks, output.Status, output.FetchedAt, output.Err, req.view())
	resp.Title = info.Info.Title
	resp.Description = info.Info.Description
	response.OK(c, resp)
}

// MultiTasks godoc
// @Summary     Get the merged tasks of several lists
// @Description Fetches each list in turn and merges the tasks. Each task carries its source list; the first list wins duplicate task ids.
// @Tags        Lists
// @Produce     json
// @Param       list_ids   query string true  "Comma-separated Slack List IDs"
// @Param       refresh    query bool   false "Bypass the cache"
// @Param       group_by   query string false "Metadata key to group tasks by"
// @Param       show_past  query bool   false "Include tasks that ended before today (default: true)"
// @Param       categories query string false "Comma-separated categories to keep"
// @Success     200 {object} tasksResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Router      /api/v1/tasks [GET]
func (h *handler) MultiTasks(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processMultiTasksReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.FetchMulti(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.FetchMulti: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	resp := h.newTasksResp(output.Tasks, output.Status, output.FetchedAt, nil, req.view())
	resp.ListNames = output.ListNames
	response.OK(c, resp)
}

// Info godoc
// @Summary     Get list title and description
// @Tags        Lists
// @Produce     json
// @Param       list_id path string true "Slack List ID"
// @Success     200 {object} infoResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/lists/{list_id}/info [GET]
func (h *handler) Info(c *gin.Context) {
	ctx := c.Request.Context()

	listID := c.Param("list_id")
	output, err := h.uc.GetListInfo(ctx, listID)
	if err != nil {
		h.l.Errorf(ctx, "uc.GetListInfo: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newInfoResp(listID, output))
}

// Schema godoc
// @Summary     Get the discovered schema of a list
// @Description Shows which field key backs each column and the known option labels.
// @Tags        Lists
// @Produce     json
// @Param       list_id path  string true  "Slack List ID"
// @Param       refresh query bool   false "Discard the cached schema and discover again"
// @Success     200 {object} schemaResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Slack token is not configured"
// @Router      /api/v1/lists/{list_id}/schema [GET]
func (h *handler) Schema(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSchemaReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Schema(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Schema: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newSchemaResp(output))
}

// ClearCache godoc
// @Summary     Clear cached tasks
// @Description Drops cached tasks of one list, or of every list when list_id is omitted.
// @Tags        Lists
// @Produce     json
// @Param       list_id query string false "Slack List ID"
// @Success     200 {object} response.Resp "OK"
// @Router      /api/v1/cache [DELETE]
func (h *handler) ClearCache(c *gin.Context) {
	ctx := c.Request.Context()

	listID := c.Query("list_id")
	h.uc.ClearCache(ctx, listID)

	response.OK(c, gin.H{"cleared": listIDOrAll(listID)})
}

func listIDOrAll(listID string) string {
	if listID == "" {
		return "all"
	}
	return listID
}
