package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// processTasksReq binds the single-list task query.
func (h *handler) processTasksReq(c *gin.Context) (tasksReq, error) {
	var req tasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	req.ListID = strings.TrimSpace(c.Param("list_id"))
	return req, req.validate()
}

// processMultiTasksReq binds the multi-list task query.
func (h *handler) processMultiTasksReq(c *gin.Context) (multiTasksReq, error) {
	var req multiTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processSchemaReq binds the schema query.
func (h *handler) processSchemaReq(c *gin.Context) (schemaReq, error) {
	var req schemaReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	req.ListID = strings.TrimSpace(c.Param("list_id"))
	return req, req.validate()
}
