package http

import (
	"github.com/gin-gonic/gin"

	"list-timeline/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods. Routes that may reach the
// Slack API are rate limited.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	lists := rg.Group("/lists")
	{
		lists.GET("/:list_id/tasks", mw.RateLimit(), h.Tasks)
		lists.GET("/:list_id/info", mw.RateLimit(), h.Info)
		lists.GET("/:list_id/schema", mw.RateLimit(), h.Schema)
	}
	rg.GET("/tasks", mw.RateLimit(), h.MultiTasks)
	rg.DELETE("/cache", h.ClearCache)
}
