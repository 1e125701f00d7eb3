package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"list-timeline/internal/list"
	"list-timeline/pkg/datemath"
	"list-timeline/pkg/log"
)

// Config holds presentation settings of the timeline endpoints.
type Config struct {
	CategoryColors map[string]string // category label -> color, palette used for the rest
	DefaultColor   string
}

// Handler is the public interface for the timeline HTTP delivery layer.
type Handler interface {
	Tasks(c *gin.Context)
	MultiTasks(c *gin.Context)
	Info(c *gin.Context)
	Schema(c *gin.Context)
	ClearCache(c *gin.Context)
}

type handler struct {
	l     log.Logger
	uc    list.UseCase
	dates *datemath.Parser
	cfg   Config
	now   func() time.Time
}

// New creates a new HTTP handler for the list domain.
func New(l log.Logger, uc list.UseCase, dates *datemath.Parser, cfg Config) *handler {
	if cfg.DefaultColor == "" {
		cfg.DefaultColor = defaultTaskColor
	}
	return &handler{
		l:     l,
		uc:    uc,
		dates: dates,
		cfg:   cfg,
		now:   time.Now,
	}
}
