package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/package-form/internal/middleware"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// PageRoutes serves the HTML form. Every post answers 303 to the page.
type PageRoutes struct {
	handler *FormHandler
}

// NewPageRoutes creates the HTML route group.
func NewPageRoutes(handler *FormHandler) *PageRoutes {
	return &PageRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *PageRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.GET(PagePath, r.handler.Page)

	forms := rg.Group("/package-form")
	forms.POST("/open", r.handler.OpenPage)
	forms.POST("/close", r.handler.ClosePage)
	forms.POST("/select", r.handler.SelectPage)
	forms.POST("/submit", append(submitMiddleware(cfg, false), r.handler.SubmitPage)...)
}

// APIRoutes serves the JSON form API.
type APIRoutes struct {
	handler *FormHandler
}

// NewAPIRoutes creates the JSON route group.
func NewAPIRoutes(handler *FormHandler) *APIRoutes {
	return &APIRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *APIRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	forms := rg.Group("/package-form")
	forms.GET("", r.handler.State)
	forms.DELETE("", r.handler.End)
	forms.POST("/open", r.handler.Open)
	forms.POST("/close", r.handler.Close)
	forms.POST("/select", r.handler.Select)
	forms.POST("/submit", append(submitMiddleware(cfg, true), r.handler.Submit)...)
}

// submitMiddleware guards the routes that reach the package API's create
// endpoint. Only API clients send Idempotency-Key.
func submitMiddleware(cfg *RouterConfig, idempotent bool) []gin.HandlerFunc {
	var chain []gin.HandlerFunc
	if cfg.SubmitLimiter != nil {
		chain = append(chain, cfg.SubmitLimiter.SessionRateLimit())
	}
	if idempotent && cfg.Idempotency.Enabled {
		chain = append(chain, middleware.Idempotency(cfg.Idempotency))
	}
	return chain
}
