package rest

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every API handler mounted under /api
type Handlers struct {
	Alerts   *AlertHandler
	Editing  *EditingHandler
	Fields   *FieldHandler
	Schedule *ScheduleHandler
}

// RegisterRoutes mounts the API on api behind requireAuth
func RegisterRoutes(api *gin.RouterGroup, h Handlers, requireAuth gin.HandlerFunc) {
	protected := api.Group("", requireAuth)

	alerts := protected.Group("/alerts")
	{
		alerts.GET("", h.Alerts.List)
		alerts.POST("/evaluate", h.Alerts.Evaluate)
		alerts.GET("/:id", h.Alerts.Get)
		alerts.GET("/:id/related", h.Alerts.Related)

		alerts.POST("/:id/editing", h.Editing.Start)
		alerts.GET("/:id/editing", h.Editing.State)
		alerts.DELETE("/:id/editing", h.Editing.Discard)
		alerts.POST("/:id/editing/filters", h.Editing.ApplyFilters)
		alerts.POST("/:id/editing/reset", h.Editing.Reset)
		alerts.POST("/:id/editing/save", h.Editing.Save)
	}

	protected.GET("/queries/:slug/field-options", h.Fields.Options)
	protected.GET("/integrations", h.Alerts.Integrations)

	sched := protected.Group("/schedule")
	{
		sched.POST("/encode", h.Schedule.Encode)
		sched.POST("/decode", h.Schedule.Decode)
		sched.GET("/options", h.Schedule.Options)
	}
}
