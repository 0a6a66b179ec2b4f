package rest

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/alertmgr/backend/internal/application/services"
	"github.com/alertmgr/backend/pkg/alerting"
	"github.com/alertmgr/backend/pkg/auth"
	"github.com/alertmgr/backend/pkg/models"
)

// AlertService defines the alert read operations used by AlertHandler
type AlertService interface {
	ListGrouped(ctx context.Context, user *auth.UserSession) ([]models.DashboardAlerts, error)
	GetAlert(ctx context.Context, user *auth.UserSession, id string) (services.AlertDetail, error)
	Related(ctx context.Context, id string) (alerting.Partition, error)
	Evaluate(req services.EvaluateRequest) (services.EvaluateResult, error)
	Integrations(ctx context.Context) ([]models.Integration, error)
}

type AlertHandler struct {
	svc AlertService
}

func NewAlertHandler(svc AlertService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// List handles GET /api/alerts
func (h *AlertHandler) List(c *gin.Context) {
	user := requireUser(c)
	if user == nil {
		return
	}
	HandleGetEnvelope(c, "dashboards", func() ([]models.DashboardAlerts, error) {
		return h.svc.ListGrouped(c.Request.Context(), user)
	})
}

// Get handles GET /api/alerts/:id
func (h *AlertHandler) Get(c *gin.Context) {
	user := requireUser(c)
	if user == nil {
		return
	}
	HandleGetEnvelope(c, "alert", func() (services.AlertDetail, error) {
		return h.svc.GetAlert(c.Request.Context(), user, c.Param("id"))
	})
}

// Related handles GET /api/alerts/:id/related
func (h *AlertHandler) Related(c *gin.Context) {
	HandleGetEnvelope(c, "related", func() (alerting.Partition, error) {
		return h.svc.Related(c.Request.Context(), c.Param("id"))
	})
}

// Evaluate handles POST /api/alerts/evaluate
func (h *AlertHandler) Evaluate(c *gin.Context) {
	var req services.EvaluateRequest
	if !BindJSON(c, &req) {
		return
	}
	HandleGetEnvelope(c, "evaluation", func() (services.EvaluateResult, error) {
		return h.svc.Evaluate(req)
	})
}

// Integrations handles GET /api/integrations
func (h *AlertHandler) Integrations(c *gin.Context) {
	HandleGetEnvelope(c, "integrations", func() ([]models.Integration, error) {
		return h.svc.Integrations(c.Request.Context())
	})
}
