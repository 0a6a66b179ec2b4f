package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alertmgr/backend/internal/application/services"
	"github.com/alertmgr/backend/pkg/auth"
	"github.com/alertmgr/backend/pkg/constants"
	"github.com/alertmgr/backend/pkg/errors"
)

// EditingService defines the filter editing operations used by EditingHandler
type EditingService interface {
	Start(ctx context.Context, user *auth.UserSession, alertID string) (services.EditingState, error)
	State(user *auth.UserSession, alertID string) (services.EditingState, error)
	ApplyFilters(user *auth.UserSession, alertID, absoluteURL string) (services.EditingState, error)
	Reset(user *auth.UserSession, alertID string) (services.EditingState, error)
	Save(ctx context.Context, user *auth.UserSession, alertID string) (services.SaveOutcome, error)
	Discard(user *auth.UserSession, alertID string) bool
}

// FilterChangeRequest carries the dashboard URL after a filter change
type FilterChangeRequest struct {
	AbsoluteURL string `json:"absolute_url" binding:"required"`
}

type EditingHandler struct {
	svc EditingService
}

func NewEditingHandler(svc EditingService) *EditingHandler {
	return &EditingHandler{svc: svc}
}

// Start handles POST /api/alerts/:id/editing
func (h *EditingHandler) Start(c *gin.Context) {
	user := requireUser(c)
	if user == nil {
		return
	}
	HandleGetEnvelope(c, "editing", func() (services.EditingState, error) {
		return h.svc.Start(c.Request.Context(), user, c.Param("id"))
	})
}

// State handles GET /api/alerts/:id/editing
func (h *EditingHandler) State(c *gin.Context) {
	user := requireUser(c)
	if user == nil {
		return
	}
	HandleGetEnvelope(c, "editing", func() (services.EditingState, error) {
		return h.svc.State(user, c.Param("id"))
	})
}

// ApplyFilters handles POST /api/alerts/:id/editing/filters
func (h *EditingHandler) ApplyFilters(c *gin.Context) {
	user := requireUser(c)
	if user == nil {
		return
	}
	var req FilterChangeRequest
	if !BindJSON(c, &req) {
		return
	}
	HandleGetEnvelope(c, "editing", func() (services.EditingState, error) {
		return h.svc.ApplyFilters(user, c.Param("id"), req.AbsoluteURL)
	})
}

// Reset handles POST /api/alerts/:id/editing/reset
func (h *EditingHandler) Reset(c *gin.Context) {
	user := requireUser(c)
	if user == nil {
		return
	}
	HandleGetEnvelope(c, "editing", func() (services.EditingState, error) {
		return h.svc.Reset(user, c.Param("id"))
	})
}

// Save handles POST /api/alerts/:id/editing/save. A failed persist is reported
// with success=false and status 502.
func (h *EditingHandler) Save(c *gin.Context) {
	user := requireUser(c)
	if user == nil {
		return
	}
	outcome, err := h.svc.Save(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"result": outcome})
}

// Discard handles DELETE /api/alerts/:id/editing
func (h *EditingHandler) Discard(c *gin.Context) {
	user := requireUser(c)
	if user == nil {
		return
	}
	id := c.Param("id")
	if !h.svc.Discard(user, id) {
		RespondAppError(c, errors.NewNotFoundError("Editing session", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.ResponseMessage: "Editing session discarded"})
}
