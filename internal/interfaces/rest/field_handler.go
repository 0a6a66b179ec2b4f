package rest

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/alertmgr/backend/pkg/queryfields"
)

// FieldService resolves the alertable fields of a saved query
type FieldService interface {
	FieldOptions(ctx context.Context, slug string) (queryfields.PivotFieldOptions, error)
}

type FieldHandler struct {
	svc FieldService
}

func NewFieldHandler(svc FieldService) *FieldHandler {
	return &FieldHandler{svc: svc}
}

// Options handles GET /api/queries/:slug/field-options
func (h *FieldHandler) Options(c *gin.Context) {
	HandleGetEnvelope(c, "field_options", func() (queryfields.PivotFieldOptions, error) {
		return h.svc.FieldOptions(c.Request.Context(), c.Param("slug"))
	})
}
