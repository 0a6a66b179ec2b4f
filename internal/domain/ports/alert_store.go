package ports

import (
	"context"

	"github.com/alertmgr/backend/pkg/models"
)

// AlertStore persists alerts. It satisfies filterstate.AlertCreator and
// filterstate.AlertUpdater.
type AlertStore interface {
	GetAlert(ctx context.Context, id string) (models.Alert, error)

	// ListAlerts returns all alerts, or those of one dashboard when dashboardID is set.
	ListAlerts(ctx context.Context, dashboardID string) ([]models.Alert, error)

	// CreateAlert assigns a new id and timestamps.
	CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error)

	UpdateAlert(ctx context.Context, id string, alert models.Alert) (models.Alert, error)

	// UnfollowAlert removes a user from the alert's followers.
	UnfollowAlert(ctx context.Context, id, userID string) error
}
