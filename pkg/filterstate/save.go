package filterstate

import (
	"context"

	"github.com/alertmgr/backend/pkg/constants"
	"github.com/alertmgr/backend/pkg/models"
)

// AlertCreator persists a new alert and returns it with its assigned id
type AlertCreator interface {
	CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error)
}

// AlertUpdater persists changes to an existing alert
type AlertUpdater interface {
	UpdateAlert(ctx context.Context, id string, alert models.Alert) (models.Alert, error)
}

// CreatorFunc adapts a function to AlertCreator
type CreatorFunc func(ctx context.Context, alert models.Alert) (models.Alert, error)

func (f CreatorFunc) CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error) {
	return f(ctx, alert)
}

// UpdaterFunc adapts a function to AlertUpdater
type UpdaterFunc func(ctx context.Context, id string, alert models.Alert) (models.Alert, error)

func (f UpdaterFunc) UpdateAlert(ctx context.Context, id string, alert models.Alert) (models.Alert, error) {
	return f(ctx, id, alert)
}

// SaveResult reports the outcome of a persist operation
type SaveResult struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Alert   *models.Alert `json:"alert,omitempty"`
}

// ApplyTo returns a copy of alert whose filter bindings carry the current values,
// matched by title. A binding whose title has no current value gets a nil value.
func (s State) ApplyTo(alert models.Alert) models.Alert {
	out := alert.Clone()
	for i, f := range out.AppliedDashboardFilters {
		if v, ok := s.current[f.FilterTitle]; ok {
			value := v
			out.AppliedDashboardFilters[i].FilterValue = &value
		} else {
			out.AppliedDashboardFilters[i].FilterValue = nil
		}
	}
	return out
}

// CopyAndSave creates a new alert from alert with the current filter values.
// The id is cleared and email destinations other than currentUserEmail are dropped.
func (s State) CopyAndSave(ctx context.Context, creator AlertCreator, alert models.Alert, currentUserEmail string) SaveResult {
	copied := s.ApplyTo(alert)
	copied.ID = ""

	destinations := make([]models.AlertDestination, 0, len(copied.Destinations))
	for _, d := range copied.Destinations {
		if d.DestinationType == constants.DestinationTypeEmail && d.EmailAddress != currentUserEmail {
			continue
		}
		destinations = append(destinations, d)
	}
	copied.Destinations = destinations

	created, err := creator.CreateAlert(ctx, copied)
	if err != nil {
		return SaveResult{Success: false, Error: err.Error()}
	}
	return SaveResult{Success: true, Alert: &created}
}

// Save updates alert in place with the current filter values. On success the
// returned State has its initial snapshot collapsed onto the current mapping.
func (s State) Save(ctx context.Context, updater AlertUpdater, alert models.Alert) (State, SaveResult) {
	updated, err := updater.UpdateAlert(ctx, alert.ID, s.ApplyTo(alert))
	if err != nil {
		return s, SaveResult{Success: false, Error: err.Error()}
	}
	return s.Commit(), SaveResult{Success: true, Alert: &updated}
}
