package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/alertmgr/backend/internal/domain/ports"
	"github.com/alertmgr/backend/pkg/alerting"
	"github.com/alertmgr/backend/pkg/auth"
	"github.com/alertmgr/backend/pkg/constants"
	apperrors "github.com/alertmgr/backend/pkg/errors"
	"github.com/alertmgr/backend/pkg/filterstate"
	"github.com/alertmgr/backend/pkg/models"
	"github.com/alertmgr/backend/pkg/schedule"
)

// AlertDetail is an alert with its display title and decoded schedule
type AlertDetail struct {
	Alert              models.Alert   `json:"alert"`
	Title              string         `json:"title"`
	IsCurrentUserOwner bool           `json:"is_current_user_owner"`
	Schedule           schedule.State `json:"schedule"`
	NextRun            *time.Time     `json:"next_run,omitempty"`
}

// EvaluateRequest previews an alert condition against sample values
type EvaluateRequest struct {
	ComparisonType constants.ComparisonType `json:"comparison_type" binding:"required"`
	Threshold      float64                  `json:"threshold"`
	Value          float64                  `json:"value"`
	Previous       *float64                 `json:"previous,omitempty"`
}

type EvaluateResult struct {
	Fires     bool   `json:"fires"`
	Condition string `json:"condition"`
	Operator  string `json:"operator"`
}

type AlertService struct {
	store     ports.AlertStore
	bi        ports.BIPlatform
	evaluator *alerting.Evaluator
	timezone  string
	now       func() time.Time
	logger    zerolog.Logger
}

func NewAlertService(store ports.AlertStore, bi ports.BIPlatform, evaluator *alerting.Evaluator, logger zerolog.Logger) *AlertService {
	return &AlertService{
		store:     store,
		bi:        bi,
		evaluator: evaluator,
		timezone:  constants.DefaultTimezone,
		now:       time.Now,
		logger:    logger.With().Str("component", "alert_service").Logger(),
	}
}

// ListGrouped returns the alerts the user owns or follows, grouped by dashboard
func (s *AlertService) ListGrouped(ctx context.Context, user *auth.UserSession) ([]models.DashboardAlerts, error) {
	all, err := s.store.ListAlerts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	visible := make([]models.Alert, 0, len(all))
	for _, a := range all {
		if a.OwnerID == user.ID || slices.Contains(a.Followers, user.ID) {
			visible = append(visible, a)
		}
	}

	groups := alerting.GroupByDashboard(visible, user.ID)
	if groups == nil {
		groups = []models.DashboardAlerts{}
	}
	s.logger.Debug().Str("user_id", user.ID).Int("alerts", len(visible)).Int("dashboards", len(groups)).Msg("listed alerts")
	return groups, nil
}

// GetAlert returns one alert with its title, schedule and next run time
func (s *AlertService) GetAlert(ctx context.Context, user *auth.UserSession, id string) (AlertDetail, error) {
	alert, err := s.store.GetAlert(ctx, id)
	if err != nil {
		return AlertDetail{}, err
	}

	detail := AlertDetail{
		Alert:              alert,
		Title:              alerting.Title(alert, ""),
		IsCurrentUserOwner: alert.OwnerID == user.ID,
		Schedule:           schedule.FromCron(alert.Cron),
	}
	if next, err := schedule.NextRun(alert.Cron, s.now(), s.timezone); err == nil {
		detail.NextRun = &next
	} else {
		s.logger.Warn().Err(err).Str("alert_id", id).Str("cron", alert.Cron).Msg("alert has an unschedulable cron")
	}
	return detail, nil
}

// Related splits the other alerts of the same dashboard by whether their
// saved filters equal this alert's filters
func (s *AlertService) Related(ctx context.Context, id string) (alerting.Partition, error) {
	alert, err := s.store.GetAlert(ctx, id)
	if err != nil {
		return alerting.Partition{}, err
	}
	if alert.Source.DashboardID == "" {
		return alerting.Partition{Matching: []models.Alert{}, Rest: []models.Alert{}}, nil
	}

	siblings, err := s.store.ListAlerts(ctx, alert.Source.DashboardID)
	if err != nil {
		return alerting.Partition{}, fmt.Errorf("list alerts of dashboard %s: %w", alert.Source.DashboardID, err)
	}
	current := filterstate.FromAppliedFilters(alert.AppliedDashboardFilters)
	return alerting.PartitionByFilter(alert.ID, current, siblings), nil
}

// Evaluate reports whether an alert with the given comparison would fire
func (s *AlertService) Evaluate(req EvaluateRequest) (EvaluateResult, error) {
	condition, ok := alerting.Condition(req.ComparisonType)
	if !ok {
		return EvaluateResult{}, apperrors.NewValidationError("comparison_type", "unsupported comparison type "+string(req.ComparisonType))
	}
	fires, err := s.evaluator.Evaluate(req.ComparisonType, req.Threshold, alerting.Sample{
		Value:    req.Value,
		Previous: req.Previous,
	})
	if err != nil {
		return EvaluateResult{}, err
	}
	return EvaluateResult{
		Fires:     fires,
		Condition: condition,
		Operator:  alerting.Operator(req.ComparisonType),
	}, nil
}

// Integrations lists the notification integrations an alert can use
func (s *AlertService) Integrations(ctx context.Context) ([]models.Integration, error) {
	all, err := s.bi.ListIntegrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	return alerting.NotificationIntegrations(all), nil
}
