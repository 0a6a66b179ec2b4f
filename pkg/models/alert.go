package models

import (
	"time"

	"github.com/alertmgr/backend/pkg/constants"
)

// AppliedDashboardFilter binds one dashboard filter to a value for an alert.
// FilterValue is nil when the platform sent null or omitted it.
type AppliedDashboardFilter struct {
	FilterTitle       string  `json:"filter_title,omitempty"`
	FieldName         string  `json:"field_name,omitempty"`
	FilterValue       *string `json:"filter_value"`
	FilterDescription string  `json:"filter_description,omitempty"`
}

// AlertFieldFilter pins one pivot level of the alert field
type AlertFieldFilter struct {
	FieldName   string `json:"field_name,omitempty"`
	FieldValue  string `json:"field_value,omitempty"`
	FilterValue string `json:"filter_value"`
}

// AlertField is the measure an alert compares against its threshold
type AlertField struct {
	Title  string             `json:"title,omitempty"`
	Name   string             `json:"name"`
	Filter []AlertFieldFilter `json:"filter,omitempty"`
}

// AlertDestination is a notification target
type AlertDestination struct {
	DestinationType         constants.DestinationType `json:"destination_type"`
	EmailAddress            string                    `json:"email_address,omitempty"`
	ActionHubIntegrationID  string                    `json:"action_hub_integration_id,omitempty"`
	ActionHubFormParamsJSON string                    `json:"action_hub_form_params_json,omitempty"`
}

// AlertSource locates the dashboard tile and query an alert was created from
type AlertSource struct {
	DashboardID    string `json:"dashboard_id"`
	DashboardTitle string `json:"dashboard_title"`
	DashboardURL   string `json:"dashboard_url,omitempty"`
	QuerySlug      string `json:"query_slug"`
	Model          string `json:"model"`
	View           string `json:"view"`
}

// Alert is a persisted rule comparing a measure against a threshold on a schedule
type Alert struct {
	ID                      string                   `json:"id,omitempty"`
	OwnerID                 string                   `json:"owner_id"`
	CustomTitle             string                   `json:"custom_title,omitempty"`
	ComparisonType          constants.ComparisonType `json:"comparison_type"`
	Threshold               *float64                 `json:"threshold"`
	Cron                    string                   `json:"cron"`
	Field                   AlertField               `json:"field"`
	AppliedDashboardFilters []AppliedDashboardFilter `json:"applied_dashboard_filters"`
	Destinations            []AlertDestination       `json:"destinations"`
	Followers               []string                 `json:"followers,omitempty"`
	Source                  AlertSource              `json:"source"`
	CreatedAt               time.Time                `json:"created_at"`
	UpdatedAt               time.Time                `json:"updated_at"`
}

// Clone returns a deep copy so callers can rewrite slices without aliasing the original
func (a Alert) Clone() Alert {
	out := a
	if a.Threshold != nil {
		v := *a.Threshold
		out.Threshold = &v
	}
	out.Field.Filter = append([]AlertFieldFilter(nil), a.Field.Filter...)
	out.AppliedDashboardFilters = make([]AppliedDashboardFilter, len(a.AppliedDashboardFilters))
	for i, f := range a.AppliedDashboardFilters {
		if f.FilterValue != nil {
			v := *f.FilterValue
			f.FilterValue = &v
		}
		out.AppliedDashboardFilters[i] = f
	}
	out.Destinations = append([]AlertDestination(nil), a.Destinations...)
	out.Followers = append([]string(nil), a.Followers...)
	return out
}

// DashboardAlerts groups the alerts of one dashboard
type DashboardAlerts struct {
	DashboardID    string         `json:"dashboard_id"`
	DashboardTitle string         `json:"dashboard_title"`
	Alerts         []AlertSummary `json:"alerts"`
}

// AlertSummary is an alert annotated for the current viewer
type AlertSummary struct {
	Alert              Alert  `json:"alert"`
	Title              string `json:"title"`
	IsCurrentUserOwner bool   `json:"is_current_user_owner"`
}

// Integration is a notification integration offered by the BI platform
type Integration struct {
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`
	Enabled bool   `json:"enabled"`
}
