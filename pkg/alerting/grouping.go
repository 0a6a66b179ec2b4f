package alerting

import (
	"sort"
	"strings"

	"github.com/alertmgr/backend/pkg/constants"
	"github.com/alertmgr/backend/pkg/filterstate"
	"github.com/alertmgr/backend/pkg/models"
)

// GroupByDashboard groups alerts by their source dashboard, ordered by dashboard
// title. Alerts without a dashboard are left out.
func GroupByDashboard(alerts []models.Alert, currentUserID string) []models.DashboardAlerts {
	index := make(map[string]int)
	var groups []models.DashboardAlerts

	for _, a := range alerts {
		id := a.Source.DashboardID
		if id == "" {
			continue
		}
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, models.DashboardAlerts{
				DashboardID:    id,
				DashboardTitle: a.Source.DashboardTitle,
			})
		}
		groups[i].Alerts = append(groups[i].Alerts, models.AlertSummary{
			Alert:              a,
			Title:              Title(a, ""),
			IsCurrentUserOwner: a.OwnerID == currentUserID,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].DashboardTitle < groups[j].DashboardTitle
	})
	return groups
}

// Partition splits alerts by whether they share the current filter set
type Partition struct {
	Matching []models.Alert `json:"matching_filters"`
	Rest     []models.Alert `json:"rest"`
}

// PartitionByFilter compares each alert's saved filters with current. The alert
// identified by currentID is skipped.
func PartitionByFilter(currentID string, current filterstate.State, alerts []models.Alert) Partition {
	p := Partition{Matching: []models.Alert{}, Rest: []models.Alert{}}
	for _, a := range alerts {
		if a.ID == currentID {
			continue
		}
		if current.Equal(filterstate.FromAppliedFilters(a.AppliedDashboardFilters)) {
			p.Matching = append(p.Matching, a)
		} else {
			p.Rest = append(p.Rest, a)
		}
	}
	return p
}

// NotificationIntegrations keeps the enabled Slack integrations and appends e-mail
func NotificationIntegrations(all []models.Integration) []models.Integration {
	out := make([]models.Integration, 0, len(all)+1)
	for _, i := range all {
		if !i.Enabled {
			continue
		}
		if strings.HasSuffix(i.ID, constants.IntegrationSlackSuffix) || strings.HasSuffix(i.ID, constants.IntegrationSlackLegacySuffix) {
			out = append(out, models.Integration{ID: i.ID, Label: i.Label, Enabled: true})
		}
	}
	return append(out, models.Integration{ID: constants.IntegrationEmail, Label: "Email", Enabled: true})
}
