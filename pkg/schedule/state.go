// Package schedule converts between the alert schedule picker state and the
// 5-field cron expressions stored on alerts.
package schedule

// Frequency is the schedule class chosen in the picker
type Frequency string

const (
	FrequencyMinutes Frequency = "minutes"
	FrequencyHourly  Frequency = "hourly"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// State is the structured form of a schedule. Times are "HH:MM"; which fields
// are meaningful depends on Frequency.
type State struct {
	Frequency  Frequency `json:"frequency"`
	Interval   *int      `json:"interval,omitempty"`
	StartHour  string    `json:"startHour,omitempty"`
	EndHour    string    `json:"endHour,omitempty"`
	Time       string    `json:"time,omitempty"`
	DayOfWeek  *int      `json:"dayOfWeek,omitempty"`
	DayOfMonth *int      `json:"dayOfMonth,omitempty"`
}

// Default is the state used for unrecognized cron expressions
func Default() State {
	return State{Frequency: FrequencyDaily, Time: "05:00"}
}

func intPtr(v int) *int {
	return &v
}
