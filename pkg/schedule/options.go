package schedule

import (
	"fmt"
	"strconv"
)

// Option is a value/label pair offered by the schedule picker
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options bundles every option list of the picker
type Options struct {
	Frequencies     []Option `json:"frequencies"`
	Times           []Option `json:"times"`
	HourlyTimes     []Option `json:"hourly_times"`
	DaysOfWeek      []Option `json:"days_of_week"`
	DaysOfMonth     []Option `json:"days_of_month"`
	MinuteIntervals []Option `json:"minute_intervals"`
}

// PickerOptions returns all option lists with their standard steps
func PickerOptions() Options {
	return Options{
		Frequencies:     FrequencyOptions(),
		Times:           TimeOptions(10),
		HourlyTimes:     TimeOptions(30),
		DaysOfWeek:      DayOfWeekOptions(),
		DaysOfMonth:     DayOfMonthOptions(),
		MinuteIntervals: IntervalOptions(),
	}
}

func FrequencyOptions() []Option {
	return []Option{
		{Value: string(FrequencyMinutes), Label: "Minutes"},
		{Value: string(FrequencyHourly), Label: "Hourly"},
		{Value: string(FrequencyDaily), Label: "Daily"},
		{Value: string(FrequencyWeekly), Label: "Weekly"},
		{Value: string(FrequencyMonthly), Label: "Monthly"},
	}
}

// TimeOptions lists the times of a day every stepMinutes minutes, starting at 00:00
func TimeOptions(stepMinutes int) []Option {
	if stepMinutes <= 0 || stepMinutes > 60 {
		stepMinutes = 60
	}
	var out []Option
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += stepMinutes {
			v := fmt.Sprintf("%02d:%02d", h, m)
			out = append(out, Option{Value: v, Label: v})
		}
	}
	return out
}

// DayOfWeekOptions starts on Monday; Sunday is cron day 0
func DayOfWeekOptions() []Option {
	return []Option{
		{Value: "1", Label: "Monday"},
		{Value: "2", Label: "Tuesday"},
		{Value: "3", Label: "Wednesday"},
		{Value: "4", Label: "Thursday"},
		{Value: "5", Label: "Friday"},
		{Value: "6", Label: "Saturday"},
		{Value: "0", Label: "Sunday"},
	}
}

func DayOfMonthOptions() []Option {
	out := make([]Option, 0, 31)
	for d := 1; d <= 31; d++ {
		out = append(out, Option{Value: strconv.Itoa(d), Label: Ordinal(d)})
	}
	return out
}

func IntervalOptions() []Option {
	return []Option{
		{Value: "15", Label: "15 minutes"},
		{Value: "30", Label: "30 minutes"},
	}
}

// Ordinal renders n with its English ordinal suffix
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
