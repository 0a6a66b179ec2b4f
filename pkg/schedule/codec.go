package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alertmgr/backend/pkg/utils"
)

const wildcard = "*"

// FromCron decodes a cron expression. It never fails: expressions with fewer
// than five fields decode to Default.
func FromCron(expr string) State {
	parts := strings.Fields(expr)
	if len(parts) < 5 {
		return Default()
	}
	minute, hour, dom, dow := parts[0], parts[1], parts[2], parts[4]

	if strings.HasPrefix(minute, "*/") {
		start, end := "0", "23"
		if strings.Contains(hour, "-") {
			start, end = splitRange(hour)
		}
		state := State{
			Frequency: FrequencyMinutes,
			StartHour: pad2(start) + ":00",
			EndHour:   pad2(end) + ":00",
		}
		if n, ok := leadingInt(minute[2:]); ok {
			state.Interval = intPtr(n)
		}
		return state
	}

	if strings.Contains(hour, "-") {
		start, end := splitRange(hour)
		m := pad2(minute)
		return State{
			Frequency: FrequencyHourly,
			StartHour: pad2(start) + ":" + m,
			EndHour:   pad2(end) + ":" + m,
		}
	}

	if minute == "0" && hour == wildcard {
		return State{Frequency: FrequencyHourly, StartHour: "00:00", EndHour: "23:00"}
	}

	clock := pad2(hour) + ":" + pad2(minute)

	if dow != wildcard {
		state := State{Frequency: FrequencyWeekly, Time: clock}
		if n, ok := leadingInt(dow); ok {
			state.DayOfWeek = intPtr(n)
		}
		return state
	}

	if dom != wildcard {
		state := State{Frequency: FrequencyMonthly, Time: clock}
		if n, ok := leadingInt(dom); ok {
			state.DayOfMonth = intPtr(n)
		}
		return state
	}

	return State{Frequency: FrequencyDaily, Time: clock}
}

// ToCron encodes a state as a cron expression.
//
// Range endpoints keep only their hour. The minutes class ignores the minute of
// StartHour and EndHour; the hourly class takes its minute from StartHour alone.
func ToCron(s State) string {
	switch s.Frequency {
	case FrequencyMinutes:
		if s.Interval == nil || *s.Interval == 0 {
			return "* * * * *"
		}
		return fmt.Sprintf("*/%d %s * * *", *s.Interval, hourRange(s.StartHour, s.EndHour))

	case FrequencyHourly:
		start := parseClock(s.StartHour)
		return fmt.Sprintf("%s %s * * *", start.minute, hourRange(s.StartHour, s.EndHour))

	case FrequencyDaily:
		t := parseClock(s.Time)
		return fmt.Sprintf("%s %s * * *", t.minute, t.hour)

	case FrequencyWeekly:
		t := parseClock(s.Time)
		day := wildcard
		if s.DayOfWeek != nil {
			day = strconv.Itoa(*s.DayOfWeek)
		}
		return fmt.Sprintf("%s %s * * %s", t.minute, t.hour, day)

	case FrequencyMonthly:
		t := parseClock(s.Time)
		day := "1"
		if s.DayOfMonth != nil && *s.DayOfMonth != 0 {
			day = strconv.Itoa(*s.DayOfMonth)
		}
		return fmt.Sprintf("%s %s %s * *", t.minute, t.hour, day)

	default:
		return "* * * * *"
	}
}

type clock struct {
	hour   string
	minute string
	valid  bool
}

// parseClock reads "HH:MM". Missing or unreadable input yields hour "*" and minute "0".
func parseClock(t string) clock {
	if t == "" {
		return clock{hour: wildcard, minute: "0"}
	}
	h, m, _ := strings.Cut(t, ":")
	hour, ok := leadingInt(h)
	if !ok {
		return clock{hour: wildcard, minute: "0"}
	}
	minute, ok := leadingInt(m)
	if !ok {
		minute = 0
	}
	return clock{hour: strconv.Itoa(hour), minute: strconv.Itoa(minute), valid: true}
}

func hourRange(start, end string) string {
	s, e := parseClock(start), parseClock(end)
	if !s.valid || !e.valid {
		return wildcard
	}
	return s.hour + "-" + e.hour
}

func splitRange(field string) (string, string) {
	parts := strings.Split(field, "-")
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func pad2(s string) string {
	return utils.PadLeft(s, 2, '0')
}

// leadingInt parses the longest leading run of decimal digits, with an optional sign
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
