package dispatch

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"crm-automation/internal/store"
)

const (
	defaultStartMinute = 9 * 60
	defaultEndMinute   = 18 * 60
)

// Settings is an organization's effective sending policy.
type Settings struct {
	DailyLimit  int
	Location    *time.Location
	StartMinute int
	EndMinute   int
	Days        map[time.Weekday]bool
}

// DefaultSettings applies when an organization has no settings row. Every weekday
// is a sending day until the organization lists business days.
func DefaultSettings(dailyLimit int) Settings {
	days := make(map[time.Weekday]bool, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days[d] = true
	}
	return Settings{
		DailyLimit:  dailyLimit,
		Location:    time.UTC,
		StartMinute: defaultStartMinute,
		EndMinute:   defaultEndMinute,
		Days:        days,
	}
}

// ResolveSettings converts a stored row, falling back field by field to the defaults.
// The row's daily limit is taken as is; zero or less disables the limit.
func ResolveSettings(row store.OrgSettings) Settings {
	s := DefaultSettings(row.MaxAutomationEmailsPerDay)

	if row.Timezone != "" {
		if loc, err := time.LoadLocation(row.Timezone); err == nil {
			s.Location = loc
		}
	}
	if m, err := parseClock(row.BusinessHoursStart); err == nil {
		s.StartMinute = m
	}
	if m, err := parseClock(row.BusinessHoursEnd); err == nil {
		s.EndMinute = m
	}
	if len(row.BusinessDays) > 0 {
		days := make(map[time.Weekday]bool, len(row.BusinessDays))
		for _, d := range row.BusinessDays {
			// ISO weekdays, Monday=1 through Sunday=7
			if d >= 1 && d <= 7 {
				days[time.Weekday(d%7)] = true
			}
		}
		if len(days) > 0 {
			s.Days = days
		}
	}
	return s
}

// SendDate is the organization-local calendar day used for daily limits.
func (s Settings) SendDate(t time.Time) string {
	return t.In(s.Location).Format(time.DateOnly)
}

// WithinBusinessHours reports whether t falls inside the sending window.
func (s Settings) WithinBusinessHours(t time.Time) bool {
	local := t.In(s.Location)
	if !s.Days[local.Weekday()] {
		return false
	}
	minute := local.Hour()*60 + local.Minute()
	return minute >= s.StartMinute && minute < s.EndMinute
}

// NextWindowStart is the next business-hours opening after t. On a business day before
// the window opens that is the same day.
func (s Settings) NextWindowStart(t time.Time) time.Time {
	local := t.In(s.Location)
	minute := local.Hour()*60 + local.Minute()

	if s.Days[local.Weekday()] && minute < s.StartMinute {
		return s.openingOn(local)
	}
	for i := 1; i <= 7; i++ {
		day := local.AddDate(0, 0, i)
		if s.Days[day.Weekday()] {
			return s.openingOn(day)
		}
	}
	return s.openingOn(local.AddDate(0, 0, 1))
}

func (s Settings) openingOn(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, s.StartMinute/60, s.StartMinute%60, 0, 0, s.Location)
}

// parseClock accepts "HH:MM" and "HH:MM:SS".
func parseClock(v string) (int, error) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("invalid hour in %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", v)
	}
	return h*60 + m, nil
}
