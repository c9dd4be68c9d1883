package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
)

type Session string

const (
	SessionTokyo   Session = "Tokyo"
	SessionLondon  Session = "London"
	SessionNewYork Session = "NewYork"
	SessionSydney  Session = "Sydney"
)

// AllSessions lists every session label.
var AllSessions = []Session{SessionTokyo, SessionLondon, SessionNewYork, SessionSydney}

// MonthAll selects every month in FilterState.SelectedMonth.
const MonthAll = "all"

var monthLabels = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthLabel returns "Jan".."Dec" for a calendar month, or "" for an invalid month.
func MonthLabel(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}

	return monthLabels[m-1]
}

// ParseMonthLabel returns the calendar month of a "Jan".."Dec" label.
func ParseMonthLabel(label string) (time.Month, bool) {
	for i, l := range monthLabels {
		if l == label {
			return time.Month(i + 1), true
		}
	}

	return 0, false
}

// FilterState is the per-backtest filter configuration.
type FilterState struct {
	SelectedSessions    []Session `yaml:"selected_sessions" json:"selectedSessions" validate:"dive,oneof=Tokyo London NewYork Sydney"`
	SelectedWeekdays    []int     `yaml:"selected_weekdays" json:"selectedWeekdays" validate:"dive,min=0,max=6"`
	SelectedHours       []int     `yaml:"selected_hours" json:"selectedHours" validate:"dive,min=0,max=23"`
	DeactivatedTags     []string  `yaml:"deactivated_tags" json:"deactivatedTags"`
	SelectedDailyCounts []int     `yaml:"selected_daily_counts" json:"selectedDailyCounts" validate:"dive,gt=0"`
	// SelectedMonth is "all" or a "Jan".."Dec" label.
	SelectedMonth string `yaml:"selected_month" json:"selectedMonth"`
}

// DefaultFilterState returns a filter that selects everything.
func DefaultFilterState() FilterState {
	weekdays := make([]int, 7)
	for i := range weekdays {
		weekdays[i] = i
	}

	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}

	sessions := make([]Session, len(AllSessions))
	copy(sessions, AllSessions)

	return FilterState{
		SelectedSessions:    sessions,
		SelectedWeekdays:    weekdays,
		SelectedHours:       hours,
		DeactivatedTags:     []string{},
		SelectedDailyCounts: []int{},
		SelectedMonth:       MonthAll,
	}
}

// Validate validates the FilterState struct.
func (f *FilterState) Validate() error {
	validate := validator.New()
	if err := validate.Struct(f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFilter, "invalid filter", err)
	}

	if !IsValidMonthSelection(f.SelectedMonth) {
		return errors.Wrap(errors.ErrCodeInvalidMonth, "invalid filter",
			errors.NewFieldError("", "selected_month", f.SelectedMonth, `must be "all" or one of Jan..Dec`))
	}

	return nil
}

// IsValidMonthSelection reports whether month is "all" or a "Jan".."Dec" label.
func IsValidMonthSelection(month string) bool {
	if month == MonthAll {
		return true
	}

	_, ok := ParseMonthLabel(month)

	return ok
}

// IsFullyInclusive reports whether the filter keeps every trade untouched:
// all 4 sessions, 7 weekdays and 24 hours selected, no deactivated tags and
// no daily-count limit. SelectedMonth is not part of trade filtering.
func (f FilterState) IsFullyInclusive() bool {
	return len(f.SessionSet()) == len(AllSessions) &&
		len(f.WeekdaySet()) == 7 &&
		len(f.HourSet()) == 24 &&
		len(f.DeactivatedTags) == 0 &&
		len(f.SelectedDailyCounts) == 0
}

// SessionSet returns the selected sessions as a set, ignoring unknown labels.
func (f FilterState) SessionSet() map[Session]struct{} {
	set := make(map[Session]struct{}, len(f.SelectedSessions))

	for _, s := range f.SelectedSessions {
		for _, known := range AllSessions {
			if s == known {
				set[s] = struct{}{}
			}
		}
	}

	return set
}

// WeekdaySet returns the selected weekdays as a set, ignoring out-of-range values.
func (f FilterState) WeekdaySet() map[int]struct{} {
	return intSet(f.SelectedWeekdays, 0, 6)
}

// HourSet returns the selected hours as a set, ignoring out-of-range values.
func (f FilterState) HourSet() map[int]struct{} {
	return intSet(f.SelectedHours, 0, 23)
}

// DeactivatedTagSet returns the deactivated tags as a set.
func (f FilterState) DeactivatedTagSet() map[string]struct{} {
	set := make(map[string]struct{}, len(f.DeactivatedTags))
	for _, tag := range f.DeactivatedTags {
		set[tag] = struct{}{}
	}

	return set
}

// MinDailyCount returns the smallest selected daily count and whether any is selected.
func (f FilterState) MinDailyCount() (int, bool) {
	if len(f.SelectedDailyCounts) == 0 {
		return 0, false
	}

	minCount := f.SelectedDailyCounts[0]
	for _, c := range f.SelectedDailyCounts[1:] {
		if c < minCount {
			minCount = c
		}
	}

	return minCount, true
}

func intSet(values []int, lo, hi int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))

	for _, v := range values {
		if v >= lo && v <= hi {
			set[v] = struct{}{}
		}
	}

	return set
}
