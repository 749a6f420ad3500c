package lifecycle

import (
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultWeekend returns the Saturday/Sunday weekend convention. The weekend
// set is always passed explicitly because it is locale dependent.
func DefaultWeekend() mapset.Set[time.Weekday] {
	return mapset.NewSet(time.Saturday, time.Sunday)
}

// VacationPeriod is an inclusive date span.
type VacationPeriod struct {
	Start time.Time
	End   time.Time
}

// CalculateDueDate advances from start one calendar day at a time, counting
// only days that fall outside the weekend set and the holiday set, until
// workingDays such days have passed. Zero working days returns start
// unchanged. Holidays are keyed by date in "2006-01-02" form.
func CalculateDueDate(start time.Time, workingDays int, holidays mapset.Set[string], weekend mapset.Set[time.Weekday]) (time.Time, error) {
	if workingDays < 0 {
		return time.Time{}, fmt.Errorf("%w: negative working days %d", ErrInvalidDateRange, workingDays)
	}

	date := start
	count := 0
	for count < workingDays {
		date = date.AddDate(0, 0, 1)
		if weekend.Contains(date.Weekday()) {
			continue
		}
		if holidays != nil && holidays.Contains(date.Format("2006-01-02")) {
			continue
		}
		count++
	}

	return date, nil
}

// CountVacationOverlap sums the inclusive day counts of every vacation
// period intersecting [start, end]. Periods that themselves overlap are each
// counted in full; callers that need merged spans must merge beforehand.
func CountVacationOverlap(start, end time.Time, vacations []VacationPeriod) (int, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("%w: end %s before start %s", ErrInvalidDateRange, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	days := 0
	for _, vac := range vacations {
		if vac.End.Before(start) || vac.Start.After(end) {
			continue
		}

		overlapStart := maxDate(start, vac.Start)
		overlapEnd := minDate(end, vac.End)
		days += int(overlapEnd.Sub(overlapStart).Hours()/24) + 1
	}

	return days, nil
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
