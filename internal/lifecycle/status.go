package lifecycle

import "time"

// StatusLabel is the human facing status derived from a status code.
type StatusLabel string

const (
	StatusURE               StatusLabel = "URE"
	StatusClosed            StatusLabel = "Closed"
	StatusOpenNeedsRevision StatusLabel = "Open need Revision"
	StatusCodeEmpty         StatusLabel = "Status code is empty"
)

// DelayLabel classifies a document against its due and completed dates.
type DelayLabel string

const (
	DelayOverdue DelayLabel = "Overdue"
	DelayURE     DelayLabel = "URE"
	DelayLate    DelayLabel = "Delay"
	DelayOnDate  DelayLabel = "On Date"
	DelayUnknown DelayLabel = "Unknown"
)

// Dates carries the optional date fields of a document. Nil means absent;
// there is no reflective attribute probing.
type Dates struct {
	Due       *time.Time
	Completed *time.Time
	Modified  *time.Time
}

// DetermineDocumentStatus maps a status code and latest-revision flag to a
// label. "C" on a superseded revision stays open for rework; everything
// outside the known vocabulary reads as an empty status code.
func DetermineDocumentStatus(statusCode string, isLatestRevision bool) StatusLabel {
	switch statusCode {
	case "URE":
		return StatusURE
	case "A", "B", "D", "E":
		return StatusClosed
	case "C":
		if !isLatestRevision {
			return StatusOpenNeedsRevision
		}
		return StatusClosed
	default:
		return StatusCodeEmpty
	}
}

// OverdueDays returns how many days past due an incomplete document is.
// Never negative; zero when no due date exists or the document completed.
func OverdueDays(d Dates, clock Clock) int {
	if d.Due == nil || d.Completed != nil {
		return 0
	}

	delta := daysBetween(*d.Due, clock.Now())
	if delta < 0 {
		return 0
	}
	return delta
}

// DelayStatus classifies the document's delay state.
func DelayStatus(d Dates, clock Clock) DelayLabel {
	if d.Due == nil {
		return DelayUnknown
	}

	if d.Completed == nil {
		if dateOnly(clock.Now()).After(dateOnly(*d.Due)) {
			return DelayOverdue
		}
		return DelayURE
	}

	if d.Completed.After(*d.Due) {
		return DelayLate
	}
	return DelayOnDate
}

// FinalCloseDate returns the latest of the completed, due and modified
// dates, ignoring absent fields. Nil when all are absent.
func FinalCloseDate(d Dates) *time.Time {
	var final *time.Time
	for _, t := range []*time.Time{d.Completed, d.Due, d.Modified} {
		if t == nil {
			continue
		}
		if final == nil || t.After(*final) {
			final = t
		}
	}
	return final
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}
