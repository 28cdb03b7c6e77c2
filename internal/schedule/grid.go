package schedule

import (
	"fmt"
	"time"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
)

// StatusNotScheduled marks a cell outside the meeting schedule. It is a UI
// state only and is never written to the attendance table.
const StatusNotScheduled = "not_scheduled"

// Mode selects which toggle state machine a grid uses.
type Mode int

const (
	// ModeDefault uses weekday/weekend classification with a binary
	// present/absent toggle.
	ModeDefault Mode = iota
	// ModeMeeting restricts editing to scheduled meeting days with a
	// three-way absent/present/excused cycle.
	ModeMeeting
)

// Grid holds the in-memory attendance state for one project month,
// keyed by "memberID-YYYY-MM-DD". Seeded from stored rows; unseen cells
// fall back to classifier defaults.
type Grid struct {
	Year  int
	Month time.Month

	mode            Mode
	sched           *model.MeetingSchedule
	weekendOverride bool
	cells           map[string]string
	dirty           map[string]bool
}

// NewGrid creates an empty grid for a project month.
func NewGrid(year int, month time.Month, mode Mode, sched *model.MeetingSchedule, weekendOverride bool) *Grid {
	return &Grid{
		Year:            year,
		Month:           month,
		mode:            mode,
		sched:           sched,
		weekendOverride: weekendOverride,
		cells:           make(map[string]string),
		dirty:           make(map[string]bool),
	}
}

// CellKey builds the grid key for a member and date.
func CellKey(memberID string, date time.Time) string {
	return fmt.Sprintf("%s-%s", memberID, date.Format("2006-01-02"))
}

func (g *Grid) key(memberID string, day int) string {
	return fmt.Sprintf("%s-%04d-%02d-%02d", memberID, g.Year, g.Month, day)
}

// Seed loads stored attendance rows into the grid. Rows from other months
// are ignored.
func (g *Grid) Seed(records []model.AttendanceRecord) {
	for _, r := range records {
		if r.Date.Year() != g.Year || r.Date.Month() != g.Month {
			continue
		}
		g.cells[CellKey(r.UserID, r.Date)] = r.Status
	}
}

// Status returns the current cell state, applying the default for unseen
// cells: absent on scheduled days, weekend or not_scheduled otherwise.
func (g *Grid) Status(memberID string, day int) string {
	if s, ok := g.cells[g.key(memberID, day)]; ok {
		return s
	}
	switch g.mode {
	case ModeMeeting:
		if !IsScheduledDay(g.Year, g.Month, day, g.sched) {
			return StatusNotScheduled
		}
		return model.StatusAbsent
	default:
		if IsWeekend(g.Year, g.Month, day) {
			return model.StatusWeekend
		}
		return model.StatusAbsent
	}
}

// Toggle advances a cell through its state machine and reports whether the
// cell changed. Non-editable cells (holiday, weekend without override,
// not_scheduled) are left untouched.
func (g *Grid) Toggle(memberID string, day int) (string, bool) {
	current := g.Status(memberID, day)
	if current == model.StatusHoliday {
		return current, false
	}

	var next string
	switch g.mode {
	case ModeMeeting:
		if !IsScheduledDay(g.Year, g.Month, day, g.sched) {
			return current, false
		}
		next = nextMeetingStatus(current)
	default:
		if IsWeekend(g.Year, g.Month, day) && !g.weekendOverride {
			return current, false
		}
		next = nextDefaultStatus(current)
	}

	if next == current {
		return current, false
	}

	k := g.key(memberID, day)
	g.cells[k] = next
	g.dirty[k] = true
	return next, true
}

// nextDefaultStatus is the binary weekday toggle: present <-> absent.
// A weekend cell toggled under override enters the same binary cycle.
func nextDefaultStatus(current string) string {
	switch current {
	case model.StatusPresent, model.StatusLate:
		return model.StatusAbsent
	default:
		return model.StatusPresent
	}
}

// nextMeetingStatus is the three-way meeting cycle:
// absent -> present -> excused -> absent.
func nextMeetingStatus(current string) string {
	switch current {
	case model.StatusAbsent:
		return model.StatusPresent
	case model.StatusPresent:
		return model.StatusExcused
	case model.StatusExcused:
		return model.StatusAbsent
	default:
		return model.StatusPresent
	}
}

// Dirty returns the keys mutated since the grid was seeded, in no
// particular order.
func (g *Grid) Dirty() []string {
	keys := make([]string, 0, len(g.dirty))
	for k := range g.dirty {
		keys = append(keys, k)
	}
	return keys
}

// Cells exposes a copy of the current cell map.
func (g *Grid) Cells() map[string]string {
	out := make(map[string]string, len(g.cells))
	for k, v := range g.cells {
		out[k] = v
	}
	return out
}
