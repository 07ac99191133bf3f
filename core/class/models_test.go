package class

import (
	"testing"
	"time"

	"github.com/sajidbaba1/fithub/core"
)

func tod(h, m int) core.TimeOfDay { return core.NewTimeOfDay(h, m) }

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		exStart, exEnd, nwStart, nwEnd core.TimeOfDay
		want                           bool
	}{
		{name: "identical intervals", exStart: tod(9, 0), exEnd: tod(10, 0), nwStart: tod(9, 0), nwEnd: tod(10, 0), want: true},
		{name: "new starts when existing ends", exStart: tod(9, 0), exEnd: tod(10, 0), nwStart: tod(10, 0), nwEnd: tod(11, 0), want: false},
		{name: "new ends when existing starts", exStart: tod(10, 0), exEnd: tod(11, 0), nwStart: tod(9, 0), nwEnd: tod(10, 0), want: false},
		{name: "partial overlap at tail", exStart: tod(9, 0), exEnd: tod(10, 0), nwStart: tod(9, 30), nwEnd: tod(10, 30), want: true},
		{name: "partial overlap at head", exStart: tod(9, 30), exEnd: tod(10, 30), nwStart: tod(9, 0), nwEnd: tod(10, 0), want: true},
		{name: "existing contains new", exStart: tod(9, 0), exEnd: tod(12, 0), nwStart: tod(10, 0), nwEnd: tod(11, 0), want: true},
		{name: "new contains existing", exStart: tod(10, 0), exEnd: tod(11, 0), nwStart: tod(9, 0), nwEnd: tod(12, 0), want: true},
		{name: "disjoint before", exStart: tod(7, 0), exEnd: tod(8, 0), nwStart: tod(9, 0), nwEnd: tod(10, 0), want: false},
		{name: "disjoint after", exStart: tod(11, 0), exEnd: tod(12, 0), nwStart: tod(9, 0), nwEnd: tod(10, 0), want: false},
		{name: "shared start different end", exStart: tod(9, 0), exEnd: tod(10, 0), nwStart: tod(9, 0), nwEnd: tod(9, 30), want: true},
		{name: "shared end different start", exStart: tod(9, 0), exEnd: tod(10, 0), nwStart: tod(9, 30), nwEnd: tod(10, 0), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.exStart, tt.exEnd, tt.nwStart, tt.nwEnd); got != tt.want {
				t.Errorf("Overlaps(%v-%v, %v-%v) = %v, want %v", tt.exStart, tt.exEnd, tt.nwStart, tt.nwEnd, got, tt.want)
			}
		})
	}
}

func TestConflictsWith(t *testing.T) {
	date := core.NewDate(2026, time.September, 1)
	otherDate := core.NewDate(2026, time.September, 2)
	existing := Class{
		Room:      "Studio A",
		ClassDate: date,
		StartTime: tod(9, 0),
		EndTime:   tod(10, 0),
		Status:    StatusScheduled,
	}

	tests := []struct {
		name     string
		existing Class
		room     string
		date     core.Date
		start    core.TimeOfDay
		end      core.TimeOfDay
		want     bool
	}{
		{name: "same room same slot", existing: existing, room: "Studio A", date: date, start: tod(9, 30), end: tod(10, 30), want: true},
		{name: "different room", existing: existing, room: "Studio B", date: date, start: tod(9, 30), end: tod(10, 30), want: false},
		{name: "different date", existing: existing, room: "Studio A", date: otherDate, start: tod(9, 30), end: tod(10, 30), want: false},
		{name: "back to back", existing: existing, room: "Studio A", date: date, start: tod(10, 0), end: tod(11, 0), want: false},
		{
			name:     "cancelled class frees the room",
			existing: Class{Room: "Studio A", ClassDate: date, StartTime: tod(9, 0), EndTime: tod(10, 0), Status: StatusCancelled},
			room:     "Studio A", date: date, start: tod(9, 0), end: tod(10, 0), want: false,
		},
		{
			name:     "in progress class still blocks",
			existing: Class{Room: "Studio A", ClassDate: date, StartTime: tod(9, 0), EndTime: tod(10, 0), Status: StatusInProgress},
			room:     "Studio A", date: date, start: tod(9, 0), end: tod(10, 0), want: true,
		},
		{
			name:     "existing without a room never collides",
			existing: Class{ClassDate: date, StartTime: tod(9, 0), EndTime: tod(10, 0), Status: StatusScheduled},
			room:     "", date: date, start: tod(9, 0), end: tod(10, 0), want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.existing.ConflictsWith(tt.room, tt.date, tt.start, tt.end); got != tt.want {
				t.Errorf("ConflictsWith() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanEnroll(t *testing.T) {
	today := core.Today()

	tests := []struct {
		name string
		cls  Class
		want bool
	}{
		{name: "open scheduled class", cls: Class{Status: StatusScheduled, MaxCapacity: 10, CurrentEnrollment: 5, ClassDate: today.AddDays(1)}, want: true},
		{name: "today", cls: Class{Status: StatusScheduled, MaxCapacity: 10, ClassDate: today}, want: true},
		{name: "yesterday still within grace", cls: Class{Status: StatusScheduled, MaxCapacity: 10, ClassDate: today.AddDays(-1)}, want: true},
		{name: "two days ago", cls: Class{Status: StatusScheduled, MaxCapacity: 10, ClassDate: today.AddDays(-2)}, want: false},
		{name: "full", cls: Class{Status: StatusScheduled, MaxCapacity: 10, CurrentEnrollment: 10, ClassDate: today.AddDays(1)}, want: false},
		{name: "cancelled", cls: Class{Status: StatusCancelled, MaxCapacity: 10, ClassDate: today.AddDays(1)}, want: false},
		{name: "completed", cls: Class{Status: StatusCompleted, MaxCapacity: 10, ClassDate: today.AddDays(1)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cls.CanEnroll(); got != tt.want {
				t.Errorf("CanEnroll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUtilization(t *testing.T) {
	tests := []struct {
		name       string
		capacity   int
		enrollment int
		want       float64
	}{
		{name: "empty", capacity: 10, enrollment: 0, want: 0},
		{name: "full", capacity: 10, enrollment: 10, want: 1},
		{name: "partial", capacity: 20, enrollment: 17, want: 0.85},
		{name: "zero capacity", capacity: 0, enrollment: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Class{MaxCapacity: tt.capacity, CurrentEnrollment: tt.enrollment}
			if got := c.Utilization(); got != tt.want {
				t.Errorf("Utilization() = %v, want %v", got, tt.want)
			}
		})
	}
}
