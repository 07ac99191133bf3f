package member

import (
	"testing"
	"time"

	"github.com/sajidbaba1/fithub/core"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		want      int
	}{
		{name: "no sessions", total: 0, completed: 0, want: 0},
		{name: "none completed", total: 10, completed: 0, want: 0},
		{name: "half", total: 10, completed: 5, want: 50},
		{name: "truncates", total: 3, completed: 1, want: 33},
		{name: "all completed", total: 8, completed: 8, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Member{TotalSessions: tt.total, CompletedSessions: tt.completed}
			if got := m.ProgressPercentage(); got != tt.want {
				t.Errorf("ProgressPercentage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMembershipExpired(t *testing.T) {
	tests := []struct {
		name string
		end  core.Date
		want bool
	}{
		{name: "no end date", end: core.Date{}, want: false},
		{name: "ends yesterday", end: core.Today().AddDays(-1), want: true},
		{name: "ends today", end: core.Today(), want: false},
		{name: "ends tomorrow", end: core.Today().AddDays(1), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Member{MembershipEndDate: tt.end}
			if got := m.MembershipExpired(); got != tt.want {
				t.Errorf("MembershipExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAge(t *testing.T) {
	today := core.Today()

	// age ignores month and day; only calendar years count
	dob := core.NewDate(today.Year()-30, time.December, 31)
	m := Member{DateOfBirth: dob}
	if got := m.Age(); got != 30 {
		t.Errorf("Age() = %d, want 30", got)
	}

	if got := (&Member{}).Age(); got != 0 {
		t.Errorf("Age() with no date of birth = %d, want 0", got)
	}
}
