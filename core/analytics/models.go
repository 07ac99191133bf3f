package analytics

import (
	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/member"
)

// Result structs are built once per request and never mutated after being
// returned; callers may share them freely across goroutines.

type Dashboard struct {
	TotalMembers   int `json:"total_members"`
	ActiveMembers  int `json:"active_members"`
	PremiumMembers int `json:"premium_members"`
	VIPMembers     int `json:"vip_members"`

	TotalClasses     int `json:"total_classes"`
	ScheduledClasses int `json:"scheduled_classes"`
	CompletedClasses int `json:"completed_classes"`
	CancelledClasses int `json:"cancelled_classes"`

	TotalTrainers    int `json:"total_trainers"`
	ActiveTrainers   int `json:"active_trainers"`
	FullTimeTrainers int `json:"full_time_trainers"`
	PartTimeTrainers int `json:"part_time_trainers"`

	TotalUsers  int `json:"total_users"`
	ActiveUsers int `json:"active_users"`

	MonthlyRevenue float64 `json:"monthly_revenue"`
	YearlyRevenue  float64 `json:"yearly_revenue"`
}

type MemberAnalytics struct {
	MembershipTypes map[string]int  `json:"membership_types"`
	Genders         map[string]int  `json:"genders"`
	AgeGroups       map[string]int  `json:"age_groups"`
	AverageProgress float64         `json:"average_progress"`
	TopPerformers   []member.Member `json:"top_performers"`
}

type ClassAnalytics struct {
	TypeCounts      map[string]int     `json:"type_counts"`
	TypeUtilization map[string]float64 `json:"type_utilization"` // mean fill share per type, in [0, 1]
	TimeSlots       map[string]int     `json:"time_slots"`
	// TrainerPerformance maps the trainer's full name to their average
	// rating; duplicate names overwrite each other.
	TrainerPerformance map[string]float64 `json:"trainer_performance"`
}

type TrainerAnalytics struct {
	Specializations  map[string]int `json:"specializations"`
	ExperienceGroups map[string]int `json:"experience_groups"`
	AverageRating    float64        `json:"average_rating"`
	EmploymentTypes  map[string]int `json:"employment_types"`
}

type MonthlyPoint struct {
	Month         string  `json:"month"` // "Jan 2026"
	Revenue       float64 `json:"revenue"`
	Registrations int     `json:"registrations"`
}

type FinancialAnalytics struct {
	MonthlyRevenue   float64            `json:"monthly_revenue"`
	YearlyRevenue    float64            `json:"yearly_revenue"`
	ProjectedRevenue float64            `json:"projected_revenue"`
	RevenueByType    map[string]float64 `json:"revenue_by_type"`
	// MonthlyTrend carries placeholder values fluctuating around the current
	// monthly revenue; there is no billing history to aggregate yet.
	MonthlyTrend []MonthlyPoint `json:"monthly_trend"`
}

// Overview bundles the slices a given role is entitled to see; sections the
// role may not see are nil.
type Overview struct {
	Dashboard *Dashboard          `json:"dashboard,omitempty"`
	Members   *MemberAnalytics    `json:"members,omitempty"`
	Classes   *ClassAnalytics     `json:"classes,omitempty"`
	Trainers  *TrainerAnalytics   `json:"trainers,omitempty"`
	Financial *FinancialAnalytics `json:"financial,omitempty"`
}

// Bucketing

// AgeGroup buckets an age computed as a plain calendar-year difference.
func AgeGroup(age int) string {
	switch {
	case age < 18:
		return "<18"
	case age <= 24:
		return "18-24"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	default:
		return "55+"
	}
}

// TimeSlot buckets a class by its start hour.
func TimeSlot(start core.TimeOfDay) string {
	switch hour := start.Hour(); {
	case hour < 6:
		return "EARLY_MORNING"
	case hour < 9:
		return "MORNING"
	case hour < 12:
		return "LATE_MORNING"
	case hour < 15:
		return "AFTERNOON"
	case hour < 18:
		return "LATE_AFTERNOON"
	case hour < 21:
		return "EVENING"
	default:
		return "NIGHT"
	}
}

// ExperienceGroup buckets a trainer by years of experience.
func ExperienceGroup(years int) string {
	switch {
	case years < 1:
		return "<1"
	case years <= 2:
		return "1-2"
	case years <= 4:
		return "3-4"
	case years <= 9:
		return "5-9"
	default:
		return "10+"
	}
}
