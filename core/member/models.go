package member

import (
	"context"
	"time"

	"github.com/sajidbaba1/fithub/core"
)

// Membership types
const (
	TypeStandard = "STANDARD"
	TypePremium  = "PREMIUM"
	TypeVIP      = "VIP"
	TypeStudent  = "STUDENT"
)

// Statuses
const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusSuspended = "SUSPENDED"
	StatusExpired   = "EXPIRED"
)

// Genders
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

var (
	AllTypes    = []string{TypeStandard, TypePremium, TypeVIP, TypeStudent}
	AllStatuses = []string{StatusActive, StatusInactive, StatusSuspended, StatusExpired}
	AllGenders  = []string{GenderMale, GenderFemale, GenderOther}
)

type Member struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Address             string    `json:"address"`
	City                string    `json:"city"`
	DateOfBirth         core.Date `json:"date_of_birth"`
	Gender              string    `json:"gender"`
	MembershipType      string    `json:"membership_type"`
	Status              string    `json:"status"`
	MembershipStartDate core.Date `json:"membership_start_date"`
	MembershipEndDate   core.Date `json:"membership_end_date"`
	MonthlyFee          float64   `json:"monthly_fee"`
	TotalSessions       int       `json:"total_sessions"`
	CompletedSessions   int       `json:"completed_sessions"`
	EmergencyContact    string    `json:"emergency_contact"`
	CreatedAt           time.Time `json:"created_at"` // UTC
	UpdatedAt           time.Time `json:"updated_at"` // UTC
}

// ProgressPercentage is the share of purchased sessions already completed,
// truncated to a whole percent. A member with no sessions is at 0.
func (m *Member) ProgressPercentage() int {
	if m.TotalSessions == 0 {
		return 0
	}
	return m.CompletedSessions * 100 / m.TotalSessions
}

// MembershipExpired reports whether the membership end date has passed.
// A member without an end date never expires.
func (m *Member) MembershipExpired() bool {
	if m.MembershipEndDate.IsZero() {
		return false
	}
	return m.MembershipEndDate.Before(core.Today())
}

func (m *Member) Active() bool {
	return m.Status == StatusActive
}

// Age approximates the member's age as the difference of calendar years,
// ignoring month and day.
func (m *Member) Age() int {
	if m.DateOfBirth.IsZero() {
		return 0
	}
	return core.Today().Year() - m.DateOfBirth.Year()
}

// NewMember contains information needed to register a new Member.
type NewMember struct {
	Name                string    `json:"name" validate:"required"`
	Email               string    `json:"email" validate:"required,email"`
	Phone               string    `json:"phone" validate:"required"`
	Address             string    `json:"address"`
	City                string    `json:"city"`
	DateOfBirth         core.Date `json:"date_of_birth"`
	Gender              string    `json:"gender" validate:"omitempty,gender"`
	MembershipType      string    `json:"membership_type" validate:"omitempty,membershiptype"`
	Status              string    `json:"status" validate:"omitempty,memberstatus"`
	MembershipStartDate core.Date `json:"membership_start_date"`
	MembershipEndDate   core.Date `json:"membership_end_date"`
	MonthlyFee          float64   `json:"monthly_fee" validate:"gte=0"`
	TotalSessions       int       `json:"total_sessions" validate:"gte=0"`
	EmergencyContact    string    `json:"emergency_contact"`
}

func (nm *NewMember) Validate(ctx context.Context, svc Service) error {
	nm.Name = core.CleanString(nm.Name)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	nm.Phone = core.CleanString(nm.Phone)
	nm.Address = core.CleanString(nm.Address)
	nm.City = core.CleanString(nm.City)
	if nm.MembershipType == "" {
		nm.MembershipType = TypeStandard
	}
	if nm.Status == "" {
		nm.Status = StatusActive
	}

	if err := core.Validate.Struct(nm); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nm.Email, nm.Phone)
}

// UpdateMember defines what information may be provided to modify an existing Member.
type UpdateMember struct {
	Name                string    `json:"name"`
	Email               string    `json:"email" validate:"omitempty,email"`
	Phone               string    `json:"phone"`
	Address             string    `json:"address"`
	City                string    `json:"city"`
	DateOfBirth         core.Date `json:"date_of_birth"`
	Gender              string    `json:"gender" validate:"omitempty,gender"`
	MembershipType      string    `json:"membership_type" validate:"omitempty,membershiptype"`
	Status              string    `json:"status" validate:"omitempty,memberstatus"`
	MembershipStartDate core.Date `json:"membership_start_date"`
	MembershipEndDate   core.Date `json:"membership_end_date"`
	MonthlyFee          *float64  `json:"monthly_fee" validate:"omitempty,gte=0"`
	TotalSessions       *int      `json:"total_sessions" validate:"omitempty,gte=0"`
	CompletedSessions   *int      `json:"completed_sessions" validate:"omitempty,gte=0"`
	EmergencyContact    string    `json:"emergency_contact"`
}

func (um *UpdateMember) Validate(ctx context.Context, origMbr Member, svc Service) error {
	name := core.CleanString(um.Name)
	if name != "" {
		um.Name = name
	} else {
		um.Name = origMbr.Name
	}

	email := core.CleanString(um.Email, true /* lower */)
	if email != "" {
		um.Email = email
	} else {
		um.Email = origMbr.Email
	}

	phone := core.CleanString(um.Phone)
	if phone != "" {
		um.Phone = phone
	} else {
		um.Phone = origMbr.Phone
	}

	if err := core.Validate.Struct(um); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, um.Email, um.Phone, origMbr)
}

type QueryFilter struct {
	Search          string    `query:"search"`
	Statuses        []string  `query:"status"`
	MembershipTypes []string  `query:"membership_type"`
	ExpiringBefore  core.Date `query:"expiring_before"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Statuses == nil && qf.MembershipTypes == nil && qf.ExpiringBefore.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// GetFilter looks up a single Member; the first non-empty field wins.
type GetFilter struct {
	ID    string
	Email string
	Phone string
}
