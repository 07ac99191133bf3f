package trainer

import (
	"context"
	"time"

	"github.com/sajidbaba1/fithub/core"
)

// Employment types
const (
	EmploymentFullTime  = "FULL_TIME"
	EmploymentPartTime  = "PART_TIME"
	EmploymentContract  = "CONTRACT"
	EmploymentFreelance = "FREELANCE"
)

// Statuses
const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusTerminated = "TERMINATED"
)

// Specializations
const (
	SpecYoga      = "YOGA"
	SpecPilates   = "PILATES"
	SpecCardio    = "CARDIO"
	SpecStrength  = "STRENGTH_TRAINING"
	SpecCrossfit  = "CROSSFIT"
	SpecZumba     = "ZUMBA"
	SpecSpinning  = "SPINNING"
	SpecBoxing    = "BOXING"
	SpecSwimming  = "SWIMMING"
	SpecNutrition = "NUTRITION"
)

var (
	AllEmploymentTypes = []string{EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentFreelance}
	AllStatuses        = []string{StatusActive, StatusInactive, StatusOnLeave, StatusTerminated}
	AllSpecializations = []string{
		SpecYoga, SpecPilates, SpecCardio, SpecStrength, SpecCrossfit,
		SpecZumba, SpecSpinning, SpecBoxing, SpecSwimming, SpecNutrition,
	}
)

// Availability holds the trainer's working window per weekday; a missing
// weekday means not available that day.
type Availability map[time.Weekday]core.TimeRange

type Trainer struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	EmployeeID      string       `json:"employee_id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	Specializations []string     `json:"specializations"`
	Certifications  []string     `json:"certifications"`
	ExperienceYears int          `json:"experience_years"`
	EmploymentType  string       `json:"employment_type"`
	Status          string       `json:"status"`
	Availability    Availability `json:"availability"`
	Rating          float64      `json:"rating"`
	TotalRatings    int          `json:"total_ratings"`
	TotalClasses    int          `json:"total_classes"`
	TotalMembers    int          `json:"total_members"`
	CreatedAt       time.Time    `json:"created_at"` // UTC
	UpdatedAt       time.Time    `json:"updated_at"` // UTC
}

func (t *Trainer) Active() bool {
	return t.Status == StatusActive
}

// AvailableOn reports whether the trainer works on the given weekday at the
// given wall-clock time.
func (t *Trainer) AvailableOn(day time.Weekday, at core.TimeOfDay) bool {
	window, ok := t.Availability[day]
	if !ok {
		return false
	}
	return window.Start <= at && at < window.End
}

// UpdateRating folds a new rating into the running average, keeping 2 decimal
// places. The first rating sets the average directly.
func (t *Trainer) UpdateRating(rating float64) error {
	if rating < 1 || rating > 5 {
		return core.NewValidationError(nil, core.FieldError{Field: "rating", Error: "rating must be between 1 and 5"})
	}
	if t.TotalRatings == 0 {
		t.Rating = core.Round2(rating)
	} else {
		t.Rating = core.Round2((t.Rating*float64(t.TotalRatings) + rating) / float64(t.TotalRatings+1))
	}
	t.TotalRatings++
	return nil
}

// NewTrainer contains information needed to register a new Trainer.
type NewTrainer struct {
	UserID          string       `json:"user_id"`
	EmployeeID      string       `json:"employee_id" validate:"required"`
	Name            string       `json:"name" validate:"required"`
	Email           string       `json:"email" validate:"omitempty,email"`
	Phone           string       `json:"phone"`
	Specializations []string     `json:"specializations" validate:"omitempty,specializations"`
	Certifications  []string     `json:"certifications"`
	ExperienceYears int          `json:"experience_years" validate:"gte=0"`
	EmploymentType  string       `json:"employment_type" validate:"omitempty,employmenttype"`
	Status          string       `json:"status" validate:"omitempty,trainerstatus"`
	Availability    Availability `json:"availability"`
}

func (nt *NewTrainer) Validate(ctx context.Context, svc Service) error {
	nt.EmployeeID = core.CleanString(nt.EmployeeID, true /* lower */)
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Phone = core.CleanString(nt.Phone)
	if nt.EmploymentType == "" {
		nt.EmploymentType = EmploymentFullTime
	}
	if nt.Status == "" {
		nt.Status = StatusActive
	}

	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nt.EmployeeID)
}

// UpdateTrainer defines what information may be provided to modify an existing Trainer.
type UpdateTrainer struct {
	EmployeeID      string       `json:"employee_id"`
	Name            string       `json:"name"`
	Email           string       `json:"email" validate:"omitempty,email"`
	Phone           string       `json:"phone"`
	Specializations []string     `json:"specializations" validate:"omitempty,specializations"`
	Certifications  []string     `json:"certifications"`
	ExperienceYears *int         `json:"experience_years" validate:"omitempty,gte=0"`
	EmploymentType  string       `json:"employment_type" validate:"omitempty,employmenttype"`
	Status          string       `json:"status" validate:"omitempty,trainerstatus"`
	Availability    Availability `json:"availability"`
}

func (ut *UpdateTrainer) Validate(ctx context.Context, origTrn Trainer, svc Service) error {
	empID := core.CleanString(ut.EmployeeID, true /* lower */)
	if empID != "" {
		ut.EmployeeID = empID
	} else {
		ut.EmployeeID = origTrn.EmployeeID
	}

	name := core.CleanString(ut.Name)
	if name != "" {
		ut.Name = name
	} else {
		ut.Name = origTrn.Name
	}

	email := core.CleanString(ut.Email, true /* lower */)
	if email != "" {
		ut.Email = email
	} else {
		ut.Email = origTrn.Email
	}

	if err := core.Validate.Struct(ut); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, ut.EmployeeID, origTrn)
}

type QueryFilter struct {
	Search          string   `query:"search"`
	Statuses        []string `query:"status"`
	EmploymentTypes []string `query:"employment_type"`
	Specializations []string `query:"specialization"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Statuses == nil && qf.EmploymentTypes == nil && qf.Specializations == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// GetFilter looks up a single Trainer; the first non-empty field wins.
type GetFilter struct {
	ID         string
	UserID     string
	EmployeeID string
}
