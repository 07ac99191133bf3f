package class

import (
	"context"
	"fmt"
	"time"

	"github.com/sajidbaba1/fithub/core"
)

// Class types
const (
	TypeYoga             = "YOGA"
	TypePilates          = "PILATES"
	TypeCardio           = "CARDIO"
	TypeStrength         = "STRENGTH_TRAINING"
	TypeCrossfit         = "CROSSFIT"
	TypeZumba            = "ZUMBA"
	TypeSpinning         = "SPINNING"
	TypeBoxing           = "BOXING"
	TypeMartialArts      = "MARTIAL_ARTS"
	TypeSwimming         = "SWIMMING"
	TypePersonalTraining = "PERSONAL_TRAINING"
	TypeGroupFitness     = "GROUP_FITNESS"
	TypeRehabilitation   = "REHABILITATION"
	TypeOther            = "OTHER"
)

// Statuses
const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
	StatusPostponed  = "POSTPONED"
)

// Difficulty levels
const (
	DifficultyBeginner     = "BEGINNER"
	DifficultyIntermediate = "INTERMEDIATE"
	DifficultyAdvanced     = "ADVANCED"
	DifficultyAllLevels    = "ALL_LEVELS"
)

var (
	AllTypes = []string{
		TypeYoga, TypePilates, TypeCardio, TypeStrength, TypeCrossfit,
		TypeZumba, TypeSpinning, TypeBoxing, TypeMartialArts, TypeSwimming,
		TypePersonalTraining, TypeGroupFitness, TypeRehabilitation, TypeOther,
	}
	AllStatuses     = []string{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusPostponed}
	AllDifficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyAllLevels}

	// blockingStatuses are the statuses that hold a room booking.
	blockingStatuses = []string{StatusScheduled, StatusInProgress}
)

type Class struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	ClassType         string         `json:"class_type"`
	Instructor        string         `json:"instructor"` // display name, not a Trainer reference
	ClassDate         core.Date      `json:"class_date"`
	StartTime         core.TimeOfDay `json:"start_time"`
	EndTime           core.TimeOfDay `json:"end_time"`
	Duration          int            `json:"duration"` // minutes
	MaxCapacity       int            `json:"max_capacity"`
	CurrentEnrollment int            `json:"current_enrollment"`
	Status            string         `json:"status"`
	DifficultyLevel   string         `json:"difficulty_level"`
	Room              string         `json:"room"`
	Price             float64        `json:"price"`
	Equipment         string         `json:"equipment"`
	Notes             string         `json:"notes"`
	CreatedAt         time.Time      `json:"created_at"` // UTC
	UpdatedAt         time.Time      `json:"updated_at"` // UTC
}

// Overlaps reports whether an existing booking [exStart, exEnd) collides with
// a new booking [newStart, newEnd). Touching intervals (one ends exactly when
// the other starts) do not collide; the three branches below pin the exact
// boundary behavior and must not be collapsed into a simpler formula.
func Overlaps(exStart, exEnd, newStart, newEnd core.TimeOfDay) bool {
	return (exStart <= newStart && exEnd > newStart) ||
		(exStart < newEnd && exEnd >= newEnd) ||
		(exStart >= newStart && exEnd <= newEnd)
}

// blocksRoom reports whether this class holds its room booking.
func (c *Class) blocksRoom() bool {
	for _, s := range blockingStatuses {
		if c.Status == s {
			return true
		}
	}
	return false
}

// schedulable reports whether the class carries enough scheduling data to take
// part in conflict detection. A class without a room, date or times never
// collides.
func (c *Class) schedulable() bool {
	return c.Room != "" && !c.ClassDate.IsZero() && c.StartTime != c.EndTime
}

// ConflictsWith reports whether booking a class at the given room, date and
// time range would collide with this (existing) class.
func (c *Class) ConflictsWith(room string, date core.Date, start, end core.TimeOfDay) bool {
	if !c.schedulable() || !c.blocksRoom() {
		return false
	}
	if c.Room != room || !c.ClassDate.Equal(date) {
		return false
	}
	return Overlaps(c.StartTime, c.EndTime, start, end)
}

func (c *Class) IsFull() bool {
	return c.CurrentEnrollment >= c.MaxCapacity
}

// CanEnroll reports enrollment eligibility. Enrollment stays open until one
// full day after the class date has passed.
func (c *Class) CanEnroll() bool {
	return c.Status == StatusScheduled && !c.IsFull() && !c.ClassDate.Before(core.Today().AddDays(-1))
}

// Utilization is the enrollment share of capacity in [0, 1].
func (c *Class) Utilization() float64 {
	if c.MaxCapacity == 0 {
		return 0
	}
	return float64(c.CurrentEnrollment) / float64(c.MaxCapacity)
}

func (c *Class) AvailableSpots() int {
	if spots := c.MaxCapacity - c.CurrentEnrollment; spots > 0 {
		return spots
	}
	return 0
}

// CapacityPercentage is the enrollment share of capacity as a whole percent.
func (c *Class) CapacityPercentage() int {
	if c.MaxCapacity == 0 {
		return 0
	}
	return c.CurrentEnrollment * 100 / c.MaxCapacity
}

func (c *Class) IsToday() bool {
	return c.ClassDate.Equal(core.Today())
}

func (c *Class) IsUpcoming() bool {
	return c.ClassDate.After(core.Today())
}

func (c *Class) IsPast() bool {
	return c.ClassDate.Before(core.Today())
}

// ConflictError reports a room double-booking.
type ConflictError struct {
	Room  string
	Date  core.Date
	Start core.TimeOfDay
	End   core.TimeOfDay
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %s is already booked on %s between %s and %s", e.Room, e.Date, e.Start, e.End)
}

// NewClass contains information needed to schedule a new Class.
type NewClass struct {
	Name            string         `json:"name" validate:"required"`
	Description     string         `json:"description"`
	ClassType       string         `json:"class_type" validate:"omitempty,classtype"`
	Instructor      string         `json:"instructor"`
	ClassDate       core.Date      `json:"class_date"`
	StartTime       core.TimeOfDay `json:"start_time"`
	EndTime         core.TimeOfDay `json:"end_time"`
	Duration        int            `json:"duration" validate:"gte=0"`
	MaxCapacity     int            `json:"max_capacity" validate:"required,gt=0"`
	Status          string         `json:"status" validate:"omitempty,classstatus"`
	DifficultyLevel string         `json:"difficulty_level" validate:"omitempty,difficulty"`
	Room            string         `json:"room"`
	Price           float64        `json:"price" validate:"gte=0"`
	Equipment       string         `json:"equipment"`
	Notes           string         `json:"notes"`
}

func (nc *NewClass) Validate(ctx context.Context) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Instructor = core.CleanString(nc.Instructor)
	nc.Room = core.CleanString(nc.Room)
	if nc.Status == "" {
		nc.Status = StatusScheduled
	}

	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	if nc.StartTime != nc.EndTime && nc.EndTime < nc.StartTime {
		return core.NewValidationError(nil, core.FieldError{Field: "end_time", Error: "end time must be after start time"})
	}
	return nil
}

// UpdateClass defines what information may be provided to reschedule an
// existing Class. Every mutable field is overwritten, not merged.
type UpdateClass struct {
	Name            string         `json:"name" validate:"required"`
	Description     string         `json:"description"`
	ClassType       string         `json:"class_type" validate:"omitempty,classtype"`
	Instructor      string         `json:"instructor"`
	ClassDate       core.Date      `json:"class_date"`
	StartTime       core.TimeOfDay `json:"start_time"`
	EndTime         core.TimeOfDay `json:"end_time"`
	Duration        int            `json:"duration" validate:"gte=0"`
	MaxCapacity     int            `json:"max_capacity" validate:"required,gt=0"`
	Status          string         `json:"status" validate:"omitempty,classstatus"`
	DifficultyLevel string         `json:"difficulty_level" validate:"omitempty,difficulty"`
	Room            string         `json:"room"`
	Price           float64        `json:"price" validate:"gte=0"`
	Equipment       string         `json:"equipment"`
	Notes           string         `json:"notes"`
}

func (uc *UpdateClass) Validate(ctx context.Context) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Instructor = core.CleanString(uc.Instructor)
	uc.Room = core.CleanString(uc.Room)

	if err := core.Validate.Struct(uc); err != nil {
		return err
	}
	if uc.StartTime != uc.EndTime && uc.EndTime < uc.StartTime {
		return core.NewValidationError(nil, core.FieldError{Field: "end_time", Error: "end time must be after start time"})
	}
	return nil
}

type QueryFilter struct {
	Search       string    `query:"search"`
	Statuses     []string  `query:"status"`
	Types        []string  `query:"class_type"`
	Instructor   string    `query:"instructor"`
	Room         string    `query:"room"`
	Difficulties []string  `query:"difficulty"`
	Date         core.Date `query:"date"`
	DateFrom     core.Date `query:"date_from"`
	DateTo       core.Date `query:"date_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Statuses == nil && qf.Types == nil && qf.Instructor == "" &&
		qf.Room == "" && qf.Difficulties == nil && qf.Date.IsZero() && qf.DateFrom.IsZero() && qf.DateTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Instructor = core.CleanString(qf.Instructor)
	qf.Room = core.CleanString(qf.Room)
}

// GetFilter looks up a single Class.
type GetFilter struct {
	ID string
}
