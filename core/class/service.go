package class

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core"
)

var (
	// errors
	ErrNotFound = errors.New("class not found")

	// enrollment failure reasons
	ErrClassFull    = errors.New("class is full")
	ErrClassNotOpen = errors.New("class is not open for enrollment")
	ErrClassInPast  = errors.New("class date has already passed")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class, exec ...core.DBExecutor) (Class, error)
		// QueryClasses applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Name, Description or Instructor.
		QueryClasses(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Class, error)
		GetClass(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Class, error)
		UpdateClass(ctx context.Context, cls Class, exec ...core.DBExecutor) (Class, error)
		DeleteClassesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
		// IncrementEnrollment bumps current_enrollment by 1 iff the class is
		// still below capacity; returns ErrClassFull when the guard fails.
		IncrementEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (Class, error)
		// DecrementEnrollment lowers current_enrollment by 1, clamped at 0.
		DecrementEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (Class, error)
	}

	Service interface {
		Create(ctx context.Context, nc NewClass) (Class, error)
		Query(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Class, error)
		GetByID(ctx context.Context, id string) (Class, error)
		Update(ctx context.Context, id string, uc UpdateClass) (Class, error)
		UpdateStatus(ctx context.Context, id, status string) (Class, error)
		Enroll(ctx context.Context, id string) (Class, error)
		Unenroll(ctx context.Context, id string) (Class, error)
		Upcoming(ctx context.Context) ([]Class, error)
		TodaysClasses(ctx context.Context) ([]Class, error)
		Available(ctx context.Context) ([]Class, error)
		Popular(ctx context.Context) ([]Class, error)
		LowEnrollment(ctx context.Context) ([]Class, error)
		Stats(ctx context.Context) (Stats, error)
		Delete(ctx context.Context, ids ...string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// checkConflicts fails with a ConflictError when the requested room, date and
// time range collide with an existing booking. Classes missing any of the
// scheduling fields never collide. excludeID removes the class being updated
// from the collision set.
func (svc *service) checkConflicts(ctx context.Context, room string, date core.Date, start, end core.TimeOfDay, excludeID string) error {
	if room == "" || date.IsZero() || start == end {
		return nil
	}

	existing, err := svc.repo.QueryClasses(ctx, &QueryFilter{Room: room, Date: date, Statuses: blockingStatuses}, nil)
	if err != nil {
		return errors.Wrap(err, "querying room bookings")
	}
	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if existing[i].ConflictsWith(room, date, start, end) {
			return &ConflictError{Room: room, Date: date, Start: start, End: end}
		}
	}
	return nil
}

func (svc *service) Create(ctx context.Context, nc NewClass) (Class, error) {
	if err := svc.checkConflicts(ctx, nc.Room, nc.ClassDate, nc.StartTime, nc.EndTime, ""); err != nil {
		return Class{}, err
	}

	duration := nc.Duration
	if duration == 0 && nc.EndTime > nc.StartTime {
		duration = nc.EndTime.Sub(nc.StartTime)
	}

	now := time.Now().UTC()
	cls := Class{
		Name:            nc.Name,
		Description:     nc.Description,
		ClassType:       nc.ClassType,
		Instructor:      nc.Instructor,
		ClassDate:       nc.ClassDate,
		StartTime:       nc.StartTime,
		EndTime:         nc.EndTime,
		Duration:        duration,
		MaxCapacity:     nc.MaxCapacity,
		Status:          nc.Status,
		DifficultyLevel: nc.DifficultyLevel,
		Room:            nc.Room,
		Price:           nc.Price,
		Equipment:       nc.Equipment,
		Notes:           nc.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Class, error) {
	return svc.repo.QueryClasses(ctx, filter, ordering)
}

func (svc *service) GetByID(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClass(ctx, GetFilter{ID: id})
}

// Update replaces every mutable field of the class; enrollment and timestamps
// are carried over.
func (svc *service) Update(ctx context.Context, id string, uc UpdateClass) (Class, error) {
	orig, err := svc.repo.GetClass(ctx, GetFilter{ID: id})
	if err != nil {
		return Class{}, err
	}

	if err = svc.checkConflicts(ctx, uc.Room, uc.ClassDate, uc.StartTime, uc.EndTime, id); err != nil {
		return Class{}, err
	}

	duration := uc.Duration
	if duration == 0 && uc.EndTime > uc.StartTime {
		duration = uc.EndTime.Sub(uc.StartTime)
	}

	cls := orig
	cls.Name = uc.Name
	cls.Description = uc.Description
	cls.ClassType = uc.ClassType
	cls.Instructor = uc.Instructor
	cls.ClassDate = uc.ClassDate
	cls.StartTime = uc.StartTime
	cls.EndTime = uc.EndTime
	cls.Duration = duration
	cls.MaxCapacity = uc.MaxCapacity
	if uc.Status != "" {
		cls.Status = uc.Status
	}
	cls.DifficultyLevel = uc.DifficultyLevel
	cls.Room = uc.Room
	cls.Price = uc.Price
	cls.Equipment = uc.Equipment
	cls.Notes = uc.Notes
	cls.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateClass(ctx, cls)
}

// UpdateStatus overwrites the class status unconditionally; any status may
// follow any other.
func (svc *service) UpdateStatus(ctx context.Context, id, status string) (Class, error) {
	if err := core.Validate.Var(status, "classstatus"); err != nil {
		return Class{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: statusText})
	}

	cls, err := svc.repo.GetClass(ctx, GetFilter{ID: id})
	if err != nil {
		return Class{}, err
	}
	cls.Status = status
	cls.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateClass(ctx, cls)
}

// Enroll adds one member to the class. The capacity guard is enforced
// atomically at the store boundary, so concurrent enrollments cannot
// overshoot capacity.
func (svc *service) Enroll(ctx context.Context, id string) (Class, error) {
	cls, err := svc.repo.GetClass(ctx, GetFilter{ID: id})
	if err != nil {
		return Class{}, err
	}
	if !cls.CanEnroll() {
		switch {
		case cls.Status != StatusScheduled:
			return Class{}, ErrClassNotOpen
		case cls.IsFull():
			return Class{}, ErrClassFull
		default:
			return Class{}, ErrClassInPast
		}
	}
	return svc.repo.IncrementEnrollment(ctx, id)
}

// Unenroll removes one member from the class; a class already at zero
// enrollment is left untouched.
func (svc *service) Unenroll(ctx context.Context, id string) (Class, error) {
	return svc.repo.DecrementEnrollment(ctx, id)
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteClassesByID(ctx, ids)
	return err
}

// Derived queries

var scheduleOrdering = []core.DBOrdering{
	{Field: "class_date", Ascending: true},
	{Field: "start_time", Ascending: true},
}

// Upcoming lists classes later today or on a future date, soonest first.
func (svc *service) Upcoming(ctx context.Context) ([]Class, error) {
	classes, err := svc.repo.QueryClasses(ctx, &QueryFilter{DateFrom: core.Today()}, scheduleOrdering)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nowTime := core.NewTimeOfDay(now.Hour(), now.Minute())
	today := core.Today()
	return filterClasses(classes, func(c *Class) bool {
		if c.ClassDate.After(today) {
			return true
		}
		return c.ClassDate.Equal(today) && c.StartTime > nowTime
	}), nil
}

func (svc *service) TodaysClasses(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryClasses(ctx, &QueryFilter{Date: core.Today()}, scheduleOrdering)
}

// Available lists scheduled classes with open spots.
func (svc *service) Available(ctx context.Context) ([]Class, error) {
	classes, err := svc.repo.QueryClasses(ctx, &QueryFilter{Statuses: []string{StatusScheduled}}, scheduleOrdering)
	if err != nil {
		return nil, err
	}
	return filterClasses(classes, func(c *Class) bool { return !c.IsFull() }), nil
}

// Popular lists classes filling more than 80% of capacity, fullest first.
func (svc *service) Popular(ctx context.Context) ([]Class, error) {
	classes, err := svc.repo.QueryClasses(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	popular := filterClasses(classes, func(c *Class) bool { return c.Utilization() > 0.8 })
	sort.SliceStable(popular, func(i, j int) bool { return popular[i].Utilization() > popular[j].Utilization() })
	return popular, nil
}

// LowEnrollment lists classes filling less than half of capacity.
func (svc *service) LowEnrollment(ctx context.Context) ([]Class, error) {
	classes, err := svc.repo.QueryClasses(ctx, nil, scheduleOrdering)
	if err != nil {
		return nil, err
	}
	return filterClasses(classes, func(c *Class) bool { return c.Utilization() < 0.5 }), nil
}

// Stats are headline schedule counts.
type Stats struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

func (svc *service) Stats(ctx context.Context) (Stats, error) {
	classes, err := svc.repo.QueryClasses(ctx, nil, nil)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Total: len(classes)}
	for i := range classes {
		switch classes[i].Status {
		case StatusScheduled:
			stats.Scheduled++
		case StatusCompleted:
			stats.Completed++
		case StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func filterClasses(classes []Class, keep func(*Class) bool) []Class {
	out := make([]Class, 0, len(classes))
	for i := range classes {
		if keep(&classes[i]) {
			out = append(out, classes[i])
		}
	}
	return out
}
