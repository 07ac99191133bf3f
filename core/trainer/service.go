package trainer

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core"
)

var (
	// errors
	ErrNotFound      = errors.New("trainer not found")
	ErrTrainerExists = errors.New("a trainer with this employee ID already exists")
)

type (
	Repository interface {
		CheckTrainerUniqueness(ctx context.Context, employeeID string, excludedTrainers []Trainer, exec ...core.DBExecutor) error
		CreateTrainer(ctx context.Context, trn Trainer, exec ...core.DBExecutor) (Trainer, error)
		// QueryTrainers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Name, Email or EmployeeID.
		QueryTrainers(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Trainer, error)
		GetTrainer(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Trainer, error)
		UpdateTrainer(ctx context.Context, trn Trainer, exec ...core.DBExecutor) (Trainer, error)
		DeleteTrainersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service interface {
		CheckUniqueness(ctx context.Context, employeeID string, exclTrainers ...Trainer) error
		Create(ctx context.Context, nt NewTrainer) (Trainer, error)
		Query(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Trainer, error)
		GetByID(ctx context.Context, id string) (Trainer, error)
		GetByUserID(ctx context.Context, userID string) (Trainer, error)
		GetByEmployeeID(ctx context.Context, employeeID string) (Trainer, error)
		Update(ctx context.Context, id string, ut UpdateTrainer) (Trainer, error)
		Rate(ctx context.Context, id string, rating float64) (Trainer, error)
		RecordClassAssignment(ctx context.Context, id string) (Trainer, error)
		TopRated(ctx context.Context, limit int) ([]Trainer, error)
		AvailableOn(ctx context.Context, day time.Weekday, at core.TimeOfDay) ([]Trainer, error)
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

func (svc *service) CheckUniqueness(ctx context.Context, employeeID string, exclTrainers ...Trainer) error {
	if err := svc.repo.CheckTrainerUniqueness(ctx, employeeID, exclTrainers); err != nil {
		if errors.Cause(err) == ErrTrainerExists {
			return core.NewValidationError(err, core.FieldError{Field: "employee_id", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) Create(ctx context.Context, nt NewTrainer) (Trainer, error) {
	now := time.Now().UTC()
	trn := Trainer{
		UserID:          nt.UserID,
		EmployeeID:      nt.EmployeeID,
		Name:            nt.Name,
		Email:           nt.Email,
		Phone:           nt.Phone,
		Specializations: nt.Specializations,
		Certifications:  nt.Certifications,
		ExperienceYears: nt.ExperienceYears,
		EmploymentType:  nt.EmploymentType,
		Status:          nt.Status,
		Availability:    nt.Availability,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return svc.repo.CreateTrainer(ctx, trn)
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Trainer, error) {
	return svc.repo.QueryTrainers(ctx, filter, ordering)
}

func (svc *service) GetByID(ctx context.Context, id string) (Trainer, error) {
	return svc.repo.GetTrainer(ctx, GetFilter{ID: id})
}

func (svc *service) GetByUserID(ctx context.Context, userID string) (Trainer, error) {
	return svc.repo.GetTrainer(ctx, GetFilter{UserID: userID})
}

func (svc *service) GetByEmployeeID(ctx context.Context, employeeID string) (Trainer, error) {
	return svc.repo.GetTrainer(ctx, GetFilter{EmployeeID: core.CleanString(employeeID, true /* lower */)})
}

func (svc *service) Update(ctx context.Context, id string, ut UpdateTrainer) (Trainer, error) {
	orig, err := svc.repo.GetTrainer(ctx, GetFilter{ID: id})
	if err != nil {
		return Trainer{}, err
	}

	trn := orig
	trn.EmployeeID = ut.EmployeeID
	trn.Name = ut.Name
	trn.Email = ut.Email
	trn.Phone = ut.Phone
	if ut.Specializations != nil {
		trn.Specializations = ut.Specializations
	}
	if ut.Certifications != nil {
		trn.Certifications = ut.Certifications
	}
	if ut.ExperienceYears != nil {
		trn.ExperienceYears = *ut.ExperienceYears
	}
	if ut.EmploymentType != "" {
		trn.EmploymentType = ut.EmploymentType
	}
	if ut.Status != "" {
		trn.Status = ut.Status
	}
	if ut.Availability != nil {
		trn.Availability = ut.Availability
	}
	trn.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateTrainer(ctx, trn)
}

// Rate folds a new rating into the trainer's running average.
func (svc *service) Rate(ctx context.Context, id string, rating float64) (Trainer, error) {
	trn, err := svc.repo.GetTrainer(ctx, GetFilter{ID: id})
	if err != nil {
		return Trainer{}, err
	}
	if err = trn.UpdateRating(rating); err != nil {
		return Trainer{}, err
	}
	trn.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTrainer(ctx, trn)
}

// RecordClassAssignment bumps the trainer's lifetime class counter.
func (svc *service) RecordClassAssignment(ctx context.Context, id string) (Trainer, error) {
	trn, err := svc.repo.GetTrainer(ctx, GetFilter{ID: id})
	if err != nil {
		return Trainer{}, err
	}
	trn.TotalClasses++
	trn.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTrainer(ctx, trn)
}

// TopRated lists active trainers with at least one rating, best first.
func (svc *service) TopRated(ctx context.Context, limit int) ([]Trainer, error) {
	trainers, err := svc.repo.QueryTrainers(ctx, &QueryFilter{Statuses: []string{StatusActive}}, nil)
	if err != nil {
		return nil, err
	}
	rated := make([]Trainer, 0, len(trainers))
	for i := range trainers {
		if trainers[i].TotalRatings > 0 {
			rated = append(rated, trainers[i])
		}
	}
	sort.SliceStable(rated, func(i, j int) bool { return rated[i].Rating > rated[j].Rating })
	if limit > 0 && len(rated) > limit {
		rated = rated[:limit]
	}
	return rated, nil
}

// AvailableOn lists active trainers working at the given weekday and time.
func (svc *service) AvailableOn(ctx context.Context, day time.Weekday, at core.TimeOfDay) ([]Trainer, error) {
	trainers, err := svc.repo.QueryTrainers(ctx, &QueryFilter{Statuses: []string{StatusActive}}, nil)
	if err != nil {
		return nil, err
	}
	available := make([]Trainer, 0, len(trainers))
	for i := range trainers {
		if trainers[i].AvailableOn(day, at) {
			available = append(available, trainers[i])
		}
	}
	return available, nil
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteTrainersByID(ctx, ids)
	return err
}
