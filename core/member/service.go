package member

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core"
)

var (
	// errors
	ErrNotFound     = errors.New("member not found")
	ErrMemberExists = errors.New("a member with this email or phone already exists")
)

type (
	Repository interface {
		CheckMemberUniqueness(ctx context.Context, email, phone string, excludedMembers []Member, exec ...core.DBExecutor) error
		CreateMember(ctx context.Context, mbr Member, exec ...core.DBExecutor) (Member, error)
		// QueryMembers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Name, Email, Phone or City.
		QueryMembers(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Member, error)
		GetMember(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Member, error)
		UpdateMember(ctx context.Context, mbr Member, exec ...core.DBExecutor) (Member, error)
		DeleteMembersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service interface {
		CheckUniqueness(ctx context.Context, email, phone string, exclMembers ...Member) error
		Create(ctx context.Context, nm NewMember) (Member, error)
		Query(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Member, error)
		GetByID(ctx context.Context, id string) (Member, error)
		GetByEmail(ctx context.Context, email string) (Member, error)
		Update(ctx context.Context, id string, um UpdateMember) (Member, error)
		CompleteSession(ctx context.Context, id string) (Member, error)
		RefreshStatus(ctx context.Context, id string) (Member, error)
		ExpiringWithin(ctx context.Context, days int) ([]Member, error)
		DeactivateExpired(ctx context.Context) (int, error)
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

func (svc *service) CheckUniqueness(ctx context.Context, email, phone string, exclMembers ...Member) error {
	if err := svc.repo.CheckMemberUniqueness(ctx, email, phone, exclMembers); err != nil {
		if errors.Cause(err) == ErrMemberExists {
			return core.NewValidationError(err,
				core.FieldError{Field: "email", Error: err.Error()},
				core.FieldError{Field: "phone", Error: err.Error()},
			)
		}
		return err
	}
	return nil
}

func (svc *service) Create(ctx context.Context, nm NewMember) (Member, error) {
	now := time.Now().UTC()
	start := nm.MembershipStartDate
	if start.IsZero() {
		start = core.Today()
	}
	mbr := Member{
		Name:                nm.Name,
		Email:               nm.Email,
		Phone:               nm.Phone,
		Address:             nm.Address,
		City:                nm.City,
		DateOfBirth:         nm.DateOfBirth,
		Gender:              nm.Gender,
		MembershipType:      nm.MembershipType,
		Status:              nm.Status,
		MembershipStartDate: start,
		MembershipEndDate:   nm.MembershipEndDate,
		MonthlyFee:          nm.MonthlyFee,
		TotalSessions:       nm.TotalSessions,
		EmergencyContact:    nm.EmergencyContact,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	return svc.repo.CreateMember(ctx, mbr)
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Member, error) {
	return svc.repo.QueryMembers(ctx, filter, ordering)
}

func (svc *service) GetByID(ctx context.Context, id string) (Member, error) {
	return svc.repo.GetMember(ctx, GetFilter{ID: id})
}

func (svc *service) GetByEmail(ctx context.Context, email string) (Member, error) {
	return svc.repo.GetMember(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

func (svc *service) Update(ctx context.Context, id string, um UpdateMember) (Member, error) {
	orig, err := svc.repo.GetMember(ctx, GetFilter{ID: id})
	if err != nil {
		return Member{}, err
	}

	mbr := orig
	mbr.Name = um.Name
	mbr.Email = um.Email
	mbr.Phone = um.Phone
	mbr.Address = um.Address
	mbr.City = um.City
	if !um.DateOfBirth.IsZero() {
		mbr.DateOfBirth = um.DateOfBirth
	}
	if um.Gender != "" {
		mbr.Gender = um.Gender
	}
	if um.MembershipType != "" {
		mbr.MembershipType = um.MembershipType
	}
	if um.Status != "" {
		mbr.Status = um.Status
	}
	if !um.MembershipStartDate.IsZero() {
		mbr.MembershipStartDate = um.MembershipStartDate
	}
	if !um.MembershipEndDate.IsZero() {
		mbr.MembershipEndDate = um.MembershipEndDate
	}
	if um.MonthlyFee != nil {
		mbr.MonthlyFee = *um.MonthlyFee
	}
	if um.TotalSessions != nil {
		mbr.TotalSessions = *um.TotalSessions
	}
	if um.CompletedSessions != nil {
		mbr.CompletedSessions = *um.CompletedSessions
	}
	mbr.EmergencyContact = um.EmergencyContact
	mbr.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateMember(ctx, mbr)
}

// CompleteSession records one attended session, clamped at the purchased total.
func (svc *service) CompleteSession(ctx context.Context, id string) (Member, error) {
	mbr, err := svc.repo.GetMember(ctx, GetFilter{ID: id})
	if err != nil {
		return Member{}, err
	}
	if mbr.CompletedSessions < mbr.TotalSessions {
		mbr.CompletedSessions++
	}
	mbr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateMember(ctx, mbr)
}

// RefreshStatus flips an active member to EXPIRED once their membership end
// date has passed.
func (svc *service) RefreshStatus(ctx context.Context, id string) (Member, error) {
	mbr, err := svc.repo.GetMember(ctx, GetFilter{ID: id})
	if err != nil {
		return Member{}, err
	}
	if mbr.Status == StatusActive && mbr.MembershipExpired() {
		mbr.Status = StatusExpired
		mbr.UpdatedAt = time.Now().UTC()
		return svc.repo.UpdateMember(ctx, mbr)
	}
	return mbr, nil
}

// ExpiringWithin lists active members whose membership ends within the given
// number of days.
func (svc *service) ExpiringWithin(ctx context.Context, days int) ([]Member, error) {
	return svc.repo.QueryMembers(ctx, &QueryFilter{
		Statuses:       []string{StatusActive},
		ExpiringBefore: core.Today().AddDays(days),
	}, []core.DBOrdering{{Field: "membership_end_date", Ascending: true}})
}

// DeactivateExpired flips every active member with a past membership end date
// to EXPIRED and reports how many were touched.
func (svc *service) DeactivateExpired(ctx context.Context) (int, error) {
	members, err := svc.repo.QueryMembers(ctx, &QueryFilter{Statuses: []string{StatusActive}}, nil)
	if err != nil {
		return 0, err
	}
	var cnt int
	for i := range members {
		if !members[i].MembershipExpired() {
			continue
		}
		members[i].Status = StatusExpired
		members[i].UpdatedAt = time.Now().UTC()
		if _, err = svc.repo.UpdateMember(ctx, members[i]); err != nil {
			return cnt, err
		}
		cnt++
	}
	return cnt, nil
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteMembersByID(ctx, ids)
	return err
}
