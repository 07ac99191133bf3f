package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/member"
)

type memberRow struct {
	ID                  string      `db:"id"`
	Name                string      `db:"name"`
	Email               string      `db:"email"`
	Phone               string      `db:"phone"`
	Address             null.String `db:"address"`
	City                null.String `db:"city"`
	DateOfBirth         core.Date   `db:"date_of_birth"`
	Gender              null.String `db:"gender"`
	MembershipType      string      `db:"membership_type"`
	Status              string      `db:"status"`
	MembershipStartDate core.Date   `db:"membership_start_date"`
	MembershipEndDate   core.Date   `db:"membership_end_date"`
	MonthlyFee          float64     `db:"monthly_fee"`
	TotalSessions       int         `db:"total_sessions"`
	CompletedSessions   int         `db:"completed_sessions"`
	EmergencyContact    null.String `db:"emergency_contact"`
	CreatedAt           null.Time   `db:"created_at"`
	UpdatedAt           null.Time   `db:"updated_at"`
}

const memberColumns = `id, name, email, phone, address, city, date_of_birth, gender,
membership_type, status, membership_start_date, membership_end_date, monthly_fee,
total_sessions, completed_sessions, emergency_contact, created_at, updated_at`

type memberRepository struct {
	db *sqlx.DB
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *sqlx.DB) *memberRepository {
	return &memberRepository{db: db}
}

func (repo memberRepository) pack(mbr member.Member) memberRow {
	return memberRow{
		ID:                  mbr.ID,
		Name:                mbr.Name,
		Email:               mbr.Email,
		Phone:               mbr.Phone,
		Address:             null.NewString(mbr.Address, mbr.Address != ""),
		City:                null.NewString(mbr.City, mbr.City != ""),
		DateOfBirth:         mbr.DateOfBirth,
		Gender:              null.NewString(mbr.Gender, mbr.Gender != ""),
		MembershipType:      mbr.MembershipType,
		Status:              mbr.Status,
		MembershipStartDate: mbr.MembershipStartDate,
		MembershipEndDate:   mbr.MembershipEndDate,
		MonthlyFee:          mbr.MonthlyFee,
		TotalSessions:       mbr.TotalSessions,
		CompletedSessions:   mbr.CompletedSessions,
		EmergencyContact:    null.NewString(mbr.EmergencyContact, mbr.EmergencyContact != ""),
		CreatedAt:           null.NewTime(mbr.CreatedAt.UTC(), !mbr.CreatedAt.IsZero()),
		UpdatedAt:           null.NewTime(mbr.UpdatedAt.UTC(), !mbr.UpdatedAt.IsZero()),
	}
}

func (repo memberRepository) unpack(row memberRow) member.Member {
	return member.Member{
		ID:                  row.ID,
		Name:                row.Name,
		Email:               row.Email,
		Phone:               row.Phone,
		Address:             row.Address.String,
		City:                row.City.String,
		DateOfBirth:         row.DateOfBirth,
		Gender:              row.Gender.String,
		MembershipType:      row.MembershipType,
		Status:              row.Status,
		MembershipStartDate: row.MembershipStartDate,
		MembershipEndDate:   row.MembershipEndDate,
		MonthlyFee:          row.MonthlyFee,
		TotalSessions:       row.TotalSessions,
		CompletedSessions:   row.CompletedSessions,
		EmergencyContact:    row.EmergencyContact.String,
		CreatedAt:           row.CreatedAt.Time,
		UpdatedAt:           row.UpdatedAt.Time,
	}
}

func (repo memberRepository) unpackSlice(rows []memberRow) []member.Member {
	members := make([]member.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, repo.unpack(row))
	}
	return members
}

func (repo memberRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return member.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo memberRepository) CheckMemberUniqueness(ctx context.Context, email, phone string, excludedMembers []member.Member, exec ...core.DBExecutor) error {
	q := `SELECT EXISTS (SELECT 1 FROM member WHERE (email = ? OR phone = ?)`
	args := []interface{}{email, phone}
	if len(excludedMembers) > 0 {
		ids := make([]string, 0, len(excludedMembers))
		for _, m := range excludedMembers {
			ids = append(ids, m.ID)
		}
		q += ` AND id NOT IN (?)`
		args = append(args, ids)
	}
	q += `)`

	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return errors.Wrap(err, "building uniqueness query")
	}

	e := ext(repo.db, exec)
	var exists bool
	if err = sqlx.GetContext(ctx, e, &exists, e.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "checking member uniqueness")
	}
	if exists {
		return member.ErrMemberExists
	}
	return nil
}

func (repo memberRepository) CreateMember(ctx context.Context, mbr member.Member, exec ...core.DBExecutor) (member.Member, error) {
	mbr.ID = uuid.New().String()
	row := repo.pack(mbr)

	q := `INSERT INTO member (` + memberColumns + `)
VALUES (:id, :name, :email, :phone, :address, :city, :date_of_birth, :gender,
:membership_type, :status, :membership_start_date, :membership_end_date, :monthly_fee,
:total_sessions, :completed_sessions, :emergency_contact, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), q, row); err != nil {
		return member.Member{}, errors.Wrap(err, "inserting member")
	}
	return repo.unpack(row), nil
}

func (repo memberRepository) QueryMembers(ctx context.Context, filter *member.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]member.Member, error) {
	var conds []string
	var args []interface{}

	if filter != nil {
		if filter.Search != "" {
			val := "%" + filter.Search + "%"
			conds = append(conds, `(name ILIKE ? OR email ILIKE ? OR phone ILIKE ? OR city ILIKE ?)`)
			args = append(args, val, val, val, val)
		}
		if len(filter.Statuses) > 0 {
			conds = append(conds, `status IN (?)`)
			args = append(args, filter.Statuses)
		}
		if len(filter.MembershipTypes) > 0 {
			conds = append(conds, `membership_type IN (?)`)
			args = append(args, filter.MembershipTypes)
		}
		if !filter.ExpiringBefore.IsZero() {
			conds = append(conds, `membership_end_date IS NOT NULL AND membership_end_date < ?`)
			args = append(args, filter.ExpiringBefore)
		}
	}

	q := `SELECT ` + memberColumns + ` FROM member` + where(conds) + orderBy(ordering)
	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "building member query")
	}

	e := ext(repo.db, exec)
	var rows []memberRow
	if err = sqlx.SelectContext(ctx, e, &rows, e.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying members")
	}
	return repo.unpackSlice(rows), nil
}

func (repo memberRepository) GetMember(ctx context.Context, filter member.GetFilter, exec ...core.DBExecutor) (member.Member, error) {
	var cond string
	var args []interface{}

	switch {
	case filter.ID != "":
		if _, err := uuid.Parse(filter.ID); err != nil {
			return member.Member{}, member.ErrNotFound
		}
		cond = `id = ?`
		args = append(args, filter.ID)
	case filter.Email != "":
		cond = `email = ?`
		args = append(args, filter.Email)
	case filter.Phone != "":
		cond = `phone = ?`
		args = append(args, filter.Phone)
	default:
		return member.Member{}, member.ErrNotFound
	}

	e := ext(repo.db, exec)
	q := e.Rebind(`SELECT ` + memberColumns + ` FROM member WHERE ` + cond)

	var row memberRow
	if err := sqlx.GetContext(ctx, e, &row, q, args...); err != nil {
		return member.Member{}, repo.trapNoRowsErr(err, "finding member")
	}
	return repo.unpack(row), nil
}

func (repo memberRepository) UpdateMember(ctx context.Context, mbr member.Member, exec ...core.DBExecutor) (member.Member, error) {
	row := repo.pack(mbr)

	q := `UPDATE member SET name = :name, email = :email, phone = :phone, address = :address,
city = :city, date_of_birth = :date_of_birth, gender = :gender, membership_type = :membership_type,
status = :status, membership_start_date = :membership_start_date,
membership_end_date = :membership_end_date, monthly_fee = :monthly_fee,
total_sessions = :total_sessions, completed_sessions = :completed_sessions,
emergency_contact = :emergency_contact, updated_at = :updated_at
WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), q, row)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "updating member")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return member.Member{}, member.ErrNotFound
	}
	return repo.unpack(row), nil
}

func (repo memberRepository) DeleteMembersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM member WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "building delete query")
	}

	e := ext(repo.db, exec)
	res, err := e.ExecContext(ctx, e.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting members")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "deleting members")
	}
	return int(cnt), nil
}
