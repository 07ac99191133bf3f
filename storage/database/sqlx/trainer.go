package sqlxrepos

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/trainer"
)

// availabilityJSON maps trainer.Availability onto a JSONB column.
type availabilityJSON trainer.Availability

func (a availabilityJSON) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *availabilityJSON) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.Errorf("cannot scan %T into Availability", src)
	}
}

type trainerRow struct {
	ID              string           `db:"id"`
	UserID          null.String      `db:"user_id"`
	EmployeeID      string           `db:"employee_id"`
	Name            string           `db:"name"`
	Email           null.String      `db:"email"`
	Phone           null.String      `db:"phone"`
	Specializations pq.StringArray   `db:"specializations"`
	Certifications  pq.StringArray   `db:"certifications"`
	ExperienceYears int              `db:"experience_years"`
	EmploymentType  string           `db:"employment_type"`
	Status          string           `db:"status"`
	Availability    availabilityJSON `db:"availability"`
	Rating          float64          `db:"rating"`
	TotalRatings    int              `db:"total_ratings"`
	TotalClasses    int              `db:"total_classes"`
	TotalMembers    int              `db:"total_members"`
	CreatedAt       null.Time        `db:"created_at"`
	UpdatedAt       null.Time        `db:"updated_at"`
}

const trainerColumns = `id, user_id, employee_id, name, email, phone, specializations,
certifications, experience_years, employment_type, status, availability, rating,
total_ratings, total_classes, total_members, created_at, updated_at`

type trainerRepository struct {
	db *sqlx.DB
}

var _ trainer.Repository = (*trainerRepository)(nil) // interface compliance check

func NewTrainerRepository(db *sqlx.DB) *trainerRepository {
	return &trainerRepository{db: db}
}

func (repo trainerRepository) pack(trn trainer.Trainer) trainerRow {
	return trainerRow{
		ID:              trn.ID,
		UserID:          null.NewString(trn.UserID, trn.UserID != ""),
		EmployeeID:      trn.EmployeeID,
		Name:            trn.Name,
		Email:           null.NewString(trn.Email, trn.Email != ""),
		Phone:           null.NewString(trn.Phone, trn.Phone != ""),
		Specializations: trn.Specializations,
		Certifications:  trn.Certifications,
		ExperienceYears: trn.ExperienceYears,
		EmploymentType:  trn.EmploymentType,
		Status:          trn.Status,
		Availability:    availabilityJSON(trn.Availability),
		Rating:          trn.Rating,
		TotalRatings:    trn.TotalRatings,
		TotalClasses:    trn.TotalClasses,
		TotalMembers:    trn.TotalMembers,
		CreatedAt:       null.NewTime(trn.CreatedAt.UTC(), !trn.CreatedAt.IsZero()),
		UpdatedAt:       null.NewTime(trn.UpdatedAt.UTC(), !trn.UpdatedAt.IsZero()),
	}
}

func (repo trainerRepository) unpack(row trainerRow) trainer.Trainer {
	return trainer.Trainer{
		ID:              row.ID,
		UserID:          row.UserID.String,
		EmployeeID:      row.EmployeeID,
		Name:            row.Name,
		Email:           row.Email.String,
		Phone:           row.Phone.String,
		Specializations: row.Specializations,
		Certifications:  row.Certifications,
		ExperienceYears: row.ExperienceYears,
		EmploymentType:  row.EmploymentType,
		Status:          row.Status,
		Availability:    trainer.Availability(row.Availability),
		Rating:          row.Rating,
		TotalRatings:    row.TotalRatings,
		TotalClasses:    row.TotalClasses,
		TotalMembers:    row.TotalMembers,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

func (repo trainerRepository) unpackSlice(rows []trainerRow) []trainer.Trainer {
	trainers := make([]trainer.Trainer, 0, len(rows))
	for _, row := range rows {
		trainers = append(trainers, repo.unpack(row))
	}
	return trainers
}

func (repo trainerRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return trainer.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo trainerRepository) CheckTrainerUniqueness(ctx context.Context, employeeID string, excludedTrainers []trainer.Trainer, exec ...core.DBExecutor) error {
	q := `SELECT EXISTS (SELECT 1 FROM trainer WHERE employee_id = ?`
	args := []interface{}{employeeID}
	if len(excludedTrainers) > 0 {
		ids := make([]string, 0, len(excludedTrainers))
		for _, t := range excludedTrainers {
			ids = append(ids, t.ID)
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
		return errors.Wrap(err, "checking trainer uniqueness")
	}
	if exists {
		return trainer.ErrTrainerExists
	}
	return nil
}

func (repo trainerRepository) CreateTrainer(ctx context.Context, trn trainer.Trainer, exec ...core.DBExecutor) (trainer.Trainer, error) {
	trn.ID = uuid.New().String()
	row := repo.pack(trn)

	q := `INSERT INTO trainer (` + trainerColumns + `)
VALUES (:id, :user_id, :employee_id, :name, :email, :phone, :specializations,
:certifications, :experience_years, :employment_type, :status, :availability, :rating,
:total_ratings, :total_classes, :total_members, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), q, row); err != nil {
		return trainer.Trainer{}, errors.Wrap(err, "inserting trainer")
	}
	return repo.unpack(row), nil
}

func (repo trainerRepository) QueryTrainers(ctx context.Context, filter *trainer.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]trainer.Trainer, error) {
	var conds []string
	var args []interface{}

	if filter != nil {
		if filter.Search != "" {
			val := "%" + filter.Search + "%"
			conds = append(conds, `(name ILIKE ? OR email ILIKE ? OR employee_id ILIKE ?)`)
			args = append(args, val, val, val)
		}
		if len(filter.Statuses) > 0 {
			conds = append(conds, `status IN (?)`)
			args = append(args, filter.Statuses)
		}
		if len(filter.EmploymentTypes) > 0 {
			conds = append(conds, `employment_type IN (?)`)
			args = append(args, filter.EmploymentTypes)
		}
		// trainers holding any of the wanted specializations
		if len(filter.Specializations) > 0 {
			conds = append(conds, `specializations && ?`)
			args = append(args, pq.StringArray(filter.Specializations))
		}
	}

	q := `SELECT ` + trainerColumns + ` FROM trainer` + where(conds) + orderBy(ordering)
	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "building trainer query")
	}

	e := ext(repo.db, exec)
	var rows []trainerRow
	if err = sqlx.SelectContext(ctx, e, &rows, e.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying trainers")
	}
	return repo.unpackSlice(rows), nil
}

func (repo trainerRepository) GetTrainer(ctx context.Context, filter trainer.GetFilter, exec ...core.DBExecutor) (trainer.Trainer, error) {
	var cond string
	var args []interface{}

	switch {
	case filter.ID != "":
		if _, err := uuid.Parse(filter.ID); err != nil {
			return trainer.Trainer{}, trainer.ErrNotFound
		}
		cond = `id = ?`
		args = append(args, filter.ID)
	case filter.UserID != "":
		cond = `user_id = ?`
		args = append(args, filter.UserID)
	case filter.EmployeeID != "":
		cond = `employee_id = ?`
		args = append(args, filter.EmployeeID)
	default:
		return trainer.Trainer{}, trainer.ErrNotFound
	}

	e := ext(repo.db, exec)
	q := e.Rebind(`SELECT ` + trainerColumns + ` FROM trainer WHERE ` + cond)

	var row trainerRow
	if err := sqlx.GetContext(ctx, e, &row, q, args...); err != nil {
		return trainer.Trainer{}, repo.trapNoRowsErr(err, "finding trainer")
	}
	return repo.unpack(row), nil
}

func (repo trainerRepository) UpdateTrainer(ctx context.Context, trn trainer.Trainer, exec ...core.DBExecutor) (trainer.Trainer, error) {
	row := repo.pack(trn)

	q := `UPDATE trainer SET user_id = :user_id, employee_id = :employee_id, name = :name,
email = :email, phone = :phone, specializations = :specializations,
certifications = :certifications, experience_years = :experience_years,
employment_type = :employment_type, status = :status, availability = :availability,
rating = :rating, total_ratings = :total_ratings, total_classes = :total_classes,
total_members = :total_members, updated_at = :updated_at
WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), q, row)
	if err != nil {
		return trainer.Trainer{}, errors.Wrap(err, "updating trainer")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return trainer.Trainer{}, trainer.ErrNotFound
	}
	return repo.unpack(row), nil
}

func (repo trainerRepository) DeleteTrainersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM trainer WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "building delete query")
	}

	e := ext(repo.db, exec)
	res, err := e.ExecContext(ctx, e.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting trainers")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "deleting trainers")
	}
	return int(cnt), nil
}
