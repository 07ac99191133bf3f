package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/class"
)

type classRow struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Description       null.String    `db:"description"`
	ClassType         string         `db:"class_type"`
	Instructor        null.String    `db:"instructor"`
	ClassDate         core.Date      `db:"class_date"`
	StartTime         core.TimeOfDay `db:"start_time"`
	EndTime           core.TimeOfDay `db:"end_time"`
	Duration          int            `db:"duration"`
	MaxCapacity       int            `db:"max_capacity"`
	CurrentEnrollment int            `db:"current_enrollment"`
	Status            string         `db:"status"`
	DifficultyLevel   null.String    `db:"difficulty_level"`
	Room              null.String    `db:"room"`
	Price             float64        `db:"price"`
	Equipment         null.String    `db:"equipment"`
	Notes             null.String    `db:"notes"`
	CreatedAt         null.Time      `db:"created_at"`
	UpdatedAt         null.Time      `db:"updated_at"`
}

const classColumns = `id, name, description, class_type, instructor, class_date, start_time,
end_time, duration, max_capacity, current_enrollment, status, difficulty_level, room, price,
equipment, notes, created_at, updated_at`

type classRepository struct {
	db *sqlx.DB
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *sqlx.DB) *classRepository {
	return &classRepository{db: db}
}

func (repo classRepository) pack(cls class.Class) classRow {
	return classRow{
		ID:                cls.ID,
		Name:              cls.Name,
		Description:       null.NewString(cls.Description, cls.Description != ""),
		ClassType:         cls.ClassType,
		Instructor:        null.NewString(cls.Instructor, cls.Instructor != ""),
		ClassDate:         cls.ClassDate,
		StartTime:         cls.StartTime,
		EndTime:           cls.EndTime,
		Duration:          cls.Duration,
		MaxCapacity:       cls.MaxCapacity,
		CurrentEnrollment: cls.CurrentEnrollment,
		Status:            cls.Status,
		DifficultyLevel:   null.NewString(cls.DifficultyLevel, cls.DifficultyLevel != ""),
		Room:              null.NewString(cls.Room, cls.Room != ""),
		Price:             cls.Price,
		Equipment:         null.NewString(cls.Equipment, cls.Equipment != ""),
		Notes:             null.NewString(cls.Notes, cls.Notes != ""),
		CreatedAt:         null.NewTime(cls.CreatedAt.UTC(), !cls.CreatedAt.IsZero()),
		UpdatedAt:         null.NewTime(cls.UpdatedAt.UTC(), !cls.UpdatedAt.IsZero()),
	}
}

func (repo classRepository) unpack(row classRow) class.Class {
	return class.Class{
		ID:                row.ID,
		Name:              row.Name,
		Description:       row.Description.String,
		ClassType:         row.ClassType,
		Instructor:        row.Instructor.String,
		ClassDate:         row.ClassDate,
		StartTime:         row.StartTime,
		EndTime:           row.EndTime,
		Duration:          row.Duration,
		MaxCapacity:       row.MaxCapacity,
		CurrentEnrollment: row.CurrentEnrollment,
		Status:            row.Status,
		DifficultyLevel:   row.DifficultyLevel.String,
		Room:              row.Room.String,
		Price:             row.Price,
		Equipment:         row.Equipment.String,
		Notes:             row.Notes.String,
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}

func (repo classRepository) unpackSlice(rows []classRow) []class.Class {
	classes := make([]class.Class, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, repo.unpack(row))
	}
	return classes
}

func (repo classRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return class.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo classRepository) CreateClass(ctx context.Context, cls class.Class, exec ...core.DBExecutor) (class.Class, error) {
	cls.ID = uuid.New().String()
	row := repo.pack(cls)

	q := `INSERT INTO class (` + classColumns + `)
VALUES (:id, :name, :description, :class_type, :instructor, :class_date, :start_time,
:end_time, :duration, :max_capacity, :current_enrollment, :status, :difficulty_level, :room,
:price, :equipment, :notes, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), q, row); err != nil {
		return class.Class{}, errors.Wrap(err, "inserting class")
	}
	return repo.unpack(row), nil
}

func (repo classRepository) QueryClasses(ctx context.Context, filter *class.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]class.Class, error) {
	var conds []string
	var args []interface{}

	if filter != nil {
		if filter.Search != "" {
			val := "%" + filter.Search + "%"
			conds = append(conds, `(name ILIKE ? OR description ILIKE ? OR instructor ILIKE ?)`)
			args = append(args, val, val, val)
		}
		if len(filter.Statuses) > 0 {
			conds = append(conds, `status IN (?)`)
			args = append(args, filter.Statuses)
		}
		if len(filter.Types) > 0 {
			conds = append(conds, `class_type IN (?)`)
			args = append(args, filter.Types)
		}
		if filter.Instructor != "" {
			conds = append(conds, `instructor = ?`)
			args = append(args, filter.Instructor)
		}
		if filter.Room != "" {
			conds = append(conds, `room = ?`)
			args = append(args, filter.Room)
		}
		if len(filter.Difficulties) > 0 {
			conds = append(conds, `difficulty_level IN (?)`)
			args = append(args, filter.Difficulties)
		}
		if !filter.Date.IsZero() {
			conds = append(conds, `class_date = ?`)
			args = append(args, filter.Date)
		}
		if !filter.DateFrom.IsZero() {
			conds = append(conds, `class_date >= ?`)
			args = append(args, filter.DateFrom)
		}
		if !filter.DateTo.IsZero() {
			conds = append(conds, `class_date <= ?`)
			args = append(args, filter.DateTo)
		}
	}

	q := `SELECT ` + classColumns + ` FROM class` + where(conds) + orderBy(ordering)
	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "building class query")
	}

	e := ext(repo.db, exec)
	var rows []classRow
	if err = sqlx.SelectContext(ctx, e, &rows, e.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	return repo.unpackSlice(rows), nil
}

func (repo classRepository) GetClass(ctx context.Context, filter class.GetFilter, exec ...core.DBExecutor) (class.Class, error) {
	if filter.ID == "" {
		return class.Class{}, class.ErrNotFound
	}
	if _, err := uuid.Parse(filter.ID); err != nil {
		return class.Class{}, class.ErrNotFound
	}

	e := ext(repo.db, exec)
	q := e.Rebind(`SELECT ` + classColumns + ` FROM class WHERE id = ?`)

	var row classRow
	if err := sqlx.GetContext(ctx, e, &row, q, filter.ID); err != nil {
		return class.Class{}, repo.trapNoRowsErr(err, "finding class")
	}
	return repo.unpack(row), nil
}

func (repo classRepository) UpdateClass(ctx context.Context, cls class.Class, exec ...core.DBExecutor) (class.Class, error) {
	row := repo.pack(cls)

	q := `UPDATE class SET name = :name, description = :description, class_type = :class_type,
instructor = :instructor, class_date = :class_date, start_time = :start_time,
end_time = :end_time, duration = :duration, max_capacity = :max_capacity,
current_enrollment = :current_enrollment, status = :status,
difficulty_level = :difficulty_level, room = :room, price = :price, equipment = :equipment,
notes = :notes, updated_at = :updated_at
WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), q, row)
	if err != nil {
		return class.Class{}, errors.Wrap(err, "updating class")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return class.Class{}, class.ErrNotFound
	}
	return repo.unpack(row), nil
}

func (repo classRepository) DeleteClassesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM class WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "building delete query")
	}

	e := ext(repo.db, exec)
	res, err := e.ExecContext(ctx, e.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting classes")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "deleting classes")
	}
	return int(cnt), nil
}

// IncrementEnrollment takes a seat atomically: the capacity guard lives in the
// WHERE clause so concurrent enrollments cannot oversell a class.
func (repo classRepository) IncrementEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (class.Class, error) {
	e := ext(repo.db, exec)
	q := e.Rebind(`UPDATE class
SET current_enrollment = current_enrollment + 1, updated_at = ?
WHERE id = ? AND current_enrollment < max_capacity
RETURNING ` + classColumns)

	var row classRow
	err := sqlx.GetContext(ctx, e, &row, q, time.Now().UTC(), id)
	if errors.Cause(err) == sql.ErrNoRows {
		// either the class is gone or the guard failed; look again to tell
		if _, getErr := repo.GetClass(ctx, class.GetFilter{ID: id}, exec...); getErr != nil {
			return class.Class{}, getErr
		}
		return class.Class{}, class.ErrClassFull
	}
	if err != nil {
		return class.Class{}, errors.Wrap(err, "incrementing enrollment")
	}
	return repo.unpack(row), nil
}

func (repo classRepository) DecrementEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (class.Class, error) {
	e := ext(repo.db, exec)
	q := e.Rebind(`UPDATE class
SET current_enrollment = GREATEST(current_enrollment - 1, 0), updated_at = ?
WHERE id = ?
RETURNING ` + classColumns)

	var row classRow
	if err := sqlx.GetContext(ctx, e, &row, q, time.Now().UTC(), id); err != nil {
		return class.Class{}, repo.trapNoRowsErr(err, "decrementing enrollment")
	}
	return repo.unpack(row), nil
}
