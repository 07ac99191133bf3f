package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/user"
)

type userRow struct {
	ID              string      `db:"id"`
	Name            null.String `db:"name"`
	Username        null.String `db:"username"`
	Email           null.String `db:"email"`
	Phone           null.String `db:"phone"`
	Role            string      `db:"role"`
	Status          string      `db:"status"`
	IsActive        null.Bool   `db:"is_active"`
	EmailVerified   bool        `db:"email_verified"`
	Bio             null.String `db:"bio"`
	ProfileImageURL null.String `db:"profile_image_url"`
	PasswordHash    null.Bytes  `db:"password_hash"`
	CreatedAt       null.Time   `db:"created_at"`
	UpdatedAt       null.Time   `db:"updated_at"`
	LastLogin       null.Time   `db:"last_login"`
}

const userColumns = `id, name, username, email, phone, role, status, is_active, email_verified,
bio, profile_image_url, password_hash, created_at, updated_at, last_login`

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) pack(usr user.User) userRow {
	return userRow{
		ID:              usr.ID,
		Name:            null.NewString(usr.Name, usr.Name != ""),
		Username:        null.NewString(usr.Username, usr.Username != ""),
		Email:           null.NewString(usr.Email, usr.Email != ""),
		Phone:           null.NewString(usr.Phone, usr.Phone != ""),
		Role:            usr.Role,
		Status:          usr.Status,
		IsActive:        null.BoolFromPtr(usr.IsActive),
		EmailVerified:   usr.EmailVerified,
		Bio:             null.NewString(usr.Bio, usr.Bio != ""),
		ProfileImageURL: null.NewString(usr.ProfileImageURL, usr.ProfileImageURL != ""),
		PasswordHash:    null.BytesFrom(usr.PasswordHash),
		CreatedAt:       null.NewTime(usr.CreatedAt.UTC(), !usr.CreatedAt.IsZero()),
		UpdatedAt:       null.NewTime(usr.UpdatedAt.UTC(), !usr.UpdatedAt.IsZero()),
		LastLogin:       null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (repo userRepository) unpack(row userRow) user.User {
	return user.User{
		ID:              row.ID,
		Name:            row.Name.String,
		Username:        row.Username.String,
		Email:           row.Email.String,
		Phone:           row.Phone.String,
		Role:            row.Role,
		Status:          row.Status,
		IsActive:        row.IsActive.Ptr(),
		EmailVerified:   row.EmailVerified,
		Bio:             row.Bio.String,
		ProfileImageURL: row.ProfileImageURL.String,
		PasswordHash:    row.PasswordHash.Bytes,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
		LastLogin:       row.LastLogin.Time,
	}
}

func (repo userRepository) unpackSlice(rows []userRow) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, repo.unpack(row))
	}
	return users
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers []user.User, exec ...core.DBExecutor) error {
	q := `SELECT EXISTS (SELECT 1 FROM "user" WHERE (username = ? OR email = ?)`
	args := []interface{}{username, email}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
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
		return errors.Wrap(err, "checking user uniqueness")
	}
	if exists {
		return user.ErrUserExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	usr.ID = uuid.New().String()
	row := repo.pack(usr)

	q := `INSERT INTO "user" (` + userColumns + `)
VALUES (:id, :name, :username, :email, :phone, :role, :status, :is_active, :email_verified,
:bio, :profile_image_url, :password_hash, :created_at, :updated_at, :last_login)`
	if _, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), q, row); err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return repo.unpack(row), nil
}

func (repo userRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]user.User, error) {
	var conds []string
	var args []interface{}

	if filter != nil {
		// users with Name, Username or Email matching the search keyword
		if filter.Search != "" {
			val := "%" + filter.Search + "%"
			conds = append(conds, `(name ILIKE ? OR username ILIKE ? OR email ILIKE ?)`)
			args = append(args, val, val, val)
		}
		if len(filter.Roles) > 0 {
			conds = append(conds, `role IN (?)`)
			args = append(args, filter.Roles)
		}
		if filter.IsActive != nil {
			conds = append(conds, `is_active = ?`)
			args = append(args, *filter.IsActive)
		}
		if !filter.CreatedFrom.IsZero() {
			conds = append(conds, `created_at >= ?`)
			args = append(args, filter.CreatedFrom.UTC())
		}
		if !filter.CreatedTo.IsZero() {
			conds = append(conds, `created_at <= ?`)
			args = append(args, filter.CreatedTo.UTC())
		}
	}

	q := `SELECT ` + userColumns + ` FROM "user"` + where(conds) + orderBy(ordering)
	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "building user query")
	}

	e := ext(repo.db, exec)
	var rows []userRow
	if err = sqlx.SelectContext(ctx, e, &rows, e.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return repo.unpackSlice(rows), nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	var cond string
	var args []interface{}

	switch {
	case filter.ID != "":
		if _, err := uuid.Parse(filter.ID); err != nil {
			return user.User{}, user.ErrNotFound
		}
		cond = `id = ?`
		args = append(args, filter.ID)
	case filter.Username != "":
		cond = `username = ?`
		args = append(args, filter.Username)
	case filter.Email != "":
		cond = `email = ?`
		args = append(args, filter.Email)
	case filter.UsernameOrEmail != nil:
		var email string
		uname := filter.UsernameOrEmail[0]
		if len(filter.UsernameOrEmail) == 2 {
			email = filter.UsernameOrEmail[1]
		}
		if email == "" {
			email = uname
		} else if uname == "" {
			uname = email
		}
		cond = `(username = ? OR email = ?)`
		args = append(args, uname, email)
	default:
		return user.User{}, user.ErrNotFound
	}

	e := ext(repo.db, exec)
	q := e.Rebind(`SELECT ` + userColumns + ` FROM "user" WHERE ` + cond)

	var row userRow
	if err := sqlx.GetContext(ctx, e, &row, q, args...); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user")
	}
	return repo.unpack(row), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	row := repo.pack(usr)

	q := `UPDATE "user" SET name = :name, username = :username, email = :email, phone = :phone,
role = :role, status = :status, is_active = :is_active, email_verified = :email_verified,
bio = :bio, profile_image_url = :profile_image_url, password_hash = :password_hash,
updated_at = :updated_at, last_login = :last_login
WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), q, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.unpack(row), nil
}

func (repo userRepository) DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "building delete query")
	}

	e := ext(repo.db, exec)
	res, err := e.ExecContext(ctx, e.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting users")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "deleting users")
	}
	return int(cnt), nil
}
