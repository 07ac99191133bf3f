package user

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sajidbaba1/fithub/core"
)

// Roles
const (
	RoleOwner        = "OWNER"
	RoleAdmin        = "ADMIN"
	RoleManager      = "MANAGER"
	RoleTrainer      = "TRAINER"
	RoleReceptionist = "RECEPTIONIST"
	RoleMember       = "MEMBER"
)

// Statuses
const (
	StatusActive              = "ACTIVE"
	StatusInactive            = "INACTIVE"
	StatusSuspended           = "SUSPENDED"
	StatusPendingVerification = "PENDING_VERIFICATION"
)

var (
	AllRoles    = []string{RoleOwner, RoleAdmin, RoleManager, RoleTrainer, RoleReceptionist, RoleMember}
	AllStatuses = []string{StatusActive, StatusInactive, StatusSuspended, StatusPendingVerification}

	rolePriorities = map[string]int{
		RoleOwner:        60,
		RoleAdmin:        50,
		RoleManager:      40,
		RoleTrainer:      30,
		RoleReceptionist: 20,
		RoleMember:       10,
	}

	Roles = []Role{
		{Name: "Member", Value: RoleMember},
		{Name: "Receptionist", Value: RoleReceptionist},
		{Name: "Trainer", Value: RoleTrainer},
		{Name: "Manager", Value: RoleManager},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Owner", Value: RoleOwner},
	}
)

func RolePriority(role string) int {
	return rolePriorities[role]
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	IsActive        *bool     `json:"is_active"`
	EmailVerified   bool      `json:"email_verified"`
	Bio             string    `json:"bio"`
	ProfileImageURL string    `json:"profile_image_url"`
	PasswordHash    []byte    `json:"-"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at"` // UTC
	LastLogin       time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// Active reports login eligibility: the account is enabled and its status is ACTIVE.
func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive && u.Status == StatusActive
}

func (u *User) HasRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool   { return u.HasRole(RoleOwner, RoleAdmin) }
func (u *User) IsStaff() bool   { return u.HasRole(RoleOwner, RoleAdmin, RoleManager, RoleReceptionist) }
func (u *User) IsTrainer() bool { return u.Role == RoleTrainer }
func (u *User) IsMember() bool  { return u.Role == RoleMember }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"omitempty,min=3,alphanum_"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,role"`
	Status          string `json:"status" validate:"omitempty,userstatus"`
}

func (nu *NewUser) Validate(ctx context.Context, svc Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	if nu.Role == "" {
		nu.Role = RoleMember
	}
	if nu.Status == "" {
		nu.Status = StatusActive
	}

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Username, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name            string `json:"name"`
	Username        string `json:"username" validate:"omitempty,min=3,alphanum_"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
	IsActive        *bool  `json:"is_active"`
	Role            string `json:"role" validate:"omitempty,role"`
	Status          string `json:"status" validate:"omitempty,userstatus"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profile_image_url" validate:"omitempty,url"`
	Password        string `json:"password" validate:"omitempty"`
	PasswordConfirm string `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(ctx context.Context, origUsr User, svc Service) error {
	name := core.CleanString(uu.Name)
	if name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	uname := core.CleanString(uu.Username, true /* lower */)
	if uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}

	email := core.CleanString(uu.Email, true /* lower */)
	if email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := core.Validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, uu.Username, uu.Email, origUsr)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate() error { return core.Validate.Struct(rp) }

type QueryFilter struct {
	Search      string    `query:"search"`
	Roles       []string  `query:"role"`
	IsActive    *bool     `query:"is_active"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.IsActive == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// GetFilter looks up a single User; the first non-empty field wins.
type GetFilter struct {
	ID              string
	Username        string
	Email           string
	UsernameOrEmail []string
}
