package user

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"edupro/core"
)

// Role is fixed at user creation and never changes afterwards.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

var AllRoles = []Role{RoleAdmin, RoleTeacher, RoleStudent}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Status governs whether a role-matched session may reach protected content.
// The only transition exercised is Pending -> Active (admin approval);
// Blocked is reserved.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusActive  Status = "ACTIVE"
	StatusBlocked Status = "BLOCKED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusBlocked:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status"`
	Email     string    `json:"email,omitempty"`
	ClassID   string    `json:"classId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"` // UTC
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsActive() bool  { return u.Status == StatusActive }

// RegisterUser contains information needed for self-registration.
// Self-registered accounts are always Student/Pending; no credential is
// verified or stored, the password pair is only checked for equality.
type RegisterUser struct {
	Username        string `json:"username" validate:"required"`
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

func (ru *RegisterUser) Validate(validate *validator.Validate) error {
	ru.Username = core.CleanString(ru.Username)
	ru.FullName = core.CleanString(ru.FullName)
	ru.Email = core.CleanString(ru.Email, true /* lower */)
	return validate.Struct(ru)
}

// ProvisionUser contains information needed for an admin-provisioned account.
// Provisioned accounts are Active immediately and skip the approval pipeline.
type ProvisionUser struct {
	Username string `json:"username" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
	Role     Role   `json:"role" validate:"required,role"`
	Email    string `json:"email" validate:"omitempty,email"`
	ClassID  string `json:"classId"`
}

func (pu *ProvisionUser) Validate(validate *validator.Validate) error {
	pu.Username = core.CleanString(pu.Username)
	pu.FullName = core.CleanString(pu.FullName)
	pu.Email = core.CleanString(pu.Email, true /* lower */)
	return validate.Struct(pu)
}

// QueryFilter applies AND operation on available fields.
// Search does a case-insensitive match on one of User.FullName or User.Username.
type QueryFilter struct {
	Search string  `query:"search"`
	Role   Role    `query:"role"`
	Status *Status `query:"status"`
}

func (f *QueryFilter) Clean() {
	f.Search = core.CleanString(f.Search)
}

var (
	roleTag  = "role"
	roleText = "invalid role"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)
}

// roleValidation checks that the provided role is one of AllRoles.
func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}
