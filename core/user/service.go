package user

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"edupro/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	Repository interface {
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		// FilterUsers applies AND operation on available QueryFilter fields.
		FilterUsers(filter QueryFilter) ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByUsername(username string) (User, error)
		// SetUserStatus is the only in-place User mutation; everything else
		// about a User is immutable post-creation.
		SetUserStatus(id string, status Status) (User, error)
		DeleteUser(id string) error
	}

	// SessionStore owns the single current-user snapshot of the running process.
	SessionStore interface {
		CurrentUser() (User, bool)
		SetCurrentUser(usr User) error
		ClearCurrentUser() error
	}

	Service interface {
		Register(ru RegisterUser) (User, error)
		Provision(pu ProvisionUser) (User, error)
		Login(username string) (User, error)
		Logout() error
		Approve(id string) (User, error)
		Delete(id string) error
		QueryAll() ([]User, error)
		Filter(filter QueryFilter) ([]User, error)
		GetByID(id string) (User, error)
		GetByUsername(uname string) (User, error)
		CurrentUser() (User, bool)
	}

	service struct {
		repo    Repository
		session SessionStore
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, session SessionStore, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:    repo,
		session: session,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// Register creates a Student account awaiting admin approval.
// Duplicate usernames are not rejected; the login lookup returns the first match.
func (svc *service) Register(ru RegisterUser) (User, error) {
	usr := User{
		ID:        uuid.New().String(),
		Username:  ru.Username,
		FullName:  ru.FullName,
		Email:     ru.Email,
		Role:      RoleStudent,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}
	svc.sendRegistrationPendingMail(usr)
	return usr, nil
}

// Provision creates an Active account on behalf of an admin,
// bypassing the pending-approval pipeline.
func (svc *service) Provision(pu ProvisionUser) (User, error) {
	usr := User{
		ID:        uuid.New().String(),
		Username:  pu.Username,
		FullName:  pu.FullName,
		Email:     pu.Email,
		Role:      pu.Role,
		Status:    StatusActive,
		ClassID:   pu.ClassID,
		CreatedAt: time.Now().UTC(),
	}
	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

// Login looks up the first user whose username exactly matches (case-sensitive)
// and makes it the current session regardless of account status; status gating
// happens later at the access gate. No credential is verified.
func (svc *service) Login(username string) (User, error) {
	usr, err := svc.repo.GetUserByUsername(core.CleanString(username))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by username")
	}
	if err := svc.session.SetCurrentUser(usr); err != nil {
		return User{}, errors.Wrap(err, "storing session")
	}
	return usr, nil
}

// Logout clears the session unconditionally; it always succeeds for the caller.
func (svc *service) Logout() error {
	return errors.Wrap(svc.session.ClearCurrentUser(), "clearing session")
}

// Approve activates a Pending account. Absent ids are a no-op and an already
// Active account stays Active with no side effect.
func (svc *service) Approve(id string) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, nil
		}
		return User{}, errors.Wrap(err, "finding user by ID")
	}
	if usr.IsActive() {
		return usr, nil
	}
	usr, err = svc.repo.SetUserStatus(id, StatusActive)
	if err != nil {
		return User{}, errors.Wrap(err, "activating user")
	}
	svc.sendAccountApprovedMail(usr)
	return usr, nil
}

// Delete removes the user; lessons and grades referencing it are left dangling.
func (svc *service) Delete(id string) error {
	return errors.Wrap(svc.repo.DeleteUser(id), "deleting user")
}

func (svc *service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *service) Filter(filter QueryFilter) ([]User, error) {
	return svc.repo.FilterUsers(filter)
}

func (svc *service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(uname))
}

func (svc *service) CurrentUser() (User, bool) {
	return svc.session.CurrentUser()
}

// Mailers; all best-effort, the email field is optional.

func (svc *service) sendRegistrationPendingMail(usr User) {
	msgs := make([]*core.EmailMessage, 0, 2)
	if usr.Email != "" {
		msgs = append(msgs, &core.EmailMessage{
			To:      []mail.Address{{Name: usr.FullName, Address: usr.Email}},
			Subject: "Your account is awaiting approval",
			Body: fmt.Sprintf(
				"Hi %s,\n\nThanks for registering. An administrator will review and activate your account shortly.",
				usr.FullName,
			),
		})
	}
	if svc.conf.AdminEmail.Address != "" {
		msgs = append(msgs, &core.EmailMessage{
			To:      []mail.Address{svc.conf.AdminEmail},
			Subject: "New student registration pending approval",
			Body:    fmt.Sprintf("Student %q (%s) registered and awaits approval.", usr.FullName, usr.Username),
		})
	}
	svc.mailSvc.SendMessages(msgs...)
}

func (svc *service) sendAccountApprovedMail(usr User) {
	if usr.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.FullName, Address: usr.Email}},
		Subject: "Your account has been approved",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour account has been activated. You can now log in and start learning!",
			usr.FullName,
		),
	})
}
