package user

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"edupro/core"
)

// in-memory fakes; storage behavior proper is covered in storage/localdb tests.

type fakeRepo struct {
	users []User
}

var _ Repository = (*fakeRepo)(nil)

func (r *fakeRepo) CreateUser(usr User) (User, error) {
	r.users = append(r.users, usr)
	return usr, nil
}

func (r *fakeRepo) QueryAllUsers() ([]User, error) { return r.users, nil }

func (r *fakeRepo) FilterUsers(filter QueryFilter) ([]User, error) {
	res := make([]User, 0, len(r.users))
	for _, usr := range r.users {
		if filter.Role != "" && usr.Role != filter.Role {
			continue
		}
		if filter.Status != nil && usr.Status != *filter.Status {
			continue
		}
		res = append(res, usr)
	}
	return res, nil
}

func (r *fakeRepo) GetUserByID(id string) (User, error) {
	for _, usr := range r.users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *fakeRepo) GetUserByUsername(username string) (User, error) {
	for _, usr := range r.users {
		if usr.Username == username {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *fakeRepo) SetUserStatus(id string, status Status) (User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Status = status
			return r.users[i], nil
		}
	}
	return User{}, ErrNotFound
}

func (r *fakeRepo) DeleteUser(id string) error {
	for i, usr := range r.users {
		if usr.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeSession struct {
	cur *User
}

var _ SessionStore = (*fakeSession)(nil)

func (s *fakeSession) CurrentUser() (User, bool) {
	if s.cur == nil {
		return User{}, false
	}
	return *s.cur, true
}
func (s *fakeSession) SetCurrentUser(usr User) error { s.cur = &usr; return nil }
func (s *fakeSession) ClearCurrentUser() error       { s.cur = nil; return nil }

type nopMailService struct{}

func (nopMailService) SendMessages(...*core.EmailMessage) {}

func setup() (Service, *fakeRepo, *fakeSession) {
	repo := new(fakeRepo)
	session := new(fakeSession)
	svc := NewService(repo, session, nopMailService{}, &core.Config{AppName: "EduPro"})
	return svc, repo, session
}

func Test_service_Register(t *testing.T) {
	svc, repo, _ := setup()

	usr, err := svc.Register(RegisterUser{Username: "newbie", FullName: "New Student"})
	assert.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, RoleStudent, usr.Role)
	assert.Equal(t, StatusPending, usr.Status)
	assert.Len(t, repo.users, 1)

	// a duplicate username is not rejected; both accounts coexist
	dup, err := svc.Register(RegisterUser{Username: "newbie", FullName: "Other Student"})
	assert.NoError(t, err)
	assert.NotEqual(t, usr.ID, dup.ID)
	assert.Len(t, repo.users, 2)
}

func Test_service_Provision(t *testing.T) {
	svc, repo, _ := setup()

	usr, err := svc.Provision(ProvisionUser{Username: "teacher2", FullName: "Second Teacher", Role: RoleTeacher})
	assert.NoError(t, err)
	assert.Equal(t, RoleTeacher, usr.Role)
	assert.Equal(t, StatusActive, usr.Status, "provisioned accounts skip the approval pipeline")
	assert.Len(t, repo.users, 1)
}

func Test_service_Login(t *testing.T) {
	svc, _, session := setup()
	usr, err := svc.Provision(ProvisionUser{Username: "Admin", FullName: "The Admin", Role: RoleAdmin})
	assert.NoError(t, err)

	t.Run("exact match logs in", func(t *testing.T) {
		got, err := svc.Login("Admin")
		assert.NoError(t, err)
		assert.Equal(t, usr.ID, got.ID)
		cur, ok := session.CurrentUser()
		assert.True(t, ok)
		assert.Equal(t, usr.ID, cur.ID)
	})

	t.Run("matching is case-sensitive", func(t *testing.T) {
		_, err := svc.Login("admin")
		assert.Equal(t, ErrInvalidCredentials, errors.Cause(err))
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		_, err := svc.Login("  Admin  ")
		assert.NoError(t, err)
	})

	t.Run("unknown username leaves the session untouched", func(t *testing.T) {
		_, err := svc.Login("nobody")
		assert.Equal(t, ErrInvalidCredentials, errors.Cause(err))

		cur, ok := session.CurrentUser()
		assert.True(t, ok)
		assert.Equal(t, usr.ID, cur.ID)
	})

	t.Run("pending accounts still log in", func(t *testing.T) {
		_, err := svc.Register(RegisterUser{Username: "newbie", FullName: "New Student"})
		assert.NoError(t, err)
		got, err := svc.Login("newbie")
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
	})
}

func Test_service_Logout(t *testing.T) {
	svc, _, session := setup()
	_, err := svc.Provision(ProvisionUser{Username: "admin", FullName: "The Admin", Role: RoleAdmin})
	assert.NoError(t, err)
	_, err = svc.Login("admin")
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout())
	_, ok := session.CurrentUser()
	assert.False(t, ok)

	// logging out twice is harmless
	assert.NoError(t, svc.Logout())
}

func Test_service_Approve(t *testing.T) {
	svc, repo, _ := setup()
	usr, err := svc.Register(RegisterUser{Username: "newbie", FullName: "New Student"})
	assert.NoError(t, err)

	t.Run("pending becomes active", func(t *testing.T) {
		got, err := svc.Approve(usr.ID)
		assert.NoError(t, err)
		assert.Equal(t, StatusActive, got.Status)
	})

	t.Run("approving twice is idempotent", func(t *testing.T) {
		got, err := svc.Approve(usr.ID)
		assert.NoError(t, err)
		assert.Equal(t, StatusActive, got.Status)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := len(repo.users)
		got, err := svc.Approve("nope")
		assert.NoError(t, err)
		assert.Empty(t, got.ID)
		assert.Len(t, repo.users, before)
	})
}

func Test_service_Delete(t *testing.T) {
	svc, repo, _ := setup()
	usr, err := svc.Provision(ProvisionUser{Username: "teacher2", FullName: "Second Teacher", Role: RoleTeacher})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(usr.ID))
	assert.Empty(t, repo.users)

	// deleting an absent id is a no-op
	assert.NoError(t, svc.Delete(usr.ID))
}

func Test_service_Filter(t *testing.T) {
	svc, _, _ := setup()
	_, err := svc.Provision(ProvisionUser{Username: "teacher2", FullName: "Second Teacher", Role: RoleTeacher})
	assert.NoError(t, err)
	_, err = svc.Register(RegisterUser{Username: "newbie", FullName: "New Student"})
	assert.NoError(t, err)

	pending := StatusPending
	got, err := svc.Filter(QueryFilter{Status: &pending})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "newbie", got[0].Username)

	got, err = svc.Filter(QueryFilter{Role: RoleTeacher})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "teacher2", got[0].Username)
}
