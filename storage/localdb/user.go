package localdb

import (
	"strings"

	"edupro/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(usr user.User) (user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.users = append(r.db.users, usr)
	if err := r.db.commit(); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (r *userRepository) QueryAllUsers() ([]user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	res := make([]user.User, len(r.db.users))
	copy(res, r.db.users)
	return res, nil
}

func (r *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	res := make([]user.User, 0, len(r.db.users))
	for _, usr := range r.db.users {
		if filter.Role != "" && usr.Role != filter.Role {
			continue
		}
		if filter.Status != nil && usr.Status != *filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(usr.FullName), search) &&
			!strings.Contains(strings.ToLower(usr.Username), search) {
			continue
		}
		res = append(res, usr)
	}
	return res, nil
}

func (r *userRepository) GetUserByID(id string) (user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, usr := range r.db.users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

// GetUserByUsername returns the first exact (case-sensitive) username match;
// duplicate usernames are tolerated and resolve to the earliest created user.
func (r *userRepository) GetUserByUsername(username string) (user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, usr := range r.db.users {
		if usr.Username == username {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *userRepository) SetUserStatus(id string, status user.Status) (user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.users {
		if r.db.users[i].ID == id {
			r.db.users[i].Status = status
			if err := r.db.commit(); err != nil {
				return user.User{}, err
			}
			return r.db.users[i], nil
		}
	}
	return user.User{}, user.ErrNotFound
}

// DeleteUser removes the user; absent ids are a no-op. Lessons and grades
// referencing the user are not cascaded.
func (r *userRepository) DeleteUser(id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, usr := range r.db.users {
		if usr.ID == id {
			r.db.users = append(r.db.users[:i], r.db.users[i+1:]...)
			return r.db.commit()
		}
	}
	return nil
}
