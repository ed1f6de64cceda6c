// Package localdb implements the app's durable storage: a single local JSON
// blob holding three independently parsed, string-keyed collections
// ("users", "lessons", "currentUser"). Memory is the authority; the file is a
// mirror seeded once at startup and rewritten synchronously on every mutation.
package localdb

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"sync"

	"github.com/pkg/errors"

	"edupro/core"
	"edupro/core/grade"
	"edupro/core/lesson"
	"edupro/core/user"
)

// storage keys
const (
	usersKey   = "users"
	lessonsKey = "lessons"
	sessionKey = "currentUser"
)

type DB struct {
	path string
	log  core.Logger

	mu      sync.RWMutex
	users   []user.User
	lessons []lesson.Lesson
	grades  []grade.Grade // deliberately volatile: never persisted, resets on every Open
	session *user.User
}

// Open reads the blob at path and hydrates memory. A missing file, an
// unparseable blob or an unparseable collection never fails: users/lessons
// fall back to the seed data set and the session to "no session"; recoveries
// are logged for diagnostics only.
func Open(path string, log core.Logger) (*DB, error) {
	db := &DB{path: path, log: log}
	db.load()
	return db, nil
}

func (db *DB) load() {
	db.users = seedUsers()
	db.lessons = seedLessons()
	db.grades = nil
	db.session = nil

	raw, err := ioutil.ReadFile(db.path)
	if err != nil {
		if !os.IsNotExist(err) {
			db.log.Warn("localdb: unreadable storage file, falling back to seed data", err)
		}
		return
	}

	var blob map[string]json.RawMessage
	if err := json.Unmarshal(raw, &blob); err != nil {
		db.log.Warn("localdb: corrupted storage blob, falling back to seed data", err)
		return
	}

	// each key is parsed independently; corruption of one never taints the others
	if data, ok := blob[usersKey]; ok {
		var users []user.User
		if err := json.Unmarshal(data, &users); err != nil {
			db.log.Warn("localdb: corrupted users collection, falling back to seed data", err)
		} else {
			db.users = users
		}
	}
	if data, ok := blob[lessonsKey]; ok {
		var lessons []lesson.Lesson
		if err := json.Unmarshal(data, &lessons); err != nil {
			db.log.Warn("localdb: corrupted lessons collection, falling back to seed data", err)
		} else {
			db.lessons = lessons
		}
	}
	if data, ok := blob[sessionKey]; ok {
		var usr user.User
		if err := json.Unmarshal(data, &usr); err != nil {
			db.log.Warn("localdb: corrupted session, treating as no session", err)
		} else {
			db.session = &usr
		}
	}
}

// commit serializes the named collections from memory and rewrites the blob.
// The write is unconditional: no diffing, no batching, no debouncing.
// Callers must hold db.mu.
func (db *DB) commit() error {
	blob := make(map[string]json.RawMessage, 3)

	users, err := json.Marshal(db.users)
	if err != nil {
		return errors.Wrap(err, "marshalling users")
	}
	blob[usersKey] = users

	lessons, err := json.Marshal(db.lessons)
	if err != nil {
		return errors.Wrap(err, "marshalling lessons")
	}
	blob[lessonsKey] = lessons

	if db.session != nil {
		session, err := json.Marshal(db.session)
		if err != nil {
			return errors.Wrap(err, "marshalling session")
		}
		blob[sessionKey] = session
	}

	raw, err := json.Marshal(blob)
	if err != nil {
		return errors.Wrap(err, "marshalling blob")
	}
	return errors.Wrap(ioutil.WriteFile(db.path, raw, 0644), "writing storage file")
}

// ResetToSeed discards all state, restores the seed data set and commits it.
func (db *DB) ResetToSeed() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users = seedUsers()
	db.lessons = seedLessons()
	db.grades = nil
	db.session = nil
	return db.commit()
}

// Session store

var _ user.SessionStore = (*DB)(nil)

func (db *DB) CurrentUser() (user.User, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.session == nil {
		return user.User{}, false
	}
	return *db.session, true
}

// SetCurrentUser stores a full copy of usr as the session snapshot.
func (db *DB) SetCurrentUser(usr user.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.session = &usr
	return db.commit()
}

func (db *DB) ClearCurrentUser() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.session = nil
	return db.commit()
}
