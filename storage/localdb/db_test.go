package localdb

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"edupro/core/grade"
	"edupro/core/lesson"
	"edupro/core/user"
)

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

func openDB(t *testing.T, path string) *DB {
	db, err := Open(path, testLogger{})
	if err != nil {
		t.Fatalf("openDB() failed: %v", err)
	}
	return db
}

func readBlob(t *testing.T, path string) map[string]json.RawMessage {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("readBlob() failed: %v", err)
	}
	var blob map[string]json.RawMessage
	if err := json.Unmarshal(raw, &blob); err != nil {
		t.Fatalf("readBlob() failed: %v", err)
	}
	return blob
}

func Test_Open_missingFileSeeds(t *testing.T) {
	db := openDB(t, filepath.Join(t.TempDir(), "edupro.json"))

	users, err := NewUserRepository(db).QueryAllUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 3)
	assert.Equal(t, "admin", users[0].Username)

	lessons, err := NewLessonRepository(db).QueryAllLessons()
	assert.NoError(t, err)
	assert.Len(t, lessons, 2)
	assert.Equal(t, "My New School", lessons[0].Title)

	_, ok := db.CurrentUser()
	assert.False(t, ok)
}

// every mutation is written through; a reopened DB sees it.
func Test_DB_writeThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edupro.json")
	db := openDB(t, path)

	usr, err := NewUserRepository(db).CreateUser(user.User{
		ID: "42", Username: "newbie", FullName: "New Student", Role: user.RoleStudent, Status: user.StatusPending,
	})
	assert.NoError(t, err)

	reopened := openDB(t, path)
	got, err := NewUserRepository(reopened).GetUserByID(usr.ID)
	assert.NoError(t, err)
	assert.Equal(t, usr.Username, got.Username)

	t.Run("status change survives reopen", func(t *testing.T) {
		_, err := NewUserRepository(db).SetUserStatus(usr.ID, user.StatusActive)
		assert.NoError(t, err)

		got, err := NewUserRepository(openDB(t, path)).GetUserByID(usr.ID)
		assert.NoError(t, err)
		assert.Equal(t, user.StatusActive, got.Status)
	})

	t.Run("deletion survives reopen", func(t *testing.T) {
		assert.NoError(t, NewUserRepository(db).DeleteUser(usr.ID))

		_, err := NewUserRepository(openDB(t, path)).GetUserByID(usr.ID)
		assert.Equal(t, user.ErrNotFound, err)
	})
}

// grades live in memory only; they are never written to the blob and reset on
// every Open.
func Test_DB_gradesAreVolatile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edupro.json")
	db := openDB(t, path)

	repo := NewGradeRepository(db)
	_, err := repo.CreateGrade(grade.Grade{ID: "g1", StudentID: "3", Score: 8})
	assert.NoError(t, err)

	grades, err := repo.QueryAllGrades()
	assert.NoError(t, err)
	assert.Len(t, grades, 1)

	// force a commit of the persisted collections
	_, err = NewUserRepository(db).CreateUser(user.User{ID: "42", Username: "newbie"})
	assert.NoError(t, err)

	blob := readBlob(t, path)
	assert.Contains(t, blob, "users")
	assert.Contains(t, blob, "lessons")
	assert.NotContains(t, blob, "grades")

	grades, err = NewGradeRepository(openDB(t, path)).QueryAllGrades()
	assert.NoError(t, err)
	assert.Empty(t, grades)
}

func Test_DB_sessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edupro.json")
	db := openDB(t, path)

	usr := user.User{ID: "1", Username: "admin", Role: user.RoleAdmin, Status: user.StatusActive}
	assert.NoError(t, db.SetCurrentUser(usr))

	cur, ok := openDB(t, path).CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, usr.ID, cur.ID)

	assert.NoError(t, db.ClearCurrentUser())
	_, ok = openDB(t, path).CurrentUser()
	assert.False(t, ok)
}

func Test_Open_corruptedBlobSeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edupro.json")
	assert.NoError(t, ioutil.WriteFile(path, []byte("{not json"), 0644))

	db := openDB(t, path)
	users, err := NewUserRepository(db).QueryAllUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 3)
}

// corruption of one collection must not taint the others.
func Test_Open_corruptedCollectionIsIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edupro.json")
	db := openDB(t, path)
	les, err := NewLessonRepository(db).CreateLesson(lesson.Lesson{ID: "l3", Unit: 3, Title: "My Friends"})
	assert.NoError(t, err)

	blob := readBlob(t, path)
	blob["users"] = json.RawMessage(`"garbage"`)
	raw, err := json.Marshal(blob)
	assert.NoError(t, err)
	assert.NoError(t, ioutil.WriteFile(path, raw, 0644))

	reopened := openDB(t, path)

	// users fell back to seed
	users, err := NewUserRepository(reopened).QueryAllUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 3)

	// lessons kept the persisted state
	got, err := NewLessonRepository(reopened).GetLessonByID(les.ID)
	assert.NoError(t, err)
	assert.Equal(t, "My Friends", got.Title)
}

func Test_DB_ResetToSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edupro.json")
	db := openDB(t, path)

	_, err := NewUserRepository(db).CreateUser(user.User{ID: "42", Username: "newbie"})
	assert.NoError(t, err)
	assert.NoError(t, db.SetCurrentUser(user.User{ID: "42"}))

	assert.NoError(t, db.ResetToSeed())

	users, err := NewUserRepository(db).QueryAllUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 3)
	_, ok := db.CurrentUser()
	assert.False(t, ok)

	// the reset is itself persisted
	users, err = NewUserRepository(openDB(t, path)).QueryAllUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 3)
}
