package lesson

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("lesson not found")

type (
	Repository interface {
		CreateLesson(les Lesson) (Lesson, error)
		QueryAllLessons() ([]Lesson, error)
		GetLessonByID(id string) (Lesson, error)
		DeleteLesson(id string) error
	}

	Service interface {
		Create(nl NewLesson, authorID string) (Lesson, error)
		QueryAll() ([]Lesson, error)
		GetByID(id string) (Lesson, error)
		Delete(id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create appends a new lesson authored by authorID. The author should exist at
// creation time but the reference is tolerated to dangle after user deletion.
func (svc *service) Create(nl NewLesson, authorID string) (Lesson, error) {
	unit := nl.Unit
	if unit < MinUnit || unit > MaxUnit {
		unit = MinUnit
	}
	category := nl.Category
	if !category.Valid() {
		category = CategoryVocabulary
	}
	les := Lesson{
		ID:        uuid.New().String(),
		Unit:      unit,
		Title:     nl.Title,
		Content:   nl.Content,
		Category:  category,
		CreatedBy: authorID,
		CreatedAt: time.Now().UTC(),
	}
	les, err := svc.repo.CreateLesson(les)
	if err != nil {
		return Lesson{}, errors.Wrap(err, "creating lesson")
	}
	return les, nil
}

func (svc *service) QueryAll() ([]Lesson, error) {
	return svc.repo.QueryAllLessons()
}

func (svc *service) GetByID(id string) (Lesson, error) {
	return svc.repo.GetLessonByID(id)
}

// Delete removes the lesson; grades referencing quizzes derived from it are
// untouched, there is no structural link from Grade to Lesson.
func (svc *service) Delete(id string) error {
	return errors.Wrap(svc.repo.DeleteLesson(id), "deleting lesson")
}
