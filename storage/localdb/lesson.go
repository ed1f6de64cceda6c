package localdb

import "edupro/core/lesson"

type lessonRepository struct {
	db *DB
}

var _ lesson.Repository = (*lessonRepository)(nil)

func NewLessonRepository(db *DB) lesson.Repository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) CreateLesson(les lesson.Lesson) (lesson.Lesson, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.lessons = append(r.db.lessons, les)
	if err := r.db.commit(); err != nil {
		return lesson.Lesson{}, err
	}
	return les, nil
}

func (r *lessonRepository) QueryAllLessons() ([]lesson.Lesson, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	res := make([]lesson.Lesson, len(r.db.lessons))
	copy(res, r.db.lessons)
	return res, nil
}

func (r *lessonRepository) GetLessonByID(id string) (lesson.Lesson, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, les := range r.db.lessons {
		if les.ID == id {
			return les, nil
		}
	}
	return lesson.Lesson{}, lesson.ErrNotFound
}

func (r *lessonRepository) DeleteLesson(id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, les := range r.db.lessons {
		if les.ID == id {
			r.db.lessons = append(r.db.lessons[:i], r.db.lessons[i+1:]...)
			return r.db.commit()
		}
	}
	return nil
}
