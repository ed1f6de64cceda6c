package localdb

import "edupro/core/grade"

// gradeRepository keeps grades in memory only: grades are intentionally not
// written through to the storage blob and reset to empty on every Open.
type gradeRepository struct {
	db *DB
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) CreateGrade(g grade.Grade) (grade.Grade, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.grades = append(r.db.grades, g)
	return g, nil
}

func (r *gradeRepository) QueryAllGrades() ([]grade.Grade, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	res := make([]grade.Grade, len(r.db.grades))
	copy(res, r.db.grades)
	return res, nil
}

func (r *gradeRepository) QueryGradesByStudentID(studentID string) ([]grade.Grade, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	res := make([]grade.Grade, 0, len(r.db.grades))
	for _, g := range r.db.grades {
		if g.StudentID == studentID {
			res = append(res, g)
		}
	}
	return res, nil
}
