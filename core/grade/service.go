package grade

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type (
	Repository interface {
		CreateGrade(g Grade) (Grade, error)
		QueryAllGrades() ([]Grade, error)
		QueryGradesByStudentID(studentID string) ([]Grade, error)
	}

	Service interface {
		Record(ng NewGrade) (Grade, error)
		QueryAll() ([]Grade, error)
		QueryByStudentID(studentID string) ([]Grade, error)
		Progress(studentID string) (Progress, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Record appends a new grade; grades are never mutated and never deleted.
func (svc *service) Record(ng NewGrade) (Grade, error) {
	typ := ng.Type
	if !typ.Valid() {
		typ = TypeRegular
	}
	g := Grade{
		ID:        uuid.New().String(),
		StudentID: ng.StudentID,
		QuizID:    ng.QuizID,
		Score:     ng.Score,
		Date:      time.Now().Format("02/01/2006"),
		Type:      typ,
	}
	g, err := svc.repo.CreateGrade(g)
	if err != nil {
		return Grade{}, errors.Wrap(err, "recording grade")
	}
	return g, nil
}

func (svc *service) QueryAll() ([]Grade, error) {
	return svc.repo.QueryAllGrades()
}

func (svc *service) QueryByStudentID(studentID string) ([]Grade, error) {
	return svc.repo.QueryGradesByStudentID(studentID)
}

// Progress aggregates a student's grades; the average is rounded to one
// decimal place to match its display form.
func (svc *service) Progress(studentID string) (Progress, error) {
	grades, err := svc.repo.QueryGradesByStudentID(studentID)
	if err != nil {
		return Progress{}, errors.Wrap(err, "querying grades")
	}
	p := Progress{StudentID: studentID, GradeCount: len(grades)}
	if len(grades) == 0 {
		return p, nil
	}
	var sum float64
	for _, g := range grades {
		sum += g.Score
	}
	p.AverageScore = math.Round(sum/float64(len(grades))*10) / 10
	return p, nil
}
