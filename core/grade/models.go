package grade

import (
	"github.com/go-playground/validator/v10"

	"edupro/core"
)

// Type distinguishes regular exercises from midterm and final exams.
type Type string

const (
	TypeRegular Type = "Regular"
	TypeMidterm Type = "Midterm"
	TypeFinal   Type = "Final"
)

func (t Type) Valid() bool {
	switch t {
	case TypeRegular, TypeMidterm, TypeFinal:
		return true
	}
	return false
}

type Grade struct {
	ID        string  `json:"id"`
	StudentID string  `json:"studentId"`
	QuizID    string  `json:"quizId"` // free-form identifier, not a foreign key
	Score     float64 `json:"score"`  // 0-10 by convention, not enforced
	Date      string  `json:"date"`   // display string
	Type      Type    `json:"type"`
}

// NewGrade contains information needed to record a new Grade.
// Score range and student existence are conventions, not guarantees.
type NewGrade struct {
	StudentID string  `json:"studentId" validate:"required"`
	QuizID    string  `json:"quizId"`
	Score     float64 `json:"score"`
	Type      Type    `json:"type"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.StudentID = core.CleanString(ng.StudentID)
	ng.QuizID = core.CleanString(ng.QuizID)
	return validate.Struct(ng)
}

// Progress summarizes a student's recorded grades for display and for the
// learning-tip prompt: count of grades and average score to one decimal place.
type Progress struct {
	StudentID    string  `json:"studentId"`
	GradeCount   int     `json:"gradeCount"`
	AverageScore float64 `json:"averageScore"`
}
