package core

import (
	"context"

	"github.com/pkg/errors"
)

// ErrAdvisoryUnavailable is returned whenever the external generation service
// cannot produce a usable response: transport failure, quota, malformed payload.
// Callers must degrade to a fallback and never surface it as a crash.
var ErrAdvisoryUnavailable = errors.New("advisory service unavailable")

// QuizQuestion is a single multiple-choice question produced by the advisory service.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Advisor is any best-effort text-generation capability.
// Results are never authoritative and never persisted.
type Advisor interface {
	// GenerateQuizQuestions asks for exactly five multiple-choice questions
	// derived from a lesson. A nil slice with ErrAdvisoryUnavailable means
	// "generation unavailable"; callers must not invent placeholder questions.
	GenerateQuizQuestions(ctx context.Context, lessonTitle, lessonContent string) ([]QuizQuestion, error)

	// LearningTip asks for a short encouraging tip based on a natural-language
	// summary of a student's recent grade statistics.
	LearningTip(ctx context.Context, progressSummary string) (string, error)
}
