package aisvc

import (
	"context"

	"edupro/core"
)

// DummyService is a canned core.Advisor for DEV mode and tests.
// Setting Err simulates an unavailable generation service.
type DummyService struct {
	Questions []core.QuizQuestion
	Tip       string
	Err       error
}

var _ core.Advisor = (*DummyService)(nil)

func NewDummyService() *DummyService {
	return &DummyService{
		Questions: []core.QuizQuestion{
			{Question: "Which word means a place where students learn?", Options: []string{"school", "kitchen", "garden", "market"}, CorrectAnswer: 0},
			{Question: "Choose the correct article: ___ apple.", Options: []string{"a", "an", "the", "no article"}, CorrectAnswer: 1},
			{Question: "What is the plural of 'box'?", Options: []string{"boxs", "boxes", "boxies", "box"}, CorrectAnswer: 1},
			{Question: "Pick the verb in: 'An reads every day.'", Options: []string{"An", "reads", "every", "day"}, CorrectAnswer: 1},
			{Question: "Which is a room in a house?", Options: []string{"cloud", "bedroom", "river", "street"}, CorrectAnswer: 1},
		},
		Tip: "Hãy dành 15 phút mỗi ngày để ôn từ vựng nhé!",
	}
}

func (svc *DummyService) GenerateQuizQuestions(_ context.Context, _, _ string) ([]core.QuizQuestion, error) {
	if svc.Err != nil {
		return nil, svc.Err
	}
	return svc.Questions, nil
}

func (svc *DummyService) LearningTip(_ context.Context, _ string) (string, error) {
	if svc.Err != nil {
		return "", svc.Err
	}
	return svc.Tip, nil
}
