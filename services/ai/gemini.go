// Package aisvc implements core.Advisor against the Gemini generative-language
// REST API. The service is consumed as untrusted and unreliable: one attempt
// per call, and any transport, quota or parse failure degrades to
// core.ErrAdvisoryUnavailable without ever touching app state.
package aisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"edupro/core"
)

var (
	host        = "https://generativelanguage.googleapis.com"
	endpointFmt = "/v1beta/models/%s:generateContent"
)

type (
	generateRequest struct {
		Contents         []content         `json:"contents"`
		GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	}
	content struct {
		Parts []part `json:"parts"`
	}
	part struct {
		Text string `json:"text"`
	}
	generationConfig struct {
		ResponseMimeType string `json:"responseMimeType,omitempty"`
	}

	generateResponse struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}
)

type geminiService struct {
	key    string
	model  string
	client *http.Client
	logger core.Logger
}

var _ core.Advisor = (*geminiService)(nil)

func NewGeminiService(conf *core.Config, logger core.Logger) *geminiService {
	return &geminiService{
		key:    conf.Advisor.APIKey,
		model:  conf.Advisor.Model,
		client: &http.Client{Timeout: conf.Advisor.Timeout},
		logger: logger,
	}
}

func (svc *geminiService) GenerateQuizQuestions(ctx context.Context, lessonTitle, lessonContent string) ([]core.QuizQuestion, error) {
	prompt := fmt.Sprintf(
		"Generate 5 multiple-choice questions for a Grade 6 English lesson titled %q.\n"+
			"Lesson content: %s.\n"+
			"Return exactly in JSON format:\n"+
			`[{ "question": "...", "options": ["A", "B", "C", "D"], "correctAnswer": 0 }]`,
		lessonTitle, lessonContent,
	)
	text, err := svc.generate(ctx, prompt, true /* structured */)
	if err != nil {
		return nil, err
	}

	var questions []core.QuizQuestion
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		svc.logger.Warn(fmt.Sprintf("aisvc: unparseable quiz payload: %v", err))
		return nil, core.ErrAdvisoryUnavailable
	}
	return questions, nil
}

func (svc *geminiService) LearningTip(ctx context.Context, progressSummary string) (string, error) {
	prompt := fmt.Sprintf(
		"Based on this student progress: %q, give a short encouraging learning tip in Vietnamese for a Grade 6 student.",
		progressSummary,
	)
	return svc.generate(ctx, prompt, false)
}

// generate performs a single generateContent attempt; no retries, no backoff.
func (svc *geminiService) generate(ctx context.Context, prompt string, structured bool) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if structured {
		reqBody.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}
	raw, err := json.Marshal(reqBody)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("aisvc: marshalling request: %v", err))
		return "", core.ErrAdvisoryUnavailable
	}

	url := host + fmt.Sprintf(endpointFmt, svc.model) + "?key=" + svc.key
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("aisvc: building request: %v", err))
		return "", core.ErrAdvisoryUnavailable
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("aisvc: calling generation service: %v", err))
		return "", core.ErrAdvisoryUnavailable
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("aisvc: reading response: %v", err))
		return "", core.ErrAdvisoryUnavailable
	}
	if res.StatusCode >= http.StatusBadRequest {
		svc.logger.Warn(fmt.Sprintf("aisvc: generation service - status: %d - Body: %s", res.StatusCode, body))
		return "", core.ErrAdvisoryUnavailable
	}

	var data generateResponse
	if err := json.Unmarshal(body, &data); err != nil {
		svc.logger.Warn(fmt.Sprintf("aisvc: unparseable response: %v", err))
		return "", core.ErrAdvisoryUnavailable
	}
	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		svc.logger.Warn("aisvc: empty response from generation service")
		return "", core.ErrAdvisoryUnavailable
	}
	return data.Candidates[0].Content.Parts[0].Text, nil
}
