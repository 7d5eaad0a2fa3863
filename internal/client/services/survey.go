package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ymiyake/enquete/internal/client/client"
	"github.com/ymiyake/enquete/internal/client/models"
	"github.com/ymiyake/enquete/internal/common"
)

// SurveyService exposes the four survey operations plus sender-name
// resolution. Listings are ordered by store-generated key, which sorts
// chronologically for push-style keys.
type SurveyService interface {
	ListQuestions(ctx context.Context) ([]models.QuestionItem, error)
	PostQuestion(ctx context.Context, session *models.Session, title, body string) (string, error)
	PostAnswer(ctx context.Context, session *models.Session, questionID, body string) (string, error)
	ListAnswers(ctx context.Context, questionID string) ([]models.AnswerItem, error)
	ResolveName(ctx context.Context, senderID string) string
}

type surveyService struct {
	client client.Client

	// names maps sender id to resolved display name for the lifetime of
	// the process. Populated lazily, never invalidated.
	names map[string]string
}

// NewSurveyService constructs a SurveyService bound to the given API client.
func NewSurveyService(client client.Client) SurveyService {
	return &surveyService{client: client, names: make(map[string]string)}
}

func (s *surveyService) ListQuestions(ctx context.Context) ([]models.QuestionItem, error) {
	raw, err := s.client.Get(ctx, "questions")
	if err != nil {
		return nil, fmt.Errorf("questions read error: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var entries map[string]models.Question
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("questions decode error: %w", err)
	}

	items := make([]models.QuestionItem, 0, len(entries))
	for id, q := range entries {
		items = append(items, models.QuestionItem{ID: id, Question: q})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *surveyService) PostQuestion(ctx context.Context, session *models.Session, title, body string) (string, error) {
	title, body = strings.TrimSpace(title), strings.TrimSpace(body)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if body == "" {
		return "", fmt.Errorf("%w: body is required", common.ErrValidation)
	}

	q := models.Question{Name: title, Body: body, Sender: session.UserID}
	id, err := s.client.Post(ctx, "questions", q)
	if err != nil {
		return "", fmt.Errorf("question post error: %w", err)
	}
	return id, nil
}

func (s *surveyService) PostAnswer(ctx context.Context, session *models.Session, questionID, body string) (string, error) {
	body = strings.TrimSpace(body)
	if questionID == "" {
		return "", fmt.Errorf("%w: question id is required", common.ErrValidation)
	}
	if body == "" {
		return "", fmt.Errorf("%w: body is required", common.ErrValidation)
	}

	a := models.Answer{Target: questionID, Body: body, Sender: session.UserID}
	id, err := s.client.Post(ctx, "answers/"+questionID, a)
	if err != nil {
		return "", fmt.Errorf("answer post error: %w", err)
	}
	return id, nil
}

func (s *surveyService) ListAnswers(ctx context.Context, questionID string) ([]models.AnswerItem, error) {
	raw, err := s.client.Get(ctx, "answers/"+questionID)
	if err != nil {
		return nil, fmt.Errorf("answers read error: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var entries map[string]models.Answer
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("answers decode error: %w", err)
	}

	items := make([]models.AnswerItem, 0, len(entries))
	for id, a := range entries {
		items = append(items, models.AnswerItem{ID: id, Answer: a})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// ResolveName maps a sender id to a display name, consulting the in-memory
// cache first. A missing or unnamed profile resolves to a truncated id;
// an empty sender resolves to "unknown". Resolution failures never
// propagate: whatever label is produced gets cached and returned.
func (s *surveyService) ResolveName(ctx context.Context, senderID string) string {
	if senderID == "" {
		return "unknown"
	}
	if name, ok := s.names[senderID]; ok {
		return name
	}

	name := truncateID(senderID)
	if raw, err := s.client.Get(ctx, "users/"+senderID); err == nil && raw != nil {
		var p models.Profile
		if err := json.Unmarshal(raw, &p); err == nil && p.Name != "" {
			name = p.Name
		}
	}

	s.names[senderID] = name
	return name
}

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
