// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/views"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidChoice    = errors.New("invalid choice")
)

// visibleQuestion matches questions that are published and have a choice
const visibleQuestion = `
	q.pub_date <= $1
	AND EXISTS (SELECT 1 FROM choice c WHERE c.question_id = q.id)
`

type QuestionHandler struct {
	db  *sql.DB
	now func() time.Time
}

func NewQuestionHandler(db *sql.DB) *QuestionHandler {
	return &QuestionHandler{db: db, now: time.Now}
}

// Index handles GET /
// Lists the five most recently published questions that have choices
func (h *QuestionHandler) Index(w http.ResponseWriter, r *http.Request) {
	questions, err := ListLatestQuestions(r.Context(), h.db, h.now(), models.LatestQuestionLimit)
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		serverError(w, r)
		return
	}

	render(w, r, http.StatusOK, views.IndexPage, models.IndexPage{
		LatestQuestionList: questions,
	})
}

// Detail handles GET /{question_id}/
func (h *QuestionHandler) Detail(w http.ResponseWriter, r *http.Request) {
	question, choices, ok := h.loadVisible(w, r)
	if !ok {
		return
	}

	render(w, r, http.StatusOK, views.DetailPage, models.DetailPage{
		Question: question,
		Choices:  choices,
	})
}

// Results handles GET /{question_id}/results/
func (h *QuestionHandler) Results(w http.ResponseWriter, r *http.Request) {
	question, choices, ok := h.loadVisible(w, r)
	if !ok {
		return
	}

	total := 0
	for _, c := range choices {
		total += c.Votes
	}

	render(w, r, http.StatusOK, views.ResultsPage, models.ResultsPage{
		Question:   question,
		Choices:    choices,
		TotalVotes: total,
	})
}

// loadVisible resolves the question in the path and its choices.
// It writes the error response itself and returns false on failure.
func (h *QuestionHandler) loadVisible(w http.ResponseWriter, r *http.Request) (models.Question, []models.Choice, bool) {
	questionID, err := parseQuestionID(r)
	if err != nil {
		notFound(w, r)
		return models.Question{}, nil, false
	}

	question, err := FindVisibleQuestion(r.Context(), h.db, questionID, h.now())
	if errors.Is(err, ErrQuestionNotFound) {
		notFound(w, r)
		return models.Question{}, nil, false
	}
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_id", questionID)
		serverError(w, r)
		return models.Question{}, nil, false
	}

	choices, err := ListChoices(r.Context(), h.db, question.ID)
	if err != nil {
		slog.Error("failed to query choices", "error", err, "question_id", questionID)
		serverError(w, r)
		return models.Question{}, nil, false
	}

	return question, choices, true
}

// parseQuestionID reads the integer question_id path value
func parseQuestionID(r *http.Request) (int64, error) {
	raw := r.PathValue("question_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrQuestionNotFound
	}
	return id, nil
}

// ListLatestQuestions returns up to limit visible questions, newest first
func ListLatestQuestions(ctx context.Context, db *sql.DB, now time.Time, limit int) ([]models.Question, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT q.id, q.question_text, q.pub_date
		FROM question q
		WHERE `+visibleQuestion+`
		ORDER BY q.pub_date DESC, q.id DESC
		LIMIT $2
	`, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("query latest questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.PubDate); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}

// FindVisibleQuestion looks up a question that is published and has choices.
// Anything else, including a future question, is ErrQuestionNotFound.
func FindVisibleQuestion(ctx context.Context, db *sql.DB, questionID int64, now time.Time) (models.Question, error) {
	var q models.Question
	err := db.QueryRowContext(ctx, `
		SELECT q.id, q.question_text, q.pub_date
		FROM question q
		WHERE q.id = $2 AND `+visibleQuestion,
		now.UTC(), questionID,
	).Scan(&q.ID, &q.QuestionText, &q.PubDate)

	if err == sql.ErrNoRows {
		return models.Question{}, ErrQuestionNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("query question %d: %w", questionID, err)
	}

	return q, nil
}

// FindQuestion looks up a question regardless of visibility
func FindQuestion(ctx context.Context, db *sql.DB, questionID int64) (models.Question, error) {
	var q models.Question
	err := db.QueryRowContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE id = $1
	`, questionID).Scan(&q.ID, &q.QuestionText, &q.PubDate)

	if err == sql.ErrNoRows {
		return models.Question{}, ErrQuestionNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("query question %d: %w", questionID, err)
	}

	return q, nil
}

// ListChoices returns a question's choices in creation order
func ListChoices(ctx context.Context, db *sql.DB, questionID int64) ([]models.Choice, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, question_id, choice_text, votes
		FROM choice
		WHERE question_id = $1
		ORDER BY id
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return nil, fmt.Errorf("scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate choices: %w", err)
	}

	return choices, nil
}

// render writes page data as HTML, or as JSON when the client asks for it
func render(w http.ResponseWriter, r *http.Request, statusCode int, page string, data interface{}) {
	if middleware.WantsJSON(r) {
		middleware.JSONResponse(w, statusCode, data)
		return
	}
	if err := views.Render(w, statusCode, page, data); err != nil {
		slog.Error("failed to render page", "template", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	if middleware.WantsJSON(r) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	views.RenderError(w, http.StatusNotFound, "No question matches the given query.")
}

func serverError(w http.ResponseWriter, r *http.Request) {
	if middleware.WantsJSON(r) {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	views.RenderError(w, http.StatusInternalServerError, "")
}
