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
	"strings"
	"time"

	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/views"
)

type VotingHandler struct {
	db  *sql.DB
	now func() time.Time
}

func NewVotingHandler(db *sql.DB) *VotingHandler {
	return &VotingHandler{db: db, now: time.Now}
}

// Vote handles POST /{question_id}/vote/
// A missing or foreign choice re-renders the detail page with an error.
// A counted vote redirects to the results page so a reload cannot resubmit it.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	questionID, err := parseQuestionID(r)
	if err != nil {
		notFound(w, r)
		return
	}

	question, err := FindVisibleQuestion(r.Context(), h.db, questionID, h.now())
	if errors.Is(err, ErrQuestionNotFound) {
		notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_id", questionID)
		serverError(w, r)
		return
	}

	choiceID, err := parseChoiceID(r)
	if err == nil {
		err = CastVote(r.Context(), h.db, question.ID, choiceID)
	}
	if errors.Is(err, ErrInvalidChoice) {
		h.redisplay(w, r, question)
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "question_id", questionID)
		serverError(w, r)
		return
	}

	slog.Info("vote recorded", "question_id", question.ID, "choice_id", choiceID)

	http.Redirect(w, r, views.ResultsURL(question.ID), http.StatusSeeOther)
}

// redisplay renders the voting form again with the no-choice error
func (h *VotingHandler) redisplay(w http.ResponseWriter, r *http.Request, question models.Question) {
	choices, err := ListChoices(r.Context(), h.db, question.ID)
	if err != nil {
		slog.Error("failed to query choices", "error", err, "question_id", question.ID)
		serverError(w, r)
		return
	}

	render(w, r, http.StatusOK, views.DetailPage, models.DetailPage{
		Question:     question,
		Choices:      choices,
		ErrorMessage: models.NoChoiceSelectedMessage,
	})
}

// parseChoiceID reads the "choice" form field
func parseChoiceID(r *http.Request) (int64, error) {
	if err := r.ParseForm(); err != nil {
		return 0, ErrInvalidChoice
	}

	raw := strings.TrimSpace(r.PostForm.Get("choice"))
	if raw == "" {
		return 0, ErrInvalidChoice
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidChoice
	}
	return id, nil
}

// CastVote adds one vote to a choice belonging to the question.
// The increment is a single UPDATE so concurrent votes are never lost.
func CastVote(ctx context.Context, db *sql.DB, questionID, choiceID int64) error {
	result, err := db.ExecContext(ctx, `
		UPDATE choice
		SET votes = votes + 1
		WHERE id = $1 AND question_id = $2
	`, choiceID, questionID)
	if err != nil {
		return fmt.Errorf("increment votes for choice %d: %w", choiceID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for choice %d: %w", choiceID, err)
	}
	if affected == 0 {
		return ErrInvalidChoice
	}

	return nil
}
