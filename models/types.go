// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// RecentWindow is how far back a question still counts as recently published
const RecentWindow = 24 * time.Hour

// LatestQuestionLimit caps the index page
const LatestQuestionLimit = 5

// NoChoiceSelectedMessage is shown when a vote has no usable choice
const NoChoiceSelectedMessage = "You didn't select a choice."

// Domain types

type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
}

// WasPublishedRecently reports whether PubDate falls in (now-24h, now].
// Future questions are never recent.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return q.PubDate.After(now.Add(-RecentWindow)) && !q.PubDate.After(now)
}

type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

type QuestionWithChoices struct {
	Question Question `json:"question"`
	Choices  []Choice `json:"choices"`
}

// Page types

type IndexPage struct {
	LatestQuestionList []Question `json:"latest_question_list"`
}

type DetailPage struct {
	Question     Question `json:"question"`
	Choices      []Choice `json:"choices"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

type ResultsPage struct {
	Question   Question `json:"question"`
	Choices    []Choice `json:"choices"`
	TotalVotes int      `json:"total_votes"`
}

// Admin request types

type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date,omitempty"`
}

type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text"`
}

// Admin response types

type CreateQuestionResponse struct {
	QuestionID int64 `json:"question_id"`
}

type AddChoiceResponse struct {
	ChoiceID int64 `json:"choice_id"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
