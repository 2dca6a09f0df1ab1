// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, page, and request/response types.

# Domain Types

  - Question: poll prompt with a publication date
  - Choice: one answer to a question with its vote count
  - QuestionWithChoices: admin view of a question

A question is "recently published" when its pub_date lies in the
half-open window (now-24h, now]:

	q.WasPublishedRecently(time.Now())

# Page Types

Data handed to templates, or encoded as JSON when the client asks for it:

  - IndexPage: latest_question_list
  - DetailPage: question, choices, error_message
  - ResultsPage: question, choices, total_votes

# Admin Types

  - CreateQuestionRequest: question_text, pub_date (optional)
  - AddChoiceRequest: choice_text
  - CreateQuestionResponse: question_id
  - AddChoiceResponse: choice_id
  - ErrorResponse: error, message
*/
package models
