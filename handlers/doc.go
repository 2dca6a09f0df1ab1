// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the polls site.

# Handler Types

Each handler is a struct holding the database handle:

  - QuestionHandler: Index, detail and results pages
  - VotingHandler: The vote action
  - AdminHandler: Question and choice management over JSON

Handlers are created via constructor functions that accept *sql.DB.
AdminHandler also takes the Config for its admin key:

	questionHandler := handlers.NewQuestionHandler(db)
	adminHandler := handlers.NewAdminHandler(db, cfg)

# Visibility

A question is visible once its pub_date is not in the future and it has at
least one choice. Hidden questions are a 404 on every public page, including
the vote action.

	GET  /{question_id}/          → Detail
	GET  /{question_id}/results/  → Results
	POST /{question_id}/vote/     → Vote

Pages render HTML by default and JSON when the Accept header asks for it.

# Voting

Vote reads the "choice" form field. A missing choice, or one that belongs to
another question, re-renders the detail page with an error message and
status 200. A counted vote redirects to the results page with 303 See Other.

CastVote increments the counter in a single UPDATE:

	err := handlers.CastVote(ctx, db, questionID, choiceID)

# Administration

Admin operations require the X-Admin-Key header:

	POST   /admin/questions               → CreateQuestion
	GET    /admin/questions/{id}          → GetQuestion
	DELETE /admin/questions/{id}          → DeleteQuestion
	POST   /admin/questions/{id}/choices  → AddChoice
*/
package handlers
