// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polls site.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Polls (public, HTML or JSON via Accept):

	GET  /                        - Latest questions
	GET  /{question_id}/          - Question and voting form
	GET  /{question_id}/results/  - Vote counts
	POST /{question_id}/vote/     - Cast a vote (form field "choice")

Question management (requires X-Admin-Key, only mounted when ADMIN_KEY is set):

	POST   /admin/questions               - Create question
	GET    /admin/questions/{id}          - Question and choices
	DELETE /admin/questions/{id}          - Delete question and its choices
	POST   /admin/questions/{id}/choices  - Add choice

Poll paths use {$} so only the exact path matches; /5/extra is a 404.
*/
package router
