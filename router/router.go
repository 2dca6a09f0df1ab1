// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/handlers"
	"github.com/danielhkuo/polls/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(db)
	votingHandler := handlers.NewVotingHandler(db)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Polls (public)
	mux.HandleFunc("GET /{$}", middleware.WithLogging(questionHandler.Index))
	mux.HandleFunc("GET /{question_id}/{$}", middleware.WithLogging(questionHandler.Detail))
	mux.HandleFunc("GET /{question_id}/results/{$}", middleware.WithLogging(questionHandler.Results))
	mux.HandleFunc("POST /{question_id}/vote/{$}", middleware.WithLogging(votingHandler.Vote))

	// Question management (admin, only with a configured key)
	if cfg.AdminKey != "" {
		adminHandler := handlers.NewAdminHandler(db, cfg)
		admin := func(h http.HandlerFunc) http.HandlerFunc {
			return middleware.WithLogging(adminHandler.RequireAdminKey(h))
		}

		mux.HandleFunc("POST /admin/questions", admin(adminHandler.CreateQuestion))
		mux.HandleFunc("GET /admin/questions/{id}", admin(adminHandler.GetQuestion))
		mux.HandleFunc("DELETE /admin/questions/{id}", admin(adminHandler.DeleteQuestion))
		mux.HandleFunc("POST /admin/questions/{id}/choices", admin(adminHandler.AddChoice))
	}

	return mux
}
