// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Logger Setup

	slog.SetDefault(middleware.NewLogger(os.Stderr, cfg.LogFormat))

"auto" uses the text handler on a terminal and JSON otherwise.

# Request IDs

	server := http.Server{
		Handler: middleware.WithRequestID(mux),
	}

Valid X-Request-ID UUIDs are reused, anything else is replaced. The ID is
echoed in the response and available through RequestID(ctx).

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms).

# Content Negotiation

WantsJSON reports whether the Accept header prefers application/json over
HTML. Page handlers use it to return page data as JSON.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.AddChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
