// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the HTML pages.

Templates are embedded from templates/ and each page is parsed together
with base.html:

	err := views.Render(w, http.StatusOK, views.IndexPage, models.IndexPage{...})

Render buffers the output, so a failing template never leaves a half
written response.

# Template Functions

  - detailURL, resultsURL, voteURL: page paths for a question ID
  - since: relative time ("3 days ago") via go-humanize
  - recent: Question.WasPublishedRecently at render time
  - votes: "1 vote" / "2 votes"
*/
package views
