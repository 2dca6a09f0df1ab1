// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/polls/testutil"
)

// TestConcurrentVotesSameChoice verifies that simultaneous votes for one
// choice are all counted
func TestConcurrentVotesSameChoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewVotingHandler(db)

	q := testutil.CreateTestQuestion(t, db, "Race condition?", 0)
	contested := testutil.AddTestChoice(t, db, q, "Contested")
	untouched := testutil.AddTestChoice(t, db, q, "Untouched")

	numVoters := 25

	var redirects atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := postVote(handler, idString(q), url.Values{"choice": {idString(contested)}}, false)
			if w.Code == http.StatusSeeOther {
				redirects.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(redirects.Load()) != numVoters {
		t.Errorf("Expected %d redirects, got %d", numVoters, redirects.Load())
	}

	if votes := testutil.GetVotes(t, db, contested); votes != numVoters {
		t.Errorf("Expected %d votes (no lost updates), got %d", numVoters, votes)
	}
	if votes := testutil.GetVotes(t, db, untouched); votes != 0 {
		t.Errorf("Expected untouched choice to stay at 0, got %d", votes)
	}
}

// TestConcurrentVotesMixedChoices spreads votes over several choices and
// checks every counter
func TestConcurrentVotesMixedChoices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewVotingHandler(db)

	q := testutil.CreateTestQuestion(t, db, "Spread the votes", -1)
	choices := []int64{
		testutil.AddTestChoice(t, db, q, "A"),
		testutil.AddTestChoice(t, db, q, "B"),
		testutil.AddTestChoice(t, db, q, "C"),
	}

	numVoters := 30
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()
			choice := choices[voterIdx%len(choices)]
			postVote(handler, idString(q), url.Values{"choice": {idString(choice)}}, false)
		}(i)
	}

	wg.Wait()

	for _, c := range choices {
		if votes := testutil.GetVotes(t, db, c); votes != numVoters/len(choices) {
			t.Errorf("Expected choice %d to have %d votes, got %d", c, numVoters/len(choices), votes)
		}
	}
}
