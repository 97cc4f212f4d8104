package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/stackquery/internal/logging"
	"github.com/dmitrijs2005/stackquery/internal/questions"
	"github.com/dmitrijs2005/stackquery/internal/votes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVotes struct {
	LastRequest votes.Request
	calls       int
	page        *votes.Page
	err         error
}

func (f *fakeVotes) List(_ context.Context, req votes.Request) (*votes.Page, error) {
	f.calls++
	f.LastRequest = req
	return f.page, f.err
}

type fakeQuestions struct {
	LastPage int
	calls    int
	listing  *questions.Listing
	err      error
}

func (f *fakeQuestions) Browse(_ context.Context, page int) (*questions.Listing, error) {
	f.calls++
	f.LastPage = page
	return f.listing, f.err
}

func serve(t *testing.T, v *fakeVotes, target string) *httptest.ResponseRecorder {
	t.Helper()
	return serveWith(t, NewServer(":0", logging.Discard(), v, &fakeQuestions{}), target)
}

func serveWith(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(t, &fakeVotes{}, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListVotes(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	v := &fakeVotes{page: &votes.Page{
		Total: 30,
		Votes: []*votes.Vote{{
			ID: "v1", CreatedAt: created, VotedByID: "u1", VoteStatus: votes.Upvoted,
			Type: votes.TargetAnswer, TypeID: "a1",
			Question: &votes.QuestionRef{ID: "q1", Title: "Why Go?"},
		}},
	}}

	rec := serve(t, v, "/api/users/u1/votes?page=2&voteStatus=upvoted")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, votes.Request{UserID: "u1", Page: 2, VoteStatus: votes.Upvoted}, v.LastRequest)

	var body struct {
		Total int `json:"total"`
		Limit int `json:"limit"`
		Votes []struct {
			ID       string `json:"$id"`
			Question struct {
				ID    string `json:"$id"`
				Title string `json:"title"`
			} `json:"question"`
		} `json:"votes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 30, body.Total)
	assert.Equal(t, votes.PageSize, body.Limit)
	require.Len(t, body.Votes, 1)
	assert.Equal(t, "q1", body.Votes[0].Question.ID)
	assert.Equal(t, "Why Go?", body.Votes[0].Question.Title)
}

func TestListVotes_DefaultsToFirstPage(t *testing.T) {
	v := &fakeVotes{page: &votes.Page{Votes: []*votes.Vote{}}}

	rec := serve(t, v, "/api/users/u1/votes")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, v.LastRequest.Page)
	assert.Empty(t, v.LastRequest.VoteStatus)
	assert.JSONEq(t, `{"total":0,"limit":25,"votes":[]}`, rec.Body.String())
}

func TestListVotes_BadRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "page not a number", target: "/api/users/u1/votes?page=two"},
		{name: "unknown status", target: "/api/users/u1/votes?voteStatus=sideways"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &fakeVotes{}
			rec := serve(t, v, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, v.calls)
		})
	}
}

func TestListVotes_ResolutionFailure(t *testing.T) {
	v := &fakeVotes{err: errors.New("resolve vote v1: document not found")}

	rec := serve(t, v, "/api/users/u1/votes")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please try again")
	assert.NotContains(t, rec.Body.String(), "v1")
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewServer("127.0.0.1:0", logging.Discard(), &fakeVotes{}, &fakeQuestions{})

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
