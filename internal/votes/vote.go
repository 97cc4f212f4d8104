// Package votes lists a user's voting history and resolves every vote to
// the question it ultimately concerns.
package votes

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/stackquery/internal/docstore"
)

// PageSize is the fixed number of votes per page.
const PageSize = 25

// Field names of vote and answer documents.
const (
	FieldVotedByID  = "votedById"
	FieldVoteStatus = "voteStatus"
	FieldType       = "type"
	FieldTypeID     = "typeId"
	FieldQuestionID = "questionId"
	FieldTitle      = "title"
)

type Status string

const (
	Upvoted   Status = "upvoted"
	Downvoted Status = "downvoted"
)

func (s Status) Valid() bool {
	return s == Upvoted || s == Downvoted
}

// ParseStatus accepts an empty string as "no filter".
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return "", nil
	}
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

type TargetType string

const (
	TargetQuestion TargetType = "question"
	TargetAnswer   TargetType = "answer"
)

var (
	ErrInvalidStatus     = errors.New("invalid vote status")
	ErrUnknownTargetType = errors.New("unknown vote target type")
	ErrMissingUser       = errors.New("user id is required")
)

// QuestionRef is the enrichment attached to every listed vote.
type QuestionRef struct {
	ID    string `json:"$id"`
	Title string `json:"title"`
}

type Vote struct {
	ID         string       `json:"$id"`
	CreatedAt  time.Time    `json:"$createdAt"`
	VotedByID  string       `json:"votedById"`
	VoteStatus Status       `json:"voteStatus"`
	Type       TargetType   `json:"type"`
	TypeID     string       `json:"typeId"`
	Question   *QuestionRef `json:"question,omitempty"`
}

func voteFromDocument(d *docstore.Document) *Vote {
	return &Vote{
		ID:         d.ID,
		CreatedAt:  d.CreatedAt,
		VotedByID:  d.String(FieldVotedByID),
		VoteStatus: Status(d.String(FieldVoteStatus)),
		Type:       TargetType(d.String(FieldType)),
		TypeID:     d.String(FieldTypeID),
	}
}
