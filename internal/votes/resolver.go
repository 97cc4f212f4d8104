package votes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/dmitrijs2005/stackquery/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Collections names the collections the resolver reads.
type Collections struct {
	Votes     string
	Questions string
	Answers   string
}

func DefaultCollections() Collections {
	return Collections{Votes: docstore.Votes, Questions: docstore.Questions, Answers: docstore.Answers}
}

type Request struct {
	UserID     string
	Page       int
	VoteStatus Status
}

type Page struct {
	Votes []*Vote `json:"votes"`
	Total int     `json:"total"`
}

type Resolver struct {
	store       docstore.Store
	collections Collections
	logger      logging.Logger
}

func NewResolver(store docstore.Store, collections Collections, logger logging.Logger) *Resolver {
	return &Resolver{store: store, collections: collections, logger: logger.With("module", "votes")}
}

// Queries builds the list query for one page of a user's votes.
func Queries(req Request) []docstore.Query {
	page := req.Page
	if page < 1 {
		page = 1
	}
	qs := []docstore.Query{
		docstore.Equal(FieldVotedByID, req.UserID),
		docstore.OrderDesc(docstore.AttrCreatedAt),
		docstore.Offset((page - 1) * PageSize),
		docstore.Limit(PageSize),
	}
	if req.VoteStatus != "" {
		qs = append(qs, docstore.Equal(FieldVoteStatus, string(req.VoteStatus)))
	}
	return qs
}

// List returns one page of the user's votes, newest first, each carrying the
// question it resolves to. Resolution runs concurrently; the first failure
// cancels the rest and fails the whole page.
func (r *Resolver) List(ctx context.Context, req Request) (*Page, error) {
	if req.UserID == "" {
		return nil, ErrMissingUser
	}
	if req.VoteStatus != "" && !req.VoteStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.VoteStatus)
	}

	list, err := r.store.List(ctx, r.collections.Votes, Queries(req)...)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	out := make([]*Vote, len(list.Documents))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range list.Documents {
		g.Go(func() error {
			v := voteFromDocument(d)
			q, err := r.resolve(gctx, v)
			if err != nil {
				return fmt.Errorf("resolve vote %s: %w", v.ID, err)
			}
			v.Question = q
			out[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Warn(ctx, "vote page resolution failed", "user", req.UserID, "page", req.Page, "error", err)
		return nil, err
	}

	return &Page{Votes: out, Total: list.Total}, nil
}

func (r *Resolver) resolve(ctx context.Context, v *Vote) (*QuestionRef, error) {
	questionID := v.TypeID

	switch v.Type {
	case TargetQuestion:
	case TargetAnswer:
		answer, err := r.store.Get(ctx, r.collections.Answers, v.TypeID, docstore.Select(FieldQuestionID))
		if err != nil {
			return nil, fmt.Errorf("get answer %s: %w", v.TypeID, err)
		}
		questionID = answer.String(FieldQuestionID)
		if questionID == "" {
			return nil, fmt.Errorf("answer %s has no question: %w", v.TypeID, docstore.ErrNotFound)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTargetType, v.Type)
	}

	q, err := r.store.Get(ctx, r.collections.Questions, questionID, docstore.Select(FieldTitle))
	if err != nil {
		return nil, fmt.Errorf("get question %s: %w", questionID, err)
	}
	return &QuestionRef{ID: q.ID, Title: q.String(FieldTitle)}, nil
}
