package questions

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/dmitrijs2005/stackquery/internal/logging"
	"golang.org/x/sync/errgroup"
)

// PageSize is the fixed number of questions per browse page.
const PageSize = 25

// Field names of question, answer and vote documents read while browsing.
const (
	FieldTitle      = "title"
	FieldTags       = "tags"
	FieldAuthorID   = "authorId"
	FieldQuestionID = "questionId"
	FieldType       = "type"
	FieldTypeID     = "typeId"
)

// Summary is one question card: the question plus its vote and answer counts.
type Summary struct {
	ID           string    `json:"$id"`
	CreatedAt    time.Time `json:"$createdAt"`
	Title        string    `json:"title"`
	Tags         []string  `json:"tags"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName,omitempty"`
	TotalVotes   int       `json:"totalVotes"`
	TotalAnswers int       `json:"totalAnswers"`
}

// Author returns the display name, falling back to the author id.
func (s *Summary) Author() string {
	if s.AuthorName != "" {
		return s.AuthorName
	}
	return s.AuthorID
}

type Listing struct {
	Questions []*Summary `json:"questions"`
	Total     int        `json:"total"`
}

// AuthorNamer looks up a user's display name by id.
type AuthorNamer interface {
	AuthorName(ctx context.Context, userID string) (string, error)
}

// Browser lists questions newest first with their counts.
type Browser struct {
	store  docstore.Store
	namer  AuthorNamer
	logger logging.Logger
}

// NewBrowser returns a browser. namer may be nil, in which case summaries
// carry only the author id.
func NewBrowser(store docstore.Store, namer AuthorNamer, logger logging.Logger) *Browser {
	return &Browser{store: store, namer: namer, logger: logger.With("module", "questions")}
}

// BrowseQueries builds the list query for one page of questions.
func BrowseQueries(page int) []docstore.Query {
	if page < 1 {
		page = 1
	}
	return []docstore.Query{
		docstore.OrderDesc(docstore.AttrCreatedAt),
		docstore.Offset((page - 1) * PageSize),
		docstore.Limit(PageSize),
	}
}

// Browse returns one page of questions. Counting runs concurrently and any
// failure fails the page; a failed author lookup only drops the name.
func (b *Browser) Browse(ctx context.Context, page int) (*Listing, error) {
	list, err := b.store.List(ctx, docstore.Questions, BrowseQueries(page)...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	out := make([]*Summary, len(list.Documents))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range list.Documents {
		g.Go(func() error {
			s, err := b.summarize(gctx, d)
			if err != nil {
				return fmt.Errorf("question %s: %w", d.ID, err)
			}
			out[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		b.logger.Warn(ctx, "question page failed", "page", page, "error", err)
		return nil, err
	}

	return &Listing{Questions: out, Total: list.Total}, nil
}

func (b *Browser) summarize(ctx context.Context, d *docstore.Document) (*Summary, error) {
	s := &Summary{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		Title:     d.String(FieldTitle),
		Tags:      stringList(d.Fields[FieldTags]),
		AuthorID:  d.String(FieldAuthorID),
	}

	votes, err := b.count(ctx, docstore.Votes,
		docstore.Equal(FieldType, "question"), docstore.Equal(FieldTypeID, d.ID))
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	answers, err := b.count(ctx, docstore.Answers, docstore.Equal(FieldQuestionID, d.ID))
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}
	s.TotalVotes, s.TotalAnswers = votes, answers

	if b.namer != nil && s.AuthorID != "" {
		name, err := b.namer.AuthorName(ctx, s.AuthorID)
		if err != nil {
			b.logger.Debug(ctx, "author lookup failed", "author", s.AuthorID, "error", err)
		}
		s.AuthorName = name
	}
	return s, nil
}

func (b *Browser) count(ctx context.Context, collection string, filters ...docstore.Query) (int, error) {
	list, err := b.store.List(ctx, collection, append(filters, docstore.Limit(0))...)
	if err != nil {
		return 0, err
	}
	return list.Total, nil
}

func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
