package questions

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/google/uuid"
)

var ErrNoAuthor = errors.New("author is required")

// Service publishes validated drafts to the document store.
type Service struct {
	store      docstore.Store
	collection string
}

func NewService(store docstore.Store) *Service {
	return &Service{store: store, collection: docstore.Questions}
}

// Ask validates the draft and creates the question with a fresh id.
func (s *Service) Ask(ctx context.Context, authorID string, d Draft) (*docstore.Document, error) {
	if authorID == "" {
		return nil, ErrNoAuthor
	}
	if err := Validate(d); err != nil {
		return nil, err
	}
	doc, err := s.store.Create(ctx, s.collection, uuid.NewString(), d.Fields(authorID))
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return doc, nil
}
