package questions

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	LastCollection string
	LastID         string
	LastFields     map[string]any
	createErr      error
}

func (f *fakeStore) Create(ctx context.Context, collection, id string, fields map[string]any) (*docstore.Document, error) {
	f.LastCollection, f.LastID, f.LastFields = collection, id, fields
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &docstore.Document{ID: id, Collection: collection, Fields: fields}, nil
}

func (f *fakeStore) Get(ctx context.Context, collection, id string, queries ...docstore.Query) (*docstore.Document, error) {
	return nil, docstore.ErrNotFound
}

func (f *fakeStore) List(ctx context.Context, collection string, queries ...docstore.Query) (*docstore.DocumentList, error) {
	return &docstore.DocumentList{}, nil
}

func TestService_Ask(t *testing.T) {
	s := &fakeStore{}
	doc, err := NewService(s).Ask(context.Background(), "u1", validDraft())
	require.NoError(t, err)

	assert.Equal(t, docstore.Questions, s.LastCollection)
	_, err = uuid.Parse(s.LastID)
	assert.NoError(t, err)
	assert.Equal(t, "u1", s.LastFields["authorId"])
	assert.Equal(t, s.LastID, doc.ID)
}

func TestService_Ask_Rejects(t *testing.T) {
	s := &fakeStore{}
	svc := NewService(s)

	_, err := svc.Ask(context.Background(), "", validDraft())
	assert.ErrorIs(t, err, ErrNoAuthor)

	bad := validDraft()
	bad.Tags = nil
	_, err = svc.Ask(context.Background(), "u1", bad)
	assert.ErrorIs(t, err, ErrNoTags)
	assert.Empty(t, s.LastID)

	s.createErr = errors.New("down")
	_, err = svc.Ask(context.Background(), "u1", validDraft())
	assert.ErrorIs(t, err, s.createErr)
}
