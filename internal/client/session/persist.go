package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/stackquery/internal/client/gateway"
	"github.com/dmitrijs2005/stackquery/internal/client/repositories/metadata"
)

// SnapshotKey is the metadata key of the persisted auth snapshot.
const SnapshotKey = "auth"

// Snapshot is the persisted part of State. Status is never saved.
type Snapshot struct {
	Session *gateway.Session `json:"session"`
	JWT     *string          `json:"jwt"`
	User    *gateway.User    `json:"user"`
}

func snapshotOf(s State) Snapshot {
	if s.Credentials == nil {
		return Snapshot{}
	}
	c := *s.Credentials
	return Snapshot{Session: &c.Session, JWT: &c.Token, User: &c.User}
}

// credentials rebuilds Credentials. A partial snapshot yields nil.
func (s Snapshot) credentials() *Credentials {
	if s.Session == nil || s.JWT == nil || s.User == nil {
		return nil
	}
	return &Credentials{Session: *s.Session, Token: *s.JWT, User: *s.User}
}

// Persister saves and loads the snapshot. Load returns (nil, nil) when
// nothing has been saved.
type Persister interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
}

// MetadataPersister keeps the snapshot as JSON in the local metadata table.
type MetadataPersister struct {
	repo metadata.Repository
}

func NewMetadataPersister(repo metadata.Repository) *MetadataPersister {
	return &MetadataPersister{repo: repo}
}

func (p *MetadataPersister) Load(ctx context.Context) (*Snapshot, error) {
	b, err := p.repo.Get(ctx, SnapshotKey)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", SnapshotKey, err)
	}
	return &s, nil
}

func (p *MetadataPersister) Save(ctx context.Context, s Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return p.repo.Set(ctx, SnapshotKey, b)
}
