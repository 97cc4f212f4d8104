package gateway

import (
	"context"

	"github.com/dmitrijs2005/stackquery/internal/client/repositories/metadata"
)

// SessionKey is the metadata key of the session secret.
const SessionKey = "session"

// SecretJar keeps the session secret between runs, the way a browser keeps
// the session cookie. Load returns "" when nothing is stored.
type SecretJar interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, secret string) error
	Clear(ctx context.Context) error
}

type MetadataJar struct {
	repo metadata.Repository
}

func NewMetadataJar(repo metadata.Repository) *MetadataJar {
	return &MetadataJar{repo: repo}
}

func (j *MetadataJar) Load(ctx context.Context) (string, error) {
	v, err := j.repo.Get(ctx, SessionKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (j *MetadataJar) Save(ctx context.Context, secret string) error {
	return j.repo.Set(ctx, SessionKey, []byte(secret))
}

func (j *MetadataJar) Clear(ctx context.Context) error {
	return j.repo.Delete(ctx, SessionKey)
}
