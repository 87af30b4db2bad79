package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/client/store"
	"github.com/XXS1337/rentease/internal/dbx"
)

// Store persists the credential and cached profile across restarts.
// LoadToken returns "" (not an error) when nothing is persisted.
type Store interface {
	SaveSession(ctx context.Context, token string, u *models.User) error
	LoadToken(ctx context.Context) (string, error)
	SaveUser(ctx context.Context, u *models.User) error
	LoadUser(ctx context.Context) (*models.User, error)
	Clear(ctx context.Context) error
}

const (
	keyToken   = "token"
	keyProfile = "profile"
)

// metadataStore keeps the token and the serialized profile in the local
// sqlite metadata table.
type metadataStore struct {
	db   *sql.DB
	meta store.Repository
}

// NewStore wraps the state database as a session Store.
func NewStore(db *sql.DB) Store {
	return &metadataStore{db: db, meta: store.NewSQLiteRepository(db)}
}

// SaveSession writes the credential and the profile in one transaction, so a
// crash mid-login cannot leave a token without its profile or vice versa.
func (s *metadataStore) SaveSession(ctx context.Context, token string, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := store.NewSQLiteRepository(tx)
		if err := r.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return r.Set(ctx, keyProfile, data)
	})
}

func (s *metadataStore) LoadToken(ctx context.Context) (string, error) {
	v, err := s.meta.Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *metadataStore) SaveUser(ctx context.Context, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.meta.Set(ctx, keyProfile, data)
}

func (s *metadataStore) LoadUser(ctx context.Context) (*models.User, error) {
	v, err := s.meta.Get(ctx, keyProfile)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &u, nil
}

func (s *metadataStore) Clear(ctx context.Context) error {
	return s.meta.Clear(ctx)
}
