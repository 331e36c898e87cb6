package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spineguard/spinectl/internal/client/models"
	"github.com/spineguard/spinectl/internal/dbx"
)

// Fixed key namespace of the durable projection. Nothing else is
// persisted by the client core.
const (
	keyToken    = "token"
	keyUserID   = "user_id"
	keyUsername = "username"
)

// Store is the typed facade over the key-value repository. It holds the
// bearer token and the identity projection (id, username) that lets a
// session survive a restart.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(db dbx.DBTX) Repository {
	return NewSQLiteRepository(db)
}

// SaveToken durably records token, superseding any prior one.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	return s.repo(s.db).Set(ctx, keyToken, []byte(token))
}

// LoadToken returns the most recently saved token, or "" when absent.
func (s *Store) LoadToken(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SaveIdentity persists the identity projection in a single transaction
// so a crash cannot leave a token without its owner or vice versa.
func (s *Store) SaveIdentity(ctx context.Context, id models.Identity) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyToken, []byte(id.Token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyUserID, []byte(id.ID)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyUsername, []byte(id.Username)); err != nil {
			return err
		}
		return nil
	})
}

// LoadIdentity restores the projection saved by SaveIdentity. The second
// return value is false when no complete projection is stored.
func (s *Store) LoadIdentity(ctx context.Context) (models.Identity, bool, error) {
	repo := s.repo(s.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return models.Identity{}, false, err
	}
	userID, err := repo.Get(ctx, keyUserID)
	if err != nil {
		return models.Identity{}, false, err
	}
	username, err := repo.Get(ctx, keyUsername)
	if err != nil {
		return models.Identity{}, false, err
	}

	if len(token) == 0 || len(userID) == 0 {
		return models.Identity{}, false, nil
	}

	id := models.Identity{
		ID:          string(userID),
		Username:    string(username),
		DisplayName: string(username),
		Token:       string(token),
	}
	return id, true, nil
}

// Clear wipes the whole projection. Clearing an already empty store is
// a no-op, which keeps logout idempotent.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo(s.db).Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear credential store: %w", err)
	}
	return nil
}
