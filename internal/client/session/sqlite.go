package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/elearnhq/termclass/internal/client/models"
	"github.com/elearnhq/termclass/internal/common"
	"github.com/elearnhq/termclass/internal/dbx"
)

// OpenEphemeral opens a private in-memory database that lives exactly as
// long as the process, which is the whole point: closing the client discards
// the session the way closing a browser tab discards tab-scoped storage.
func OpenEphemeral(ctx context.Context) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:session-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// cache=shared requires at least one connection held open, otherwise the
	// in-memory database is dropped between calls.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init session db: %w", err)
	}
	return db, nil
}

// kvRepository is a minimal key-value repository over the session table.
type kvRepository struct {
	db dbx.DBTX
}

func (r kvRepository) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session[%s]: %w", key, err)
	}
	return value, nil
}

func (r kvRepository) set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set session[%s]: %w", key, err)
	}
	return nil
}

func (r kvRepository) delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete session[%s]: %w", key, err)
		}
	}
	return nil
}

// SQLStore is the Store implementation over an ephemeral sqlite database.
type SQLStore struct {
	db *sql.DB

	mu      sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
}

var _ Store = (*SQLStore)(nil)

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, subs: make(map[int]chan Snapshot)}
}

func (s *SQLStore) Establish(ctx context.Context, token models.SessionToken, profile models.UserProfile) error {
	blob, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kvRepository{db: tx}
		pairs := map[string][]byte{
			keyAuthHeader:  []byte(token.Header()),
			keyAccessToken: []byte(token.AccessToken),
			keyUserID:      []byte(strconv.FormatInt(profile.ID, 10)),
			keyUserEmail:   []byte(profile.Email),
			keyUserName:    []byte(profile.Name),
			keyProfile:     blob,
		}
		for k, v := range pairs {
			if err := repo.set(ctx, k, v); err != nil {
				return err
			}
		}
		if token.RefreshToken != "" {
			return repo.set(ctx, keyRefreshToken, []byte(token.RefreshToken))
		}
		return repo.delete(ctx, keyRefreshToken)
	})
	if err != nil {
		return err
	}

	s.notify(ctx)
	return nil
}

func (s *SQLStore) Current(ctx context.Context) (Snapshot, error) {
	repo := kvRepository{db: s.db}

	access, err := repo.get(ctx, keyAccessToken)
	if err != nil {
		return Snapshot{}, err
	}
	if len(access) == 0 {
		return Snapshot{}, nil
	}

	header, err := repo.get(ctx, keyAuthHeader)
	if err != nil {
		return Snapshot{}, err
	}
	blob, err := repo.get(ctx, keyProfile)
	if err != nil {
		return Snapshot{}, err
	}
	refresh, err := repo.get(ctx, keyRefreshToken)
	if err != nil {
		return Snapshot{}, err
	}

	var profile models.UserProfile
	if len(blob) > 0 {
		if err := json.Unmarshal(blob, &profile); err != nil {
			return Snapshot{}, fmt.Errorf("decode profile: %w", err)
		}
	}

	scheme, _, _ := strings.Cut(string(header), " ")
	return Snapshot{
		Authenticated: true,
		Token: models.SessionToken{
			AccessToken:  string(access),
			Scheme:       scheme,
			RefreshToken: string(refresh),
		},
		Profile: profile,
	}, nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM session`)
		return err
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.notify(ctx)
	return nil
}

func (s *SQLStore) StashSignup(ctx context.Context, email, name string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kvRepository{db: tx}
		if err := repo.set(ctx, keySignupEmail, []byte(email)); err != nil {
			return err
		}
		return repo.set(ctx, keySignupName, []byte(name))
	})
}

func (s *SQLStore) Signup(ctx context.Context) (string, string, error) {
	repo := kvRepository{db: s.db}

	email, err := repo.get(ctx, keySignupEmail)
	if err != nil {
		return "", "", err
	}
	if len(email) == 0 {
		return "", "", common.ErrNoSignupPending
	}
	name, err := repo.get(ctx, keySignupName)
	if err != nil {
		return "", "", err
	}
	return string(email), string(name), nil
}

func (s *SQLStore) ClearSignup(ctx context.Context) error {
	return kvRepository{db: s.db}.delete(ctx, keySignupEmail, keySignupName)
}

func (s *SQLStore) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// notify pushes the latest snapshot to every subscriber, coalescing when a
// subscriber has not consumed the previous one.
func (s *SQLStore) notify(ctx context.Context) {
	snap, err := s.Current(ctx)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
