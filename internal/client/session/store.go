// Package session holds the authentication state of the client: the current
// user and the access/refresh token pair.
//
// Store is the single source of truth for tokens. Every mutation is written
// through to the durable storage (keys "token", "refreshToken" and the
// "auth-storage" JSON blob) inside one transaction, and the HTTP client reads
// tokens from the Store only.
//
// Invariant: an empty AccessToken always implies IsAuthenticated == false.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
	"github.com/dmitrijs2005/mindcare/internal/client/repositories/storage"
	"github.com/dmitrijs2005/mindcare/internal/common"
)

// ErrCorrupt is returned by Load when the persisted auth state cannot be decoded.
var ErrCorrupt = errors.New("persisted session is corrupt")

// Session is a snapshot of the authentication state.
type Session struct {
	User            *models.User `json:"user"`
	AccessToken     string       `json:"accessToken"`
	RefreshToken    string       `json:"refreshToken"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Role returns the user's role, or "" when nobody is logged in.
func (s Session) Role() models.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// UserID returns the user's id, or "".
func (s Session) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.UserID
}

func (s Session) normalized() Session {
	s.IsAuthenticated = s.AccessToken != ""
	return s
}

func (s Session) clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	repo      storage.Repository
	current   Session
	now       func() time.Time
	nextID    int
	listeners map[int]func(Session)

	// writeMu orders durable writes so storage ends up with the latest state.
	writeMu sync.Mutex
}

type Option func(*Store)

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(repo storage.Repository, opts ...Option) *Store {
	s := &Store{repo: repo, now: time.Now, listeners: make(map[int]func(Session))}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load restores the persisted session. Tokens come from their own keys, the
// user from the auth-state blob; the blob's copy of the tokens is only used
// when the keys are missing. An expired access token is discarded while the
// refresh token is kept.
func (s *Store) Load(ctx context.Context) error {
	all, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if blob := all[common.StorageKeyAuthState]; len(blob) > 0 {
		if err := json.Unmarshal(blob, &sess); err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	if v := all[common.StorageKeyToken]; len(v) > 0 {
		sess.AccessToken = string(v)
	}
	if v := all[common.StorageKeyRefreshToken]; len(v) > 0 {
		sess.RefreshToken = string(v)
	}
	if sess.User != nil && sess.User.Validate() != nil {
		sess = Session{}
	}

	expired := sess.AccessToken != "" && Expired(sess.AccessToken, s.now())
	if expired {
		sess.AccessToken = ""
	}

	s.mu.Lock()
	s.current = sess.normalized()
	s.mu.Unlock()

	if expired {
		return s.persist(ctx)
	}
	s.notify()
	return nil
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Login replaces the session with a freshly authenticated one.
func (s *Store) Login(ctx context.Context, user models.User, accessToken, refreshToken string) error {
	s.mu.Lock()
	s.current = Session{User: &user, AccessToken: accessToken, RefreshToken: refreshToken}.normalized()
	s.mu.Unlock()
	return s.persist(ctx)
}

// UpdateTokens stores a refreshed token pair. An empty refreshToken keeps the
// current one.
func (s *Store) UpdateTokens(ctx context.Context, accessToken, refreshToken string) error {
	s.mu.Lock()
	s.current.AccessToken = accessToken
	if refreshToken != "" {
		s.current.RefreshToken = refreshToken
	}
	s.current = s.current.normalized()
	s.mu.Unlock()
	return s.persist(ctx)
}

// SetUser updates the cached profile of the logged-in user.
func (s *Store) SetUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	s.current.User = &user
	s.mu.Unlock()
	return s.persist(ctx)
}

// AccessToken returns the current access token when it has not expired. An
// expired token is discarded from memory and storage and "" is returned.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	tok := s.current.AccessToken
	if tok == "" || !Expired(tok, s.now()) {
		s.mu.Unlock()
		return tok, nil
	}
	s.current.AccessToken = ""
	s.current = s.current.normalized()
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return "", err
	}
	return "", nil
}

// RefreshToken returns the stored refresh token, or "".
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.RefreshToken
}

// Clear logs the user out: memory and durable keys are wiped.
func (s *Store) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()
	err := s.repo.DeleteMany(ctx, common.StorageKeyToken, common.StorageKeyRefreshToken, common.StorageKeyAuthState)
	s.writeMu.Unlock()

	s.notify()
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Subscribe registers fn to be called with a snapshot after every change.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) persist(ctx context.Context) error {
	err := s.write(ctx)
	s.notify()
	return err
}

// write stores the state current at the time writeMu is acquired.
func (s *Store) write(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap := s.Snapshot()
	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode auth state: %w", err)
	}
	err = s.repo.SetMany(ctx, map[string][]byte{
		common.StorageKeyToken:        []byte(snap.AccessToken),
		common.StorageKeyRefreshToken: []byte(snap.RefreshToken),
		common.StorageKeyAuthState:    blob,
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *Store) notify() {
	s.mu.RLock()
	snap := s.current.clone()
	fns := make([]func(Session), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(snap)
	}
}
