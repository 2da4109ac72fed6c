package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/mypage/internal/client/models"
	"github.com/dmitrijs2005/mypage/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mypage/internal/common"
	"github.com/dmitrijs2005/mypage/internal/logging"
)

// SessionStore owns the current Session. Login is the only way the session
// becomes authenticated.
type SessionStore struct {
	repo metadata.Repository
	log  logging.Logger

	mu      sync.Mutex
	session models.Session

	subMu  sync.Mutex
	subs   map[int]func(models.Session)
	nextID int
}

// NewSessionStore rehydrates the session from repo. A missing, unreadable or
// malformed record yields the signed-out state.
func NewSessionStore(ctx context.Context, repo metadata.Repository, log logging.Logger) *SessionStore {
	s := &SessionStore{
		repo: repo,
		log:  log,
		subs: make(map[int]func(models.Session)),
	}
	s.session = s.load(ctx)
	return s
}

func (s *SessionStore) load(ctx context.Context) models.Session {
	raw, err := s.repo.Get(ctx, common.SessionKey)
	if err != nil {
		s.log.Warn(ctx, "session: read failed, starting signed out", "error", err)
		return models.Session{}
	}
	if raw == nil {
		return models.Session{}
	}

	var stored models.Session
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.log.Warn(ctx, "session: malformed record ignored", "error", err)
		return models.Session{}
	}
	if !stored.Valid() {
		s.log.Warn(ctx, "session: inconsistent record ignored")
		return models.Session{}
	}
	return stored
}

// Login marks the session authenticated as user. An empty DisplayName is
// derived from the email local part. The new state is kept even if writing
// it to the repository fails; that error is returned for logging.
func (s *SessionStore) Login(ctx context.Context, user models.User, tokens models.Tokens) error {
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("%w: user id and email are required", common.ErrorValidation)
	}
	if user.DisplayName == "" {
		user.DisplayName = models.DisplayNameFromEmail(user.Email)
	}

	next := models.Session{User: &user, Tokens: tokens, IsAuthenticated: true}

	s.mu.Lock()
	s.session = next
	err := s.persist(ctx, next)
	snapshot := s.session.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return err
}

// Logout clears every session field and removes the persisted record. If
// the record cannot be deleted it is overwritten with the signed-out state,
// so a restart never restores the old login.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = models.Session{}
	err := s.clearPersisted(ctx)
	s.mu.Unlock()

	s.notify(models.Session{})
	return err
}

func (s *SessionStore) clearPersisted(ctx context.Context) error {
	err := s.repo.Delete(ctx, common.SessionKey)
	if err == nil {
		return nil
	}
	if perr := s.persist(ctx, models.Session{}); perr != nil {
		return fmt.Errorf("session: clear persisted record: %w", errors.Join(err, perr))
	}
	s.log.Warn(ctx, "session: delete failed, stored signed-out record instead", "error", err)
	return nil
}

// reset drops the in-memory session after its record was removed elsewhere.
func (s *SessionStore) reset() {
	s.mu.Lock()
	s.session = models.Session{}
	s.mu.Unlock()

	s.notify(models.Session{})
}

func (s *SessionStore) persist(ctx context.Context, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := s.repo.Set(ctx, common.SessionKey, raw); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}
	return nil
}

// State returns a copy of the current session.
func (s *SessionStore) State() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// AccessToken returns the Authorization header value for the current
// session, or "" when signed out. It fits client.TokenSource.
func (s *SessionStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsAuthenticated || s.session.Tokens.AccessToken == "" {
		return ""
	}
	tokenType := s.session.Tokens.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + s.session.Tokens.AccessToken
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// Calls happen outside the store's lock, so fn may read the store.
func (s *SessionStore) Subscribe(fn func(models.Session)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *SessionStore) notify(snapshot models.Session) {
	s.subMu.Lock()
	fns := make([]func(models.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot.Clone())
	}
}
