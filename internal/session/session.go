package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"bosko-storefront/internal/identity"
	"bosko-storefront/internal/repository/storage"
)

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Session holds the credential of one device and publishes identity
// transitions to its notifier.
type Session struct {
	kv       KV
	notifier *identity.Notifier
	logger   *log.Logger
	now      func() time.Time

	// transition serializes SignIn/SignOut including delivery to observers.
	transition sync.Mutex
	mu         sync.RWMutex
	token      string
	current    *identity.Identity
}

func New(kv KV, notifier *identity.Notifier, logger *log.Logger, now func() time.Time) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if now == nil {
		now = time.Now
	}
	if notifier == nil {
		notifier = &identity.Notifier{}
	}
	return &Session{kv: kv, notifier: notifier, logger: logger, now: now}
}

func (s *Session) Notifier() *identity.Notifier { return s.notifier }

// Restore loads the stored credential without publishing a change. A stored
// credential that is malformed or expired is removed.
func (s *Session) Restore(ctx context.Context) *identity.Identity {
	raw, err := s.kv.Get(ctx, storage.KeyToken)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Printf("session: read token failed: %v", err)
		}
		return nil
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		// Older clients stored the bare token.
		token = string(raw)
	}
	id, err := identity.ValidCredential(token, s.now())
	if err != nil {
		s.logger.Printf("session: discarding stored token: %v", err)
		if err := s.kv.Delete(ctx, storage.KeyToken); err != nil {
			s.logger.Printf("session: delete token failed: %v", err)
		}
		return nil
	}

	s.mu.Lock()
	s.token, s.current = token, id
	s.mu.Unlock()
	return copyIdentity(id)
}

// SignIn stores token and announces the new identity.
func (s *Session) SignIn(ctx context.Context, token string) (*identity.Identity, error) {
	id, err := identity.ValidCredential(token, s.now())
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return nil, err
	}

	s.transition.Lock()
	defer s.transition.Unlock()

	if err := s.kv.Set(ctx, storage.KeyToken, raw); err != nil {
		s.logger.Printf("session: write token failed: %v", err)
	}
	s.mu.Lock()
	prev := s.current
	s.token, s.current = token, id
	s.mu.Unlock()

	s.notifier.Publish(ctx, identity.Change{Previous: prev, Current: copyIdentity(id)})
	return copyIdentity(id), nil
}

// SignOut forgets the credential. Signing out an anonymous session only clears storage.
func (s *Session) SignOut(ctx context.Context) {
	s.transition.Lock()
	defer s.transition.Unlock()

	if err := s.kv.Delete(ctx, storage.KeyToken); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Printf("session: delete token failed: %v", err)
	}
	s.mu.Lock()
	prev := s.current
	s.token, s.current = "", nil
	s.mu.Unlock()

	if prev != nil {
		s.notifier.Publish(ctx, identity.Change{Previous: prev})
	}
}

// Invalidate is called when the backend rejects the credential.
func (s *Session) Invalidate(ctx context.Context) {
	s.logger.Printf("session: credential rejected by backend, signing out")
	s.SignOut(ctx)
}

// Token returns the current bearer credential, or "" when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Identity() *identity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIdentity(s.current)
}

func copyIdentity(id *identity.Identity) *identity.Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
