package storage

import (
	"context"
	"errors"
)

// Keys stored per device namespace. Values are JSON documents.
const (
	KeyToken           = "bosko-token"
	KeyCart            = "bosko-cart"
	KeyRememberedEmail = "bosko-remember-email"
	KeyLanguage        = "bosko-language"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Repository is a durable key-value store partitioned by namespace (one per device).
type Repository interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
	Ping(ctx context.Context) error
}

// Scoped binds a Repository to a single namespace.
type Scoped struct {
	repo      Repository
	namespace string
}

func Scope(repo Repository, namespace string) *Scoped {
	return &Scoped{repo: repo, namespace: namespace}
}

func (s *Scoped) Namespace() string { return s.namespace }

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.repo.Get(ctx, s.namespace, key)
}

func (s *Scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.repo.Set(ctx, s.namespace, key, value)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, s.namespace, key)
}
