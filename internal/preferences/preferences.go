package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"bosko-storefront/internal/repository/storage"
)

type Language string

const (
	Spanish Language = "es"
	English Language = "en"

	DefaultLanguage = Spanish
)

// ParseLanguage accepts es or en, ignoring case.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case Spanish:
		return Spanish, true
	case English:
		return English, true
	}
	return "", false
}

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Preferences holds the per-device UI settings.
type Preferences struct {
	kv     KV
	logger *log.Logger
}

func New(kv KV, logger *log.Logger) *Preferences {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Preferences{kv: kv, logger: logger}
}

// Language returns the stored language, or the default when nothing valid is stored.
func (p *Preferences) Language(ctx context.Context) Language {
	var raw string
	if !p.read(ctx, storage.KeyLanguage, &raw) {
		return DefaultLanguage
	}
	lang, ok := ParseLanguage(raw)
	if !ok {
		return DefaultLanguage
	}
	return lang
}

func (p *Preferences) SetLanguage(ctx context.Context, raw string) (Language, error) {
	lang, ok := ParseLanguage(raw)
	if !ok {
		return "", fmt.Errorf("unsupported language %q", raw)
	}
	return lang, p.write(ctx, storage.KeyLanguage, string(lang))
}

// RememberedEmail returns the login email saved with "remember me", or "".
func (p *Preferences) RememberedEmail(ctx context.Context) string {
	var email string
	p.read(ctx, storage.KeyRememberedEmail, &email)
	return email
}

// RememberEmail stores email, or forgets it when email is empty.
func (p *Preferences) RememberEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		if err := p.kv.Delete(ctx, storage.KeyRememberedEmail); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("forget email: %w", err)
		}
		return nil
	}
	return p.write(ctx, storage.KeyRememberedEmail, email)
}

func (p *Preferences) read(ctx context.Context, key string, dst *string) bool {
	raw, err := p.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Printf("preferences: read %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		p.logger.Printf("preferences: ignoring undecodable %s: %v", key, err)
		return false
	}
	return true
}

func (p *Preferences) write(ctx context.Context, key, value string) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := p.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
