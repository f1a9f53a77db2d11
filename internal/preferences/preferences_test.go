package preferences

import (
	"context"
	"testing"

	"bosko-storefront/internal/repository/storage"
)

func TestLanguageDefaultsAndPersists(t *testing.T) {
	ctx := context.Background()
	kv := storage.Scope(storage.NewMemory(), "d1")
	p := New(kv, nil)

	if got := p.Language(ctx); got != Spanish {
		t.Fatalf("expected default es, got %s", got)
	}
	lang, err := p.SetLanguage(ctx, " EN ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lang != English || p.Language(ctx) != English {
		t.Fatalf("expected en to be stored, got %s", p.Language(ctx))
	}
	if _, err := p.SetLanguage(ctx, "fr"); err == nil {
		t.Fatalf("expected error for unsupported language")
	}
}

func TestInvalidStoredLanguageFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := storage.Scope(storage.NewMemory(), "d1")
	_ = kv.Set(ctx, storage.KeyLanguage, []byte(`"de"`))
	if got := New(kv, nil).Language(ctx); got != DefaultLanguage {
		t.Fatalf("expected fallback, got %s", got)
	}
	_ = kv.Set(ctx, storage.KeyLanguage, []byte(`not json`))
	if got := New(kv, nil).Language(ctx); got != DefaultLanguage {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestRememberEmail(t *testing.T) {
	ctx := context.Background()
	kv := storage.Scope(storage.NewMemory(), "d1")
	p := New(kv, nil)

	if err := p.RememberEmail(ctx, "ana@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.RememberedEmail(ctx); got != "ana@example.com" {
		t.Fatalf("unexpected email %q", got)
	}
	if err := p.RememberEmail(ctx, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.RememberedEmail(ctx); got != "" {
		t.Fatalf("expected email to be forgotten, got %q", got)
	}
}
