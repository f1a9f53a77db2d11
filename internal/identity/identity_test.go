package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"bosko-storefront/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestParseCredentialClaims(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := signed(t, jwt.MapClaims{
		"sub":   "42",
		"name":  "Ana",
		"email": "ana@example.com",
		"role":  "admin",
		"exp":   exp.Unix(),
	})

	id, err := ParseCredential(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", id.UserID)
	assert.Equal(t, domain.RoleAdmin, id.Role)
	assert.Equal(t, "Ana", id.DisplayName)
	assert.Equal(t, "ana@example.com", id.Email)
	assert.Equal(t, "Local", id.Provider)
	assert.True(t, id.ExpiresAt.Equal(exp))
}

func TestParseCredentialFallbackClaims(t *testing.T) {
	tok := signed(t, jwt.MapClaims{
		"userId":      float64(7),
		"unique_name": "Luis",
		"provider":    "Google",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	id, err := ParseCredential(tok)
	require.NoError(t, err)
	assert.Equal(t, "7", id.UserID)
	assert.Equal(t, "Luis", id.DisplayName)
	assert.Equal(t, domain.RoleCustomer, id.Role)
	assert.Equal(t, "Google", id.Provider)
}

func TestParseCredentialMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"two segments": "abc.def",
		"garbage":      "not.a.jwt",
		"missing exp":  signed(t, jwt.MapClaims{"sub": "1"}),
		"missing sub":  signed(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
		"unknown role": signed(t, jwt.MapClaims{"sub": "1", "role": "root", "exp": time.Now().Add(time.Hour).Unix()}),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCredential(tok)
			assert.ErrorIs(t, err, ErrMalformedCredential)
		})
	}
}

func TestValidCredentialExpiry(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	expired := signed(t, jwt.MapClaims{"sub": "1", "exp": now.Add(-time.Second).Unix()})
	atNow := signed(t, jwt.MapClaims{"sub": "1", "exp": now.Unix()})
	live := signed(t, jwt.MapClaims{"sub": "1", "exp": now.Add(time.Minute).Unix()})

	_, err := ValidCredential(expired, now)
	assert.True(t, errors.Is(err, ErrExpiredCredential))
	_, err = ValidCredential(atNow, now)
	assert.True(t, errors.Is(err, ErrExpiredCredential))
	id, err := ValidCredential(live, now)
	require.NoError(t, err)
	assert.Equal(t, "1", id.UserID)
}

func TestChangeKind(t *testing.T) {
	a := &Identity{UserID: "a"}
	a2 := &Identity{UserID: "a", DisplayName: "renamed"}
	b := &Identity{UserID: "b"}

	assert.Equal(t, Unchanged, Change{}.Kind())
	assert.Equal(t, SignedIn, Change{Current: a}.Kind())
	assert.Equal(t, SignedOut, Change{Previous: a}.Kind())
	assert.Equal(t, Switched, Change{Previous: a, Current: b}.Kind())
	assert.Equal(t, Unchanged, Change{Previous: a, Current: a2}.Kind())
}

func TestNotifierDeliversInOrderAndUnsubscribes(t *testing.T) {
	var n Notifier
	var got []string
	unsubFirst := n.Subscribe(ObserverFunc(func(_ context.Context, c Change) {
		got = append(got, "first:"+c.Kind().String())
	}))
	n.Subscribe(ObserverFunc(func(_ context.Context, c Change) {
		got = append(got, "second:"+c.Kind().String())
	}))

	n.Publish(context.Background(), Change{Current: &Identity{UserID: "1"}})
	unsubFirst()
	unsubFirst()
	n.Publish(context.Background(), Change{Previous: &Identity{UserID: "1"}})

	assert.Equal(t, []string{"first:signed-in", "second:signed-in", "second:signed-out"}, got)
}

func TestHasRole(t *testing.T) {
	var anon *Identity
	assert.False(t, anon.HasRole(domain.RoleAdmin))
	emp := &Identity{UserID: "1", Role: domain.RoleEmployee}
	assert.True(t, emp.HasRole(domain.RoleAdmin, domain.RoleEmployee))
	assert.False(t, emp.HasRole(domain.RoleAdmin))
}
