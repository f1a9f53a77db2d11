package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bosko-storefront/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedCredential covers tokens that cannot be decoded.
	ErrMalformedCredential = errors.New("malformed credential")
	// ErrExpiredCredential is returned when the exp claim is not in the future.
	ErrExpiredCredential = errors.New("credential expired")
)

const (
	defaultProvider = "Local"
	// .NET backends emit the role under the long schema claim name.
	roleSchemaClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

var parser = jwt.NewParser()

// ParseCredential decodes the claims of a backend-issued JWT. The signature is
// not verified here; the backend does that on every request. Missing exp or a
// token that is not three segments is malformed.
func ParseCredential(token string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" || strings.Count(token, ".") != 2 {
		return nil, ErrMalformedCredential
	}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrMalformedCredential
	}

	id := &Identity{
		UserID:      firstString(claims, "sub", "userId", "nameid"),
		DisplayName: firstString(claims, "name", "unique_name"),
		Email:       firstString(claims, "email"),
		Provider:    firstString(claims, "provider"),
		ExpiresAt:   exp.Time,
	}
	if id.UserID == "" {
		return nil, ErrMalformedCredential
	}
	if id.Provider == "" {
		id.Provider = defaultProvider
	}
	id.Role = domain.RoleCustomer
	if raw := firstString(claims, "role", roleSchemaClaim); raw != "" {
		role, ok := domain.ParseRole(raw)
		if !ok {
			return nil, ErrMalformedCredential
		}
		id.Role = role
	}
	return id, nil
}

// ValidCredential decodes token and checks it has not expired at now.
func ValidCredential(token string, now time.Time) (*Identity, error) {
	id, err := ParseCredential(token)
	if err != nil {
		return nil, err
	}
	if !now.Before(id.ExpiresAt) {
		return nil, ErrExpiredCredential
	}
	return id, nil
}

func firstString(claims jwt.MapClaims, names ...string) string {
	for _, name := range names {
		switch v := claims[name].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		case []interface{}:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}
