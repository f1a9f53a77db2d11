package identity

import (
	"time"

	"bosko-storefront/internal/domain"
)

// Identity is the signed-in user as described by the backend-issued credential.
type Identity struct {
	UserID      string      `json:"userId"`
	Role        domain.Role `json:"role"`
	DisplayName string      `json:"displayName"`
	Email       string      `json:"email"`
	Provider    string      `json:"provider"`
	ExpiresAt   time.Time   `json:"expiresAt"`
}

// Same reports whether a and b denote the same user. Two nil identities are the same.
func Same(a, b *Identity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.UserID == b.UserID
}

// HasRole reports whether the identity's role is one of roles.
func (i *Identity) HasRole(roles ...domain.Role) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if r == i.Role {
			return true
		}
	}
	return false
}
