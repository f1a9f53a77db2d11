package guard

import (
	"net/url"
	"strings"
	"time"

	"bosko-storefront/internal/identity"
)

const (
	LoginPath     = "/login"
	ForbiddenPath = "/forbidden"
	apiPrefix     = "/api"
)

// Outcome is the result of a navigation attempt.
type Outcome int

const (
	Allowed Outcome = iota
	RedirectToLogin
	RedirectToForbidden
)

func (o Outcome) String() string {
	switch o {
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToForbidden:
		return "redirect-to-forbidden"
	default:
		return "allowed"
	}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Decision carries the outcome and, for redirects, where to send the user.
type Decision struct {
	Outcome  Outcome            `json:"outcome"`
	Location string             `json:"location,omitempty"`
	ReturnTo string             `json:"returnTo,omitempty"`
	Identity *identity.Identity `json:"identity,omitempty"`
}

type Guard struct {
	table *Table
}

func New(table *Table) *Guard {
	if table == nil {
		table = DefaultTable()
	}
	return &Guard{table: table}
}

// Decide evaluates requested (path plus optional query) against the route
// table. It has no side effects. A credential that cannot be decoded is
// treated as absent.
func (g *Guard) Decide(requested, credential string, now time.Time) Decision {
	route, protected := g.table.Match(requested)
	if !protected {
		return Decision{Outcome: Allowed}
	}

	id, err := identity.ValidCredential(credential, now)
	if err != nil {
		return Decision{
			Outcome:  RedirectToLogin,
			Location: LoginPath + "?returnUrl=" + url.QueryEscape(requested),
			ReturnTo: requested,
		}
	}

	if len(route.Roles) > 0 && !id.HasRole(route.Roles...) {
		return Decision{Outcome: RedirectToForbidden, Location: ForbiddenPath, Identity: id}
	}
	return Decision{Outcome: Allowed, Identity: id}
}

// DecideAPI checks a JSON API request path as the navigation path it serves:
// /api/admin/users is guarded like /admin/users.
func (g *Guard) DecideAPI(requested, credential string, now time.Time) Decision {
	return g.Decide(StripAPIPrefix(requested), credential, now)
}

func StripAPIPrefix(p string) string {
	if p == apiPrefix {
		return "/"
	}
	if strings.HasPrefix(p, apiPrefix+"/") {
		return strings.TrimPrefix(p, apiPrefix)
	}
	return p
}
