package guard

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"bosko-storefront/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultRoutes []byte

// Route declares that a path prefix requires a signed-in user, optionally
// restricted to a set of roles.
type Route struct {
	Path  string        `yaml:"path"`
	Roles []domain.Role `yaml:"roles"`
}

// Table resolves a path to the most specific protected route.
type Table struct {
	routes []Route
}

type tableFile struct {
	Routes []Route `yaml:"routes"`
}

// DefaultTable returns the embedded route table.
func DefaultTable() *Table {
	t, err := ParseTable(defaultRoutes)
	if err != nil {
		panic(fmt.Sprintf("guard: embedded routes invalid: %v", err))
	}
	return t
}

// LoadTable reads a route table from path, or the embedded one when path is empty.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes a YAML route table. Role names are normalized.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	return NewTable(f.Routes)
}

func NewTable(routes []Route) (*Table, error) {
	seen := make(map[string]struct{}, len(routes))
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		p, ok := normalizePath(r.Path)
		if !ok || !strings.HasPrefix(strings.TrimSpace(r.Path), "/") {
			return nil, fmt.Errorf("route path %q must start with /", r.Path)
		}
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("duplicate route %q", p)
		}
		seen[p] = struct{}{}
		roles := make([]domain.Role, 0, len(r.Roles))
		for _, raw := range r.Roles {
			role, ok := domain.ParseRole(string(raw))
			if !ok {
				return nil, fmt.Errorf("route %q: unknown role %q", p, raw)
			}
			roles = append(roles, role)
		}
		out = append(out, Route{Path: p, Roles: roles})
	}
	// Longest first so the first match is the most specific.
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Path) > len(out[j].Path) })
	return &Table{routes: out}, nil
}

// Match returns the most specific route covering p. Matching respects
// segment boundaries: /admin covers /admin/x but not /administrator.
// A path that cannot be decoded is treated as protected.
func (t *Table) Match(p string) (Route, bool) {
	p, ok := normalizePath(p)
	if !ok {
		return Route{Path: p}, true
	}
	for _, r := range t.routes {
		if r.Path == "/" || p == r.Path || strings.HasPrefix(p, r.Path+"/") {
			return r, true
		}
	}
	return Route{}, false
}

func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// maxUnescape bounds repeated percent-decoding of nested encodings.
const maxUnescape = 3

// normalizePath reduces p to the form a browser router resolves it to:
// query and fragment dropped, percent-decoded, backslashes as slashes,
// dot segments and repeated slashes removed, lower case.
func normalizePath(p string) (string, bool) {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	for i := 0; i < maxUnescape && strings.Contains(p, "%"); i++ {
		decoded, err := url.PathUnescape(p)
		if err != nil {
			return strings.ToLower(p), false
		}
		p = decoded
	}
	p = strings.ReplaceAll(p, `\`, "/")
	return strings.ToLower(path.Clean("/" + p)), true
}
