package authz

import (
	"errors"
	"fmt"
	"strings"

	"fridgechef/internal/domain/user"
)

var (
	ErrNoPatterns       = errors.New("rule must have at least one path pattern")
	ErrInvalidPattern   = errors.New("path pattern must start with '/'")
	ErrInvalidMethod    = errors.New("invalid HTTP method")
	ErrMissingAuthority = errors.New("role requirement needs at least one authority")
	ErrInvalidRole      = errors.New("invalid role")
)

// RequireKind is the kind of access requirement a rule imposes.
type RequireKind int

const (
	// RequirePublic allows the request unconditionally.
	RequirePublic RequireKind = iota
	// RequireAuthenticated requires a valid principal of any role.
	RequireAuthenticated
	// RequireRole requires the principal to hold the single listed authority.
	RequireRole
	// RequireAnyAuthority requires a non-empty intersection with the listed
	// authorities.
	RequireAnyAuthority
)

// Requirement is the decision a matching rule yields. Authorities are the
// canonical ROLE_-prefixed strings; role matching is exact string equality,
// there is no hierarchy.
type Requirement struct {
	Kind        RequireKind
	Authorities []string
}

func Public() Requirement {
	return Requirement{Kind: RequirePublic}
}

func Authenticated() Requirement {
	return Requirement{Kind: RequireAuthenticated}
}

func HasRole(role user.Role) Requirement {
	return Requirement{Kind: RequireRole, Authorities: []string{role.Authority()}}
}

func HasAnyAuthority(roles ...user.Role) Requirement {
	authorities := make([]string, 0, len(roles))
	for _, r := range roles {
		authorities = append(authorities, r.Authority())
	}
	return Requirement{Kind: RequireAnyAuthority, Authorities: authorities}
}

// Rule gates a set of path patterns for a set of methods. An empty method
// list matches any method.
type Rule struct {
	Methods  []string
	Patterns []string
	Require  Requirement
}

var validMethods = map[string]bool{
	"GET": true, "HEAD": true, "POST": true, "PUT": true,
	"PATCH": true, "DELETE": true, "OPTIONS": true,
}

func (r Rule) validate() error {
	if len(r.Patterns) == 0 {
		return ErrNoPatterns
	}
	for _, p := range r.Patterns {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}
	for _, m := range r.Methods {
		if !validMethods[m] {
			return fmt.Errorf("%w: %q", ErrInvalidMethod, m)
		}
	}
	switch r.Require.Kind {
	case RequireRole, RequireAnyAuthority:
		if len(r.Require.Authorities) == 0 {
			return ErrMissingAuthority
		}
	}
	return nil
}

// Matrix is the ordered access rule table. It is built once at startup,
// validated, and read-only afterwards; evaluation is safe for concurrent use.
type Matrix struct {
	rules []Rule
}

// New builds a Matrix from an ordered rule list. Rule order is significant:
// evaluation is first-match-wins.
func New(rules []Rule) (*Matrix, error) {
	for i, rule := range rules {
		if err := rule.validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return &Matrix{rules: rules}, nil
}

// MustNew builds a Matrix and panics on an invalid rule set
func MustNew(rules []Rule) *Matrix {
	m, err := New(rules)
	if err != nil {
		panic(fmt.Sprintf("authz.MustNew: %v", err))
	}
	return m
}

// Rules returns a copy of the ordered rule table.
func (m *Matrix) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Evaluate walks the table in order and returns the requirement of the first
// rule matching the method and path. Requests matching no rule default to
// Authenticated - never Public.
func (m *Matrix) Evaluate(method, path string) Requirement {
	for _, rule := range m.rules {
		if !methodMatches(rule.Methods, method) {
			continue
		}
		for _, pattern := range rule.Patterns {
			if matchPattern(pattern, path) {
				return rule.Require
			}
		}
	}
	return Authenticated()
}

func methodMatches(methods []string, method string) bool {
	if len(methods) == 0 {
		return true
	}
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

// matchPattern supports three pattern forms: exact paths, {param} segments
// matching exactly one non-empty segment, and a trailing /** matching the
// base path and anything below it.
func matchPattern(pattern, path string) bool {
	if base, ok := strings.CutSuffix(pattern, "/**"); ok {
		if base == "" {
			return true
		}
		return path == base || strings.HasPrefix(path, base+"/")
	}

	patternSegs := strings.Split(pattern, "/")
	pathSegs := strings.Split(path, "/")
	if len(patternSegs) != len(pathSegs) {
		return false
	}

	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if pathSegs[i] == "" {
				return false
			}
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return true
}
