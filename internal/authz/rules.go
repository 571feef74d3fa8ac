package authz

import (
	"net/http"

	"fridgechef/internal/domain/user"
)

// DefaultRules is the gateway's access table. Order matters: the first
// matching rule decides, so the narrow GET /user rule sits above the broader
// public API group.
func DefaultRules() []Rule {
	return []Rule{
		{
			Methods: []string{http.MethodGet},
			Patterns: []string{
				"/", "/css/**", "/img/**", "/js/**",
				"/docs.html", "/favicon.ico", "/health",
			},
			Require: Public(),
		},
		{
			Methods:  []string{http.MethodGet},
			Patterns: []string{"/user"},
			Require:  HasRole(user.RoleUser),
		},
		{
			Patterns: []string{
				"/api/auth/**", "/api/mobile/auth/**",
				"/api/user/signup", "/api/user/login",
				"/api/ingredients/**", "/api/fridge/ingredients",
				"/api/recipes/", "/api/recipes/{id}",
				"/api/categorys", "/api/categorys/boards/**",
				"/api/recipes/{recipe_id}/comments",
				"/api/categorys/{category_id}/boards/{board_id}/comments",
			},
			Require: Public(),
		},
		{
			Patterns: []string{
				"/api/user", "/api/user/account", "/api/user/password",
				"/api/recipes/book",
				"/api/categorys/{category_id}/board",
				"/api/recipes/{recipe_id}/comment",
				"/api/categorys/{category_id}/boards/{board_id}/comment",
			},
			Require: HasAnyAuthority(user.RoleUser, user.RoleAdmin),
		},
		{
			Patterns: []string{"/api/manager/busines/ingredient"},
			Require:  HasAnyAuthority(user.RoleAdmin),
		},
		{
			Patterns: []string{"/metrics/**", "/debug/**"},
			Require:  HasAnyAuthority(user.RoleAdmin),
		},
	}
}

// DefaultMatrix builds the access matrix for the service.
func DefaultMatrix() *Matrix {
	return MustNew(DefaultRules())
}
