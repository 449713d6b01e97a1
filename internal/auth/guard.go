package auth

import (
	"github.com/gofiber/fiber/v2"
)

// Route paths the guard and navigation refer to.
const (
	RootPath                 = "/"
	LoginPath                = "/login"
	CartPath                 = "/cart"
	SellerPath               = "/seller"
	AdminPath                = "/admin"
	AdminPendingSellersPath  = "/admin/pending-sellers"
	AdminRejectedSellersPath = "/admin/rejected-sellers"
)

// GuardState is the outcome of evaluating a guarded route.
type GuardState int

const (
	Unauthenticated GuardState = iota
	Unauthorized
	Authorized
)

func (s GuardState) String() string {
	switch s {
	case Unauthorized:
		return "unauthorized"
	case Authorized:
		return "authorized"
	default:
		return "unauthenticated"
	}
}

// Evaluate decides access to a route requiring any of required.
// An empty requirement admits nobody.
func Evaluate(hasToken bool, roles RoleSet, required []string) GuardState {
	if !hasToken {
		return Unauthenticated
	}
	if !roles.HasAny(required...) {
		return Unauthorized
	}
	return Authorized
}

// RequireRole redirects to the root path unless the session token carries one
// of anyOf. Missing token and wrong role redirect to the same place.
func RequireRole(anyOf ...string) fiber.Handler {
	required := append([]string(nil), anyOf...)

	return func(c *fiber.Ctx) error {
		session := SessionFromContext(c)
		if Evaluate(session.HasToken(), session.Policy.Roles(), required) != Authorized {
			return c.Redirect(RootPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireAuth redirects to redirectTo when the session has no token.
func RequireAuth(redirectTo string) fiber.Handler {
	if redirectTo == "" {
		redirectTo = LoginPath
	}
	return func(c *fiber.Ctx) error {
		if !SessionFromContext(c).HasToken() {
			return c.Redirect(redirectTo, fiber.StatusFound)
		}
		return c.Next()
	}
}
