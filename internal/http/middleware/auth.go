package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"groupapi/internal/apperror"
	"groupapi/internal/model"
)

// UserLocalKey is the Fiber locals key holding the authenticated *model.User.
const UserLocalKey = "user"

// Authenticator resolves an access token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *fiber.Ctx) (string, error) {
	scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", apperror.Unauthorized("Unauthorized")
	}
	return strings.TrimSpace(token), nil
}

// Auth rejects requests without a valid access token and stores the caller in locals.
func Auth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := BearerToken(c)
		if err != nil {
			return err
		}
		user, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}
		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// RequireAdmin lets through only callers with the global admin flag. It must run after Auth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return apperror.Unauthorized("Unauthorized")
		}
		if !user.IsAdmin {
			return apperror.Forbidden("you do not have permission to access this resource.")
		}
		return c.Next()
	}
}

// CurrentUser returns the caller stored by Auth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(UserLocalKey).(*model.User)
	return user
}
