package fiber

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/okondo/bulletin/crypto"
)

// cookieName deliberately reuses the header name: the original API stored
// the bearer value in a cookie called "Authorization" and clients depend
// on it.
const cookieName = "Authorization"

const claimsKey = "claims"

// requireAuth validates the session token and stores the claims in the
// request context for downstream handlers.
func (a *Adapter) requireAuth(c fiber.Ctx) error {
	token := extractToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	claims, err := crypto.ParseSession(token, a.opts.TokenSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Forbidden",
		})
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// extractToken pulls the session token from the Authorization header
// (Bearer scheme) or, failing that, from the Authorization cookie. The
// header takes precedence when both are present.
func extractToken(c fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && header[:7] == "Bearer " {
		return header[7:]
	}

	// The cookie carries the same "Bearer <token>" value as the header.
	return strings.TrimPrefix(c.Cookies(cookieName), "Bearer ")
}

func sessionClaims(c fiber.Ctx) *crypto.SessionClaims {
	claims, _ := c.Locals(claimsKey).(*crypto.SessionClaims)
	return claims
}
