package middleware

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/domain/services"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

// Protected runs the full auth hand-off per request: the bearer token is
// verified against the identity provider and mapped to the local user, which
// then rides along in fiber locals. Requests without a valid token never
// reach the handlers behind this middleware.
func Protected(authService services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "No token provided")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		user, err := authService.VerifyToken(c.UserContext(), token)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Request rejected, token invalid")
			return utils.UnauthorizedResponse(c, "Invalid token")
		}

		utils.SetUserInContext(c, user)
		return c.Next()
	}
}
