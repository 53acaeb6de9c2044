package utils

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"taskboard/domain/models"
)

const userLocalKey = "user"

// SetUserInContext stashes the authenticated user in fiber locals for the
// rest of the request pipeline.
func SetUserInContext(c *fiber.Ctx, user *models.User) {
	c.Locals(userLocalKey, user)
}

func GetUserFromContext(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(userLocalKey).(*models.User)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

// ExtractTokenFromHeader pulls the bearer token out of an Authorization
// header. Returns "" for anything that is not exactly "Bearer <token>".
func ExtractTokenFromHeader(authHeader string) string {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
