package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskboard/domain/apperrors"
	"taskboard/domain/dto"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	result, err := h.authService.Register(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) {
			return utils.ConflictResponse(c, "Email already in use")
		}
		return utils.InternalServerErrorResponse(c)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailNotVerified) {
			return utils.UnauthorizedResponse(c, "Email not verified")
		}
		return utils.UnauthorizedResponse(c, "Invalid email or password")
	}

	return c.JSON(dto.LoginResponse{User: *dto.UserToUserResponse(user)})
}

func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.VerifyTokenRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	user, err := h.authService.VerifyToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			return utils.UnauthorizedResponse(c, "Invalid token")
		}
		return utils.InternalServerErrorResponse(c)
	}

	return c.JSON(dto.UserToUserResponse(user))
}

func (h *AuthHandler) GetUserByEmail(c *fiber.Ctx) error {
	ctx := c.UserContext()

	param := dto.EmailParam{Email: c.Params("email")}
	if err := utils.ValidateStruct(&param); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	user, err := h.authService.GetUserByEmail(ctx, param.Email)
	if err != nil {
		return utils.NotFoundResponse(c, "User not found")
	}

	return c.JSON(dto.UserToUserResponse(user))
}
