package handler

import (
	"github.com/gofiber/fiber/v2"

	"groupapi/internal/http/middleware"
	"groupapi/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges credentials for a token pair.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		tokens, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(tokens)
	}
}

// RefreshToken issues a new pair for the refresh token sent as a Bearer token.
func RefreshToken(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := middleware.BearerToken(c)
		if err != nil {
			return err
		}
		tokens, err := svc.Refresh(c.UserContext(), token)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(tokens)
	}
}
