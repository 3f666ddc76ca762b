package handler

import (
	"github.com/gofiber/fiber/v2"

	"groupapi/internal/http/middleware"
	"groupapi/internal/service"
)

type createUserRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	LastName string  `json:"last_name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,numeric"`
	Password string  `json:"password" validate:"required,min=8,max=50"`
}

type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	LastName *string `json:"last_name" validate:"omitempty,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,numeric"`
	Password *string `json:"password" validate:"omitempty,min=8,max=50"`
}

func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		user, err := svc.Create(c.UserContext(), service.CreateUserInput{
			Name:     req.Name,
			LastName: req.LastName,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// ListUsers supports the exact filters is_admin, is_active, verified_email and auth_uid.
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageRequest(c)
		if err != nil {
			return err
		}
		f := service.UserFilter{PageRequest: page}
		if f.IsAdmin, err = queryBool(c, "is_admin"); err != nil {
			return err
		}
		if f.IsActive, err = queryBool(c, "is_active"); err != nil {
			return err
		}
		if f.VerifiedEmail, err = queryBool(c, "verified_email"); err != nil {
			return err
		}
		if f.AuthUID, err = queryUID(c, "auth_uid"); err != nil {
			return err
		}

		res, err := svc.FindAll(c.UserContext(), f)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "authUid")
		if err != nil {
			return err
		}
		user, err := svc.FindOne(c.UserContext(), uid)
		if err != nil {
			return err
		}
		return c.JSON(user)
	}
}

func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "authUid")
		if err != nil {
			return err
		}
		var req updateUserRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		user, err := svc.Update(c.UserContext(), middleware.CurrentUser(c), uid, service.UserPatch{
			Name:     req.Name,
			LastName: req.LastName,
			Phone:    req.Phone,
			Password: req.Password,
		})
		if err != nil {
			return err
		}
		return c.JSON(user)
	}
}

func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "authUid")
		if err != nil {
			return err
		}
		user, err := svc.Delete(c.UserContext(), middleware.CurrentUser(c), uid)
		if err != nil {
			return err
		}
		return c.JSON(user)
	}
}
