package handler

import (
	"github.com/gofiber/fiber/v2"

	"groupapi/internal/http/middleware"
	"groupapi/internal/service"
)

type createGroupRequest struct {
	Name string `json:"name" validate:"required,max=30"`
}

type updateGroupRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=30"`
}

func CreateGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createGroupRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		group, err := svc.Create(c.UserContext(), middleware.CurrentUser(c), req.Name)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(group)
	}
}

// ListGroups returns the groups the caller belongs to.
func ListGroups(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageRequest(c)
		if err != nil {
			return err
		}
		res, err := svc.FindAll(c.UserContext(), middleware.CurrentUser(c), page)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func GetGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "uid")
		if err != nil {
			return err
		}
		group, err := svc.FindOne(c.UserContext(), middleware.CurrentUser(c), uid)
		if err != nil {
			return err
		}
		return c.JSON(group)
	}
}

func UpdateGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "uid")
		if err != nil {
			return err
		}
		var req updateGroupRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		group, err := svc.Update(c.UserContext(), middleware.CurrentUser(c), uid, service.GroupPatch{Name: req.Name})
		if err != nil {
			return err
		}
		return c.JSON(group)
	}
}

func DeleteGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "uid")
		if err != nil {
			return err
		}
		group, err := svc.Delete(c.UserContext(), middleware.CurrentUser(c), uid)
		if err != nil {
			return err
		}
		return c.JSON(group)
	}
}
