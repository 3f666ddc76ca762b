package handler

import (
	"github.com/gofiber/fiber/v2"

	"groupapi/internal/http/middleware"
	"groupapi/internal/model"
	"groupapi/internal/service"
)

type assignRequestsRequest struct {
	GroupUID string   `json:"group_uid" validate:"required,uuid"`
	UserUIDs []string `json:"user_uids" validate:"dive,uuid"`
}

// ListGroupRequests returns the caller's requests, optionally filtered by status.
func ListGroupRequests(svc service.GroupRequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageRequest(c)
		if err != nil {
			return err
		}
		res, err := svc.FindAll(c.UserContext(), middleware.CurrentUser(c), service.GroupRequestFilter{
			PageRequest: page,
			Status:      model.GroupRequestStatus(c.Query("status")),
		})
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func DeleteGroupRequest(svc service.GroupRequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "uid")
		if err != nil {
			return err
		}
		req, err := svc.Delete(c.UserContext(), middleware.CurrentUser(c), uid)
		if err != nil {
			return err
		}
		return c.JSON(req)
	}
}

func AssignGroupRequests(svc service.GroupRequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req assignRequestsRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		res, err := svc.AssignToUsers(c.UserContext(), middleware.CurrentUser(c), service.AssignRequestsInput{
			GroupUID: req.GroupUID,
			UserUIDs: req.UserUIDs,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func ApproveGroupRequest(svc service.GroupRequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "uid")
		if err != nil {
			return err
		}
		member, err := svc.Approve(c.UserContext(), middleware.CurrentUser(c), uid)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(member)
	}
}

func RejectGroupRequest(svc service.GroupRequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "uid")
		if err != nil {
			return err
		}
		req, err := svc.Reject(c.UserContext(), middleware.CurrentUser(c), uid)
		if err != nil {
			return err
		}
		return c.JSON(req)
	}
}
