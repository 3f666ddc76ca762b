package handler

import (
	"github.com/gofiber/fiber/v2"

	"groupapi/internal/http/middleware"
	"groupapi/internal/service"
)

type labelRequest struct {
	Name            string `json:"name" validate:"required,max=30"`
	TextColor       string `json:"text_color" validate:"required,color"`
	BackgroundColor string `json:"background_color" validate:"required,color"`
}

func (r labelRequest) input() service.LabelInput {
	return service.LabelInput{Name: r.Name, TextColor: r.TextColor, BackgroundColor: r.BackgroundColor}
}

type updateLabelRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=30"`
	TextColor       *string `json:"text_color" validate:"omitempty,color"`
	BackgroundColor *string `json:"background_color" validate:"omitempty,color"`
}

func (r updateLabelRequest) patch() service.LabelPatch {
	return service.LabelPatch{Name: r.Name, TextColor: r.TextColor, BackgroundColor: r.BackgroundColor}
}

type createGroupLabelRequest struct {
	labelRequest
	GroupUID string `json:"group_uid" validate:"required,uuid"`
}

func CreateLabel(svc service.LabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req labelRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		label, err := svc.Create(c.UserContext(), req.input())
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(label)
	}
}

func ListLabels(svc service.LabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageRequest(c)
		if err != nil {
			return err
		}
		res, err := svc.FindAll(c.UserContext(), page)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func GetLabel(svc service.LabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "uid")
		if err != nil {
			return err
		}
		label, err := svc.FindOne(c.UserContext(), uid)
		if err != nil {
			return err
		}
		return c.JSON(label)
	}
}

func UpdateLabel(svc service.LabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "uid")
		if err != nil {
			return err
		}
		var req updateLabelRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		label, err := svc.Update(c.UserContext(), uid, req.patch())
		if err != nil {
			return err
		}
		return c.JSON(label)
	}
}

func DeleteLabel(svc service.LabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := uidParam(c, "uid")
		if err != nil {
			return err
		}
		label, err := svc.Delete(c.UserContext(), uid)
		if err != nil {
			return err
		}
		return c.JSON(label)
	}
}

func CreateGroupLabel(svc service.GroupLabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createGroupLabelRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		label, err := svc.Create(c.UserContext(), middleware.CurrentUser(c), service.GroupLabelInput{
			LabelInput: req.input(),
			GroupUID:   req.GroupUID,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(label)
	}
}

func ListGroupLabels(svc service.GroupLabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groupUID, err := uidParam(c, "groupUid")
		if err != nil {
			return err
		}
		page, err := pageRequest(c)
		if err != nil {
			return err
		}
		res, err := svc.GetAllByGroup(c.UserContext(), middleware.CurrentUser(c), groupUID, page)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// groupLabelParams reads and checks :groupUid and :uid.
func groupLabelParams(c *fiber.Ctx) (string, string, error) {
	groupUID, err := uidParam(c, "groupUid")
	if err != nil {
		return "", "", err
	}
	uid, err := uidParam(c, "uid")
	if err != nil {
		return "", "", err
	}
	return groupUID, uid, nil
}

func GetGroupLabel(svc service.GroupLabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groupUID, uid, err := groupLabelParams(c)
		if err != nil {
			return err
		}
		label, err := svc.FindOne(c.UserContext(), middleware.CurrentUser(c), groupUID, uid)
		if err != nil {
			return err
		}
		return c.JSON(label)
	}
}

func UpdateGroupLabel(svc service.GroupLabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groupUID, uid, err := groupLabelParams(c)
		if err != nil {
			return err
		}
		var req updateLabelRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		label, err := svc.Update(c.UserContext(), middleware.CurrentUser(c), groupUID, uid, service.GroupLabelPatch{LabelPatch: req.patch()})
		if err != nil {
			return err
		}
		return c.JSON(label)
	}
}

func DeleteGroupLabel(svc service.GroupLabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groupUID, uid, err := groupLabelParams(c)
		if err != nil {
			return err
		}
		label, err := svc.Delete(c.UserContext(), middleware.CurrentUser(c), groupUID, uid)
		if err != nil {
			return err
		}
		return c.JSON(label)
	}
}
