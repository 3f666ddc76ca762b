package handler

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"groupapi/internal/apperror"
	"groupapi/internal/service"
)

var colorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{8})$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		return colorPattern.MatchString(fl.Field().String())
	})
	return v
}

// bind decodes the JSON body into dst and validates it.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperror.BadRequest("invalid request body")
	}
	return check(dst)
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.BadRequest("%s", err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperror.BadRequest("%s", strings.Join(msgs, ", "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "email":
		return field + " must be an email"
	case "uuid":
		return field + " must be a UUID"
	case "numeric":
		return field + " must be a number string"
	case "color":
		return field + " must be a hexadecimal color"
	case "min":
		return field + " must be longer than or equal to " + fe.Param() + " characters"
	case "max":
		return field + " must be shorter than or equal to " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}

// uidParam returns the route parameter name, which must be a UUID.
func uidParam(c *fiber.Ctx, name string) (string, error) {
	v := c.Params(name)
	if _, err := uuid.Parse(v); err != nil {
		return "", apperror.BadRequest("%s must be a UUID", name)
	}
	return v, nil
}

// queryUID reads an optional UUID query value; nil when absent.
func queryUID(c *fiber.Ctx, name string) (*string, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(v); err != nil {
		return nil, apperror.BadRequest("%s must be a UUID", name)
	}
	return &v, nil
}

// pageRequest reads limit, offset and q from the query string.
func pageRequest(c *fiber.Ctx) (service.PageRequest, error) {
	page := service.PageRequest{Q: c.Query("q")}
	var err error
	if page.Limit, err = queryInt(c, "limit", 1); err != nil {
		return page, err
	}
	if page.Offset, err = queryInt(c, "offset", 0); err != nil {
		return page, err
	}
	return page, nil
}

func queryInt(c *fiber.Ctx, key string, min int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return 0, apperror.BadRequest("%s must not be less than %d", key, min)
	}
	return n, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.BadRequest("%s must be a boolean value", key)
	}
	return &b, nil
}
