package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"groupapi/internal/http/middleware"
	"groupapi/internal/service"
)

// Services are the domain services the routes dispatch to.
type Services struct {
	Auth         service.AuthService
	User         service.UserService
	Group        service.GroupService
	GroupRequest service.GroupRequestService
	Label        service.LabelService
	GroupLabel   service.GroupLabelService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Everything except health, login, token refresh and registration requires an access token.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	authn := middleware.Auth(svc.Auth)
	admin := middleware.RequireAdmin()

	auth := app.Group("/auth")
	auth.Post("/login", Login(svc.Auth))
	auth.Post("/refresh-token", RefreshToken(svc.Auth))

	users := app.Group("/user")
	users.Post("/", CreateUser(svc.User))
	users.Get("/", authn, admin, ListUsers(svc.User))
	users.Get("/:authUid", authn, GetUser(svc.User))
	users.Patch("/:authUid", authn, UpdateUser(svc.User))
	users.Delete("/:authUid", authn, DeleteUser(svc.User))

	// Group middleware matches by plain prefix, so /group would also catch
	// /group-request and /group-label.
	groups := app.Group("/group")
	groups.Post("/", authn, CreateGroup(svc.Group))
	groups.Get("/", authn, ListGroups(svc.Group))
	groups.Get("/:uid", authn, GetGroup(svc.Group))
	groups.Patch("/:uid", authn, UpdateGroup(svc.Group))
	groups.Delete("/:uid", authn, DeleteGroup(svc.Group))

	requests := app.Group("/group-request", authn)
	requests.Get("/", ListGroupRequests(svc.GroupRequest))
	requests.Post("/assign-request-to-users", AssignGroupRequests(svc.GroupRequest))
	requests.Post("/approve-group-request/:uid", ApproveGroupRequest(svc.GroupRequest))
	requests.Patch("/reject-group-request/:uid", RejectGroupRequest(svc.GroupRequest))
	requests.Delete("/:uid", DeleteGroupRequest(svc.GroupRequest))

	labels := app.Group("/label", authn, admin)
	labels.Post("/", CreateLabel(svc.Label))
	labels.Get("/", ListLabels(svc.Label))
	labels.Get("/:uid", GetLabel(svc.Label))
	labels.Patch("/:uid", UpdateLabel(svc.Label))
	labels.Delete("/:uid", DeleteLabel(svc.Label))

	groupLabels := app.Group("/group-label", authn, admin)
	groupLabels.Post("/", CreateGroupLabel(svc.GroupLabel))
	groupLabels.Get("/:groupUid", ListGroupLabels(svc.GroupLabel))
	groupLabels.Get("/:groupUid/:uid", GetGroupLabel(svc.GroupLabel))
	groupLabels.Patch("/:groupUid/:uid", UpdateGroupLabel(svc.GroupLabel))
	groupLabels.Delete("/:groupUid/:uid", DeleteGroupLabel(svc.GroupLabel))
}
