package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"groupapi/internal/apperror"
	"groupapi/internal/auth"
	"groupapi/internal/model"
	"groupapi/internal/repository"
)

var userSearchFields = []string{"name", "last_name", "email", "phone"}

// CreateUserInput is the registration payload.
type CreateUserInput struct {
	Name     string
	LastName string
	Email    string
	Phone    *string
	Password string
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	PageRequest
	IsAdmin       *bool
	IsActive      *bool
	VerifiedEmail *bool
	AuthUID       *string
}

func (f UserFilter) where() repository.Where {
	w := repository.Where{}
	if f.IsAdmin != nil {
		w["is_admin"] = *f.IsAdmin
	}
	if f.IsActive != nil {
		w["is_active"] = *f.IsActive
	}
	if f.VerifiedEmail != nil {
		w["verified_email"] = *f.VerifiedEmail
	}
	if f.AuthUID != nil {
		w["auth_uid"] = *f.AuthUID
	}
	return w
}

// UserPatch holds the fields a user may change. Password is plain text and
// hashed by Update.
type UserPatch struct {
	Name     *string
	LastName *string
	Phone    *string
	Password *string
}

func (p UserPatch) Apply(u *model.User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
}

// UserService manages accounts.
type UserService interface {
	// Create registers a new active, verified, non-admin account.
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)

	// FindAll lists users, newest first.
	FindAll(ctx context.Context, f UserFilter) (*Page[model.User], error)

	// FindOne returns the user with authUID or NotFound.
	FindOne(ctx context.Context, authUID string) (*model.User, error)

	// FindByEmail returns the user with email, or nil when none exists.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Update changes the profile of authUID. Only the user itself or an admin may do so.
	Update(ctx context.Context, actor *model.User, authUID string, patch UserPatch) (*model.User, error)

	// Delete soft-removes authUID. Only the user itself or an admin may do so.
	Delete(ctx context.Context, actor *model.User, authUID string) (*model.User, error)
}

type userService struct {
	base *Base[model.User]
}

// NewUserService constructs a UserService over the users store.
func NewUserService(store repository.Store[model.User], limits Limits, log *zap.Logger) UserService {
	return &userService{
		base: NewBase(store, func(u *model.User) int64 { return u.ID }, limits, log),
	}
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &model.User{
		AuthUID:       uuid.NewString(),
		Name:          in.Name,
		LastName:      in.LastName,
		Email:         in.Email,
		Phone:         in.Phone,
		Password:      hash,
		IsAdmin:       false,
		IsActive:      true,
		VerifiedEmail: true,
	}
	return s.base.Create(ctx, user, Options{Unique: []Constraint{
		{Fields: repository.Where{"email": in.Email}},
		{Fields: repository.Where{"phone": in.Phone}},
	}})
}

func (s *userService) FindAll(ctx context.Context, f UserFilter) (*Page[model.User], error) {
	return s.base.FindPage(ctx, FindOptions{
		PageRequest:  f.PageRequest,
		Where:        f.where(),
		SearchFields: userSearchFields,
		Order:        []string{"id DESC"},
	})
}

func (s *userService) FindOne(ctx context.Context, authUID string) (*model.User, error) {
	return s.base.GetOne(ctx, GetOptions{
		Where:         repository.Where{"auth_uid": authUID},
		CheckIfExists: true,
	})
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.base.GetOne(ctx, GetOptions{Where: repository.Where{"email": email}})
}

func (s *userService) Update(ctx context.Context, actor *model.User, authUID string, patch UserPatch) (*model.User, error) {
	if err := canModify(actor, authUID); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("hash password: %w", err))
		}
		patch.Password = &hash
	}
	return s.base.GetOneAndUpdate(ctx, repository.Where{"auth_uid": authUID}, patch, Options{Unique: []Constraint{
		{Fields: repository.Where{"phone": patch.Phone}},
	}})
}

func (s *userService) Delete(ctx context.Context, actor *model.User, authUID string) (*model.User, error) {
	if err := canModify(actor, authUID); err != nil {
		return nil, err
	}
	return s.base.GetOneAndSoftRemove(ctx, repository.Where{"auth_uid": authUID})
}

func canModify(actor *model.User, authUID string) error {
	if actor == nil {
		return apperror.Unauthorized("Unauthorized")
	}
	if actor.IsAdmin || actor.AuthUID == authUID {
		return nil
	}
	return apperror.Forbidden("you can only modify your own account.")
}
