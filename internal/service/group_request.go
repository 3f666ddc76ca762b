package service

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"groupapi/internal/apperror"
	"groupapi/internal/model"
	"groupapi/internal/repository"
)

// GroupRequestFilter narrows the listing of the caller's requests.
type GroupRequestFilter struct {
	PageRequest
	Status model.GroupRequestStatus
}

// AssignRequestsInput invites UserUIDs into the group GroupUID.
type AssignRequestsInput struct {
	GroupUID string
	UserUIDs []string
}

// AssignRequestsResult reports how many requests were created.
type AssignRequestsResult struct {
	Result string `json:"result"`
	Count  int    `json:"count"`
}

type statusPatch model.GroupRequestStatus

func (p statusPatch) Apply(r *model.GroupRequest) { r.Status = model.GroupRequestStatus(p) }

// GroupRequestService manages invitations to join groups.
type GroupRequestService interface {
	// FindAll lists the requests addressed to actor, newest first, each with its group.
	FindAll(ctx context.Context, actor *model.User, f GroupRequestFilter) (*Page[model.GroupRequest], error)

	// Delete removes one of actor's requests.
	Delete(ctx context.Context, actor *model.User, uid string) (*model.GroupRequest, error)

	// AssignToUsers sends a pending request to every listed user. Actor must administer the group.
	AssignToUsers(ctx context.Context, actor *model.User, in AssignRequestsInput) (*AssignRequestsResult, error)

	// Approve accepts a pending request: actor joins the group as USER and the request is removed.
	Approve(ctx context.Context, actor *model.User, uid string) (*model.GroupAssignedUser, error)

	// Reject marks a request as rejected.
	Reject(ctx context.Context, actor *model.User, uid string) (*model.GroupRequest, error)
}

type groupRequestService struct {
	requests *Base[model.GroupRequest]
	users    repository.Store[model.User]
	groups   repository.Store[model.Group]
	members  repository.Store[model.GroupAssignedUser]
	group    GroupService
	log      *zap.Logger
}

// NewGroupRequestService constructs a GroupRequestService.
func NewGroupRequestService(
	requests repository.Store[model.GroupRequest],
	users repository.Store[model.User],
	groups repository.Store[model.Group],
	members repository.Store[model.GroupAssignedUser],
	group GroupService,
	limits Limits,
	log *zap.Logger,
) GroupRequestService {
	if log == nil {
		log = zap.NewNop()
	}
	return &groupRequestService{
		requests: NewBase(requests, func(r *model.GroupRequest) int64 { return r.ID }, limits, log),
		users:    users,
		groups:   groups,
		members:  members,
		group:    group,
		log:      log,
	}
}

func (s *groupRequestService) FindAll(ctx context.Context, actor *model.User, f GroupRequestFilter) (*Page[model.GroupRequest], error) {
	where := repository.Where{"user_id": actor.ID}
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, apperror.BadRequest("status must be one of the following values: PENDING, REJECTED")
		}
		where["status"] = string(f.Status)
	}

	// q matches the group name, not a column of the request itself.
	page := f.PageRequest
	var conds []sq.Sqlizer
	if page.Q != "" {
		conds = append(conds, sq.Expr("group_id IN (SELECT id FROM groups WHERE name ILIKE ?)", "%"+page.Q+"%"))
		page.Q = ""
	}

	result, err := s.requests.FindPage(ctx, FindOptions{
		PageRequest: page,
		Where:       where,
		Conds:       conds,
		Order:       []string{"id DESC"},
	})
	if err != nil {
		return nil, err
	}
	if err := s.attachGroups(ctx, result.Results); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *groupRequestService) attachGroups(ctx context.Context, requests []model.GroupRequest) error {
	if len(requests) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.GroupID)
	}
	groups, err := s.groups.FindMany(ctx, repository.Query{Where: repository.Where{repository.IDColumn: ids}})
	if err != nil {
		return s.internal(err)
	}
	byID := make(map[int64]*model.Group, len(groups))
	for i := range groups {
		byID[groups[i].ID] = &groups[i]
	}
	for i := range requests {
		requests[i].Group = byID[requests[i].GroupID]
	}
	return nil
}

func (s *groupRequestService) own(ctx context.Context, actor *model.User, uid string) (*model.GroupRequest, error) {
	return s.requests.GetOne(ctx, GetOptions{
		Where:         repository.Where{"uid": uid, "user_id": actor.ID},
		CheckIfExists: true,
	})
}

func (s *groupRequestService) Delete(ctx context.Context, actor *model.User, uid string) (*model.GroupRequest, error) {
	return s.requests.GetOneAndRemove(ctx, repository.Where{"uid": uid, "user_id": actor.ID})
}

func (s *groupRequestService) AssignToUsers(ctx context.Context, actor *model.User, in AssignRequestsInput) (*AssignRequestsResult, error) {
	if len(in.UserUIDs) == 0 {
		return nil, apperror.BadRequest("At least one user is required to be able to submit a group request.")
	}
	seen := make(map[string]struct{}, len(in.UserUIDs))
	for _, uid := range in.UserUIDs {
		if _, dup := seen[uid]; dup {
			return nil, apperror.BadRequest("there are repeat users please check.")
		}
		seen[uid] = struct{}{}
	}

	member, err := s.group.UserRole(ctx, actor, in.GroupUID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanManage() {
		return nil, apperror.Conflict("only admin users of the group can send requests.")
	}

	users, err := s.users.FindMany(ctx, repository.Query{Where: repository.Where{"auth_uid": in.UserUIDs}})
	if err != nil {
		return nil, s.internal(err)
	}
	if len(users) == 0 {
		return nil, apperror.NotFound("the entered users do not exist.")
	}
	userIDs := make([]int64, 0, len(users))
	for _, u := range users {
		if !u.IsActive || !u.VerifiedEmail {
			return nil, apperror.NotFound("you cannot send requests to inactive users.")
		}
		userIDs = append(userIDs, u.ID)
	}

	scope := repository.Query{Where: repository.Where{"group_id": member.GroupID, "user_id": userIDs}}
	members, err := s.members.Count(ctx, scope)
	if err != nil {
		return nil, s.internal(err)
	}
	if members > 0 {
		return nil, apperror.Conflict("You can't send a group request to users who already belong to the group.")
	}
	pending, err := s.requests.Count(ctx, scope.Where)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, apperror.Conflict("The group request cannot be sent more than once to the same user.")
	}

	created := 0
	for _, u := range users {
		_, err := s.requests.Create(ctx, &model.GroupRequest{
			UID:     uuid.NewString(),
			Status:  model.GroupRequestPending,
			UserID:  u.ID,
			GroupID: member.GroupID,
		}, Options{})
		if err != nil {
			return nil, err
		}
		created++
	}
	return &AssignRequestsResult{Result: "OK", Count: created}, nil
}

func (s *groupRequestService) Approve(ctx context.Context, actor *model.User, uid string) (*model.GroupAssignedUser, error) {
	request, err := s.own(ctx, actor, uid)
	if err != nil {
		return nil, err
	}
	if request.Status != model.GroupRequestPending {
		return nil, apperror.Conflict("it is not possible to approve a group request that has already been rejected.")
	}

	group, err := s.groups.FindOne(ctx, repository.Query{Where: repository.Where{repository.IDColumn: request.GroupID}})
	if err != nil {
		return nil, s.internal(err)
	}
	if group == nil {
		return nil, apperror.NotFound("can't get the group with the values: (id) = (%d).", request.GroupID)
	}

	member, err := s.group.AssignUser(ctx, actor, group, model.GroupRoleUser)
	if err != nil {
		return nil, err
	}
	if _, err := s.Delete(ctx, actor, uid); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *groupRequestService) Reject(ctx context.Context, actor *model.User, uid string) (*model.GroupRequest, error) {
	request, err := s.own(ctx, actor, uid)
	if err != nil {
		return nil, err
	}
	if request.Status == model.GroupRequestRejected {
		return nil, apperror.Conflict("this request is already in rejected status.")
	}
	return s.requests.Update(ctx, request.ID, statusPatch(model.GroupRequestRejected), Options{})
}

func (s *groupRequestService) internal(err error) error {
	s.log.Error("unexpected store error", zap.String("entity", s.requests.Entity()), zap.Error(err))
	return apperror.Internal(err)
}
