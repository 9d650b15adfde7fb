package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/domain/user"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

type UserService interface {
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	List(ctx context.Context, filter *types.Filter) ([]*dto.UserResponse, error)
	GrantMembership(ctx context.Context, req *dto.GrantMembershipRequest) (*dto.UserResponse, error)
	ExpireMemberships(ctx context.Context) (int64, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{ServiceParams: params}
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) GetBySlug(ctx context.Context, slug string) (*dto.UserResponse, error) {
	u, err := s.UserRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Members may only edit their own profile; admins may edit anyone's.
	if types.GetUserRole(ctx) != types.RoleAdmin && types.GetUserID(ctx) != id {
		return nil, ierr.NewError("cannot edit another member's profile").
			Mark(ierr.ErrPermissionDenied)
	}

	u, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Name = lo.Ternary(req.Name != "", req.Name, u.Name)
	u.Phone = lo.Ternary(req.Phone != "", req.Phone, u.Phone)
	u.Gender = lo.Ternary(req.Gender != "", req.Gender, u.Gender)
	u.TShirt = lo.Ternary(req.TShirt != "", req.TShirt, u.TShirt)
	u.Batch = lo.Ternary(req.Batch != "", req.Batch, u.Batch)
	u.Dept = lo.Ternary(req.Dept != "", req.Dept, u.Dept)
	u.ProfileImage = lo.Ternary(req.ProfileImage != "", req.ProfileImage, u.ProfileImage)
	u.CFHandle = lo.Ternary(req.CFHandle != "", req.CFHandle, u.CFHandle)
	u.ATCHandle = lo.Ternary(req.ATCHandle != "", req.ATCHandle, u.ATCHandle)
	u.CCHandle = lo.Ternary(req.CCHandle != "", req.CCHandle, u.CCHandle)
	u.UpdatedAt = time.Now().UTC()
	u.UpdatedBy = types.GetUserID(ctx)

	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) List(ctx context.Context, filter *types.Filter) ([]*dto.UserResponse, error) {
	if filter == nil {
		f := types.GetDefaultFilter()
		filter = &f
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	users, err := s.UserRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u *user.User, _ int) *dto.UserResponse {
		return dto.NewUserResponse(u)
	}), nil
}

func (s *userService) GrantMembership(ctx context.Context, req *dto.GrantMembershipRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	// Extending an active membership stacks on the current expiry.
	start := now
	if u.Membership && u.MembershipExpiresAt != nil && u.MembershipExpiresAt.After(now) {
		start = *u.MembershipExpiresAt
	}
	expiry := start.AddDate(0, req.Months, 0)

	u.Membership = true
	u.MembershipExpiresAt = &expiry
	u.UpdatedAt = now
	u.UpdatedBy = types.GetUserID(ctx)

	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.Logger.Infow("membership granted",
		"user_id", u.ID, "months", req.Months, "expires_at", expiry)
	return dto.NewUserResponse(u), nil
}

// ExpireMemberships deactivates lapsed memberships; the sweeper calls it
// on a timer, and admins can trigger it directly.
func (s *userService) ExpireMemberships(ctx context.Context) (int64, error) {
	n, err := s.UserRepo.ExpireMemberships(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.Logger.Infow("expired memberships", "count", n)
	}
	return n, nil
}
