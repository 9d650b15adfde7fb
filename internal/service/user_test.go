package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/domain/user"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/testutil"
	"github.com/pcist/pcist-backend/internal/types"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	userService UserService
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.userService = NewUserService(newTestParams(&s.BaseServiceTestSuite, nil))
}

func (s *UserServiceSuite) seedUser(id string, roll int) *user.User {
	u := &user.User{
		ID:        id,
		ClassRoll: roll,
		Email:     "member@gmail.com",
		Slug:      "member",
		Name:      "Member",
		Role:      types.RoleMember,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
	return u
}

func (s *UserServiceSuite) TestGetByIDAndSlug() {
	s.seedUser("user_1", 190101)

	byID, err := s.userService.GetByID(s.GetContext(), "user_1")
	s.NoError(err)
	s.Equal(190101, byID.ClassRoll)

	bySlug, err := s.userService.GetBySlug(s.GetContext(), "member")
	s.NoError(err)
	s.Equal("user_1", bySlug.ID)

	_, err = s.userService.GetByID(s.GetContext(), "user_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *UserServiceSuite) TestUpdateProfileMergesSetFields() {
	s.seedUser("user_1", 190101)

	resp, err := s.userService.UpdateProfile(s.GetContext(), "user_1", &dto.UpdateProfileRequest{
		Phone:    "+8801700000000",
		CFHandle: "member_cf",
	})
	s.NoError(err)
	s.Equal("+8801700000000", resp.Phone)
	s.Equal("member_cf", resp.CFHandle)
	s.Equal("Member", resp.Name, "unset fields keep their value")
}

func (s *UserServiceSuite) TestMemberCannotEditAnotherProfile() {
	s.seedUser("user_1", 190101)

	ctx := types.SetUserID(s.GetContext(), "user_2")
	ctx = types.SetUserRole(ctx, types.RoleMember)

	_, err := s.userService.UpdateProfile(ctx, "user_1", &dto.UpdateProfileRequest{Name: "Hijacked"})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *UserServiceSuite) TestAdminCanEditAnyProfile() {
	s.seedUser("user_1", 190101)

	resp, err := s.userService.UpdateProfile(s.GetContext(), "user_1", &dto.UpdateProfileRequest{Dept: "EEE"})
	s.NoError(err)
	s.Equal("EEE", resp.Dept)
}

func (s *UserServiceSuite) TestGrantMembership() {
	s.seedUser("user_1", 190101)

	resp, err := s.userService.GrantMembership(s.GetContext(), &dto.GrantMembershipRequest{
		UserID: "user_1",
		Months: 2,
	})
	s.NoError(err)
	s.True(resp.Membership)
	s.Require().NotNil(resp.MembershipExpiresAt)

	expected := time.Now().UTC().AddDate(0, 2, 0)
	s.WithinDuration(expected, *resp.MembershipExpiresAt, time.Minute)
}

func (s *UserServiceSuite) TestGrantMembershipStacksOnActiveExpiry() {
	s.seedUser("user_1", 190101)

	first, err := s.userService.GrantMembership(s.GetContext(), &dto.GrantMembershipRequest{UserID: "user_1", Months: 1})
	s.Require().NoError(err)

	second, err := s.userService.GrantMembership(s.GetContext(), &dto.GrantMembershipRequest{UserID: "user_1", Months: 1})
	s.Require().NoError(err)

	s.Equal(first.MembershipExpiresAt.AddDate(0, 1, 0), *second.MembershipExpiresAt)
}

func (s *UserServiceSuite) TestGrantMembershipRejectsBadDuration() {
	s.seedUser("user_1", 190101)

	for _, months := range []int{0, 4, -1} {
		_, err := s.userService.GrantMembership(s.GetContext(), &dto.GrantMembershipRequest{UserID: "user_1", Months: months})
		s.True(ierr.IsValidation(err), "months=%d", months)
	}
}

func (s *UserServiceSuite) TestExpireMemberships() {
	u := s.seedUser("user_1", 190101)
	past := time.Now().UTC().Add(-time.Hour)
	u.Membership = true
	u.MembershipExpiresAt = &past
	s.Require().NoError(s.GetStores().UserRepo.Update(s.GetContext(), u))

	n, err := s.userService.ExpireMemberships(s.GetContext())
	s.NoError(err)
	s.Equal(int64(1), n)

	got, err := s.userService.GetByID(s.GetContext(), "user_1")
	s.NoError(err)
	s.False(got.Membership)
}
