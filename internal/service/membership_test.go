package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pcist/pcist-backend/internal/domain/user"
	"github.com/pcist/pcist-backend/internal/testutil"
	"github.com/pcist/pcist-backend/internal/types"
)

type MembershipSweeperSuite struct {
	testutil.BaseServiceTestSuite
}

func TestMembershipSweeper(t *testing.T) {
	suite.Run(t, new(MembershipSweeperSuite))
}

func (s *MembershipSweeperSuite) TestStartSweepsImmediately() {
	past := time.Now().UTC().Add(-time.Hour)
	u := &user.User{
		ID:                  "user_lapsed",
		ClassRoll:           190101,
		Email:               "lapsed@gmail.com",
		Slug:                "lapsed",
		Name:                "Lapsed Member",
		Role:                types.RoleMember,
		Membership:          true,
		MembershipExpiresAt: &past,
		BaseModel:           types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))

	params := newTestParams(&s.BaseServiceTestSuite, nil)
	params.Config.Membership.SweepInterval = time.Hour

	sweeper := NewMembershipSweeper(params, NewUserService(params))
	sweeper.Start()
	defer sweeper.Stop()

	s.Eventually(func() bool {
		got, err := s.GetStores().UserRepo.GetByID(s.GetContext(), "user_lapsed")
		return err == nil && !got.Membership
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *MembershipSweeperSuite) TestStopWaitsForLoopExit() {
	params := newTestParams(&s.BaseServiceTestSuite, nil)
	params.Config.Membership.SweepInterval = 10 * time.Millisecond

	sweeper := NewMembershipSweeper(params, NewUserService(params))
	sweeper.Start()
	time.Sleep(30 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("Stop did not return")
	}
}
