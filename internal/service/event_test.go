package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/domain/user"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/testutil"
	"github.com/pcist/pcist-backend/internal/types"
)

type EventServiceSuite struct {
	testutil.BaseServiceTestSuite
	eventService EventService
}

func TestEventService(t *testing.T) {
	suite.Run(t, new(EventServiceSuite))
}

func (s *EventServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.eventService = NewEventService(newTestParams(&s.BaseServiceTestSuite, nil))
}

func (s *EventServiceSuite) seedMember(id string, roll int, member bool) *user.User {
	u := &user.User{
		ID:         id,
		ClassRoll:  roll,
		Email:      fmt.Sprintf("%s@gmail.com", id),
		Slug:       id,
		Name:       "Member " + id,
		Role:       types.RoleMember,
		Membership: member,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	if member {
		expiry := time.Now().UTC().AddDate(0, 1, 0)
		u.MembershipExpiresAt = &expiry
	}
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
	return u
}

func (s *EventServiceSuite) createEvent(needMembership bool) *dto.EventResponse {
	resp, err := s.eventService.Create(s.GetContext(), &dto.CreateEventRequest{
		Name:           "Intra IST Programming Contest",
		EventType:      "contest",
		Date:           time.Now().UTC().AddDate(0, 0, 7),
		Location:       "IST Campus",
		Description:    "Annual individual contest",
		NeedMembership: needMembership,
	})
	s.Require().NoError(err)
	return resp
}

func (s *EventServiceSuite) TestCreateBroadcastsAnnouncement() {
	resp := s.createEvent(false)
	s.NotEmpty(resp.ID)

	s.Require().Len(s.GetPush().Sent, 1)
	sent := s.GetPush().Sent[0]
	s.Equal("all_users", sent.Topic)
	s.Contains(sent.Notification.Title, "Intra IST Programming Contest")
	s.Equal(resp.ID, sent.Notification.Data["eventId"])
}

func (s *EventServiceSuite) TestUpdateAppliesSetFieldsOnly() {
	ev := s.createEvent(false)

	loc := "Auditorium"
	updated, err := s.eventService.Update(s.GetContext(), ev.ID, &dto.UpdateEventRequest{Location: &loc})
	s.NoError(err)
	s.Equal("Auditorium", updated.Location)
	s.Equal(ev.Name, updated.Name)
}

func (s *EventServiceSuite) TestDeleteHidesEvent() {
	ev := s.createEvent(false)

	s.NoError(s.eventService.Delete(s.GetContext(), ev.ID))

	_, err := s.eventService.GetByID(s.GetContext(), ev.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *EventServiceSuite) TestRegisterSolo() {
	ev := s.createEvent(false)
	s.seedMember("user_solo", 190301, false)

	ctx := types.SetUserID(s.GetContext(), "user_solo")
	reg, err := s.eventService.RegisterSolo(ctx, &dto.RegisterSoloRequest{EventID: ev.ID})
	s.NoError(err)
	s.Equal("user_solo", reg.UserID)
	s.Equal(ev.ID, reg.EventID)
	s.Empty(reg.TeamID)
}

func (s *EventServiceSuite) TestRegisterSoloRejectsDuplicate() {
	ev := s.createEvent(false)
	s.seedMember("user_solo", 190301, false)

	ctx := types.SetUserID(s.GetContext(), "user_solo")
	_, err := s.eventService.RegisterSolo(ctx, &dto.RegisterSoloRequest{EventID: ev.ID})
	s.Require().NoError(err)

	_, err = s.eventService.RegisterSolo(ctx, &dto.RegisterSoloRequest{EventID: ev.ID})
	s.True(ierr.IsAlreadyExists(err))
}

func (s *EventServiceSuite) TestRegisterSoloRequiresMembership() {
	ev := s.createEvent(true)
	s.seedMember("user_free", 190302, false)

	ctx := types.SetUserID(s.GetContext(), "user_free")
	_, err := s.eventService.RegisterSolo(ctx, &dto.RegisterSoloRequest{EventID: ev.ID})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *EventServiceSuite) TestRegisterSoloAllowsActiveMember() {
	ev := s.createEvent(true)
	s.seedMember("user_paid", 190303, true)

	ctx := types.SetUserID(s.GetContext(), "user_paid")
	_, err := s.eventService.RegisterSolo(ctx, &dto.RegisterSoloRequest{EventID: ev.ID})
	s.NoError(err)
}

func (s *EventServiceSuite) TestRegisterTeam() {
	ev := s.createEvent(false)
	s.seedMember("user_a", 190401, false)
	s.seedMember("user_b", 190402, false)
	s.seedMember("user_c", 190403, false)

	team, err := s.eventService.RegisterTeam(s.GetContext(), &dto.RegisterTeamRequest{
		EventID:  ev.ID,
		TeamName: "Segfault Hunters",
		Members:  []string{"user_a", "user_b", "user_c"},
	})
	s.NoError(err)
	s.NotEmpty(team.TeamID)
	s.Len(team.Members, 3)
	for _, m := range team.Members {
		s.Equal(team.TeamID, m.TeamID)
		s.Equal("Segfault Hunters", m.TeamName)
	}
}

func (s *EventServiceSuite) TestRegisterTeamRejectsDuplicateMember() {
	ev := s.createEvent(false)
	s.seedMember("user_a", 190401, false)

	_, err := s.eventService.RegisterTeam(s.GetContext(), &dto.RegisterTeamRequest{
		EventID:  ev.ID,
		TeamName: "Solo Act",
		Members:  []string{"user_a", "user_a"},
	})
	s.True(ierr.IsValidation(err))
}

func (s *EventServiceSuite) TestRegisterTeamRejectsIneligibleMember() {
	ev := s.createEvent(true)
	s.seedMember("user_paid", 190401, true)
	s.seedMember("user_free", 190402, false)

	_, err := s.eventService.RegisterTeam(s.GetContext(), &dto.RegisterTeamRequest{
		EventID:  ev.ID,
		TeamName: "Half Eligible",
		Members:  []string{"user_paid", "user_free"},
	})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *EventServiceSuite) TestListRegistrationsGroupsTeams() {
	ev := s.createEvent(false)
	s.seedMember("user_solo", 190301, false)
	s.seedMember("user_a", 190401, false)
	s.seedMember("user_b", 190402, false)

	ctx := types.SetUserID(s.GetContext(), "user_solo")
	_, err := s.eventService.RegisterSolo(ctx, &dto.RegisterSoloRequest{EventID: ev.ID})
	s.Require().NoError(err)

	_, err = s.eventService.RegisterTeam(s.GetContext(), &dto.RegisterTeamRequest{
		EventID:  ev.ID,
		TeamName: "Pair",
		Members:  []string{"user_a", "user_b"},
	})
	s.Require().NoError(err)

	regs, err := s.eventService.ListRegistrations(s.GetContext(), ev.ID)
	s.NoError(err)
	s.Len(regs.Solo, 1)
	s.Require().Len(regs.Teams, 1)
	s.Len(regs.Teams[0].Members, 2)
	s.Equal("Pair", regs.Teams[0].TeamName)
}

func (s *EventServiceSuite) TestSetPayment() {
	ev := s.createEvent(false)
	s.seedMember("user_solo", 190301, false)

	ctx := types.SetUserID(s.GetContext(), "user_solo")
	_, err := s.eventService.RegisterSolo(ctx, &dto.RegisterSoloRequest{EventID: ev.ID})
	s.Require().NoError(err)

	err = s.eventService.SetPayment(s.GetContext(), &dto.SetPaymentRequest{
		EventID: ev.ID,
		UserID:  "user_solo",
		Done:    true,
	})
	s.NoError(err)

	regs, err := s.eventService.ListRegistrations(s.GetContext(), ev.ID)
	s.Require().NoError(err)
	s.Require().Len(regs.Solo, 1)
	s.True(regs.Solo[0].PaymentDone)
}
