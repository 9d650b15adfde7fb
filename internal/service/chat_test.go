package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/domain/user"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/testutil"
	"github.com/pcist/pcist-backend/internal/types"
)

type ChatServiceSuite struct {
	testutil.BaseServiceTestSuite
	chatService ChatService
}

func TestChatService(t *testing.T) {
	suite.Run(t, new(ChatServiceSuite))
}

func (s *ChatServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.chatService = NewChatService(newTestParams(&s.BaseServiceTestSuite, nil))

	// The suite context carries DefaultUserID; back it with a real user.
	u := &user.User{
		ID:        types.DefaultUserID,
		ClassRoll: 190101,
		Email:     "sender@gmail.com",
		Slug:      "sender",
		Name:      "Karim",
		Role:      types.RoleMember,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
}

func (s *ChatServiceSuite) TestPostAttachesSender() {
	msg, err := s.chatService.Post(s.GetContext(), &dto.PostMessageRequest{Text: "Contest moved to room 402"})
	s.NoError(err)
	s.Equal(types.DefaultUserID, msg.SenderID)
	s.Equal("Karim", msg.SenderName)
	s.Equal("Contest moved to room 402", msg.Text)
	s.False(msg.SentAt.IsZero())
}

func (s *ChatServiceSuite) TestPostNotifiesTopic() {
	_, err := s.chatService.Post(s.GetContext(), &dto.PostMessageRequest{Text: "hello"})
	s.Require().NoError(err)

	s.Require().Len(s.GetPush().Sent, 1)
	s.Equal("Karim", s.GetPush().Sent[0].Notification.Title)
	s.Equal("hello", s.GetPush().Sent[0].Notification.Body)
}

func (s *ChatServiceSuite) TestPostRejectsOversizedMessage() {
	_, err := s.chatService.Post(s.GetContext(), &dto.PostMessageRequest{
		Text: strings.Repeat("x", 2001),
	})
	s.True(ierr.IsValidation(err))
}

func (s *ChatServiceSuite) TestPostRequiresKnownSender() {
	ctx := types.SetUserID(s.GetContext(), "user_ghost")
	_, err := s.chatService.Post(ctx, &dto.PostMessageRequest{Text: "boo"})
	s.True(ierr.IsNotFound(err))
}

func (s *ChatServiceSuite) TestHistoryNewestFirst() {
	for _, text := range []string{"first", "second", "third"} {
		_, err := s.chatService.Post(s.GetContext(), &dto.PostMessageRequest{Text: text})
		s.Require().NoError(err)
	}

	msgs, err := s.chatService.History(s.GetContext(), nil)
	s.NoError(err)
	s.Require().Len(msgs, 3)
	s.False(msgs[0].SentAt.Before(msgs[1].SentAt))
	s.False(msgs[1].SentAt.Before(msgs[2].SentAt))
}
