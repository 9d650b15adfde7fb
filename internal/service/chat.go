package service

import (
	"context"
	"time"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/domain/chat"
	"github.com/pcist/pcist-backend/internal/push"
	"github.com/pcist/pcist-backend/internal/types"
)

type ChatService interface {
	Post(ctx context.Context, req *dto.PostMessageRequest) (*chat.Message, error)
	History(ctx context.Context, filter *types.Filter) ([]*chat.Message, error)
}

type chatService struct {
	ServiceParams
}

func NewChatService(params ServiceParams) ChatService {
	return &chatService{ServiceParams: params}
}

func (s *chatService) Post(ctx context.Context, req *dto.PostMessageRequest) (*chat.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByID(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	msg := &chat.Message{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MESSAGE),
		SenderID:   u.ID,
		SenderName: u.Name,
		Text:       req.Text,
		SentAt:     time.Now().UTC(),
	}
	if err := s.ChatRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	// Notify the club topic; chat must not fail on push errors.
	if err := s.Push.Broadcast(ctx, push.Notification{
		Title: u.Name,
		Body:  req.Text,
		Data:  map[string]string{"messageId": msg.ID},
	}); err != nil {
		s.Logger.Errorw("failed to push chat notification", "message_id", msg.ID, "error", err)
	}

	return msg, nil
}

func (s *chatService) History(ctx context.Context, filter *types.Filter) ([]*chat.Message, error) {
	if filter == nil {
		f := types.GetDefaultFilter()
		filter = &f
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.ChatRepo.List(ctx, filter)
}
