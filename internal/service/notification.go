package service

import (
	"context"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/push"
)

type NotificationService interface {
	Broadcast(ctx context.Context, req *dto.BroadcastRequest) error
	NotifyDevice(ctx context.Context, req *dto.NotifyDeviceRequest) error
}

type notificationService struct {
	ServiceParams
}

func NewNotificationService(params ServiceParams) NotificationService {
	return &notificationService{ServiceParams: params}
}

func (s *notificationService) Broadcast(ctx context.Context, req *dto.BroadcastRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.Push.Broadcast(ctx, push.Notification{
		Title: req.Title,
		Body:  req.Body,
		Data:  req.Data,
	})
}

func (s *notificationService) NotifyDevice(ctx context.Context, req *dto.NotifyDeviceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.Push.SendToToken(ctx, req.Token, push.Notification{
		Title: req.Title,
		Body:  req.Body,
		Data:  req.Data,
	})
}
