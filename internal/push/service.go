package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/pcist/pcist-backend/internal/config"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/httpclient"
	"github.com/pcist/pcist-backend/internal/logger"
)

const messagingScope = "https://www.googleapis.com/auth/firebase.messaging"

// Notification is one push message.
type Notification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type Service interface {
	// SendToToken delivers to a single device.
	SendToToken(ctx context.Context, token string, n Notification) error
	// SendToTopic delivers to every device subscribed to the topic.
	SendToTopic(ctx context.Context, topic string, n Notification) error
	// Broadcast delivers to the configured club-wide topic.
	Broadcast(ctx context.Context, n Notification) error
}

type fcmService struct {
	client      httpclient.Client
	tokenSource oauth2.TokenSource
	projectID   string
	topic       string
	logger      *logger.Logger
}

// NewService builds an FCM HTTP v1 sender. When push is disabled the
// returned service logs and drops every message, so callers never branch.
func NewService(cfg *config.Configuration, client httpclient.Client, log *logger.Logger) (Service, error) {
	if !cfg.Push.Enabled {
		return &noopService{logger: log}, nil
	}

	creds, err := os.ReadFile(cfg.Push.CredentialsFile)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to read firebase credentials file").
			Mark(ierr.ErrSystem)
	}

	jwtCfg, err := google.JWTConfigFromJSON(creds, messagingScope)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("invalid firebase service account json").
			Mark(ierr.ErrSystem)
	}

	return &fcmService{
		client:      client,
		tokenSource: jwtCfg.TokenSource(context.Background()),
		projectID:   cfg.Push.ProjectID,
		topic:       cfg.Push.BroadcastTopic,
		logger:      log,
	}, nil
}

// fcmMessage mirrors the FCM HTTP v1 request envelope.
type fcmMessage struct {
	Message struct {
		Token        string            `json:"token,omitempty"`
		Topic        string            `json:"topic,omitempty"`
		Notification struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		} `json:"notification"`
		Data map[string]string `json:"data,omitempty"`
	} `json:"message"`
}

func (s *fcmService) SendToToken(ctx context.Context, token string, n Notification) error {
	var msg fcmMessage
	msg.Message.Token = token
	return s.send(ctx, msg, n)
}

func (s *fcmService) SendToTopic(ctx context.Context, topic string, n Notification) error {
	var msg fcmMessage
	msg.Message.Topic = topic
	return s.send(ctx, msg, n)
}

func (s *fcmService) Broadcast(ctx context.Context, n Notification) error {
	return s.SendToTopic(ctx, s.topic, n)
}

func (s *fcmService) send(ctx context.Context, msg fcmMessage, n Notification) error {
	msg.Message.Notification.Title = n.Title
	msg.Message.Notification.Body = n.Body
	msg.Message.Data = n.Data

	body, err := json.Marshal(msg)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to encode push message").
			Mark(ierr.ErrSystem)
	}

	tok, err := s.tokenSource.Token()
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to mint fcm access token").
			Mark(ierr.ErrHTTPClient)
	}

	url := fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", s.projectID)
	_, err = s.client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    url,
		Headers: map[string]string{
			"Authorization": "Bearer " + tok.AccessToken,
		},
		Body: body,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to send push notification").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

type noopService struct {
	logger *logger.Logger
}

func (s *noopService) SendToToken(_ context.Context, _ string, n Notification) error {
	s.logger.Debugw("push disabled, dropping notification", "title", n.Title)
	return nil
}

func (s *noopService) SendToTopic(_ context.Context, topic string, n Notification) error {
	s.logger.Debugw("push disabled, dropping notification", "topic", topic, "title", n.Title)
	return nil
}

func (s *noopService) Broadcast(ctx context.Context, n Notification) error {
	return s.SendToTopic(ctx, "", n)
}
