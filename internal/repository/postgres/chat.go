package postgres

import (
	"context"

	"github.com/pcist/pcist-backend/internal/domain/chat"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/postgres"
	"github.com/pcist/pcist-backend/internal/types"
)

type chatRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewChatRepository(db *postgres.DB, logger *logger.Logger) chat.Repository {
	return &chatRepository{db: db, logger: logger}
}

func (r *chatRepository) Create(ctx context.Context, msg *chat.Message) error {
	_, err := r.db.Querier(ctx).ExecContext(ctx, `
		INSERT INTO chat_messages (id, sender_id, sender_name, text, sent_at)
		VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.SenderID, msg.SenderName, msg.Text, msg.SentAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to create chat message").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *chatRepository) List(ctx context.Context, filter *types.Filter) ([]*chat.Message, error) {
	var msgs []*chat.Message
	err := r.db.Querier(ctx).SelectContext(ctx, &msgs, `
		SELECT id, sender_id, sender_name, text, sent_at
		FROM chat_messages
		ORDER BY sent_at DESC
		LIMIT $1 OFFSET $2`,
		filter.GetLimit(), filter.GetOffset())
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list chat messages").
			Mark(ierr.ErrDatabase)
	}
	return msgs, nil
}
