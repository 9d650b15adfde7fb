package postgres

import (
	"context"
	"database/sql"

	"github.com/pcist/pcist-backend/internal/domain/event"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/postgres"
	"github.com/pcist/pcist-backend/internal/types"
)

type eventRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewEventRepository(db *postgres.DB, logger *logger.Logger) event.Repository {
	return &eventRepository{db: db, logger: logger}
}

const eventColumns = `id, name, event_type, date, location, description, need_membership,
	status, created_at, updated_at, created_by, updated_by`

func (r *eventRepository) Create(ctx context.Context, ev *event.Event) error {
	r.logger.Debugw("creating event", "event_id", ev.ID, "name", ev.Name)

	_, err := r.db.Querier(ctx).ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		ev.ID, ev.Name, ev.EventType, ev.Date, ev.Location, ev.Description, ev.NeedMembership,
		ev.Status, ev.CreatedAt, ev.UpdatedAt, ev.CreatedBy, ev.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to create event").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*event.Event, error) {
	var ev event.Event
	err := r.db.Querier(ctx).GetContext(ctx, &ev, `
		SELECT `+eventColumns+` FROM events
		WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("event %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithMessage("failed to get event").
			Mark(ierr.ErrDatabase)
	}
	return &ev, nil
}

func (r *eventRepository) List(ctx context.Context, filter *types.Filter) ([]*event.Event, error) {
	var events []*event.Event
	err := r.db.Querier(ctx).SelectContext(ctx, &events, `
		SELECT `+eventColumns+` FROM events
		WHERE status = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`,
		types.StatusPublished, filter.GetLimit(), filter.GetOffset())
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list events").
			Mark(ierr.ErrDatabase)
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, ev *event.Event) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `
		UPDATE events SET
			name = $2, event_type = $3, date = $4, location = $5,
			description = $6, need_membership = $7,
			status = $8, updated_at = $9, updated_by = $10
		WHERE id = $1`,
		ev.ID, ev.Name, ev.EventType, ev.Date, ev.Location,
		ev.Description, ev.NeedMembership,
		ev.Status, ev.UpdatedAt, ev.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to update event").
			Mark(ierr.ErrDatabase)
	}
	return requireRowChanged(res, "event")
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting event", "event_id", id)

	res, err := r.db.Querier(ctx).ExecContext(ctx, `
		UPDATE events SET status = $2
		WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to delete event").
			Mark(ierr.ErrDatabase)
	}
	return requireRowChanged(res, "event")
}

func (r *eventRepository) AddRegistration(ctx context.Context, reg *event.Registration) error {
	r.logger.Debugw("adding registration", "event_id", reg.EventID, "user_id", reg.UserID)

	_, err := r.db.Querier(ctx).ExecContext(ctx, `
		INSERT INTO event_registrations
			(id, event_id, user_id, name, team_id, team_name, payment_done, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		reg.ID, reg.EventID, reg.UserID, reg.Name, reg.TeamID, reg.TeamName,
		reg.PaymentDone, reg.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("user is already registered for this event").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithMessage("failed to add registration").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *eventRepository) GetRegistration(ctx context.Context, eventID, userID string) (*event.Registration, error) {
	var reg event.Registration
	err := r.db.Querier(ctx).GetContext(ctx, &reg, `
		SELECT id, event_id, user_id, name, team_id, team_name, payment_done, created_at
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2`,
		eventID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHint("registration not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithMessage("failed to get registration").
			Mark(ierr.ErrDatabase)
	}
	return &reg, nil
}

func (r *eventRepository) ListRegistrations(ctx context.Context, eventID string) ([]*event.Registration, error) {
	var regs []*event.Registration
	err := r.db.Querier(ctx).SelectContext(ctx, &regs, `
		SELECT id, event_id, user_id, name, team_id, team_name, payment_done, created_at
		FROM event_registrations
		WHERE event_id = $1
		ORDER BY created_at ASC`,
		eventID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list registrations").
			Mark(ierr.ErrDatabase)
	}
	return regs, nil
}

func (r *eventRepository) SetPaymentDone(ctx context.Context, eventID, userID string, done bool) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `
		UPDATE event_registrations SET payment_done = $3
		WHERE event_id = $1 AND user_id = $2`,
		eventID, userID, done)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to update payment status").
			Mark(ierr.ErrDatabase)
	}
	return requireRowChanged(res, "registration")
}
