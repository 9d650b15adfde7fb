package postgres

import (
	"context"

	"github.com/pcist/pcist-backend/internal/domain/counter"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/postgres"
	"github.com/pcist/pcist-backend/internal/types"
)

type counterRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCounterRepository(db *postgres.DB, logger *logger.Logger) counter.Repository {
	return &counterRepository{db: db, logger: logger}
}

// Next increments and returns the sequence in a single statement, so two
// concurrent document generations can never read the same value.
func (r *counterRepository) Next(ctx context.Context, kind types.DocumentKind, year int) (int64, error) {
	var value int64
	err := r.db.Querier(ctx).QueryRowContext(ctx, `
		INSERT INTO document_counters (kind, year, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (kind, year)
		DO UPDATE SET value = document_counters.value + 1
		RETURNING value`,
		kind, year).Scan(&value)
	if err != nil {
		return 0, ierr.WithError(err).
			WithMessage("failed to advance document counter").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Debugw("advanced document counter", "kind", kind, "year", year, "value", value)
	return value, nil
}
