package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/pcist/pcist-backend/internal/domain/user"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/postgres"
	"github.com/pcist/pcist-backend/internal/types"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `id, class_roll, email, email_verified, password_hash, slug,
	name, phone, gender, tshirt, batch, dept, profile_image,
	cf_handle, atc_handle, cc_handle, badges, certificates,
	role, membership, membership_expires_at,
	status, created_at, updated_at, created_by, updated_by`

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	r.logger.Debugw("creating user", "user_id", u.ID, "class_roll", u.ClassRoll)

	_, err := r.db.Querier(ctx).ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`,
		u.ID, u.ClassRoll, u.Email, u.EmailVerified, u.PasswordHash, u.Slug,
		u.Name, u.Phone, u.Gender, u.TShirt, u.Batch, u.Dept, u.ProfileImage,
		u.CFHandle, u.ATCHandle, u.CCHandle, u.Badges, u.Certificates,
		u.Role, u.Membership, u.MembershipExpiresAt,
		u.Status, u.CreatedAt, u.UpdatedAt, u.CreatedBy, u.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("a user with this roll, email or slug already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithMessage("failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepository) GetBySlug(ctx context.Context, slug string) (*user.User, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *userRepository) GetByClassRoll(ctx context.Context, classRoll int) (*user.User, error) {
	var u user.User
	err := r.db.Querier(ctx).GetContext(ctx, &u, `
		SELECT `+userColumns+` FROM users
		WHERE class_roll = $1 AND status != $2`,
		classRoll, types.StatusDeleted)
	if err != nil {
		return nil, wrapUserErr(err, "class roll")
	}
	return &u, nil
}

func (r *userRepository) getBy(ctx context.Context, column, value string) (*user.User, error) {
	var u user.User
	err := r.db.Querier(ctx).GetContext(ctx, &u, `
		SELECT `+userColumns+` FROM users
		WHERE `+column+` = $1 AND status != $2`,
		value, types.StatusDeleted)
	if err != nil {
		return nil, wrapUserErr(err, column)
	}
	return &u, nil
}

func wrapUserErr(err error, by string) error {
	if err == sql.ErrNoRows {
		return ierr.WithError(err).
			WithHintf("user not found by %s", by).
			Mark(ierr.ErrNotFound)
	}
	return ierr.WithError(err).
		WithMessage("failed to get user").
		Mark(ierr.ErrDatabase)
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	r.logger.Debugw("updating user", "user_id", u.ID)

	res, err := r.db.Querier(ctx).ExecContext(ctx, `
		UPDATE users SET
			email = $2, email_verified = $3, password_hash = $4, slug = $5,
			name = $6, phone = $7, gender = $8, tshirt = $9, batch = $10,
			dept = $11, profile_image = $12,
			cf_handle = $13, atc_handle = $14, cc_handle = $15,
			badges = $16, certificates = $17,
			role = $18, membership = $19, membership_expires_at = $20,
			status = $21, updated_at = $22, updated_by = $23
		WHERE id = $1`,
		u.ID, u.Email, u.EmailVerified, u.PasswordHash, u.Slug,
		u.Name, u.Phone, u.Gender, u.TShirt, u.Batch,
		u.Dept, u.ProfileImage,
		u.CFHandle, u.ATCHandle, u.CCHandle,
		u.Badges, u.Certificates,
		u.Role, u.Membership, u.MembershipExpiresAt,
		u.Status, u.UpdatedAt, u.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("email or slug already in use").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithMessage("failed to update user").
			Mark(ierr.ErrDatabase)
	}
	return requireRowChanged(res, "user")
}

func (r *userRepository) List(ctx context.Context, filter *types.Filter) ([]*user.User, error) {
	var users []*user.User
	err := r.db.Querier(ctx).SelectContext(ctx, &users, `
		SELECT `+userColumns+` FROM users
		WHERE status = $1
		ORDER BY class_roll ASC
		LIMIT $2 OFFSET $3`,
		types.StatusPublished, filter.GetLimit(), filter.GetOffset())
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list users").
			Mark(ierr.ErrDatabase)
	}
	return users, nil
}

func (r *userRepository) ExpireMemberships(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `
		UPDATE users SET membership = false, updated_at = $2
		WHERE membership = true
		  AND membership_expires_at IS NOT NULL
		  AND membership_expires_at <= $1`,
		now, now.UTC())
	if err != nil {
		return 0, ierr.WithError(err).
			WithMessage("failed to expire memberships").
			Mark(ierr.ErrDatabase)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, ierr.WithError(err).
			WithMessage("failed to read expired membership count").
			Mark(ierr.ErrDatabase)
	}
	return n, nil
}

// isUniqueViolation reports a postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if ierr.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// requireRowChanged converts an update that matched nothing into ErrNotFound.
func requireRowChanged(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to read affected rows").
			Mark(ierr.ErrDatabase)
	}
	if n == 0 {
		return ierr.NewErrorf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
