package mentor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/pkg/dbmetrics"
	"github.com/talentbridge/MentorBookingService/pkg/psqlbuilder"
)

// Repository gives read access to mentor profiles plus the one counter
// this service owns.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a mentor profile repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var profileColumns = []string{
	"id",
	"user_id",
	"display_name",
	"timezone",
	"available_for_mentoring",
	"total_sessions",
	"active",
	"created_at",
	"updated_at",
}

// GetByID fetches a mentor profile by its id
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("mentor_profiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.MentorProfile
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.DisplayName,
		&profile.Timezone,
		&profile.AvailableForMentoring,
		&profile.TotalSessions,
		&profile.Active,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMentorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan profile: %w", ErrScanRow, err)
	}

	return &profile, nil
}

// IncrementTotalSessions bumps the completed-session counter by one
func (r *Repository) IncrementTotalSessions(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("mentor_profiles").
		Set("total_sessions", squirrel.Expr("total_sessions + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementTotalSessions - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementTotalSessions - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementTotalSessions - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrMentorNotFound
	}

	return nil
}
