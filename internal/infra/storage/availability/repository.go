package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/pkg/dbmetrics"
	"github.com/talentbridge/MentorBookingService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

// Repository persists the two kinds of calendar facts per mentor:
// recurring weekly rules and date-specific overrides.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an availability repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var weeklyRuleColumns = []string{
	"id",
	"mentor_id",
	"day_of_week",
	"start_time",
	"end_time",
	"timezone",
	"is_active",
	"created_at",
	"updated_at",
}

var overrideColumns = []string{
	"id",
	"mentor_id",
	"date",
	"start_time",
	"end_time",
	"timezone",
	"is_available",
	"reason",
	"created_at",
	"updated_at",
}

// CreateWeeklyRule inserts a recurring availability window
func (r *Repository) CreateWeeklyRule(ctx context.Context, rule *domain.WeeklyRule) (*domain.WeeklyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_rules").
		Columns("mentor_id", "day_of_week", "start_time", "end_time", "timezone", "is_active").
		Values(rule.MentorID, rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.Timezone, rule.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWeeklyRule - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateRule
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWeeklyRule - execute insert: %w", ErrExecQuery, err)
	}

	return rule, nil
}

// GetWeeklyRuleByID fetches one weekly rule
func (r *Repository) GetWeeklyRuleByID(ctx context.Context, id int64) (*domain.WeeklyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(weeklyRuleColumns...).
		From("weekly_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyRuleByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanWeeklyRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyRuleByID - scan rule: %w", ErrScanRow, err)
	}

	return rule, nil
}

// ListWeeklyRulesForDay returns the active rules for one weekday,
// ordered by start time. This is the resolver's read path.
func (r *Repository) ListWeeklyRulesForDay(ctx context.Context, mentorID int64, dayOfWeek int) ([]*domain.WeeklyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(weeklyRuleColumns...).
		From("weekly_rules").
		Where(squirrel.Eq{"mentor_id": mentorID, "day_of_week": dayOfWeek, "is_active": true}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyRulesForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyRulesForDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWeeklyRules(rows)
}

// ListWeeklyRulesByMentor returns all rules of a mentor, active or not,
// for the availability-editing view.
func (r *Repository) ListWeeklyRulesByMentor(ctx context.Context, mentorID int64) ([]*domain.WeeklyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(weeklyRuleColumns...).
		From("weekly_rules").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyRulesByMentor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyRulesByMentor - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWeeklyRules(rows)
}

// DeleteWeeklyRule removes a weekly rule by id
func (r *Repository) DeleteWeeklyRule(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("weekly_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteWeeklyRule - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteWeeklyRule - execute delete: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteWeeklyRule - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// CreateOverride inserts a date-specific availability addition or block
func (r *Repository) CreateOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns("mentor_id", "date", "start_time", "end_time", "timezone", "is_available", "reason").
		Values(
			override.MentorID,
			override.Date,
			override.StartTime,
			override.EndTime,
			override.Timezone,
			override.IsAvailable,
			override.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOverride - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&override.ID, &override.CreatedAt, &override.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateOverride
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOverride - execute insert: %w", ErrExecQuery, err)
	}

	return override, nil
}

// GetOverrideByID fetches one date override
func (r *Repository) GetOverrideByID(ctx context.Context, id int64) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideByID - build select query: %v", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideByID - scan override: %w", ErrScanRow, err)
	}

	return override, nil
}

// ListOverridesForDate returns all overrides of a mentor on one date,
// available and blocking alike, ordered by start time.
func (r *Repository) ListOverridesForDate(ctx context.Context, mentorID int64, date string) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"mentor_id": mentorID, "date": date}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesForDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanOverrides(rows)
}

// ListOverridesInRange returns a mentor's overrides within [startDate, endDate]
func (r *Repository) ListOverridesInRange(ctx context.Context, mentorID int64, startDate, endDate string) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.GtOrEq{"date": startDate}).
		Where(squirrel.LtOrEq{"date": endDate}).
		OrderBy("date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanOverrides(rows)
}

// DeleteOverride removes a date override by id
func (r *Repository) DeleteOverride(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWeeklyRule(row rowScanner) (*domain.WeeklyRule, error) {
	var rule domain.WeeklyRule
	err := row.Scan(
		&rule.ID,
		&rule.MentorID,
		&rule.DayOfWeek,
		&rule.StartTime,
		&rule.EndTime,
		&rule.Timezone,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func scanWeeklyRules(rows *sql.Rows) ([]*domain.WeeklyRule, error) {
	var rules []*domain.WeeklyRule
	for rows.Next() {
		rule, err := scanWeeklyRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan weekly rule: %w", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate weekly rules: %w", ErrScanRow, err)
	}
	return rules, nil
}

func scanOverride(row rowScanner) (*domain.DateOverride, error) {
	var override domain.DateOverride
	err := row.Scan(
		&override.ID,
		&override.MentorID,
		&override.Date,
		&override.StartTime,
		&override.EndTime,
		&override.Timezone,
		&override.IsAvailable,
		&override.Reason,
		&override.CreatedAt,
		&override.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func scanOverrides(rows *sql.Rows) ([]*domain.DateOverride, error) {
	var overrides []*domain.DateOverride
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan override: %w", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate overrides: %w", ErrScanRow, err)
	}
	return overrides, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}
