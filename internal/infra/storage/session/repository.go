package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/pkg/dbmetrics"
	"github.com/talentbridge/MentorBookingService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

// Repository persists mentorship sessions
type Repository struct {
	db DBExecutor
}

// NewRepository creates a session repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var sessionColumns = []string{
	"id",
	"mentor_id",
	"mentee_id",
	"session_type",
	"scheduled_start",
	"scheduled_end",
	"actual_start",
	"actual_end",
	"meeting_link",
	"meeting_id",
	"location",
	"agenda",
	"notes",
	"mentor_notes",
	"mentee_notes",
	"status",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Create inserts a session. A violation of the (mentor_id, scheduled_start)
// uniqueness constraint maps to ErrDuplicateSession so the booking workflow
// can report a conflict instead of a storage fault.
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"mentor_id",
			"mentee_id",
			"session_type",
			"scheduled_start",
			"scheduled_end",
			"meeting_link",
			"meeting_id",
			"location",
			"agenda",
			"notes",
			"mentor_notes",
			"mentee_notes",
			"status",
		).
		Values(
			s.MentorID,
			s.MenteeID,
			s.SessionType,
			s.ScheduledStart,
			s.ScheduledEnd,
			s.MeetingLink,
			s.MeetingID,
			s.Location,
			s.Agenda,
			s.Notes,
			s.MentorNotes,
			s.MenteeNotes,
			s.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSession
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return s, nil
}

// GetByID fetches a session by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %w", ErrScanRow, err)
	}

	return s, nil
}

// Update writes back the mutable fields of a session
func (r *Repository) Update(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("session_type", s.SessionType).
		Set("scheduled_start", s.ScheduledStart).
		Set("scheduled_end", s.ScheduledEnd).
		Set("actual_start", s.ActualStart).
		Set("actual_end", s.ActualEnd).
		Set("meeting_link", s.MeetingLink).
		Set("meeting_id", s.MeetingID).
		Set("location", s.Location).
		Set("agenda", s.Agenda).
		Set("notes", s.Notes).
		Set("mentor_notes", s.MentorNotes).
		Set("mentee_notes", s.MenteeNotes).
		Set("status", s.Status).
		Set("cancellation_reason", s.CancellationReason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSession
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return s, nil
}

// ListActiveOverlapping returns the mentor's active sessions whose scheduled
// interval strictly overlaps [start, end). Touching intervals do not count.
func (r *Repository) ListActiveOverlapping(ctx context.Context, mentorID int64, start, end time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"mentor_id": mentorID, "status": domain.ActiveStatuses}).
		Where(squirrel.Lt{"scheduled_start": end}).
		Where(squirrel.Gt{"scheduled_end": start}).
		OrderBy("scheduled_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListByMentor returns a mentor's sessions, newest first, optionally
// filtered by status and session type.
func (r *Repository) ListByMentor(ctx context.Context, filter domain.MentorSessionsFilter) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"mentor_id": filter.MentorID}).
		OrderBy("scheduled_start DESC")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.SessionType != nil {
		builder = builder.Where(squirrel.Eq{"session_type": *filter.SessionType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMentor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMentor - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListByMentee returns a mentee's sessions, newest first. Scope splits the
// list around filter.Now: upcoming keeps active future sessions, past keeps
// everything that already started.
func (r *Repository) ListByMentee(ctx context.Context, filter domain.MenteeSessionsFilter) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"mentee_id": filter.MenteeID}).
		OrderBy("scheduled_start DESC")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	switch filter.Scope {
	case domain.ScopeUpcoming:
		builder = builder.
			Where(squirrel.GtOrEq{"scheduled_start": filter.Now}).
			Where(squirrel.Eq{"status": []domain.SessionStatus{domain.StatusRequested, domain.StatusScheduled, domain.StatusConfirmed}})
	case domain.ScopePast:
		builder = builder.Where(squirrel.Lt{"scheduled_start": filter.Now})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMentee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMentee - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// GetMenteeStatistics aggregates a mentee's booking history: status counts,
// total actual hours and the three most used session types.
func (r *Repository) GetMenteeStatistics(ctx context.Context, menteeID int64, now time.Time) (*domain.SessionStatistics, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	stats := &domain.SessionStatistics{}

	// Status counts in one pass
	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("sessions").
		Where(squirrel.Eq{"mentee_id": menteeID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenteeStatistics - build status query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenteeStatistics - execute status query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.SessionStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: GetMenteeStatistics - scan status count: %w", ErrScanRow, err)
		}
		stats.TotalSessions += count
		switch status {
		case domain.StatusCompleted:
			stats.CompletedSessions = count
		case domain.StatusCancelled:
			stats.CancelledSessions = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetMenteeStatistics - iterate status counts: %w", ErrScanRow, err)
	}

	// Upcoming count
	query, args, err = psqlbuilder.Select("COUNT(*)").
		From("sessions").
		Where(squirrel.Eq{
			"mentee_id": menteeID,
			"status":    []domain.SessionStatus{domain.StatusRequested, domain.StatusScheduled, domain.StatusConfirmed},
		}).
		Where(squirrel.GtOrEq{"scheduled_start": now}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenteeStatistics - build upcoming query: %v", ErrBuildQuery, err)
	}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&stats.UpcomingSessions); err != nil {
		return nil, fmt.Errorf("%w: GetMenteeStatistics - scan upcoming count: %w", ErrScanRow, err)
	}

	// Total actual hours over sessions that were actually held
	query, args, err = psqlbuilder.Select("COALESCE(SUM(EXTRACT(EPOCH FROM (actual_end - actual_start))) / 3600, 0)").
		From("sessions").
		Where(squirrel.Eq{"mentee_id": menteeID}).
		Where(squirrel.NotEq{"actual_start": nil}).
		Where(squirrel.NotEq{"actual_end": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenteeStatistics - build hours query: %v", ErrBuildQuery, err)
	}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&stats.TotalHours); err != nil {
		return nil, fmt.Errorf("%w: GetMenteeStatistics - scan hours: %w", ErrScanRow, err)
	}

	// Top three session types by usage
	query, args, err = psqlbuilder.Select("session_type").
		From("sessions").
		Where(squirrel.Eq{"mentee_id": menteeID}).
		GroupBy("session_type").
		OrderBy("COUNT(*) DESC").
		Limit(3).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenteeStatistics - build types query: %v", ErrBuildQuery, err)
	}
	typeRows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenteeStatistics - execute types query: %w", ErrExecQuery, err)
	}
	defer typeRows.Close()

	for typeRows.Next() {
		var sessionType domain.SessionType
		if err := typeRows.Scan(&sessionType); err != nil {
			return nil, fmt.Errorf("%w: GetMenteeStatistics - scan session type: %w", ErrScanRow, err)
		}
		stats.FavouriteTypes = append(stats.FavouriteTypes, sessionType)
	}
	if err := typeRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetMenteeStatistics - iterate session types: %w", ErrScanRow, err)
	}

	return stats, nil
}

func scanSession(row interface{ Scan(...interface{}) error }) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.ID,
		&s.MentorID,
		&s.MenteeID,
		&s.SessionType,
		&s.ScheduledStart,
		&s.ScheduledEnd,
		&s.ActualStart,
		&s.ActualEnd,
		&s.MeetingLink,
		&s.MeetingID,
		&s.Location,
		&s.Agenda,
		&s.Notes,
		&s.MentorNotes,
		&s.MenteeNotes,
		&s.Status,
		&s.CancellationReason,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan session: %w", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate sessions: %w", ErrScanRow, err)
	}
	return sessions, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}
