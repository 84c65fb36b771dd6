package availability

import "github.com/talentbridge/MentorBookingService/pkg/dbmetrics"

// Reuse the dbmetrics query interfaces so repositories run equally on a
// bare *sql.DB, an instrumented DB or an open transaction.
type DBExecutor = dbmetrics.DBExecutor
