package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/sga/workcover-engine/claims"
)

var activityColumns = []string{
	"id", "case_id", "worker_name", "action", "details", "created_at",
}

// logActivity appends one audit record. It runs against either the
// store's db or an open transaction so mutations can log atomically.
func logActivity(ctx context.Context, db execer, caseID claims.CaseID, workerName, action, details string) error {
	query, args, err := qb.Insert("activity_log").Columns(activityColumns...).
		Values(newID(), caseID, workerName, action, details, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build activity insert: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	return nil
}

// LogActivity appends one audit record outside any other mutation.
func (s *Store) LogActivity(ctx context.Context, caseID claims.CaseID, workerName, action, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return logActivity(ctx, s.db, caseID, workerName, action, details)
}

const defaultActivityLimit = 50

// RecentActivity returns the newest entries across all cases.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]claims.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.queryActivity(ctx, qb.Select(activityColumns...).From("activity_log").
		OrderBy("created_at DESC").
		Limit(uint64(limit)))
}

// ActivityByCase returns the newest entries for one case.
func (s *Store) ActivityByCase(ctx context.Context, caseID claims.CaseID, limit int) ([]claims.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.queryActivity(ctx, qb.Select(activityColumns...).From("activity_log").
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)))
}

func (s *Store) queryActivity(ctx context.Context, b sq.SelectBuilder) ([]claims.ActivityEntry, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build activity query: %w", err)
	}

	entries := make([]claims.ActivityEntry, 0)
	if err := sqlscan.Select(ctx, s.db, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	return entries, nil
}
