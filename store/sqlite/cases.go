/*
cases.go - Case persistence

Creating a case is a single transaction: the case row, the seeded
ten-item document checklist and the audit entry land together or not
at all.
*/
package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/shopspring/decimal"

	"github.com/sga/workcover-engine/claims"
)

var caseColumns = []string{
	"id", "worker_name", "state", "entity", "site", "claim_number",
	"date_of_injury", "injury_description", "shift_structure",
	"current_capacity", "piawe", "reduction_rate", "priority", "status",
	"strategy", "next_action", "notes", "created_at", "updated_at",
}

// CaseFilter narrows ListCases. Empty slices mean "all".
type CaseFilter struct {
	States     []string
	Capacities []claims.Capacity
	Priorities []claims.Priority
	Statuses   []claims.CaseStatus
}

// CaseUpdate carries the mutable case fields; nil means "unchanged".
type CaseUpdate struct {
	CurrentCapacity *claims.Capacity
	Priority        *claims.Priority
	Status          *claims.CaseStatus
	PIAWE           *decimal.NullDecimal
	ReductionRate   *claims.ReductionRate
	Strategy        *string
	NextAction      *string
	Notes           *string
	ShiftStructure  *string
}

// CreateCase inserts the case, seeds its required-document checklist
// and logs the creation. The case ID is assigned here.
func (s *Store) CreateCase(ctx context.Context, c *claims.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	c.ID = claims.CaseID(newID())
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = claims.StatusActive
	}
	if c.Priority == "" {
		c.Priority = claims.PriorityMedium
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := qb.Insert("cases").Columns(caseColumns...).Values(
		c.ID, c.WorkerName, c.State, c.Entity, c.Site, c.ClaimNumber,
		c.DateOfInjury, c.InjuryDescription, c.ShiftStructure,
		c.CurrentCapacity, c.PIAWE, c.ReductionRate, c.Priority, c.Status,
		c.Strategy, c.NextAction, c.Notes, c.CreatedAt, c.UpdatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build case insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert case: %w", err)
	}

	if err := seedChecklist(ctx, tx, c.ID); err != nil {
		return err
	}
	if err := logActivity(ctx, tx, c.ID, c.WorkerName, "Case Created",
		fmt.Sprintf("New case for %s (%s)", c.WorkerName, c.State)); err != nil {
		return err
	}

	return tx.Commit()
}

// Case returns one case by ID.
func (s *Store) Case(ctx context.Context, id claims.CaseID) (*claims.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := qb.Select(caseColumns...).From("cases").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build case query: %w", err)
	}

	var c claims.Case
	if err := sqlscan.Get(ctx, s.db, &c, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, claims.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	return &c, nil
}

// ListCases returns cases matching the filter, ordered by state then
// worker name so downstream alert aggregation sees a stable order.
func (s *Store) ListCases(ctx context.Context, f CaseFilter) ([]claims.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := qb.Select(caseColumns...).From("cases").
		OrderBy("state ASC", "worker_name ASC")
	if len(f.States) > 0 {
		b = b.Where(sq.Eq{"state": f.States})
	}
	if len(f.Capacities) > 0 {
		b = b.Where(sq.Eq{"current_capacity": f.Capacities})
	}
	if len(f.Priorities) > 0 {
		b = b.Where(sq.Eq{"priority": f.Priorities})
	}
	if len(f.Statuses) > 0 {
		b = b.Where(sq.Eq{"status": f.Statuses})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build case list query: %w", err)
	}

	cases := make([]claims.Case, 0)
	if err := sqlscan.Select(ctx, s.db, &cases, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

// ActiveCases returns all active cases in alert encounter order.
func (s *Store) ActiveCases(ctx context.Context) ([]claims.Case, error) {
	return s.ListCases(ctx, CaseFilter{Statuses: []claims.CaseStatus{claims.StatusActive}})
}

// CountCases returns the total number of cases on record.
func (s *Store) CountCases(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cases").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cases: %w", err)
	}
	return n, nil
}

// UpdateCase applies the set fields and logs the update.
func (s *Store) UpdateCase(ctx context.Context, id claims.CaseID, upd CaseUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.caseByIDLocked(ctx, id)
	if err != nil {
		return err
	}

	set := map[string]any{"updated_at": time.Now().UTC()}
	if upd.CurrentCapacity != nil {
		set["current_capacity"] = *upd.CurrentCapacity
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.PIAWE != nil {
		set["piawe"] = *upd.PIAWE
	}
	if upd.ReductionRate != nil {
		set["reduction_rate"] = *upd.ReductionRate
	}
	if upd.Strategy != nil {
		set["strategy"] = *upd.Strategy
	}
	if upd.NextAction != nil {
		set["next_action"] = *upd.NextAction
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if upd.ShiftStructure != nil {
		set["shift_structure"] = *upd.ShiftStructure
	}

	query, args, err := qb.Update("cases").SetMap(set).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build case update: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}

	return logActivity(ctx, s.db, id, c.WorkerName, "Case Updated", "")
}

// UpdateCapacity sets only the case's current capacity.
func (s *Store) UpdateCapacity(ctx context.Context, id claims.CaseID, capacity claims.Capacity) error {
	return s.UpdateCase(ctx, id, CaseUpdate{CurrentCapacity: &capacity})
}

// caseByIDLocked fetches a case while the write lock is already held.
func (s *Store) caseByIDLocked(ctx context.Context, id claims.CaseID) (*claims.Case, error) {
	query, args, err := qb.Select(caseColumns...).From("cases").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build case query: %w", err)
	}

	var c claims.Case
	if err := sqlscan.Get(ctx, s.db, &c, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, claims.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	return &c, nil
}
