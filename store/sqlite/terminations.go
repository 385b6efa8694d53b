package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/sga/workcover-engine/claims"
)

var terminationColumns = []string{
	"id", "case_id", "termination_type", "approved_by", "approved_date",
	"assigned_to", "status", "letter_drafted", "letter_sent",
	"response_received", "completed_date", "notes", "created_at",
}

// TerminationUpdate carries the mutable termination fields; nil means
// "unchanged".
type TerminationUpdate struct {
	Status           *claims.TerminationStatus
	LetterDrafted    *bool
	LetterSent       *bool
	ResponseReceived *bool
	AssignedTo       *string
	Notes            *string
}

// CreateTermination opens a termination proceeding against a case. A
// second record for the same case is refused.
func (s *Store) CreateTermination(ctx context.Context, t *claims.Termination) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.caseByIDLocked(ctx, t.CaseID)
	if err != nil {
		return err
	}

	t.ID = claims.TerminationID(newID())
	t.CreatedAt = time.Now().UTC()
	if t.Status == "" {
		t.Status = claims.TerminationPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := qb.Insert("terminations").Columns(terminationColumns...).Values(
		t.ID, t.CaseID, t.TerminationType, t.ApprovedBy, t.ApprovedDate,
		t.AssignedTo, t.Status, t.LetterDrafted, t.LetterSent,
		t.ResponseReceived, t.CompletedDate, t.Notes, t.CreatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build termination insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueConstraintError(err) {
			return claims.ErrTerminationExists
		}
		return fmt.Errorf("failed to insert termination: %w", err)
	}

	if err := logActivity(ctx, tx, t.CaseID, c.WorkerName, "Termination Opened",
		t.TerminationType); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateTermination applies the set fields. Moving to Completed stamps
// CompletedDate with today when it is not already set.
func (s *Store) UpdateTermination(ctx context.Context, id claims.TerminationID, upd TerminationUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t claims.Termination
	query, args, err := qb.Select(terminationColumns...).From("terminations").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build termination query: %w", err)
	}
	if err := sqlscan.Get(ctx, s.db, &t, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return claims.ErrTerminationNotFound
		}
		return fmt.Errorf("failed to load termination: %w", err)
	}

	set := map[string]any{}
	if upd.Status != nil {
		set["status"] = *upd.Status
		if *upd.Status == claims.TerminationCompleted && t.CompletedDate == "" {
			set["completed_date"] = time.Now().UTC().Format(claims.DateLayout)
		}
	}
	if upd.LetterDrafted != nil {
		set["letter_drafted"] = *upd.LetterDrafted
	}
	if upd.LetterSent != nil {
		set["letter_sent"] = *upd.LetterSent
	}
	if upd.ResponseReceived != nil {
		set["response_received"] = *upd.ResponseReceived
	}
	if upd.AssignedTo != nil {
		set["assigned_to"] = *upd.AssignedTo
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if len(set) == 0 {
		return nil
	}

	query, args, err = qb.Update("terminations").SetMap(set).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build termination update: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update termination: %w", err)
	}

	return logActivity(ctx, s.db, t.CaseID, "", "Termination Updated", "")
}

// TerminationByCase returns a case's termination record, if any.
func (s *Store) TerminationByCase(ctx context.Context, caseID claims.CaseID) (*claims.Termination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := qb.Select(terminationColumns...).From("terminations").
		Where(sq.Eq{"case_id": caseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build termination query: %w", err)
	}

	var t claims.Termination
	if err := sqlscan.Get(ctx, s.db, &t, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load termination: %w", err)
	}
	return &t, nil
}

// PendingTerminations returns terminations still at Pending, joined
// with case identity, in alert encounter order. A proceeding moved to
// In Progress is being worked and no longer raises an alert.
func (s *Store) PendingTerminations(ctx context.Context) ([]claims.TerminationCase, error) {
	return s.queryTerminationCases(ctx, true)
}

// ListTerminations returns every termination joined with case identity.
func (s *Store) ListTerminations(ctx context.Context) ([]claims.TerminationCase, error) {
	return s.queryTerminationCases(ctx, false)
}

func (s *Store) queryTerminationCases(ctx context.Context, pendingOnly bool) ([]claims.TerminationCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := qb.Select(
		"t.id", "t.case_id", "t.termination_type", "t.approved_by",
		"t.approved_date", "t.assigned_to", "t.status", "t.letter_drafted",
		"t.letter_sent", "t.response_received", "t.completed_date",
		"t.notes", "t.created_at",
		"k.worker_name", "k.state", "k.site",
	).From("terminations t").
		Join("cases k ON k.id = t.case_id").
		OrderBy("k.state ASC", "k.worker_name ASC")
	if pendingOnly {
		b = b.Where(sq.Eq{"t.status": claims.TerminationPending})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build termination list query: %w", err)
	}

	terms := make([]claims.TerminationCase, 0)
	if err := sqlscan.Select(ctx, s.db, &terms, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query terminations: %w", err)
	}
	return terms, nil
}
