package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/sga/workcover-engine/claims"
)

var checklistColumns = []string{"id", "case_id", "doc_type", "is_present"}

// seedChecklist inserts the fixed required-document checklist for a
// new case, every item absent.
func seedChecklist(ctx context.Context, db execer, caseID claims.CaseID) error {
	b := qb.Insert("checklist_items").Columns(checklistColumns...)
	for _, docType := range claims.RequiredDocuments {
		b = b.Values(newID(), caseID, docType, false)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build checklist seed: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to seed checklist: %w", err)
	}
	return nil
}

// Checklist returns a case's document checklist in seeded order.
func (s *Store) Checklist(ctx context.Context, caseID claims.CaseID) ([]claims.ChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := qb.Select(checklistColumns...).From("checklist_items").
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("rowid ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build checklist query: %w", err)
	}

	items := make([]claims.ChecklistItem, 0)
	if err := sqlscan.Select(ctx, s.db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query checklist: %w", err)
	}
	return items, nil
}

// SetChecklistItem marks a document present or absent. An item missing
// from the seeded set (cases created before a checklist change) is
// inserted rather than rejected.
func (s *Store) SetChecklistItem(ctx context.Context, caseID claims.CaseID, docType string, present bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.caseByIDLocked(ctx, caseID); err != nil {
		return err
	}

	query := `
		INSERT INTO checklist_items (id, case_id, doc_type, is_present)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(case_id, doc_type) DO UPDATE SET
			is_present = excluded.is_present
	`
	if _, err := s.db.ExecContext(ctx, query, newID(), caseID, docType, present); err != nil {
		return fmt.Errorf("failed to set checklist item: %w", err)
	}
	return nil
}
