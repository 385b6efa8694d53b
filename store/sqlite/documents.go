package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/sga/workcover-engine/claims"
)

var documentColumns = []string{"id", "case_id", "doc_type", "filename", "created_at"}

// RecordDocument notes that a document was generated for a case. The
// file itself is returned to the caller, not stored.
func (s *Store) RecordDocument(ctx context.Context, caseID claims.CaseID, docType, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args, err := qb.Insert("documents").Columns(documentColumns...).
		Values(newID(), caseID, docType, filename, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build document insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record document: %w", err)
	}
	return nil
}

// DocumentsByCase returns a case's generated-document trail, newest
// first.
func (s *Store) DocumentsByCase(ctx context.Context, caseID claims.CaseID) ([]claims.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := qb.Select(documentColumns...).From("documents").
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build document query: %w", err)
	}

	docs := make([]claims.Document, 0)
	if err := sqlscan.Select(ctx, s.db, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	return docs, nil
}
