/*
certificates.go - Certificate of Capacity persistence

Adding a certificate also updates the owning case's current capacity;
the two writes share a transaction so the case can never disagree with
its newest certificate.
*/
package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/sga/workcover-engine/claims"
)

var certificateColumns = []string{
	"id", "case_id", "cert_from", "cert_to", "capacity",
	"days_per_week", "hours_per_day", "notes", "created_at",
}

// AddCertificate inserts a COC, syncs the case's capacity to it and
// logs the addition, all in one transaction.
func (s *Store) AddCertificate(ctx context.Context, cert *claims.Certificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.caseByIDLocked(ctx, cert.CaseID)
	if err != nil {
		return err
	}

	cert.ID = claims.CertificateID(newID())
	cert.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := qb.Insert("certificates").Columns(certificateColumns...).Values(
		cert.ID, cert.CaseID, cert.CertFrom, cert.CertTo, cert.Capacity,
		cert.DaysPerWeek, cert.HoursPerDay, cert.Notes, cert.CreatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build certificate insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert certificate: %w", err)
	}

	query, args, err = qb.Update("cases").
		SetMap(map[string]any{
			"current_capacity": cert.Capacity,
			"updated_at":       cert.CreatedAt,
		}).
		Where(sq.Eq{"id": cert.CaseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build capacity sync: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to sync case capacity: %w", err)
	}

	if err := logActivity(ctx, tx, cert.CaseID, c.WorkerName, "COC Added",
		fmt.Sprintf("Certificate to %s (%s)", cert.CertTo, cert.Capacity)); err != nil {
		return err
	}

	return tx.Commit()
}

// CertificatesByCase returns a case's COC history, newest first.
func (s *Store) CertificatesByCase(ctx context.Context, caseID claims.CaseID) ([]claims.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := qb.Select(certificateColumns...).From("certificates").
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("cert_to DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build certificate query: %w", err)
	}

	certs := make([]claims.Certificate, 0)
	if err := sqlscan.Select(ctx, s.db, &certs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query certificates: %w", err)
	}
	return certs, nil
}

// LatestCertificates returns each active case's newest certificate
// joined with the worker name, ordered by expiry ascending. This is
// the COC tracker view and the alert aggregation input.
func (s *Store) LatestCertificates(ctx context.Context) ([]claims.CaseCertificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT c.id, c.case_id, c.cert_from, c.cert_to, c.capacity,
		       c.days_per_week, c.hours_per_day, c.notes, c.created_at,
		       k.worker_name
		FROM certificates c
		JOIN cases k ON k.id = c.case_id
		WHERE k.status = ?
		  AND c.id = (
			SELECT c2.id FROM certificates c2
			WHERE c2.case_id = c.case_id
			ORDER BY c2.cert_to DESC, c2.created_at DESC
			LIMIT 1
		  )
		ORDER BY c.cert_to ASC
	`

	certs := make([]claims.CaseCertificate, 0)
	if err := sqlscan.Select(ctx, s.db, &certs, query, claims.StatusActive); err != nil {
		return nil, fmt.Errorf("failed to query latest certificates: %w", err)
	}
	return certs, nil
}
