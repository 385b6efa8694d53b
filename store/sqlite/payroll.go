/*
payroll.go - Append-only payroll record

Each entry captures the inputs and computed outputs of one pay
period's compensation calculation. There is no update or delete path;
a wrong entry is corrected by recording a new one.
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

var payrollColumns = []string{
	"id", "case_id", "period_from", "period_to", "piawe",
	"reduction_rate", "days_off", "hours_worked", "estimated_wages",
	"compensation_payable", "top_up", "back_pay_expenses",
	"total_payable", "notes", "created_at",
}

// RecordPayroll appends one payroll entry and logs it.
func (s *Store) RecordPayroll(ctx context.Context, e *claims.PayrollEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.caseByIDLocked(ctx, e.CaseID)
	if err != nil {
		return err
	}

	e.ID = newID()
	e.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := qb.Insert("payroll_entries").Columns(payrollColumns...).Values(
		e.ID, e.CaseID, e.PeriodFrom, e.PeriodTo, e.PIAWE,
		e.ReductionRate, e.DaysOff, e.HoursWorked, e.Wages,
		e.Compensation, e.TopUp, e.BackPay, e.Total, e.Notes, e.CreatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build payroll insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert payroll entry: %w", err)
	}

	if err := logActivity(ctx, tx, e.CaseID, c.WorkerName, "Payroll Recorded",
		fmt.Sprintf("Total payable %s for period %s to %s",
			e.Total.StringFixedBank(2), e.PeriodFrom, e.PeriodTo)); err != nil {
		return err
	}

	return tx.Commit()
}

// PayrollByCase returns a case's payroll history, newest period first.
func (s *Store) PayrollByCase(ctx context.Context, caseID claims.CaseID) ([]claims.PayrollEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := qb.Select(payrollColumns...).From("payroll_entries").
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("period_to DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build payroll query: %w", err)
	}

	entries := make([]claims.PayrollEntry, 0)
	if err := sqlscan.Select(ctx, s.db, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query payroll: %w", err)
	}
	return entries, nil
}

// PayrollHistory returns all payroll entries joined with worker names,
// newest first.
func (s *Store) PayrollHistory(ctx context.Context) ([]claims.CasePayrollEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := qb.Select(
		"p.id", "p.case_id", "p.period_from", "p.period_to", "p.piawe",
		"p.reduction_rate", "p.days_off", "p.hours_worked",
		"p.estimated_wages", "p.compensation_payable", "p.top_up",
		"p.back_pay_expenses", "p.total_payable", "p.notes", "p.created_at",
		"k.worker_name",
	).From("payroll_entries p").
		Join("cases k ON k.id = p.case_id").
		OrderBy("p.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build payroll history query: %w", err)
	}

	entries := make([]claims.CasePayrollEntry, 0)
	if err := sqlscan.Select(ctx, s.db, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query payroll history: %w", err)
	}
	return entries, nil
}
