package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sga/workcover-engine/claims"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newCase(worker, state string, capacity claims.Capacity) *claims.Case {
	return &claims.Case{
		WorkerName:      worker,
		State:           state,
		Site:            "Laverton North",
		ClaimNumber:     "WC-" + worker,
		DateOfInjury:    "2025-01-10",
		CurrentCapacity: capacity,
		ReductionRate:   claims.Rate95,
	}
}

func TestCreateCase_SeedsChecklistAndLogsActivity(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	// WHEN a case is created
	c := newCase("Jane Citizen", "VIC", claims.CapacityModified)
	require.NoError(t, s.CreateCase(ctx, c))
	require.NotEmpty(t, c.ID)

	// THEN it is readable with defaults applied
	got, err := s.Case(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Citizen", got.WorkerName)
	assert.Equal(t, claims.StatusActive, got.Status)
	assert.Equal(t, claims.PriorityMedium, got.Priority)

	// AND the full document checklist is seeded, every item absent
	items, err := s.Checklist(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, items, len(claims.RequiredDocuments))
	for i, item := range items {
		assert.Equal(t, claims.RequiredDocuments[i], item.DocType)
		assert.False(t, item.Present)
	}

	// AND the creation is on the audit log
	entries, err := s.ActivityByCase(ctx, c.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Case Created", entries[0].Action)
}

func TestCase_NotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.Case(context.Background(), "missing")
	assert.ErrorIs(t, err, claims.ErrCaseNotFound)
}

func TestListCases_Filters(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateCase(ctx, newCase("Alice", "VIC", claims.CapacityModified)))
	require.NoError(t, s.CreateCase(ctx, newCase("Bob", "NSW", claims.CapacityNone)))
	require.NoError(t, s.CreateCase(ctx, newCase("Carol", "VIC", claims.CapacityNone)))

	all, err := s.ListCases(ctx, CaseFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// ordered by state then worker name
	assert.Equal(t, "Bob", all[0].WorkerName)
	assert.Equal(t, "Alice", all[1].WorkerName)

	vic, err := s.ListCases(ctx, CaseFilter{States: []string{"VIC"}})
	require.NoError(t, err)
	assert.Len(t, vic, 2)

	noCap, err := s.ListCases(ctx, CaseFilter{
		States:     []string{"VIC"},
		Capacities: []claims.Capacity{claims.CapacityNone},
	})
	require.NoError(t, err)
	require.Len(t, noCap, 1)
	assert.Equal(t, "Carol", noCap[0].WorkerName)
}

func TestUpdateCase_AppliesOnlySetFields(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c := newCase("Jane Citizen", "VIC", claims.CapacityNone)
	require.NoError(t, s.CreateCase(ctx, c))

	piawe := decimal.NullDecimal{Decimal: decimal.NewFromInt(1000), Valid: true}
	prio := claims.PriorityHigh
	require.NoError(t, s.UpdateCase(ctx, c.ID, CaseUpdate{
		PIAWE:    &piawe,
		Priority: &prio,
	}))

	got, err := s.Case(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, claims.PriorityHigh, got.Priority)
	require.True(t, got.PIAWE.Valid)
	assert.True(t, got.PIAWE.Decimal.Equal(decimal.NewFromInt(1000)))
	// untouched fields survive
	assert.Equal(t, claims.CapacityNone, got.CurrentCapacity)

	assert.ErrorIs(t, s.UpdateCase(ctx, "missing", CaseUpdate{Priority: &prio}), claims.ErrCaseNotFound)
}

func TestAddCertificate_SyncsCaseCapacity(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c := newCase("Jane Citizen", "VIC", claims.CapacityNone)
	require.NoError(t, s.CreateCase(ctx, c))

	// WHEN a modified-duties certificate is added
	days := 3
	cert := &claims.Certificate{
		CaseID:      c.ID,
		CertFrom:    "2025-02-01",
		CertTo:      "2025-02-28",
		Capacity:    claims.CapacityModified,
		DaysPerWeek: &days,
	}
	require.NoError(t, s.AddCertificate(ctx, cert))

	// THEN the case's capacity follows the certificate
	got, err := s.Case(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, claims.CapacityModified, got.CurrentCapacity)

	certs, err := s.CertificatesByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	require.NotNil(t, certs[0].DaysPerWeek)
	assert.Equal(t, 3, *certs[0].DaysPerWeek)
}

func TestAddCertificate_UnknownCase(t *testing.T) {
	s := newStore(t)

	err := s.AddCertificate(context.Background(), &claims.Certificate{
		CaseID:   "missing",
		Capacity: claims.CapacityModified,
	})
	assert.ErrorIs(t, err, claims.ErrCaseNotFound)
}

func TestLatestCertificates_NewestPerActiveCase(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c := newCase("Jane Citizen", "VIC", claims.CapacityNone)
	require.NoError(t, s.CreateCase(ctx, c))
	closed := newCase("Bob Retired", "VIC", claims.CapacityFull)
	require.NoError(t, s.CreateCase(ctx, closed))

	require.NoError(t, s.AddCertificate(ctx, &claims.Certificate{
		CaseID: c.ID, CertTo: "2025-01-31", Capacity: claims.CapacityNone,
	}))
	require.NoError(t, s.AddCertificate(ctx, &claims.Certificate{
		CaseID: c.ID, CertTo: "2025-02-28", Capacity: claims.CapacityModified,
	}))
	require.NoError(t, s.AddCertificate(ctx, &claims.Certificate{
		CaseID: closed.ID, CertTo: "2025-03-31", Capacity: claims.CapacityFull,
	}))

	status := claims.StatusClosed
	require.NoError(t, s.UpdateCase(ctx, closed.ID, CaseUpdate{Status: &status}))

	latest, err := s.LatestCertificates(ctx)
	require.NoError(t, err)

	// one row per active case, and it is the newest certificate
	require.Len(t, latest, 1)
	assert.Equal(t, c.ID, latest[0].CaseID)
	assert.Equal(t, "2025-02-28", latest[0].CertTo)
	assert.Equal(t, "Jane Citizen", latest[0].WorkerName)
}

func TestCreateTermination_OnePerCase(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c := newCase("Jane Citizen", "VIC", claims.CapacityNone)
	require.NoError(t, s.CreateCase(ctx, c))

	first := &claims.Termination{
		CaseID:          c.ID,
		TerminationType: claims.TerminationTypeInherent,
		AssignedTo:      "HR",
	}
	require.NoError(t, s.CreateTermination(ctx, first))
	assert.Equal(t, claims.TerminationPending, first.Status)

	// a second record for the same case is refused
	err := s.CreateTermination(ctx, &claims.Termination{
		CaseID:          c.ID,
		TerminationType: claims.TerminationTypeShowCause,
	})
	assert.ErrorIs(t, err, claims.ErrTerminationExists)
}

func TestUpdateTermination_CompletedStampsDate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c := newCase("Jane Citizen", "VIC", claims.CapacityNone)
	require.NoError(t, s.CreateCase(ctx, c))
	term := &claims.Termination{CaseID: c.ID, TerminationType: claims.TerminationTypeInherent}
	require.NoError(t, s.CreateTermination(ctx, term))

	drafted := true
	require.NoError(t, s.UpdateTermination(ctx, term.ID, TerminationUpdate{LetterDrafted: &drafted}))

	done := claims.TerminationCompleted
	require.NoError(t, s.UpdateTermination(ctx, term.ID, TerminationUpdate{Status: &done}))

	got, err := s.TerminationByCase(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.LetterDrafted)
	assert.Equal(t, claims.TerminationCompleted, got.Status)
	assert.NotEmpty(t, got.CompletedDate)

	// completed terminations drop off the pending view
	pending, err := s.PendingTerminations(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPendingTerminations_JoinsCaseIdentity(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c := newCase("Jane Citizen", "VIC", claims.CapacityNone)
	require.NoError(t, s.CreateCase(ctx, c))
	require.NoError(t, s.CreateTermination(ctx, &claims.Termination{
		CaseID:          c.ID,
		TerminationType: claims.TerminationTypeInherent,
	}))

	pending, err := s.PendingTerminations(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Jane Citizen", pending[0].WorkerName)
	assert.Equal(t, "VIC", pending[0].State)
}

func TestPendingTerminations_ExcludesInProgress(t *testing.T) {
	// GIVEN: an open termination proceeding
	s := newStore(t)
	ctx := context.Background()

	c := newCase("Jane Citizen", "VIC", claims.CapacityNone)
	require.NoError(t, s.CreateCase(ctx, c))
	term := &claims.Termination{CaseID: c.ID, TerminationType: claims.TerminationTypeInherent}
	require.NoError(t, s.CreateTermination(ctx, term))

	// WHEN: the proceeding moves to In Progress
	working := claims.TerminationInProgress
	require.NoError(t, s.UpdateTermination(ctx, term.ID, TerminationUpdate{Status: &working}))

	// THEN: it is being worked and no longer counts as pending
	pending, err := s.PendingTerminations(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// AND: it still appears in the full list
	all, err := s.ListTerminations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, claims.TerminationInProgress, all[0].Status)
}

func TestRecordPayroll_AppendOnlyHistory(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c := newCase("Jane Citizen", "VIC", claims.CapacityNone)
	require.NoError(t, s.CreateCase(ctx, c))

	entry := func(periodTo string, total int64) *claims.PayrollEntry {
		return &claims.PayrollEntry{
			CaseID:        c.ID,
			PeriodFrom:    "2025-02-01",
			PeriodTo:      periodTo,
			PIAWE:         decimal.NewFromInt(1000),
			ReductionRate: decimal.NewFromFloat(0.95),
			DaysOff:       10,
			Wages:         decimal.Zero,
			Compensation:  decimal.NewFromInt(total),
			TopUp:         decimal.Zero,
			BackPay:       decimal.Zero,
			Total:         decimal.NewFromInt(total),
		}
	}

	require.NoError(t, s.RecordPayroll(ctx, entry("2025-02-14", 1900)))
	require.NoError(t, s.RecordPayroll(ctx, entry("2025-02-28", 1900)))

	byCase, err := s.PayrollByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, byCase, 2)
	assert.Equal(t, "2025-02-28", byCase[0].PeriodTo)
	assert.True(t, byCase[0].Total.Equal(decimal.NewFromInt(1900)))

	history, err := s.PayrollHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Jane Citizen", history[0].WorkerName)

	assert.ErrorIs(t, s.RecordPayroll(ctx, &claims.PayrollEntry{CaseID: "missing"}), claims.ErrCaseNotFound)
}

func TestSetChecklistItem(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c := newCase("Jane Citizen", "VIC", claims.CapacityNone)
	require.NoError(t, s.CreateCase(ctx, c))

	require.NoError(t, s.SetChecklistItem(ctx, c.ID, "Claim Form", true))

	items, err := s.Checklist(ctx, c.ID)
	require.NoError(t, err)
	var present int
	for _, item := range items {
		if item.Present {
			present++
			assert.Equal(t, "Claim Form", item.DocType)
		}
	}
	assert.Equal(t, 1, present)
	// no duplicate row was inserted
	assert.Len(t, items, len(claims.RequiredDocuments))
}

func TestSetChecklistItem_UnknownCase(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	err := s.SetChecklistItem(ctx, "missing", "Claim Form", true)
	assert.ErrorIs(t, err, claims.ErrCaseNotFound)
}

func TestRecordDocument_Trail(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	c := newCase("Jane Citizen", "VIC", claims.CapacityNone)
	require.NoError(t, s.CreateCase(ctx, c))

	require.NoError(t, s.RecordDocument(ctx, c.ID, "rtw_plan", "Jane_Citizen_RTW_Plan_20250301.pdf"))

	docs, err := s.DocumentsByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "rtw_plan", docs[0].DocType)
}

func TestRecentActivity_AcrossCases(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateCase(ctx, newCase("Alice", "VIC", claims.CapacityNone)))
	require.NoError(t, s.CreateCase(ctx, newCase("Bob", "NSW", claims.CapacityNone)))

	entries, err := s.RecentActivity(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	one, err := s.RecentActivity(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}
