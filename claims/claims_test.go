package claims_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sga/workcover-engine/claims"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// CERTIFICATE STATUS TESTS
// =============================================================================

func TestEvaluateCertificate_Classification(t *testing.T) {
	today := date(2026, time.March, 10)

	tests := []struct {
		name   string
		certTo string
		kind   claims.StatusKind
		days   int
		label  string
	}{
		{"well in the future", "2026-04-30", claims.StatusCurrent, 51, "Current (51d left)"},
		{"exactly eight days out", "2026-03-18", claims.StatusCurrent, 8, "Current (8d left)"},
		{"inside the warning window", "2026-03-15", claims.StatusExpiring, 5, "EXPIRING (5d)"},
		{"expires today", "2026-03-10", claims.StatusExpiring, 0, "EXPIRING (0d)"},
		{"expired yesterday", "2026-03-09", claims.StatusExpired, 1, "EXPIRED (1d ago)"},
		{"long expired", "2026-01-10", claims.StatusExpired, 59, "EXPIRED (59d ago)"},
		{"no certificate", "", claims.StatusMissing, 0, "No COC"},
		{"garbage date", "soon", claims.StatusInvalid, 0, "Invalid Date"},
		{"wrong format", "10/03/2026", claims.StatusInvalid, 0, "Invalid Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := claims.EvaluateCertificate(tt.certTo, today)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.days, got.Days)
			assert.Equal(t, tt.label, got.Label())
		})
	}
}

func TestEvaluateCertificate_BoundaryBelongsToExpiring(t *testing.T) {
	// GIVEN: a certificate ending exactly seven days from today
	// THEN: it is Expiring, and one day later it is Current
	today := date(2026, time.March, 10)

	require.Equal(t, claims.StatusExpiring, claims.EvaluateCertificate("2026-03-17", today).Kind)
	require.Equal(t, claims.StatusCurrent, claims.EvaluateCertificate("2026-03-18", today).Kind)
}

func TestEvaluateCertificate_IgnoresTimeOfDay(t *testing.T) {
	// Reference timestamps late in the day must not shift the boundary.
	late := time.Date(2026, time.March, 10, 23, 45, 0, 0, time.UTC)
	got := claims.EvaluateCertificate("2026-03-10", late)
	assert.Equal(t, claims.StatusExpiring, got.Kind)
	assert.Equal(t, 0, got.Days)
}

func TestStatusKind_JSONRoundTrip(t *testing.T) {
	// Statuses cross the wire both as struct fields and as map keys;
	// both directions must agree on the names.
	kinds := []claims.StatusKind{
		claims.StatusMissing, claims.StatusInvalid, claims.StatusExpired,
		claims.StatusExpiring, claims.StatusCurrent,
	}
	for _, kind := range kinds {
		raw, err := json.Marshal(kind)
		require.NoError(t, err)

		var back claims.StatusKind
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, kind, back, "kind %s", kind)
	}

	totals := map[claims.StatusKind]int{claims.StatusExpired: 2, claims.StatusCurrent: 1}
	raw, err := json.Marshal(totals)
	require.NoError(t, err)
	assert.JSONEq(t, `{"EXPIRED": 2, "CURRENT": 1}`, string(raw))

	var decoded map[claims.StatusKind]int
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, totals, decoded)

	var bad claims.StatusKind
	assert.Error(t, json.Unmarshal([]byte(`"OVERDUE"`), &bad))
}

// =============================================================================
// CAPACITY PARSING
// =============================================================================

func TestParseCapacity(t *testing.T) {
	tests := []struct {
		label string
		want  claims.Capacity
	}{
		{"No Capacity", claims.CapacityNone},
		{"no current capacity for work", claims.CapacityNone},
		{"Modified Duties", claims.CapacityModified},
		{"modified duties only, 3hrs/day", claims.CapacityModified},
		{"Full Capacity", claims.CapacityFull},
		{"Clearance", claims.CapacityClearance},
		{"cleared for pre-injury duties", claims.CapacityClearance},
		{"Uncertain", claims.CapacityUncertain},
		{"", claims.CapacityUnknown},
		{"pending review", claims.CapacityUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, claims.ParseCapacity(tt.label), "label %q", tt.label)
	}
}

func TestCapacityDutyLevel(t *testing.T) {
	assert.Equal(t, 1, claims.CapacityNone.DutyLevel())
	assert.Equal(t, 2, claims.CapacityModified.DutyLevel())
	assert.Equal(t, 4, claims.CapacityFull.DutyLevel())
	assert.Equal(t, 4, claims.CapacityClearance.DutyLevel())
	// Conservative default for everything ambiguous.
	assert.Equal(t, 2, claims.CapacityUncertain.DutyLevel())
	assert.Equal(t, 2, claims.CapacityUnknown.DutyLevel())
}

// =============================================================================
// TERMINATION PROGRESS
// =============================================================================

func TestTerminationStepsDone(t *testing.T) {
	term := claims.Termination{}
	assert.Equal(t, 0, term.StepsDone())

	term.LetterDrafted = true
	assert.Equal(t, 1, term.StepsDone())

	term.LetterSent = true
	term.ResponseReceived = true
	assert.Equal(t, 3, term.StepsDone())
}
