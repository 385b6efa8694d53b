package rtw_test

import (
	"testing"

	"github.com/sga/workcover-engine/claims"
	"github.com/sga/workcover-engine/rtw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(weeks []rtw.Week) []float64 {
	out := make([]float64, len(weeks))
	for i, w := range weeks {
		out[i] = w.Hours
	}
	return out
}

func levels(weeks []rtw.Week) []int {
	out := make([]int, len(weeks))
	for i, w := range weeks {
		out[i] = w.DutyLevel
	}
	return out
}

func TestBuildSchedule_NoCapacityRampToFullWeek(t *testing.T) {
	// GIVEN: 3 certified hours (no capacity), target 38
	// THEN:  step (38-3)/3 = 11.667 -> [3, 14.7, 26.3, 38]
	weeks := rtw.BuildSchedule(3, 38, claims.CapacityNone)
	require.Len(t, weeks, 4)

	assert.Equal(t, []float64{3, 14.7, 26.3, 38}, hours(weeks))
	// Week 1 holds the starting level; week 4 reaches >=90% of target.
	assert.Equal(t, []int{1, 2, 3, 4}, levels(weeks))
}

func TestBuildSchedule_ModifiedDutiesStart(t *testing.T) {
	weeks := rtw.BuildSchedule(15, 38, claims.CapacityModified)

	assert.Equal(t, []float64{15, 22.7, 30.3, 38}, hours(weeks))
	assert.Equal(t, []int{2, 3, 4, 4}, levels(weeks))
}

func TestBuildSchedule_DefaultsApplied(t *testing.T) {
	// Zero/negative inputs fall back to 3 and 38 hours.
	weeks := rtw.BuildSchedule(0, 0, claims.CapacityUnknown)
	require.Len(t, weeks, 4)
	assert.Equal(t, 3.0, weeks[0].Hours)
	assert.Equal(t, 38.0, weeks[3].Hours)
}

func TestBuildSchedule_MonotoneAndBounded(t *testing.T) {
	cases := []struct {
		current, target float64
	}{
		{3, 38}, {10, 38}, {20, 30}, {38, 38}, {5, 7.5}, {36, 38},
	}
	for _, tc := range cases {
		weeks := rtw.BuildSchedule(tc.current, tc.target, claims.CapacityModified)
		require.Len(t, weeks, 4)

		assert.Equal(t, tc.current, weeks[0].Hours, "week 1 starts at current")
		for i := 1; i < len(weeks); i++ {
			assert.GreaterOrEqual(t, weeks[i].Hours, weeks[i-1].Hours,
				"current=%v target=%v week %d", tc.current, tc.target, i+1)
			assert.LessOrEqual(t, weeks[i].Hours, tc.target)
		}
	}
}

func TestBuildSchedule_AlreadyAtTarget(t *testing.T) {
	// A worker already at pre-injury hours stays flat at the baseline,
	// so every week keeps the starting level.
	weeks := rtw.BuildSchedule(38, 38, claims.CapacityFull)
	assert.Equal(t, []float64{38, 38, 38, 38}, hours(weeks))
	assert.Equal(t, []int{4, 4, 4, 4}, levels(weeks))
}

func TestBuildSchedule_LevelNeverExceedsFour(t *testing.T) {
	weeks := rtw.BuildSchedule(30, 38, claims.CapacityFull)
	for _, w := range weeks {
		assert.LessOrEqual(t, w.DutyLevel, 4)
		assert.GreaterOrEqual(t, w.DutyLevel, 1)
	}
}

func TestCurrentHoursFromCertificate(t *testing.T) {
	three := 3
	five := 5.0

	full := &claims.Certificate{DaysPerWeek: &three, HoursPerDay: &five}
	assert.Equal(t, 15.0, rtw.CurrentHoursFromCertificate(full))

	daysOnly := &claims.Certificate{DaysPerWeek: &three}
	assert.Equal(t, 9.0, rtw.CurrentHoursFromCertificate(daysOnly))

	assert.Equal(t, 0.0, rtw.CurrentHoursFromCertificate(&claims.Certificate{}))
	assert.Equal(t, 0.0, rtw.CurrentHoursFromCertificate(nil))
}

func TestSuitableDuties_Clamped(t *testing.T) {
	assert.Equal(t, 1, rtw.SuitableDuties(0).Level)
	assert.Equal(t, 4, rtw.SuitableDuties(9).Level)
	assert.Equal(t, "Level 3 - Modified Duties (Moderate Physical Demand)", rtw.SuitableDuties(3).Title)
	assert.Empty(t, rtw.SuitableDuties(4).RestBreak)
	assert.Len(t, rtw.AllDutyLevels(), 4)
}
