/*
Package rtw builds progressive return-to-work schedules.

PURPOSE:
  Maps a worker's current certified weekly hours and their pre-injury
  target onto a 4-week linear ramp, assigning a suitable-duties level
  to each week. The schedule feeds the RTW Plan document and the API
  preview endpoint.

PROPERTIES:
  - hours are monotonically non-decreasing and bounded by the target
  - week 1 always starts at the current certified hours
  - the ramp is recomputed from scratch on every new certificate; it is
    never persisted
*/
package rtw

import (
	"math"

	"github.com/sga/workcover-engine/claims"
)

const (
	// ScheduleWeeks is the length of the progressive ramp.
	ScheduleWeeks = 4

	// DefaultCurrentHours is used when no usable certified hours exist.
	DefaultCurrentHours = 3.0

	// DefaultTargetHours is the standard pre-injury working week.
	DefaultTargetHours = 38.0

	// fullDutiesThreshold: a week at or above this fraction of target
	// hours is treated as effectively pre-injury and assigned level 4.
	fullDutiesThreshold = 0.9
)

// Week is one entry of the progressive schedule.
type Week struct {
	Week      int     `json:"week"`  // 1-based
	Hours     float64 `json:"hours"` // total hours for the week, 1dp
	DutyLevel int     `json:"duty_level"`
}

// BuildSchedule produces the 4-week ramp from currentHours up to
// targetHours, starting at the duty level implied by the capacity.
// Non-positive inputs fall back to the defaults.
func BuildSchedule(currentHours, targetHours float64, capacity claims.Capacity) []Week {
	if currentHours <= 0 {
		currentHours = DefaultCurrentHours
	}
	if targetHours <= 0 {
		targetHours = DefaultTargetHours
	}

	startLevel := capacity.DutyLevel()
	step := (targetHours - currentHours) / float64(ScheduleWeeks-1)

	weeks := make([]Week, 0, ScheduleWeeks)
	for w := 0; w < ScheduleWeeks; w++ {
		hrs := math.Min(currentHours+step*float64(w), targetHours)
		hrs = math.Round(hrs*10) / 10

		level := startLevel
		switch {
		case hrs <= currentHours:
			// Still at the baseline: no progression yet.
		case hrs >= targetHours*fullDutiesThreshold:
			level = 4
		default:
			level = min(startLevel+w, 4)
		}

		weeks = append(weeks, Week{Week: w + 1, Hours: hrs, DutyLevel: level})
	}
	return weeks
}

// CurrentHoursFromCertificate derives the starting weekly hours from a
// certificate's schedule. With hours and days certified it is their
// product; with only days certified the source assumed 3 hours per
// certified day; otherwise zero (BuildSchedule then applies the
// fallback).
func CurrentHoursFromCertificate(cert *claims.Certificate) float64 {
	if cert == nil {
		return 0
	}
	if h := cert.WeeklyHours(); h > 0 {
		return h
	}
	if cert.DaysPerWeek != nil && *cert.DaysPerWeek > 0 {
		return DefaultCurrentHours * float64(*cert.DaysPerWeek)
	}
	return 0
}
